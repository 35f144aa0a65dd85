// Package engine implements the availability state machine (component F):
// it walks sorted events, drives per-entity state, honors report
// boundaries and breakdown breakpoints, overlays scheduled downtime, and
// records the condensed/full log entries the renderer later post-processes.
package engine

import (
	"fmt"
	"sort"

	"github.com/oceanplexian/gogios-availability/internal/avail/model"
	"github.com/oceanplexian/gogios-availability/internal/avail/options"
	"github.com/oceanplexian/gogios-availability/internal/avail/report"
	"github.com/oceanplexian/gogios-availability/internal/avail/timefmt"
)

// IOError reports a failure opening an input source; fatal to Calculate.
type IOError struct {
	Source string
	Err    error
}

func (e *IOError) Error() string { return fmt.Sprintf("reading %s: %v", e.Source, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// Engine holds all mutable per-invocation state. Non-reentrant: a given
// instance must not be used from more than one goroutine concurrently, and
// is discarded after Calculate returns (spec.md §5).
type Engine struct {
	opts *options.Options

	hosts    map[string]*hostEntity
	services map[string]map[string]*serviceEntity

	hostOnly, serviceOnly bool

	inTimeperiod    *bool // nil = undefined; the engine's single rpttimeperiod gate
	rptTimeperiod   string

	breakpoints []int64
	labels      []string

	fullLog []model.LogEntry
}

// Calculate runs one availability computation over the given (not
// necessarily sorted) events and returns per-entity time buckets plus the
// raw recorded log entries (empty unless build-log scope is active).
func Calculate(opts *options.Options, events []model.Event) (*Result, []model.LogEntry, error) {
	en := &Engine{opts: opts}
	en.hostOnly, en.serviceOnly = options.BuildLogScope(opts)
	if opts.RptTimeperiod != "" {
		en.rptTimeperiod = opts.RptTimeperiod
	}

	trackAll := len(opts.Hosts) == 0 && len(opts.Services) == 0
	knownHosts, trackedServices := discoverEntities(opts, events, trackAll)

	en.hosts = make(map[string]*hostEntity, len(knownHosts))
	for name := range knownHosts {
		en.hosts[name] = newHostEntity(name, trackAll || opts.Hosts[name], opts)
	}
	en.services = make(map[string]map[string]*serviceEntity)
	for host, svcs := range trackedServices {
		en.services[host] = make(map[string]*serviceEntity, len(svcs))
		for svc := range svcs {
			en.services[host][svc] = newServiceEntity(host, svc, true, opts)
			if _, ok := en.hosts[host]; !ok {
				en.hosts[host] = newHostEntity(host, false, opts)
			}
		}
	}

	if opts.Breakdown != model.BreakNone {
		windows := timefmt.EnumerateLabels(opts.Start, opts.End, opts.Breakdown)
		labels := make([]string, len(windows))
		for i, w := range windows {
			labels[i] = w.Label
		}
		en.labels = labels
		for _, h := range en.hosts {
			h.buckets.EnableBreakdown(labels)
		}
		for _, svcs := range en.services {
			for _, s := range svcs {
				s.buckets.EnableBreakdown(labels)
			}
		}
		en.breakpoints = generateBreakpoints(opts.Start, opts.End)
	}

	sorted := make([]model.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })

	en.run(sorted)

	return en.result(), en.fullLog, nil
}

func generateBreakpoints(start, end int64) []int64 {
	var out []int64
	t := timefmt.StartOfLocalDay(start) + 86400
	for t < end {
		if t > start {
			out = append(out, t)
		}
		t += 86400
	}
	return out
}

func discoverEntities(opts *options.Options, events []model.Event, trackAll bool) (map[string]bool, map[string]map[string]bool) {
	known := make(map[string]bool)
	services := make(map[string]map[string]bool)

	for h := range opts.Hosts {
		known[h] = true
	}
	for _, p := range opts.Services {
		known[p.Host] = true
		if services[p.Host] == nil {
			services[p.Host] = make(map[string]bool)
		}
		services[p.Host][p.Service] = true
	}

	if trackAll {
		for _, e := range events {
			if e.HostName == "" {
				continue
			}
			known[e.HostName] = true
			if e.ServiceDescription != "" {
				if services[e.HostName] == nil {
					services[e.HostName] = make(map[string]bool)
				}
				services[e.HostName][e.ServiceDescription] = true
			}
		}
	}
	return known, services
}

func newHostEntity(name string, tracked bool, opts *options.Options) *hostEntity {
	initial := initialHostState(opts, name)
	return &hostEntity{
		name:    name,
		tracked: tracked,
		hist:    newHistory(initial, opts.Start),
		buckets: report.NewBuckets(),
	}
}

func newServiceEntity(host, svc string, tracked bool, opts *options.Options) *serviceEntity {
	initial := initialServiceState(opts, host, svc)
	return &serviceEntity{
		host:    host,
		service: svc,
		tracked: tracked,
		hist:    newHistory(initial, opts.Start),
		buckets: report.NewBuckets(),
	}
}

func initialHostState(opts *options.Options, host string) int {
	if !opts.AssumeInitialStates {
		return model.StateUnspecified
	}
	if !opts.HasInitialAssumedHostState {
		return model.StateUnspecified
	}
	if opts.InitialAssumedHostState == model.StateCurrent {
		if word, ok := opts.InitialHostStates[host]; ok {
			if s, ok := hostWordToState(word); ok {
				return s
			}
		}
		return model.StateUnspecified
	}
	return opts.InitialAssumedHostState
}

func initialServiceState(opts *options.Options, host, svc string) int {
	if !opts.AssumeInitialStates {
		return model.StateUnspecified
	}
	if !opts.HasInitialAssumedServiceState {
		return model.StateUnspecified
	}
	if opts.InitialAssumedServiceState == model.StateCurrent {
		if byHost, ok := opts.InitialServiceStates[host]; ok {
			if word, ok := byHost[svc]; ok {
				if s, ok := serviceWordToState(word); ok {
					return s
				}
			}
		}
		return model.StateUnspecified
	}
	return opts.InitialAssumedServiceState
}

func hostWordToState(w string) (int, bool) {
	switch w {
	case "up":
		return model.HostUp, true
	case "down":
		return model.HostDown, true
	case "unreachable":
		return model.HostUnreachable, true
	default:
		return 0, false
	}
}

func serviceWordToState(w string) (int, bool) {
	switch w {
	case "ok":
		return model.ServiceOK, true
	case "warning":
		return model.ServiceWarning, true
	case "critical":
		return model.ServiceCritical, true
	case "unknown":
		return model.ServiceUnknown, true
	default:
		return 0, false
	}
}

func (en *Engine) result() *Result {
	r := &Result{
		Hosts:    make(map[string]*HostResult),
		Services: make(map[string]map[string]*ServiceResult),
	}
	for name, h := range en.hosts {
		if !h.tracked {
			continue
		}
		r.Hosts[name] = hostResultFromBuckets(h.buckets)
	}
	for host, svcs := range en.services {
		for svc, s := range svcs {
			if !s.tracked {
				continue
			}
			if r.Services[host] == nil {
				r.Services[host] = make(map[string]*ServiceResult)
			}
			r.Services[host][svc] = serviceResultFromBuckets(s.buckets)
		}
	}
	return r
}
