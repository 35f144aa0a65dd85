// Package avail assembles the option normalizer, log extractor,
// availability engine, and log renderer behind the single call surface
// spec.md §6 describes: New(options) -> instance, Calculate(...) -> result,
// CondensedLog()/FullLog() -> rendered log views.
package avail

import (
	"github.com/oceanplexian/gogios-availability/internal/avail/engine"
	"github.com/oceanplexian/gogios-availability/internal/avail/extract"
	"github.com/oceanplexian/gogios-availability/internal/avail/model"
	"github.com/oceanplexian/gogios-availability/internal/avail/options"
	"github.com/oceanplexian/gogios-availability/internal/avail/renderer"
)

// Report is one configured instance, reusable across multiple Calculate
// calls as long as each call supplies its own log sources (the engine
// itself is rebuilt fresh every call; only the normalized options persist).
type Report struct {
	opts *options.Options
	log  []model.LogEntry
}

// Sources lists the log inputs for one Calculate call. Any combination may
// be supplied; all are merged before sorting.
type Sources struct {
	LogString      string
	LogFiles       []string
	LogDirs        []string
	LogLivestatus  []map[string]interface{}
}

// New normalizes raw and returns a reusable Report, or a *options.ConfigError.
func New(raw options.Raw) (*Report, error) {
	opts, err := options.Normalize(raw)
	if err != nil {
		return nil, err
	}
	return &Report{opts: opts}, nil
}

// Calculate ingests every given source, walks the availability engine, and
// returns the per-entity result. IOError aborts the call with no partial
// result, per spec.md §7.
func (r *Report) Calculate(src Sources) (*engine.Result, error) {
	var events []model.Event

	if src.LogString != "" {
		events = append(events, extract.IngestString(src.LogString)...)
	}
	for _, f := range src.LogFiles {
		evs, err := extract.IngestFile(f)
		if err != nil {
			return nil, &engine.IOError{Source: f, Err: err}
		}
		events = append(events, evs...)
	}
	for _, d := range src.LogDirs {
		evs, err := extract.IngestDir(d)
		if err != nil {
			return nil, &engine.IOError{Source: d, Err: err}
		}
		events = append(events, evs...)
	}
	if len(src.LogLivestatus) > 0 {
		events = append(events, extract.IngestStructured(src.LogLivestatus)...)
	}

	result, log, err := engine.Calculate(r.opts, events)
	if err != nil {
		return nil, err
	}
	r.log = log
	return result, nil
}

func (r *Report) renderOptions() renderer.Options {
	ro := renderer.Options{Start: r.opts.Start, End: r.opts.End, TimeFormat: r.opts.TimeFormat}

	singleHost := len(r.opts.Hosts) == 1 && len(r.opts.Services) == 0
	singleService := len(r.opts.Services) == 1 && len(r.opts.Hosts) == 0

	switch {
	case singleHost && r.opts.HasInitialAssumedHostState:
		var host string
		for h := range r.opts.Hosts {
			host = h
		}
		ro.SingleEntityFixedInitial = true
		ro.InitialStateLabel = "HOST " + resolvedHostStateWord(r.opts, host)
	case singleService && r.opts.HasInitialAssumedServiceState:
		pair := r.opts.Services[0]
		ro.SingleEntityFixedInitial = true
		ro.InitialStateLabel = "SERVICE " + resolvedServiceStateWord(r.opts, pair.Host, pair.Service)
	}
	return ro
}

// resolvedHostStateWord mirrors engine.initialHostState's resolution of
// "current" against opts.InitialHostStates, so the synthetic initial-state
// log entry reports the same concrete state the engine actually seeded the
// entity with, not the raw StateCurrent pseudo-state.
func resolvedHostStateWord(o *options.Options, host string) string {
	if o.InitialAssumedHostState != model.StateCurrent {
		return hostStateWord(o.InitialAssumedHostState)
	}
	word, ok := o.InitialHostStates[host]
	if !ok {
		return "UNSPECIFIED"
	}
	switch word {
	case "up":
		return "UP"
	case "down":
		return "DOWN"
	case "unreachable":
		return "UNREACHABLE"
	default:
		return "UNSPECIFIED"
	}
}

func resolvedServiceStateWord(o *options.Options, host, service string) string {
	if o.InitialAssumedServiceState != model.StateCurrent {
		return serviceStateWord(o.InitialAssumedServiceState)
	}
	byHost, ok := o.InitialServiceStates[host]
	if !ok {
		return "UNSPECIFIED"
	}
	word, ok := byHost[service]
	if !ok {
		return "UNSPECIFIED"
	}
	switch word {
	case "ok":
		return "OK"
	case "warning":
		return "WARNING"
	case "critical":
		return "CRITICAL"
	case "unknown":
		return "UNKNOWN"
	default:
		return "UNSPECIFIED"
	}
}

func hostStateWord(state int) string {
	switch state {
	case model.HostUp:
		return "UP"
	case model.HostDown:
		return "DOWN"
	case model.HostUnreachable:
		return "UNREACHABLE"
	default:
		return "UNSPECIFIED"
	}
}

func serviceStateWord(state int) string {
	switch state {
	case model.ServiceOK:
		return "OK"
	case model.ServiceWarning:
		return "WARNING"
	case model.ServiceCritical:
		return "CRITICAL"
	case model.ServiceUnknown:
		return "UNKNOWN"
	default:
		return "UNSPECIFIED"
	}
}

// FullLog returns every recorded entry, including full_only markers.
// Empty unless the report qualified for build-log scope (spec.md §4.F).
func (r *Report) FullLog() []renderer.RenderedEntry {
	full, _ := renderer.Render(r.log, r.renderOptions())
	return full
}

// CondensedLog returns the subset of FullLog with full_only entries
// excluded.
func (r *Report) CondensedLog() []renderer.RenderedEntry {
	_, condensed := renderer.Render(r.log, r.renderOptions())
	return condensed
}
