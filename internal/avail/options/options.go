// Package options normalizes and validates the configuration accepted by
// the availability engine (component D): enum enforcement, defaults, and
// rejection of unknown options.
package options

import (
	"fmt"

	"github.com/oceanplexian/gogios-availability/internal/avail/model"
)

// ConfigError reports an invalid or unknown option. It is fatal to the
// calculate call per spec.md §7.
type ConfigError struct {
	Option string
	Msg    string
}

func (e *ConfigError) Error() string {
	if e.Option == "" {
		return e.Msg
	}
	return fmt.Sprintf("option %q: %s", e.Option, e.Msg)
}

// ServicePair identifies a tracked service by its owning host.
type ServicePair struct {
	Host    string
	Service string
}

// Debugger is the verbose-logging collaborator injected at construction,
// matching the narrow single-method contract spec.md §9 calls for. Never a
// process-wide logging facility.
type Debugger interface {
	Debug(format string, args ...interface{})
}

type nopDebugger struct{}

func (nopDebugger) Debug(string, ...interface{}) {}

// Options is the normalized, immutable configuration for one calculate
// invocation.
type Options struct {
	Start, End int64

	Hosts    map[string]bool
	Services []ServicePair

	InitialHostStates    map[string]string
	InitialServiceStates map[string]map[string]string

	Backtrack int

	RptTimeperiod string

	AssumeInitialStates          bool
	AssumeStateRetention         bool
	AssumeStatesDuringNotRunning bool
	IncludeSoftStates            bool
	ShowScheduledDowntime        bool

	InitialAssumedHostState    int
	HasInitialAssumedHostState bool // false means "unspecified"
	InitialAssumedServiceState int
	HasInitialAssumedServiceState bool

	TimeFormat string
	Breakdown  int

	Verbose bool
	Logger  Debugger

	BuildLog bool
}

// Raw is the unvalidated input configuration: a name->value map plus the
// typed collection fields that don't have a sane single-scalar wire form.
type Raw struct {
	Values map[string]string

	Start, End int64
	HasStart, HasEnd bool

	Hosts    []string
	Services []ServicePair

	InitialHostStates    map[string]string
	InitialServiceStates map[string]map[string]string

	Logger Debugger
}

var recognizedKeys = map[string]bool{
	"backtrack": true, "rpttimeperiod": true, "assumeinitialstates": true,
	"assumestateretention": true, "assumestatesduringnotrunning": true,
	"includesoftstates": true, "initialassumedhoststate": true,
	"initialassumedservicestate": true, "showscheduleddowntime": true,
	"timeformat": true, "breakdown": true, "verbose": true,
}

// Normalize validates raw and fills in defaults, returning a Options ready
// for the engine, or a *ConfigError describing the first problem found.
func Normalize(raw Raw) (*Options, error) {
	for k := range raw.Values {
		if !recognizedKeys[k] {
			return nil, &ConfigError{Option: k, Msg: "unknown option"}
		}
	}

	if !raw.HasStart || !raw.HasEnd {
		return nil, &ConfigError{Msg: "start and end are both required"}
	}
	if raw.End < raw.Start {
		return nil, &ConfigError{Msg: "end must not precede start"}
	}

	o := &Options{
		Start:                        raw.Start,
		End:                          raw.End,
		InitialHostStates:            raw.InitialHostStates,
		InitialServiceStates:         raw.InitialServiceStates,
		Backtrack:                    4,
		AssumeInitialStates:          true,
		AssumeStateRetention:         true,
		AssumeStatesDuringNotRunning: true,
		IncludeSoftStates:            false,
		ShowScheduledDowntime:        true,
		TimeFormat:                   "%s",
		Breakdown:                    model.BreakNone,
		Logger:                       nopDebugger{},
	}

	if raw.Logger != nil {
		o.Logger = raw.Logger
	}

	o.Hosts = make(map[string]bool, len(raw.Hosts))
	for _, h := range raw.Hosts {
		o.Hosts[h] = true
	}
	o.Services = append([]ServicePair(nil), raw.Services...)

	if v, ok := raw.Values["backtrack"]; ok {
		n, err := parseNonNegInt(v)
		if err != nil {
			return nil, &ConfigError{Option: "backtrack", Msg: err.Error()}
		}
		o.Backtrack = n
	}

	if v, ok := raw.Values["rpttimeperiod"]; ok {
		o.RptTimeperiod = v
	}

	if v, ok := raw.Values["assumeinitialstates"]; ok {
		b, err := parseYesNo(v)
		if err != nil {
			return nil, &ConfigError{Option: "assumeinitialstates", Msg: err.Error()}
		}
		o.AssumeInitialStates = b
	}
	if v, ok := raw.Values["assumestateretention"]; ok {
		b, err := parseYesNo(v)
		if err != nil {
			return nil, &ConfigError{Option: "assumestateretention", Msg: err.Error()}
		}
		o.AssumeStateRetention = b
	}
	if v, ok := raw.Values["assumestatesduringnotrunning"]; ok {
		b, err := parseYesNo(v)
		if err != nil {
			return nil, &ConfigError{Option: "assumestatesduringnotrunning", Msg: err.Error()}
		}
		o.AssumeStatesDuringNotRunning = b
	}
	if v, ok := raw.Values["includesoftstates"]; ok {
		b, err := parseYesNo(v)
		if err != nil {
			return nil, &ConfigError{Option: "includesoftstates", Msg: err.Error()}
		}
		o.IncludeSoftStates = b
	}
	if v, ok := raw.Values["showscheduleddowntime"]; ok {
		b, err := parseYesNo(v)
		if err != nil {
			return nil, &ConfigError{Option: "showscheduleddowntime", Msg: err.Error()}
		}
		o.ShowScheduledDowntime = b
	}
	if v, ok := raw.Values["timeformat"]; ok && v != "" {
		o.TimeFormat = v
	}
	if v, ok := raw.Values["verbose"]; ok {
		b, err := parseYesNo(v)
		if err != nil {
			return nil, &ConfigError{Option: "verbose", Msg: err.Error()}
		}
		o.Verbose = b
	}

	if v, ok := raw.Values["breakdown"]; ok {
		switch v {
		case "none", "":
			o.Breakdown = model.BreakNone
		case "days":
			o.Breakdown = model.BreakDays
		case "weeks":
			o.Breakdown = model.BreakWeeks
		case "months":
			o.Breakdown = model.BreakMonths
		default:
			return nil, &ConfigError{Option: "breakdown", Msg: "must be one of none/days/weeks/months"}
		}
	}

	if !o.AssumeInitialStates {
		o.HasInitialAssumedHostState = false
		o.HasInitialAssumedServiceState = false
	} else {
		word := "unspecified"
		if v, ok := raw.Values["initialassumedhoststate"]; ok {
			word = v
		}
		state, has, err := parseHostStateWord(word)
		if err != nil {
			return nil, &ConfigError{Option: "initialassumedhoststate", Msg: err.Error()}
		}
		if has && word == "current" && len(raw.InitialHostStates) == 0 {
			return nil, &ConfigError{Option: "initialassumedhoststate", Msg: "initial_states.hosts required when value is \"current\""}
		}
		o.InitialAssumedHostState = state
		o.HasInitialAssumedHostState = has

		word = "unspecified"
		if v, ok := raw.Values["initialassumedservicestate"]; ok {
			word = v
		}
		sstate, shas, err := parseServiceStateWord(word)
		if err != nil {
			return nil, &ConfigError{Option: "initialassumedservicestate", Msg: err.Error()}
		}
		if shas && word == "current" && len(raw.InitialServiceStates) == 0 {
			return nil, &ConfigError{Option: "initialassumedservicestate", Msg: "initial_states.services required when value is \"current\""}
		}
		o.InitialAssumedServiceState = sstate
		o.HasInitialAssumedServiceState = shas
	}

	o.BuildLog = buildLogScope(o.Hosts, o.Services) != scopeDisabled

	return o, nil
}

type logScope int

const (
	scopeDisabled logScope = iota
	scopeHostOnly
	scopeServiceOnly
)

func buildLogScope(hosts map[string]bool, services []ServicePair) logScope {
	if len(hosts) == 1 && len(services) == 0 {
		return scopeHostOnly
	}
	if len(services) == 1 && len(hosts) == 0 {
		return scopeServiceOnly
	}
	return scopeDisabled
}

// BuildLogScope re-derives the host/service-only log scope for a normalized
// Options value; used by the engine to decide what to append to the log.
func BuildLogScope(o *Options) (hostOnly, serviceOnly bool) {
	s := buildLogScope(o.Hosts, o.Services)
	return s == scopeHostOnly, s == scopeServiceOnly
}

func parseYesNo(v string) (bool, error) {
	switch v {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("must be yes/no, got %q", v)
	}
}

func parseNonNegInt(v string) (int, error) {
	var n int
	_, err := fmt.Sscanf(v, "%d", &n)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", v)
	}
	if n < 0 {
		return 0, fmt.Errorf("must be >= 0, got %d", n)
	}
	return n, nil
}

func parseHostStateWord(v string) (state int, has bool, err error) {
	switch v {
	case "unspecified", "":
		return 0, false, nil
	case "current":
		return model.StateCurrent, true, nil
	case "up":
		return model.HostUp, true, nil
	case "down":
		return model.HostDown, true, nil
	case "unreachable":
		return model.HostUnreachable, true, nil
	default:
		return 0, false, fmt.Errorf("unrecognized host state %q", v)
	}
}

func parseServiceStateWord(v string) (state int, has bool, err error) {
	switch v {
	case "unspecified", "":
		return 0, false, nil
	case "current":
		return model.StateCurrent, true, nil
	case "ok":
		return model.ServiceOK, true, nil
	case "warning":
		return model.ServiceWarning, true, nil
	case "unknown":
		return model.ServiceUnknown, true, nil
	case "critical":
		return model.ServiceCritical, true, nil
	default:
		return 0, false, fmt.Errorf("unrecognized service state %q", v)
	}
}
