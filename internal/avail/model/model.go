// Package model defines the event record and numeric state constants shared
// by the log extractor, the availability engine, and the log renderer.
package model

// Host state values. Mirrors objects.HostUp/HostDown/HostUnreachable but
// kept independent since availability reporting consumes logged state words,
// not a live object graph.
const (
	HostUp          = 0
	HostDown        = 1
	HostUnreachable = 2
)

// Service state values.
const (
	ServiceOK       = 0
	ServiceWarning  = 1
	ServiceCritical = 2
	ServiceUnknown  = 3
)

// Pseudo-states used only inside the engine; never exposed on a public
// result bucket.
const (
	StateUnspecified = -2 // no concrete state known yet
	StateCurrent     = -1 // "keep whatever the entity currently has"
	StateNotRunning  = -3 // monitoring process confirmed down
)

// Process lifecycle transitions, matching the wire values a PROCESS EVENT
// style log line implies.
const (
	ProcErrorStop  = -1
	ProcNormalStop = 0
	ProcNormalStart = 1
	ProcRestart     = 2
)

// Report breakdown modes.
const (
	BreakNone = iota
	BreakDays
	BreakWeeks
	BreakMonths
)

// Event type tags produced by the extractor and consumed by the engine.
const (
	TypeServiceAlert         = "SERVICE ALERT"
	TypeCurrentServiceState  = "CURRENT SERVICE STATE"
	TypeInitialServiceState  = "INITIAL SERVICE STATE"
	TypeHostAlert            = "HOST ALERT"
	TypeCurrentHostState     = "CURRENT HOST STATE"
	TypeInitialHostState     = "INITIAL HOST STATE"
	TypeHostDowntimeAlert    = "HOST DOWNTIME ALERT"
	TypeServiceDowntimeAlert = "SERVICE DOWNTIME ALERT"
	TypeTimeperiodTransition = "TIMEPERIOD TRANSITION"
	TypeHostNotification     = "HOST NOTIFICATION"
	TypeServiceNotification  = "SERVICE NOTIFICATION"
	TypeExternalCommand      = "EXTERNAL COMMAND"
	TypeHostFlappingAlert    = "HOST FLAPPING ALERT"
	TypeServiceFlappingAlert = "SERVICE FLAPPING ALERT"
	TypeHostEventHandler     = "HOST EVENT HANDLER"
	TypeServiceEventHandler  = "SERVICE EVENT HANDLER"
	TypeLogRotation          = "LOG ROTATION"
	TypeLogVersion           = "LOG VERSION"

	// TypeProcessEvent is an internal tag the extractor assigns to
	// free-text process lifecycle lines ("... starting...", "Bailing
	// out", ...). It never appears in a raw log line.
	TypeProcessEvent = "PROCESS EVENT"
)

// Event is the normalized record produced by the log extractor and consumed
// by the availability engine. Every field except Time is meaningful only
// when the corresponding Has* flag is set, or implicitly by Type.
type Event struct {
	Time int64
	Type string

	HostName            string
	ServiceDescription  string

	State    int
	HasState bool
	Hard     bool

	PluginOutput string

	ProcStart    int
	HasProcStart bool

	// Start indicates a downtime/flapping toggle: true = started, false = ended.
	Start    bool
	HasStart bool

	Timeperiod string
	From       string
	To         string

	ContactName string
}

// LogEntry is a single recorded line destined for the condensed or full
// log view, before §4.G's post-processing fills in End/Duration.
type LogEntry struct {
	Start        int64
	End          int64
	Duration     string
	Type         string
	PluginOutput string
	Class        string
	FullOnly     bool
}
