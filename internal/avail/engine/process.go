package engine

import (
	"github.com/oceanplexian/gogios-availability/internal/avail/model"
	"github.com/oceanplexian/gogios-availability/internal/avail/timefmt"
)

// run walks the sorted event list, synthesizing boundary events and
// dispatching each real event, per spec.md §4.F.
func (en *Engine) run(sorted []model.Event) {
	haveLast := false
	var lastTime int64

	bps := append([]int64(nil), en.breakpoints...)

	for _, ev := range sorted {
		t := ev.Time

		if !haveLast {
			// First event: there is no "previous processed time" yet, so
			// the start-boundary check below can't fire off of it. Seed
			// lastTime one below start so "lastTime < start < t" still
			// triggers correctly when the first event is after start.
			lastTime = en.opts.Start - 1
			haveLast = true
		}

		if lastTime < en.opts.Start && en.opts.Start < t {
			en.advanceAllEntities(en.opts.Start)
			lastTime = en.opts.Start
		}

		for len(bps) > 0 && lastTime < bps[0] && bps[0] < t {
			en.advanceAllEntities(bps[0])
			lastTime = bps[0]
			bps = bps[1:]
		}

		if t >= en.opts.End && en.opts.End > lastTime {
			en.advanceAllEntities(en.opts.End)
			en.appendLog(model.LogEntry{Start: en.opts.End, Type: "REPORT END TIME", Class: "INDETERMINATE", FullOnly: true})
			lastTime = en.opts.End
		}

		en.processEvent(ev)
		lastTime = t
	}

	if !haveLast {
		// No events at all: still close the interval at start and end.
		lastTime = en.opts.Start - 1
	}
	if lastTime < en.opts.Start {
		en.advanceAllEntities(en.opts.Start)
		lastTime = en.opts.Start
	}
	if lastTime < en.opts.End {
		en.advanceAllEntities(en.opts.End)
	}
}

func (en *Engine) appendLog(e model.LogEntry) {
	if !en.opts.BuildLog {
		return
	}
	en.fullLog = append(en.fullLog, e)
}

func (en *Engine) label(t int64) string {
	if en.opts.Breakdown == model.BreakNone {
		return ""
	}
	return timefmt.BucketLabel(t, en.opts.Breakdown)
}

// processEvent dispatches one real event per spec.md §4.F's per-type rules.
func (en *Engine) processEvent(ev model.Event) {
	switch ev.Type {
	case model.TypeServiceAlert, model.TypeCurrentServiceState, model.TypeInitialServiceState:
		en.processServiceState(ev)
	case model.TypeHostAlert, model.TypeCurrentHostState, model.TypeInitialHostState:
		en.processHostState(ev)
	case model.TypeHostDowntimeAlert:
		en.processHostDowntime(ev)
	case model.TypeServiceDowntimeAlert:
		en.processServiceDowntime(ev)
	case model.TypeHostFlappingAlert:
		en.processHostFlapping(ev)
	case model.TypeServiceFlappingAlert:
		en.processServiceFlapping(ev)
	case model.TypeTimeperiodTransition:
		en.processTimeperiodTransition(ev)
	case model.TypeProcessEvent:
		en.processLifecycle(ev)
	case model.TypeHostNotification, model.TypeServiceNotification,
		model.TypeHostEventHandler, model.TypeServiceEventHandler:
		en.appendLog(model.LogEntry{Start: ev.Time, Type: ev.Type, PluginOutput: ev.PluginOutput, Class: "INDETERMINATE", FullOnly: true})
	default:
		en.opts.Logger.Debug("unrecognized event type %q at %d, skipping", ev.Type, ev.Time)
	}
}

func (en *Engine) processHostState(ev model.Event) {
	h, ok := en.hosts[ev.HostName]
	if !ok {
		return // not tracked, not even as a downtime-inheritance parent
	}
	if !en.opts.IncludeSoftStates && !ev.Hard {
		return
	}
	en.applyHostState(h, ev.Time, ev.State, true)

	if en.hostOnly {
		class := stateWordHost(ev.State)
		typ := "HOST " + class
		if ev.Hard {
			typ += " (HARD)"
		}
		en.appendLog(model.LogEntry{Start: ev.Time, Type: typ, PluginOutput: ev.PluginOutput, Class: class})
	}
}

func (en *Engine) processServiceState(ev model.Event) {
	svcs, ok := en.services[ev.HostName]
	if !ok {
		return
	}
	s, ok := svcs[ev.ServiceDescription]
	if !ok {
		return
	}
	if !en.opts.IncludeSoftStates && !ev.Hard {
		return
	}
	en.applyServiceState(s, ev.Time, ev.State, true)

	if en.serviceOnly {
		class := stateWordService(ev.State)
		typ := "SERVICE " + class
		if ev.Hard {
			typ += " (HARD)"
		}
		en.appendLog(model.LogEntry{Start: ev.Time, Type: typ, PluginOutput: ev.PluginOutput, Class: class})
	}
}

func (en *Engine) processHostDowntime(ev model.Event) {
	h, ok := en.hosts[ev.HostName]
	if !ok {
		return
	}
	if !en.opts.ShowScheduledDowntime {
		return
	}
	en.accumulateHost(h, ev.Time)
	h.hist.inDowntime = ev.Start

	if svcs, ok := en.services[ev.HostName]; ok {
		for _, s := range svcs {
			en.accumulateService(s, ev.Time)
		}
	}

	if en.hostOnly {
		action := "STOPPED"
		if ev.Start {
			action = "STARTED"
		}
		en.appendLog(model.LogEntry{Start: ev.Time, Type: "HOST DOWNTIME " + action, Class: "INDETERMINATE"})
	}
}

func (en *Engine) processServiceDowntime(ev model.Event) {
	svcs, ok := en.services[ev.HostName]
	if !ok {
		return
	}
	s, ok := svcs[ev.ServiceDescription]
	if !ok {
		return
	}
	if !en.opts.ShowScheduledDowntime {
		return
	}
	en.accumulateService(s, ev.Time)
	s.hist.inDowntime = ev.Start

	if en.serviceOnly {
		action := "END"
		if ev.Start {
			action = "START"
		}
		en.appendLog(model.LogEntry{Start: ev.Time, Type: "SERVICE DOWNTIME " + action, Class: "INDETERMINATE"})
	}
}

func (en *Engine) processHostFlapping(ev model.Event) {
	h, ok := en.hosts[ev.HostName]
	if !ok {
		return
	}
	en.accumulateHost(h, ev.Time)
	if en.hostOnly {
		action := "STOP"
		if ev.Start {
			action = "START"
		}
		en.appendLog(model.LogEntry{Start: ev.Time, Type: "HOST FLAPPING " + action, Class: "INDETERMINATE", FullOnly: true})
	}
}

func (en *Engine) processServiceFlapping(ev model.Event) {
	svcs, ok := en.services[ev.HostName]
	if !ok {
		return
	}
	s, ok := svcs[ev.ServiceDescription]
	if !ok {
		return
	}
	en.accumulateService(s, ev.Time)
	if en.serviceOnly {
		action := "STOP"
		if ev.Start {
			action = "START"
		}
		en.appendLog(model.LogEntry{Start: ev.Time, Type: "SERVICE FLAPPING " + action, Class: "INDETERMINATE", FullOnly: true})
	}
}

func (en *Engine) processTimeperiodTransition(ev model.Event) {
	if en.rptTimeperiod == "" || ev.Timeperiod != en.rptTimeperiod {
		return
	}
	active := ev.To != "0"
	en.inTimeperiod = &active

	en.advanceAllEntitiesWithLastKnown(ev.Time)

	action := "STOP"
	if active {
		action = "START"
	}
	en.appendLog(model.LogEntry{Start: ev.Time, Type: "TIMEPERIOD " + action, Class: "INDETERMINATE", FullOnly: true})
}

func (en *Engine) processLifecycle(ev model.Event) {
	switch ev.ProcStart {
	case model.ProcNormalStart, model.ProcRestart:
		if !en.opts.AssumeStatesDuringNotRunning {
			en.advanceAllEntitiesWithLastKnown(ev.Time)
		}
		en.appendLog(model.LogEntry{Start: ev.Time, Type: "PROGRAM (RE)START", Class: "INDETERMINATE", FullOnly: true})
	case model.ProcNormalStop, model.ProcErrorStop:
		if !en.opts.AssumeStatesDuringNotRunning {
			en.advanceAllEntitiesToState(ev.Time, model.StateNotRunning, false)
		}
		en.appendLog(model.LogEntry{Start: ev.Time, Type: "PROGRAM END", Class: "INDETERMINATE", FullOnly: true})
	}
}

func stateWordHost(state int) string {
	switch state {
	case model.HostUp:
		return "UP"
	case model.HostDown:
		return "DOWN"
	case model.HostUnreachable:
		return "UNREACHABLE"
	default:
		return "UNKNOWN"
	}
}

func stateWordService(state int) string {
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
		return "UNKNOWN"
	}
}
