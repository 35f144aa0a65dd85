package engine

import "github.com/oceanplexian/gogios-availability/internal/avail/model"

func clampDiff(lo, hi, start, end int64) int64 {
	if lo < start {
		lo = start
	}
	if hi > end {
		hi = end
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// accumulateHost advances h's clock to t, attributing elapsed time to its
// current (pre-advance) state, without changing that state. This is the
// "undef state means do not overwrite" path spec.md §9 calls for.
func (en *Engine) accumulateHost(h *hostEntity, t int64) {
	diff := clampDiff(h.hist.lastStateTime, t, en.opts.Start, en.opts.End)
	advanceBucket(h.buckets, en.label(t), h.hist.lastState, diff, h.hist.inDowntime, en.inTimeperiod, true)
	h.hist.lastStateTime = t
}

func (en *Engine) accumulateService(s *serviceEntity, t int64) {
	diff := clampDiff(s.hist.lastStateTime, t, en.opts.Start, en.opts.End)
	inDown := s.hist.inDowntime
	if h, ok := en.hosts[s.host]; ok {
		inDown = inDown || h.hist.inDowntime
	}
	advanceBucket(s.buckets, en.label(t), s.hist.lastState, diff, inDown, en.inTimeperiod, false)
	s.hist.lastStateTime = t
}

// applyHostState accumulates elapsed time under the old state, then moves
// h onto newState. known marks whether newState should also become the
// entity's last_known_state (per spec.md §3, never negative).
func (en *Engine) applyHostState(h *hostEntity, t int64, newState int, known bool) {
	en.accumulateHost(h, t)
	h.hist.lastState = newState
	if known && newState >= 0 {
		h.hist.lastKnownState = newState
		h.hist.hasLastKnownState = true
	}
}

func (en *Engine) applyServiceState(s *serviceEntity, t int64, newState int, known bool) {
	en.accumulateService(s, t)
	s.hist.lastState = newState
	if known && newState >= 0 {
		s.hist.lastKnownState = newState
		s.hist.hasLastKnownState = true
	}
}

// advanceAllEntities synthesizes a boundary event (report start, a
// breakdown breakpoint, or report end) for every tracked entity: the clock
// advances to t and the entity's state is reasserted from its own history,
// healing a pseudo-state back to the last known concrete one without
// requiring a real event.
func (en *Engine) advanceAllEntities(t int64) {
	for _, h := range en.hosts {
		en.applyHostState(h, t, h.hist.boundaryState(), h.hist.hasLastKnownState)
	}
	for _, svcs := range en.services {
		for _, s := range svcs {
			en.applyServiceState(s, t, s.hist.boundaryState(), s.hist.hasLastKnownState)
		}
	}
}

// advanceAllEntitiesWithLastKnown is used by process-restart and
// timeperiod-transition fanout: each entity reverts to its own
// last_known_state, or UNSPECIFIED if none has ever been recorded.
func (en *Engine) advanceAllEntitiesWithLastKnown(t int64) {
	for _, h := range en.hosts {
		state, known := model.StateUnspecified, false
		if h.hist.hasLastKnownState {
			state, known = h.hist.lastKnownState, true
		}
		en.applyHostState(h, t, state, known)
	}
	for _, svcs := range en.services {
		for _, s := range svcs {
			state, known := model.StateUnspecified, false
			if s.hist.hasLastKnownState {
				state, known = s.hist.lastKnownState, true
			}
			en.applyServiceState(s, t, state, known)
		}
	}
}

// advanceAllEntitiesToState forces every tracked entity to the same
// pseudo-state (used by the process-stop fanout: NOT_RUNNING for all).
func (en *Engine) advanceAllEntitiesToState(t int64, state int, known bool) {
	for _, h := range en.hosts {
		en.applyHostState(h, t, state, known)
	}
	for _, svcs := range en.services {
		for _, s := range svcs {
			en.applyServiceState(s, t, state, known)
		}
	}
}
