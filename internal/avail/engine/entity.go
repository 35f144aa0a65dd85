package engine

import (
	"github.com/oceanplexian/gogios-availability/internal/avail/model"
	"github.com/oceanplexian/gogios-availability/internal/avail/report"
)

// history is the per-entity mutable state the engine walks forward in time.
// Owned exclusively by the engine for the lifetime of one Calculate call;
// discarded when it returns (spec.md §3).
type history struct {
	inDowntime        bool
	lastState         int
	lastKnownState    int
	hasLastKnownState bool
	lastStateTime     int64
}

type hostEntity struct {
	name    string
	tracked bool // appears in the public Result.Hosts map
	hist    history
	buckets *report.Buckets
}

type serviceEntity struct {
	host    string
	service string
	tracked bool
	hist    history
	buckets *report.Buckets
}

func newHistory(initialState int, start int64) history {
	return history{lastState: initialState, lastStateTime: start}
}

// boundaryState returns the state a synthesized boundary event (initial,
// breakpoint, or end-of-report) should carry: the entity's last known
// concrete state when one exists, otherwise whatever pseudo-state it
// currently holds. This lets a NOT_RUNNING/UNSPECIFIED gap heal back to the
// last confirmed state once no more real events occur, without requiring an
// explicit state event.
func (h *history) boundaryState() int {
	if h.hasLastKnownState {
		return h.lastKnownState
	}
	return h.lastState
}

func advanceBucket(b *report.Buckets, label string, state int, diff int64, inDowntime bool, inTimeperiod *bool, isHost bool) {
	if diff <= 0 {
		return
	}
	if inTimeperiod != nil && !*inTimeperiod {
		b.AddTime(label, "time_indeterminate_outside_timeperiod", diff, false, "")
		return
	}
	switch state {
	case model.StateUnspecified:
		b.AddTime(label, "time_indeterminate_nodata", diff, inDowntime, "scheduled_time_indeterminate")
	case model.StateNotRunning:
		b.AddTime(label, "time_indeterminate_notrunning", diff, false, "")
	default:
		if isHost {
			switch state {
			case model.HostUp:
				b.AddTime(label, "time_up", diff, inDowntime, "")
			case model.HostDown:
				b.AddTime(label, "time_down", diff, inDowntime, "")
			case model.HostUnreachable:
				b.AddTime(label, "time_unreachable", diff, inDowntime, "")
			default:
				b.AddTime(label, "time_indeterminate_nodata", diff, inDowntime, "scheduled_time_indeterminate")
			}
		} else {
			switch state {
			case model.ServiceOK:
				b.AddTime(label, "time_ok", diff, inDowntime, "")
			case model.ServiceWarning:
				b.AddTime(label, "time_warning", diff, inDowntime, "")
			case model.ServiceCritical:
				b.AddTime(label, "time_critical", diff, inDowntime, "")
			case model.ServiceUnknown:
				b.AddTime(label, "time_unknown", diff, inDowntime, "")
			default:
				b.AddTime(label, "time_indeterminate_nodata", diff, inDowntime, "scheduled_time_indeterminate")
			}
		}
	}
}
