// Package timefmt implements the duration and breakdown-label helpers of
// the availability report (component A): formatting elapsed seconds as
// "Nd Nh Nm Ns" and mapping a timestamp onto its breakdown bucket label.
package timefmt

import (
	"fmt"
	"time"

	"github.com/ncruces/go-strftime"
	"github.com/oceanplexian/gogios-availability/internal/avail/model"
)

// FormatDuration renders seconds as "<d>d <h>h <m>m <s>s". Negative inputs
// are absolutized; fractional seconds are truncated away by the caller
// passing an integer count of whole seconds.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = -seconds
	}
	d := seconds / 86400
	seconds -= d * 86400
	h := seconds / 3600
	seconds -= h * 3600
	m := seconds / 60
	seconds -= m * 60
	return fmt.Sprintf("%dd %dh %dm %ds", d, h, m, seconds)
}

// BreakConfig returns the strftime pattern and the nominal advance (in
// seconds) for the given mode: one day, seven days, or thirty days.
// EnumerateLabels does not stride by this advance; it walks day by day and
// de-duplicates on the rendered label, which matters for BreakMonths (see
// DESIGN.md for the 30-day-stride quirk this avoids).
func BreakConfig(mode int) (pattern string, advance int64) {
	switch mode {
	case model.BreakDays:
		return "%Y-%m-%d", 86400
	case model.BreakWeeks:
		return "%Y-KW%V", 86400 * 7
	case model.BreakMonths:
		return "%Y-%m", 86400 * 30
	default:
		return "", 86400
	}
}

// BucketLabel returns the breakdown bucket label for timestamp t under the
// given mode, biasing the end instant of a half-open interval onto the
// prior bucket by formatting t-1 rather than t.
func BucketLabel(t int64, mode int) string {
	pattern, _ := BreakConfig(mode)
	if pattern == "" {
		return ""
	}
	return strftime.Format(pattern, time.Unix(t-1, 0).Local())
}

// FormatTimestamp applies an arbitrary strftime pattern to a unix
// timestamp, honoring the "%s" (raw seconds) convention used by the
// `timeformat` option (spec.md §4.D), which go-strftime does not itself
// special-case.
func FormatTimestamp(t int64, pattern string) string {
	if pattern == "" || pattern == "%s" {
		return fmt.Sprintf("%d", t)
	}
	return strftime.Format(pattern, time.Unix(t, 0).Local())
}

// EnumerateLabels walks day by day from start to end (through the day
// containing end-1) and returns the de-duplicated, ordered set of breakdown
// labels covering [start, end), along with each label's own [lo, hi)
// window clamped to [start, end).
type LabelWindow struct {
	Label    string
	Lo, Hi   int64
}

func EnumerateLabels(start, end int64, mode int) []LabelWindow {
	if mode == model.BreakNone || start >= end {
		return nil
	}
	var out []LabelWindow
	seen := make(map[string]int) // label -> index into out

	// Walk local midnights from the day containing start through the day
	// containing end-1, merging consecutive days that share a label
	// (weeks, months) into a single widened window.
	t := StartOfLocalDay(start)
	stop := StartOfLocalDay(end - 1)
	for t <= stop {
		next := t + 86400
		label := BucketLabel(next, mode) // label as seen by an instant at the end of day t
		lo, hi := t, next
		if idx, ok := seen[label]; ok {
			if lo < out[idx].Lo {
				out[idx].Lo = lo
			}
			if hi > out[idx].Hi {
				out[idx].Hi = hi
			}
		} else {
			seen[label] = len(out)
			out = append(out, LabelWindow{Label: label, Lo: lo, Hi: hi})
		}
		t = next
	}

	for i := range out {
		if out[i].Lo < start {
			out[i].Lo = start
		}
		if out[i].Hi > end {
			out[i].Hi = end
		}
	}
	return out
}

// StartOfLocalDay returns the unix time of local midnight on the day
// containing t.
func StartOfLocalDay(t int64) int64 {
	tm := time.Unix(t, 0).Local()
	y, m, d := tm.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, tm.Location()).Unix()
}
