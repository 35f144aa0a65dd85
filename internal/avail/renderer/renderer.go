// Package renderer implements the log post-processor (component G): it
// turns the engine's raw recorded entries into ordered, duration-annotated
// condensed and full log views.
package renderer

import (
	"sort"

	"github.com/oceanplexian/gogios-availability/internal/avail/model"
	"github.com/oceanplexian/gogios-availability/internal/avail/timefmt"
)

// RenderedEntry is one line of the condensed or full log, with its
// duration and timestamps already formatted per the report's timeformat.
type RenderedEntry struct {
	Start        string
	End          string
	Duration     string
	Type         string
	PluginOutput string
	Class        string
}

// Options configures rendering: the report window, the timeformat
// pattern, and whether a single fixed initial-state entry should be
// synthesized at the front (only meaningful when exactly one entity is
// being reported and its initial state was forced rather than assumed from
// history).
type Options struct {
	Start, End int64
	TimeFormat string

	SingleEntityFixedInitial bool
	InitialStateLabel        string // e.g. "HOST UP" / "SERVICE OK"
}

// Render applies spec.md §4.G's five post-processing steps to raw entries
// and returns (fullLog, condensedLog).
func Render(entries []model.LogEntry, opts Options) (full, condensed []RenderedEntry) {
	sorted := append([]model.LogEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	if opts.SingleEntityFixedInitial {
		start := opts.Start
		if len(sorted) > 0 && sorted[0].Start <= start {
			start = sorted[0].Start - 1
		}
		fake := model.LogEntry{
			Start: start,
			Type:  "INITIAL STATE ASSUMED",
			Class: opts.InitialStateLabel,
		}
		sorted = append([]model.LogEntry{fake}, sorted...)
	}

	full = make([]RenderedEntry, 0, len(sorted))
	for i, e := range sorted {
		end := opts.End
		if i+1 < len(sorted) {
			end = sorted[i+1].Start
		}
		dur := end - e.Start
		suffix := ""
		if end > opts.End || i+1 == len(sorted) {
			suffix = "+"
		}
		full = append(full, RenderedEntry{
			Start:        timefmt.FormatTimestamp(e.Start, opts.TimeFormat),
			End:          timefmt.FormatTimestamp(end, opts.TimeFormat),
			Duration:     timefmt.FormatDuration(dur) + suffix,
			Type:         e.Type,
			PluginOutput: e.PluginOutput,
			Class:        e.Class,
		})
	}

	for i, e := range sorted {
		if e.FullOnly {
			continue
		}
		condensed = append(condensed, full[i])
	}
	return full, condensed
}
