// Package report implements the time-bucket accumulator (component E):
// per-entity total/scheduled/indeterminate buckets, with an optional
// breakdown sub-mapping keyed by a calendar label.
package report

// Buckets holds one entity's accumulated seconds, keyed by bucket name
// (e.g. "time_ok", "scheduled_time_down", "time_indeterminate_nodata").
// Entries are created lazily on first use, mirroring spec.md §4.E.
type Buckets struct {
	Totals    map[string]int64
	Breakdown map[string]map[string]int64 // label -> bucket -> seconds
}

// NewBuckets returns an empty bucket set.
func NewBuckets() *Buckets {
	return &Buckets{Totals: make(map[string]int64)}
}

// EnableBreakdown pre-creates an empty bucket set for every given label so
// that every label covering the report interval is represented even if no
// time ever accrues to it (spec.md §3 "All buckets in the breakdown are
// pre-created for every label covering the interval").
func (b *Buckets) EnableBreakdown(labels []string) {
	b.Breakdown = make(map[string]map[string]int64, len(labels))
	for _, l := range labels {
		b.Breakdown[l] = make(map[string]int64)
	}
}

// AddTime implements spec.md §4.E's add_time: data[bucket] += delta, plus
// the scheduled-time mirror when inDowntime, plus the breakdown label's own
// copy of both when breakdown is enabled. scheduledBucket defaults to
// "scheduled_"+bucket when empty.
func (b *Buckets) AddTime(label string, bucket string, delta int64, inDowntime bool, scheduledBucket string) {
	if delta == 0 {
		return
	}
	b.Totals[bucket] += delta
	if inDowntime {
		sb := scheduledBucket
		if sb == "" {
			sb = "scheduled_" + bucket
		}
		b.Totals[sb] += delta
	}
	if b.Breakdown != nil && label != "" {
		bd, ok := b.Breakdown[label]
		if !ok {
			bd = make(map[string]int64)
			b.Breakdown[label] = bd
		}
		bd[bucket] += delta
		if inDowntime {
			sb := scheduledBucket
			if sb == "" {
				sb = "scheduled_" + bucket
			}
			bd[sb] += delta
		}
	}
}

// Get returns the accumulated seconds for a bucket (0 if never touched).
func (b *Buckets) Get(bucket string) int64 {
	return b.Totals[bucket]
}
