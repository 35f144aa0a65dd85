package engine

import "github.com/oceanplexian/gogios-availability/internal/avail/report"

// HostBuckets is one host's (or one breakdown label's) accumulated seconds.
type HostBuckets struct {
	TimeUp          int64
	TimeDown        int64
	TimeUnreachable int64

	ScheduledTimeUp          int64
	ScheduledTimeDown        int64
	ScheduledTimeUnreachable int64
	ScheduledTimeIndeterminate int64

	TimeIndeterminateNodata            int64
	TimeIndeterminateNotrunning        int64
	TimeIndeterminateOutsideTimeperiod int64
}

// HostResult is a host's full result: totals plus an optional breakdown.
type HostResult struct {
	HostBuckets
	Breakdown map[string]*HostBuckets
}

// ServiceBuckets is one service's (or one breakdown label's) accumulated seconds.
type ServiceBuckets struct {
	TimeOK       int64
	TimeWarning  int64
	TimeCritical int64
	TimeUnknown  int64

	ScheduledTimeOK          int64
	ScheduledTimeWarning     int64
	ScheduledTimeCritical    int64
	ScheduledTimeUnknown     int64
	ScheduledTimeIndeterminate int64

	TimeIndeterminateNodata            int64
	TimeIndeterminateNotrunning        int64
	TimeIndeterminateOutsideTimeperiod int64
}

// ServiceResult is a service's full result: totals plus an optional breakdown.
type ServiceResult struct {
	ServiceBuckets
	Breakdown map[string]*ServiceBuckets
}

// Result is the public output of Calculate: per-host and per-(host,service)
// time accounting over the report interval.
type Result struct {
	Hosts    map[string]*HostResult
	Services map[string]map[string]*ServiceResult
}

func hostBucketsFromMap(m map[string]int64) *HostBuckets {
	return &HostBuckets{
		TimeUp:                             m["time_up"],
		TimeDown:                           m["time_down"],
		TimeUnreachable:                    m["time_unreachable"],
		ScheduledTimeUp:                    m["scheduled_time_up"],
		ScheduledTimeDown:                  m["scheduled_time_down"],
		ScheduledTimeUnreachable:           m["scheduled_time_unreachable"],
		ScheduledTimeIndeterminate:         m["scheduled_time_indeterminate"],
		TimeIndeterminateNodata:            m["time_indeterminate_nodata"],
		TimeIndeterminateNotrunning:        m["time_indeterminate_notrunning"],
		TimeIndeterminateOutsideTimeperiod: m["time_indeterminate_outside_timeperiod"],
	}
}

func serviceBucketsFromMap(m map[string]int64) *ServiceBuckets {
	return &ServiceBuckets{
		TimeOK:                             m["time_ok"],
		TimeWarning:                        m["time_warning"],
		TimeCritical:                       m["time_critical"],
		TimeUnknown:                        m["time_unknown"],
		ScheduledTimeOK:                    m["scheduled_time_ok"],
		ScheduledTimeWarning:               m["scheduled_time_warning"],
		ScheduledTimeCritical:              m["scheduled_time_critical"],
		ScheduledTimeUnknown:               m["scheduled_time_unknown"],
		ScheduledTimeIndeterminate:         m["scheduled_time_indeterminate"],
		TimeIndeterminateNodata:            m["time_indeterminate_nodata"],
		TimeIndeterminateNotrunning:        m["time_indeterminate_notrunning"],
		TimeIndeterminateOutsideTimeperiod: m["time_indeterminate_outside_timeperiod"],
	}
}

func hostResultFromBuckets(b *report.Buckets) *HostResult {
	r := &HostResult{HostBuckets: *hostBucketsFromMap(b.Totals)}
	if b.Breakdown != nil {
		r.Breakdown = make(map[string]*HostBuckets, len(b.Breakdown))
		for label, m := range b.Breakdown {
			r.Breakdown[label] = hostBucketsFromMap(m)
		}
	}
	return r
}

func serviceResultFromBuckets(b *report.Buckets) *ServiceResult {
	r := &ServiceResult{ServiceBuckets: *serviceBucketsFromMap(b.Totals)}
	if b.Breakdown != nil {
		r.Breakdown = make(map[string]*ServiceBuckets, len(b.Breakdown))
		for label, m := range b.Breakdown {
			r.Breakdown[label] = serviceBucketsFromMap(m)
		}
	}
	return r
}
