package report

import "testing"

func TestAddTime_PlainAccumulation(t *testing.T) {
	b := NewBuckets()
	b.AddTime("", "time_up", 100, false, "")
	b.AddTime("", "time_up", 50, false, "")
	if got := b.Get("time_up"); got != 150 {
		t.Errorf("time_up = %d, want 150", got)
	}
	if got := b.Get("scheduled_time_up"); got != 0 {
		t.Errorf("scheduled_time_up should stay untouched outside downtime, got %d", got)
	}
}

func TestAddTime_ScheduledMirror(t *testing.T) {
	b := NewBuckets()
	b.AddTime("", "time_down", 100, true, "")
	if got := b.Get("time_down"); got != 100 {
		t.Errorf("time_down = %d, want 100", got)
	}
	if got := b.Get("scheduled_time_down"); got != 100 {
		t.Errorf("scheduled_time_down = %d, want 100 (mirrors time_down during downtime)", got)
	}
}

func TestAddTime_ExplicitScheduledBucket(t *testing.T) {
	b := NewBuckets()
	b.AddTime("", "time_indeterminate_nodata", 30, true, "scheduled_time_indeterminate")
	if got := b.Get("scheduled_time_indeterminate"); got != 30 {
		t.Errorf("explicit scheduled bucket should be used instead of the scheduled_ prefix default, got %d", got)
	}
	if got := b.Get("scheduled_time_indeterminate_nodata"); got != 0 {
		t.Error("the default-named scheduled bucket should not also be touched")
	}
}

func TestAddTime_ZeroDeltaNoOp(t *testing.T) {
	b := NewBuckets()
	b.AddTime("", "time_up", 0, true, "")
	if len(b.Totals) != 0 {
		t.Errorf("zero delta should not create any bucket, got %+v", b.Totals)
	}
}

func TestEnableBreakdown_PreCreatesAllLabels(t *testing.T) {
	b := NewBuckets()
	b.EnableBreakdown([]string{"2024-01-01", "2024-01-02"})
	if len(b.Breakdown) != 2 {
		t.Fatalf("expected 2 pre-created labels, got %d", len(b.Breakdown))
	}
	if len(b.Breakdown["2024-01-01"]) != 0 {
		t.Error("a pre-created label should start with no buckets touched")
	}
}

func TestAddTime_MirrorsIntoBreakdownLabel(t *testing.T) {
	b := NewBuckets()
	b.EnableBreakdown([]string{"2024-01-01"})
	b.AddTime("2024-01-01", "time_ok", 60, true, "")
	if got := b.Breakdown["2024-01-01"]["time_ok"]; got != 60 {
		t.Errorf("breakdown time_ok = %d, want 60", got)
	}
	if got := b.Breakdown["2024-01-01"]["scheduled_time_ok"]; got != 60 {
		t.Errorf("breakdown scheduled_time_ok = %d, want 60", got)
	}
	if got := b.Get("time_ok"); got != 60 {
		t.Errorf("totals should accumulate independently of breakdown, got %d", got)
	}
}

func TestAddTime_UnknownLabelIgnoredWhenBreakdownDisabled(t *testing.T) {
	b := NewBuckets()
	b.AddTime("2024-01-01", "time_ok", 60, false, "")
	if b.Breakdown != nil {
		t.Error("breakdown map should stay nil until EnableBreakdown is called")
	}
}
