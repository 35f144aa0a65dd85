package timefmt

import (
	"testing"
	"time"

	"github.com/oceanplexian/gogios-availability/internal/avail/model"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{0, "0d 0h 0m 0s"},
		{59, "0d 0h 0m 59s"},
		{3661, "0d 1h 1m 1s"},
		{90061, "1d 1h 1m 1s"},
		{-5, "0d 0h 0m 5s"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.seconds); got != c.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestFormatTimestamp_RawSeconds(t *testing.T) {
	if got := FormatTimestamp(1700000000, "%s"); got != "1700000000" {
		t.Errorf("got %q, want raw seconds", got)
	}
	if got := FormatTimestamp(1700000000, ""); got != "1700000000" {
		t.Errorf("empty pattern should default to raw seconds, got %q", got)
	}
}

func TestBucketLabel_Days(t *testing.T) {
	loc := time.Local
	midnight := time.Date(2024, 3, 15, 0, 0, 0, 0, loc).Unix()
	label := BucketLabel(midnight, model.BreakDays)
	if label != "2024-03-14" {
		t.Errorf("BucketLabel biases onto the prior day for a boundary instant, got %q", label)
	}
	midday := time.Date(2024, 3, 15, 12, 0, 0, 0, loc).Unix()
	if got := BucketLabel(midday, model.BreakDays); got != "2024-03-15" {
		t.Errorf("got %q, want 2024-03-15", got)
	}
}

func TestEnumerateLabels_CoversWindowExactly(t *testing.T) {
	loc := time.Local
	start := time.Date(2024, 1, 1, 6, 0, 0, 0, loc).Unix()
	end := time.Date(2024, 1, 4, 12, 0, 0, 0, loc).Unix()

	windows := EnumerateLabels(start, end, model.BreakDays)
	if len(windows) != 4 {
		t.Fatalf("expected 4 day labels, got %d: %+v", len(windows), windows)
	}
	if windows[0].Lo != start {
		t.Errorf("first window should start clamped to report start, got %d want %d", windows[0].Lo, start)
	}
	if windows[len(windows)-1].Hi != end {
		t.Errorf("last window should end clamped to report end, got %d want %d", windows[len(windows)-1].Hi, end)
	}
	var total int64
	for _, w := range windows {
		total += w.Hi - w.Lo
	}
	if total != end-start {
		t.Errorf("window spans must sum to the full report interval: got %d want %d", total, end-start)
	}
}

func TestEnumerateLabels_NoneModeEmpty(t *testing.T) {
	if got := EnumerateLabels(0, 100, model.BreakNone); got != nil {
		t.Errorf("BreakNone should yield no labels, got %+v", got)
	}
}

func TestStartOfLocalDay(t *testing.T) {
	loc := time.Local
	t1 := time.Date(2024, 6, 10, 14, 30, 0, 0, loc).Unix()
	want := time.Date(2024, 6, 10, 0, 0, 0, 0, loc).Unix()
	if got := StartOfLocalDay(t1); got != want {
		t.Errorf("StartOfLocalDay(%d) = %d, want %d", t1, got, want)
	}
}
