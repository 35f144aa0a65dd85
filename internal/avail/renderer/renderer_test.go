package renderer

import (
	"testing"

	"github.com/oceanplexian/gogios-availability/internal/avail/model"
)

func TestRender_EndAndDurationDerivedFromNextEntry(t *testing.T) {
	entries := []model.LogEntry{
		{Start: 100, Type: "HOST UP", Class: "UP"},
		{Start: 300, Type: "HOST DOWN", Class: "DOWN"},
	}
	full, condensed := Render(entries, Options{Start: 0, End: 500, TimeFormat: "%s"})
	if len(full) != 2 || len(condensed) != 2 {
		t.Fatalf("expected 2 entries in both views, got full=%d condensed=%d", len(full), len(condensed))
	}
	if full[0].End != "300" {
		t.Errorf("first entry's End should be the next entry's Start, got %q", full[0].End)
	}
	if full[0].Duration != "0d 0h 3m 20s" {
		t.Errorf("unexpected duration for first entry: %q", full[0].Duration)
	}
	if full[1].End != "500" {
		t.Errorf("last entry's End should be the report end, got %q", full[1].End)
	}
}

func TestRender_OverflowSuffix(t *testing.T) {
	entries := []model.LogEntry{{Start: 100, Type: "HOST DOWN", Class: "DOWN"}}
	full, _ := Render(entries, Options{Start: 0, End: 50, TimeFormat: "%s"})
	if len(full) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(full))
	}
	if full[0].Duration[len(full[0].Duration)-1] != '+' {
		t.Errorf("an entry whose end exceeds the report window should get a + suffix, got %q", full[0].Duration)
	}
}

func TestRender_FullOnlyExcludedFromCondensed(t *testing.T) {
	entries := []model.LogEntry{
		{Start: 10, Type: "HOST UP", Class: "UP"},
		{Start: 20, Type: "TIMEPERIOD START", Class: "INDETERMINATE", FullOnly: true},
		{Start: 30, Type: "HOST DOWN", Class: "DOWN"},
	}
	full, condensed := Render(entries, Options{Start: 0, End: 100, TimeFormat: "%s"})
	if len(full) != 3 {
		t.Errorf("full log should keep every entry, got %d", len(full))
	}
	if len(condensed) != 2 {
		t.Errorf("condensed log should drop full-only entries, got %d", len(condensed))
	}
	for _, e := range condensed {
		if e.Type == "TIMEPERIOD START" {
			t.Error("condensed log leaked a full-only entry")
		}
	}
}

func TestRender_SingleEntityFixedInitialPrepended(t *testing.T) {
	entries := []model.LogEntry{{Start: 50, Type: "HOST DOWN", Class: "DOWN"}}
	full, _ := Render(entries, Options{
		Start: 0, End: 100, TimeFormat: "%s",
		SingleEntityFixedInitial: true,
		InitialStateLabel:        "HOST UP",
	})
	if len(full) != 2 {
		t.Fatalf("expected the fixed-initial entry to be prepended, got %d entries", len(full))
	}
	if full[0].Type != "INITIAL STATE ASSUMED" || full[0].Class != "HOST UP" {
		t.Errorf("unexpected synthetic entry: %+v", full[0])
	}
	if full[0].Start != "0" {
		t.Errorf("synthetic entry should start at the report start, got %q", full[0].Start)
	}
}

func TestRender_SingleEntityFixedInitialBeforeEarlyFirstEntry(t *testing.T) {
	entries := []model.LogEntry{{Start: 0, Type: "HOST DOWN", Class: "DOWN"}}
	full, _ := Render(entries, Options{
		Start: 0, End: 100, TimeFormat: "%s",
		SingleEntityFixedInitial: true,
		InitialStateLabel:        "HOST UP",
	})
	if len(full) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(full))
	}
	if full[0].Start != "-1" {
		t.Errorf("synthetic entry must sort strictly before an entry already at report start, got Start=%q", full[0].Start)
	}
}
