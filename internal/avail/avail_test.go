package avail

import (
	"testing"

	"github.com/oceanplexian/gogios-availability/internal/avail/options"
)

func TestReport_CalculateFromLogString(t *testing.T) {
	raw := options.Raw{
		Values:   map[string]string{"initialassumedhoststate": "up"},
		HasStart: true, HasEnd: true,
		Start: 0, End: 1000,
		Hosts: []string{"router1"},
	}
	report, err := New(raw)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	log := "[0000000500] HOST ALERT: router1;DOWN;HARD;1;no response\n"
	result, err := report.Calculate(Sources{LogString: log})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	host := result.Hosts["router1"]
	if host == nil {
		t.Fatal("expected a tracked host result")
	}
	if host.TimeUp != 500 || host.TimeDown != 500 {
		t.Errorf("unexpected host buckets: %+v", host.HostBuckets)
	}

	condensed := report.CondensedLog()
	if len(condensed) == 0 {
		t.Error("expected at least one condensed log entry for a single tracked host")
	}
}

func TestReport_InitialStateCurrentResolvesToConcreteLabel(t *testing.T) {
	raw := options.Raw{
		Values: map[string]string{"initialassumedhoststate": "current"},
		InitialHostStates: map[string]string{
			"router1": "down",
		},
		HasStart: true, HasEnd: true,
		Start: 0, End: 1000,
		Hosts: []string{"router1"},
	}
	report, err := New(raw)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	log := "[0000000500] HOST ALERT: router1;UP;HARD;1;ping ok\n"
	if _, err := report.Calculate(Sources{LogString: log}); err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	full := report.FullLog()
	if len(full) == 0 || full[0].Type != "INITIAL STATE ASSUMED" {
		t.Fatalf("expected a synthetic initial-state entry, got %+v", full)
	}
	if full[0].Class != "HOST DOWN" {
		t.Errorf("initialassumedhoststate=current should resolve against initial_states.hosts, got Class=%q, want %q", full[0].Class, "HOST DOWN")
	}
}

func TestReport_UnknownOptionRejected(t *testing.T) {
	raw := options.Raw{
		Values:   map[string]string{"notarealoption": "x"},
		HasStart: true, HasEnd: true,
	}
	if _, err := New(raw); err == nil {
		t.Error("expected a ConfigError for an unrecognized option")
	}
}

func TestReport_IOErrorOnMissingFile(t *testing.T) {
	raw := options.Raw{HasStart: true, HasEnd: true, Start: 0, End: 100}
	report, err := New(raw)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := report.Calculate(Sources{LogFiles: []string{"/nonexistent/path.log"}}); err == nil {
		t.Error("expected an IOError for a missing log file")
	}
}
