package extract

import (
	"testing"

	"github.com/oceanplexian/gogios-availability/internal/avail/model"
)

func TestExtractLine_ServiceAlert(t *testing.T) {
	e, ok := ExtractLine("[1609459200] SERVICE ALERT: web1;HTTP;CRITICAL;HARD;3;Connection refused")
	if !ok {
		t.Fatal("expected event")
	}
	if e.Type != model.TypeServiceAlert || e.HostName != "web1" || e.ServiceDescription != "HTTP" {
		t.Fatalf("unexpected event: %+v", e)
	}
	if !e.HasState || e.State != model.ServiceCritical {
		t.Fatalf("expected CRITICAL state, got %+v", e)
	}
	if !e.Hard {
		t.Error("expected HARD state type")
	}
	if e.PluginOutput != "Connection refused" {
		t.Errorf("unexpected plugin output %q", e.PluginOutput)
	}
}

func TestExtractLine_HostAlert_Soft(t *testing.T) {
	e, ok := ExtractLine("[1609459200] HOST ALERT: router1;DOWN;SOFT;1;no response")
	if !ok {
		t.Fatal("expected event")
	}
	if e.State != model.HostDown || e.Hard {
		t.Fatalf("expected soft DOWN, got %+v", e)
	}
}

func TestExtractLine_UnrecognizedStateWordDropped(t *testing.T) {
	if _, ok := ExtractLine("[1609459200] SERVICE ALERT: web1;HTTP;WEIRD;HARD;3;out"); ok {
		t.Error("unrecognized state word should drop the event")
	}
}

func TestExtractLine_HostDowntime(t *testing.T) {
	e, ok := ExtractLine("[1609459200] HOST DOWNTIME ALERT: router1;STARTED; Primary downtime changed to active")
	if !ok {
		t.Fatal("expected event")
	}
	if e.Type != model.TypeHostDowntimeAlert || !e.Start {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestExtractLine_TimeperiodTransition_DoublePrefix(t *testing.T) {
	e, ok := ExtractLine("[1609459200] TIMEPERIOD TRANSITION: TIMEPERIOD TRANSITION: 24x7;0;1")
	if !ok {
		t.Fatal("expected event")
	}
	if e.Timeperiod != "24x7" || e.From != "0" || e.To != "1" {
		t.Fatalf("double-prefix wasn't stripped: %+v", e)
	}
}

func TestExtractLine_ProcessLifecycle(t *testing.T) {
	cases := []struct {
		line string
		want int
		ok   bool
	}{
		{"[1609459200] Nagios 4.4.6 starting... (PID=1234)", model.ProcNormalStart, true},
		{"[1609459200] Caught SIGHUP, restarting...", model.ProcRestart, true},
		{"[1609459200] Successfully shutting down...", model.ProcNormalStop, true},
		{"[1609459200] Bailing out due to errors", model.ProcErrorStop, true},
		{"[1609459200] LOG ROTATION", 0, false},
		{"[1609459200] LOG VERSION", 0, false},
		{"[1609459200] some unrelated free text", 0, false},
	}
	for _, c := range cases {
		e, ok := ExtractLine(c.line)
		if ok != c.ok {
			t.Errorf("%q: ok = %v, want %v", c.line, ok, c.ok)
			continue
		}
		if ok && e.ProcStart != c.want {
			t.Errorf("%q: ProcStart = %d, want %d", c.line, e.ProcStart, c.want)
		}
	}
}

func TestExtractLine_MalformedDropped(t *testing.T) {
	cases := []string{
		"",
		"no brackets",
		"[not-a-number] SERVICE ALERT: a;b;OK;HARD;1;x",
		"[1609459200 missing bracket",
	}
	for _, line := range cases {
		if _, ok := ExtractLine(line); ok {
			t.Errorf("%q: expected the line to be dropped", line)
		}
	}
}

func TestExtractExternalCommand_HostScoped(t *testing.T) {
	e, ok := ExtractLine("[1609459200] EXTERNAL COMMAND: SCHEDULE_HOST_DOWNTIME;router1;1609459200;1609462800;1;0;3600;admin;planned maintenance")
	if !ok {
		t.Fatal("expected event")
	}
	if e.HostName != "router1" {
		t.Errorf("expected host-scoped extraction, got %+v", e)
	}
	if e.ServiceDescription != "" {
		t.Errorf("host-scoped command should not populate service, got %+v", e)
	}
}

func TestExtractExternalCommand_ServiceScoped(t *testing.T) {
	e, ok := ExtractLine("[1609459200] EXTERNAL COMMAND: SCHEDULE_SVC_DOWNTIME;web1;HTTP;1609459200;1609462800;1;0;3600;admin;maintenance")
	if !ok {
		t.Fatal("expected event")
	}
	if e.HostName != "web1" || e.ServiceDescription != "HTTP" {
		t.Fatalf("expected service-scoped extraction, got %+v", e)
	}
}

func TestExtractExternalCommand_UnrecognizedNameScopeless(t *testing.T) {
	e, ok := ExtractLine("[1609459200] EXTERNAL COMMAND: SOME_FUTURE_COMMAND;a;b;c")
	if !ok {
		t.Fatal("unrecognized commands still yield an event, just with no scope")
	}
	if e.HostName != "" || e.ServiceDescription != "" {
		t.Errorf("unrecognized command name shouldn't guess a scope, got %+v", e)
	}
}

func TestExtractStructured_Message(t *testing.T) {
	row := map[string]interface{}{
		"time":    float64(1609459200),
		"message": "[1609459200] HOST ALERT: router1;UP;HARD;1;ping ok",
	}
	e, ok := ExtractStructured(row)
	if !ok {
		t.Fatal("expected event")
	}
	if e.HostName != "router1" || e.State != model.HostUp {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestExtractStructured_Options(t *testing.T) {
	row := map[string]interface{}{
		"time":    int64(1609459200),
		"type":    model.TypeHostAlert,
		"options": "router1;DOWN;HARD;3;no response",
	}
	e, ok := ExtractStructured(row)
	if !ok {
		t.Fatal("expected event")
	}
	if e.HostName != "router1" || e.State != model.HostDown {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestIngestString_SortOrderPreservedPerLine(t *testing.T) {
	log := "[1609459100] HOST ALERT: h1;DOWN;HARD;1;x\n" +
		"not a log line, ignored\n" +
		"[1609459200] HOST ALERT: h1;UP;HARD;1;y\n"
	events := IngestString(log)
	if len(events) != 2 {
		t.Fatalf("expected 2 events (malformed line dropped), got %d", len(events))
	}
	if events[0].Time != 1609459100 || events[1].Time != 1609459200 {
		t.Fatalf("unexpected event order: %+v", events)
	}
}

func TestDecodeBestEffort_FallsBackToISO8859_1(t *testing.T) {
	// 0xE9 is 'é' in ISO-8859-1 but not valid standalone UTF-8.
	raw := []byte("[1609459200] HOST ALERT: caf\xe9;UP;HARD;1;x")
	s := decodeBestEffort(raw)
	if !contains(s, "café") {
		t.Errorf("expected ISO-8859-1 fallback to decode to 'café', got %q", s)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
