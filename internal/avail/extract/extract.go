// Package extract implements the log record extractor (component C): a
// pure, best-effort line-oriented parser that turns raw Nagios log lines
// or pre-split livestatus rows into normalized model.Event records.
//
// Extraction never fails loudly: a line that cannot be understood is
// dropped, per spec.md §7 ("ParseError: never surfaced").
package extract

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/oceanplexian/gogios-availability/internal/avail/model"
)

// serviceStateWords maps a textual service state word to its numeric value.
// Unmapped words cause the event to be dropped.
var serviceStateWords = map[string]int{
	"OK":         model.ServiceOK,
	"RECOVERY":   model.ServiceOK,
	"PENDING":    model.ServiceOK,
	"WARNING":    model.ServiceWarning,
	"CRITICAL":   model.ServiceCritical,
	"UNKNOWN":    model.ServiceUnknown,
	"(unknown)":  model.ServiceUnknown,
}

// hostStateWords maps a textual host state word to its numeric value.
var hostStateWords = map[string]int{
	"UP":          model.HostUp,
	"OK":          model.HostUp,
	"RECOVERY":    model.HostUp,
	"PENDING":     model.HostUp,
	"DOWN":        model.HostDown,
	"UNREACHABLE": model.HostUnreachable,
	"(unknown)":   model.ServiceUnknown,
}

// hostScopedCommands is the fixed set of EXTERNAL COMMAND names that carry a
// single host_name as the first field of their remainder. Grounded on
// internal/extcmd's expectedArgCount table, restricted to the commands that
// actually name a single host rather than a comment/downtime ID or a group.
var hostScopedCommands = buildCommandSet(
	"ACKNOWLEDGE_HOST_PROBLEM",
	"ADD_HOST_COMMENT",
	"DEL_ALL_HOST_COMMENTS",
	"SCHEDULE_HOST_DOWNTIME",
	"SCHEDULE_HOST_SVC_DOWNTIME",
	"SCHEDULE_AND_PROPAGATE_HOST_DOWNTIME",
	"SCHEDULE_AND_PROPAGATE_TRIGGERED_HOST_DOWNTIME",
	"REMOVE_HOST_ACKNOWLEDGEMENT",
	"ENABLE_HOST_NOTIFICATIONS",
	"DISABLE_HOST_NOTIFICATIONS",
	"ENABLE_HOST_SVC_NOTIFICATIONS",
	"DISABLE_HOST_SVC_NOTIFICATIONS",
	"SCHEDULE_HOST_CHECK",
	"SCHEDULE_FORCED_HOST_CHECK",
	"PROCESS_HOST_CHECK_RESULT",
	"SEND_CUSTOM_HOST_NOTIFICATION",
	"DELAY_HOST_NOTIFICATION",
	"SCHEDULE_HOST_SVC_CHECKS",
	"SCHEDULE_FORCED_HOST_SVC_CHECKS",
	"ENABLE_HOST_CHECK",
	"DISABLE_HOST_CHECK",
	"ENABLE_PASSIVE_HOST_CHECKS",
	"DISABLE_PASSIVE_HOST_CHECKS",
	"ENABLE_HOST_EVENT_HANDLER",
	"DISABLE_HOST_EVENT_HANDLER",
	"ENABLE_HOST_FLAP_DETECTION",
	"DISABLE_HOST_FLAP_DETECTION",
	"SET_HOST_NOTIFICATION_NUMBER",
	"CHANGE_NORMAL_HOST_CHECK_INTERVAL",
	"CHANGE_RETRY_HOST_CHECK_INTERVAL",
	"CHANGE_MAX_HOST_CHECK_ATTEMPTS",
	"CHANGE_HOST_EVENT_HANDLER",
	"CHANGE_HOST_CHECK_COMMAND",
	"CHANGE_HOST_CHECK_TIMEPERIOD",
	"CHANGE_HOST_NOTIFICATION_TIMEPERIOD",
	"CHANGE_CUSTOM_HOST_VAR",
	"ENABLE_HOST_AND_CHILD_NOTIFICATIONS",
	"DISABLE_HOST_AND_CHILD_NOTIFICATIONS",
	"ENABLE_ALL_NOTIFICATIONS_BEYOND_HOST",
	"DISABLE_ALL_NOTIFICATIONS_BEYOND_HOST",
	"START_OBSESSING_OVER_HOST",
	"STOP_OBSESSING_OVER_HOST",
	"CHANGE_HOST_MODATTR",
)

// serviceScopedCommands is the fixed set of EXTERNAL COMMAND names that
// carry host_name and service_description as the first two fields.
var serviceScopedCommands = buildCommandSet(
	"ACKNOWLEDGE_SVC_PROBLEM",
	"ADD_SVC_COMMENT",
	"SCHEDULE_SVC_DOWNTIME",
	"REMOVE_SVC_ACKNOWLEDGEMENT",
	"ENABLE_SVC_NOTIFICATIONS",
	"DISABLE_SVC_NOTIFICATIONS",
	"SCHEDULE_SVC_CHECK",
	"SCHEDULE_FORCED_SVC_CHECK",
	"PROCESS_SERVICE_CHECK_RESULT",
	"SEND_CUSTOM_SVC_NOTIFICATION",
	"DELAY_SVC_NOTIFICATION",
	"ENABLE_SVC_CHECK",
	"DISABLE_SVC_CHECK",
	"ENABLE_PASSIVE_SVC_CHECKS",
	"DISABLE_PASSIVE_SVC_CHECKS",
	"ENABLE_SVC_EVENT_HANDLER",
	"DISABLE_SVC_EVENT_HANDLER",
	"ENABLE_SVC_FLAP_DETECTION",
	"DISABLE_SVC_FLAP_DETECTION",
	"SET_SVC_NOTIFICATION_NUMBER",
	"CHANGE_NORMAL_SVC_CHECK_INTERVAL",
	"CHANGE_RETRY_SVC_CHECK_INTERVAL",
	"CHANGE_MAX_SVC_CHECK_ATTEMPTS",
	"CHANGE_SVC_EVENT_HANDLER",
	"CHANGE_SVC_CHECK_COMMAND",
	"CHANGE_SVC_CHECK_TIMEPERIOD",
	"CHANGE_SVC_NOTIFICATION_TIMEPERIOD",
	"CHANGE_CUSTOM_SVC_VAR",
	"START_OBSESSING_OVER_SVC",
	"STOP_OBSESSING_OVER_SVC",
	"CHANGE_SVC_MODATTR",
)

func buildCommandSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// ExtractLine parses one textual log line of the form
// "[SSSSSSSSSS] TYPE: PAYLOAD" or "[SSSSSSSSSS] free text" into an event.
// Lines that don't begin with '[' are discarded. Returns false if the line
// yields nothing.
func ExtractLine(raw string) (model.Event, bool) {
	if len(raw) == 0 || raw[0] != '[' {
		return model.Event{}, false
	}
	if len(raw) < 13 || raw[11] != ']' {
		return model.Event{}, false
	}
	tsStr := raw[1:11]
	ts, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return model.Event{}, false
	}
	rest := raw[12:]
	if strings.HasPrefix(rest, " ") {
		rest = rest[1:]
	}

	colon := strings.Index(rest, ": ")
	if colon < 0 {
		return extractProcessLifecycle(ts, rest)
	}

	typ := rest[:colon]
	payload := rest[colon+2:]
	return dispatchTyped(ts, typ, payload)
}

func extractProcessLifecycle(ts int64, text string) (model.Event, bool) {
	var proc int
	switch {
	case strings.Contains(text, " starting..."):
		proc = model.ProcNormalStart
	case strings.Contains(text, " restarting..."):
		proc = model.ProcRestart
	case strings.Contains(text, "shutting down..."):
		proc = model.ProcNormalStop
	case strings.Contains(text, "Bailing out"):
		proc = model.ProcErrorStop
	case text == "LOG ROTATION":
		return model.Event{}, false
	case text == "LOG VERSION":
		return model.Event{}, false
	default:
		return model.Event{}, false
	}
	return model.Event{Time: ts, Type: model.TypeProcessEvent, ProcStart: proc, HasProcStart: true}, true
}

func dispatchTyped(ts int64, typ, payload string) (model.Event, bool) {
	switch typ {
	case model.TypeServiceAlert, model.TypeCurrentServiceState, model.TypeInitialServiceState:
		return extractServiceState(ts, typ, payload)
	case model.TypeHostAlert, model.TypeCurrentHostState, model.TypeInitialHostState:
		return extractHostState(ts, typ, payload)
	case model.TypeHostDowntimeAlert:
		return extractHostDowntime(ts, payload)
	case model.TypeServiceDowntimeAlert:
		return extractServiceDowntime(ts, payload)
	case model.TypeHostFlappingAlert:
		return extractHostFlapping(ts, payload)
	case model.TypeServiceFlappingAlert:
		return extractServiceFlapping(ts, payload)
	case "TIMEPERIOD TRANSITION":
		return extractTimeperiodTransition(ts, payload)
	case model.TypeHostNotification:
		return extractHostNotification(ts, payload)
	case model.TypeServiceNotification:
		return extractServiceNotification(ts, payload)
	case model.TypeHostEventHandler, "GLOBAL HOST EVENT HANDLER":
		return model.Event{Time: ts, Type: model.TypeHostEventHandler, PluginOutput: payload}, true
	case model.TypeServiceEventHandler, "GLOBAL SERVICE EVENT HANDLER":
		return model.Event{Time: ts, Type: model.TypeServiceEventHandler, PluginOutput: payload}, true
	case model.TypeExternalCommand:
		return extractExternalCommand(ts, payload)
	case model.TypeLogRotation, model.TypeLogVersion:
		return model.Event{}, false
	default:
		return model.Event{}, false
	}
}

func extractServiceState(ts int64, typ, payload string) (model.Event, bool) {
	parts := strings.SplitN(payload, ";", 6)
	if len(parts) < 3 {
		return model.Event{}, false
	}
	state, ok := serviceStateWords[parts[2]]
	if !ok {
		return model.Event{}, false
	}
	e := model.Event{
		Time:                ts,
		Type:                typ,
		HostName:            parts[0],
		ServiceDescription:  parts[1],
		State:               state,
		HasState:            true,
	}
	if len(parts) >= 4 {
		e.Hard = parts[3] == "HARD"
	}
	if len(parts) >= 6 {
		e.PluginOutput = parts[5]
	}
	return e, true
}

func extractHostState(ts int64, typ, payload string) (model.Event, bool) {
	parts := strings.SplitN(payload, ";", 5)
	if len(parts) < 2 {
		return model.Event{}, false
	}
	state, ok := hostStateWords[parts[1]]
	if !ok {
		return model.Event{}, false
	}
	e := model.Event{
		Time:     ts,
		Type:     typ,
		HostName: parts[0],
		State:    state,
		HasState: true,
	}
	if len(parts) >= 3 {
		e.Hard = parts[2] == "HARD"
	}
	if len(parts) >= 5 {
		e.PluginOutput = parts[4]
	}
	return e, true
}

func extractHostDowntime(ts int64, payload string) (model.Event, bool) {
	parts := strings.SplitN(payload, ";", 3)
	if len(parts) < 2 {
		return model.Event{}, false
	}
	return model.Event{
		Time:     ts,
		Type:     model.TypeHostDowntimeAlert,
		HostName: parts[0],
		Start:    parts[1] == "STARTED",
		HasStart: true,
	}, true
}

func extractServiceDowntime(ts int64, payload string) (model.Event, bool) {
	parts := strings.SplitN(payload, ";", 4)
	if len(parts) < 3 {
		return model.Event{}, false
	}
	return model.Event{
		Time:                ts,
		Type:                model.TypeServiceDowntimeAlert,
		HostName:            parts[0],
		ServiceDescription:  parts[1],
		Start:               parts[2] == "STARTED",
		HasStart:            true,
	}, true
}

func extractHostFlapping(ts int64, payload string) (model.Event, bool) {
	parts := strings.SplitN(payload, ";", 3)
	if len(parts) < 2 {
		return model.Event{}, false
	}
	return model.Event{
		Time:     ts,
		Type:     model.TypeHostFlappingAlert,
		HostName: parts[0],
		Start:    strings.HasPrefix(parts[1], "STARTED"),
		HasStart: true,
	}, true
}

func extractServiceFlapping(ts int64, payload string) (model.Event, bool) {
	parts := strings.SplitN(payload, ";", 4)
	if len(parts) < 3 {
		return model.Event{}, false
	}
	return model.Event{
		Time:                ts,
		Type:                model.TypeServiceFlappingAlert,
		HostName:            parts[0],
		ServiceDescription:  parts[1],
		Start:               strings.HasPrefix(parts[2], "STARTED"),
		HasStart:            true,
	}, true
}

func extractTimeperiodTransition(ts int64, payload string) (model.Event, bool) {
	// Strip a redundant "TIMEPERIOD TRANSITION: " prefix some sources
	// double-emit.
	payload = strings.TrimPrefix(payload, "TIMEPERIOD TRANSITION: ")
	parts := strings.SplitN(payload, ";", 3)
	e := model.Event{Time: ts, Type: model.TypeTimeperiodTransition}
	if len(parts) >= 1 {
		e.Timeperiod = parts[0]
	}
	if len(parts) >= 2 {
		e.From = parts[1]
	}
	if len(parts) >= 3 {
		e.To = parts[2]
	}
	return e, true
}

func extractHostNotification(ts int64, payload string) (model.Event, bool) {
	parts := strings.SplitN(payload, ";", 5)
	if len(parts) < 2 {
		return model.Event{}, false
	}
	e := model.Event{
		Time:        ts,
		Type:        model.TypeHostNotification,
		ContactName: parts[0],
		HostName:    parts[1],
	}
	if len(parts) >= 5 {
		e.PluginOutput = parts[4]
	}
	return e, true
}

func extractServiceNotification(ts int64, payload string) (model.Event, bool) {
	parts := strings.SplitN(payload, ";", 6)
	if len(parts) < 3 {
		return model.Event{}, false
	}
	e := model.Event{
		Time:                ts,
		Type:                model.TypeServiceNotification,
		ContactName:         parts[0],
		HostName:            parts[1],
		ServiceDescription:  parts[2],
	}
	if len(parts) >= 6 {
		e.PluginOutput = parts[5]
	}
	return e, true
}

func extractExternalCommand(ts int64, payload string) (model.Event, bool) {
	name := payload
	var remainder string
	if idx := strings.IndexByte(payload, ';'); idx >= 0 {
		name = payload[:idx]
		remainder = payload[idx+1:]
	}

	e := model.Event{Time: ts, Type: model.TypeExternalCommand}

	switch {
	case serviceScopedCommands[name]:
		fields := strings.SplitN(remainder, ";", 3)
		if len(fields) >= 1 {
			e.HostName = fields[0]
		}
		if len(fields) >= 2 {
			e.ServiceDescription = fields[1]
		}
	case hostScopedCommands[name]:
		fields := strings.SplitN(remainder, ";", 2)
		if len(fields) >= 1 {
			e.HostName = fields[0]
		}
	}
	return e, true
}

// ExtractStructured converts a pre-split livestatus-style row into an event.
// The row must carry at least "time" and "type"; if it carries "message" the
// raw line-parsing rules apply to that string, otherwise "options" is
// dispatched directly by "type" the same way a typed payload would be.
func ExtractStructured(row map[string]interface{}) (model.Event, bool) {
	ts, ok := toInt64(row["time"])
	if !ok {
		return model.Event{}, false
	}
	typ, _ := row["type"].(string)

	if msg, ok := row["message"].(string); ok {
		return ExtractLine(msg)
	}
	if opts, ok := row["options"].(string); ok {
		if typ == "" {
			return model.Event{}, false
		}
		return dispatchTyped(ts, typ, opts)
	}
	return model.Event{}, false
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// IngestString extracts every line of s into an ordered slice of events.
func IngestString(s string) []model.Event {
	var out []model.Event
	scanner := bufio.NewScanner(strings.NewReader(s))
	scanner.Buffer(make([]byte, 0, 256*1024), 4*1024*1024)
	for scanner.Scan() {
		if e, ok := ExtractLine(scanner.Text()); ok {
			out = append(out, e)
		}
	}
	return out
}

// IngestFile reads a single log file, decoding it as strict UTF-8 first and
// falling back to ISO-8859-1 if that fails, then extracts every line.
func IngestFile(path string) ([]model.Event, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return IngestString(decodeBestEffort(raw)), nil
}

// IngestDir ingests every file in dir whose name ends in ".log" (exact-case
// suffix match), in directory order; the engine is responsible for sorting
// the combined result by time.
func IngestDir(dir string) ([]model.Event, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read log dir %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".log") {
			continue
		}
		names = append(names, ent.Name())
	}
	sort.Strings(names)

	var out []model.Event
	for _, name := range names {
		evs, err := IngestFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, evs...)
	}
	return out, nil
}

// IngestStructured extracts every row into an ordered slice of events.
func IngestStructured(rows []map[string]interface{}) []model.Event {
	var out []model.Event
	for _, row := range rows {
		if e, ok := ExtractStructured(row); ok {
			out = append(out, e)
		}
	}
	return out
}

func decodeBestEffort(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		// Last resort: strip invalid bytes rather than fail, matching the
		// extractor's best-effort contract (ParseError is never surfaced).
		return strings.ToValidUTF8(string(raw), "")
	}
	return string(decoded)
}
