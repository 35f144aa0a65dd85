// Command nagios-availability is a thin front end over internal/avail: it
// parses command-line options into an avail.Report, feeds it log sources,
// and prints the condensed or full log plus per-entity time totals.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/oceanplexian/gogios-availability/internal/avail"
	"github.com/oceanplexian/gogios-availability/internal/avail/options"
)

const version = "1.0.0"

type stderrDebugger struct{ verbose bool }

func (d stderrDebugger) Debug(format string, args ...interface{}) {
	if !d.verbose {
		return
	}
	fmt.Fprintf(os.Stderr, "[%d] %s\n", time.Now().Unix(), fmt.Sprintf(format, args...))
}

func main() {
	raw := options.Raw{
		Values:               map[string]string{},
		InitialHostStates:    map[string]string{},
		InitialServiceStates: map[string]map[string]string{},
	}

	var (
		logFiles   []string
		logDirs    []string
		fullLog    bool
		jsonOutput bool
		verbose    bool
	)

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		next := func() string {
			i++
			if i >= len(args) {
				fatalf("missing value for %s", arg)
			}
			return args[i]
		}
		switch arg {
		case "-h", "--help":
			printUsage()
			os.Exit(0)
		case "-V", "--version":
			fmt.Printf("nagios-availability %s\n", version)
			os.Exit(0)
		case "-v", "--verbose":
			verbose = true
			raw.Values["verbose"] = "yes"
		case "--start":
			raw.Start = parseTimestamp(next())
			raw.HasStart = true
		case "--end":
			raw.End = parseTimestamp(next())
			raw.HasEnd = true
		case "--host":
			raw.Hosts = append(raw.Hosts, next())
		case "--service":
			pair := next()
			host, svc, ok := strings.Cut(pair, ",")
			if !ok {
				fatalf("--service expects host,description, got %q", pair)
			}
			raw.Services = append(raw.Services, options.ServicePair{Host: host, Service: svc})
		case "--log":
			logFiles = append(logFiles, next())
		case "--log-dir":
			logDirs = append(logDirs, next())
		case "--backtrack":
			raw.Values["backtrack"] = next()
		case "--rpt-timeperiod":
			raw.Values["rpttimeperiod"] = next()
		case "--assume-initial-states":
			raw.Values["assumeinitialstates"] = next()
		case "--assume-state-retention":
			raw.Values["assumestateretention"] = next()
		case "--assume-states-during-not-running":
			raw.Values["assumestatesduringnotrunning"] = next()
		case "--include-soft-states":
			raw.Values["includesoftstates"] = next()
		case "--show-scheduled-downtime":
			raw.Values["showscheduleddowntime"] = next()
		case "--initial-assumed-host-state":
			raw.Values["initialassumedhoststate"] = next()
		case "--initial-assumed-service-state":
			raw.Values["initialassumedservicestate"] = next()
		case "--initial-states":
			parseInitialState(next(), raw.InitialHostStates, raw.InitialServiceStates)
		case "--timeformat":
			raw.Values["timeformat"] = next()
		case "--breakdown":
			raw.Values["breakdown"] = next()
		case "--full-log":
			fullLog = true
		case "--json":
			jsonOutput = true
		default:
			fatalf("unrecognized option %q", arg)
		}
	}

	raw.Logger = stderrDebugger{verbose: verbose}

	report, err := avail.New(raw)
	if err != nil {
		fatalf("%v", err)
	}

	result, err := report.Calculate(avail.Sources{LogFiles: logFiles, LogDirs: logDirs})
	if err != nil {
		fatalf("%v", err)
	}

	if jsonOutput {
		emitJSON(result)
		return
	}

	emitLog(report, fullLog)
	emitTotals(result)
}

// parseInitialState parses "host=state" or "host,service=state" into the
// matching initial-state map.
func parseInitialState(spec string, hosts map[string]string, services map[string]map[string]string) {
	key, state, ok := strings.Cut(spec, "=")
	if !ok {
		fatalf("--initial-states expects host[,service]=state, got %q", spec)
	}
	host, svc, hasSvc := strings.Cut(key, ",")
	if !hasSvc {
		hosts[host] = state
		return
	}
	if services[host] == nil {
		services[host] = map[string]string{}
	}
	services[host][svc] = state
}

func parseTimestamp(s string) int64 {
	t, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return t
	}
	parsed, perr := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local)
	if perr != nil {
		fatalf("invalid timestamp %q: %v", s, err)
	}
	return parsed.Unix()
}

func emitJSON(result interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fatalf("encoding result: %v", err)
	}
}

func emitLog(report *avail.Report, full bool) {
	entries := report.CondensedLog()
	if full {
		entries = report.FullLog()
	}
	for _, e := range entries {
		fmt.Printf("[%s] %-28s %s  (%s, lasted %s)\n", e.Start, e.Type, e.PluginOutput, e.Class, e.Duration)
	}
}

func emitTotals(result interface{}) {
	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fatalf("encoding totals: %v", err)
	}
	fmt.Println(string(b))
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "nagios-availability: "+format+"\n", args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Println(`nagios-availability - host/service availability reporting from Nagios logs

Usage:
  nagios-availability --start <ts> --end <ts> --log <file> [options]

Options:
  --start <ts>                        report window start (unix seconds or "YYYY-MM-DD HH:MM:SS")
  --end <ts>                          report window end
  --host <name>                       report on this host (repeatable)
  --service <host,description>        report on this service (repeatable)
  --log <file>                        archived log file to ingest (repeatable)
  --log-dir <dir>                     directory of archived logs to ingest (repeatable)
  --backtrack <days>                  recorded only; no earlier logs are read (default 4)
  --rpt-timeperiod <name>             restrict accounting to this timeperiod's active spans
  --assume-initial-states <yes|no>
  --assume-state-retention <yes|no>
  --assume-states-during-not-running <yes|no>
  --include-soft-states <yes|no>
  --show-scheduled-downtime <yes|no>
  --initial-assumed-host-state <up|down|unreachable|unspecified|current>
  --initial-assumed-service-state <ok|warning|critical|unknown|unspecified|current>
  --initial-states <host[,service]=state>   repeatable
  --timeformat <strftime-pattern>
  --breakdown <none|days|weeks|months>
  --full-log                          print the full log instead of the condensed log
  --json                              print the result as JSON instead of the log view
  -v, --verbose                       enable debug logging to stderr
  -V, --version                       print version and exit
  -h, --help                          print this help and exit`)
}
