package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/vk/vsgen/internal/app"
	"github.com/vk/vsgen/internal/codegen"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments with defaults from the environment and a
// .env file in the working directory. It returns a populated Config, a boolean
// indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	lookup, err := EnvLookup(".env")
	if err != nil {
		return nil, false, usageError("reading .env: %v", err)
	}
	return ParseWithEnv(args, output, lookup)
}

// ParseWithEnv is Parse with an explicit environment.
func ParseWithEnv(args []string, output io.Writer, lookup LookupFunc) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("vsgen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
vsgen - compiles node graphs into Python modules.

Usage:
  vsgen [options] GRAPH_PATH

Arguments:
  GRAPH_PATH
    Path to a graph file (.hcl or .json session) or a directory holding one.

Options:
`)
		flagSet.PrintDefaults()
		fmt.Fprintf(output, "\nEvery option with a value can also be set as %s<NAME> in the environment\nor in a .env file, e.g. %sLOG_LEVEL=debug.\n", EnvPrefix, EnvPrefix)
	}

	healthDefault := 0
	if raw := envString(lookup, "HEALTHCHECK_PORT", ""); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, false, usageError("invalid %sHEALTHCHECK_PORT: %v", EnvPrefix, err)
		}
		healthDefault = port
	}

	modulesPathFlag := flagSet.String("modules-path", envString(lookup, "MODULES_PATH", ""), "Directory with extra .hcl kind manifests. The standard kinds are always loaded.")
	entryFlag := flagSet.String("entry", "", "Entry node id. Overrides the entry of the graph file.")
	moduleFlag := flagSet.String("module", "", "Module name. Defaults to the graph name with spaces removed.")
	outFlag := flagSet.String("out", envString(lookup, "OUT", ""), "Output directory. Defaults to the directory of GRAPH_PATH.")
	funcFlag := flagSet.String("func", envString(lookup, "FUNC", codegen.DefaultFunctionName), "Name of the generated entry function.")
	importsFlag := flagSet.String("imports", envString(lookup, "IMPORTS", "all"), "Import scope. Options: 'all' or 'reachable'.")
	checkFlag := flagSet.Bool("check", false, "Validate the graph without writing the module.")
	watchFlag := flagSet.Bool("watch", false, "Recompile whenever the graph or manifests change.")
	listKindsFlag := flagSet.Bool("list-kinds", false, "List the available node kinds and exit.")
	notifyFlag := flagSet.String("notify-url", envString(lookup, "NOTIFY_URL", ""), "socket.io endpoint notified after each write.")
	healthPortFlag := flagSet.Int("healthcheck-port", healthDefault, "Port for the HTTP health check server in watch mode. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", envString(lookup, "LOG_FORMAT", "text"), "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envString(lookup, "LOG_LEVEL", "info"), "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 {
		return nil, false, usageError("expected one graph path, got %d", flagSet.NArg())
	}
	if path == "" && !*listKindsFlag {
		slog.Debug("No graph path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	scope, err := codegen.ParseImportScope(strings.ToLower(*importsFlag))
	if err != nil {
		return nil, false, usageError("invalid imports: %v", err)
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		GraphPath:       path,
		ModulesPath:     *modulesPathFlag,
		Entry:           *entryFlag,
		ModuleName:      *moduleFlag,
		OutDir:          *outFlag,
		FunctionName:    *funcFlag,
		ImportScope:     scope,
		Check:           *checkFlag,
		Watch:           *watchFlag,
		ListKinds:       *listKindsFlag,
		NotifyURL:       *notifyFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
