// Package main is the entry point for the Quire script runner.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/dshills/quire/internal/config"
	"github.com/dshills/quire/internal/engine"
	"github.com/dshills/quire/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the parsed command line.
type options struct {
	ConfigPath string
	ScriptPath string
	LogLevel   string
	ReadOnly   bool
	Trace      bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, code, ok := parseFlags(args, stdout, stderr)
	if !ok {
		return code
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	e := engine.New(append(cfg.EngineOptions(), engine.WithLogger(logger))...)
	if opts.Trace {
		if _, err := e.OnRender(func(s engine.Snapshot) {
			fmt.Fprintf(stderr, "render: %d nodes, %s\n", len(s.Nodes), s.Selection)
		}); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	in := stdin
	if opts.ScriptPath != "" && opts.ScriptPath != "-" {
		f, err := os.Open(opts.ScriptPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
	}

	logger.Debug("replaying script", zap.String("path", opts.ScriptPath))
	s := newScript(e, stdout)
	if err := s.run(in); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	s.print()
	return 0
}

func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	// Command line flags override the file and the environment.
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.ReadOnly {
		cfg.Engine.ReadOnly = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseFlags parses args. When ok is false the program should exit with code.
func parseFlags(args []string, stdout, stderr io.Writer) (opts options, code int, ok bool) {
	fs := flag.NewFlagSet("quire", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var showVersion bool
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.ScriptPath, "script", "", "Script to replay (default stdin)")
	fs.StringVar(&opts.ScriptPath, "s", "", "Script to replay (shorthand)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.ReadOnly, "readonly", false, "Reject document edits")
	fs.BoolVar(&opts.Trace, "trace", false, "Print every render to stderr")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Quire - structured text editing engine\n\n")
		fmt.Fprintf(stderr, "Usage: quire [options] [-script FILE]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  quire -s edits.quire            Replay a script\n")
		fmt.Fprintf(stderr, "  quire -c quire.toml < edits     Replay stdin with a config file\n")
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return opts, 0, false
		}
		return opts, 2, false
	}

	if showVersion {
		fmt.Fprintf(stdout, "Quire %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return opts, 0, false
	}

	if fs.NArg() > 0 && opts.ScriptPath == "" {
		opts.ScriptPath = fs.Arg(0)
	}
	return opts, 0, true
}
