// Command simcli runs one of the kernel's sample simulations from the
// command line, grounded on cmd/bubbly-mcp-config/main.go's use of the
// stdlib flag package (no cobra/viper appears anywhere in the example
// pack, so flag is the idiomatic choice here too).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/discrete-sim/kernel/config"
	"github.com/discrete-sim/kernel/examples/battlebots"
	"github.com/discrete-sim/kernel/examples/telephone"
	"github.com/discrete-sim/kernel/kernel"
	"github.com/discrete-sim/kernel/simlog"
)

const usage = `simcli - run a discrete-event simulation

USAGE:
    simcli -example NAME [OPTIONS]

OPTIONS:
    -example string
        Simulation to run: battlebots, telephone. Required.

    -config string
        Path to a YAML config file (see config.Load).

    -seed uint
        Random number generator seed (overrides -config).

    -max-secs float
        Simulated-seconds budget for the run (overrides -config).

    -log-level string
        Default log level: error, warning, info, debug, excessive.

    -colorize
        Color-code log output (default true).

    -dashboard
        Show a live bubbletea dashboard instead of raw log output.
`

func main() {
	exampleFlag := flag.String("example", "", "simulation to run")
	configFlag := flag.String("config", "", "path to a YAML config file")
	seedFlag := flag.Uint64("seed", 0, "RNG seed (0 = use config/random)")
	maxSecsFlag := flag.Float64("max-secs", 0, "simulated-seconds budget (0 = use config)")
	logLevelFlag := flag.String("log-level", "", "default log level")
	colorizeFlag := flag.Bool("colorize", true, "color-code log output")
	dashboardFlag := flag.Bool("dashboard", false, "show a live dashboard")

	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if *exampleFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: -example flag is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if *maxSecsFlag != 0 {
		cfg.MaxSecs = *maxSecsFlag
	}
	if *logLevelFlag != "" {
		lvl, err := config.ParseLevel(*logLevelFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg.LogLevel = lvl
	}
	cfg.Colorize = *colorizeFlag

	logOut := os.Stdout
	var logger *simlog.Logger
	if cfg.Colorize {
		logger = simlog.New(newColorWriter(logOut), cfg.LogLevel)
	} else {
		logger = simlog.New(logOut, cfg.LogLevel)
	}

	k := kernel.New(cfg, kernel.WithLogger(logger))

	var buildErr error
	switch *exampleFlag {
	case "battlebots":
		_, buildErr = battlebots.Build(k, battlebots.DefaultConfig())
	case "telephone":
		_, buildErr = telephone.Build(k, telephone.DefaultConfig())
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown -example %q (want battlebots or telephone)\n", *exampleFlag)
		os.Exit(1)
	}
	if buildErr != nil {
		fmt.Fprintf(os.Stderr, "Error building simulation: %v\n", buildErr)
		os.Exit(1)
	}

	ctx := context.Background()
	if _, err := k.Init(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error during init: %v\n", err)
		os.Exit(1)
	}

	if *dashboardFlag {
		runWithDashboard(ctx, k)
		return
	}

	reason, err := k.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, "\nsimulation ended: %s\n", reason)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.New(), nil
	}
	return config.Load(path)
}

// runWithDashboard runs the kernel's dispatch loop on its own goroutine
// while a bubbletea program polls Kernel.Snapshot for a live view.
func runWithDashboard(ctx context.Context, k *kernel.Kernel) {
	done := make(chan struct{})
	var runErr error

	go func() {
		defer close(done)
		_, runErr = k.Run(ctx)
	}()

	isDone := func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}

	m := newDashboardModel(k, 200*time.Millisecond, isDone)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running dashboard: %v\n", err)
	}

	<-done
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
