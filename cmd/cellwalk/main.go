package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cellwalk N K p",
		Short: "Concurrent particle random walk over a line of cells",
		Long: `cellwalk runs K particles over a line of N cells, one goroutine per
particle. Every tick a particle draws m in [0,1) and moves right if m > p,
otherwise left; a move past either end leaves it in place. The grid is
printed once per second for one minute, then the particle total is checked.

With --policy mutex (default) every grid access holds one lock and the total
is always conserved. With --policy unguarded the particles race on the
counters and the total may change.

Examples:
  cellwalk 3 10 0.5                       # default one-minute run
  cellwalk 10 1000 0.5 --policy unguarded # demonstrate the data race
  cellwalk 5 50 0.3 --interval 100ms      # faster snapshots
  cellwalk 5 50 0.3 --json                # JSON lines output`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runSimulation,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON lines")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, or trace")

	addRunFlags(rootCmd)

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(),
		newMCPServerCmd(),
	)

	return rootCmd
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	notifySignals(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
