package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nvandessel/cellwalk/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show cellwalk configuration",
		Long: `View the effective cellwalk configuration.

Configuration is read from ~/.cellwalk/config.yaml, then overridden by
CELLWALK_POLICY, CELLWALK_TICK, CELLWALK_INTERVAL, CELLWALK_SNAPSHOTS and
CELLWALK_LOG_LEVEL, then by command-line flags.

Examples:
  cellwalk config list          # Show effective settings
  cellwalk config path          # Show config file location`,
	}

	cmd.AddCommand(
		newConfigListCmd(),
		newConfigPathCmd(),
	)

	return cmd
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(cfg)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			fmt.Fprint(out, string(data))
			fmt.Fprintln(out)
			fmt.Fprintf(out, "# %s\n", describeRun(cfg.Simulation))
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// describeRun is a one-line summary of the simulation settings.
func describeRun(sim config.SimulationConfig) string {
	return fmt.Sprintf("%d snapshots every %v (%v total), tick %v, policy %s",
		sim.Snapshots, sim.SnapshotInterval,
		sim.SnapshotInterval*time.Duration(sim.Snapshots), sim.TickPeriod, sim.Policy)
}
