package main

import (
	"errors"
	"fmt"

	"github.com/nvandessel/cellwalk/internal/config"
	"github.com/nvandessel/cellwalk/internal/constants"
	"github.com/nvandessel/cellwalk/internal/logging"
	"github.com/nvandessel/cellwalk/internal/report"
	"github.com/nvandessel/cellwalk/internal/simulation"
	"github.com/spf13/cobra"
)

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("policy", "", "Grid synchronization: mutex or unguarded")
	cmd.Flags().Duration("tick", 0, "Time each particle sleeps between moves")
	cmd.Flags().Duration("interval", 0, "Time between snapshots")
	cmd.Flags().Int("snapshots", 0, "Number of snapshots before stopping")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	params, err := config.ParseParams(args)
	if err != nil {
		return usageError(cmd, err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())

	jsonOut, _ := cmd.Flags().GetBool("json")
	var obs reporter = report.Text(cmd.OutOrStdout())
	if jsonOut {
		obs = report.JSON(cmd.OutOrStdout())
	}

	controller, err := simulation.NewController(simulation.Config{
		Cells:            params.Cells,
		Particles:        params.Particles,
		P:                params.P,
		Policy:           cfg.Simulation.Policy,
		TickPeriod:       cfg.Simulation.TickPeriod,
		SnapshotInterval: cfg.Simulation.SnapshotInterval,
		Snapshots:        cfg.Simulation.Snapshots,
		Logger:           logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	res, err := controller.Run(ctx, obs)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	if res.Interrupted {
		logger.Info("simulation interrupted", "snapshots", res.Steps)
	}
	if err := obs.Err(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// reporter is an observer that remembers its first output error.
type reporter interface {
	simulation.Observer
	Err() error
}

// loadConfig layers explicitly set flags over the loaded configuration and
// validates the result.
func loadConfig(cmd *cobra.Command) (*config.CellwalkConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("policy") {
		v, _ := flags.GetString("policy")
		cfg.Simulation.Policy = constants.ParsePolicyKind(v)
	}
	if flags.Changed("tick") {
		cfg.Simulation.TickPeriod, _ = flags.GetDuration("tick")
	}
	if flags.Changed("interval") {
		cfg.Simulation.SnapshotInterval, _ = flags.GetDuration("interval")
	}
	if flags.Changed("snapshots") {
		cfg.Simulation.Snapshots, _ = flags.GetInt("snapshots")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, usageError(cmd, err)
	}
	return cfg, nil
}

// usageError prints the usage text for configuration errors.
func usageError(cmd *cobra.Command, err error) error {
	var cfgErr *config.ConfigurationError
	if errors.As(err, &cfgErr) {
		cmd.PrintErrln(cmd.UsageString())
	}
	return err
}
