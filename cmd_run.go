package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wildstyl3r/epacs/internal/config"
	"github.com/wildstyl3r/epacs/internal/scenario"
)

var only []string

var runCmd = &cobra.Command{
	Use:   "run [config.toml]",
	Short: "Compute and store the tails of every scenario",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScenarios,
}

func init() {
	runCmd.Flags().StringSliceVarP(&only, "scenario", "s", nil, "run only the named scenarios")
}

func runScenarios(cmd *cobra.Command, args []string) error {
	configFile := "epacs.toml"
	if len(args) > 0 {
		configFile = args[0]
	}
	c, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	names := c.ScenarioNames()
	if len(only) > 0 {
		names = only
	}
	logger.Info("config loaded",
		zap.String("path", c.Path()),
		zap.String("outputDir", c.OutputDir),
		zap.Strings("scenarios", names))

	startTime := time.Now()
	var failed []string
	for _, name := range names {
		p, err := c.Scenario(name)
		if err == nil {
			_, err = scenario.Run(name, p, c.OutputDir, logger)
		}
		if err != nil {
			logger.Error("scenario failed", zap.String("scenario", name), zap.Error(err))
			failed = append(failed, name)
		}
	}
	logger.Info("all scenarios processed",
		zap.Int("done", len(names)-len(failed)),
		zap.Int("failed", len(failed)),
		zap.Duration("elapsed", time.Since(startTime)))
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d scenarios failed: %v", len(failed), len(names), failed)
	}
	return nil
}
