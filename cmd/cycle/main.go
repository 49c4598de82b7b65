// hermes-cycle runs a single BTC-USD decision cycle and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"Hermes/internal/di"
	"Hermes/internal/handler/api"
	"Hermes/internal/usecase"
	"Hermes/pkg/config"

	"github.com/spf13/cobra"
)

var (
	configPath string
	env        string
	horizon    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "hermes-cycle",
		Short:        "Run one decision cycle",
		Long:         `hermes-cycle builds the engine from config, runs one cycle and prints the cycle result as JSON.`,
		SilenceUsage: true,
		RunE:         runCycle,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config/config.yaml", "config file path")
	rootCmd.Flags().StringVarP(&env, "env", "e", "", "environment tag: dev, uat or prod (defaults to config/HERMES_ENV)")
	rootCmd.Flags().IntVar(&horizon, "horizon", 0, "horizon in minutes (defaults to engine.horizon_minutes)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCycle(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	if env != "" {
		cfg.Environment = config.ResolveEnvironment(env)
	}

	uc, cleanup, err := di.InitializeCycleUseCase(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := uc.RunCycle(ctx, usecase.RunCycleParams{HorizonMinutes: horizon})
	if err != nil {
		return err
	}
	if !res.TradeExecuted() {
		fmt.Fprintln(cmd.ErrOrStderr(), api.NoTradeMessage)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
