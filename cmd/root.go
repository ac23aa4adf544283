// Package cmd wires the subproblem pipeline behind a cobra CLI.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/f-sartori-v/mobauto2-decomp/config"
	"github.com/f-sartori-v/mobauto2-decomp/infra/logger"
)

var (
	cfgPath string
	appCfg  *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "subproblem",
	Short:         "Shuttle subproblem solver",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := logger.SetLevel(cfg.LogLevel); err != nil {
			return err
		}
		appCfg = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI. Errors are logged here, the single exit point.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.New("main").Errorf("%v", err)
		return err
	}
	return nil
}
