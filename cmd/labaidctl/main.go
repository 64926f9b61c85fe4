// Command labaidctl runs schema migrations and bootstrap tasks against the LabAid database.
package main

import (
	"fmt"
	"os"

	"github.com/labaid/labaid-api/internal/config"
	"github.com/labaid/labaid-api/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:           "labaidctl",
	Short:         "LabAid administration tool",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration including secrets, logging at warn level so
// command output stays readable
func loadConfig(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	basic, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logCfg := basic.Logging
	logCfg.Level = "warn"
	log, err := logger.NewLogger(&logCfg, &basic.App)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	cfg, err := config.LoadWithSecrets(cmd.Context(), log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load secrets: %w", err)
	}
	return cfg, log, nil
}
