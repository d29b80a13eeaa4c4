package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/recipr/internal/config"
	"github.com/VoxDroid/recipr/internal/logging"
)

var (
	logLevel  string
	logPretty bool
)

var rootCmd = &cobra.Command{
	Use:          "recipr",
	Short:        "recipr assembles command templates into publishable scripts",
	Long:         "recipr keeps a library of command templates, lets you combine filled-in copies of them into a recipe and publishes the compiled script",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := config.LoadEnv(); err != nil {
			return err
		}
		level := logLevel
		if level == "" {
			level = config.LogLevel()
		}
		cfg := logging.DefaultConfig()
		if level != "" {
			cfg.Level = logging.ParseLevel(level)
		}
		cfg.Output = cmd.ErrOrStderr()
		cfg.Pretty = logPretty
		logging.Init(cfg)
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println("recipr: run 'recipr --help' to see available commands")
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "log-pretty", false, "Human-readable log output")
}
