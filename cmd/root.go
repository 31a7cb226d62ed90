package cmd

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/killallgit/labeler/pkg/config"
	apperrors "github.com/killallgit/labeler/pkg/errors"
	"github.com/killallgit/labeler/pkg/logging"
)

// skipConfig marks commands that run without loading the configuration
const skipConfig = "skip-config"

// NewRootCmd creates the root command with every subcommand attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "labeler",
		Short: "Video timeline labeler",
		Long: `Labeler - annotate activity on a video timeline

Labeler keeps a session of non-overlapping labeled intervals over a video,
autosaves it next to nothing but the OS temp dir, and exports the result as a
zip archive of labels.json plus per-category CSV files.

Features:
  • Start/stop, edit, split, merge and delete annotations over HTTP
  • Crash recovery from periodic and per-change autosaves
  • Export to a local directory or an S3 bucket
  • Category catalog with PA type compatibility checks`,
		SilenceUsage:      true,
		PersistentPreRunE: preRun,
	}

	// Add persistent flags for logging configuration
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")

	rootCmd.AddCommand(
		newServeCmd(),
		newVersionCmd(),
		newHashCmd(),
		newAutosaveCmd(),
		newExportCmd(),
		newCatalogCmd(),
		newVideosCmd(),
		newMigrateCmd(),
	)
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// preRun loads the configuration unless the command opts out, then sets up
// logging. Flags win over the configured logging section.
func preRun(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[skipConfig] != "true" {
		if err := config.Init(); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}
	}

	level, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	if config.IsInitialized() {
		if !cmd.Flags().Changed("log-level") && config.GetString("logging.level") != "" {
			level = config.GetString("logging.level")
		}
		if cmd.Flags().Changed("json-logs") {
			format := "text"
			if jsonLogs {
				format = "json"
			}
			viper.Set("logging.format", format)
		} else {
			jsonLogs = config.GetString("logging.format") == "json"
		}
	}

	logging.Setup(cmd.ErrOrStderr(), level, jsonLogs)
	return nil
}

// loadConfig returns the validated configuration
func loadConfig() (*config.Config, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, configError(err)
	}
	return cfg, nil
}

// configError reports the first failing field of a validation error as a
// dotted key such as Server.Port
func configError(err error) *apperrors.AppError {
	var path []string
	for {
		var errs validation.Errors
		if !errors.As(err, &errs) || len(errs) == 0 {
			break
		}
		key := slices.Sorted(maps.Keys(errs))[0]
		path = append(path, key)
		err = errs[key]
	}
	if len(path) == 0 {
		path = append(path, "config")
	}
	return apperrors.ConfigError(strings.Join(path, "."), err.Error())
}
