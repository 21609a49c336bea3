package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"intervu/internal/common"
	"intervu/internal/config"
	"intervu/internal/errors"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

// skipConfigAnnotation marks commands that run without loading configuration
const skipConfigAnnotation = "intervu/skip-config"

var (
	configFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "intervu",
	Short: "AI mock interviews with career profiles",
	Long: `intervu runs mock job interviews. Each answer is scored by an AI model,
adjusted by a local answer-quality heuristic, and the answers of a session
are aggregated into a career profile with scores, a skill gap assessment and
career insights. It also summarizes résumés and offers a coaching chat.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadRuntime,
}

// Execute runs the CLI. Configuration and logger are loaded before the chosen
// subcommand runs and attached to its context.
func Execute(ctx context.Context) error {
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

func loadRuntime(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipConfigAnnotation] == "true" {
		return nil
	}

	cfg, err := config.LoadConfigFrom(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.App.LogLevel = logLevel
	}

	logger, err := errors.New(cfg.App.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := config.ApplyVaultSecrets(cfg, logger); err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	logger.Debug("Starting intervu",
		"command", cmd.Name(),
		"version", Version,
		"log_level", cfg.App.LogLevel,
		"ai_provider", cfg.AI.Provider)

	// Attach the config and logger to the context, making them available to the subcommand
	ctx := context.WithValue(cmd.Context(), configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	cmd.SetContext(ctx)
	return nil
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Should not happen if properly initialized
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context") // Should not happen if properly initialized
}

// addOutputFlags registers the shared --output and --format flags
func addOutputFlags(cmd *cobra.Command, target *string, format *string) {
	cmd.Flags().StringVarP(target, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(format, "format", "", "Output format: json, text, or markdown")

	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "text", "markdown"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// resolveFormat applies the configured default format and validates the result
func resolveFormat(cmd *cobra.Command, format *string) error {
	cfg := getConfigFromContext(cmd.Context())
	if *format == "" {
		*format = cfg.App.DefaultFormat
	}
	return common.ValidateOutputFormat(*format, cfg.App.SupportedFormats)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ./config.yaml, $HOME/.intervu/config.yaml, /etc/intervu/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(interviewCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(coachCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
