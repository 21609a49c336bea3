package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"intervu/internal/career"
	"intervu/internal/common"
	"intervu/internal/errors"
)

var profileCmd = &cobra.Command{
	Use:   "profile [records-file]",
	Short: "Build a career profile from evaluated answers",
	Long: `Build a career profile from a JSON file holding an array of evaluation
records, as produced by "intervu evaluate --format json". Duplicate
(question, answer) pairs are counted once.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return resolveFormat(cmd, &profileConfig.OutputFormat)
	},
	RunE: runProfile,
}

var (
	profileConfig common.CommandConfig
	profileName   string
)

func init() {
	addOutputFlags(profileCmd, &profileConfig.OutputFile, &profileConfig.OutputFormat)
	profileCmd.Flags().StringVar(&profileName, "name", "", "Interviewee name")
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	profileConfig.MaxFileSize = cfg.App.MaxFileSize
	profileConfig.Out = cmd.OutOrStdout()

	createInput := func(contents []string) (career.EvaluationSet, error) {
		return parseRecords(contents[0])
	}

	logDetails := func(set career.EvaluationSet, cfg common.CommandConfig) {
		logger.Info("Building career profile",
			"records", set.Len(),
			"output_format", cfg.OutputFormat)
	}

	buildProfile := func(ctx context.Context, set career.EvaluationSet) (career.CareerProfile, error) {
		return career.BuildProfile(profileName, set, time.Now()), nil
	}

	if err := common.RunFileCommand(cmd.Context(), logger, profileConfig, args, createInput, buildProfile, logDetails); err != nil {
		return fmt.Errorf("failed to build profile: %w", err)
	}
	return nil
}

// parseRecords decodes a JSON array of evaluation records
func parseRecords(content string) (career.EvaluationSet, error) {
	var set career.EvaluationSet
	if err := json.Unmarshal([]byte(content), &set); err != nil {
		return career.EvaluationSet{}, errors.NewValidationError(errors.ErrCodeInvalidFormat,
			"records file must hold a JSON array of evaluation records", err)
	}
	if err := career.ValidateRecords(set.Records()); err != nil {
		return career.EvaluationSet{}, errors.NewValidationError(errors.ErrCodeInvalidFormat,
			"records file holds out-of-range scores or skill levels", err)
	}
	return set, nil
}
