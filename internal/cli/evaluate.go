package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"intervu/internal/career"
	"intervu/internal/common"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [answer-file]",
	Short: "Score one interview answer",
	Long: `Evaluate a single interview answer. The answer is read from a text file and
scored against the question given with --question. The result carries the five
category scores, feedback, demonstrated skills and an improved example answer.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(evaluateQuestion) == "" {
			return fmt.Errorf("--question is required")
		}
		return resolveFormat(cmd, &evaluateConfig.OutputFormat)
	},
	RunE: runEvaluate,
}

var (
	evaluateConfig   common.CommandConfig
	evaluateQuestion string
	evaluateField    string
)

func init() {
	addOutputFlags(evaluateCmd, &evaluateConfig.OutputFile, &evaluateConfig.OutputFormat)
	evaluateCmd.Flags().StringVarP(&evaluateQuestion, "question", "q", "", "Interview question that was answered")
	evaluateCmd.Flags().StringVar(&evaluateField, "field", "", "Job field (default from config)")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	rt, err := newInterviewRuntime(cmd.Context(), cfg, logger, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			logger.Warn("Failed to release resources", "error", err)
		}
	}()

	evaluateConfig.MaxFileSize = cfg.App.MaxFileSize
	evaluateConfig.Out = cmd.OutOrStdout()

	createInput := func(contents []string) (string, error) {
		if len(contents) != 1 {
			return "", fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return contents[0], nil
	}

	logDetails := func(answer string, cfg common.CommandConfig) {
		logger.Info("Starting answer evaluation",
			"answer_chars", len(answer),
			"job_field", evaluateField,
			"output_format", cfg.OutputFormat)
	}

	evaluateOperation := func(ctx context.Context, answer string) (career.EvaluationRecord, error) {
		return rt.service.Evaluate(ctx, evaluateQuestion, answer, evaluateField)
	}

	err = common.RunFileCommand(
		cmd.Context(),
		logger,
		evaluateConfig,
		args,
		createInput,
		evaluateOperation,
		logDetails,
	)
	if err != nil {
		return fmt.Errorf("failed to evaluate answer: %w", err)
	}
	logger.Info("Answer evaluation completed successfully")
	return nil
}
