package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"intervu/internal/ai"
	"intervu/internal/common"
	"intervu/internal/types"
)

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Résumé coaching: summaries, career recommendations and chat",
}

var coachSummarizeCmd = &cobra.Command{
	Use:   "summarize [resume-file]",
	Short: "Summarize a plain-text résumé",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return resolveFormat(cmd, &coachConfig.OutputFormat)
	},
	RunE: runCoachSummarize,
}

var coachRecommendCmd = &cobra.Command{
	Use:   "recommend [resume-file]",
	Short: "Recommend career directions for a résumé",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return resolveFormat(cmd, &coachConfig.OutputFormat)
	},
	RunE: runCoachRecommend,
}

var coachChatCmd = &cobra.Command{
	Use:   "chat [resume-file]",
	Short: "Chat with the career coach about a résumé",
	Long: `Summarize the résumé, then answer questions about it one line at a time.
Type "quit" or send EOF to leave.`,
	Args: cobra.ExactArgs(1),
	RunE: runCoachChat,
}

var coachConfig common.CommandConfig

func init() {
	addOutputFlags(coachSummarizeCmd, &coachConfig.OutputFile, &coachConfig.OutputFormat)
	addOutputFlags(coachRecommendCmd, &coachConfig.OutputFile, &coachConfig.OutputFormat)

	coachCmd.AddCommand(coachSummarizeCmd)
	coachCmd.AddCommand(coachRecommendCmd)
	coachCmd.AddCommand(coachChatCmd)
}

// withCoach creates the coach, runs fn and releases the provider
func withCoach(cmd *cobra.Command, fn func(coach *ai.Coach) error) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	svc, err := newAIService(cfg, "coach", logger, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Warn("Failed to close AI service", "error", err)
		}
	}()

	coachConfig.MaxFileSize = cfg.App.MaxFileSize
	coachConfig.Out = cmd.OutOrStdout()
	return fn(ai.NewCoach(svc))
}

func singleContent(contents []string) (string, error) {
	if len(contents) != 1 {
		return "", fmt.Errorf("expected 1 file path, got %d", len(contents))
	}
	return contents[0], nil
}

func runCoachSummarize(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())
	return withCoach(cmd, func(coach *ai.Coach) error {
		logDetails := func(resume string, cfg common.CommandConfig) {
			logger.Info("Summarizing résumé", "resume_chars", len(resume), "output_format", cfg.OutputFormat)
		}
		return common.RunFileCommand(cmd.Context(), logger, coachConfig, args, singleContent,
			coach.SummarizeResume, logDetails)
	})
}

func runCoachRecommend(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())
	return withCoach(cmd, func(coach *ai.Coach) error {
		recommend := func(ctx context.Context, resume string) (types.CareerRecommendations, error) {
			summary, err := coach.SummarizeResume(ctx, resume)
			if err != nil {
				return types.CareerRecommendations{}, err
			}
			return coach.RecommendCareers(ctx, summary)
		}
		return common.RunFileCommand(cmd.Context(), logger, coachConfig, args, singleContent, recommend, nil)
	})
}

func runCoachChat(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())
	return withCoach(cmd, func(coach *ai.Coach) error {
		contents, err := common.NewFileProcessor(logger, coachConfig.MaxFileSize).ValidateAndReadFiles(args...)
		if err != nil {
			return err
		}
		summary, err := coach.SummarizeResume(cmd.Context(), contents[0])
		if err != nil {
			return err
		}
		return chatLoop(cmd.Context(), coach, summary, cmd.InOrStdin(), cmd.OutOrStdout())
	})
}

// chatLoop answers one line at a time, keeping the running history
func chatLoop(ctx context.Context, coach *ai.Coach, summary types.ResumeSummary, in io.Reader, out io.Writer) error {
	name := summary.Name
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(out, "Hi %s! Ask me anything about your career. Type \"quit\" to leave.\n", name)

	var history []types.ChatMessage
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if strings.EqualFold(message, "quit") || strings.EqualFold(message, "exit") {
			return nil
		}

		reply := coach.Reply(ctx, summary, history, message)
		fmt.Fprintf(out, "coach> %s\n", reply)
		history = append(history,
			types.ChatMessage{Role: types.RoleUser, Content: message},
			types.ChatMessage{Role: types.RoleAssistant, Content: reply},
		)
	}
}
