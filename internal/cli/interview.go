package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"intervu/internal/career"
	"intervu/internal/common"
	"intervu/internal/formatters"
	"intervu/internal/interview"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run a mock interview in the terminal",
	Long: `Run a mock interview. Questions are sampled from the question bank for the
chosen job field. Type each answer and finish it with an empty line; an empty
answer skips the question and "quit" ends the interview early. Feedback is
shown after every answer and a career profile is produced at the end.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return resolveFormat(cmd, &interviewConfig.OutputFormat)
	},
	RunE: runInterview,
}

var (
	interviewConfig  common.CommandConfig
	interviewName    string
	interviewField   string
	interviewCount   int
	interviewSaveDir string
)

func init() {
	addOutputFlags(interviewCmd, &interviewConfig.OutputFile, &interviewConfig.OutputFormat)
	interviewCmd.Flags().StringVar(&interviewName, "name", "", "Interviewee name")
	interviewCmd.Flags().StringVar(&interviewField, "field", "", "Job field (default from config)")
	interviewCmd.Flags().IntVarP(&interviewCount, "count", "n", 0, "Number of questions (default from config)")
	interviewCmd.Flags().StringVar(&interviewSaveDir, "save-dir", "", "Directory to save the profile JSON in (default from config)")
}

func runInterview(cmd *cobra.Command, args []string) error {
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

	profile, err := conductInterview(cmd.Context(), rt.service, cmd.InOrStdin(), cmd.OutOrStdout(),
		interviewName, interviewField, interviewCount)
	if err != nil {
		return err
	}

	outputHandler := common.NewOutputHandler(logger)
	saveDir := interviewSaveDir
	if saveDir == "" {
		saveDir = cfg.Interview.ProfileDir
	}
	if saveDir != "" {
		path := filepath.Join(saveDir, career.ProfileKey(profile.Interviewee, profile.Timestamp))
		if err := outputHandler.HandleOutput(profile, common.CommandConfig{OutputFile: path, OutputFormat: "json"}); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
	}

	interviewConfig.Out = cmd.OutOrStdout()
	return outputHandler.HandleOutput(profile, interviewConfig)
}

// conductInterview asks every sampled question on out, reads answers from in
// and returns the profile of the completed session.
func conductInterview(ctx context.Context, svc *interview.Service, in io.Reader, out io.Writer,
	name, field string, count int) (career.CareerProfile, error) {
	sess, err := svc.StartSession(ctx, name, field, count)
	if err != nil {
		return career.CareerProfile{}, err
	}

	fmt.Fprintf(out, "Mock interview: %s (%d questions)\n", sess.JobField, len(sess.Questions))
	fmt.Fprintln(out, "Finish each answer with an empty line. Type \"quit\" to stop early.")

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

ask:
	for i, q := range sess.Questions {
		fmt.Fprintf(out, "\nQuestion %d/%d [%s]\n%s\n> ", i+1, len(sess.Questions), q.Category, q.Text)

		answer, quit, eof := readAnswer(scanner)
		switch {
		case quit:
			break ask
		case answer == "":
			fmt.Fprintln(out, "(skipped)")
		default:
			res, err := svc.Answer(ctx, sess.ID, q.Text, answer)
			if err != nil {
				return career.CareerProfile{}, err
			}
			fmt.Fprintln(out)
			fmt.Fprint(out, formatters.FeedbackMarkdown(res.Record))
		}
		if eof {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return career.CareerProfile{}, fmt.Errorf("failed to read answers: %w", err)
	}

	fmt.Fprintln(out)
	return svc.Complete(ctx, sess.ID)
}

// readAnswer collects lines up to the first empty line
func readAnswer(scanner *bufio.Scanner) (answer string, quit, eof bool) {
	var lines []string
	for {
		if !scanner.Scan() {
			return strings.Join(lines, "\n"), false, true
		}
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(lines) == 0 && strings.EqualFold(strings.TrimSpace(line), "quit") {
			return "", true, false
		}
		if strings.TrimSpace(line) == "" {
			return strings.Join(lines, "\n"), false, false
		}
		lines = append(lines, line)
	}
}
