package cli

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"intervu/internal/common"
	"intervu/internal/questions"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Browse the interview question bank",
}

var questionFieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the job fields in the question bank",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadQuestionSource(cmd)
		if err != nil {
			return err
		}
		for _, f := range src.Bank().Fields() {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return nil
	},
}

var questionSampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Sample questions for a job field",
	Long: `Sample questions the way an interview session does: one question from each
category in interview order, then round-robin across categories. Pass --seed
for a reproducible sample or --all to list every question of the field.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return resolveFormat(cmd, &sampleConfig.OutputFormat)
	},
	RunE: runQuestionSample,
}

var (
	sampleConfig common.CommandConfig
	sampleField  string
	sampleCount  int
	sampleSeed   int64
	sampleAll    bool
)

func init() {
	addOutputFlags(questionSampleCmd, &sampleConfig.OutputFile, &sampleConfig.OutputFormat)
	questionSampleCmd.Flags().StringVar(&sampleField, "field", "", "Job field (default from config)")
	questionSampleCmd.Flags().IntVarP(&sampleCount, "count", "n", 0, "Number of questions (default from config)")
	questionSampleCmd.Flags().Int64Var(&sampleSeed, "seed", 0, "Seed for a reproducible sample")
	questionSampleCmd.Flags().BoolVar(&sampleAll, "all", false, "List every question of the field")

	questionsCmd.AddCommand(questionFieldsCmd)
	questionsCmd.AddCommand(questionSampleCmd)
}

func loadQuestionSource(cmd *cobra.Command) (*questions.Source, error) {
	cfg := getConfigFromContext(cmd.Context())
	return questions.NewSource(cfg.Interview.QuestionBankFile, getLoggerFromContext(cmd.Context()))
}

func runQuestionSample(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	src, err := loadQuestionSource(cmd)
	if err != nil {
		return err
	}

	field := sampleField
	if field == "" {
		field = cfg.Interview.DefaultJobField
	}
	count := sampleCount
	if count == 0 {
		count = cfg.Interview.QuestionCount
	}

	var picked []questions.Question
	if sampleAll {
		picked, err = src.Bank().Questions(field)
	} else {
		var rng *rand.Rand
		if cmd.Flags().Changed("seed") {
			rng = rand.New(rand.NewPCG(uint64(sampleSeed), uint64(sampleSeed)))
		}
		picked, err = src.Bank().Sample(field, count, rng)
	}
	if err != nil {
		return err
	}

	sampleConfig.Out = cmd.OutOrStdout()
	return common.NewOutputHandler(logger).HandleOutput(picked, sampleConfig)
}
