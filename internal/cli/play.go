package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"clap-quiz/internal/app"
	"clap-quiz/internal/config"
	"clap-quiz/internal/domain"
	"github.com/spf13/cobra"
)

const quitCommand = ":quit"

// NewPlayCmd runs a quiz session on the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var bankID string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the quiz in the terminal (type " + quitCommand + " or Ctrl-D to finish)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			if bankID == "" {
				bankID = cfg.Quiz.Bank
			}
			log := newLogger(cfg)
			rt, err := buildRuntime(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer rt.Close()
			return playSession(cmd.Context(), rt.service, bankID, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&bankID, "bank", "", "question bank id (default from config, then capitals)")
	return cmd
}

func playSession(ctx context.Context, service *app.QuizService, bankID string, in io.Reader, out io.Writer) error {
	sessionID, prompt, err := service.StartNew(ctx, bankID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, prompt)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == quitCommand {
			break
		}
		result, err := service.SubmitAnswer(ctx, sessionID, line)
		if err != nil {
			return err
		}
		switch result.Outcome {
		case domain.OutcomeCorrect:
			fmt.Fprintln(out, "Correct!")
		case domain.OutcomeIncorrect:
			fmt.Fprintln(out, "Wrong!")
		default:
			continue
		}
		fmt.Fprintln(out, result.Prompt)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	score, err := service.End(ctx, sessionID)
	fmt.Fprintln(out, score.Message())
	return err
}
