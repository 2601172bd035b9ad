package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/screening"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var shortlistCmd = &cobra.Command{
	Use:   "shortlist",
	Short: "Screen the roster and record the candidates that pass every filter",
	// Flags shared with other commands are bound here, so the running command wins.
	PreRun: func(cmd *cobra.Command, _ []string) {
		viper.BindPFlag("screen.keywords", cmd.Flags().Lookup("keywords"))
	},
	Run: func(cmd *cobra.Command, _ []string) {
		shortlist(cmd)
	},
}

func init() {
	rootCmd.AddCommand(shortlistCmd)

	shortlistCmd.Flags().StringP("keywords", "k", "", "comma separated job keywords")
	shortlistCmd.Flags().IntP("minimum-score", "m", 0, "drop candidates scoring below this value")
	shortlistCmd.Flags().StringP("exclude-file", "e", "", "special file with candidates to exclude. Default is unset.")
	shortlistCmd.Flags().BoolP("include-shortlisted", "f", false, "do not exclude candidates that were shortlisted before")
	shortlistCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before recording the shortlist")
	shortlistCmd.Flags().Bool("dry-run", false, "show the shortlist without recording it")

	viper.BindPFlag("shortlist.minimum-score", shortlistCmd.Flags().Lookup("minimum-score"))
	viper.BindPFlag("shortlist.exclude-file", shortlistCmd.Flags().Lookup("exclude-file"))
}

func shortlist(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	s, err := newSession(ctx, config, cmd.OutOrStdout(), logger)
	if err != nil {
		logger.Fatal("starting a session", zap.Error(err))
	}
	defer s.Close()

	raw := config.Screen.Keywords
	if _, err := screenUntilScored(ctx, s, raw, false, cmd.OutOrStdout()); err != nil {
		logger.Fatal("screening", zap.Error(err))
	}

	includeShortlisted, _ := cmd.Flags().GetBool("include-shortlisted")
	autoApprove, _ := cmd.Flags().GetBool("auto-approve")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if err := runShortlist(ctx, s, raw, includeShortlisted, autoApprove, dryRun); err != nil {
		if errors.Is(err, errExit) {
			return
		}
		logger.Fatal("shortlisting", zap.Error(err))
	}
}

// runShortlist filters the screened roster, shows what is left and records
// it after confirmation.
func runShortlist(ctx context.Context, s *session, raw string, includeShortlisted, autoApprove, dryRun bool) error {
	res, err := s.shortlist(ctx, includeShortlisted)
	if err != nil {
		return err
	}

	for name, assessment := range res.Assessments {
		s.logger.Debug("ai assessment",
			zap.String("candidate", name),
			zap.Bool("fit", assessment.Fit),
			zap.Float64("score", assessment.Score),
			zap.String("reason", assessment.Reason),
		)
	}

	if res.Shortlist.Len() == 0 {
		s.logger.Info("nothing to shortlist", zap.String("reason", "no candidates left after filters"))
		return nil
	}

	if err := s.renderer.Render(ctx, res.Shortlist.Cards()); err != nil {
		return err
	}

	if dryRun {
		s.logger.Info("dry run, shortlist is not recorded", zap.Int("count", res.Shortlist.Len()))
		return nil
	}

	if !autoApprove {
		confirm := promptui.Select{
			Label: "Record this shortlist?",
			Items: []string{PromptYes, PromptNo},
		}
		_, answer, err := confirm.Run()
		if err != nil {
			return err
		}
		if answer != PromptYes {
			s.logger.Info("shortlist is not recorded", zap.String("reason", "got no from prompt"))
			return nil
		}
	}

	return s.recordShortlist(raw, res.Shortlist)
}

func (s *session) recordShortlist(raw string, shortlist *screening.Roster) error {
	if s.history == nil {
		s.logger.Warn("history file is not configured, shortlist is not recorded", zap.String("key", "shortlist.history-file"))
		return nil
	}

	names := shortlist.Names()
	if err := s.history.MarkShortlisted(raw, names...); err != nil {
		return err
	}
	if err := s.record(raw, names); err != nil {
		return err
	}

	s.logger.Info("shortlist recorded", zap.Strings("candidates", names))
	return nil
}
