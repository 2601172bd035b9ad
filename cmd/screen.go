package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/filtering"
	"github.com/spigell/hr-screener/internal/roster"
	"github.com/spigell/hr-screener/internal/screening"
	"github.com/spigell/hr-screener/internal/watch"
)

const (
	PromptNewKeywords         = "Screen with new keywords"
	PromptShortlist           = "Shortlist candidates"
	PromptReportByTier        = "Report by tier"
	PromptCandidatesToFile    = "Dump candidates to file"
	PromptExcludeCandidates   = "Exclude candidates"
	PromptAppendToExcludeFile = "Append all candidates to exclude file"
	PromptExit                = "Exit"
	PromptBack                = "back"
)

var errExit = errors.New("exit requested")

var actionPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptNewKeywords, PromptShortlist, PromptReportByTier, PromptCandidatesToFile, PromptExcludeCandidates, PromptExit},
}

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Score every candidate against job keywords and show the ranking",
	PreRun: func(cmd *cobra.Command, _ []string) {
		viper.BindPFlag("screen.keywords", cmd.Flags().Lookup("keywords"))
	},
	Run: func(cmd *cobra.Command, _ []string) {
		screen(cmd)
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringP("keywords", "k", "", "comma separated job keywords, e.g. \"react, typescript\"")
	screenCmd.Flags().Bool("watch", false, "re-screen every time the roster file changes")
	screenCmd.Flags().BoolP("auto-approve", "y", false, "do not ask anything, screen once and exit")
}

func screen(cmd *cobra.Command) {
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
	out := cmd.OutOrStdout()

	watchMode, _ := cmd.Flags().GetBool("watch")
	if watchMode {
		if err := watchRoster(ctx, s, raw, out); err != nil {
			logger.Fatal("watching roster", zap.Error(err))
		}
		return
	}

	interactive, _ := cmd.Flags().GetBool("auto-approve")
	interactive = !interactive

	if raw, err = screenUntilScored(ctx, s, raw, interactive, out); err != nil {
		if errors.Is(err, errExit) {
			return
		}
		logger.Fatal("screening", zap.Error(err))
	}

	if !interactive {
		return
	}

	for {
		_, action, err := actionPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if raw, err = handleAction(ctx, action, s, raw, out); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// screenUntilScored screens with raw and, in interactive mode, keeps asking
// for keywords until a pass succeeds. It returns the query that was used.
func screenUntilScored(ctx context.Context, s *session, raw string, interactive bool, out io.Writer) (string, error) {
	for {
		if interactive && strings.TrimSpace(raw) == "" {
			var err error
			if raw, err = askKeywords(""); err != nil {
				return raw, err
			}
		}

		err := s.screen(ctx, raw)
		if err == nil {
			return raw, nil
		}
		if !errors.Is(err, screening.ErrEmptyQuery) {
			return raw, err
		}

		fmt.Fprintln(out, screening.EmptyQueryMessage)
		if !interactive {
			return raw, err
		}
		raw = ""
	}
}

func askKeywords(previous string) (string, error) {
	prompt := promptui.Prompt{
		Label:   "Job keywords (comma separated)",
		Default: previous,
	}

	raw, err := prompt.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return "", errExit
	}
	return raw, err
}

func handleAction(ctx context.Context, action string, s *session, raw string, out io.Writer) (string, error) {
	switch action {
	case PromptNewKeywords:
		next, err := askKeywords(raw)
		if err != nil {
			return raw, err
		}
		if err := s.screen(ctx, next); err != nil {
			if errors.Is(err, screening.ErrEmptyQuery) {
				// the last ranking stays valid
				fmt.Fprintln(out, screening.EmptyQueryMessage)
				return raw, nil
			}
			return raw, err
		}
		return next, nil
	case PromptShortlist:
		return raw, runShortlist(ctx, s, raw, false, false, false)
	case PromptReportByTier:
		r := s.matcher.Roster()
		pretty, _ := json.MarshalIndent(roster.ReportByTier(r), "", "  ")
		s.logger.Info(string(pretty), zap.Int("candidates count", r.Len()))
		return raw, nil
	case PromptCandidatesToFile:
		filename, err := roster.DumpToTmpFile(s.matcher.Roster())
		if err != nil {
			return raw, fmt.Errorf("dump candidates to file: %w", err)
		}
		s.logger.Info("dumping candidates to file", zap.String("filename", filename))
		return raw, nil
	case PromptExcludeCandidates:
		return raw, manualExclude(s)
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return raw, errExit
	default:
		return raw, fmt.Errorf("invalid action: %s", action)
	}
}

// manualExclude lets the user pick candidates that go to the exclude file so
// later shortlists skip them. The screened roster is left as is.
func manualExclude(s *session) error {
	excludeFile := strings.TrimSpace(s.config.Shortlist.ExcludeFile)
	if excludeFile == "" {
		s.logger.Warn("exclude file is not configured", zap.String("key", "shortlist.exclude-file"))
		return nil
	}

	shown := s.matcher.Roster().Clone()

	for {
		items := make([]string, 0, shown.Len()+2)
		for _, c := range shown.Items {
			items = append(items, fmt.Sprintf("%s / %s / %d%%", c.Name, c.Role, c.MatchScore))
		}
		if shown.Len() != 0 {
			items = append(items, PromptAppendToExcludeFile)
		}

		candidatePrompt := promptui.Select{
			Label: "Choose a candidate to exclude and press ENTER",
			Items: append(items, PromptBack),
		}

		_, selected, err := candidatePrompt.Run()
		if err != nil {
			return err
		}

		var picked *screening.Roster
		switch selected {
		case PromptBack:
			return nil
		case PromptAppendToExcludeFile:
			picked = shown
		default:
			name := strings.Split(selected, " / ")[0]
			c := shown.FindByName(name)
			if c == nil {
				return fmt.Errorf("there is no such candidate %s", name)
			}
			picked = screening.NewRoster(c)
		}

		excluded, err := filtering.GetExcludedFromFile(excludeFile)
		if err != nil {
			return err
		}

		excluded.Append(filtering.NewExcluded(picked, "excluded manually"))

		if err = excluded.ToFile(excludeFile); err != nil {
			return err
		}

		s.logger.Info("appended to exclude file", zap.String("filename", excludeFile), zap.Strings("candidates", picked.Names()))

		shown.Exclude(excluded.Names())
	}
}

// watchRoster screens once and then again after every change of the roster
// file until ctx is cancelled.
func watchRoster(ctx context.Context, s *session, raw string, out io.Writer) error {
	file := strings.TrimSpace(s.config.Roster.File)
	if file == "" {
		return errors.New("watch mode needs a roster file (--roster or roster.file)")
	}
	if s.config.Roster.URL != "" {
		return errors.New("watch mode does not work with roster.url")
	}

	if _, err := screenUntilScored(ctx, s, raw, false, out); err != nil {
		return err
	}

	w, err := watch.New(s.logger)
	if err != nil {
		return err
	}
	defer w.Close()

	s.logger.Info("watching roster file", zap.String("filename", file))

	return w.Watch(ctx, file, func() {
		if err := s.reload(ctx); err != nil {
			// keep the last good ranking on screen
			s.logger.Warn("reloading roster", zap.Error(err))
			return
		}
		if err := s.screen(ctx, raw); err != nil {
			s.logger.Warn("screening reloaded roster", zap.Error(err))
		}
	})
}
