package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/ai"
	"github.com/spigell/hr-screener/internal/ai/gemini"
	"github.com/spigell/hr-screener/internal/filtering"
	"github.com/spigell/hr-screener/internal/history"
	"github.com/spigell/hr-screener/internal/logger"
	"github.com/spigell/hr-screener/internal/render"
	"github.com/spigell/hr-screener/internal/roster"
	"github.com/spigell/hr-screener/internal/screening"
	"github.com/spigell/hr-screener/internal/secrets"
)

const geminiAPIKeyEnv = "GEMINI_API_KEY"

// session ties one roster to the collaborators used to screen, show and
// shortlist it. Calls must come from a single goroutine.
type session struct {
	config   *Config
	logger   *zap.Logger
	source   roster.Source
	client   *roster.Client
	matcher  *screening.Matcher
	renderer render.Renderer
	history  *history.Store
}

func newSession(ctx context.Context, config *Config, out io.Writer, logger *zap.Logger) (*session, error) {
	renderer, err := render.New(config.Screen.Output, out)
	if err != nil {
		return nil, err
	}

	s := &session{
		config:   config,
		logger:   logger,
		client:   roster.NewClient(logger),
		renderer: renderer,
		source: roster.Source{
			File:      config.Roster.File,
			URL:       config.Roster.URL,
			UserAgent: config.Roster.UserAgent,
		},
	}

	r, err := roster.Load(ctx, s.client, s.source)
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}

	logger.Info("roster loaded", zap.String("source", s.source.String()), zap.Int("candidates", r.Len()))

	s.matcher = screening.NewMatcher(r, logger)

	if path := strings.TrimSpace(config.Shortlist.HistoryFile); path != "" {
		store, err := history.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening history: %w", err)
		}
		s.history = store
	}

	return s, nil
}

func (s *session) Close() {
	if s.history == nil {
		return
	}
	if err := s.history.Close(); err != nil {
		s.logger.Warn("closing history", zap.Error(err))
	}
}

// screen runs one pass over the roster, records it and renders the result.
func (s *session) screen(ctx context.Context, raw string) error {
	r, err := s.matcher.Screen(raw)
	if err != nil {
		return err
	}

	s.logger.Info("candidates screened", append(
		logger.QueryFields(raw, s.matcher.Keywords()),
		zap.Int("count", r.Len()),
	)...)

	if err := s.record(raw, nil); err != nil {
		s.logger.Warn("recording screening run", zap.Error(err))
	}

	return s.renderer.Render(ctx, r.Cards())
}

// reload replaces the roster from its source, keeping the session idle until
// the next pass.
func (s *session) reload(ctx context.Context) error {
	r, err := roster.Load(ctx, s.client, s.source)
	if err != nil {
		return err
	}
	s.matcher.Replace(r)
	s.logger.Info("roster reloaded", zap.String("source", s.source.String()), zap.Int("candidates", r.Len()))
	return nil
}

func (s *session) record(raw string, shortlisted []string) error {
	if s.history == nil {
		return nil
	}

	r := s.matcher.Roster()
	scores := make(map[string]int, r.Len())
	for _, c := range r.Items {
		scores[c.Name] = c.MatchScore
	}

	run, err := s.history.SaveRun(history.Run{
		Query:       raw,
		Keywords:    s.matcher.Keywords(),
		Source:      s.source.String(),
		Scores:      scores,
		Ranking:     r.Names(),
		Shortlisted: shortlisted,
	})
	if err != nil {
		return err
	}

	s.logger.Debug("screening run recorded", zap.Uint64("run_id", run.ID))
	return nil
}

// shortlist runs the filter pipeline over the last screened roster.
func (s *session) shortlist(ctx context.Context, includeShortlisted bool) (*filtering.Result, error) {
	if s.matcher.State() != screening.StateScored {
		return nil, fmt.Errorf("roster has not been screened yet")
	}

	filters, err := s.prepareFilters(ctx, includeShortlisted)
	if err != nil {
		return nil, err
	}

	return filters.RunFilters(ctx, s.matcher.Roster())
}

func (s *session) prepareFilters(ctx context.Context, includeShortlisted bool) (*filtering.Filtering, error) {
	cfg := s.config.Shortlist

	steps := []filtering.Filter{
		filtering.NewMinimumScore(cfg.MinimumScore),
		filtering.NewExcludeFile(cfg.ExcludeFile, s.logger),
	}

	if s.history != nil {
		steps = append(steps, filtering.NewShortlistedHistory(
			&filtering.ShortlistedHistoryConfig{Ignore: includeShortlisted},
			&filtering.ShortlistedHistoryDeps{Store: s.history, Logger: s.logger},
		))
	}

	aiFilter, err := s.prepareAIFilter(ctx)
	if err != nil {
		s.logger.Warn("skipping AI filter", zap.Error(err))
	} else {
		steps = append(steps, aiFilter)
	}

	return filtering.New(steps, s.logger), nil
}

func (s *session) prepareAIFilter(ctx context.Context) (filtering.Filter, error) {
	config := s.config.AI
	if config == nil || !config.Enabled {
		return filtering.NewAIFit(&filtering.AIFitFilterConfig{Enabled: false}, nil), nil
	}

	if config.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai filter is enabled")
	}

	matcher, err := newAIMatcher(ctx, config, s.logger)
	if err != nil {
		return nil, fmt.Errorf("building ai matcher: %w", err)
	}

	return filtering.NewAIFit(&filtering.AIFitFilterConfig{
		Enabled:         config.Enabled,
		Provider:        config.Provider,
		MinimumFitScore: config.MinimumFitScore,
		Model:           config.Gemini.Model,
	}, &filtering.AIFitFilterDeps{
		Logger:  s.logger,
		Matcher: matcher,
		Job: ai.Job{
			Keywords: s.matcher.Keywords(),
			Note:     s.config.Shortlist.JobNote,
		},
	}), nil
}

func newAIMatcher(ctx context.Context, cfg *AIConfig, l *zap.Logger) (ai.Matcher, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  geminiAPIKeyEnv,
	})
	if err != nil {
		return nil, fmt.Errorf("%w or ai.gemini.api-key-file", err)
	}

	genLogger := logger.WithFields(
		logger.WithCommonFields(l, "gemini", cfg.Gemini.Model),
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	minScore := cfg.MinimumFitScore
	if minScore < 0 {
		minScore = 0
	}

	matcherLogger := logger.WithFields(
		logger.WithCommonFields(l, "gemini", generator.Model()),
		zap.Float64("minimum_fit_score", minScore),
	)

	return gemini.NewMatcher(generator, minScore, cfg.Gemini.MaxLogLength, matcherLogger), nil
}
