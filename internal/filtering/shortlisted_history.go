package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/screening"
)

const includeFlagSetMsg = "include-shortlisted flag is set"

// ShortlistStore lists candidates that were shortlisted before.
type ShortlistStore interface {
	ShortlistedNames() ([]string, error)
}

type ShortlistedHistoryDeps struct {
	Store  ShortlistStore
	Logger *zap.Logger
}

type ShortlistedHistoryConfig struct {
	Ignore bool
}

type shortlistedHistoryFilter struct {
	deps   *ShortlistedHistoryDeps
	ignore bool
}

// NewShortlistedHistory creates a filter that removes candidates already shortlisted by earlier runs.
func NewShortlistedHistory(cfg *ShortlistedHistoryConfig, deps *ShortlistedHistoryDeps) Filter {
	ignore := false
	if cfg != nil {
		ignore = cfg.Ignore
	}

	return &shortlistedHistoryFilter{deps: deps, ignore: ignore}
}

func (f *shortlistedHistoryFilter) Name() string { return "shortlisted_history" }

func (f *shortlistedHistoryFilter) Disable(string) {}

func (f *shortlistedHistoryFilter) IsEnabled() bool { return true }

func (f *shortlistedHistoryFilter) Validate() error {
	if f.deps == nil || f.deps.Store == nil {
		return fmt.Errorf("history store is required")
	}

	if f.deps.Logger == nil {
		return fmt.Errorf("logger is required")
	}

	return nil
}

func (f *shortlistedHistoryFilter) Apply(_ context.Context, r *screening.Roster) (*screening.Roster, Step, error) {
	initial := r.Len()
	if f.ignore {
		f.deps.Logger.Info("keeping already shortlisted candidates", zap.String("reason", includeFlagSetMsg))
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}

	names, err := f.deps.Store.ShortlistedNames()
	if err != nil {
		return r, Step{}, fmt.Errorf("get shortlisted candidates: %w", err)
	}

	excluded := r.Exclude(names)
	if len(excluded) > 0 {
		f.deps.Logger.Info("excluding candidates shortlisted before",
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}

func (f *shortlistedHistoryFilter) Status() Status {
	reason := ""
	if f.ignore {
		reason = "skip requested via flag"
	}
	return Status{
		Name:    f.Name(),
		Enabled: true,
		Reason:  reason,
		Details: map[string]string{"exclude_shortlisted": strconv.FormatBool(!f.ignore)},
	}
}
