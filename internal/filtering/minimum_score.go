package filtering

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spigell/hr-screener/internal/screening"
)

type minimumScoreFilter struct {
	min      int
	disabled bool
	reason   string
}

// NewMinimumScore creates a filter that drops candidates scoring below min.
func NewMinimumScore(min int) Filter {
	return &minimumScoreFilter{min: min}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *minimumScoreFilter) IsEnabled() bool { return !f.disabled }

func (f *minimumScoreFilter) Validate() error {
	if f.min < 0 {
		return fmt.Errorf("minimum score must not be negative, got %d", f.min)
	}
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, r *screening.Roster) (*screening.Roster, Step, error) {
	initial := r.Len()
	dropped := r.ExcludeFunc(func(c *screening.Candidate) bool {
		return c.MatchScore < f.min
	})

	return r, Step{Initial: initial, Dropped: len(dropped), Left: r.Len()}, nil
}

func (f *minimumScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"minimum_score": strconv.Itoa(f.min)},
	}
}
