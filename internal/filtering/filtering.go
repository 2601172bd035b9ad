// Package filtering narrows a screened roster down to a shortlist by running
// it through a sequence of filter steps.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/ai"
	"github.com/spigell/hr-screener/internal/screening"
)

// Filter represents a single filtering step applied to candidates.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate() error
	Apply(ctx context.Context, r *screening.Roster) (*screening.Roster, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

type assessmentsProvider interface {
	Assessments() map[string]*ai.FitAssessment
}

type Filtering struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, logger *zap.Logger) *Filtering {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filtering{steps: steps, logger: logger}
}

// Result is the outcome of a filtering run.
type Result struct {
	Shortlist   *screening.Roster
	Steps       map[string]Step
	Assessments map[string]*ai.FitAssessment
}

// RunFilters validates every enabled step and then applies them in order to a
// copy of r. r itself is never modified.
func (f *Filtering) RunFilters(ctx context.Context, r *screening.Roster) (*Result, error) {
	for _, step := range f.steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	res := &Result{
		Shortlist:   r.Clone(),
		Steps:       make(map[string]Step),
		Assessments: make(map[string]*ai.FitAssessment),
	}

	for _, step := range f.steps {
		if !step.IsEnabled() {
			f.logger.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, res.Shortlist)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		f.logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		res.Shortlist = next
		res.Steps[step.Name()] = info

		if collector, ok := step.(assessmentsProvider); ok {
			for name, assessment := range collector.Assessments() {
				res.Assessments[name] = assessment
			}
		}
	}

	return res, nil
}

// Describe returns status entries for the configured filters.
func (f *Filtering) Describe() []Status {
	statuses := make([]Status, 0, len(f.steps))
	for _, step := range f.steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// DisableByName marks the filter with the provided name as disabled while keeping it in the list.
func (f *Filtering) DisableByName(name, reason string) {
	for _, step := range f.steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}
