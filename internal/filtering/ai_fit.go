package filtering

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/ai"
	"github.com/spigell/hr-screener/internal/screening"
)

type AIFitFilterConfig struct {
	Enabled         bool
	Provider        string
	MinimumFitScore float64
	Model           string
}

type AIFitFilterDeps struct {
	Logger  *zap.Logger
	Matcher ai.Matcher
	Job     ai.Job
}

type aiFitFilter struct {
	config      *AIFitFilterConfig
	deps        *AIFitFilterDeps
	disabled    bool
	reason      string
	assessments map[string]*ai.FitAssessment
}

// NewAIFit creates the AI-based filtering step.
func NewAIFit(cfg *AIFitFilterConfig, deps *AIFitFilterDeps) Filter {
	f := &aiFitFilter{config: cfg, deps: deps}
	if cfg == nil || !cfg.Enabled {
		f.Disable("disabled in config")
	}
	return f
}

func (f *aiFitFilter) Name() string { return "ai_fit" }

func (f *aiFitFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *aiFitFilter) IsEnabled() bool { return !f.disabled }

func (f *aiFitFilter) Validate() error {
	if f.deps == nil || f.deps.Matcher == nil {
		return fmt.Errorf("ai matcher is required when ai filter is enabled")
	}
	if f.deps.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	if len(f.deps.Job.Keywords) == 0 && strings.TrimSpace(f.deps.Job.Note) == "" {
		return fmt.Errorf("job keywords are required for ai evaluation")
	}
	return nil
}

// Apply asks the matcher about every candidate. Candidates the matcher
// rejects are dropped; candidates it fails to assess are kept.
func (f *aiFitFilter) Apply(ctx context.Context, r *screening.Roster) (*screening.Roster, Step, error) {
	initial := r.Len()
	logger := f.deps.Logger
	f.assessments = make(map[string]*ai.FitAssessment)

	var rejected []string
	for _, c := range r.Items {
		if err := ctx.Err(); err != nil {
			return r, Step{}, err
		}

		assessment, err := f.deps.Matcher.Evaluate(ctx, f.deps.Job, c)
		if err != nil {
			logger.Warn("AI evaluation failed", zap.String("candidate", c.Name), zap.Error(err))
			continue
		}

		if !assessment.Fit {
			logger.Info("candidate rejected by AI provider",
				zap.String("candidate", c.Name),
				zap.Float64("ai_score", assessment.Score),
				zap.String("reason", assessment.Reason),
			)
			rejected = append(rejected, c.Name)
			continue
		}

		logger.Info("candidate approved by AI",
			zap.String("candidate", c.Name),
			zap.Float64("ai_score", assessment.Score),
		)
		f.assessments[c.Name] = assessment
	}

	r.Exclude(rejected)

	return r, Step{Initial: initial, Dropped: len(rejected), Left: r.Len()}, nil
}

func (f *aiFitFilter) Assessments() map[string]*ai.FitAssessment {
	return maps.Clone(f.assessments)
}

func (f *aiFitFilter) Status() Status {
	details := map[string]string{}
	if f.config != nil {
		details["minimum_fit_score"] = fmt.Sprintf("%.2f", f.config.MinimumFitScore)
		if f.config.Provider != "" {
			details["provider"] = f.config.Provider
		}
		if f.config.Model != "" {
			details["model"] = f.config.Model
		}
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
