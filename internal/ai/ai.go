// Package ai defines how external models judge a candidate against a job.
package ai

import (
	"context"

	"github.com/spigell/hr-screener/internal/screening"
)

// Job is what a candidate is assessed against.
type Job struct {
	Keywords []string
	// Note is an optional free-form job description.
	Note string
}

type FitAssessment struct {
	Fit    bool
	Score  float64
	Reason string
	Raw    string
}

type Matcher interface {
	Evaluate(ctx context.Context, job Job, candidate *screening.Candidate) (*FitAssessment, error)
}
