package filtering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/screening"
)

type ExcludedCandidates struct {
	Items []*ExcludedCandidate
}

type ExcludedCandidate struct {
	Name       string
	Reason     string `json:",omitempty"`
	ExcludedAt time.Time
}

// NewExcluded builds exclude entries for every candidate in r.
func NewExcluded(r *screening.Roster, reason string) *ExcludedCandidates {
	excluded := &ExcludedCandidates{}
	now := time.Now().UTC()
	for _, c := range r.Items {
		excluded.Items = append(excluded.Items, &ExcludedCandidate{
			Name:       c.Name,
			Reason:     reason,
			ExcludedAt: now,
		})
	}
	return excluded
}

// GetExcludedFromFile reads an exclude file. A missing or empty file yields
// an empty list.
func GetExcludedFromFile(path string) (*ExcludedCandidates, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return &ExcludedCandidates{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedCandidates{}, nil
	}

	var excluded ExcludedCandidates
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

// Append adds the entries of s whose names are not listed yet.
func (e *ExcludedCandidates) Append(s *ExcludedCandidates) {
	seen := make(map[string]struct{}, len(e.Items))
	for _, item := range e.Items {
		seen[item.Name] = struct{}{}
	}
	for _, item := range s.Items {
		if _, ok := seen[item.Name]; ok {
			continue
		}
		seen[item.Name] = struct{}{}
		e.Items = append(e.Items, item)
	}
}

func (e *ExcludedCandidates) Names() []string {
	names := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		names = append(names, item.Name)
	}
	return names
}

func (e *ExcludedCandidates) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

type excludeFileFilter struct {
	path   string
	logger *zap.Logger
}

// NewExcludeFile creates a filter that removes candidates listed in an exclude file.
func NewExcludeFile(path string, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &excludeFileFilter{path: path, logger: logger}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(string) {}

func (f *excludeFileFilter) IsEnabled() bool { return true }

func (f *excludeFileFilter) Validate() error { return nil }

func (f *excludeFileFilter) Apply(_ context.Context, r *screening.Roster) (*screening.Roster, Step, error) {
	initial := r.Len()
	if f.path == "" {
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}

	excluded, err := GetExcludedFromFile(f.path)
	if err != nil {
		return r, Step{}, fmt.Errorf("getting excluded candidates from file: %w", err)
	}

	removed := r.Exclude(excluded.Names())
	if len(removed) > 0 {
		f.logger.Info("excluding candidates based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(removed), Left: r.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
