// Package roster loads candidate rosters from the built-in seed, local files
// or remote JSON documents, and writes ranked rosters back out.
package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spigell/hr-screener/internal/screening"
)

// Source says where a roster comes from. URL wins over File; with neither the
// demo seed is used.
type Source struct {
	File      string
	URL       string
	UserAgent string
}

func (s Source) String() string {
	switch {
	case strings.TrimSpace(s.URL) != "":
		return s.URL
	case strings.TrimSpace(s.File) != "":
		return s.File
	default:
		return "seed"
	}
}

// Load resolves src into a fresh roster with zero scores.
func Load(ctx context.Context, client *Client, src Source) (*screening.Roster, error) {
	if url := strings.TrimSpace(src.URL); url != "" {
		if client == nil {
			client = NewClient(nil)
		}
		if src.UserAgent != "" {
			client.UserAgent = src.UserAgent
		}
		return client.Fetch(ctx, url)
	}

	if file := strings.TrimSpace(src.File); file != "" {
		return LoadFile(file)
	}

	return Seed(), nil
}

type document struct {
	Candidates []*screening.Candidate `json:"candidates"`
}

// DumpToTmpFile writes the roster, in its current order, to a temporary JSON
// file and returns the file name. The file can be loaded back with LoadFile.
func DumpToTmpFile(r *screening.Roster) (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{Candidates: r.Items}); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportByTier groups candidate summaries by score tier.
func ReportByTier(r *screening.Roster) map[screening.ScoreTier][]map[string]string {
	report := make(map[screening.ScoreTier][]map[string]string)
	for _, c := range r.Items {
		tier := screening.Tier(c.MatchScore)
		report[tier] = append(report[tier], map[string]string{
			"name":       c.Name,
			"role":       c.Role,
			"experience": c.Experience,
			"skills":     strings.Join(c.Skills, ", "),
			"score":      fmt.Sprintf("%d%%", c.MatchScore),
		})
	}
	return report
}
