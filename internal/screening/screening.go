// Package screening scores a candidate roster against a comma separated
// keyword query and ranks it by match score.
package screening

import (
	"errors"
	"math"
	"sort"
	"strings"
)

// ErrEmptyQuery is returned when the query holds no keywords. The roster is
// left untouched and the caller is expected to tell the user.
var ErrEmptyQuery = errors.New("please enter some job keywords first")

// EmptyQueryMessage is the text shown to the user on ErrEmptyQuery.
const EmptyQueryMessage = "Please enter some job keywords first!"

type State int

const (
	StateIdle State = iota
	StateScored
)

func (s State) String() string {
	switch s {
	case StateScored:
		return "scored"
	default:
		return "idle"
	}
}

// Result describes a successful screening pass.
type Result struct {
	State    State
	Keywords []string
}

// ParseKeywords lower-cases raw, splits it on commas and drops tokens that are
// empty after trimming. Order and duplicates are kept.
func ParseKeywords(raw string) []string {
	parts := strings.Split(strings.ToLower(raw), ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		keywords = append(keywords, p)
	}
	return keywords
}

// Screen rescores every candidate in roster against rawKeywords and reorders
// the roster in place by descending score. Candidates with equal scores keep
// their previous relative order.
//
// Screen is not safe for concurrent use on the same roster.
func Screen(roster *Roster, rawKeywords string) (Result, error) {
	keywords := ParseKeywords(rawKeywords)
	if len(keywords) == 0 {
		return Result{State: StateIdle}, ErrEmptyQuery
	}

	if roster == nil {
		return Result{State: StateScored, Keywords: keywords}, nil
	}

	for _, c := range roster.Items {
		c.MatchScore = Score(c.Skills, keywords)
	}

	sort.SliceStable(roster.Items, func(i, j int) bool {
		return roster.Items[i].MatchScore > roster.Items[j].MatchScore
	})

	return Result{State: StateScored, Keywords: keywords}, nil
}

// Score returns round(matching/len(keywords)*100), where matching is the
// number of skills containing at least one keyword. The result is not clamped
// to 100. keywords must already be normalized by ParseKeywords.
func Score(skills, keywords []string) int {
	if len(keywords) == 0 {
		return 0
	}

	matching := 0
	for _, skill := range skills {
		if matchesAny(strings.ToLower(skill), keywords) {
			matching++
		}
	}

	// Exact halves round up.
	return int(math.Floor(float64(matching)/float64(len(keywords))*100 + 0.5))
}

func matchesAny(skill string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(skill, k) {
			return true
		}
	}
	return false
}
