package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{name: "empty", input: "", expect: []string{}},
		{name: "whitespace only", input: "   ", expect: []string{}},
		{name: "only commas", input: " , ,, ", expect: []string{}},
		{name: "trims and lower-cases", input: "React, node.js ,  Python", expect: []string{"react", "node.js", "python"}},
		{name: "keeps duplicates", input: "Go,go, GO", expect: []string{"go", "go", "go"}},
		{name: "stray commas", input: ",docker,,aws,", expect: []string{"docker", "aws"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, ParseKeywords(tt.input))
		})
	}
}

func twoCandidates() *Roster {
	return NewRoster(
		&Candidate{Name: "first", Skills: []string{"JavaScript", "React", "Node.js", "Python"}},
		&Candidate{Name: "second", Skills: []string{"JavaScript", "Vue.js", "CSS", "HTML"}},
	)
}

func TestScreenScoresAndSorts(t *testing.T) {
	roster := NewRoster(
		&Candidate{Name: "second", Skills: []string{"JavaScript", "Vue.js", "CSS", "HTML"}},
		&Candidate{Name: "first", Skills: []string{"JavaScript", "React", "Node.js", "Python"}},
	)

	res, err := Screen(roster, "javascript, react")
	require.NoError(t, err)
	assert.Equal(t, StateScored, res.State)
	assert.Equal(t, []string{"javascript", "react"}, res.Keywords)

	require.Equal(t, 2, roster.Len())
	assert.Equal(t, "first", roster.Items[0].Name)
	assert.Equal(t, 100, roster.Items[0].MatchScore)
	assert.Equal(t, "second", roster.Items[1].Name)
	assert.Equal(t, 50, roster.Items[1].MatchScore)
}

func TestScreenEmptyQueryLeavesRosterUntouched(t *testing.T) {
	roster := twoCandidates()
	roster.Items[1].MatchScore = 0

	for _, query := range []string{"", "   ", ", ,"} {
		res, err := Screen(roster, query)
		require.ErrorIs(t, err, ErrEmptyQuery)
		assert.Equal(t, StateIdle, res.State)
		assert.Equal(t, []string{"first", "second"}, roster.Names())
		for _, c := range roster.Items {
			assert.Zero(t, c.MatchScore)
		}
	}
}

func TestScreenEmptyQueryKeepsPreviousScores(t *testing.T) {
	roster := twoCandidates()
	_, err := Screen(roster, "vue")
	require.NoError(t, err)
	before := roster.Names()

	_, err = Screen(roster, "")
	require.ErrorIs(t, err, ErrEmptyQuery)
	assert.Equal(t, before, roster.Names())
	assert.Equal(t, 100, roster.Items[0].MatchScore)
}

func TestScreenSubstringMatch(t *testing.T) {
	roster := NewRoster(&Candidate{Name: "db", Skills: []string{"PostgreSQL"}})

	_, err := Screen(roster, "sql")
	require.NoError(t, err)
	assert.Equal(t, 100, roster.Items[0].MatchScore)
}

func TestScreenKeywordMustBeInsideSkill(t *testing.T) {
	roster := NewRoster(&Candidate{Name: "go", Skills: []string{"Go"}})

	_, err := Screen(roster, "golang")
	require.NoError(t, err)
	assert.Equal(t, 0, roster.Items[0].MatchScore)
}

func TestScreenSkillCountedOnce(t *testing.T) {
	roster := NewRoster(&Candidate{Name: "js", Skills: []string{"JavaScript"}})

	// both keywords hit the same skill
	_, err := Screen(roster, "java, script")
	require.NoError(t, err)
	assert.Equal(t, 50, roster.Items[0].MatchScore)
}

func TestScreenScoreIsNotClamped(t *testing.T) {
	roster := NewRoster(&Candidate{
		Name:   "scripter",
		Skills: []string{"JavaScript", "TypeScript", "CoffeeScript", "ActionScript"},
	})

	_, err := Screen(roster, "script")
	require.NoError(t, err)
	assert.Equal(t, 400, roster.Items[0].MatchScore)
}

func TestScreenDuplicateKeywordsCountInDenominator(t *testing.T) {
	roster := NewRoster(&Candidate{Name: "dup", Skills: []string{"Docker"}})

	_, err := Screen(roster, "docker, docker, aws")
	require.NoError(t, err)
	assert.Equal(t, 33, roster.Items[0].MatchScore)
}

func TestScreenDoesNotMutateSkills(t *testing.T) {
	roster := twoCandidates()

	_, err := Screen(roster, "javascript")
	require.NoError(t, err)
	assert.Equal(t, []string{"JavaScript", "React", "Node.js", "Python"}, roster.FindByName("first").Skills)
}

func TestScreenIsIdempotent(t *testing.T) {
	roster := NewRoster(
		&Candidate{Name: "a", Skills: []string{"Docker", "AWS"}},
		&Candidate{Name: "b", Skills: []string{"Python"}},
		&Candidate{Name: "c", Skills: []string{"Docker"}},
		&Candidate{Name: "d", Skills: []string{"Kubernetes", "AWS", "Docker"}},
	)

	_, err := Screen(roster, "docker, aws")
	require.NoError(t, err)
	firstOrder := roster.Names()
	firstScores := scores(roster)

	_, err = Screen(roster, "docker, aws")
	require.NoError(t, err)
	assert.Equal(t, firstOrder, roster.Names())
	assert.Equal(t, firstScores, scores(roster))
}

func TestScreenIsStable(t *testing.T) {
	roster := NewRoster(
		&Candidate{Name: "a", Skills: []string{"CSS"}},
		&Candidate{Name: "b", Skills: []string{"Go"}},
		&Candidate{Name: "c", Skills: []string{"CSS"}},
		&Candidate{Name: "d", Skills: []string{"Go"}},
		&Candidate{Name: "e", Skills: []string{"CSS"}},
	)

	_, err := Screen(roster, "go")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, roster.Names())

	// everyone ties, so the previous order must survive
	_, err = Screen(roster, "rust")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, roster.Names())
}

func TestScreenScoresDoNotAccumulate(t *testing.T) {
	roster := twoCandidates()

	_, err := Screen(roster, "react")
	require.NoError(t, err)
	assert.Equal(t, 100, roster.FindByName("first").MatchScore)

	_, err = Screen(roster, "html")
	require.NoError(t, err)
	assert.Equal(t, 0, roster.FindByName("first").MatchScore)
	assert.Equal(t, 100, roster.FindByName("second").MatchScore)
}

func TestScreenNilRoster(t *testing.T) {
	res, err := Screen(nil, "go")
	require.NoError(t, err)
	assert.Equal(t, StateScored, res.State)
}

func TestScoreRounding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		skills   []string
		keywords []string
		expect   int
	}{
		{name: "two thirds rounds up", skills: []string{"a1", "b1"}, keywords: []string{"a", "b", "c"}, expect: 67},
		{name: "one third rounds down", skills: []string{"a1"}, keywords: []string{"a", "b", "c"}, expect: 33},
		{name: "tie rounds up", skills: []string{"a1"}, keywords: []string{"a", "b", "c", "d", "e", "f", "g", "h"}, expect: 13},
		{name: "no keywords", skills: []string{"a"}, keywords: nil, expect: 0},
		{name: "no skills", skills: nil, keywords: []string{"a"}, expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, Score(tt.skills, tt.keywords))
		})
	}
}

func scores(r *Roster) []int {
	out := make([]int, 0, r.Len())
	for _, c := range r.Items {
		out = append(out, c.MatchScore)
	}
	return out
}
