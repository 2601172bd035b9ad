package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTierThresholds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score  int
		expect ScoreTier
	}{
		{score: 0, expect: TierLow},
		{score: 40, expect: TierLow},
		{score: 41, expect: TierMedium},
		{score: 70, expect: TierMedium},
		{score: 71, expect: TierHigh},
		{score: 400, expect: TierHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expect, Tier(tt.score), "score %d", tt.score)
	}
}

func TestNewCardOverflow(t *testing.T) {
	c := &Candidate{
		Name:       "Alex Johnson",
		Role:       "Senior Developer",
		Experience: "5 years",
		Avatar:     "A",
		Skills:     []string{"JavaScript", "React", "Node.js", "Python", "Go"},
		MatchScore: 75,
	}

	card := NewCard(c)
	assert.Equal(t, []string{"JavaScript", "React", "Node.js"}, card.Skills)
	assert.Equal(t, 2, card.Overflow)
	assert.Equal(t, TierHigh, card.Tier)
	assert.Equal(t, 75, card.Score)

	card.Skills[0] = "changed"
	assert.Equal(t, "JavaScript", c.Skills[0], "card must not alias candidate skills")
}

func TestNewCardWithoutOverflow(t *testing.T) {
	card := NewCard(&Candidate{Name: "short", Skills: []string{"CSS", "HTML", "Vue.js"}})
	assert.Len(t, card.Skills, 3)
	assert.Zero(t, card.Overflow)
	assert.Equal(t, TierLow, card.Tier)
}

func TestRosterExclude(t *testing.T) {
	roster := NewRoster(
		&Candidate{Name: "a"},
		&Candidate{Name: "b"},
		&Candidate{Name: "c"},
		&Candidate{Name: "d"},
	)

	removed := roster.Exclude([]string{"c", "a", "missing"})
	assert.ElementsMatch(t, []string{"a", "c"}, removed)
	assert.Equal(t, []string{"b", "d"}, roster.Names())
}

func TestRosterClone(t *testing.T) {
	roster := twoCandidates()
	clone := roster.Clone()

	clone.Items[0].MatchScore = 99
	clone.Items[0].Skills[0] = "Rust"
	clone.Exclude([]string{"second"})

	assert.Equal(t, 2, roster.Len())
	assert.Zero(t, roster.Items[0].MatchScore)
	assert.Equal(t, "JavaScript", roster.Items[0].Skills[0])
}

func TestMatcherTracksState(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	m := NewMatcher(twoCandidates(), zap.New(core))

	_, err := m.Screen("  ")
	require.ErrorIs(t, err, ErrEmptyQuery)
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, 1, observed.FilterMessage("screening skipped").Len())

	roster, err := m.Screen("HTML")
	require.NoError(t, err)
	assert.Equal(t, StateScored, m.State())
	assert.Equal(t, []string{"html"}, m.Keywords())
	assert.Equal(t, "second", roster.Items[0].Name)

	// a failed pass after a successful one keeps the scored state
	_, err = m.Screen("")
	require.ErrorIs(t, err, ErrEmptyQuery)
	assert.Equal(t, StateScored, m.State())

	m.Replace(nil)
	assert.Equal(t, StateIdle, m.State())
	assert.Zero(t, m.Roster().Len())
	assert.Empty(t, m.Keywords())
}
