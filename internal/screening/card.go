package screening

import "context"

const visibleSkills = 3

type ScoreTier string

const (
	TierHigh   ScoreTier = "high"
	TierMedium ScoreTier = "medium"
	TierLow    ScoreTier = "low"
)

// Tier maps a score to its badge tier: above 70 is high, above 40 is medium.
func Tier(score int) ScoreTier {
	switch {
	case score > 70:
		return TierHigh
	case score > 40:
		return TierMedium
	default:
		return TierLow
	}
}

// Card is the display form of a candidate.
type Card struct {
	Avatar     string    `json:"avatar,omitempty"`
	Name       string    `json:"name"`
	Role       string    `json:"role,omitempty"`
	Experience string    `json:"experience,omitempty"`
	Skills     []string  `json:"skills,omitempty"`
	Overflow   int       `json:"overflow,omitempty"`
	Score      int       `json:"score"`
	Tier       ScoreTier `json:"tier"`
}

func NewCard(c *Candidate) Card {
	skills := c.Skills
	overflow := 0
	if len(skills) > visibleSkills {
		overflow = len(skills) - visibleSkills
		skills = skills[:visibleSkills]
	}

	return Card{
		Avatar:     c.Avatar,
		Name:       c.Name,
		Role:       c.Role,
		Experience: c.Experience,
		Skills:     append([]string(nil), skills...),
		Overflow:   overflow,
		Score:      c.MatchScore,
		Tier:       Tier(c.MatchScore),
	}
}

// Cards returns display cards in roster order.
func (r *Roster) Cards() []Card {
	cards := make([]Card, 0, len(r.Items))
	for _, c := range r.Items {
		cards = append(cards, NewCard(c))
	}
	return cards
}

// Renderer draws candidate cards on some display surface.
type Renderer interface {
	Render(ctx context.Context, cards []Card) error
}
