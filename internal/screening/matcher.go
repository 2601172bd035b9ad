package screening

import (
	"errors"

	"go.uber.org/zap"
)

// Matcher owns a roster for one screening session and remembers the outcome
// of the last pass. It must not be used from several goroutines at once.
type Matcher struct {
	roster   *Roster
	state    State
	keywords []string
	logger   *zap.Logger
}

func NewMatcher(roster *Roster, logger *zap.Logger) *Matcher {
	if roster == nil {
		roster = &Roster{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Matcher{
		roster: roster,
		state:  StateIdle,
		logger: logger,
	}
}

// Screen runs a scoring pass over the owned roster.
func (m *Matcher) Screen(rawKeywords string) (*Roster, error) {
	res, err := Screen(m.roster, rawKeywords)
	if err != nil {
		if errors.Is(err, ErrEmptyQuery) {
			m.logger.Info("screening skipped", zap.String("reason", "empty query"), zap.String("query", rawKeywords))
		}
		return m.roster, err
	}

	m.state = res.State
	m.keywords = res.Keywords

	m.logger.Debug("candidates screened",
		zap.Strings("keywords", res.Keywords),
		zap.Int("candidates", m.roster.Len()),
	)

	return m.roster, nil
}

// Replace swaps the owned roster, e.g. after the roster file changed. The
// session falls back to idle until the next pass.
func (m *Matcher) Replace(roster *Roster) {
	if roster == nil {
		roster = &Roster{}
	}
	m.roster = roster
	m.state = StateIdle
	m.keywords = nil
}

func (m *Matcher) Roster() *Roster { return m.roster }

func (m *Matcher) State() State { return m.state }

// Keywords returns the keywords of the last successful pass.
func (m *Matcher) Keywords() []string {
	return append([]string(nil), m.keywords...)
}
