package screening

// Candidate is a single roster entry. Only Skills take part in scoring.
type Candidate struct {
	Name       string   `json:"name" mapstructure:"name"`
	Role       string   `json:"role,omitempty" mapstructure:"role"`
	Experience string   `json:"experience,omitempty" mapstructure:"experience"`
	Avatar     string   `json:"avatar,omitempty" mapstructure:"avatar"`
	Skills     []string `json:"skills,omitempty" mapstructure:"skills"`
	MatchScore int      `json:"match_score"`
}

// Roster is the ordered, mutable list of candidates owned by a screening session.
type Roster struct {
	Items []*Candidate
}

func NewRoster(items ...*Candidate) *Roster {
	return &Roster{Items: items}
}

func (r *Roster) Len() int {
	return len(r.Items)
}

func (r *Roster) Names() []string {
	names := make([]string, 0, len(r.Items))
	for _, c := range r.Items {
		names = append(names, c.Name)
	}
	return names
}

func (r *Roster) FindByName(name string) *Candidate {
	for _, c := range r.Items {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Clone returns a roster holding copies of every candidate, so filters can
// drop entries without touching the screened roster.
func (r *Roster) Clone() *Roster {
	items := make([]*Candidate, 0, len(r.Items))
	for _, c := range r.Items {
		cp := *c
		cp.Skills = append([]string(nil), c.Skills...)
		items = append(items, &cp)
	}
	return &Roster{Items: items}
}

// Exclude removes candidates whose name is in names and returns the removed
// names. Relative order of the remaining candidates is kept.
func (r *Roster) Exclude(names []string) []string {
	if len(names) == 0 {
		return nil
	}

	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}

	var excluded []string
	kept := r.Items[:0]
	for _, c := range r.Items {
		if _, ok := drop[c.Name]; ok {
			excluded = append(excluded, c.Name)
			continue
		}
		kept = append(kept, c)
	}
	r.Items = kept

	return excluded
}

// ExcludeFunc removes candidates for which fn reports true.
func (r *Roster) ExcludeFunc(fn func(c *Candidate) bool) []string {
	var names []string
	for _, c := range r.Items {
		if fn(c) {
			names = append(names, c.Name)
		}
	}
	return r.Exclude(names)
}
