package roster

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/spigell/hr-screener/internal/screening"
)

// candidatesKey is the top-level key holding the candidate list in roster
// files and remote payloads.
const candidatesKey = "candidates"

// LoadFile reads a roster from a YAML, JSON or TOML file. The format is picked
// from the file extension.
func LoadFile(path string) (*screening.Roster, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("roster file path is empty")
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading roster file %q: %w", path, err)
	}

	roster, err := decode(v.Get(candidatesKey))
	if err != nil {
		return nil, fmt.Errorf("roster file %q: %w", path, err)
	}

	return roster, nil
}

func decode(raw any) (*screening.Roster, error) {
	if raw == nil {
		return nil, fmt.Errorf("no %q list found", candidatesKey)
	}

	var candidates []*screening.Candidate
	cfg := &mapstructure.DecoderConfig{
		Result:           &candidates,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding candidates: %w", err)
	}

	for idx, c := range candidates {
		if c == nil || strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("candidate #%d has no name", idx+1)
		}
		// Scores always start from zero, whatever the source says.
		c.MatchScore = 0
	}

	return screening.NewRoster(candidates...), nil
}
