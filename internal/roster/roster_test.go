package roster

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/hr-screener/internal/screening"
)

const yamlRoster = `candidates:
  - name: Ada
    role: Engineer
    experience: 7 years
    skills: [Go, PostgreSQL, Go]
  - name: Linus
    skills:
      - C
      - Git
`

const jsonRoster = `{"candidates": [
  {"name": "Grace", "role": "Admiral", "skills": ["COBOL"], "match_score": 90}
]}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSeed(t *testing.T) {
	r := Seed()
	require.Equal(t, 5, r.Len())
	assert.Equal(t, "Alex Johnson", r.Items[0].Name)
	assert.Equal(t, "James Chen", r.Items[4].Name)
	for _, c := range r.Items {
		assert.Zero(t, c.MatchScore)
		assert.NotEmpty(t, c.Skills)
	}

	// every call builds a new roster
	r.Items[0].MatchScore = 10
	assert.Zero(t, Seed().Items[0].MatchScore)
}

func TestSeedScreening(t *testing.T) {
	r := Seed()

	_, err := screening.Screen(r, "docker, python")
	require.NoError(t, err)

	assert.Equal(t, "Sarah Williams", r.Items[0].Name)
	assert.Equal(t, 100, r.Items[0].MatchScore)
	// Alex Johnson and James Chen tie at 50 and keep their seed order.
	assert.Equal(t, []string{"Sarah Williams", "Alex Johnson", "James Chen", "Maria Garcia", "David Kim"}, r.Names())
}

func TestLoadFileYAML(t *testing.T) {
	r, err := LoadFile(writeFile(t, "roster.yaml", yamlRoster))
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())

	assert.Equal(t, "Ada", r.Items[0].Name)
	assert.Equal(t, "7 years", r.Items[0].Experience)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Go"}, r.Items[0].Skills)
	assert.Equal(t, []string{"C", "Git"}, r.Items[1].Skills)
}

func TestLoadFileJSONResetsScores(t *testing.T) {
	r, err := LoadFile(writeFile(t, "roster.json", jsonRoster))
	require.NoError(t, err)
	require.Equal(t, 1, r.Len())
	assert.Zero(t, r.Items[0].MatchScore)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile("")
	require.Error(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = LoadFile(writeFile(t, "empty.yaml", "other: 1\n"))
	require.ErrorContains(t, err, "no \"candidates\" list")

	_, err = LoadFile(writeFile(t, "noname.yaml", "candidates:\n  - role: Ghost\n"))
	require.ErrorContains(t, err, "candidate #1 has no name")
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		defer gz.Close()
		_, _ = gz.Write([]byte(jsonRoster))
	}))
	defer srv.Close()

	r, err := Load(context.Background(), NewClient(nil), Source{URL: srv.URL, UserAgent: "test-agent", File: "ignored.yaml"})
	require.NoError(t, err)
	require.Equal(t, 1, r.Len())
	assert.Equal(t, "Grace", r.Items[0].Name)
	assert.Equal(t, []string{"COBOL"}, r.Items[0].Skills)
	assert.Zero(t, r.Items[0].MatchScore)
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusTeapot)
	}))
	defer srv.Close()

	_, err := NewClient(nil).Fetch(context.Background(), srv.URL)
	require.ErrorContains(t, err, "bad status")
}

func TestLoadPicksSource(t *testing.T) {
	r, err := Load(context.Background(), nil, Source{})
	require.NoError(t, err)
	assert.Equal(t, 5, r.Len())

	r, err = Load(context.Background(), nil, Source{File: writeFile(t, "r.yaml", yamlRoster)})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())

	assert.Equal(t, "seed", Source{}.String())
	assert.Equal(t, "a.yaml", Source{File: "a.yaml"}.String())
	assert.Equal(t, "http://x", Source{File: "a.yaml", URL: "http://x"}.String())
}

func TestDumpToTmpFileRoundTrip(t *testing.T) {
	r := Seed()
	_, err := screening.Screen(r, "kubernetes")
	require.NoError(t, err)

	name, err := DumpToTmpFile(r)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(name) })

	loaded, err := LoadFile(name)
	require.NoError(t, err)
	assert.Equal(t, r.Names(), loaded.Names())
	assert.Equal(t, "James Chen", loaded.Items[0].Name)
}

func TestReportByTier(t *testing.T) {
	r := screening.NewRoster(
		&screening.Candidate{Name: "hi", MatchScore: 80, Skills: []string{"Go", "SQL"}},
		&screening.Candidate{Name: "mid", MatchScore: 50},
		&screening.Candidate{Name: "low", MatchScore: 40},
	)

	report := ReportByTier(r)
	require.Len(t, report[screening.TierHigh], 1)
	assert.Equal(t, "Go, SQL", report[screening.TierHigh][0]["skills"])
	assert.Equal(t, "80%", report[screening.TierHigh][0]["score"])
	assert.Equal(t, "mid", report[screening.TierMedium][0]["name"])
	assert.Equal(t, "low", report[screening.TierLow][0]["name"])
}
