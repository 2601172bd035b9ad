// Package history keeps screening runs and shortlisted candidates in an
// embedded bbolt database.
package history

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketRuns        = []byte("runs")
	bucketShortlisted = []byte("shortlisted")
)

// Run is one recorded screening pass.
type Run struct {
	ID          uint64         `json:"id"`
	At          time.Time      `json:"at"`
	Query       string         `json:"query"`
	Keywords    []string       `json:"keywords"`
	Source      string         `json:"source,omitempty"`
	Scores      map[string]int `json:"scores"`
	Ranking     []string       `json:"ranking"`
	Shortlisted []string       `json:"shortlisted,omitempty"`
}

// Entry records when a candidate was shortlisted.
type Entry struct {
	Name  string    `json:"name"`
	At    time.Time `json:"at"`
	Query string    `json:"query,omitempty"`
}

type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the history database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketRuns, bucketShortlisted} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun appends run and returns it with ID set. A zero At is stamped with
// the current time.
func (s *Store) SaveRun(run Run) (Run, error) {
	if run.At.IsZero() {
		run.At = time.Now().UTC()
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		run.ID = id

		data, err := json.Marshal(run)
		if err != nil {
			return fmt.Errorf("marshal run: %w", err)
		}
		return b.Put(itob(id), data)
	})
	if err != nil {
		return Run{}, err
	}

	return run, nil
}

// Runs returns up to limit runs, newest first. limit <= 0 returns all.
func (s *Store) Runs(limit int) ([]Run, error) {
	var runs []Run

	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketRuns).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(runs) >= limit {
				break
			}
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				return fmt.Errorf("unmarshal run %d: %w", binary.BigEndian.Uint64(k), err)
			}
			runs = append(runs, run)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return runs, nil
}

// MarkShortlisted records names as shortlisted by query. Names that are
// already recorded keep their first entry.
func (s *Store) MarkShortlisted(query string, names ...string) error {
	now := time.Now().UTC()

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketShortlisted)
		for _, name := range names {
			if b.Get([]byte(name)) != nil {
				continue
			}
			data, err := json.Marshal(Entry{Name: name, At: now, Query: query})
			if err != nil {
				return fmt.Errorf("marshal entry: %w", err)
			}
			if err := b.Put([]byte(name), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Shortlisted returns every shortlisted candidate, ordered by name.
func (s *Store) Shortlisted() ([]Entry, error) {
	var entries []Entry

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketShortlisted).ForEach(func(_, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("unmarshal entry: %w", err)
			}
			entries = append(entries, e)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// ShortlistedNames is Shortlisted reduced to names.
func (s *Store) ShortlistedNames() ([]string, error) {
	entries, err := s.Shortlisted()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names, nil
}

// Forget removes names from the shortlist. Unknown names are ignored.
func (s *Store) Forget(names ...string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketShortlisted)
		for _, name := range names {
			if err := b.Delete([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
