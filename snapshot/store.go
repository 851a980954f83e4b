// Package snapshot persists per-player ship layout history as
// gzip-compressed JSON files, one file per player. History is append-only
// with last-write-wins semantics: saves within the dedup window are
// skipped, and each file is pruned to a configured number of entries.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"github.com/starcrest/shipadvisor/model"
)

// ErrRecentSnapshot is returned by Save when the newest stored entry is
// younger than the dedup window.
var ErrRecentSnapshot = errors.New("snapshot: last entry is too recent")

// Entry is one dated snapshot of a player's ship.
type Entry struct {
	ID            string            `json:"id"`
	Date          time.Time         `json:"date"`
	HighestTrophy int               `json:"highest_trophy"`
	Layout        *model.ShipLayout `json:"layout"`
}

// History is the full stored record for one player.
type History struct {
	PlayerName string  `json:"user_name"`
	PlayerID   int     `json:"user_id"`
	Entries    []Entry `json:"dated_data"`
}

// Latest returns the most recent entry.
func (h *History) Latest() (Entry, bool) {
	best := -1
	for i, e := range h.Entries {
		if best < 0 || e.Date.After(h.Entries[best].Date) {
			best = i
		}
	}
	if best < 0 {
		return Entry{}, false
	}
	return h.Entries[best], true
}

// ClosestTo returns the entry dated nearest to t.
func (h *History) ClosestTo(t time.Time) (Entry, bool) {
	best := -1
	var bestDelta time.Duration
	for i, e := range h.Entries {
		delta := e.Date.Sub(t).Abs()
		if best < 0 || delta < bestDelta {
			best, bestDelta = i, delta
		}
	}
	if best < 0 {
		return Entry{}, false
	}
	return h.Entries[best], true
}

// Store reads and writes player histories under one directory.
type Store struct {
	dir   string
	dedup time.Duration
	keep  int // history entries retained per player; 0 = unlimited

	now func() time.Time // test hook
}

// NewStore creates a store rooted at dir. The directory is created on the
// first save.
func NewStore(dir string, dedup time.Duration, keep int) *Store {
	return &Store{dir: dir, dedup: dedup, keep: keep, now: time.Now}
}

func (s *Store) path(name string, id int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%d.gz", name, id))
}

// Save appends an entry to a player's history. Returns ErrRecentSnapshot
// without writing when the newest stored entry is younger than the dedup
// window. The entry's ID and Date are assigned here.
func (s *Store) Save(name string, id int, entry Entry) error {
	history, err := s.Load(name, id)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if history == nil {
		history = &History{PlayerName: name, PlayerID: id}
	}

	now := s.now()
	if latest, ok := history.Latest(); ok && s.dedup > 0 {
		if now.Sub(latest.Date) < s.dedup {
			return fmt.Errorf("%w: last entry %s", ErrRecentSnapshot, latest.Date.Format(time.RFC3339))
		}
	}

	entry.ID = uuid.NewString()
	entry.Date = now
	history.Entries = append(history.Entries, entry)
	if s.keep > 0 && len(history.Entries) > s.keep {
		history.Entries = history.Entries[len(history.Entries)-s.keep:]
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	if err := s.write(s.path(name, id), history); err != nil {
		return err
	}
	slog.Info("snapshot saved", "player", name, "entries", len(history.Entries))
	return nil
}

// Load reads a player's history. Returns os.ErrNotExist when the player has
// no stored file.
func (s *Store) Load(name string, id int) (*History, error) {
	f, err := os.Open(s.path(name, id))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", s.path(name, id), err)
	}
	defer zr.Close()

	var history History
	if err := json.NewDecoder(zr).Decode(&history); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", s.path(name, id), err)
	}
	return &history, nil
}

func (s *Store) write(path string, history *History) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	if err := json.NewEncoder(zw).Encode(history); err != nil {
		zw.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return nil
}
