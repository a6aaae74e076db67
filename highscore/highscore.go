// Package highscore keeps the in-memory table of best scores consulted at game over.
package highscore

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Size is the number of entries the table keeps.
const Size = 10

var (
	ErrEmptyName    = errors.New("highscore: empty name")
	ErrNotQualified = errors.New("highscore: score does not qualify")
)

type Entry struct {
	Name  string
	Score int
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %d", e.Name, e.Score)
}

// Table is safe for use from the UI goroutine while a session runs elsewhere.
type Table struct {
	mu      sync.Mutex
	entries []Entry
}

func New(entries ...Entry) *Table {
	t := &Table{}
	for _, e := range entries {
		t.insert(e)
	}
	return t
}

// QualifyingThreshold is the score a new entry has to beat. It is 0 while the table has free
// slots, otherwise the lowest score on it.
func (t *Table) QualifyingThreshold() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.entries) < Size {
		return 0
	}
	return t.entries[len(t.entries)-1].Score
}

// Submit records score under name if it beats the qualifying threshold.
func (t *Table) Submit(name string, score int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.entries) >= Size && score <= t.entries[len(t.entries)-1].Score {
		return fmt.Errorf("submitting %q with %d: %w", name, score, ErrNotQualified)
	}
	t.insert(Entry{Name: name, Score: score})
	return nil
}

// insert keeps entries sorted by descending score; ties keep submission order.
func (t *Table) insert(e Entry) {
	i, _ := slices.BinarySearchFunc(t.entries, e.Score, func(have Entry, score int) int {
		if have.Score >= score {
			return -1
		}
		return 1
	})
	t.entries = slices.Insert(t.entries, i, e)
	if len(t.entries) > Size {
		t.entries = t.entries[:Size]
	}
}

// Entries returns the table, best score first.
func (t *Table) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.entries)
}

func (t *Table) String() string {
	var sb strings.Builder
	for i, e := range t.Entries() {
		fmt.Fprintf(&sb, "%2d. %s\n", i+1, e)
	}
	return sb.String()
}
