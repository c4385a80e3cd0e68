// Package scores keeps the top-10 high-score lists for every game mode and
// difficulty. The whole table is one JSON blob stored under a single key;
// it is read once at startup and rewritten after every mutation.
package scores

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/swat-arcade/internal/storage"
)

const (
	// Key is the storage key holding the table.
	Key = "highScores"
	// MaxEntries is the length of every list.
	MaxEntries = 10
	// MaxNameLen bounds player names in runes.
	MaxNameLen = 20
	// DefaultName is used when the player leaves the name empty.
	DefaultName = "Player"
)

// Record is one high-score entry.
type Record struct {
	Score        int       `json:"score"`
	PlayerName   string    `json:"playerName"`
	Date         time.Time `json:"date"`
	GameMode     string    `json:"gameMode"`
	Difficulty   int       `json:"difficulty"`
	SurvivalTime float64   `json:"survivalTime,omitempty"` // seconds, survival modes only
}

// Blob is the key-value store the table persists into.
type Blob interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// Table is the in-memory high-score table. It stays authoritative for the
// session when the store fails; persistence errors are logged, not returned.
// Safe for concurrent use by several sessions.
type Table struct {
	mu sync.RWMutex
	// saveMu orders writes to blob so an older snapshot never lands
	// after a newer one. Readers only take mu.
	saveMu sync.Mutex
	blob   Blob
	logger *log.Logger
	lists  map[string][]Record
	now    func() time.Time
}

// NewTable creates an empty table backed by blob. blob may be nil, in which
// case nothing is persisted.
func NewTable(blob Blob, logger *log.Logger) *Table {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Table{
		blob:   blob,
		logger: logger,
		lists:  make(map[string][]Record),
		now:    time.Now,
	}
}

// ListKey returns the map key of a (mode, difficulty) list.
func ListKey(mode string, difficulty int) string {
	return mode + "/" + strconv.Itoa(difficulty)
}

// SplitKey parses a list key back into mode and difficulty.
func SplitKey(key string) (string, int, bool) {
	i := strings.LastIndexByte(key, '/')
	if i <= 0 {
		return "", 0, false
	}
	d, err := strconv.Atoi(key[i+1:])
	if err != nil {
		return "", 0, false
	}
	return key[:i], d, true
}

// Load replaces the in-memory table with the stored one. A missing or
// malformed value leaves an empty table.
func (t *Table) Load() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lists = make(map[string][]Record)
	if t.blob == nil {
		return
	}

	data, err := t.blob.Get(Key)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		t.logger.Warn("cannot read high scores, starting empty", "err", err)
		return
	}

	var lists map[string][]Record
	if err := json.Unmarshal(data, &lists); err != nil {
		t.logger.Warn("malformed high scores, starting empty", "err", err)
		return
	}
	for k, l := range lists {
		if _, _, ok := SplitKey(k); !ok {
			continue
		}
		t.lists[k] = normalize(l)
	}
	t.logger.Debug("high scores loaded", "lists", len(t.lists))
}

// Qualifies reports whether score would enter the top list of the key.
// Scores of zero or less never qualify.
func (t *Table) Qualifies(mode string, difficulty, score int) bool {
	if score <= 0 {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	l := t.lists[ListKey(mode, difficulty)]
	return len(l) < MaxEntries || score > l[len(l)-1].Score
}

// Record inserts a result and returns its 1-based rank, or 0 when it did
// not make the list. The table is persisted on every change.
func (t *Table) Record(r Record) int {
	r.PlayerName = CleanName(r.PlayerName)
	if r.Date.IsZero() {
		r.Date = t.now()
	}

	t.saveMu.Lock()
	defer t.saveMu.Unlock()

	t.mu.Lock()
	key := ListKey(r.GameMode, r.Difficulty)
	l := t.lists[key]
	pos := sort.Search(len(l), func(i int) bool { return l[i].Score < r.Score })
	if pos >= MaxEntries {
		t.mu.Unlock()
		return 0
	}
	l = append(l, Record{})
	copy(l[pos+1:], l[pos:])
	l[pos] = r
	if len(l) > MaxEntries {
		l = l[:MaxEntries]
	}
	t.lists[key] = l
	data, err := t.encode()
	t.mu.Unlock()

	t.persist(data, err)
	return pos + 1
}

// Reset clears one list, or every list when mode is empty.
func (t *Table) Reset(mode string, difficulty int) {
	t.saveMu.Lock()
	defer t.saveMu.Unlock()

	t.mu.Lock()
	if mode == "" {
		t.lists = make(map[string][]Record)
	} else {
		delete(t.lists, ListKey(mode, difficulty))
	}
	data, err := t.encode()
	t.mu.Unlock()

	t.persist(data, err)
}

// Top returns a copy of the list for the key, best first.
func (t *Table) Top(mode string, difficulty int) []Record {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Record(nil), t.lists[ListKey(mode, difficulty)]...)
}

// Best returns the best score of the key, or 0.
func (t *Table) Best(mode string, difficulty int) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if l := t.lists[ListKey(mode, difficulty)]; len(l) > 0 {
		return l[0].Score
	}
	return 0
}

// BestAny returns the best score of a mode across all difficulties.
func (t *Table) BestAny(mode string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	best := 0
	for k, l := range t.lists {
		if m, _, ok := SplitKey(k); ok && m == mode && len(l) > 0 {
			best = max(best, l[0].Score)
		}
	}
	return best
}

// Difficulties returns the difficulties with a non-empty list for mode,
// in ascending order.
func (t *Table) Difficulties(mode string) []int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []int
	for k, l := range t.lists {
		if m, d, ok := SplitKey(k); ok && m == mode && len(l) > 0 {
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out
}

// encode must be called with mu held.
func (t *Table) encode() ([]byte, error) {
	data, err := json.Marshal(t.lists)
	if err != nil {
		return nil, fmt.Errorf("scores: cannot encode table: %w", err)
	}
	return data, nil
}

// persist must be called with saveMu held.
func (t *Table) persist(data []byte, err error) {
	if t.blob == nil {
		return
	}
	if err == nil {
		err = t.blob.Put(Key, data)
	}
	if err != nil {
		t.logger.Error("cannot save high scores, keeping them in memory", "err", err)
	}
}

// CleanName trims a player name, bounds its length and falls back to
// DefaultName.
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > MaxNameLen {
		name = string([]rune(name)[:MaxNameLen])
		name = strings.TrimSpace(name)
	}
	if name == "" {
		return DefaultName
	}
	return name
}

// normalize sorts a loaded list and caps it.
func normalize(l []Record) []Record {
	sort.SliceStable(l, func(i, j int) bool { return l[i].Score > l[j].Score })
	if len(l) > MaxEntries {
		l = l[:MaxEntries]
	}
	return l
}
