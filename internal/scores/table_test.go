package scores

import (
	"encoding/json"
	"errors"
	"math/rand"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/swat-arcade/internal/storage"
)

// memBlob is an in-memory Blob that can be told to fail.
type memBlob struct {
	data     map[string][]byte
	failGet  bool
	failPut  bool
	putCalls int
}

func newMemBlob() *memBlob {
	return &memBlob{data: make(map[string][]byte)}
}

func (m *memBlob) Get(key string) ([]byte, error) {
	if m.failGet {
		return nil, errors.New("disk on fire")
	}
	v, ok := m.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return v, nil
}

func (m *memBlob) Put(key string, value []byte) error {
	m.putCalls++
	if m.failPut {
		return errors.New("read-only")
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func TestTableKeepsTrueTopTen(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	table := NewTable(newMemBlob(), nil)

	var all []int
	for n := 1; n <= 200; n++ {
		s := rng.Intn(500)
		all = append(all, s)
		table.Record(Record{Score: s, GameMode: "swat", Difficulty: 1})

		got := table.Top("swat", 1)
		if len(got) > MaxEntries {
			t.Fatalf("after %d submissions list has %d entries", n, len(got))
		}
		for i := 1; i < len(got); i++ {
			if got[i].Score > got[i-1].Score {
				t.Fatalf("after %d submissions list not descending: %v", n, got)
			}
		}

		want := append([]int(nil), all...)
		sort.Sort(sort.Reverse(sort.IntSlice(want)))
		if len(want) > MaxEntries {
			want = want[:MaxEntries]
		}
		if len(got) != len(want) {
			t.Fatalf("after %d submissions: %d entries, want %d", n, len(got), len(want))
		}
		for i := range want {
			if got[i].Score != want[i] {
				t.Fatalf("after %d submissions: entry %d = %d, want %d", n, i, got[i].Score, want[i])
			}
		}
	}
}

func TestTableKeysAreIndependent(t *testing.T) {
	table := NewTable(nil, nil)
	table.Record(Record{Score: 10, GameMode: "swat", Difficulty: 0})
	table.Record(Record{Score: 20, GameMode: "swat", Difficulty: 2})
	table.Record(Record{Score: 30, GameMode: "nz", Difficulty: 0})

	if got := table.Best("swat", 0); got != 10 {
		t.Errorf("Best(swat, 0) = %d, want 10", got)
	}
	if got := table.BestAny("swat"); got != 20 {
		t.Errorf("BestAny(swat) = %d, want 20", got)
	}
	if got := table.Difficulties("swat"); len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("Difficulties(swat) = %v, want [0 2]", got)
	}
}

func TestTableRecordRank(t *testing.T) {
	table := NewTable(nil, nil)
	for i := 1; i <= MaxEntries; i++ {
		table.Record(Record{Score: i * 10, GameMode: "whack"})
	}

	tests := []struct {
		name  string
		score int
		want  int
	}{
		{"new best", 1000, 1},
		{"tie goes below existing", 100, 3},
		{"too low", 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Record(Record{Score: tt.score, GameMode: "whack"}); got != tt.want {
				t.Errorf("Record(%d) rank = %d, want %d", tt.score, got, tt.want)
			}
		})
	}
}

func TestTableQualifies(t *testing.T) {
	table := NewTable(nil, nil)
	if table.Qualifies("swat", 1, 0) {
		t.Error("zero score should never qualify")
	}
	if !table.Qualifies("swat", 1, 1) {
		t.Error("any positive score qualifies for an empty list")
	}
	for i := 0; i < MaxEntries; i++ {
		table.Record(Record{Score: 50, GameMode: "swat", Difficulty: 1})
	}
	if table.Qualifies("swat", 1, 50) {
		t.Error("a tie with the last entry of a full list should not qualify")
	}
	if !table.Qualifies("swat", 1, 51) {
		t.Error("beating the last entry should qualify")
	}
}

func TestTableNames(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", DefaultName},
		{"   ", DefaultName},
		{"  Ann ", "Ann"},
		{"abcdefghijklmnopqrstuvwxyz", "abcdefghijklmnopqrst"},
		{"мухобойкамухобойкамухобойка", "мухобойкамухобойкаму"},
	}
	for _, tt := range tests {
		if got := CleanName(tt.in); got != tt.want {
			t.Errorf("CleanName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTablePersistence(t *testing.T) {
	blob := newMemBlob()
	table := NewTable(blob, nil)
	date := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	table.Record(Record{Score: 42, PlayerName: "Bo", GameMode: "swat_survival", SurvivalTime: 61.5, Date: date})

	reloaded := NewTable(blob, nil)
	reloaded.Load()
	got := reloaded.Top("swat_survival", 0)
	if len(got) != 1 {
		t.Fatalf("reloaded %d records, want 1", len(got))
	}
	if got[0].PlayerName != "Bo" || got[0].SurvivalTime != 61.5 || !got[0].Date.Equal(date) {
		t.Errorf("reloaded record = %+v", got[0])
	}
}

func TestTableLoadFailures(t *testing.T) {
	tests := []struct {
		name string
		blob *memBlob
	}{
		{"missing", newMemBlob()},
		{"malformed", &memBlob{data: map[string][]byte{Key: []byte("{not json")}}},
		{"wrong shape", &memBlob{data: map[string][]byte{Key: []byte(`[1,2,3]`)}}},
		{"read error", &memBlob{data: map[string][]byte{}, failGet: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable(tt.blob, nil)
			table.Load()
			if got := table.Top("swat", 1); len(got) != 0 {
				t.Errorf("expected empty table, got %v", got)
			}
			// Still playable afterwards.
			if rank := table.Record(Record{Score: 3, GameMode: "swat", Difficulty: 1}); rank != 1 {
				t.Errorf("Record rank = %d, want 1", rank)
			}
		})
	}
}

func TestTableLoadSortsAndCaps(t *testing.T) {
	raw := `{"swat/1":[` +
		`{"score":1},{"score":9},{"score":3},{"score":7},{"score":2},{"score":8},` +
		`{"score":4},{"score":6},{"score":5},{"score":10},{"score":11},{"score":0}],` +
		`"bogus":[{"score":99}]}`
	table := NewTable(&memBlob{data: map[string][]byte{Key: []byte(raw)}}, nil)
	table.Load()

	got := table.Top("swat", 1)
	if len(got) != MaxEntries {
		t.Fatalf("loaded %d entries, want %d", len(got), MaxEntries)
	}
	if got[0].Score != 11 || got[MaxEntries-1].Score != 2 {
		t.Errorf("loaded list not sorted and capped: %v", got)
	}
}

func TestTableWriteFailureKeepsMemory(t *testing.T) {
	blob := newMemBlob()
	blob.failPut = true
	table := NewTable(blob, nil)

	table.Record(Record{Score: 5, GameMode: "nz"})
	table.Record(Record{Score: 8, GameMode: "nz"})

	if blob.putCalls != 2 {
		t.Errorf("expected a write per mutation, got %d", blob.putCalls)
	}
	if got := table.Best("nz", 0); got != 8 {
		t.Errorf("in-memory table lost data: best = %d", got)
	}
}

func TestTableReset(t *testing.T) {
	table := NewTable(newMemBlob(), nil)
	table.Record(Record{Score: 5, GameMode: "nz", Difficulty: 0})
	table.Record(Record{Score: 6, GameMode: "nz", Difficulty: 1})

	table.Reset("nz", 0)
	if len(table.Top("nz", 0)) != 0 || len(table.Top("nz", 1)) != 1 {
		t.Error("Reset(nz, 0) should clear only that list")
	}
	table.Reset("", 0)
	if len(table.Top("nz", 1)) != 0 {
		t.Error("Reset with empty mode should clear everything")
	}
}

// stallBlob holds the first Put until release is closed.
type stallBlob struct {
	mu      sync.Mutex
	data    []byte
	puts    int
	entered chan struct{}
	release chan struct{}
}

func (b *stallBlob) Get(string) ([]byte, error) {
	return nil, storage.ErrNotFound
}

func (b *stallBlob) Put(_ string, value []byte) error {
	b.mu.Lock()
	b.puts++
	first := b.puts == 1
	b.mu.Unlock()

	if first {
		close(b.entered)
		<-b.release
	}

	b.mu.Lock()
	b.data = append([]byte(nil), value...)
	b.mu.Unlock()
	return nil
}

func TestTableConcurrentSavesKeepLatest(t *testing.T) {
	blob := &stallBlob{entered: make(chan struct{}), release: make(chan struct{})}
	table := NewTable(blob, nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		table.Record(Record{Score: 10, PlayerName: "Ann", GameMode: "swat"})
	}()
	<-blob.entered

	go func() {
		defer wg.Done()
		table.Record(Record{Score: 20, PlayerName: "Ben", GameMode: "swat"})
	}()
	// Give the second session time to reach the store if it could.
	time.Sleep(50 * time.Millisecond)
	close(blob.release)
	wg.Wait()

	if got := len(table.Top("swat", 0)); got != 2 {
		t.Fatalf("in memory: %d records, want 2", got)
	}

	blob.mu.Lock()
	defer blob.mu.Unlock()
	var saved map[string][]Record
	if err := json.Unmarshal(blob.data, &saved); err != nil {
		t.Fatalf("stored table is not JSON: %v", err)
	}
	if got := len(saved[ListKey("swat", 0)]); got != 2 {
		t.Errorf("stored table has %d records, want 2: %s", got, blob.data)
	}
}

func TestTableWithSQLiteStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	table := NewTable(store, nil)
	table.Load()
	table.Record(Record{Score: 17, PlayerName: "Cy", GameMode: "whack"})

	again := NewTable(store, nil)
	again.Load()
	if got := again.Best("whack", 0); got != 17 {
		t.Errorf("Best after reload = %d, want 17", got)
	}
}
