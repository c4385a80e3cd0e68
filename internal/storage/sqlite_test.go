package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file and its parent directory were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreKeyValue(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Get("highScores"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store: err = %v, want ErrNotFound", err)
	}

	if err := store.Put("highScores", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := store.Put("highScores", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("Put() overwrite failed: %v", err)
	}

	got, err := store.Get("highScores")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got) != `{"a":2}` {
		t.Errorf("Get() = %s, want the overwritten value", got)
	}

	if err := store.Delete("highScores"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := store.Get("highScores"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete: err = %v, want ErrNotFound", err)
	}
	if err := store.Delete("missing"); err != nil {
		t.Errorf("Delete of a missing key should succeed, got %v", err)
	}
}

func TestStoreKeyValuePersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Put("k", []byte("v")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	got, err := store.Get("k")
	if err != nil || string(got) != "v" {
		t.Errorf("Get after reopen = %q, %v", got, err)
	}
}

func TestStoreRounds(t *testing.T) {
	store := openTestStore(t)

	rounds := []RoundRecord{
		{GameID: "swat", Difficulty: 1, Score: 12, Duration: 30 * time.Second, PlayerName: "Ann"},
		{GameID: "swat", Difficulty: 1, Score: 40, Duration: 30 * time.Second},
		{GameID: "swat_survival", Score: 25, Duration: 95 * time.Second},
	}
	for _, r := range rounds {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	recent, err := store.RecentRounds("swat", 10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 swat rounds, got %d", len(recent))
	}
	// Newest first
	if recent[0].Score != 40 || recent[1].PlayerName != "Ann" {
		t.Errorf("Unexpected order: %+v", recent)
	}
	if recent[1].Duration != 30*time.Second {
		t.Errorf("Duration = %v, want 30s", recent[1].Duration)
	}

	if err := store.ClearRounds("swat"); err != nil {
		t.Fatalf("ClearRounds() failed: %v", err)
	}
	recent, _ = store.RecentRounds("swat", 10)
	if len(recent) != 0 {
		t.Errorf("Expected no swat rounds after clear, got %d", len(recent))
	}
	other, _ := store.RecentRounds("swat_survival", 10)
	if len(other) != 1 {
		t.Error("Clearing swat should not affect swat_survival")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	// No rounds yet
	stats, err := store.GetGameStats("nz")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.RoundsCount != 0 || stats.HighScore != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveRound(RoundRecord{GameID: "nz", Score: 100, Duration: 10 * time.Second})
	store.SaveRound(RoundRecord{GameID: "nz", Score: 300, Duration: 20 * time.Second})
	store.SaveRound(RoundRecord{GameID: "whack", Score: 7, Duration: 45 * time.Second})

	stats, err = store.GetGameStats("nz")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.RoundsCount != 2 {
		t.Errorf("RoundsCount = %d, want 2", stats.RoundsCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, want 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %f, want 200", stats.AvgScore)
	}
	if stats.TotalScore != 400 {
		t.Errorf("TotalScore = %d, want 400", stats.TotalScore)
	}
	if stats.LongestPlay != 20*time.Second {
		t.Errorf("LongestPlay = %v, want 20s", stats.LongestPlay)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["whack"].HighScore != 7 {
		t.Errorf("whack HighScore = %d, want 7", all["whack"].HighScore)
	}
}
