package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/arcadesim/internal/core"
	"github.com/vovakirdan/arcadesim/internal/engine"
	"github.com/vovakirdan/arcadesim/internal/replay"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// record plays a short scripted game and returns its log and final state.
func record(t *testing.T, mode engine.Mode, seed int64) (replay.Log, engine.State) {
	t.Helper()
	cfg := engine.DefaultConfig(mode)
	cfg.Seed = seed
	m, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("engine.New() failed: %v", err)
	}
	r := replay.NewRecorder(m)
	r.Start()
	for i := 0; i < 300; i++ {
		if i%40 == 0 {
			r.HandleInput(core.DirectionInput(core.DirectionPriority[(i/40)%4]))
		}
		if i%55 == 0 {
			r.HandleInput(core.ActionInput(core.ActionRotate))
		}
		r.Advance(16 * time.Millisecond)
	}
	return r.Log(), r.State()
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestSaveAndLoadReplay(t *testing.T) {
	store := openStore(t)
	log, final := record(t, engine.ModeChase, 11)

	id, err := store.SaveReplay("alice", log, final)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	entry, got, err := store.Replay(id)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if entry == nil || got == nil {
		t.Fatal("Replay() returned nothing for a saved ID")
	}
	if entry.Mode != "chase" || entry.Player != "alice" || entry.Seed != 11 {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Score != final.Score || entry.Ticks != final.Tick || entry.Steps != len(log.Steps) {
		t.Errorf("entry = %+v, final score %d tick %d", entry, final.Score, final.Tick)
	}
	if !reflect.DeepEqual(got.Steps, log.Steps) {
		t.Error("loaded steps differ from the saved ones")
	}

	m, err := replay.Play(*got)
	if err != nil {
		t.Fatalf("Play() failed: %v", err)
	}
	if s := m.State(); s.Score != final.Score || s.Tick != final.Tick || s.Status != final.Status {
		t.Errorf("replayed score %d tick %d %v, expected %d %d %v",
			s.Score, s.Tick, s.Status, final.Score, final.Tick, final.Status)
	}
}

func TestReplayMissing(t *testing.T) {
	store := openStore(t)
	entry, log, err := store.Replay(404)
	if err != nil || entry != nil || log != nil {
		t.Errorf("Replay(404) = %v, %v, %v", entry, log, err)
	}
}

func TestRecentAndTopReplays(t *testing.T) {
	store := openStore(t)

	log, final := record(t, engine.ModeGrowth, 1)
	for _, score := range []int{50, 200, 100} {
		final.Score = score
		if _, err := store.SaveReplay("", log, final); err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
	}
	slog, sfinal := record(t, engine.ModeStacking, 2)
	sfinal.Score = 500
	if _, err := store.SaveReplay("", slog, sfinal); err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	top, err := store.TopReplays("growth", 2)
	if err != nil {
		t.Fatalf("TopReplays() failed: %v", err)
	}
	if len(top) != 2 || top[0].Score != 200 || top[1].Score != 100 {
		t.Errorf("TopReplays() = %+v", top)
	}

	recent, err := store.RecentReplays("", 10)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(recent) != 4 || recent[0].Mode != "stacking" {
		t.Errorf("RecentReplays() = %+v", recent)
	}

	growth, err := store.RecentReplays("growth", 10)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(growth) != 3 || growth[0].Score != 100 {
		t.Errorf("RecentReplays(growth) = %+v", growth)
	}
}

func TestHighScoreAndStats(t *testing.T) {
	store := openStore(t)

	high, err := store.HighScore("chase")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("expected high score of 0 for an empty mode, got %d", high)
	}

	log, final := record(t, engine.ModeChase, 5)
	for _, score := range []int{100, 300} {
		final.Score = score
		if _, err := store.SaveReplay("", log, final); err != nil {
			t.Fatal(err)
		}
	}

	high, err = store.HighScore("chase")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("expected high score of 300, got %d", high)
	}

	stats, err := store.AllModeStats()
	if err != nil {
		t.Fatalf("AllModeStats() failed: %v", err)
	}
	st := stats["chase"]
	if st == nil || st.Games != 2 || st.HighScore != 300 || st.AvgScore != 200 {
		t.Errorf("chase stats = %+v", st)
	}
}

func TestDeleteReplay(t *testing.T) {
	store := openStore(t)
	log, final := record(t, engine.ModeStacking, 9)
	id, err := store.SaveReplay("", log, final)
	if err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteReplay(id); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}
	entry, _, err := store.Replay(id)
	if err != nil || entry != nil {
		t.Errorf("replay still present after delete: %v, %v", entry, err)
	}
}
