package tui

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcadesim/internal/clock"
	"github.com/vovakirdan/arcadesim/internal/engine"
	"github.com/vovakirdan/arcadesim/internal/metrics"
	"github.com/vovakirdan/arcadesim/internal/registry"
	"github.com/vovakirdan/arcadesim/internal/storage"
)

// frameDriver feeds frames to a game the way tea.Tick would, using the
// handles the game's scheduler hands out in order.
type frameDriver struct {
	m    GameModel
	next clock.Handle
	now  time.Time
}

func newDriver(t *testing.T, mode engine.Mode, opts Options) *frameDriver {
	t.Helper()
	cfg := engine.DefaultConfig(mode)
	cfg.Seed = 42
	return newConfigDriver(t, cfg, opts)
}

func newConfigDriver(t *testing.T, cfg engine.Config, opts Options) *frameDriver {
	t.Helper()
	info, err := registry.Lookup(cfg.Mode.String())
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	m, err := NewGameModel(info, cfg, opts)
	if err != nil {
		t.Fatalf("NewGameModel: %v", err)
	}
	if m.Init() == nil {
		t.Fatal("Init should schedule the first frame")
	}
	return &frameDriver{m: m, next: 1, now: time.Unix(1_700_000_000, 0)}
}

func (d *frameDriver) frame(step time.Duration) {
	d.now = d.now.Add(step)
	next, _ := d.m.Update(FrameMsg{Source: d.m.sched.id, Handle: d.next, Time: d.now})
	d.m = next.(GameModel)
	d.next++
}

func (d *frameDriver) key(msg tea.KeyMsg) tea.Cmd {
	next, cmd := d.m.Update(msg)
	d.m = next.(GameModel)
	return cmd
}

func TestGameModelStartsOnEnter(t *testing.T) {
	d := newDriver(t, engine.ModeGrowth, Options{})

	d.frame(0)
	d.frame(20 * time.Millisecond)
	if got := d.m.State().Tick; got != 0 {
		t.Fatalf("idle game ticked: %d", got)
	}

	d.key(tea.KeyMsg{Type: tea.KeyEnter})
	if got := d.m.State().Status; got != engine.StatusRunning {
		t.Fatalf("status after enter = %v, want running", got)
	}

	for range 5 {
		d.frame(20 * time.Millisecond)
	}
	if got := d.m.State().Tick; got != 5 {
		t.Errorf("Tick = %d, want 5", got)
	}
}

func TestGameModelPause(t *testing.T) {
	d := newDriver(t, engine.ModeStacking, Options{})
	d.frame(0)
	d.key(tea.KeyMsg{Type: tea.KeyEnter})
	d.frame(16 * time.Millisecond)

	d.key(runeKey('p'))
	if got := d.m.State().Status; got != engine.StatusPaused {
		t.Fatalf("status = %v, want paused", got)
	}
	tick := d.m.State().Tick
	d.frame(16 * time.Millisecond)
	if got := d.m.State().Tick; got != tick {
		t.Errorf("paused game ticked from %d to %d", tick, got)
	}

	d.key(runeKey('p'))
	d.frame(16 * time.Millisecond)
	if got := d.m.State().Tick; got != tick+1 {
		t.Errorf("Tick = %d, want %d", got, tick+1)
	}
}

func TestGameModelIgnoresForeignFrames(t *testing.T) {
	d := newDriver(t, engine.ModeGrowth, Options{})
	d.frame(0)
	d.key(tea.KeyMsg{Type: tea.KeyEnter})

	next, _ := d.m.Update(FrameMsg{Source: d.m.sched.id + 1000, Handle: d.next, Time: d.now.Add(time.Second)})
	d.m = next.(GameModel)
	if got := d.m.State().Tick; got != 0 {
		t.Errorf("foreign frame advanced the game to tick %d", got)
	}
}

func TestGameModelBackAndQuit(t *testing.T) {
	t.Run("back needs a paused or ended game", func(t *testing.T) {
		d := newDriver(t, engine.ModeGrowth, Options{AllowBack: true})
		d.key(tea.KeyMsg{Type: tea.KeyEnter})

		d.key(tea.KeyMsg{Type: tea.KeyEsc})
		if d.m.BackToMenu() {
			t.Fatal("back accepted while running")
		}

		d.key(runeKey('p'))
		d.key(tea.KeyMsg{Type: tea.KeyEsc})
		if !d.m.BackToMenu() {
			t.Fatal("back ignored while paused")
		}
		if d.m.clk.Running() {
			t.Error("clock still running after back")
		}
	})

	t.Run("back disabled for a single game", func(t *testing.T) {
		d := newDriver(t, engine.ModeGrowth, Options{})
		d.key(tea.KeyMsg{Type: tea.KeyEnter})
		d.key(runeKey('p'))
		d.key(tea.KeyMsg{Type: tea.KeyEsc})
		if d.m.BackToMenu() {
			t.Error("back accepted without AllowBack")
		}
	})

	t.Run("quit", func(t *testing.T) {
		d := newDriver(t, engine.ModeChase, Options{})
		if cmd := d.key(runeKey('q')); cmd == nil {
			t.Error("quit returned no command")
		}
		if !d.m.IsQuitting() {
			t.Error("IsQuitting = false after q")
		}
		if d.m.View() != "" {
			t.Error("quitting model should render nothing")
		}
	})
}

func TestGameModelSavesReplayOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "arcade.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	d := newDriver(t, engine.ModeGrowth, Options{Store: store, Player: "tester"})
	d.frame(0)
	d.key(tea.KeyMsg{Type: tea.KeyEnter})

	// The snake runs right into the edge unless steered.
	for i := 0; i < 2000 && !d.m.State().Status.Ended(); i++ {
		d.frame(20 * time.Millisecond)
	}
	st := d.m.State()
	if st.Status != engine.StatusLost {
		t.Fatalf("status = %v, want lost", st.Status)
	}
	for range 3 {
		d.frame(20 * time.Millisecond)
	}

	entries, err := store.RecentReplays("", 10)
	if err != nil {
		t.Fatalf("RecentReplays: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("saved %d replays, want 1", len(entries))
	}
	if entries[0].Player != "tester" || entries[0].Score != st.Score || entries[0].Mode != "growth" {
		t.Errorf("entry = %+v", entries[0])
	}
	if d.m.savedID != entries[0].ID {
		t.Errorf("savedID = %d, want %d", d.m.savedID, entries[0].ID)
	}

	// Restart plays a fresh game that is saved again when it ends.
	d.key(runeKey('r'))
	if got := d.m.State().Status; got != engine.StatusRunning {
		t.Fatalf("status after restart = %v, want running", got)
	}
	for i := 0; i < 2000 && !d.m.State().Status.Ended(); i++ {
		d.frame(20 * time.Millisecond)
	}
	entries, err = store.RecentReplays("growth", 10)
	if err != nil {
		t.Fatalf("RecentReplays: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("saved %d replays after restart, want 2", len(entries))
	}
}

func TestNewGameModelRejectsBadConfig(t *testing.T) {
	info, _ := registry.Lookup("growth")
	cfg := engine.DefaultConfig(engine.ModeGrowth)
	cfg.Growth.Width = 4
	cfg.Growth.StartLength = 3
	if _, err := NewGameModel(info, cfg, Options{}); err == nil {
		t.Error("expected an error for a board too small for the snake")
	}
}

func TestGameModelFixedStep(t *testing.T) {
	d := newDriver(t, engine.ModeGrowth, Options{FixedStep: 10 * time.Millisecond})
	d.frame(0)
	d.key(tea.KeyMsg{Type: tea.KeyEnter})

	d.frame(25 * time.Millisecond)
	if got := d.m.State().Tick; got != 2 {
		t.Fatalf("Tick = %d after 25ms, want 2", got)
	}
	d.frame(5 * time.Millisecond)
	if got := d.m.State().Tick; got != 3 {
		t.Errorf("Tick = %d after carried remainder, want 3", got)
	}
}

func TestGameModelFixedStepReportsEveryTick(t *testing.T) {
	cfg := engine.DefaultConfig(engine.ModeGrowth)
	cfg.Seed = 42
	cfg.Lives = 3
	m := metrics.New()
	d := newConfigDriver(t, cfg, Options{FixedStep: 10 * time.Millisecond, Metrics: m})
	d.frame(0)
	d.key(tea.KeyMsg{Type: tea.KeyEnter})

	// Four ticks per frame; the snake hits the wall on whichever tick its
	// move lands, usually not the last one.
	var lives []int
	deaths := 0
	for i := 0; i < 2000 && !d.m.State().Status.Ended(); i++ {
		d.frame(40 * time.Millisecond)
		st := d.m.State()
		if o, ok := st.Outcome(engine.LifeLost); ok {
			lives = append(lives, o.Value)
		}
		if slices.Contains(st.Cues, engine.CueDeath) {
			deaths++
		}
	}
	if got := d.m.State().Status; got != engine.StatusLost {
		t.Fatalf("status = %v, want lost", got)
	}
	if !slices.Equal(lives, []int{2, 1, 0}) {
		t.Errorf("LifeLost values shown = %v, want [2 1 0]", lives)
	}
	if deaths != 3 {
		t.Errorf("death cue shown %d times, want 3", deaths)
	}
	if !d.m.State().Has(engine.GameOver) {
		t.Error("final frame should report game over")
	}

	rec := httptest.NewRecorder()
	metrics.NewRouter(m, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	want := `arcade_outcomes_total{kind="life-lost",mode="growth"} 3`
	if !strings.Contains(rec.Body.String(), want) {
		t.Errorf("metrics missing %s", want)
	}
}

func TestGameModelRestartClearsSavedReplay(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "arcade.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	d := newDriver(t, engine.ModeGrowth, Options{Store: store})
	d.frame(0)
	d.key(tea.KeyMsg{Type: tea.KeyEnter})
	for i := 0; i < 2000 && !d.m.State().Status.Ended(); i++ {
		d.frame(20 * time.Millisecond)
	}
	if d.m.savedID == 0 || !strings.Contains(d.m.View(), "saved as replay") {
		t.Fatalf("first game not reported as saved (savedID %d)", d.m.savedID)
	}

	d.key(runeKey('r'))
	if d.m.savedID != 0 {
		t.Errorf("savedID = %d after restart, want 0", d.m.savedID)
	}

	// The second game cannot be saved and must not claim the first one's id.
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	for i := 0; i < 2000 && !d.m.State().Status.Ended(); i++ {
		d.frame(20 * time.Millisecond)
	}
	if !d.m.State().Status.Ended() {
		t.Fatal("second game did not end")
	}
	if strings.Contains(d.m.View(), "saved as replay") {
		t.Error("footer reports a replay for a game that was not saved")
	}
}
