package game

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/glowtrail/pkg/clock"
	"github.com/decker502/glowtrail/pkg/config"
	"github.com/decker502/glowtrail/pkg/particles"
	"github.com/decker502/glowtrail/pkg/utils"
)

// newTestGame 装配一个不触碰窗口和音频设备的游戏实例
// 输入经 feed 注入；物理 goroutine 不启动，测试直接驱动 tick。
func newTestGame(t *testing.T) (*Game, *clock.PausableClock, *config.Store, func(utils.InputState)) {
	t.Helper()

	clk := clock.New()
	settings, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) failed: %v", err)
	}
	store := config.NewStore(settings.Config())
	system := particles.NewSystem(clk)
	store.Watch(system)

	g := New(clk, store, system, settings, NewAudioManager())
	store.Watch(g)

	var next utils.InputState
	g.readInput = func() utils.InputState { return next }
	feed := func(in utils.InputState) {
		next = in
		if err := g.Update(); err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
	}
	return g, clk, store, feed
}

func idle() utils.InputState {
	return utils.InputState{ModeKey: -1}
}

func TestQuitKeyTerminates(t *testing.T) {
	g, _, _, _ := newTestGame(t)

	in := idle()
	in.Quit = true
	g.readInput = func() utils.InputState { return in }

	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Expected ebiten.Termination on quit key, got %v", err)
	}
}

func TestPauseHoldFreezesClockWhileHeld(t *testing.T) {
	_, clk, _, feed := newTestGame(t)

	in := idle()
	in.PauseHeld = true
	feed(in)
	if !clk.IsPaused() {
		t.Error("Expected clock paused while the pause key is held")
	}

	feed(idle())
	if clk.IsPaused() {
		t.Error("Expected clock running after the pause key is released")
	}
}

func TestPauseToggleLatches(t *testing.T) {
	_, clk, _, feed := newTestGame(t)

	in := idle()
	in.TogglePause = true
	feed(in)
	if !clk.IsPaused() {
		t.Error("Expected clock paused after toggle")
	}

	// 松开切换键后暂停保持
	feed(idle())
	if !clk.IsPaused() {
		t.Error("Expected toggle pause to latch")
	}

	in = idle()
	in.TogglePause = true
	feed(in)
	if clk.IsPaused() {
		t.Error("Expected clock running after second toggle")
	}
}

func TestSetPausedEntryPoint(t *testing.T) {
	g, clk, _, _ := newTestGame(t)

	g.SetPaused(true)
	if !clk.IsPaused() {
		t.Error("Expected SetPaused(true) to freeze the clock")
	}
	g.SetPaused(false)
	if clk.IsPaused() {
		t.Error("Expected SetPaused(false) to resume the clock")
	}
}

func TestModeKeyPublishesDrawMode(t *testing.T) {
	g, _, store, feed := newTestGame(t)

	in := idle()
	in.ModeKey = 1
	feed(in)

	if got := store.Snapshot().DrawMode; got != config.DrawModeRect {
		t.Errorf("Expected published DrawMode=rect, got %v", got)
	}
	if g.cfg.DrawMode != config.DrawModeRect {
		t.Error("Expected the new snapshot adopted within the same tick")
	}
}

func TestSoundKeyPublishesToggle(t *testing.T) {
	_, _, store, feed := newTestGame(t)

	in := idle()
	in.ToggleSound = true
	feed(in)
	if !store.Snapshot().SoundEnabled {
		t.Error("Expected SoundEnabled=true after toggle")
	}

	in = idle()
	in.ToggleSound = true
	feed(in)
	if store.Snapshot().SoundEnabled {
		t.Error("Expected SoundEnabled=false after second toggle")
	}
}

func TestHasVisibleContentTracksTrailAndParticles(t *testing.T) {
	g, _, _, feed := newTestGame(t)

	if g.HasVisibleContent() {
		t.Error("Expected nothing to draw on a fresh game")
	}

	in := idle()
	in.ActivationHeld = true
	in.X, in.Y = 50, 50
	feed(in)

	if !g.HasVisibleContent() {
		t.Error("Expected visible content after sampling a stroke point")
	}
}
