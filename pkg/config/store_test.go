package config

import "testing"

type recordingWatcher struct {
	applied []*Config
}

func (w *recordingWatcher) ApplyConfig(cfg *Config) {
	w.applied = append(w.applied, cfg)
}

func TestStoreSeedsDefaults(t *testing.T) {
	s := NewStore(nil)
	snap := s.Snapshot()
	if snap == nil {
		t.Fatal("Snapshot() returned nil")
	}
	if snap.FadeSeconds != 1.5 {
		t.Errorf("Expected default snapshot, got FadeSeconds=%v", snap.FadeSeconds)
	}
}

func TestPublishInstallsNormalizedCopy(t *testing.T) {
	s := NewStore(nil)

	cfg := Default()
	cfg.GradientLayers = 999
	s.Publish(cfg)

	snap := s.Snapshot()
	if snap.GradientLayers != 25 {
		t.Errorf("Expected published snapshot clamped to 25 layers, got=%d", snap.GradientLayers)
	}

	// Mutating the caller's struct after publishing must not leak into the
	// installed snapshot.
	cfg.FadeSeconds = 9.0
	if snap.FadeSeconds == 9.0 {
		t.Error("Expected snapshot isolated from caller mutation")
	}
}

func TestPublishReplacesSnapshotAtomically(t *testing.T) {
	s := NewStore(nil)
	old := s.Snapshot()

	cfg := Default()
	cfg.FadeSeconds = 3.0
	s.Publish(cfg)

	if s.Snapshot() == old {
		t.Error("Expected a new snapshot pointer after publish")
	}
	if s.Snapshot().FadeSeconds != 3.0 {
		t.Errorf("Expected FadeSeconds=3.0, got=%v", s.Snapshot().FadeSeconds)
	}
	// The old snapshot stays intact for readers still holding it.
	if old.FadeSeconds != 1.5 {
		t.Errorf("Expected old snapshot unchanged, got=%v", old.FadeSeconds)
	}
}

func TestWatchAppliesCurrentImmediately(t *testing.T) {
	s := NewStore(nil)
	w := &recordingWatcher{}
	s.Watch(w)

	if len(w.applied) != 1 {
		t.Fatalf("Expected 1 immediate apply, got=%d", len(w.applied))
	}
	if w.applied[0] != s.Snapshot() {
		t.Error("Expected watcher to receive the current snapshot")
	}
}

func TestPublishFansOutToWatchers(t *testing.T) {
	s := NewStore(nil)
	w1 := &recordingWatcher{}
	w2 := &recordingWatcher{}
	s.Watch(w1)
	s.Watch(w2)

	cfg := Default()
	cfg.StrokeThickness = 24
	s.Publish(cfg)

	for i, w := range []*recordingWatcher{w1, w2} {
		if len(w.applied) != 2 {
			t.Fatalf("watcher %d: expected 2 applies, got=%d", i, len(w.applied))
		}
		if w.applied[1].StrokeThickness != 24 {
			t.Errorf("watcher %d: expected published thickness 24, got=%v", i, w.applied[1].StrokeThickness)
		}
	}
}
