package game

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/glowtrail/pkg/config"
)

// createTestGdataManager 创建用于测试的 gdata Manager
func createTestGdataManager(t *testing.T, testName string) *gdata.Manager {
	appName := fmt.Sprintf("glowtrail_test_%s_%d", testName, time.Now().UnixNano())
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil
	}

	// 注册清理函数，测试结束后删除测试目录
	t.Cleanup(func() {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			testDir := filepath.Join(homeDir, ".local", "share", appName)
			os.RemoveAll(testDir)
		}
	})

	return manager
}

func TestNilManagerDegradedMode(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) failed: %v", err)
	}

	cfg := sm.Config()
	if cfg.FadeSeconds != 1.5 {
		t.Errorf("Expected default FadeSeconds=1.5, got %v", cfg.FadeSeconds)
	}

	// 降级模式下保存不报错，快照仍在内存中留底
	modified := config.Default()
	modified.FadeSeconds = 3.0
	if err := sm.Save(modified); err != nil {
		t.Errorf("Expected Save to succeed in degraded mode, got %v", err)
	}
	if sm.Config().FadeSeconds != 3.0 {
		t.Errorf("Expected in-memory snapshot updated, got FadeSeconds=%v", sm.Config().FadeSeconds)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	manager := createTestGdataManager(t, "roundtrip")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}

	sm, err := NewSettingsManager(manager)
	if err != nil {
		t.Fatalf("NewSettingsManager failed: %v", err)
	}

	cfg := config.Default()
	cfg.FadeSeconds = 4.0
	cfg.NumColors = 7
	cfg.GlowPercent = 50
	cfg.DrawMode = config.DrawModeCircle
	if err := sm.Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 新的管理器实例从同一存储读回
	sm2, err := NewSettingsManager(manager)
	if err != nil {
		t.Fatalf("Second NewSettingsManager failed: %v", err)
	}
	loaded := sm2.Config()
	if loaded.FadeSeconds != 4.0 {
		t.Errorf("FadeSeconds: got %v, want 4.0", loaded.FadeSeconds)
	}
	if loaded.NumColors != 7 {
		t.Errorf("NumColors: got %v, want 7", loaded.NumColors)
	}
	if loaded.GlowPercent != 50 {
		t.Errorf("GlowPercent: got %v, want 50", loaded.GlowPercent)
	}
	if loaded.DrawMode != config.DrawModeCircle {
		t.Errorf("DrawMode: got %v, want circle", loaded.DrawMode)
	}
}

// 越界的字段在加载时被归一化回合法区间
func TestLoadNormalizesOutOfRangeValues(t *testing.T) {
	manager := createTestGdataManager(t, "clamp")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}

	sm, err := NewSettingsManager(manager)
	if err != nil {
		t.Fatalf("NewSettingsManager failed: %v", err)
	}

	cfg := config.Default()
	cfg.GradientLayers = 999
	cfg.FadeSlowdown = 42
	if err := sm.Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	sm2, err := NewSettingsManager(manager)
	if err != nil {
		t.Fatalf("Second NewSettingsManager failed: %v", err)
	}
	loaded := sm2.Config()
	if loaded.GradientLayers != 25 {
		t.Errorf("GradientLayers: got %v, want clamped 25", loaded.GradientLayers)
	}
	if loaded.FadeSlowdown != 3.0 {
		t.Errorf("FadeSlowdown: got %v, want clamped 3.0", loaded.FadeSlowdown)
	}
}

func TestLoadCorruptedDataFallsBackToDefaults(t *testing.T) {
	manager := createTestGdataManager(t, "corrupt")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}

	if err := manager.SaveObjectProp(settingsObject, settingsProperty, []byte("{{not yaml")); err != nil {
		t.Fatalf("SaveObjectProp failed: %v", err)
	}

	sm := &SettingsManager{gdataManager: manager}
	if err := sm.Load(); err == nil {
		t.Error("Expected an error loading corrupted settings")
	}
	if sm.Config().FadeSeconds != 1.5 {
		t.Errorf("Expected default config after corrupted load, got FadeSeconds=%v", sm.Config().FadeSeconds)
	}
}
