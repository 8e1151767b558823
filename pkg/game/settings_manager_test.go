package game

import (
	"os"
	"testing"

	"github.com/BIBOKING-forever/Sprites/pkg/config"
	"github.com/BIBOKING-forever/Sprites/pkg/types"
	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下创建 gdata manager
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()

	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gdataManager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}
	if settings.SpawnSide != types.SpawnBoth {
		t.Errorf("SpawnSide: got %v, want both", settings.SpawnSide)
	}
	if settings.DebugOverlay {
		t.Error("DebugOverlay: got true, want false")
	}
	if settings.WaveIntervalMs != 0 {
		t.Errorf("WaveIntervalMs: got %v, want 0", settings.WaveIntervalMs)
	}
}

// TestNewSettingsManager 测试正常初始化 SettingsManager
func TestNewSettingsManager(t *testing.T) {
	gdataManager := openTestGdata(t, "test_wave_settings")

	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	if sm == nil || sm.GetSettings() == nil {
		t.Fatal("NewSettingsManager() returned no settings")
	}
	if sm.GetSettings().SpawnSide != types.SpawnBoth {
		t.Errorf("Initial SpawnSide: got %v, want both", sm.GetSettings().SpawnSide)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	settings := sm.GetSettings()
	if settings == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}
	if *settings != *DefaultSettings() {
		t.Errorf("Degraded mode settings: got %+v, want defaults", settings)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestGdata(t, "test_wave_settings_load_save")

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	sm1.SetSpawnSide(types.SpawnRight)
	sm1.SetDebugOverlay(true)
	sm1.SetWaveInterval(3000)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// 创建新的设置管理器，验证加载
	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}

	settings := sm2.GetSettings()
	if settings.SpawnSide != types.SpawnRight {
		t.Errorf("Loaded SpawnSide: got %v, want right", settings.SpawnSide)
	}
	if !settings.DebugOverlay {
		t.Error("Loaded DebugOverlay: got false, want true")
	}
	if settings.WaveIntervalMs != 3000 {
		t.Errorf("Loaded WaveIntervalMs: got %v, want 3000", settings.WaveIntervalMs)
	}
}

// TestSettingsLoadCorrupted 测试存储内容损坏时回落到默认设置
func TestSettingsLoadCorrupted(t *testing.T) {
	gdataManager := openTestGdata(t, "test_wave_settings_corrupted")

	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("spawnSide: sideways\n")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should fail for an unknown spawn side")
	}
	if *sm.GetSettings() != *DefaultSettings() {
		t.Errorf("Expected defaults after failed load, got %+v", sm.GetSettings())
	}
}

// TestCycleSpawnSide 测试出生侧循环切换
func TestCycleSpawnSide(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	want := []types.SpawnSide{types.SpawnLeft, types.SpawnRight, types.SpawnBoth, types.SpawnLeft}
	for i, w := range want {
		if got := sm.CycleSpawnSide(); got != w {
			t.Errorf("cycle %d: got %v, want %v", i, got, w)
		}
	}
	if sm.GetSettings().SpawnSide != types.SpawnLeft {
		t.Errorf("SpawnSide after cycling: got %v", sm.GetSettings().SpawnSide)
	}
}

// TestSetWaveIntervalClamp 测试 SetWaveInterval 范围校验
func TestSetWaveIntervalClamp(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		input    float64
		expected float64
	}{
		{5000, 5000},    // 正常值
		{0, 0},          // 取消覆盖
		{-10, 0},        // 负数视为取消覆盖
		{500, 1000},     // 低于下限
		{120000, 60000}, // 高于上限
	}

	for _, tt := range tests {
		sm.SetWaveInterval(tt.input)
		if sm.GetSettings().WaveIntervalMs != tt.expected {
			t.Errorf("SetWaveInterval(%v): got %v, want %v",
				tt.input, sm.GetSettings().WaveIntervalMs, tt.expected)
		}
	}
}

// TestSettingsApply 测试设置覆盖到配置
func TestSettingsApply(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	base := config.DefaultWaveConfig()

	// 默认设置不改变波次间隔
	applied := sm.Apply(base)
	if applied.WaveIntervalMs != base.WaveIntervalMs {
		t.Errorf("WaveIntervalMs: got %v, want %v", applied.WaveIntervalMs, base.WaveIntervalMs)
	}

	sm.SetSpawnSide(types.SpawnLeft)
	sm.SetDebugOverlay(true)
	sm.SetWaveInterval(2000)
	applied = sm.Apply(base)

	if applied.SpawnSide != types.SpawnLeft || !applied.DebugOverlay || applied.WaveIntervalMs != 2000 {
		t.Errorf("Apply() = %+v", applied)
	}
	if base.SpawnSide != types.SpawnBoth || base.DebugOverlay || base.WaveIntervalMs != 8000 {
		t.Error("Apply() must not modify the base config")
	}
	if applied.CatalogLocation != base.CatalogLocation {
		t.Error("Apply() should keep unrelated fields")
	}
}

// TestSaveNilGdataManager 测试降级模式下 Save() 不报错
func TestSaveNilGdataManager(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}
}

// TestLoadNilGdataManager 测试降级模式下 Load() 使用默认设置
func TestLoadNilGdataManager(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	sm.SetDebugOverlay(true)

	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should return nil, got: %v", err)
	}
	if sm.GetSettings().DebugOverlay {
		t.Error("After Load() in degraded mode, DebugOverlay should be reset")
	}
}
