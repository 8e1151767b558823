package game

import (
	"fmt"
	"log"

	"github.com/BIBOKING-forever/Sprites/pkg/config"
	"github.com/BIBOKING-forever/Sprites/pkg/types"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// WaveSettings 用户在界面中修改并持久化的波次设置
// 这些设置覆盖配置文件中的对应项
type WaveSettings struct {
	SpawnSide    types.SpawnSide `yaml:"spawnSide"`    // 出生侧
	DebugOverlay bool            `yaml:"debugOverlay"` // 调试覆盖层开关

	// WaveIntervalMs 波次间隔覆盖值，0 表示使用配置文件中的值
	WaveIntervalMs float64 `yaml:"waveIntervalMs"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *WaveSettings {
	return &WaveSettings{
		SpawnSide:      types.SpawnBoth,
		DebugOverlay:   false,
		WaveIntervalMs: 0,
	}
}

// SettingsManager 设置管理器
// 负责波次设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *WaveSettings  // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "waves"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 如果加载设置失败返回错误（不影响创建）
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 加载失败不是致命错误，使用默认设置
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
//
// 返回：
//   - error: 如果反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.WaveIntervalMs = clampInterval(loaded.WaveIntervalMs)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *WaveSettings {
	return sm.settings
}

// SetSpawnSide 设置出生侧
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetSpawnSide(side types.SpawnSide) {
	sm.settings.SpawnSide = side
}

// CycleSpawnSide 切换到下一个出生侧（both → left → right → both）
func (sm *SettingsManager) CycleSpawnSide() types.SpawnSide {
	sm.settings.SpawnSide = sm.settings.SpawnSide.Next()
	return sm.settings.SpawnSide
}

// SetDebugOverlay 设置调试覆盖层开关
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetDebugOverlay(enabled bool) {
	sm.settings.DebugOverlay = enabled
}

// SetWaveInterval 设置波次间隔覆盖值
//
// 非零值会被限制在配置允许的范围内；0 表示取消覆盖
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetWaveInterval(intervalMs float64) {
	sm.settings.WaveIntervalMs = clampInterval(intervalMs)
}

// Apply 将设置覆盖到配置副本上
//
// 参数：
//   - cfg: 基础配置（不会被修改）
//
// 返回：
//   - *config.WaveConfig: 覆盖后的新配置
func (sm *SettingsManager) Apply(cfg *config.WaveConfig) *config.WaveConfig {
	out := cfg.Clone()
	out.SpawnSide = sm.settings.SpawnSide
	out.DebugOverlay = sm.settings.DebugOverlay
	if sm.settings.WaveIntervalMs > 0 {
		out.WaveIntervalMs = sm.settings.WaveIntervalMs
	}
	return out
}

// clampInterval 将波次间隔限制在允许范围内（0 保持为 0）
func clampInterval(intervalMs float64) float64 {
	if intervalMs <= 0 {
		return 0
	}
	if intervalMs < config.MinWaveIntervalMs {
		return config.MinWaveIntervalMs
	}
	if intervalMs > config.MaxWaveIntervalMs {
		return config.MaxWaveIntervalMs
	}
	return intervalMs
}
