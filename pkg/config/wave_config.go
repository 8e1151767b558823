package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/BIBOKING-forever/Sprites/pkg/types"
	"gopkg.in/yaml.v3"
)

// 配置项取值范围
const (
	MinWaveIntervalMs = 1000.0
	MaxWaveIntervalMs = 60000.0

	MinSpeedBound = 0.1
	MaxSpeedBound = 20.0

	MinScaleBound = 0.1
	MaxScaleBound = 5.0

	MaxGroundOffset = 1000.0

	MinFormationSpacing = 10.0
	MaxFormationSpacing = 500.0
)

// WaveConfig 波次模拟配置
//
// 一个调度周期内视为不可变输入；任何修改都会触发调度器的重置与重新启动。
// 配置文件位置: data/wave_config.yaml
type WaveConfig struct {
	// CatalogLocation 精灵目录位置（http(s) URL、file:// URL 或本地路径）
	CatalogLocation string `yaml:"catalogLocation"`

	// WaveIntervalMs 常规波次间隔（毫秒）
	WaveIntervalMs float64 `yaml:"waveIntervalMs"`

	// MinSpeed / MaxSpeed 速度范围（像素/tick）
	// 不强制 MinSpeed <= MaxSpeed
	MinSpeed float64 `yaml:"minSpeed"`
	MaxSpeed float64 `yaml:"maxSpeed"`

	// DefaultScale 步兵默认缩放（精英为其 1.2 倍）
	DefaultScale float64 `yaml:"defaultScale"`

	// VehicleScale 载具缩放
	VehicleScale float64 `yaml:"vehicleScale"`

	// GroundOffset 地面距离容器底边的偏移量
	GroundOffset float64 `yaml:"groundOffset"`

	// SpawnSide 出生侧（left / right / both）
	SpawnSide types.SpawnSide `yaml:"spawnSide"`

	// FormationSpacing 队形间距（像素）
	FormationSpacing float64 `yaml:"formationSpacing"`

	// DebugOverlay 是否显示调试覆盖层
	DebugOverlay bool `yaml:"debugOverlay"`

	// ViewportWidth / ViewportHeight 视口（容器）尺寸
	ViewportWidth  float64 `yaml:"viewportWidth"`
	ViewportHeight float64 `yaml:"viewportHeight"`
}

// DefaultWaveConfig 返回默认配置
func DefaultWaveConfig() *WaveConfig {
	return &WaveConfig{
		CatalogLocation:  "data/sprite_catalog.json",
		WaveIntervalMs:   8000,
		MinSpeed:         1.0,
		MaxSpeed:         2.5,
		DefaultScale:     1.0,
		VehicleScale:     1.5,
		GroundOffset:     40,
		SpawnSide:        types.SpawnBoth,
		FormationSpacing: 80,
		DebugOverlay:     false,
		ViewportWidth:    1280,
		ViewportHeight:   720,
	}
}

// LoadWaveConfig 从 YAML 文件加载波次配置
//
// 文件中未出现的字段保留默认值。文件中给出的相对目录路径
// 以配置文件所在目录为基准解析为绝对路径。
//
// 参数:
//   - path: 配置文件路径（如 "data/wave_config.yaml"）
//
// 返回:
//   - *WaveConfig: 加载成功后的配置结构
//   - error: 读取、解析或验证失败时返回错误
func LoadWaveConfig(path string) (*WaveConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wave config: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	cfg, err := parseWaveConfig(data, filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseWaveConfig 解析 YAML 数据，在默认配置之上覆盖
// 目录位置按原样保留，不做路径解析
func ParseWaveConfig(data []byte) (*WaveConfig, error) {
	return parseWaveConfig(data, "")
}

// parseWaveConfig baseDir 为空时不解析相对路径
func parseWaveConfig(data []byte, baseDir string) (*WaveConfig, error) {
	cfg := DefaultWaveConfig()
	cfg.CatalogLocation = ""
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse wave config: %w", err)
	}

	if cfg.CatalogLocation == "" {
		cfg.CatalogLocation = DefaultWaveConfig().CatalogLocation
	} else if baseDir != "" {
		cfg.CatalogLocation = ResolveCatalogLocation(cfg.CatalogLocation, baseDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid wave config: %w", err)
	}
	return cfg, nil
}

// ResolveCatalogLocation 将相对文件路径解析为 baseDir 下的路径
// URL（http、https、file）和绝对路径保持不变
func ResolveCatalogLocation(location, baseDir string) string {
	if location == "" || filepath.IsAbs(location) {
		return location
	}
	if u, err := url.Parse(location); err == nil && len(u.Scheme) > 1 {
		return location
	}
	return filepath.Join(baseDir, location)
}

// Validate 验证配置有效性
//
// 检查各数值是否在允许范围内。MinSpeed 与 MaxSpeed 的大小关系不做检查。
func (c *WaveConfig) Validate() error {
	if c.WaveIntervalMs < MinWaveIntervalMs || c.WaveIntervalMs > MaxWaveIntervalMs {
		return fmt.Errorf("waveIntervalMs must be between %.0f and %.0f, got %.1f",
			MinWaveIntervalMs, MaxWaveIntervalMs, c.WaveIntervalMs)
	}

	if err := checkRange("minSpeed", c.MinSpeed, MinSpeedBound, MaxSpeedBound); err != nil {
		return err
	}
	if err := checkRange("maxSpeed", c.MaxSpeed, MinSpeedBound, MaxSpeedBound); err != nil {
		return err
	}
	if err := checkRange("defaultScale", c.DefaultScale, MinScaleBound, MaxScaleBound); err != nil {
		return err
	}
	if err := checkRange("vehicleScale", c.VehicleScale, MinScaleBound, MaxScaleBound); err != nil {
		return err
	}
	if err := checkRange("groundOffset", c.GroundOffset, 0, MaxGroundOffset); err != nil {
		return err
	}
	if err := checkRange("formationSpacing", c.FormationSpacing, MinFormationSpacing, MaxFormationSpacing); err != nil {
		return err
	}

	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("viewport size must be positive, got %.0fx%.0f", c.ViewportWidth, c.ViewportHeight)
	}

	return nil
}

func checkRange(name string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s must be between %.1f and %.1f, got %.2f", name, lo, hi, v)
	}
	return nil
}

// Clone 返回配置副本
func (c *WaveConfig) Clone() *WaveConfig {
	clone := *c
	return &clone
}

// WithCatalogLocation 返回替换了目录位置的副本，location 为空时原样复制
func (c *WaveConfig) WithCatalogLocation(location string) *WaveConfig {
	clone := c.Clone()
	if location != "" {
		clone.CatalogLocation = location
	}
	return clone
}

// CatalogChanged 判断两份配置的目录位置是否不同（需要重新加载目录）
func (c *WaveConfig) CatalogChanged(other *WaveConfig) bool {
	if other == nil {
		return true
	}
	return c.CatalogLocation != other.CatalogLocation
}

// Equal 判断两份配置是否完全相同
func (c *WaveConfig) Equal(other *WaveConfig) bool {
	if other == nil {
		return false
	}
	return *c == *other
}
