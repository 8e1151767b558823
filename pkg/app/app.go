// Package app 提供桌面端应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载波次配置与用户设置，
// 创建模拟并把它接入 Ebitengine 的主循环。
package app

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log"

	"github.com/BIBOKING-forever/Sprites/internal/catalog"
	"github.com/BIBOKING-forever/Sprites/pkg/config"
	"github.com/BIBOKING-forever/Sprites/pkg/game"
	"github.com/BIBOKING-forever/Sprites/pkg/systems"
	"github.com/BIBOKING-forever/Sprites/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// gdataAppName 用户设置的存储名称
const gdataAppName = "sprites_wave_sim"

// backgroundColor 视口背景色
var backgroundColor = color.RGBA{R: 24, G: 28, B: 36, A: 255}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 波次配置文件路径，文件不存在时使用默认配置
	ConfigPath string
	// CatalogLocation 覆盖配置文件中的目录位置（为空则不覆盖）
	CatalogLocation string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// Watch 是否监视配置文件变化
	Watch bool
}

// App 是桌面端应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sim      *game.Simulation
	settings *game.SettingsManager
	watcher  *game.ConfigWatcher

	// fileConfig 配置文件中的配置（未叠加用户设置）
	fileConfig *config.WaveConfig
	// catalogOverride 命令行指定的目录位置，热更新后仍然生效
	catalogOverride string

	renderSystem *systems.EnemyRenderSystem
	debugOverlay *systems.DebugOverlaySystem
	cancel       context.CancelFunc
	verbose      bool
}

// NewApp 创建并初始化应用
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	fileConfig, err := loadFileConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("波次配置加载失败: %w", err)
	}
	fileConfig = fileConfig.WithCatalogLocation(cfg.CatalogLocation)

	// gdata 初始化失败时降级为仅内存设置
	gdataManager, err := gdata.Open(gdata.Config{AppName: gdataAppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, settings will not persist: %v", err)
		gdataManager = nil
	}
	settings, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置加载失败: %w", err)
	}

	effective := settings.Apply(fileConfig)
	sim := game.NewSimulation(effective, catalog.NewLoader(), utils.NewPRNG(cfg.Seed))

	a := &App{
		sim:             sim,
		settings:        settings,
		fileConfig:      fileConfig,
		catalogOverride: cfg.CatalogLocation,
		renderSystem:    systems.NewEnemyRenderSystem(sim.EntityManager()),
		debugOverlay:    systems.NewDebugOverlaySystem(sim.EntityManager(), effective.DebugOverlay),
		verbose:         cfg.Verbose,
	}

	if cfg.Watch && cfg.ConfigPath != "" {
		watcher, err := game.NewConfigWatcher(cfg.ConfigPath)
		if err != nil {
			log.Printf("[App] Warning: Config hot reload disabled: %v", err)
		} else {
			a.watcher = watcher
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	if err := sim.Start(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("模拟启动失败: %w", err)
	}

	log.Printf("[App] Started: catalog=%s, spawnSide=%s", effective.CatalogLocation, effective.SpawnSide)
	return a, nil
}

// loadFileConfig 加载配置文件，路径为空或文件不存在时返回默认配置
func loadFileConfig(path string) (*config.WaveConfig, error) {
	if path == "" {
		return config.DefaultWaveConfig(), nil
	}
	cfg, err := config.LoadWaveConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("[App] Config %s not found, using defaults", path)
		return config.DefaultWaveConfig(), nil
	}
	return cfg, err
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.drainConfigUpdates()
	a.handleInput()

	a.sim.Update(1000.0 / float64(ebiten.TPS()))
	return nil
}

// drainConfigUpdates 应用配置文件的热更新（非阻塞）
func (a *App) drainConfigUpdates() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-a.watcher.Updates():
			if !ok {
				a.watcher = nil
				return
			}
			a.fileConfig = cfg.WithCatalogLocation(a.catalogOverride)
			a.reconfigure()
		case err, ok := <-a.watcher.Errors():
			if !ok {
				a.watcher = nil
				return
			}
			log.Printf("[App] Config reload error: %v", err)
		default:
			return
		}
	}
}

// handleInput 处理键盘快捷键
//
//   - S: 切换出生侧（both → left → right）
//   - D: 切换调试覆盖层
//   - F11: 切换全屏
func (a *App) handleInput() {
	changed := false

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		side := a.settings.CycleSpawnSide()
		log.Printf("[App] Spawn side: %s", side)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		a.settings.SetDebugOverlay(!a.settings.GetSettings().DebugOverlay)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	if !changed {
		return
	}
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
	a.reconfigure()
}

// reconfigure 叠加用户设置并应用到模拟
func (a *App) reconfigure() {
	effective := a.settings.Apply(a.fileConfig)
	if err := a.sim.Reconfigure(effective); err != nil {
		log.Printf("[App] Warning: Rejected config: %v", err)
		return
	}
	a.debugOverlay.SetEnabled(effective.DebugOverlay)
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	a.renderSystem.Draw(screen)

	status := a.sim.StatusMessage()
	a.debugOverlay.Draw(screen, fmt.Sprintf("wave: %d\nside: %s\n%s",
		a.sim.WaveNumber(), a.sim.Config().SpawnSide, status))

	// 加载中或出错时始终显示状态
	if a.sim.State() != game.StateRunning {
		w, h := a.Layout(0, 0)
		ebitenutil.DebugPrintAt(screen, status, w/2-len(status)*3, h/2)
	}
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时两侧留黑，视口按线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸（视口大小）
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := a.sim.Config()
	return int(cfg.ViewportWidth), int(cfg.ViewportHeight)
}

// Close 关闭模拟与配置监视
func (a *App) Close() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("[App] Warning: Failed to close config watcher: %v", err)
		}
		a.watcher = nil
	}
	a.sim.Close()
	if a.cancel != nil {
		a.cancel()
	}
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
