package game

import (
	"context"
	"log"
	"time"

	"github.com/BIBOKING-forever/Sprites/pkg/config"
)

// DefaultFrameInterval 无界面运行时的帧间隔（约 60 FPS）
const DefaultFrameInterval = 16 * time.Millisecond

// Runner 无界面（headless）驱动器
//
// 在单个 goroutine 上以固定帧间隔推进 Simulation，
// 并在同一 goroutine 上应用配置更新，所有状态修改都不需要加锁。
type Runner struct {
	sim      *Simulation
	interval time.Duration

	// configs 配置更新来源（可为 nil）
	configs <-chan *config.WaveConfig

	// catalogOverride 命令行指定的目录位置，覆盖每次配置更新中的位置
	catalogOverride string

	// onFrame 每帧推进后的回调（可为 nil），在 Runner goroutine 上执行
	onFrame func(sim *Simulation)
}

// NewRunner 创建驱动器
//
// 参数：
//   - sim: 要驱动的模拟（Run 中启动，结束时关闭）
//   - interval: 帧间隔，<= 0 时使用 DefaultFrameInterval
func NewRunner(sim *Simulation, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Runner{
		sim:      sim,
		interval: interval,
	}
}

// WithConfigUpdates 设置配置更新来源（通常为 ConfigWatcher.Updates()）
func (r *Runner) WithConfigUpdates(configs <-chan *config.WaveConfig) *Runner {
	r.configs = configs
	return r
}

// WithCatalogOverride 设置目录位置覆盖（为空则不覆盖）
// 配置文件热更新时保留命令行指定的目录位置
func (r *Runner) WithCatalogOverride(location string) *Runner {
	r.catalogOverride = location
	return r
}

// OnFrame 设置每帧回调
func (r *Runner) OnFrame(fn func(sim *Simulation)) *Runner {
	r.onFrame = fn
	return r
}

// Run 启动模拟并阻塞运行，直到 ctx 取消
//
// 返回：
//   - error: 启动失败时返回启动错误，否则返回 ctx.Err()
func (r *Runner) Run(ctx context.Context) error {
	if err := r.sim.Start(ctx); err != nil {
		return err
	}
	defer r.sim.Close()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Printf("[Runner] Started (frame interval: %v)", r.interval)

	configs := r.configs
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			log.Printf("[Runner] Stopped: %v", ctx.Err())
			return ctx.Err()

		case cfg, ok := <-configs:
			if !ok {
				configs = nil
				continue
			}
			if cfg == nil {
				continue
			}
			if err := r.sim.Reconfigure(cfg.WithCatalogLocation(r.catalogOverride)); err != nil {
				log.Printf("[Runner] Warning: Rejected config update: %v", err)
			}

		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			r.sim.Update(float64(elapsed) / float64(time.Millisecond))
			if r.onFrame != nil {
				r.onFrame(r.sim)
			}
		}
	}
}
