// wavesim 无界面运行波次模拟，定期输出统计信息
//
// 用法：
//
//	go run ./cmd/wavesim -config data/wave_config.yaml -duration 30s
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BIBOKING-forever/Sprites/internal/catalog"
	"github.com/BIBOKING-forever/Sprites/pkg/config"
	"github.com/BIBOKING-forever/Sprites/pkg/game"
	"github.com/BIBOKING-forever/Sprites/pkg/utils"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "data/wave_config.yaml", "波次配置文件路径")
	catalogURL = flag.String("catalog", "", "精灵目录位置（覆盖配置文件）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	duration   = flag.Duration("duration", 0, "运行时长（0 表示直到中断）")
	report     = flag.Duration("report", time.Second, "统计输出间隔")
	watch      = flag.Bool("watch", false, "监视配置文件变化并热更新")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadWaveConfig(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
			os.Exit(1)
		}
		cfg = config.DefaultWaveConfig()
	}
	cfg = cfg.WithCatalogLocation(*catalogURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	sim := game.NewSimulation(cfg, catalog.NewLoader(), utils.NewPRNG(*seed))
	runner := game.NewRunner(sim, game.DefaultFrameInterval).WithCatalogOverride(*catalogURL)

	if *watch {
		watcher, err := game.NewConfigWatcher(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "配置监视失败: %v\n", err)
		} else {
			defer watcher.Close()
			runner.WithConfigUpdates(watcher.Updates())
		}
	}

	var lastReport time.Time
	lastState := game.StateIdle
	runner.OnFrame(func(s *game.Simulation) {
		if s.State() != lastState {
			lastState = s.State()
			fmt.Printf("[%8.0fms] state=%s %s\n", s.NowMs(), s.State(), s.StatusMessage())
		}
		if time.Since(lastReport) < *report {
			return
		}
		lastReport = time.Now()
		d := s.Diagnostics()
		fmt.Printf("[%8.0fms] wave=%d enemies=%d vehicles=%d\n", s.NowMs(), s.WaveNumber(), d.Total, d.Vehicles)
	})

	err = runner.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}
}
