// waveterm 在终端中运行波次模拟
//
// 按键：s 切换出生侧，q / Esc / Ctrl+C 退出。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/BIBOKING-forever/Sprites/internal/catalog"
	"github.com/BIBOKING-forever/Sprites/pkg/config"
	"github.com/BIBOKING-forever/Sprites/pkg/game"
	"github.com/BIBOKING-forever/Sprites/pkg/termview"
	"github.com/BIBOKING-forever/Sprites/pkg/utils"
	"github.com/gdamore/tcell/v2"
)

var (
	configPath = flag.String("config", "data/wave_config.yaml", "波次配置文件路径")
	catalogURL = flag.String("catalog", "", "精灵目录位置（覆盖配置文件）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	logFile    = flag.String("log", "", "日志文件（为空则丢弃日志）")
)

func main() {
	flag.Parse()

	if err := setupLogging(*logFile); err != nil {
		fmt.Fprintf(os.Stderr, "日志初始化失败: %v\n", err)
		os.Exit(1)
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

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "终端初始化失败: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "终端初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 按键在事件 goroutine 上处理，配置变化经 channel 交给 Runner goroutine
	configs := make(chan *config.WaveConfig, 1)
	go handleEvents(screen, cfg.Clone(), configs, cancel)

	sim := game.NewSimulation(cfg, catalog.NewLoader(), utils.NewPRNG(*seed))
	viewer := termview.New(screen)
	runner := game.NewRunner(sim, game.DefaultFrameInterval).
		WithConfigUpdates(configs).
		OnFrame(viewer.Draw)

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}
}

// handleEvents 读取终端事件
func handleEvents(screen tcell.Screen, current *config.WaveConfig, configs chan<- *config.WaveConfig, quit context.CancelFunc) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
				quit()
				return
			}
			if ev.Key() == tcell.KeyRune && (ev.Rune() == 's' || ev.Rune() == 'S') {
				current.SpawnSide = current.SpawnSide.Next()
				configs <- current.Clone()
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

// setupLogging 终端界面占用标准输出，日志写入文件或丢弃
func setupLogging(path string) error {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	return nil
}
