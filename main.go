package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/BIBOKING-forever/Sprites/pkg/app"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "data/wave_config.yaml", "波次配置文件路径")
	catalogURL = flag.String("catalog", "", "精灵目录位置（覆盖配置文件）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	watch      = flag.Bool("watch", true, "监视配置文件变化并热更新")
)

func main() {
	flag.Parse()

	application, err := app.NewApp(app.Config{
		Verbose:         *verbose,
		ConfigPath:      *configPath,
		CatalogLocation: *catalogURL,
		Seed:            *seed,
		Watch:           *watch,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	w, h := application.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Sprites - 敌人波次模拟")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(application); err != nil {
		log.Fatal(err)
	}
}
