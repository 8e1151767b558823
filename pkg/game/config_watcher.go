package game

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/BIBOKING-forever/Sprites/pkg/config"
	"github.com/fsnotify/fsnotify"
)

// configDebounce 事件合并窗口（编辑器保存时常产生多个事件）
const configDebounce = 100 * time.Millisecond

// ConfigWatcher 监视波次配置文件并在修改后重新加载
//
// 监视配置文件所在目录（编辑器保存时常以重命名方式替换文件），
// 只处理目标文件的事件。解析成功的配置发送到 Updates，
// 解析失败时发送到 Errors，调用方继续使用旧配置。
//
// Updates 与 Errors 应在模拟 goroutine 上消费，由调用方调用 Simulation.Reconfigure。
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher

	updates chan *config.WaveConfig
	errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewConfigWatcher 创建配置监视器
//
// 参数：
//   - path: 配置文件路径
func NewConfigWatcher(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	cw := &ConfigWatcher{
		path:    abs,
		watcher: w,
		updates: make(chan *config.WaveConfig, 4),
		errors:  make(chan error, 4),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go cw.run()

	log.Printf("[ConfigWatcher] Watching %s", abs)
	return cw, nil
}

// Updates 返回重新加载成功的配置
func (cw *ConfigWatcher) Updates() <-chan *config.WaveConfig {
	return cw.updates
}

// Errors 返回重新加载失败的错误
func (cw *ConfigWatcher) Errors() <-chan error {
	return cw.errors
}

// Close 停止监视，关闭后 Updates 与 Errors 被关闭
func (cw *ConfigWatcher) Close() error {
	var err error
	cw.once.Do(func() {
		close(cw.closeCh)
		err = cw.watcher.Close()
		<-cw.done
	})
	return err
}

func (cw *ConfigWatcher) run() {
	defer func() {
		close(cw.updates)
		close(cw.errors)
		close(cw.done)
	}()

	// 最后一个事件之后静默 configDebounce 才重新加载
	var timer *time.Timer
	var pending <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(configDebounce)
			} else {
				timer.Reset(configDebounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			cw.reload()
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.send(nil, err)
		case <-cw.closeCh:
			return
		}
	}
}

// reload 重新加载配置文件
func (cw *ConfigWatcher) reload() {
	cfg, err := config.LoadWaveConfig(cw.path)
	if err != nil {
		log.Printf("[ConfigWatcher] Warning: Reload failed, keeping previous config: %v", err)
		cw.send(nil, err)
		return
	}
	log.Printf("[ConfigWatcher] Config reloaded from %s", cw.path)
	cw.send(cfg, nil)
}

// send 发送结果，关闭时放弃
// 错误已记录日志，无人消费 Errors 时缓冲区满后直接丢弃
func (cw *ConfigWatcher) send(cfg *config.WaveConfig, err error) {
	if err != nil {
		select {
		case cw.errors <- err:
		default:
		}
		return
	}
	select {
	case cw.updates <- cfg:
	case <-cw.closeCh:
	}
}
