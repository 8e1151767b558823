package game

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/BIBOKING-forever/Sprites/internal/catalog"
	"github.com/BIBOKING-forever/Sprites/pkg/components"
	"github.com/BIBOKING-forever/Sprites/pkg/config"
	"github.com/BIBOKING-forever/Sprites/pkg/ecs"
	"github.com/BIBOKING-forever/Sprites/pkg/systems"
	"github.com/BIBOKING-forever/Sprites/pkg/types"
	"github.com/BIBOKING-forever/Sprites/pkg/utils"
)

// MaxFrameMs 单次 Update 推进的最大时间（毫秒）
// 宿主长时间挂起（窗口拖动、调试断点）后恢复时，避免一次补发大量波次
const MaxFrameMs = 250.0

// State 模拟状态
type State int

const (
	StateIdle    State = iota // 尚未启动或已关闭
	StateLoading              // 正在加载精灵目录
	StateRunning              // 目录可用，波次计时器已启动
	StateError                // 目录加载失败，不生成敌人
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateRunning:
		return "running"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// CatalogLoader 精灵目录加载器
type CatalogLoader interface {
	Load(ctx context.Context, location string) (*catalog.Catalog, error)
}

// EnemyView 敌人的只读快照，供渲染使用
type EnemyView struct {
	ID     ecs.EntityID
	Sprite catalog.SpriteDescriptor
	Role   types.EnemyRole
	X      float64
	Y      float64
	Scale  float64
	Moving bool            // 启动延迟是否已结束
	Side   types.Direction // 出生侧
}

// Diagnostics 调试统计
type Diagnostics struct {
	Total    int
	Vehicles int
}

// catalogResult 异步加载结果
type catalogResult struct {
	generation uint64
	catalog    *catalog.Catalog
	err        error
}

// Simulation 敌人波次模拟
//
// 职责：
//   - 持有实体管理器（存活敌人集合）和三个核心系统
//   - 异步加载精灵目录，加载成功后启动波次计时器
//   - 处理配置变更：目录位置变化时重新加载，其余变化只重置并重新启动计时器
//
// 并发模型：
//   - 除 Start 启动的加载 goroutine 外，所有方法必须在同一个 goroutine 上调用
//   - 加载结果通过 channel 回传，在 Update 中按代次号校验后应用
//   - 过期的加载结果（关闭或重新配置之后完成的）被丢弃
type Simulation struct {
	cfg    *config.WaveConfig
	loader CatalogLoader

	entityManager *ecs.EntityManager
	composer      *systems.WaveComposeSystem
	kinematic     *systems.KinematicSystem
	scheduler     *systems.WaveSchedulerSystem

	catalog *catalog.Catalog
	state   State
	lastErr error

	baseCtx    context.Context
	cancelLoad context.CancelFunc
	generation uint64
	results    chan catalogResult
}

// NewSimulation 创建模拟实例（未启动）
//
// 参数：
//   - cfg: 波次配置（会被复制），nil 时使用默认配置
//   - loader: 目录加载器
//   - rng: 随机数来源，nil 时使用以当前时间为种子的 PRNG
func NewSimulation(cfg *config.WaveConfig, loader CatalogLoader, rng utils.RandomSource) *Simulation {
	if cfg == nil {
		cfg = config.DefaultWaveConfig()
	}
	cfg = cfg.Clone()

	em := ecs.NewEntityManager()
	s := &Simulation{
		cfg:           cfg,
		loader:        loader,
		entityManager: em,
		state:         StateIdle,
		results:       make(chan catalogResult, 4),
	}
	s.composer = systems.NewWaveComposeSystem(em, cfg, rng)
	s.kinematic = systems.NewKinematicSystem(em, cfg.ViewportWidth)
	s.scheduler = systems.NewWaveSchedulerSystem(em, s.onWave, s.onTick)
	return s
}

// Start 启动模拟：启动 tick 计时器并开始加载目录
//
// ctx 取消时正在进行的目录加载也会被取消。
func (s *Simulation) Start(ctx context.Context) error {
	if s.loader == nil {
		return fmt.Errorf("simulation has no catalog loader")
	}
	if s.baseCtx != nil {
		return fmt.Errorf("simulation already started")
	}
	s.baseCtx = ctx
	s.scheduler.ArmTick()
	s.beginLoad()
	return nil
}

// Update 推进模拟时钟
//
// 先应用已完成的目录加载结果，再推进调度器；到期的 tick 与波次在此同步执行。
//
// 参数：
//   - elapsedMs: 距上次调用经过的时间（毫秒），超过 MaxFrameMs 的部分被丢弃
func (s *Simulation) Update(elapsedMs float64) {
	s.drainResults()

	if elapsedMs <= 0 {
		return
	}
	if elapsedMs > MaxFrameMs {
		elapsedMs = MaxFrameMs
	}
	s.scheduler.Advance(elapsedMs)
}

// Reconfigure 应用新配置
//
// 任何配置变化都会先取消两个计时器再重新启动；目录位置变化时重新加载目录，
// 加载完成前不生成波次。已存在的敌人不受影响。
func (s *Simulation) Reconfigure(cfg *config.WaveConfig) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid wave config: %w", err)
	}
	if s.cfg.Equal(cfg) {
		return nil
	}

	old := s.cfg
	s.cfg = cfg.Clone()

	s.scheduler.Teardown()
	s.composer.SetConfig(s.cfg)
	s.kinematic.SetViewportWidth(s.cfg.ViewportWidth)

	if s.baseCtx == nil {
		return nil
	}
	s.scheduler.ArmTick()

	if old.CatalogChanged(s.cfg) {
		log.Printf("[Simulation] Catalog location changed: %q -> %q", old.CatalogLocation, s.cfg.CatalogLocation)
		s.beginLoad()
		return nil
	}

	if s.state == StateRunning {
		s.scheduler.ArmWaves(s.cfg.WaveIntervalMs)
	}
	log.Printf("[Simulation] Reconfigured (state: %s)", s.state)
	return nil
}

// Close 关闭模拟：取消加载、取消计时器并清空敌人
func (s *Simulation) Close() {
	s.generation++
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
	s.scheduler.Teardown()

	for _, id := range s.enemyIDs() {
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.RemoveMarkedEntities()

	s.baseCtx = nil
	s.state = StateIdle
	log.Printf("[Simulation] Closed")
}

// State 返回当前状态
func (s *Simulation) State() State {
	return s.state
}

// Err 返回最近一次目录加载错误
func (s *Simulation) Err() error {
	return s.lastErr
}

// StatusMessage 返回面向用户的状态描述
func (s *Simulation) StatusMessage() string {
	switch s.state {
	case StateLoading:
		return "loading sprite catalog..."
	case StateRunning:
		return fmt.Sprintf("running (%d sprites)", s.catalog.Len())
	case StateError:
		if errors.Is(s.lastErr, catalog.ErrCatalogEmpty) {
			return "no usable sprites"
		}
		return s.lastErr.Error()
	default:
		return "idle"
	}
}

// Config 返回当前配置副本
func (s *Simulation) Config() *config.WaveConfig {
	return s.cfg.Clone()
}

// NowMs 返回模拟时钟
func (s *Simulation) NowMs() float64 {
	return s.scheduler.NowMs()
}

// WaveNumber 返回已生成的波次数
func (s *Simulation) WaveNumber() int {
	return s.composer.WaveNumber()
}

// Enemies 返回存活敌人的快照（按创建顺序）
func (s *Simulation) Enemies() []EnemyView {
	ids := s.enemyIDs()
	views := make([]EnemyView, 0, len(ids))
	now := s.scheduler.NowMs()

	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		role, _ := ecs.GetComponent[*components.EnemyRoleComponent](s.entityManager, id)

		view := EnemyView{
			ID:     id,
			Sprite: sprite.Descriptor,
			Role:   role.Role,
			X:      pos.X,
			Y:      pos.Y,
			Scale:  1,
		}
		if scale, ok := ecs.GetComponent[*components.ScaleComponent](s.entityManager, id); ok {
			view.Scale = scale.Scale
		}
		if delay, ok := ecs.GetComponent[*components.SpawnDelayComponent](s.entityManager, id); ok {
			view.Moving = now-delay.CreatedAtMs >= delay.DelayMs
			if systems.HeadingSign(delay.SpawnX, s.cfg.ViewportWidth) < 0 {
				view.Side = types.DirectionRight
			}
		}
		views = append(views, view)
	}
	return views
}

// Diagnostics 返回敌人总数与载具数量
func (s *Simulation) Diagnostics() Diagnostics {
	total, vehicles := systems.CountEnemies(s.entityManager)
	return Diagnostics{Total: total, Vehicles: vehicles}
}

// EntityManager 返回实体管理器，仅供渲染系统只读访问
func (s *Simulation) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// enemyIDs 查询所有敌人实体
func (s *Simulation) enemyIDs() []ecs.EntityID {
	return systems.EnemyIDs(s.entityManager)
}

// beginLoad 开始新一代的目录加载，旧的加载被取消
func (s *Simulation) beginLoad() {
	if s.cancelLoad != nil {
		s.cancelLoad()
	}

	s.generation++
	gen := s.generation
	location := s.cfg.CatalogLocation
	ctx, cancel := context.WithCancel(s.baseCtx)
	s.cancelLoad = cancel
	s.state = StateLoading
	s.lastErr = nil

	log.Printf("[Simulation] Loading catalog (generation %d): %s", gen, location)

	go func() {
		cat, err := s.loader.Load(ctx, location)
		select {
		case s.results <- catalogResult{generation: gen, catalog: cat, err: err}:
		case <-ctx.Done():
		}
	}()
}

// drainResults 应用已完成的加载结果（非阻塞）
func (s *Simulation) drainResults() {
	for {
		select {
		case res := <-s.results:
			s.applyResult(res)
		default:
			return
		}
	}
}

// applyResult 应用加载结果，代次不匹配时丢弃
func (s *Simulation) applyResult(res catalogResult) {
	if res.generation != s.generation || s.baseCtx == nil {
		log.Printf("[Simulation] Dropping stale catalog result (generation %d, current %d)", res.generation, s.generation)
		return
	}
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}

	if res.err != nil {
		s.state = StateError
		s.lastErr = res.err
		log.Printf("[Simulation] ERROR: Catalog load failed: %v", res.err)
		return
	}

	s.catalog = res.catalog
	s.composer.SetCatalog(res.catalog)
	s.state = StateRunning
	s.scheduler.ArmWaves(s.cfg.WaveIntervalMs)
	log.Printf("[Simulation] Catalog ready: %d sprites", res.catalog.Len())
}

// onTick tick 计时器回调：推进敌人运动
func (s *Simulation) onTick(nowMs float64) {
	s.kinematic.Update(nowMs)
}

// onWave 波次计时器回调：生成一波敌人
func (s *Simulation) onWave(nowMs float64) {
	s.composer.ComposeWave(nowMs)
}
