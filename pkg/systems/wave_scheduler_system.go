package systems

import (
	"log"

	"github.com/BIBOKING-forever/Sprites/pkg/components"
	"github.com/BIBOKING-forever/Sprites/pkg/ecs"
)

// 调度常量（毫秒）
const (
	// InitialWaveDelayMs 首波预热时间
	InitialWaveDelayMs = 1000.0

	// SimulationTickMs 模拟 tick 周期（约 60Hz）
	SimulationTickMs = 16.0
)

// WaveSchedulerSystem 波次调度系统
//
// 职责：
//   - 管理两个相互独立的计时器：波次计时器与 tick 计时器
//   - 波次计时器：启动后 InitialWaveDelayMs 触发首波，之后每隔配置的间隔触发
//   - tick 计时器：每 SimulationTickMs 触发一次，与波次节奏无关
//   - Teardown 同时取消两个计时器（包括尚未触发的首波预热）
//
// 架构说明：
//   - 计时器状态存储在计时器实体的组件上
//   - 时间由 Advance(elapsedMs) 推进，所有到期事件按时间顺序同步回调
//   - 回调在调用 Advance 的 goroutine 上执行，波次与 tick 回调不会并发
type WaveSchedulerSystem struct {
	entityManager *ecs.EntityManager

	// 计时器组件所在的实体ID
	waveTimerID ecs.EntityID
	tickTimerID ecs.EntityID

	onWave func(nowMs float64)
	onTick func(nowMs float64)

	// clockMs 模拟时钟（毫秒）
	clockMs float64
}

// NewWaveSchedulerSystem 创建波次调度系统（两个计时器均未启动）
//
// 参数：
//   - em: 实体管理器
//   - onWave: 波次计时器到期回调
//   - onTick: tick 计时器到期回调
func NewWaveSchedulerSystem(em *ecs.EntityManager, onWave, onTick func(nowMs float64)) *WaveSchedulerSystem {
	s := &WaveSchedulerSystem{
		entityManager: em,
		onWave:        onWave,
		onTick:        onTick,
	}
	s.createTimerEntities()
	return s
}

// createTimerEntities 创建计时器组件实体
func (s *WaveSchedulerSystem) createTimerEntities() {
	s.waveTimerID = s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, s.waveTimerID, &components.WaveTimerComponent{
		WarmupMs: InitialWaveDelayMs,
	})

	s.tickTimerID = s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, s.tickTimerID, &components.TimerComponent{
		Name:       "simulation_tick",
		IntervalMs: SimulationTickMs,
	})

	log.Printf("[WaveSchedulerSystem] Created timer entities (wave: %d, tick: %d)", s.waveTimerID, s.tickTimerID)
}

// NowMs 返回模拟时钟
func (s *WaveSchedulerSystem) NowMs() float64 {
	return s.clockMs
}

// ArmTick 启动 tick 计时器（已启动时不重复启动）
func (s *WaveSchedulerSystem) ArmTick() {
	tick := s.tickTimer()
	if tick == nil || tick.Armed {
		return
	}
	tick.Armed = true
	tick.RemainingMs = tick.IntervalMs
	tick.FireCount = 0
}

// ArmWaves 启动波次计时器
//
// 首波在 InitialWaveDelayMs 后触发，之后每隔 intervalMs 触发一次。
// 若计时器已启动，先取消再重新启动。
func (s *WaveSchedulerSystem) ArmWaves(intervalMs float64) {
	timer := s.waveTimer()
	if timer == nil {
		log.Printf("[WaveSchedulerSystem] ERROR: Wave timer component not found")
		return
	}
	if intervalMs <= 0 {
		log.Printf("[WaveSchedulerSystem] ERROR: Invalid wave interval %.1f ms", intervalMs)
		return
	}

	timer.IntervalMs = intervalMs
	timer.CountdownMs = timer.WarmupMs
	timer.IsFirstWave = true
	timer.WavesFired = 0
	timer.Armed = true

	log.Printf("[WaveSchedulerSystem] Waves armed: warmup=%.0fms, interval=%.0fms", timer.WarmupMs, intervalMs)
}

// Teardown 取消两个计时器
func (s *WaveSchedulerSystem) Teardown() {
	if timer := s.waveTimer(); timer != nil {
		timer.Armed = false
		timer.CountdownMs = 0
	}
	if tick := s.tickTimer(); tick != nil {
		tick.Armed = false
		tick.RemainingMs = 0
	}
	log.Printf("[WaveSchedulerSystem] Timers torn down at %.0fms", s.clockMs)
}

// WavesArmed 波次计时器是否已启动
func (s *WaveSchedulerSystem) WavesArmed() bool {
	timer := s.waveTimer()
	return timer != nil && timer.Armed
}

// TickArmed tick 计时器是否已启动
func (s *WaveSchedulerSystem) TickArmed() bool {
	tick := s.tickTimer()
	return tick != nil && tick.Armed
}

// Advance 推进模拟时钟
//
// 在 elapsedMs 内到期的事件按时间先后依次触发；同一时刻同时到期时
// 先触发 tick，再触发波次。回调中调用 Teardown 会立即生效。
//
// 参数：
//   - elapsedMs: 推进的时间（毫秒）
func (s *WaveSchedulerSystem) Advance(elapsedMs float64) {
	remaining := elapsedMs
	for remaining > 0 {
		wave := s.waveTimer()
		tick := s.tickTimer()

		step := remaining
		if tick != nil && tick.Armed && tick.RemainingMs < step {
			step = tick.RemainingMs
		}
		if wave != nil && wave.Armed && wave.CountdownMs < step {
			step = wave.CountdownMs
		}
		if step < 0 {
			step = 0
		}

		s.clockMs += step
		remaining -= step
		if tick != nil && tick.Armed {
			tick.RemainingMs -= step
		}
		if wave != nil && wave.Armed {
			wave.CountdownMs -= step
		}

		if tick != nil && tick.Armed && tick.RemainingMs <= 0 {
			s.fireTick(tick)
		}
		if wave != nil && wave.Armed && wave.CountdownMs <= 0 {
			s.fireWave(wave)
		}
	}
}

// fireTick 触发 tick 并重新装填
func (s *WaveSchedulerSystem) fireTick(tick *components.TimerComponent) {
	tick.RemainingMs += tick.IntervalMs
	tick.FireCount++
	if s.onTick != nil {
		s.onTick(s.clockMs)
	}
}

// fireWave 触发波次并设置下一次倒计时
func (s *WaveSchedulerSystem) fireWave(wave *components.WaveTimerComponent) {
	wave.CountdownMs += wave.IntervalMs
	wave.IsFirstWave = false
	wave.WavesFired++
	if s.onWave != nil {
		s.onWave(s.clockMs)
	}
}

// waveTimer 获取波次计时器组件
func (s *WaveSchedulerSystem) waveTimer() *components.WaveTimerComponent {
	timer, ok := ecs.GetComponent[*components.WaveTimerComponent](s.entityManager, s.waveTimerID)
	if !ok {
		return nil
	}
	return timer
}

// tickTimer 获取 tick 计时器组件
func (s *WaveSchedulerSystem) tickTimer() *components.TimerComponent {
	tick, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, s.tickTimerID)
	if !ok {
		return nil
	}
	return tick
}
