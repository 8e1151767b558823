package systems

import (
	"fmt"
	"testing"

	"github.com/BIBOKING-forever/Sprites/pkg/ecs"
)

// schedulerRecorder 记录调度回调
type schedulerRecorder struct {
	waves  []float64
	ticks  []float64
	events []string
}

func (r *schedulerRecorder) onWave(nowMs float64) {
	r.waves = append(r.waves, nowMs)
	r.events = append(r.events, fmt.Sprintf("wave@%.0f", nowMs))
}

func (r *schedulerRecorder) onTick(nowMs float64) {
	r.ticks = append(r.ticks, nowMs)
	r.events = append(r.events, fmt.Sprintf("tick@%.0f", nowMs))
}

func newTestScheduler() (*WaveSchedulerSystem, *schedulerRecorder) {
	rec := &schedulerRecorder{}
	return NewWaveSchedulerSystem(ecs.NewEntityManager(), rec.onWave, rec.onTick), rec
}

// TestWaveScheduler_Warmup 首波在启动 1000ms 后触发
func TestWaveScheduler_Warmup(t *testing.T) {
	sys, rec := newTestScheduler()
	sys.ArmWaves(8000)

	sys.Advance(999)
	if len(rec.waves) != 0 {
		t.Fatalf("Wave fired before warm-up: %v", rec.waves)
	}

	sys.Advance(1)
	if len(rec.waves) != 1 || rec.waves[0] != 1000 {
		t.Fatalf("Expected first wave at 1000ms, got %v", rec.waves)
	}
}

// TestWaveScheduler_Interval 首波之后按配置间隔触发
func TestWaveScheduler_Interval(t *testing.T) {
	sys, rec := newTestScheduler()
	sys.ArmWaves(3000)

	sys.Advance(10000)

	want := []float64{1000, 4000, 7000, 10000}
	if len(rec.waves) != len(want) {
		t.Fatalf("Expected %d waves, got %v", len(want), rec.waves)
	}
	for i := range want {
		if rec.waves[i] != want[i] {
			t.Errorf("wave %d at %v, want %v", i, rec.waves[i], want[i])
		}
	}
	if sys.NowMs() != 10000 {
		t.Errorf("NowMs = %v, want 10000", sys.NowMs())
	}
}

// TestWaveScheduler_Tick tick 每 16ms 触发一次，与波次无关
func TestWaveScheduler_Tick(t *testing.T) {
	sys, rec := newTestScheduler()
	sys.ArmTick()

	// 分多次推进，结果与一次推进相同
	for i := 0; i < 10; i++ {
		sys.Advance(10)
	}
	sys.Advance(60)

	if len(rec.ticks) != 10 {
		t.Fatalf("Expected 10 ticks in 160ms, got %d", len(rec.ticks))
	}
	for i, at := range rec.ticks {
		if at != float64(i+1)*SimulationTickMs {
			t.Errorf("tick %d at %v, want %v", i, at, float64(i+1)*SimulationTickMs)
		}
	}
	if len(rec.waves) != 0 {
		t.Error("Waves must not fire while the wave timer is disarmed")
	}

	// 重复 ArmTick 不会重置相位
	sys.ArmTick()
	sys.Advance(16)
	if len(rec.ticks) != 11 {
		t.Errorf("Expected 11 ticks, got %d", len(rec.ticks))
	}
}

// TestWaveScheduler_TickBeforeWave 同一时刻到期时先 tick 后波次
func TestWaveScheduler_TickBeforeWave(t *testing.T) {
	sys, rec := newTestScheduler()
	sys.ArmTick()
	sys.Advance(8)
	sys.ArmWaves(8000)

	sys.Advance(1000)

	n := len(rec.events)
	if n < 2 {
		t.Fatalf("Expected events, got %v", rec.events)
	}
	if rec.events[n-2] != "tick@1008" || rec.events[n-1] != "wave@1008" {
		t.Errorf("Expected tick then wave at 1008ms, got %v", rec.events[n-2:])
	}
}

// TestWaveScheduler_TeardownCancelsWarmup 取消尚未触发的首波
func TestWaveScheduler_TeardownCancelsWarmup(t *testing.T) {
	sys, rec := newTestScheduler()
	sys.ArmTick()
	sys.ArmWaves(8000)

	sys.Advance(500)
	sys.Teardown()
	ticksAtTeardown := len(rec.ticks)

	sys.Advance(20000)

	if len(rec.waves) != 0 {
		t.Errorf("Pending warm-up fired after teardown: %v", rec.waves)
	}
	if len(rec.ticks) != ticksAtTeardown {
		t.Errorf("Ticks fired after teardown")
	}
	if sys.WavesArmed() || sys.TickArmed() {
		t.Error("Timers should be disarmed after teardown")
	}
}

// TestWaveScheduler_Rearm 重新启动后重新计算预热
func TestWaveScheduler_Rearm(t *testing.T) {
	sys, rec := newTestScheduler()
	sys.ArmWaves(8000)
	sys.Advance(1500)

	sys.Teardown()
	sys.ArmWaves(2000)
	sys.Advance(999)
	if len(rec.waves) != 1 {
		t.Fatalf("Expected only the original first wave, got %v", rec.waves)
	}
	sys.Advance(1)
	sys.Advance(2000)

	want := []float64{1000, 2500, 4500}
	if len(rec.waves) != len(want) {
		t.Fatalf("Expected waves %v, got %v", want, rec.waves)
	}
	for i := range want {
		if rec.waves[i] != want[i] {
			t.Errorf("wave %d at %v, want %v", i, rec.waves[i], want[i])
		}
	}
}

// TestWaveScheduler_TeardownInsideCallback 回调中 Teardown 立即生效
func TestWaveScheduler_TeardownInsideCallback(t *testing.T) {
	var sys *WaveSchedulerSystem
	waves := 0
	sys = NewWaveSchedulerSystem(ecs.NewEntityManager(), func(float64) {
		waves++
		sys.Teardown()
	}, nil)
	sys.ArmWaves(1000)

	sys.Advance(10000)
	if waves != 1 {
		t.Errorf("Expected exactly one wave, got %d", waves)
	}
}

func TestWaveScheduler_InvalidInterval(t *testing.T) {
	sys, _ := newTestScheduler()
	sys.ArmWaves(0)
	if sys.WavesArmed() {
		t.Error("Non-positive interval should not arm the wave timer")
	}
}
