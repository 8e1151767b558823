package components

import "testing"

// TestWaveTimerComponent_FieldInitialization 测试组件字段初始化
func TestWaveTimerComponent_FieldInitialization(t *testing.T) {
	timer := &WaveTimerComponent{}

	if timer.Armed {
		t.Error("Expected new wave timer to be disarmed")
	}
	if timer.CountdownMs != 0 || timer.IntervalMs != 0 || timer.WarmupMs != 0 {
		t.Errorf("Expected zero durations, got %+v", timer)
	}
	if timer.IsFirstWave {
		t.Error("Expected IsFirstWave = false")
	}
	if timer.WavesFired != 0 {
		t.Errorf("Expected WavesFired = 0, got %d", timer.WavesFired)
	}
}

// TestTimerComponent_FieldInitialization 测试 tick 计时器字段初始化
func TestTimerComponent_FieldInitialization(t *testing.T) {
	timer := &TimerComponent{Name: "simulation_tick", IntervalMs: 16}

	if timer.Armed {
		t.Error("Expected new timer to be disarmed")
	}
	if timer.RemainingMs != 0 || timer.FireCount != 0 {
		t.Errorf("Expected zero runtime state, got %+v", timer)
	}
}
