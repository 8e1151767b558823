package components

// TimerComponent 固定周期计时器组件
// 用于模拟 tick 计时器：每经过 IntervalMs 触发一次
type TimerComponent struct {
	Name        string  // 计时器名称，如 "simulation_tick"
	IntervalMs  float64 // 触发周期（毫秒）
	RemainingMs float64 // 距离下次触发的剩余时间（毫秒）
	Armed       bool    // 是否已启动
	FireCount   int     // 自启动以来的触发次数
}
