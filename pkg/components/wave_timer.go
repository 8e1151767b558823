package components

// WaveTimerComponent 波次计时器组件
// 存储波次刷新计时状态，供 WaveSchedulerSystem 使用
// 注意：遵循 ECS 原则，组件仅存储数据，不包含方法
//
// 生命周期：
//   - Armed=false：未启动（目录未就绪或已拆除）
//   - 启动后首波在 WarmupMs 后触发（IsFirstWave=true）
//   - 之后每隔 IntervalMs 触发一次，直到拆除
type WaveTimerComponent struct {
	// WarmupMs 首波预热时间（毫秒）
	WarmupMs float64

	// IntervalMs 常规波次间隔（毫秒）
	IntervalMs float64

	// CountdownMs 当前倒计时（毫秒），<= 0 时触发
	CountdownMs float64

	// IsFirstWave 下一次触发是否为首波
	IsFirstWave bool

	// Armed 是否已启动
	Armed bool

	// WavesFired 自启动以来触发的波次数
	WavesFired int
}
