package components

// SpawnDelayComponent 记录实体的出生时刻与启动延迟
//
// 实体在 CreatedAtMs + DelayMs 之前保持静止。
// SpawnX 为出生时的 X 坐标，创建后不再修改，用于推导行进方向。
type SpawnDelayComponent struct {
	// DelayMs 启动延迟（毫秒）
	DelayMs float64

	// CreatedAtMs 创建时的模拟时钟（毫秒）
	CreatedAtMs float64

	// SpawnX 出生 X 坐标
	SpawnX float64
}
