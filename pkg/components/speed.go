package components

// SpeedComponent 存储实体的移动速度
//
// Speed 为无符号的速度大小（像素/tick），方向不存储在组件中，
// 由 KinematicSystem 根据出生位置推导。
type SpeedComponent struct {
	Speed float64
}
