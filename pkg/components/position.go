package components

// PositionComponent 存储实体在视口中的世界坐标
// Y 为精灵底边中点（渲染时以底部中心为锚点）
type PositionComponent struct {
	X float64
	Y float64
}
