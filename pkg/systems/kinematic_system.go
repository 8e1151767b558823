package systems

import (
	"github.com/BIBOKING-forever/Sprites/pkg/components"
	"github.com/BIBOKING-forever/Sprites/pkg/ecs"
)

// RetentionMargin 视口两侧的保留宽度，超出 [-300, 视口宽度+300] 的敌人被移除
const RetentionMargin = 300.0

// HeadingSign 根据出生位置推导行进方向
//
// 出生在视口中线左侧的敌人向右移动（+1），其余向左移动（-1）。
// 方向是出生位置与视口宽度的纯函数，不作为状态存储。
// spawnX 必须是出生时的 X（SpawnDelayComponent.SpawnX），不能传入当前 X。
func HeadingSign(spawnX, viewportWidth float64) float64 {
	if spawnX < viewportWidth/2 {
		return 1
	}
	return -1
}

// InRetentionWindow 判断 X 坐标是否仍在保留区间内
func InRetentionWindow(x, viewportWidth float64) bool {
	return x >= -RetentionMargin && x <= viewportWidth+RetentionMargin
}

// KinematicSystem 敌人运动系统
//
// 每个模拟 tick 调用一次：
//  1. 启动延迟未结束的敌人保持静止
//  2. 其余敌人按速度沿推导出的方向移动
//  3. 移除离开保留区间的敌人
type KinematicSystem struct {
	entityManager *ecs.EntityManager
	viewportWidth float64
}

// NewKinematicSystem 创建运动系统
func NewKinematicSystem(em *ecs.EntityManager, viewportWidth float64) *KinematicSystem {
	return &KinematicSystem{
		entityManager: em,
		viewportWidth: viewportWidth,
	}
}

// SetViewportWidth 更新视口宽度
func (s *KinematicSystem) SetViewportWidth(width float64) {
	s.viewportWidth = width
}

// Update 推进一个 tick
//
// 参数:
//   - nowMs: 当前模拟时钟（毫秒）
//
// 返回:
//   - int: 本次移除的敌人数量
func (s *KinematicSystem) Update(nowMs float64) int {
	ids := ecs.GetEntitiesWith3[
		*components.PositionComponent,
		*components.SpeedComponent,
		*components.SpawnDelayComponent,
	](s.entityManager)

	culled := 0
	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		speed, _ := ecs.GetComponent[*components.SpeedComponent](s.entityManager, id)
		delay, _ := ecs.GetComponent[*components.SpawnDelayComponent](s.entityManager, id)

		if nowMs-delay.CreatedAtMs >= delay.DelayMs {
			pos.X += HeadingSign(delay.SpawnX, s.viewportWidth) * speed.Speed
		}

		if !InRetentionWindow(pos.X, s.viewportWidth) {
			s.entityManager.DestroyEntity(id)
			culled++
		}
	}

	s.entityManager.RemoveMarkedEntities()
	return culled
}
