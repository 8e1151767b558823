package systems

import (
	"github.com/BIBOKING-forever/Sprites/pkg/components"
	"github.com/BIBOKING-forever/Sprites/pkg/ecs"
	"github.com/BIBOKING-forever/Sprites/pkg/types"
)

// EnemyIDs 按创建顺序返回所有敌人实体
func EnemyIDs(em *ecs.EntityManager) []ecs.EntityID {
	return ecs.GetEntitiesWith3[
		*components.PositionComponent,
		*components.SpriteComponent,
		*components.EnemyRoleComponent,
	](em)
}

// CountEnemies 统计敌人总数与载具数量
func CountEnemies(em *ecs.EntityManager) (total, vehicles int) {
	ids := EnemyIDs(em)
	for _, id := range ids {
		role, ok := ecs.GetComponent[*components.EnemyRoleComponent](em, id)
		if ok && role.Role == types.RoleVehicle {
			vehicles++
		}
	}
	return len(ids), vehicles
}
