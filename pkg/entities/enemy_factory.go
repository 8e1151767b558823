package entities

import (
	"fmt"

	"github.com/BIBOKING-forever/Sprites/internal/catalog"
	"github.com/BIBOKING-forever/Sprites/pkg/components"
	"github.com/BIBOKING-forever/Sprites/pkg/ecs"
	"github.com/BIBOKING-forever/Sprites/pkg/types"
)

// EnemySpawn 单个敌人的生成参数
type EnemySpawn struct {
	Role    types.EnemyRole
	Sprite  catalog.SpriteDescriptor
	X       float64
	Y       float64
	Scale   float64
	Speed   float64 // 速度大小（像素/tick）
	DelayMs float64 // 启动延迟（毫秒）
	Wave    int     // 所属波次序号
}

// NewEnemyEntity 创建敌人实体
// 敌人在视口外出生，启动延迟结束后向视口中心方向匀速移动
//
// 参数:
//   - em: 实体管理器
//   - spawn: 生成参数
//   - nowMs: 当前模拟时钟（毫秒），作为启动延迟的起点
//
// 返回:
//   - ecs.EntityID: 创建的敌人实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewEnemyEntity(em *ecs.EntityManager, spawn EnemySpawn, nowMs float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if spawn.Sprite.Name == "" {
		return 0, fmt.Errorf("enemy sprite cannot be empty")
	}
	if spawn.Scale <= 0 {
		return 0, fmt.Errorf("enemy scale must be positive, got %.2f", spawn.Scale)
	}

	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.PositionComponent{
		X: spawn.X,
		Y: spawn.Y,
	})
	ecs.AddComponent(em, entityID, &components.SpriteComponent{
		Descriptor: spawn.Sprite,
	})
	ecs.AddComponent(em, entityID, &components.ScaleComponent{
		Scale: spawn.Scale,
	})
	ecs.AddComponent(em, entityID, &components.SpeedComponent{
		Speed: spawn.Speed,
	})
	ecs.AddComponent(em, entityID, &components.SpawnDelayComponent{
		DelayMs:     spawn.DelayMs,
		CreatedAtMs: nowMs,
		SpawnX:      spawn.X,
	})
	ecs.AddComponent(em, entityID, &components.EnemyRoleComponent{
		Role:       spawn.Role,
		WaveNumber: spawn.Wave,
	})

	return entityID, nil
}
