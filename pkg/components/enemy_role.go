package components

import "github.com/BIBOKING-forever/Sprites/pkg/types"

// EnemyRoleComponent 标记实体为敌人，并记录其角色
// LiveSet 即为所有拥有此组件的实体
type EnemyRoleComponent struct {
	Role types.EnemyRole

	// WaveNumber 所属波次序号（从 1 开始，调试用）
	WaveNumber int
}
