// Package types 定义共享的基础类型
package types

import "strings"

// EnemyRole 定义敌人的语义角色
type EnemyRole int

const (
	// RoleInfantry 步兵（默认角色）
	RoleInfantry EnemyRole = iota

	// RoleElite 精英单位
	RoleElite

	// RoleVehicle 载具
	RoleVehicle
)

// enemyRoleStringMap 角色到配置字符串的映射
var enemyRoleStringMap = map[EnemyRole]string{
	RoleInfantry: "infantry",
	RoleElite:    "elite",
	RoleVehicle:  "vehicle",
}

// String 返回角色的字符串表示（用于日志和调试覆盖层）
func (r EnemyRole) String() string {
	if s, ok := enemyRoleStringMap[r]; ok {
		return s
	}
	return "unknown"
}

// EnemyRoleFromString 将配置字符串转换为 EnemyRole
// 无法识别的字符串返回 RoleInfantry 和 false
func EnemyRoleFromString(s string) (EnemyRole, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for role, name := range enemyRoleStringMap {
		if name == s {
			return role, true
		}
	}
	return RoleInfantry, false
}
