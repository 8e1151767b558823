package systems

import (
	"strings"

	"github.com/BIBOKING-forever/Sprites/internal/catalog"
	"github.com/BIBOKING-forever/Sprites/pkg/types"
)

// 角色识别关键字（按优先级检查：载具 → 步兵 → 精英 → 默认步兵）
var (
	vehicleMarkers  = []string{"TANK", "VEHICLE", "MECH"}
	infantryMarkers = []string{"SOLDIER", "GRUNT", "ENEMY"}
	eliteMarkers    = []string{"ELITE", "BOSS", "HEAVY"}
)

// RoleGroups 按角色划分的精灵池
// 三个池互不相交，由同一份目录快照确定性地推导
type RoleGroups struct {
	Infantry []catalog.SpriteDescriptor
	Elite    []catalog.SpriteDescriptor
	Vehicle  []catalog.SpriteDescriptor
}

// Pool 返回指定角色的精灵池
func (g RoleGroups) Pool(role types.EnemyRole) []catalog.SpriteDescriptor {
	switch role {
	case types.RoleVehicle:
		return g.Vehicle
	case types.RoleElite:
		return g.Elite
	default:
		return g.Infantry
	}
}

// Total 返回三个池的精灵总数
func (g RoleGroups) Total() int {
	return len(g.Infantry) + len(g.Elite) + len(g.Vehicle)
}

// ClassifySprite 根据名称判断精灵角色
//
// 名称不含移动标记（-WALKING / -RUNNING）时返回 false。
// 匹配大小写不敏感，按 载具 → 步兵 → 精英 的顺序首个命中生效，
// 都不命中时归为步兵。
func ClassifySprite(name string) (types.EnemyRole, bool) {
	upper := strings.ToUpper(name)
	if !catalog.HasMovementMarker(upper) {
		return types.RoleInfantry, false
	}

	switch {
	case containsAny(upper, vehicleMarkers):
		return types.RoleVehicle, true
	case containsAny(upper, infantryMarkers):
		return types.RoleInfantry, true
	case containsAny(upper, eliteMarkers):
		return types.RoleElite, true
	default:
		return types.RoleInfantry, true
	}
}

// ClassifyCatalog 将目录划分为角色池
//
// 纯函数：相同目录总是得到相同结果，池内顺序与目录顺序一致。
// 目录加载方应已完成过滤，这里的移动标记检查只用于拦截异常条目。
func ClassifyCatalog(cat *catalog.Catalog) RoleGroups {
	var groups RoleGroups
	if cat == nil {
		return groups
	}

	for _, sprite := range cat.Sprites {
		role, ok := ClassifySprite(sprite.Name)
		if !ok {
			continue
		}
		switch role {
		case types.RoleVehicle:
			groups.Vehicle = append(groups.Vehicle, sprite)
		case types.RoleElite:
			groups.Elite = append(groups.Elite, sprite)
		default:
			groups.Infantry = append(groups.Infantry, sprite)
		}
	}
	return groups
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
