package utils

import (
	"image/color"

	"github.com/BIBOKING-forever/Sprites/pkg/types"
	"golang.org/x/image/colornames"
)

// RoleTint 返回角色的占位颜色（桌面端与终端共用）
func RoleTint(role types.EnemyRole) color.RGBA {
	switch role {
	case types.RoleVehicle:
		return colornames.Darkolivegreen
	case types.RoleElite:
		return colornames.Orchid
	default:
		return colornames.Steelblue
	}
}
