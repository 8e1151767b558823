// Package termview 在终端中绘制敌人波次（基于 tcell）
//
// 视口坐标按比例投影到终端字符网格：每个敌人绘制为一个字符，
// 底部一行显示统计与状态。
package termview

import (
	"fmt"
	"math"

	"github.com/BIBOKING-forever/Sprites/pkg/game"
	"github.com/BIBOKING-forever/Sprites/pkg/types"
	"github.com/BIBOKING-forever/Sprites/pkg/utils"
	"github.com/gdamore/tcell/v2"
)

// statusRows 底部状态栏占用的行数
const statusRows = 1

// Project 将视口坐标投影到终端单元格
//
// 参数：
//   - x, y: 视口坐标
//   - viewportW, viewportH: 视口尺寸
//   - cols, rows: 可用于绘制的终端列数与行数
//
// 返回：
//   - col, row: 单元格坐标
//   - ok: 是否落在网格内（出生在视口外、尚未进入的敌人返回 false）
func Project(x, y, viewportW, viewportH float64, cols, rows int) (col, row int, ok bool) {
	if viewportW <= 0 || viewportH <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	col = int(math.Floor(x / viewportW * float64(cols)))
	row = int(math.Floor(y / viewportH * float64(rows)))
	if row >= rows {
		row = rows - 1
	}
	if col < 0 || col >= cols || row < 0 {
		return col, row, false
	}
	return col, row, true
}

// RoleGlyph 返回角色的字符
// 朝向影响步兵与精英的字符：向右移动为 '>'/'»'，向左为 '<'/'«'
func RoleGlyph(role types.EnemyRole, side types.Direction) rune {
	movingRight := side == types.DirectionLeft
	switch role {
	case types.RoleVehicle:
		return '█'
	case types.RoleElite:
		if movingRight {
			return '»'
		}
		return '«'
	default:
		if movingRight {
			return '>'
		}
		return '<'
	}
}

// RoleStyle 返回角色的显示样式（与桌面端占位颜色一致）
func RoleStyle(role types.EnemyRole) tcell.Style {
	c := utils.RoleTint(role)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// Viewer 终端渲染器
type Viewer struct {
	screen tcell.Screen
}

// New 创建终端渲染器
func New(screen tcell.Screen) *Viewer {
	return &Viewer{screen: screen}
}

// Draw 绘制一帧
//
// 只读取模拟的快照，必须在模拟 goroutine 上调用。
func (v *Viewer) Draw(sim *game.Simulation) {
	v.screen.Clear()

	cols, rows := v.screen.Size()
	fieldRows := rows - statusRows
	cfg := sim.Config()

	// 启动延迟未结束的敌人以暗色显示
	for _, e := range sim.Enemies() {
		col, row, ok := Project(e.X, e.Y, cfg.ViewportWidth, cfg.ViewportHeight, cols, fieldRows)
		if !ok {
			continue
		}
		style := RoleStyle(e.Role)
		if !e.Moving {
			style = style.Dim(true)
		}
		v.screen.SetContent(col, row, RoleGlyph(e.Role, e.Side), nil, style)
	}

	d := sim.Diagnostics()
	status := fmt.Sprintf(" wave %d | enemies %d | vehicles %d | side %s | %s | s: side  q: quit",
		sim.WaveNumber(), d.Total, d.Vehicles, cfg.SpawnSide, sim.StatusMessage())
	v.drawText(0, rows-1, status, tcell.StyleDefault.Reverse(true))

	v.screen.Show()
}

// drawText 在指定行绘制文本（超出宽度的部分被截断）
func (v *Viewer) drawText(x, y int, text string, style tcell.Style) {
	cols, _ := v.screen.Size()
	for _, r := range text {
		if x >= cols {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
