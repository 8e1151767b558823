package systems

import (
	"fmt"

	"github.com/BIBOKING-forever/Sprites/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DebugOverlaySystem 调试覆盖层
// 显示存活敌人总数、载具数量以及调用方提供的状态文本
type DebugOverlaySystem struct {
	entityManager *ecs.EntityManager
	enabled       bool
}

// NewDebugOverlaySystem 创建调试覆盖层
func NewDebugOverlaySystem(em *ecs.EntityManager, enabled bool) *DebugOverlaySystem {
	return &DebugOverlaySystem{
		entityManager: em,
		enabled:       enabled,
	}
}

// SetEnabled 设置是否显示
func (s *DebugOverlaySystem) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Enabled 是否显示
func (s *DebugOverlaySystem) Enabled() bool {
	return s.enabled
}

// Text 返回覆盖层文本
func (s *DebugOverlaySystem) Text(status string) string {
	total, vehicles := CountEnemies(s.entityManager)
	text := fmt.Sprintf("enemies: %d\nvehicles: %d", total, vehicles)
	if status != "" {
		text += "\n" + status
	}
	return text
}

// Draw 绘制覆盖层（未启用时不绘制）
func (s *DebugOverlaySystem) Draw(screen *ebiten.Image, status string) {
	if !s.enabled {
		return
	}
	ebitenutil.DebugPrintAt(screen, s.Text(status), 10, 10)
}
