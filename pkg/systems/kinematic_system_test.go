package systems

import (
	"math"
	"testing"

	"github.com/BIBOKING-forever/Sprites/pkg/ecs"
)

func TestHeadingSign(t *testing.T) {
	tests := []struct {
		spawnX float64
		width  float64
		want   float64
	}{
		{-200, 1000, 1},
		{499, 1000, 1},
		{500, 1000, -1},
		{1200, 1000, -1},
	}
	for _, tt := range tests {
		if got := HeadingSign(tt.spawnX, tt.width); got != tt.want {
			t.Errorf("HeadingSign(%v, %v) = %v, want %v", tt.spawnX, tt.width, got, tt.want)
		}
	}
}

// TestKinematicSystem_Convergence 测试两侧出生的敌人都向视口中心移动
func TestKinematicSystem_Convergence(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewKinematicSystem(em, 1000)

	left := addTestEnemy(em, -200, 2, 0, 0)
	right := addTestEnemy(em, 1200, 2, 0, 0)

	sys.Update(16)

	if x, _ := positionX(em, left); x != -198 {
		t.Errorf("Left-spawned enemy x = %v, want -198", x)
	}
	if x, _ := positionX(em, right); x != 1198 {
		t.Errorf("Right-spawned enemy x = %v, want 1198", x)
	}

	// 多个 tick 后双方都应越来越接近中心
	prevLeft, prevRight := -198.0, 1198.0
	for i := 0; i < 50; i++ {
		sys.Update(float64(32 + i*16))
		l, _ := positionX(em, left)
		r, _ := positionX(em, right)
		if math.Abs(l-500) >= math.Abs(prevLeft-500) || math.Abs(r-500) >= math.Abs(prevRight-500) {
			t.Fatalf("tick %d: enemies not converging (left %v, right %v)", i, l, r)
		}
		prevLeft, prevRight = l, r
	}
}

// TestKinematicSystem_DirectionFixedAfterCrossingCentre 测试越过中线后方向不变
func TestKinematicSystem_DirectionFixedAfterCrossingCentre(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewKinematicSystem(em, 1000)
	id := addTestEnemy(em, 490, 20, 0, 0)

	sys.Update(16)
	sys.Update(32)
	if x, _ := positionX(em, id); x != 530 {
		t.Errorf("Expected enemy to keep moving right past centre, x = %v", x)
	}
}

// TestKinematicSystem_DelayGating 测试启动延迟期间敌人保持静止
func TestKinematicSystem_DelayGating(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewKinematicSystem(em, 1000)
	id := addTestEnemy(em, -200, 2, 500, 0)

	sys.Update(100)
	if x, _ := positionX(em, id); x != -200 {
		t.Errorf("At 100ms: x = %v, want -200", x)
	}
	sys.Update(400)
	if x, _ := positionX(em, id); x != -200 {
		t.Errorf("At 400ms: x = %v, want -200", x)
	}
	sys.Update(600)
	if x, _ := positionX(em, id); x != -198 {
		t.Errorf("At 600ms: x = %v, want -198", x)
	}
}

// TestKinematicSystem_Culling 测试保留区间边界
func TestKinematicSystem_Culling(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewKinematicSystem(em, 1000)

	// 启动延迟很长，确保本 tick 不移动
	outside := addTestEnemy(em, 1301, 2, 1e9, 0)
	inside := addTestEnemy(em, 1299, 2, 1e9, 0)
	farLeft := addTestEnemy(em, -301, 2, 1e9, 0)
	edgeLeft := addTestEnemy(em, -300, 2, 1e9, 0)

	culled := sys.Update(16)

	if culled != 2 {
		t.Errorf("Expected 2 culled, got %d", culled)
	}
	if em.IsAlive(outside) || em.IsAlive(farLeft) {
		t.Error("Enemies outside the retention window should be removed")
	}
	if !em.IsAlive(inside) || !em.IsAlive(edgeLeft) {
		t.Error("Enemies inside the retention window should be kept")
	}
}

// TestKinematicSystem_CullAfterCrossing 测试穿越视口后离开保留区间被移除
func TestKinematicSystem_CullAfterCrossing(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewKinematicSystem(em, 1000)
	id := addTestEnemy(em, -200, 100, 0, 0)

	for i := 1; i <= 20 && em.IsAlive(id); i++ {
		sys.Update(float64(i * 16))
	}
	if em.IsAlive(id) {
		t.Error("Enemy should be culled after leaving the right retention edge")
	}
}
