package systems

import (
	"github.com/BIBOKING-forever/Sprites/internal/catalog"
	"github.com/BIBOKING-forever/Sprites/pkg/components"
	"github.com/BIBOKING-forever/Sprites/pkg/ecs"
)

// scriptedRandom 按脚本顺序返回随机值的 RandomSource
// 脚本耗尽后 Float64 返回 0.5，Intn 返回 0
type scriptedRandom struct {
	floats []float64
	ints   []int
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRandom) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

// newTestCatalog 根据名称列表创建测试目录（全部为 Animated）
func newTestCatalog(names ...string) *catalog.Catalog {
	cat := &catalog.Catalog{TotalSprites: len(names)}
	for _, name := range names {
		cat.Sprites = append(cat.Sprites, catalog.SpriteDescriptor{Name: name, Kind: catalog.KindAnimated})
	}
	return cat
}

// fullRoleCatalog 包含三种角色的测试目录
func fullRoleCatalog() *catalog.Catalog {
	return newTestCatalog(
		"GRUNT-WALKING-LEFT", "GRUNT-WALKING-RIGHT",
		"ELITE-RUNNING-LEFT", "ELITE-RUNNING-RIGHT",
		"TANK-WALKING-LEFT", "TANK-WALKING-RIGHT",
	)
}

// addTestEnemy 直接创建一个带运动组件的敌人
func addTestEnemy(em *ecs.EntityManager, x, speed, delayMs, createdAtMs float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: 600})
	ecs.AddComponent(em, id, &components.SpeedComponent{Speed: speed})
	ecs.AddComponent(em, id, &components.SpawnDelayComponent{DelayMs: delayMs, CreatedAtMs: createdAtMs, SpawnX: x})
	return id
}

// positionX 读取实体的 X 坐标
func positionX(em *ecs.EntityManager, id ecs.EntityID) (float64, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return 0, false
	}
	return pos.X, true
}
