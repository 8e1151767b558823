package systems

import (
	"log"

	"github.com/BIBOKING-forever/Sprites/internal/catalog"
	"github.com/BIBOKING-forever/Sprites/pkg/config"
	"github.com/BIBOKING-forever/Sprites/pkg/ecs"
	"github.com/BIBOKING-forever/Sprites/pkg/entities"
	"github.com/BIBOKING-forever/Sprites/pkg/types"
	"github.com/BIBOKING-forever/Sprites/pkg/utils"
)

// 波次布局常量
const (
	// SpawnEdgeMargin 出生点距视口边缘的距离（像素）
	SpawnEdgeMargin = 200.0

	// EliteScaleFactor 精英相对默认缩放的倍数
	EliteScaleFactor = 1.2

	// VehicleEscortSpacingFactor 载具之后第一个护卫的间距倍数
	VehicleEscortSpacingFactor = 2.0
	// VehicleEscortDelayStepMs 护卫启动延迟步长
	VehicleEscortDelayStepMs = 200.0

	// EliteSpacingFactor 精英之间的间距倍数
	EliteSpacingFactor = 1.5
	// EliteDelayStepMs 精英启动延迟步长
	EliteDelayStepMs = 300.0

	// FormationThreshold 第二次抛硬币大于该值时步兵波采用队形（约 70%）
	FormationThreshold = 0.3
	// FormationDelayStepMs 队形启动延迟步长
	FormationDelayStepMs = 100.0

	// ScatterJitterY 散兵垂直抖动范围（±）
	ScatterJitterY = 15.0
	// ScatterMaxDelayMs 散兵最大随机延迟
	ScatterMaxDelayMs = 500.0
	// ScatterSpacingMin / ScatterSpacingMax 散兵间距倍数范围
	ScatterSpacingMin = 0.5
	ScatterSpacingMax = 1.5
)

// WaveKind 波次构成类型
type WaveKind int

const (
	WaveInfantry WaveKind = iota
	WaveElite
	WaveVehicle
)

// String 返回波次类型名称
func (k WaveKind) String() string {
	switch k {
	case WaveVehicle:
		return "vehicle"
	case WaveElite:
		return "elite"
	default:
		return "infantry"
	}
}

// WaveKindWeights 波次构成的权重表
//
// 按顺序检查：载具 10%，精英 20%，其余为步兵。
// 所需精灵池为空的类型被跳过，其区间由后续类型承接，最终回落到步兵。
var WaveKindWeights = []utils.WeightedEntry[WaveKind]{
	{Value: WaveVehicle, Weight: 0.10},
	{Value: WaveElite, Weight: 0.20},
	{Value: WaveInfantry, Weight: 0.70},
}

// WaveResult 一次波次生成的结果
type WaveResult struct {
	Kind      WaveKind
	Direction types.Direction
	Spawned   []ecs.EntityID
}

// WaveComposeSystem 波次生成系统
//
// 职责：
//   - 每次波次事件时掷骰决定波次构成（载具护卫 / 精英小队 / 步兵群）
//   - 计算每个敌人的位置、缩放、速度与启动延迟
//   - 通过朝向解析选择正确朝向的精灵
//   - 将新敌人追加到实体管理器（已有敌人不受影响）
//
// 所有随机性来自注入的 RandomSource。
type WaveComposeSystem struct {
	entityManager *ecs.EntityManager
	config        *config.WaveConfig
	catalog       *catalog.Catalog
	groups        RoleGroups
	rng           utils.RandomSource

	// waveNumber 已生成的波次数
	waveNumber int
}

// NewWaveComposeSystem 创建波次生成系统
//
// 参数：
//   - em: 实体管理器
//   - cfg: 波次配置
//   - rng: 随机数来源（测试中可注入可控实现）
func NewWaveComposeSystem(em *ecs.EntityManager, cfg *config.WaveConfig, rng utils.RandomSource) *WaveComposeSystem {
	if cfg == nil {
		cfg = config.DefaultWaveConfig()
	}
	if rng == nil {
		rng = utils.NewPRNG(0)
	}
	return &WaveComposeSystem{
		entityManager: em,
		config:        cfg,
		rng:           rng,
	}
}

// SetCatalog 替换目录快照并重新划分角色池
func (s *WaveComposeSystem) SetCatalog(cat *catalog.Catalog) {
	s.catalog = cat
	s.groups = ClassifyCatalog(cat)
	log.Printf("[WaveComposeSystem] Catalog set: infantry=%d, elite=%d, vehicle=%d",
		len(s.groups.Infantry), len(s.groups.Elite), len(s.groups.Vehicle))
}

// SetConfig 替换波次配置
func (s *WaveComposeSystem) SetConfig(cfg *config.WaveConfig) {
	if cfg != nil {
		s.config = cfg
	}
}

// Groups 返回当前角色池
func (s *WaveComposeSystem) Groups() RoleGroups {
	return s.groups
}

// WaveNumber 返回已生成的波次数
func (s *WaveComposeSystem) WaveNumber() int {
	return s.waveNumber
}

// ChooseWaveKind 根据掷骰值和当前角色池选择波次类型
func (s *WaveComposeSystem) ChooseWaveKind(roll float64) WaveKind {
	eligible := func(k WaveKind) bool {
		switch k {
		case WaveVehicle:
			return len(s.groups.Vehicle) > 0
		case WaveElite:
			return len(s.groups.Elite) > 0
		default:
			return true
		}
	}
	return utils.ChooseWeighted(WaveKindWeights, roll, eligible, WaveInfantry)
}

// ComposeWave 生成一波敌人
//
// 步兵池为空时不生成任何敌人。
//
// 参数：
//   - nowMs: 当前模拟时钟（毫秒），作为敌人启动延迟的起点
//
// 返回：
//   - WaveResult: 波次类型、方向与新建实体
func (s *WaveComposeSystem) ComposeWave(nowMs float64) WaveResult {
	if len(s.groups.Infantry) == 0 {
		log.Printf("[WaveComposeSystem] No infantry sprites, skipping wave")
		return WaveResult{}
	}

	dir := s.pickDirection()
	kind := s.ChooseWaveKind(s.rng.Float64())
	s.waveNumber++

	var spawns []entities.EnemySpawn
	switch kind {
	case WaveVehicle:
		spawns = s.planVehicleWave(dir)
	case WaveElite:
		spawns = s.planEliteWave(dir)
	default:
		spawns = s.planInfantryWave(dir)
	}

	result := WaveResult{Kind: kind, Direction: dir, Spawned: make([]ecs.EntityID, 0, len(spawns))}
	for _, spawn := range spawns {
		spawn.Wave = s.waveNumber
		id, err := entities.NewEnemyEntity(s.entityManager, spawn, nowMs)
		if err != nil {
			log.Printf("[WaveComposeSystem] Warning: Failed to spawn enemy: %v", err)
			continue
		}
		result.Spawned = append(result.Spawned, id)
	}

	log.Printf("[WaveComposeSystem] Wave %d: kind=%s, direction=%s, spawned=%d",
		s.waveNumber, kind, dir, len(result.Spawned))
	return result
}

// pickDirection 选择波次方向
func (s *WaveComposeSystem) pickDirection() types.Direction {
	switch s.config.SpawnSide {
	case types.SpawnLeft:
		return types.DirectionLeft
	case types.SpawnRight:
		return types.DirectionRight
	default:
		if s.rng.Float64() < 0.5 {
			return types.DirectionLeft
		}
		return types.DirectionRight
	}
}

// planVehicleWave 载具波：1 辆载具 + 2~3 名护卫步兵
func (s *WaveComposeSystem) planVehicleWave(dir types.Direction) []entities.EnemySpawn {
	cfg := s.config
	spawns := make([]entities.EnemySpawn, 0, 4)

	// 载具始终以最低速度移动
	offset := 0.0
	spawns = append(spawns, entities.EnemySpawn{
		Role:   types.RoleVehicle,
		Sprite: s.pickSprite(types.RoleVehicle, dir),
		X:      s.spawnX(dir, offset),
		Y:      s.groundY(0),
		Scale:  cfg.VehicleScale,
		Speed:  cfg.MinSpeed,
	})
	offset += VehicleEscortSpacingFactor * cfg.FormationSpacing

	escorts := 2 + s.rng.Intn(2)
	for i := 0; i < escorts; i++ {
		spawns = append(spawns, entities.EnemySpawn{
			Role:    types.RoleInfantry,
			Sprite:  s.pickSprite(types.RoleInfantry, dir),
			X:       s.spawnX(dir, offset),
			Y:       s.groundY(0),
			Scale:   cfg.DefaultScale,
			Speed:   s.randomSpeed(),
			DelayMs: float64(i) * VehicleEscortDelayStepMs,
		})
		offset += cfg.FormationSpacing
	}
	return spawns
}

// planEliteWave 精英波：1~2 名精英
func (s *WaveComposeSystem) planEliteWave(dir types.Direction) []entities.EnemySpawn {
	cfg := s.config
	count := 1 + s.rng.Intn(2)
	spawns := make([]entities.EnemySpawn, 0, count)

	offset := 0.0
	for i := 0; i < count; i++ {
		spawns = append(spawns, entities.EnemySpawn{
			Role:    types.RoleElite,
			Sprite:  s.pickSprite(types.RoleElite, dir),
			X:       s.spawnX(dir, offset),
			Y:       s.groundY(0),
			Scale:   cfg.DefaultScale * EliteScaleFactor,
			Speed:   s.randomSpeed(),
			DelayMs: float64(i) * EliteDelayStepMs,
		})
		offset += EliteSpacingFactor * cfg.FormationSpacing
	}
	return spawns
}

// planInfantryWave 步兵波：3~6 名步兵，约 70% 概率采用队形
func (s *WaveComposeSystem) planInfantryWave(dir types.Direction) []entities.EnemySpawn {
	cfg := s.config
	count := 3 + s.rng.Intn(4)
	formation := s.rng.Float64() > FormationThreshold
	spawns := make([]entities.EnemySpawn, 0, count)

	offset := 0.0
	for i := 0; i < count; i++ {
		spawn := entities.EnemySpawn{
			Role:   types.RoleInfantry,
			Sprite: s.pickSprite(types.RoleInfantry, dir),
			Scale:  cfg.DefaultScale,
			Speed:  s.randomSpeed(),
		}

		if formation {
			// 队形：共享垂直位置，等间距，规律延迟
			spawn.X = s.spawnX(dir, offset)
			spawn.Y = s.groundY(0)
			spawn.DelayMs = float64(i) * FormationDelayStepMs
			offset += cfg.FormationSpacing
		} else {
			// 散兵：随机垂直抖动、随机延迟、随机间距
			spawn.X = s.spawnX(dir, offset)
			spawn.Y = s.groundY(utils.RandRange(s.rng, -ScatterJitterY, ScatterJitterY))
			spawn.DelayMs = s.rng.Float64() * ScatterMaxDelayMs
			offset += cfg.FormationSpacing * utils.RandRange(s.rng, ScatterSpacingMin, ScatterSpacingMax)
		}

		spawns = append(spawns, spawn)
	}
	return spawns
}

// pickSprite 从角色池中随机选取精灵并解析为指定方向的朝向变体
// 角色池为空时使用步兵池
func (s *WaveComposeSystem) pickSprite(role types.EnemyRole, dir types.Direction) catalog.SpriteDescriptor {
	pool := s.groups.Pool(role)
	if len(pool) == 0 {
		pool = s.groups.Infantry
	}
	candidate := pool[s.rng.Intn(len(pool))]
	return ResolveDirectionalSprite(s.catalog, candidate, dir)
}

// randomSpeed 返回 [MinSpeed, MaxSpeed) 内的随机速度
func (s *WaveComposeSystem) randomSpeed() float64 {
	return utils.RandRange(s.rng, s.config.MinSpeed, s.config.MaxSpeed)
}

// spawnX 计算出生 X 坐标
//
// 右侧出生：从 视口宽度+200 开始，偏移量向视口方向递减；
// 左侧出生：从 -200 开始，偏移量向视口方向递增。
func (s *WaveComposeSystem) spawnX(dir types.Direction, offset float64) float64 {
	if dir == types.DirectionRight {
		return s.config.ViewportWidth + SpawnEdgeMargin - offset
	}
	return -SpawnEdgeMargin + offset
}

// groundY 计算地面 Y 坐标（容器高度 - 地面偏移 + 抖动）
func (s *WaveComposeSystem) groundY(jitter float64) float64 {
	return s.config.ViewportHeight - s.config.GroundOffset + jitter
}
