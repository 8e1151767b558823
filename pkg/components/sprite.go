package components

import "github.com/BIBOKING-forever/Sprites/internal/catalog"

// SpriteComponent 存储实体使用的精灵描述
// 描述来自创建时的目录快照，目录重新加载后不做回溯修正
type SpriteComponent struct {
	Descriptor catalog.SpriteDescriptor
}
