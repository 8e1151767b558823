package systems

import (
	"strings"

	"github.com/BIBOKING-forever/Sprites/internal/catalog"
	"github.com/BIBOKING-forever/Sprites/pkg/types"
)

// FacingSuffixFor 返回指定方向应使用的朝向后缀
//
// 方向与朝向后缀反向配对：DirectionLeft 使用 "-RIGHT" 素材，
// DirectionRight 使用 "-LEFT" 素材。这是与目录素材命名的固定约定。
func FacingSuffixFor(dir types.Direction) string {
	if dir == types.DirectionLeft {
		return catalog.SuffixRight
	}
	return catalog.SuffixLeft
}

// ResolveDirectionalSprite 查找候选精灵在指定方向下的朝向变体
//
// 将候选名称中最后一个朝向后缀替换为 FacingSuffixFor(dir)，
// 在目录中按名称精确查找。名称不含朝向后缀或目录中没有对应变体时
// 原样返回候选精灵（朝向可能不正确，但波次继续）。
func ResolveDirectionalSprite(cat *catalog.Catalog, candidate catalog.SpriteDescriptor, dir types.Direction) catalog.SpriteDescriptor {
	wanted, ok := swapFacingSuffix(candidate.Name, FacingSuffixFor(dir))
	if !ok || wanted == candidate.Name {
		return candidate
	}
	if resolved, found := cat.Lookup(wanted); found {
		return resolved
	}
	return candidate
}

// swapFacingSuffix 替换名称中最后出现的 -LEFT / -RIGHT（大小写不敏感）
func swapFacingSuffix(name, suffix string) (string, bool) {
	upper := strings.ToUpper(name)
	left := strings.LastIndex(upper, catalog.SuffixLeft)
	right := strings.LastIndex(upper, catalog.SuffixRight)

	idx, length := left, len(catalog.SuffixLeft)
	if right > left {
		idx, length = right, len(catalog.SuffixRight)
	}
	if idx < 0 {
		return name, false
	}
	return name[:idx] + suffix + name[idx+length:], true
}
