package systems

import (
	"image/color"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/BIBOKING-forever/Sprites/internal/catalog"
	"github.com/BIBOKING-forever/Sprites/pkg/components"
	"github.com/BIBOKING-forever/Sprites/pkg/ecs"
	"github.com/BIBOKING-forever/Sprites/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

// 占位矩形尺寸（缩放前，像素）
const (
	PlaceholderWidth  = 32.0
	PlaceholderHeight = 48.0
)

// AnchorBottomCenter 计算底部居中锚点下图像左上角的位置
//
// 参数：
//   - x, y: 锚点（脚底中心）
//   - width, height: 缩放后的图像尺寸
func AnchorBottomCenter(x, y, width, height float64) (left, top float64) {
	return x - width/2, y - height
}

// LocalMediaPath 将媒体引用转换为本地文件路径
// 仅接受 file:// URL 与普通路径，http(s) 等远程引用返回 false
func LocalMediaPath(ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	if strings.HasPrefix(ref, "file://") {
		u, err := url.Parse(ref)
		if err != nil || u.Path == "" {
			return "", false
		}
		return u.Path, true
	}
	if strings.Contains(ref, "://") {
		return "", false
	}
	return ref, true
}

// EnemyRenderSystem 敌人渲染系统
//
// 每帧按创建顺序绘制所有敌人：底部居中锚定在 (x, y)，按 Scale 缩放。
// 媒体引用指向本地图像时绘制图像（首帧加载并缓存），
// 否则绘制按角色着色的占位矩形。渲染只读取组件，不修改任何状态。
type EnemyRenderSystem struct {
	entityManager *ecs.EntityManager

	// images 按媒体引用缓存的图像，nil 表示加载失败（不再重试）
	images map[string]*ebiten.Image
}

// NewEnemyRenderSystem 创建敌人渲染系统
func NewEnemyRenderSystem(em *ecs.EntityManager) *EnemyRenderSystem {
	return &EnemyRenderSystem{
		entityManager: em,
		images:        make(map[string]*ebiten.Image),
	}
}

// Draw 绘制所有敌人
func (s *EnemyRenderSystem) Draw(screen *ebiten.Image) {
	for _, id := range EnemyIDs(s.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		role, _ := ecs.GetComponent[*components.EnemyRoleComponent](s.entityManager, id)

		scale := 1.0
		if sc, ok := ecs.GetComponent[*components.ScaleComponent](s.entityManager, id); ok {
			scale = sc.Scale
		}

		if img := s.imageFor(sprite.Descriptor); img != nil {
			s.drawImage(screen, img, pos.X, pos.Y, scale)
			continue
		}
		s.drawPlaceholder(screen, pos.X, pos.Y, scale, utils.RoleTint(role.Role))
	}
}

// drawImage 绘制缩放后的图像
func (s *EnemyRenderSystem) drawImage(screen, img *ebiten.Image, x, y, scale float64) {
	bounds := img.Bounds()
	w := float64(bounds.Dx()) * scale
	h := float64(bounds.Dy()) * scale
	left, top := AnchorBottomCenter(x, y, w, h)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(left, top)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// drawPlaceholder 绘制占位矩形和脚底标记
func (s *EnemyRenderSystem) drawPlaceholder(screen *ebiten.Image, x, y, scale float64, tint color.RGBA) {
	w := PlaceholderWidth * scale
	h := PlaceholderHeight * scale
	left, top := AnchorBottomCenter(x, y, w, h)

	vector.DrawFilledRect(screen, float32(left), float32(top), float32(w), float32(h), tint, true)
	vector.StrokeLine(screen, float32(left), float32(y), float32(left+w), float32(y), 2, colornames.Black, true)
}

// imageFor 获取精灵对应的图像（带缓存）
func (s *EnemyRenderSystem) imageFor(desc catalog.SpriteDescriptor) *ebiten.Image {
	if !desc.HasMedia() {
		return nil
	}
	if img, cached := s.images[desc.MediaRef]; cached {
		return img
	}

	var img *ebiten.Image
	if path, ok := LocalMediaPath(desc.MediaRef); ok {
		if _, err := os.Stat(path); err == nil {
			loaded, _, err := ebitenutil.NewImageFromFile(path)
			if err != nil {
				log.Printf("[EnemyRenderSystem] Warning: Failed to load %s: %v", path, err)
			} else {
				img = loaded
			}
		}
	}
	s.images[desc.MediaRef] = img
	return img
}
