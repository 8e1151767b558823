package systems

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/BIBOKING-forever/Sprites/internal/catalog"
	"github.com/BIBOKING-forever/Sprites/pkg/components"
	"github.com/BIBOKING-forever/Sprites/pkg/ecs"
	"github.com/BIBOKING-forever/Sprites/pkg/types"
)

func TestAnchorBottomCenter(t *testing.T) {
	left, top := AnchorBottomCenter(100, 680, 32, 48)
	if left != 84 || top != 632 {
		t.Errorf("AnchorBottomCenter = (%v, %v), want (84, 632)", left, top)
	}

	// 缩放后宽高变化，脚底中心不变
	left, top = AnchorBottomCenter(100, 680, 64, 96)
	if left+32 != 100 || top+96 != 680 {
		t.Errorf("Scaled anchor moved: (%v, %v)", left, top)
	}
}

func TestLocalMediaPath(t *testing.T) {
	tests := []struct {
		ref    string
		want   string
		wantOK bool
	}{
		{"", "", false},
		{"assets/grunt.png", "assets/grunt.png", true},
		{"/abs/grunt.png", "/abs/grunt.png", true},
		{"file:///tmp/grunt.png", "/tmp/grunt.png", true},
		{"https://cdn.example.com/grunt.png", "", false},
		{"http://example.com/a.png", "", false},
	}
	for _, tt := range tests {
		got, ok := LocalMediaPath(tt.ref)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("LocalMediaPath(%q) = (%q, %v), want (%q, %v)", tt.ref, got, ok, tt.want, tt.wantOK)
		}
	}
}

// TestEnemyRenderSystem_MissingMediaCached 加载失败的媒体只尝试一次
func TestEnemyRenderSystem_MissingMediaCached(t *testing.T) {
	sys := NewEnemyRenderSystem(ecs.NewEntityManager())
	desc := catalog.SpriteDescriptor{
		Name:     "GRUNT-WALKING-LEFT",
		Kind:     catalog.KindAnimated,
		MediaRef: filepath.Join(t.TempDir(), "missing.png"),
	}

	if img := sys.imageFor(desc); img != nil {
		t.Fatal("Missing media should fall back to the placeholder")
	}
	if _, cached := sys.images[desc.MediaRef]; !cached {
		t.Error("Failed lookup should be cached")
	}

	remote := catalog.SpriteDescriptor{Name: "X-WALKING-LEFT", MediaRef: "https://example.com/x.png"}
	if img := sys.imageFor(remote); img != nil {
		t.Error("Remote media should use the placeholder")
	}
	if img := sys.imageFor(catalog.SpriteDescriptor{Name: "Y-WALKING-LEFT"}); img != nil {
		t.Error("Absent media should use the placeholder")
	}
}

func TestDebugOverlaySystem_Text(t *testing.T) {
	em := ecs.NewEntityManager()
	for _, role := range []types.EnemyRole{types.RoleInfantry, types.RoleVehicle, types.RoleInfantry} {
		id := addTestEnemy(em, 0, 1, 0, 0)
		ecs.AddComponent(em, id, &components.SpriteComponent{Descriptor: catalog.SpriteDescriptor{Name: "GRUNT-WALKING-LEFT"}})
		ecs.AddComponent(em, id, &components.EnemyRoleComponent{Role: role})
	}

	overlay := NewDebugOverlaySystem(em, false)
	if overlay.Enabled() {
		t.Error("Overlay should start disabled")
	}
	overlay.SetEnabled(true)

	text := overlay.Text("running")
	if !strings.Contains(text, "enemies: 3") || !strings.Contains(text, "vehicles: 1") || !strings.HasSuffix(text, "running") {
		t.Errorf("Unexpected overlay text: %q", text)
	}

	total, vehicles := CountEnemies(em)
	if total != 3 || vehicles != 1 {
		t.Errorf("CountEnemies = (%d, %d), want (3, 1)", total, vehicles)
	}
}
