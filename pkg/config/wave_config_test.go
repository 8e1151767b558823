package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BIBOKING-forever/Sprites/pkg/types"
)

func TestDefaultWaveConfigIsValid(t *testing.T) {
	cfg := DefaultWaveConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.SpawnSide != types.SpawnBoth {
		t.Errorf("default SpawnSide = %v, want both", cfg.SpawnSide)
	}
}

func TestLoadWaveConfig(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("加载有效配置文件", func(t *testing.T) {
		content := `
catalogLocation: https://cdn.example/catalog.json
waveIntervalMs: 5000
minSpeed: 2
maxSpeed: 4
spawnSide: right
formationSpacing: 60
debugOverlay: true
`
		path := filepath.Join(tempDir, "valid.yaml")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write test config: %v", err)
		}

		cfg, err := LoadWaveConfig(path)
		if err != nil {
			t.Fatalf("LoadWaveConfig failed: %v", err)
		}

		if cfg.CatalogLocation != "https://cdn.example/catalog.json" {
			t.Errorf("CatalogLocation = %q", cfg.CatalogLocation)
		}
		if cfg.WaveIntervalMs != 5000 || cfg.MinSpeed != 2 || cfg.MaxSpeed != 4 {
			t.Errorf("unexpected interval/speed: %+v", cfg)
		}
		if cfg.SpawnSide != types.SpawnRight {
			t.Errorf("SpawnSide = %v, want right", cfg.SpawnSide)
		}
		if !cfg.DebugOverlay {
			t.Error("DebugOverlay should be true")
		}

		// 未出现的字段保留默认值
		def := DefaultWaveConfig()
		if cfg.VehicleScale != def.VehicleScale || cfg.ViewportWidth != def.ViewportWidth {
			t.Errorf("missing fields should keep defaults: %+v", cfg)
		}
	})

	t.Run("文件不存在", func(t *testing.T) {
		if _, err := LoadWaveConfig(filepath.Join(tempDir, "missing.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("间隔越界", func(t *testing.T) {
		path := filepath.Join(tempDir, "interval.yaml")
		if err := os.WriteFile(path, []byte("waveIntervalMs: 10\n"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadWaveConfig(path)
		if err == nil || !strings.Contains(err.Error(), "waveIntervalMs") {
			t.Errorf("expected waveIntervalMs error, got %v", err)
		}
	})

	t.Run("未知出生侧", func(t *testing.T) {
		if _, err := ParseWaveConfig([]byte("spawnSide: up\n")); err == nil {
			t.Error("expected error for unknown spawn side")
		}
	})
}

func TestValidate_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WaveConfig)
		ok     bool
	}{
		{"min above max is allowed", func(c *WaveConfig) { c.MinSpeed, c.MaxSpeed = 5, 2 }, true},
		{"speed too high", func(c *WaveConfig) { c.MaxSpeed = 100 }, false},
		{"scale zero", func(c *WaveConfig) { c.DefaultScale = 0 }, false},
		{"vehicle scale too big", func(c *WaveConfig) { c.VehicleScale = 9 }, false},
		{"negative ground offset", func(c *WaveConfig) { c.GroundOffset = -1 }, false},
		{"spacing too small", func(c *WaveConfig) { c.FormationSpacing = 1 }, false},
		{"zero viewport", func(c *WaveConfig) { c.ViewportWidth = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultWaveConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestCloneAndCompare(t *testing.T) {
	a := DefaultWaveConfig()
	b := a.Clone()
	if !a.Equal(b) {
		t.Fatal("clone should be equal")
	}

	b.MaxSpeed = 3
	if a.Equal(b) {
		t.Error("configs differ after mutation")
	}
	if a.CatalogChanged(b) {
		t.Error("catalog location unchanged")
	}

	b.CatalogLocation = "other.json"
	if !a.CatalogChanged(b) {
		t.Error("catalog location changed")
	}
	if !a.CatalogChanged(nil) {
		t.Error("nil config counts as a catalog change")
	}
}

func TestLoadWaveConfig_RelativeCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wave.yaml")
	if err := os.WriteFile(path, []byte("catalogLocation: sprites/catalog.json\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWaveConfig(path)
	if err != nil {
		t.Fatalf("LoadWaveConfig failed: %v", err)
	}
	want := filepath.Join(dir, "sprites", "catalog.json")
	if cfg.CatalogLocation != want {
		t.Errorf("CatalogLocation = %q, want %q", cfg.CatalogLocation, want)
	}

	// 未指定目录位置时使用默认值，不做解析
	if err := os.WriteFile(path, []byte("waveIntervalMs: 3000\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadWaveConfig(path)
	if err != nil {
		t.Fatalf("LoadWaveConfig failed: %v", err)
	}
	if cfg.CatalogLocation != DefaultWaveConfig().CatalogLocation {
		t.Errorf("CatalogLocation = %q, want default", cfg.CatalogLocation)
	}
}

func TestResolveCatalogLocation(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "etc", "waves")
	abs := filepath.Join(string(filepath.Separator), "srv", "catalog.json")

	tests := []struct {
		name     string
		location string
		want     string
	}{
		{"relative path", "catalog.json", filepath.Join(base, "catalog.json")},
		{"parent path", "../catalog.json", filepath.Join(string(filepath.Separator), "etc", "catalog.json")},
		{"absolute path", abs, abs},
		{"http url", "http://cdn.example/catalog.json", "http://cdn.example/catalog.json"},
		{"https url", "https://cdn.example/catalog.json", "https://cdn.example/catalog.json"},
		{"file url", "file:///srv/catalog.json", "file:///srv/catalog.json"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveCatalogLocation(tt.location, base); got != tt.want {
				t.Errorf("ResolveCatalogLocation(%q) = %q, want %q", tt.location, got, tt.want)
			}
		})
	}
}

func TestWithCatalogLocation(t *testing.T) {
	cfg := DefaultWaveConfig()

	overridden := cfg.WithCatalogLocation("https://cdn.example/override.json")
	if overridden.CatalogLocation != "https://cdn.example/override.json" {
		t.Errorf("CatalogLocation = %q", overridden.CatalogLocation)
	}
	if cfg.CatalogLocation == overridden.CatalogLocation {
		t.Error("WithCatalogLocation must not modify the receiver")
	}

	kept := cfg.WithCatalogLocation("")
	if !kept.Equal(cfg) || kept == cfg {
		t.Error("Empty override should return an equal copy")
	}
}
