package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Parse decodes a catalog document of the form
//
//	{ "sprites": [{"name": ..., "type": ..., "mediaRef": ...}], "totalSprites": N, "generated": ... }
//
// Entries without a name are skipped. "generated" may be an RFC 3339 string or a
// Unix timestamp in milliseconds; anything else leaves Generated as the zero time.
// totalSprites falls back to the number of parsed entries when absent.
func Parse(data []byte) (*Catalog, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrCatalogMalformed)
	}

	root := gjson.ParseBytes(data)
	sprites := root.Get("sprites")
	if !sprites.IsArray() {
		return nil, fmt.Errorf("%w: missing sprites array", ErrCatalogMalformed)
	}

	cat := &Catalog{}
	sprites.ForEach(func(_, entry gjson.Result) bool {
		name := strings.TrimSpace(entry.Get("name").String())
		if name == "" {
			return true
		}
		cat.Sprites = append(cat.Sprites, SpriteDescriptor{
			Name:     name,
			Kind:     parseKind(entry.Get("type").String()),
			MediaRef: entry.Get("mediaRef").String(),
		})
		return true
	})

	if total := root.Get("totalSprites"); total.Exists() {
		cat.TotalSprites = int(total.Int())
	} else {
		cat.TotalSprites = len(cat.Sprites)
	}
	cat.Generated = parseGenerated(root.Get("generated"))

	return cat, nil
}

func parseKind(s string) SpriteKind {
	if strings.EqualFold(s, "Animated") {
		return KindAnimated
	}
	return KindStaticSheet
}

func parseGenerated(r gjson.Result) time.Time {
	switch r.Type {
	case gjson.Number:
		return time.UnixMilli(r.Int()).UTC()
	case gjson.String:
		if t, err := time.Parse(time.RFC3339, r.String()); err == nil {
			return t
		}
	}
	return time.Time{}
}
