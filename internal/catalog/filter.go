package catalog

import "strings"

// IsUsable reports whether a descriptor can drive a walking enemy: it must be
// animated, carry a movement marker and a facing suffix, and must not be a
// flying variant.
func IsUsable(d SpriteDescriptor) bool {
	if d.Kind != KindAnimated {
		return false
	}
	name := strings.ToUpper(d.Name)
	if !HasMovementMarker(name) {
		return false
	}
	if !strings.Contains(name, SuffixLeft) && !strings.Contains(name, SuffixRight) {
		return false
	}
	return !strings.Contains(name, MarkerFlying)
}

// HasMovementMarker reports whether an upper-cased name contains -WALKING or -RUNNING.
func HasMovementMarker(upperName string) bool {
	return strings.Contains(upperName, MarkerWalking) || strings.Contains(upperName, MarkerRunning)
}

// FilterUsable returns a new catalog holding only usable descriptors, in their
// original order. The input is left untouched.
func FilterUsable(c *Catalog) *Catalog {
	out := &Catalog{}
	if c == nil {
		return out
	}
	out.Generated = c.Generated
	for _, s := range c.Sprites {
		if IsUsable(s) {
			out.Sprites = append(out.Sprites, s)
		}
	}
	out.TotalSprites = len(out.Sprites)
	return out
}
