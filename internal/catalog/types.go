// Package catalog loads and filters the sprite catalog that feeds the wave
// simulator. A catalog is a flat list of named sprite descriptors; the names
// encode role, animation and facing (for example "GRUNT-WALKING-LEFT").
package catalog

import "time"

// SpriteKind is the asset kind reported by the catalog source.
type SpriteKind int

const (
	// KindAnimated is an animated asset (the only kind the simulator uses).
	KindAnimated SpriteKind = iota
	// KindStaticSheet is a static sprite sheet.
	KindStaticSheet
)

// String returns the catalog spelling of the kind.
func (k SpriteKind) String() string {
	if k == KindStaticSheet {
		return "StaticSheet"
	}
	return "Animated"
}

// Name markers shared by the filter and the classifier.
const (
	MarkerWalking = "-WALKING"
	MarkerRunning = "-RUNNING"
	MarkerFlying  = "-FLYING"
	SuffixLeft    = "-LEFT"
	SuffixRight   = "-RIGHT"
)

// SpriteDescriptor describes a single catalog entry. Descriptors are values
// and are never modified after parsing.
type SpriteDescriptor struct {
	Name     string
	Kind     SpriteKind
	MediaRef string // empty when the source did not provide one
}

// HasMedia reports whether the descriptor carries a media reference.
func (d SpriteDescriptor) HasMedia() bool {
	return d.MediaRef != ""
}

// Catalog is an ordered snapshot of sprite descriptors. A reload produces a
// new Catalog; existing snapshots are never mutated.
type Catalog struct {
	Sprites      []SpriteDescriptor
	TotalSprites int
	Generated    time.Time
}

// Len returns the number of sprites in the snapshot. A nil catalog is empty.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Sprites)
}

// Lookup returns the descriptor with the exact given name.
func (c *Catalog) Lookup(name string) (SpriteDescriptor, bool) {
	if c == nil {
		return SpriteDescriptor{}, false
	}
	for _, s := range c.Sprites {
		if s.Name == name {
			return s, true
		}
	}
	return SpriteDescriptor{}, false
}
