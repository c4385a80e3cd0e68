package sim

import (
	"fmt"
	"strings"
	"time"
)

// Variant is the scoring category of an entity.
type Variant int

const (
	VariantNormal Variant = iota
	VariantBonus
	VariantNegative
	variantCount
)

var variantNames = [...]string{"normal", "bonus", "negative"}

func (v Variant) String() string {
	if v < 0 || v >= variantCount {
		return "unknown"
	}
	return variantNames[v]
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for i, name := range variantNames {
		if name == s {
			*v = Variant(i)
			return nil
		}
	}
	return fmt.Errorf("sim: unknown variant %q", s)
}

// Pattern is a cosmetic movement overlay. It never affects hit resolution.
type Pattern int

const (
	PatternStraight Pattern = iota
	PatternZigzag
	PatternCircular
	PatternHover
	patternCount
)

var patternNames = [...]string{"straight", "zigzag", "circular", "hover"}

func (p Pattern) String() string {
	if p < 0 || p >= patternCount {
		return "unknown"
	}
	return patternNames[p]
}

// MarshalText implements encoding.TextMarshaler.
func (p Pattern) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pattern) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for i, name := range patternNames {
		if name == s {
			*p = Pattern(i)
			return nil
		}
	}
	return fmt.Errorf("sim: unknown pattern %q", s)
}

// EntityID identifies an entity within one swarm. IDs are never reused
// during a session, so a stale tap can never hit a newer entity.
type EntityID uint64

// Entity is one simulated actor.
type Entity struct {
	ID        EntityID
	Pos       Vec
	Dir       Vec // unit length
	Speed     float64
	Pattern   Pattern
	Phase     float64 // pattern phase offset in radians
	Size      float64 // diameter in cells
	Growth    float64 // +1 growing, -1 shrinking, 0 fixed
	Variant   Variant
	CreatedAt time.Duration
	TTL       time.Duration // 0 never expires
}

// Expired reports whether the entity has outlived its TTL at time now.
func (e Entity) Expired(now time.Duration) bool {
	return e.TTL > 0 && now-e.CreatedAt >= e.TTL
}

// Splat marks where an entity was hit.
type Splat struct {
	ID        uint64
	Pos       Vec
	Variant   Variant
	CreatedAt time.Duration
}
