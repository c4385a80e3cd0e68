// Package sim holds the entity simulation shared by the swatting minigames:
// the entity model, spawner, motion updater, hit resolver and the round
// clock with its task scheduler. Everything runs on simulated time advanced
// by the platform tick, so a seeded game replays identically.
package sim

import "math"

// Vec is a 2D vector in screen cells.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector pointing along v and false when v has
// no usable length.
func (v Vec) Normalize() (Vec, bool) {
	l := v.Len()
	if l < 1e-9 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec{}, false
	}
	return Vec{X: v.X / l, Y: v.Y / l}, true
}

// Box is an axis-aligned float rectangle, inclusive on both ends.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains reports whether p lies inside the box.
func (b Box) Contains(p Vec) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Center returns the middle of the box.
func (b Box) Center() Vec {
	return Vec{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Inset shrinks the box by d on every side. A box narrower than 2d
// collapses onto its center line instead of inverting.
func (b Box) Inset(d float64) Box {
	out := Box{MinX: b.MinX + d, MinY: b.MinY + d, MaxX: b.MaxX - d, MaxY: b.MaxY - d}
	c := b.Center()
	if out.MinX > out.MaxX {
		out.MinX, out.MaxX = c.X, c.X
	}
	if out.MinY > out.MaxY {
		out.MinY, out.MaxY = c.Y, c.Y
	}
	return out
}

// Clamp returns p moved to the nearest point inside the box.
func (b Box) Clamp(p Vec) Vec {
	return Vec{
		X: math.Max(b.MinX, math.Min(b.MaxX, p.X)),
		Y: math.Max(b.MinY, math.Min(b.MaxY, p.Y)),
	}
}

// Field describes the play area: the full screen minus the header band,
// the footer band and an edge margin.
type Field struct {
	Width  float64
	Height float64
	Header float64 // rows reserved at the top (HUD)
	Footer float64 // rows reserved at the bottom (controls)
	Margin float64 // cells kept free on every edge
}

// FieldConfig is the YAML shape of the band sizes; width and height come
// from the terminal.
type FieldConfig struct {
	Header int `yaml:"header"`
	Footer int `yaml:"footer"`
	Margin int `yaml:"margin"`
}

// NewField builds a field for a w×h screen.
func NewField(w, h int, fc FieldConfig) Field {
	return Field{
		Width:  float64(w),
		Height: float64(h),
		Header: float64(fc.Header),
		Footer: float64(fc.Footer),
		Margin: float64(fc.Margin),
	}
}

// Safe returns the sub-rectangle entities may occupy.
func (f Field) Safe() Box {
	b := Box{
		MinX: f.Margin,
		MinY: f.Header + f.Margin,
		MaxX: f.Width - 1 - f.Margin,
		MaxY: f.Height - 1 - f.Footer - f.Margin,
	}
	return b.Inset(0)
}

// Center returns the center of the safe area.
func (f Field) Center() Vec {
	return f.Safe().Center()
}
