// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pixfx

import (
	"errors"
	"fmt"
	"image"
)

// ErrNoBuffer is returned by View.DrawTo when the view does not wrap a
// PixelBuffer at any depth.
var ErrNoBuffer = errors.New("pixfx: view has no pixel buffer")

// View is a coordinate view over a Surface.
//
// A view translates external coordinates by subtracting its offset and then
// tests them against a clip rectangle given in the wrapped surface's
// coordinates. With an inverted clip only points outside the rectangle are
// accessible.
//
//   - Reads outside the clip are clamped to the nearest pixel inside it.
//     Reads inside an inverted clip return ErrNoValue.
//   - Writes that fail the clip test are dropped.
//   - No access ever reaches the wrapped surface outside its bounds.
//
// A view never owns the memory it addresses. DrawTo is the only method that
// changes the state of the underlying buffer: it unlocks it so that a
// compositor can read the resource.
//
// Thread safety: a configured View is safe for concurrent reads. Writes
// inherit the concurrency rules of the underlying buffer layout.
type View struct {
	src  Surface
	root PixelBuffer

	// inner caches src.Bounds().
	inner image.Rectangle

	offset image.Point
	clip   image.Rectangle
	invert bool
	blend  bool
}

var _ Surface = (*View)(nil)

// ViewOption configures a View.
type ViewOption func(*viewOptions)

type viewOptions struct {
	offset  image.Point
	clip    image.Rectangle
	hasClip bool
	invert  bool
	blend   bool
}

// WithOffset makes external coordinate p address the wrapped surface's
// origin. Use the locked area's Min to address a buffer in canvas
// coordinates.
func WithOffset(p image.Point) ViewOption {
	return func(o *viewOptions) {
		o.offset = p
	}
}

// WithClip restricts access to r, given in the wrapped surface's coordinates.
func WithClip(r image.Rectangle) ViewOption {
	return func(o *viewOptions) {
		o.clip = r
		o.hasClip = true
		o.invert = false
	}
}

// WithInvertedClip restricts access to everything outside r.
func WithInvertedClip(r image.Rectangle) ViewOption {
	return func(o *viewOptions) {
		o.clip = r
		o.hasClip = true
		o.invert = true
	}
}

// WithBlendedReads makes Color return colors blended against the buffer
// backdrop when the view wraps an ArgbBuffer.
func WithBlendedReads() ViewOption {
	return func(o *viewOptions) {
		o.blend = true
	}
}

// NewView creates a view over s. Without options the view is the identity:
// no offset and a clip covering all of s.
//
// Views may wrap other views; configure the inner view before wrapping it.
func NewView(s Surface, opts ...ViewOption) (*View, error) {
	var o viewOptions
	for _, opt := range opts {
		opt(&o)
	}

	v := &View{
		src:    s,
		inner:  s.Bounds(),
		offset: o.offset,
		blend:  o.blend,
	}
	v.clip = v.inner

	switch src := s.(type) {
	case PixelBuffer:
		v.root = src
	case *View:
		v.root = src.root
	}

	if o.hasClip {
		if err := v.SetClip(o.clip, o.invert); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Offset returns the view offset.
func (v *View) Offset() image.Point {
	return v.offset
}

// Clip returns the clip rectangle, in the wrapped surface's coordinates, and
// whether it is inverted.
func (v *View) Clip() (image.Rectangle, bool) {
	return v.clip, v.invert
}

// SetClip replaces the clip rectangle.
//
// A non-inverted clip is intersected with the wrapped bounds; if nothing is
// left, ErrInvalidRegion is returned. Rectangles with negative size are
// always rejected.
func (v *View) SetClip(r image.Rectangle, invert bool) error {
	if r.Max.X < r.Min.X || r.Max.Y < r.Min.Y {
		return fmt.Errorf("pixfx: clip %v: %w", r, ErrInvalidRegion)
	}
	if !invert {
		r = r.Intersect(v.inner)
		if r.Empty() {
			return fmt.Errorf("pixfx: clip outside %v: %w", v.inner, ErrInvalidRegion)
		}
	}
	v.clip = r
	v.invert = invert
	return nil
}

// ResetClip makes the whole wrapped surface accessible again.
func (v *View) ResetClip() {
	v.clip = v.inner
	v.invert = false
}

// Bounds returns the accessible rectangle in external coordinates. For an
// inverted clip that is the whole wrapped surface.
func (v *View) Bounds() image.Rectangle {
	if v.invert {
		return v.inner.Add(v.offset)
	}
	return v.clip.Add(v.offset)
}

// Layout returns the layout of the underlying buffer.
func (v *View) Layout() Layout {
	return v.src.Layout()
}

// Locked reports whether the underlying buffer is locked.
func (v *View) Locked() bool {
	return v.src.Locked()
}

// Buffer returns the PixelBuffer at the bottom of the view chain, or nil.
func (v *View) Buffer() PixelBuffer {
	return v.root
}

// Lock re-locks the underlying buffer after DrawTo.
func (v *View) Lock() error {
	if v.root == nil {
		return ErrNoBuffer
	}
	return v.root.Lock()
}

// Contains reports whether external point (x, y) passes the clip test.
func (v *View) Contains(x, y int) bool {
	p := image.Point{x - v.offset.X, y - v.offset.Y}
	return p.In(v.clip) != v.invert
}

// Color returns the color at external (x, y).
func (v *View) Color(x, y int) (Color, error) {
	return v.read(x, y, v.blend)
}

// BlendedColor is Color with reads blended against the buffer backdrop.
func (v *View) BlendedColor(x, y int) (Color, error) {
	return v.read(x, y, true)
}

type blender interface {
	BlendedColor(x, y int) (Color, error)
}

func (v *View) read(x, y int, blend bool) (Color, error) {
	p := image.Point{x - v.offset.X, y - v.offset.Y}
	if p.In(v.clip) == v.invert {
		if v.invert {
			return Color{}, ErrNoValue
		}
		p = clampPoint(p, v.clip)
	}
	if v.inner.Empty() {
		return Color{}, ErrNotLocked
	}
	p = clampPoint(p, v.inner)

	if blend {
		if b, ok := v.src.(blender); ok {
			return b.BlendedColor(p.X, p.Y)
		}
	}
	return v.src.Color(p.X, p.Y)
}

// SetColor stores c at external (x, y). Points failing the clip test or
// lying outside the wrapped surface are silently dropped.
func (v *View) SetColor(x, y int, c Color) error {
	p := image.Point{x - v.offset.X, y - v.offset.Y}
	if p.In(v.clip) == v.invert || !p.In(v.inner) {
		return nil
	}
	return v.src.SetColor(p.X, p.Y, c)
}

// DrawTo unlocks the underlying buffer and hands its pixels to c, to be
// drawn over dst. Pixel access fails with ErrNotLocked afterwards until Lock
// is called.
func (v *View) DrawTo(c Compositor, dst image.Rectangle) error {
	if v.root == nil {
		return ErrNoBuffer
	}
	if err := v.root.Unlock(); err != nil {
		return err
	}
	area := v.root.Area()
	if dst.Empty() || area.Empty() {
		return nil
	}
	if err := c.Composite(dst, v.root.Resource(), area.Min); err != nil {
		return fmt.Errorf("pixfx: draw %v: %w", dst, err)
	}
	return nil
}

// clampPoint returns the point of r nearest to p. r must not be empty.
func clampPoint(p image.Point, r image.Rectangle) image.Point {
	if p.X < r.Min.X {
		p.X = r.Min.X
	} else if p.X >= r.Max.X {
		p.X = r.Max.X - 1
	}
	if p.Y < r.Min.Y {
		p.Y = r.Min.Y
	} else if p.Y >= r.Max.Y {
		p.Y = r.Max.Y - 1
	}
	return p
}
