// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pixfx

import icolor "github.com/gogpu/pixfx/internal/color"

// ArgbBuffer is a PixelBuffer over 32-bit B, G, R, A memory.
//
// Writes to distinct coordinates may run concurrently.
type ArgbBuffer struct {
	lockState

	// backdrop is what BlendedColor blends translucent pixels against.
	backdrop Color
}

var _ PixelBuffer = (*ArgbBuffer)(nil)

// Layout returns LayoutARGB32.
func (b *ArgbBuffer) Layout() Layout {
	return LayoutARGB32
}

// Backdrop returns the color used by BlendedColor.
func (b *ArgbBuffer) Backdrop() Color {
	return b.backdrop
}

// Color returns the stored color at buffer-local (x, y).
func (b *ArgbBuffer) Color(x, y int) (Color, error) {
	if b.pix == nil {
		return Color{}, ErrNotLocked
	}
	i := x*4 + y*b.stride
	p := b.pix[i : i+4 : i+4]
	return Color{B: p[0], G: p[1], R: p[2], A: p[3]}, nil
}

// BlendedColor returns the color at (x, y) composited over the backdrop.
// The result is always opaque.
func (b *ArgbBuffer) BlendedColor(x, y int) (Color, error) {
	c, err := b.Color(x, y)
	if err != nil || c.A == 255 {
		return c, err
	}
	bg := b.backdrop
	return Color{
		A: 255,
		R: icolor.Blend(c.R, bg.R, c.A),
		G: icolor.Blend(c.G, bg.G, c.A),
		B: icolor.Blend(c.B, bg.B, c.A),
	}, nil
}

// SetColor stores c at buffer-local (x, y).
func (b *ArgbBuffer) SetColor(x, y int, c Color) error {
	if b.pix == nil {
		return ErrNotLocked
	}
	i := x*4 + y*b.stride
	p := b.pix[i : i+4 : i+4]
	p[0] = c.B
	p[1] = c.G
	p[2] = c.R
	p[3] = c.A
	return nil
}
