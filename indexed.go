// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pixfx

import "fmt"

// IndexedBuffer is a PixelBuffer over 8-bit palette indices.
//
// Reads are a palette lookup. Writes search the palette for an exact match
// and remember the result in a per-buffer cache.
//
// Thread safety: the cache is not synchronized. Concurrent readers are fine;
// writers to one IndexedBuffer must be serialized.
type IndexedBuffer struct {
	lockState

	palette []Color
	cache   map[Color]uint8
}

var _ PixelBuffer = (*IndexedBuffer)(nil)

// Layout returns LayoutIndexed8.
func (b *IndexedBuffer) Layout() Layout {
	return LayoutIndexed8
}

// Palette returns the buffer palette. The slice must not be modified.
func (b *IndexedBuffer) Palette() []Color {
	return b.palette
}

// Color returns the palette color at buffer-local (x, y).
func (b *IndexedBuffer) Color(x, y int) (Color, error) {
	if b.pix == nil {
		return Color{}, ErrNotLocked
	}
	return b.palette[b.pix[x+y*b.stride]], nil
}

// SetColor stores the palette index of c at buffer-local (x, y).
// Returns an error wrapping ErrUnsupportedColor if c is not in the palette.
func (b *IndexedBuffer) SetColor(x, y int, c Color) error {
	if b.pix == nil {
		return ErrNotLocked
	}
	idx, err := b.Index(c)
	if err != nil {
		return err
	}
	b.pix[x+y*b.stride] = idx
	return nil
}

// Index returns the palette index of c.
func (b *IndexedBuffer) Index(c Color) (uint8, error) {
	if idx, ok := b.cache[c]; ok {
		return idx, nil
	}
	for i, pc := range b.palette {
		if pc == c {
			if b.cache == nil {
				b.cache = make(map[Color]uint8)
			}
			b.cache[c] = uint8(i)
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("pixfx: %v: %w", c, ErrUnsupportedColor)
}
