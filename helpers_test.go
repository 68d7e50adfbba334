// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pixfx

import (
	"bytes"
	"image"
	"testing"
)

// newPatternBitmap creates an ARGB32 bitmap where every pixel has a distinct
// opaque color derived from its coordinates.
func newPatternBitmap(t *testing.T, w, h int) *Bitmap {
	t.Helper()
	b, err := NewBitmap(w, h)
	if err != nil {
		t.Fatalf("NewBitmap(%d, %d) error = %v", w, h, err)
	}
	for y := range h {
		for x := range w {
			b.Set(x, y, patternColor(x, y))
		}
	}
	return b
}

func patternColor(x, y int) Color {
	return RGB(uint8(x*16+1), uint8(y*16+2), uint8(x+y))
}

// snapshot returns a copy of the bitmap's pixel memory.
func snapshot(b *Bitmap) []byte {
	return bytes.Clone(b.pix)
}

// lockAll locks the whole bitmap and fails the test on error.
func lockAll(t *testing.T, res Resource, opts ...BufferOption) PixelBuffer {
	t.Helper()
	buf, err := Lock(res, res.Bounds(), opts...)
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	t.Cleanup(func() { _ = buf.Close() })
	return buf
}

func mustView(t *testing.T, s Surface, opts ...ViewOption) *View {
	t.Helper()
	v, err := NewView(s, opts...)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	return v
}

// recordingCompositor records Composite calls.
type recordingCompositor struct {
	calls []compositeCall
	err   error
}

type compositeCall struct {
	dst    image.Rectangle
	src    image.Image
	sp     image.Point
	locked bool
}

func (c *recordingCompositor) Composite(dst image.Rectangle, src image.Image, sp image.Point) error {
	locked := false
	if r, ok := src.(Resource); ok {
		locked = r.Locked()
	}
	c.calls = append(c.calls, compositeCall{dst: dst, src: src, sp: sp, locked: locked})
	return c.err
}
