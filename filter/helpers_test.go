// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"image"
	"testing"

	"github.com/gogpu/pixfx"
)

// Test helper functions shared across filter tests.

// newTestBitmap creates an ARGB32 bitmap with every pixel set by fn.
func newTestBitmap(t testing.TB, w, h int, fn func(x, y int) pixfx.Color) *pixfx.Bitmap {
	t.Helper()
	b, err := pixfx.NewBitmap(w, h)
	if err != nil {
		t.Fatalf("NewBitmap(%d, %d) error = %v", w, h, err)
	}
	for y := range h {
		for x := range w {
			b.Set(x, y, fn(x, y))
		}
	}
	return b
}

// pattern is a deterministic, non-uniform test image.
func pattern(x, y int) pixfx.Color {
	return pixfx.ARGB(uint8(200+x%7*8), uint8(x*37+y*11), uint8(x*x+y*53), uint8(x*y*7+13))
}

func uniform(c pixfx.Color) func(x, y int) pixfx.Color {
	return func(int, int) pixfx.Color { return c }
}

func checkerboard(a, b pixfx.Color) func(x, y int) pixfx.Color {
	return func(x, y int) pixfx.Color {
		if (x+y)%2 == 0 {
			return a
		}
		return b
	}
}

// lockBuffer locks all of res and releases it at the end of the test.
func lockBuffer(t testing.TB, res pixfx.Resource) pixfx.PixelBuffer {
	t.Helper()
	buf, err := pixfx.Lock(res, res.Bounds())
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	t.Cleanup(func() { _ = buf.Close() })
	return buf
}

// colors reads every pixel of b.
func colors(b *pixfx.Bitmap) []pixfx.Color {
	r := b.Bounds()
	out := make([]pixfx.Color, 0, r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			out = append(out, pixfx.ColorOf(b.At(x, y)))
		}
	}
	return out
}

// runFilter applies f to a copy of src over rect using the given number of
// chunks and returns the copy.
func runFilter(t testing.TB, f applier, src *pixfx.Bitmap, rect image.Rectangle, chunks int) *pixfx.Bitmap {
	t.Helper()
	dst, err := pixfx.CloneArea(src, src.Bounds())
	if err != nil {
		t.Fatalf("CloneArea() error = %v", err)
	}
	in := lockBuffer(t, src)
	out := lockBuffer(t, dst)
	if err := f.apply(newExecutor(chunks), in, out, rect); err != nil {
		t.Fatalf("apply() error = %v", err)
	}
	_ = in.Unlock()
	_ = out.Unlock()
	return dst
}

func equalColors(t testing.TB, got, want []pixfx.Color) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d pixels, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("pixel %d = %v, want %v", i, got[i], want[i])
			return
		}
	}
}
