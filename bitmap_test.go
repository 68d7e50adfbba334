// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pixfx

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewBitmapWithStride(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		layout  Layout
		stride  int
		palette []Color
		wantErr error
	}{
		{"argb tight", 4, 3, LayoutARGB32, 16, nil, nil},
		{"argb padded", 4, 3, LayoutARGB32, 20, nil, nil},
		{"argb short stride", 4, 3, LayoutARGB32, 15, nil, ErrInvalidStride},
		{"negative size", -1, 3, LayoutARGB32, 0, nil, ErrInvalidRegion},
		{"unknown layout", 4, 3, Layout(7), 16, nil, ErrInvalidLayout},
		{"indexed", 4, 3, LayoutIndexed8, 8, []Color{Black, White}, nil},
		{"indexed no palette", 4, 3, LayoutIndexed8, 4, nil, ErrInvalidLayout},
		{"indexed huge palette", 4, 3, LayoutIndexed8, 4, make([]Color, 257), ErrInvalidLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBitmapWithStride(tt.w, tt.h, tt.layout, tt.stride, tt.palette)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewBitmapWithStride() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if b.Stride() != tt.stride {
				t.Errorf("Stride() = %d, want %d", b.Stride(), tt.stride)
			}
			if got := b.Bounds(); got != image.Rect(0, 0, tt.w, tt.h) {
				t.Errorf("Bounds() = %v", got)
			}
		})
	}
}

func TestBitmap_LockBitsExclusive(t *testing.T) {
	b, _ := NewBitmap(4, 4)

	pix, stride, err := b.LockBits(image.Rect(1, 1, 3, 3))
	if err != nil {
		t.Fatalf("LockBits() error = %v", err)
	}
	if stride != 16 {
		t.Errorf("stride = %d, want 16", stride)
	}
	// Two rows: one full stride plus the last row's two pixels.
	if len(pix) != 16+8 {
		t.Errorf("len(pix) = %d, want 24", len(pix))
	}
	if !b.Locked() {
		t.Error("Locked() = false while locked")
	}

	if _, _, err := b.LockBits(image.Rect(0, 0, 1, 1)); !errors.Is(err, ErrAlreadyLocked) {
		t.Errorf("second LockBits() error = %v, want ErrAlreadyLocked", err)
	}

	if err := b.UnlockBits(); err != nil {
		t.Fatalf("UnlockBits() error = %v", err)
	}
	if err := b.UnlockBits(); err != nil {
		t.Errorf("second UnlockBits() error = %v, want nil", err)
	}
	if _, _, err := b.LockBits(image.Rect(0, 0, 1, 1)); err != nil {
		t.Errorf("LockBits() after unlock error = %v", err)
	}
}

func TestBitmap_LockBitsInvalid(t *testing.T) {
	b, _ := NewBitmap(4, 4)

	for _, r := range []image.Rectangle{
		{},
		image.Rect(2, 2, 5, 3),
		image.Rect(-1, 0, 1, 1),
	} {
		if _, _, err := b.LockBits(r); !errors.Is(err, ErrInvalidRegion) {
			t.Errorf("LockBits(%v) error = %v, want ErrInvalidRegion", r, err)
		}
	}
}

func TestBitmap_Close(t *testing.T) {
	b, _ := NewBitmap(2, 2)
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if !b.Closed() {
		t.Error("Closed() = false")
	}
	if _, _, err := b.LockBits(b.Bounds()); !errors.Is(err, ErrClosed) {
		t.Errorf("LockBits() after Close error = %v, want ErrClosed", err)
	}
	if got := b.At(0, 0); got != Transparent {
		t.Errorf("At() after Close = %v, want transparent", got)
	}
}

func TestBitmap_SetAt(t *testing.T) {
	b, _ := NewBitmap(3, 3)
	c := ARGB(100, 10, 20, 30)
	b.Set(1, 2, c)
	if got := b.At(1, 2); got != c {
		t.Errorf("At(1, 2) = %v, want %v", got, c)
	}

	// B, G, R, A byte order.
	i := 2*b.Stride() + 4
	if got := b.pix[i : i+4]; got[0] != 30 || got[1] != 20 || got[2] != 10 || got[3] != 100 {
		t.Errorf("memory = %v, want [30 20 10 100]", got)
	}

	// Out of bounds is ignored.
	b.Set(5, 5, c)
	if got := b.At(-1, 0); got != Transparent {
		t.Errorf("At(-1, 0) = %v, want transparent", got)
	}
}

func TestBitmap_IndexedSetNearest(t *testing.T) {
	b, _ := NewIndexedBitmap(2, 1, []Color{Black, White})
	b.Set(0, 0, RGB(250, 250, 240))
	b.Set(1, 0, RGB(10, 0, 5))
	if got := b.At(0, 0); got != White {
		t.Errorf("At(0, 0) = %v, want white", got)
	}
	if got := b.At(1, 0); got != Black {
		t.Errorf("At(1, 0) = %v, want black", got)
	}
}

func TestCloneArea(t *testing.T) {
	src := newPatternBitmap(t, 6, 5)
	area := image.Rect(2, 1, 5, 4)

	c, err := CloneArea(src, area)
	if err != nil {
		t.Fatalf("CloneArea() error = %v", err)
	}
	if got := c.Bounds(); got != image.Rect(0, 0, 3, 3) {
		t.Errorf("Bounds() = %v, want (0,0)-(3,3)", got)
	}
	if c.Stride() != 12 {
		t.Errorf("Stride() = %d, want 12", c.Stride())
	}
	for y := range 3 {
		for x := range 3 {
			if got, want := c.At(x, y), patternColor(x+2, y+1); got != want {
				t.Errorf("At(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if src.Locked() {
		t.Error("source still locked after CloneArea")
	}
}

func TestCloneArea_ClipsAndEmpty(t *testing.T) {
	src := newPatternBitmap(t, 4, 4)

	c, err := CloneArea(src, image.Rect(2, 2, 10, 10))
	if err != nil {
		t.Fatalf("CloneArea() error = %v", err)
	}
	if got := c.Bounds(); got != image.Rect(0, 0, 2, 2) {
		t.Errorf("Bounds() = %v, want 2x2", got)
	}

	e, err := CloneArea(src, image.Rect(10, 10, 12, 12))
	if err != nil {
		t.Fatalf("CloneArea(outside) error = %v", err)
	}
	if !e.Bounds().Empty() {
		t.Errorf("Bounds() = %v, want empty", e.Bounds())
	}
}

func TestCloneArea_Locked(t *testing.T) {
	src := newPatternBitmap(t, 4, 4)
	if _, _, err := src.LockBits(src.Bounds()); err != nil {
		t.Fatal(err)
	}
	if _, err := CloneArea(src, src.Bounds()); !errors.Is(err, ErrAlreadyLocked) {
		t.Errorf("CloneArea() of locked resource error = %v, want ErrAlreadyLocked", err)
	}
}

func TestCloneArea_PaddedIndexed(t *testing.T) {
	palette := []Color{Black, White, RGB(255, 0, 0)}
	src, _ := NewBitmapWithStride(3, 2, LayoutIndexed8, 8, palette)
	src.Set(1, 1, RGB(255, 0, 0))

	c, err := CloneArea(src, src.Bounds())
	if err != nil {
		t.Fatalf("CloneArea() error = %v", err)
	}
	if c.Layout() != LayoutIndexed8 || c.Stride() != 3 {
		t.Errorf("Layout() = %v, Stride() = %d; want Indexed8, 3", c.Layout(), c.Stride())
	}
	if got := c.At(1, 1); got != RGB(255, 0, 0) {
		t.Errorf("At(1, 1) = %v, want red", got)
	}
}

func TestBitmapFromImage(t *testing.T) {
	t.Run("nrgba", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(10, 10, 13, 12))
		img.SetNRGBA(11, 11, color.NRGBA{R: 1, G: 2, B: 3, A: 4})

		b, err := BitmapFromImage(img)
		if err != nil {
			t.Fatalf("BitmapFromImage() error = %v", err)
		}
		if b.Layout() != LayoutARGB32 || b.Bounds() != image.Rect(0, 0, 3, 2) {
			t.Fatalf("Layout() = %v, Bounds() = %v", b.Layout(), b.Bounds())
		}
		if got := b.At(1, 1); got != ARGB(4, 1, 2, 3) {
			t.Errorf("At(1, 1) = %v, want %v", got, ARGB(4, 1, 2, 3))
		}
	})

	t.Run("rgba", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 2, 2))
		img.SetRGBA(0, 1, color.RGBA{R: 200, G: 100, B: 50, A: 255})

		b, err := BitmapFromImage(img)
		if err != nil {
			t.Fatalf("BitmapFromImage() error = %v", err)
		}
		if got := b.At(0, 1); got != RGB(200, 100, 50) {
			t.Errorf("At(0, 1) = %v", got)
		}
	})

	t.Run("paletted", func(t *testing.T) {
		pal := color.Palette{color.Black, color.White}
		img := image.NewPaletted(image.Rect(0, 0, 4, 4), pal)
		img.SetColorIndex(2, 3, 1)

		b, err := BitmapFromImage(img)
		if err != nil {
			t.Fatalf("BitmapFromImage() error = %v", err)
		}
		if b.Layout() != LayoutIndexed8 {
			t.Fatalf("Layout() = %v, want Indexed8", b.Layout())
		}
		if got := b.Palette(); len(got) != 2 || got[0] != Black || got[1] != White {
			t.Errorf("Palette() = %v", got)
		}
		if got := b.At(2, 3); got != White {
			t.Errorf("At(2, 3) = %v, want white", got)
		}
	})
}

func TestBitmap_ToImage(t *testing.T) {
	b := newPatternBitmap(t, 3, 2)
	img, ok := b.ToImage().(*image.NRGBA)
	if !ok {
		t.Fatalf("ToImage() returned %T, want *image.NRGBA", b.ToImage())
	}
	if got, want := img.NRGBAAt(2, 1), patternColor(2, 1).NRGBA(); got != want {
		t.Errorf("NRGBAAt(2, 1) = %v, want %v", got, want)
	}

	ib, _ := NewIndexedBitmap(2, 2, []Color{Black, White})
	ib.Set(1, 0, White)
	p, ok := ib.ToImage().(*image.Paletted)
	if !ok {
		t.Fatalf("ToImage() returned %T, want *image.Paletted", ib.ToImage())
	}
	if p.ColorIndexAt(1, 0) != 1 {
		t.Errorf("ColorIndexAt(1, 0) = %d, want 1", p.ColorIndexAt(1, 0))
	}
}
