// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pixfx

import (
	"errors"
	"image"
	"testing"
)

func TestView_Identity(t *testing.T) {
	b := newPatternBitmap(t, 4, 3)
	v := mustView(t, lockAll(t, b))

	if got := v.Bounds(); got != image.Rect(0, 0, 4, 3) {
		t.Errorf("Bounds() = %v", got)
	}
	for y := range 3 {
		for x := range 4 {
			got, err := v.Color(x, y)
			if err != nil {
				t.Fatalf("Color(%d, %d) error = %v", x, y, err)
			}
			if want := patternColor(x, y); got != want {
				t.Errorf("Color(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestView_OffsetAddressesCanvas(t *testing.T) {
	b := newPatternBitmap(t, 10, 10)
	buf, err := Lock(b, image.Rect(4, 5, 8, 9))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = buf.Close() }()

	v := mustView(t, buf, WithOffset(image.Pt(4, 5)))
	if got := v.Bounds(); got != image.Rect(4, 5, 8, 9) {
		t.Errorf("Bounds() = %v, want (4,5)-(8,9)", got)
	}
	got, err := v.Color(6, 7)
	if err != nil {
		t.Fatal(err)
	}
	if want := patternColor(6, 7); got != want {
		t.Errorf("Color(6, 7) = %v, want %v", got, want)
	}
}

func TestView_ReadsClamp(t *testing.T) {
	b := newPatternBitmap(t, 6, 6)
	v := mustView(t, lockAll(t, b), WithClip(image.Rect(1, 1, 4, 4)))

	tests := []struct {
		x, y         int
		wantX, wantY int
	}{
		{2, 2, 2, 2},
		{0, 0, 1, 1},
		{5, 2, 3, 2},
		{-100, 100, 1, 3},
		{3, 3, 3, 3},
	}
	for _, tt := range tests {
		got, err := v.Color(tt.x, tt.y)
		if err != nil {
			t.Fatalf("Color(%d, %d) error = %v", tt.x, tt.y, err)
		}
		if want := patternColor(tt.wantX, tt.wantY); got != want {
			t.Errorf("Color(%d, %d) = %v, want pixel (%d, %d)", tt.x, tt.y, got, tt.wantX, tt.wantY)
		}
	}

	// Without a clip reads still clamp to the buffer.
	full := mustView(t, v.Buffer())
	got, _ := full.Color(50, -3)
	if want := patternColor(5, 0); got != want {
		t.Errorf("Color(50, -3) = %v, want pixel (5, 0)", got)
	}
}

func TestView_ClipWritesSnapshot(t *testing.T) {
	clip := image.Rect(1, 2, 4, 5)

	for _, invert := range []bool{false, true} {
		b := newPatternBitmap(t, 6, 7)
		opt := WithClip(clip)
		if invert {
			opt = WithInvertedClip(clip)
		}
		v := mustView(t, lockAll(t, b), opt)
		before := snapshot(b)

		for y := -2; y < 9; y++ {
			for x := -2; x < 8; x++ {
				if err := v.SetColor(x, y, ARGB(7, 7, 7, 7)); err != nil {
					t.Fatalf("SetColor(%d, %d) error = %v", x, y, err)
				}
			}
		}

		after := snapshot(b)
		for y := range 7 {
			for x := range 6 {
				i := y*b.Stride() + x*4
				changed := string(before[i:i+4]) != string(after[i:i+4])
				inside := image.Pt(x, y).In(clip)
				if changed != (inside != invert) {
					t.Errorf("invert=%v: pixel (%d, %d) changed = %v, inside clip = %v", invert, x, y, changed, inside)
				}
			}
		}
	}
}

func TestView_InvertedClipRead(t *testing.T) {
	b := newPatternBitmap(t, 5, 5)
	v := mustView(t, lockAll(t, b), WithInvertedClip(image.Rect(1, 1, 3, 3)))

	if got := v.Bounds(); got != image.Rect(0, 0, 5, 5) {
		t.Errorf("Bounds() = %v, want whole buffer", got)
	}
	if _, err := v.Color(2, 2); !errors.Is(err, ErrNoValue) {
		t.Errorf("Color(inside) error = %v, want ErrNoValue", err)
	}
	if v.Contains(2, 2) || !v.Contains(4, 4) {
		t.Error("Contains() does not invert the clip")
	}
	got, err := v.Color(4, 0)
	if err != nil || got != patternColor(4, 0) {
		t.Errorf("Color(outside) = %v, %v", got, err)
	}
}

func TestView_SetClip(t *testing.T) {
	b, _ := NewBitmap(4, 4)
	v := mustView(t, lockAll(t, b))

	if err := v.SetClip(image.Rectangle{Min: image.Pt(2, 2), Max: image.Pt(1, 1)}, false); !errors.Is(err, ErrInvalidRegion) {
		t.Errorf("SetClip(negative) error = %v, want ErrInvalidRegion", err)
	}
	if err := v.SetClip(image.Rect(10, 10, 12, 12), false); !errors.Is(err, ErrInvalidRegion) {
		t.Errorf("SetClip(outside) error = %v, want ErrInvalidRegion", err)
	}
	if err := v.SetClip(image.Rect(10, 10, 12, 12), true); err != nil {
		t.Errorf("SetClip(outside, inverted) error = %v", err)
	}
	if err := v.SetClip(image.Rect(2, -5, 9, 3), false); err != nil {
		t.Fatal(err)
	}
	if r, inv := v.Clip(); r != image.Rect(2, 0, 4, 3) || inv {
		t.Errorf("Clip() = %v, %v; want (2,0)-(4,3), false", r, inv)
	}
	v.ResetClip()
	if got := v.Bounds(); got != b.Bounds() {
		t.Errorf("Bounds() after ResetClip = %v", got)
	}

	if _, err := NewView(v.Buffer(), WithClip(image.Rect(-9, -9, -1, -1))); !errors.Is(err, ErrInvalidRegion) {
		t.Errorf("NewView(clip outside) error = %v, want ErrInvalidRegion", err)
	}
}

func TestView_Nested(t *testing.T) {
	b := newPatternBitmap(t, 8, 8)
	buf := lockAll(t, b)
	inner := mustView(t, buf, WithClip(image.Rect(2, 2, 6, 6)))
	outer := mustView(t, inner, WithOffset(image.Pt(100, 100)))

	if outer.Buffer() != buf {
		t.Error("Buffer() does not reach the root buffer")
	}
	if got := outer.Bounds(); got != image.Rect(102, 102, 106, 106) {
		t.Errorf("Bounds() = %v", got)
	}
	got, _ := outer.Color(100, 100)
	if want := patternColor(2, 2); got != want {
		t.Errorf("Color(100, 100) = %v, want clamped pixel (2, 2)", got)
	}
	_ = outer.SetColor(101, 101, White)
	if b.At(1, 1) == White {
		t.Error("write outside inner clip reached memory")
	}
}

func TestView_BlendedReads(t *testing.T) {
	b, _ := NewBitmap(1, 1)
	buf := lockAll(t, b, WithBackdrop(Black))

	plain := mustView(t, buf)
	blended := mustView(t, buf, WithBlendedReads())

	if got, _ := plain.Color(0, 0); got != Transparent {
		t.Errorf("plain Color() = %v, want transparent", got)
	}
	if got, _ := blended.Color(0, 0); got != Black {
		t.Errorf("blended Color() = %v, want black", got)
	}
	if got, _ := plain.BlendedColor(0, 0); got != Black {
		t.Errorf("BlendedColor() = %v, want black", got)
	}
}

func TestView_DrawTo(t *testing.T) {
	b := newPatternBitmap(t, 10, 10)
	buf, err := Lock(b, image.Rect(2, 3, 6, 7))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = buf.Close() }()

	v := mustView(t, buf, WithOffset(image.Pt(2, 3)))
	var c recordingCompositor
	dst := image.Rect(20, 30, 24, 34)
	if err := v.DrawTo(&c, dst); err != nil {
		t.Fatalf("DrawTo() error = %v", err)
	}

	if len(c.calls) != 1 {
		t.Fatalf("Composite called %d times, want 1", len(c.calls))
	}
	call := c.calls[0]
	if call.dst != dst || call.sp != image.Pt(2, 3) || call.src != Resource(b) {
		t.Errorf("Composite(%v, %T, %v), want (%v, bitmap, (2,3))", call.dst, call.src, call.sp, dst)
	}
	if call.locked {
		t.Error("resource was locked while compositing")
	}

	if v.Locked() {
		t.Error("view still locked after DrawTo")
	}
	if _, err := v.Color(3, 4); !errors.Is(err, ErrNotLocked) {
		t.Errorf("Color() after DrawTo error = %v, want ErrNotLocked", err)
	}

	if err := v.Lock(); err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	got, err := v.Color(3, 4)
	if err != nil || got != patternColor(3, 4) {
		t.Errorf("Color() after relock = %v, %v", got, err)
	}
}

func TestView_DrawToErrors(t *testing.T) {
	b, _ := NewBitmap(2, 2)
	buf := lockAll(t, b)
	v := mustView(t, buf)

	wantErr := errors.New("compositor failed")
	c := &recordingCompositor{err: wantErr}
	if err := v.DrawTo(c, image.Rect(0, 0, 2, 2)); !errors.Is(err, wantErr) {
		t.Errorf("DrawTo() error = %v, want %v", err, wantErr)
	}

	// A view over a plain surface has no buffer to draw.
	nested := mustView(t, surfaceOnly{v})
	if err := nested.DrawTo(c, image.Rect(0, 0, 2, 2)); !errors.Is(err, ErrNoBuffer) {
		t.Errorf("DrawTo() error = %v, want ErrNoBuffer", err)
	}
	if err := nested.Lock(); !errors.Is(err, ErrNoBuffer) {
		t.Errorf("Lock() error = %v, want ErrNoBuffer", err)
	}
}

// surfaceOnly hides everything but the Surface methods.
type surfaceOnly struct {
	Surface
}
