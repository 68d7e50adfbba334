// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"image"

	"github.com/gogpu/pixfx"
	icolor "github.com/gogpu/pixfx/internal/color"
)

// MaxRadius is the largest blur radius; larger radii are reduced to it.
const MaxRadius = 1 << 16

// Blur is a box blur over a (2*Radius+1)² window.
//
// The blur is computed as two separable passes over integer channel sums, so
// the result is the exact window mean rounded half up. Window samples outside
// the source are replaced by the nearest edge pixel. Samples the source has no
// value for are left out of the mean; an output pixel with no samples in its
// window is not written.
//
// Radius <= 0 is the identity.
type Blur struct {
	Radius int
}

// NewBlur returns a box blur with the given radius.
func NewBlur(radius int) *Blur {
	return &Blur{Radius: radius}
}

// Name implements Filter.
func (b *Blur) Name() string { return "blur" }

// Apply implements Filter.
func (b *Blur) Apply(src, dst pixfx.Surface, rect image.Rectangle) error {
	return b.apply(defaultExecutor(), src, dst, rect)
}

func (b *Blur) apply(ex executor, src, dst pixfx.Surface, rect image.Rectangle) error {
	sv, dv, rect, err := prepare(src, dst, rect)
	if err != nil {
		return err
	}
	r := min(b.Radius, MaxRadius)
	if r <= 0 || rect.Empty() {
		return nil
	}

	load := blurLoadRect(rect, r, sv.Bounds())
	samples, err := loadSamples(ex, sv, load)
	if err != nil {
		return err
	}

	w := rect.Dx()
	lw, lh := load.Dx(), load.Dy()

	// Horizontal pass: one window sum per (load row, output column).
	hsum := make([]icolor.Sum, lh*w)
	_ = ex.run(lh, func(start, end int) error {
		for ly := start; ly < end; ly++ {
			row := samples[ly*lw : (ly+1)*lw]
			at := func(i int) icolor.Sum { return row[i] }
			a := rect.Min.X - r - load.Min.X
			s := windowSum(at, lw, a, a+2*r)
			out := hsum[ly*w : (ly+1)*w]
			out[0] = s
			for ox := 1; ox < w; ox++ {
				s.Merge(row[icolor.ClampInt(a+ox+2*r, 0, lw-1)])
				s.Sub(row[icolor.ClampInt(a+ox-1, 0, lw-1)])
				out[ox] = s
			}
		}
		return nil
	})

	// Vertical pass: running column sums per chunk of output rows.
	out := newPixels(rect)
	_ = ex.run(rect.Dy(), func(start, end int) error {
		cols := make([]icolor.Sum, w)
		a := rect.Min.Y + start - r - load.Min.Y
		for ox := range w {
			at := func(i int) icolor.Sum { return hsum[i*w+ox] }
			cols[ox] = windowSum(at, lh, a, a+2*r)
		}
		for oy := start; oy < end; oy++ {
			if oy > start {
				top := a + (oy - start) - 1
				bottom := top + 2*r + 1
				add := icolor.ClampInt(bottom, 0, lh-1) * w
				sub := icolor.ClampInt(top, 0, lh-1) * w
				for ox := range w {
					cols[ox].Merge(hsum[add+ox])
					cols[ox].Sub(hsum[sub+ox])
				}
			}
			y := rect.Min.Y + oy
			for ox, s := range cols {
				if s.Empty() {
					continue
				}
				ca, cr, cg, cb := s.RoundedMean()
				out.set(rect.Min.X+ox, y, pixfx.ARGB(ca, cr, cg, cb))
			}
		}
		return nil
	})

	return out.writeTo(ex, dv)
}

// blurLoadRect returns the source rectangle whose pixels cover every window
// of rect. Each axis is the window span intersected with the source; when
// that is empty the axis collapses onto rect and reads clamp to the source
// edge.
func blurLoadRect(rect image.Rectangle, r int, bounds image.Rectangle) image.Rectangle {
	span := rect.Inset(-r)
	load := span
	load.Min.X, load.Max.X = max(span.Min.X, bounds.Min.X), min(span.Max.X, bounds.Max.X)
	if load.Min.X >= load.Max.X {
		load.Min.X, load.Max.X = rect.Min.X, rect.Max.X
	}
	load.Min.Y, load.Max.Y = max(span.Min.Y, bounds.Min.Y), min(span.Max.Y, bounds.Max.Y)
	if load.Min.Y >= load.Max.Y {
		load.Min.Y, load.Max.Y = rect.Min.Y, rect.Max.Y
	}
	return load
}

// loadSamples reads every pixel of load from sv as a single-sample sum.
// Points without a value become empty sums.
func loadSamples(ex executor, sv *pixfx.View, load image.Rectangle) ([]icolor.Sum, error) {
	lw := load.Dx()
	samples := make([]icolor.Sum, lw*load.Dy())
	err := ex.run(load.Dy(), func(start, end int) error {
		for ly := start; ly < end; ly++ {
			for lx := range lw {
				c, err := sv.Color(load.Min.X+lx, load.Min.Y+ly)
				if noValue(err) {
					continue
				}
				if err != nil {
					return err
				}
				samples[ly*lw+lx].Add(c.A, c.R, c.G, c.B)
			}
		}
		return nil
	})
	return samples, err
}

// windowSum returns the sum of at(clamp(i)) for i in [a, b], where clamp
// limits i to [0, n). Out-of-range indices are counted in bulk, so the cost
// does not depend on how far the window extends past the edges.
func windowSum(at func(int) icolor.Sum, n, a, b int) icolor.Sum {
	var s icolor.Sum
	if left := min(b, -1) - a + 1; left > 0 {
		s.Merge(at(0).Scale(left))
	}
	if right := b - max(a, n) + 1; right > 0 {
		s.Merge(at(n - 1).Scale(right))
	}
	for i := max(a, 0); i <= min(b, n-1); i++ {
		s.Merge(at(i))
	}
	return s
}
