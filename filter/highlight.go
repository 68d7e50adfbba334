// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"image"

	"github.com/gogpu/pixfx"
)

// Highlight is an ink-marker effect: every color channel is limited to the
// marker color's channel, out = min(Color, in) for R, G and B. Alpha is left
// as it is.
type Highlight struct {
	Color pixfx.Color
}

// NewHighlight returns a highlight filter with the given marker color.
func NewHighlight(c pixfx.Color) *Highlight {
	return &Highlight{Color: c}
}

// Name implements Filter.
func (h *Highlight) Name() string { return "highlight" }

// Apply implements Filter.
func (h *Highlight) Apply(src, dst pixfx.Surface, rect image.Rectangle) error {
	return h.apply(defaultExecutor(), src, dst, rect)
}

func (h *Highlight) apply(ex executor, src, dst pixfx.Surface, rect image.Rectangle) error {
	m := h.Color
	return pointwise(ex, src, dst, rect, func(c pixfx.Color) pixfx.Color {
		return pixfx.Color{
			A: c.A,
			R: min(m.R, c.R),
			G: min(m.G, c.G),
			B: min(m.B, c.B),
		}
	})
}

// pointwise maps every pixel of rect through fn. Points without a source
// value are skipped.
func pointwise(ex executor, src, dst pixfx.Surface, rect image.Rectangle, fn func(pixfx.Color) pixfx.Color) error {
	sv, dv, rect, err := prepare(src, dst, rect)
	if err != nil || rect.Empty() {
		return err
	}

	out := newPixels(rect)
	err = ex.run(rect.Dy(), func(start, end int) error {
		for y := rect.Min.Y + start; y < rect.Min.Y+end; y++ {
			for x := rect.Min.X; x < rect.Max.X; x++ {
				c, err := sv.Color(x, y)
				if noValue(err) {
					continue
				}
				if err != nil {
					return err
				}
				out.set(x, y, fn(c))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return out.writeTo(ex, dv)
}
