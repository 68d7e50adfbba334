// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"image"

	"github.com/gogpu/pixfx"
)

// Magnify enlarges the centre of a region to fill the whole region.
//
// The source is a (w/Factor)×(h/Factor) rectangle, at least 1×1, centred on
// the region. It is scaled up with nearest-neighbour sampling at pixel
// centres, the same mapping as golang.org/x/image/draw.NearestNeighbor, so
// magnified pixels keep hard edges.
//
// Factor < 1 is treated as 1, which is the identity.
type Magnify struct {
	Factor int
}

// NewMagnify returns a magnifier with the given factor.
func NewMagnify(factor int) *Magnify {
	return &Magnify{Factor: factor}
}

// Name implements Filter.
func (m *Magnify) Name() string { return "magnify" }

// Apply implements Filter.
func (m *Magnify) Apply(src, dst pixfx.Surface, rect image.Rectangle) error {
	return m.apply(defaultExecutor(), src, dst, rect)
}

// SourceRect returns the rectangle of rect that is enlarged onto rect.
func (m *Magnify) SourceRect(rect image.Rectangle) image.Rectangle {
	f := max(m.Factor, 1)
	w, h := rect.Dx(), rect.Dy()
	sw, sh := max(1, w/f), max(1, h/f)
	p := image.Pt(rect.Min.X+w/2-sw/2, rect.Min.Y+h/2-sh/2)
	return image.Rectangle{Min: p, Max: p.Add(image.Pt(sw, sh))}
}

func (m *Magnify) apply(ex executor, src, dst pixfx.Surface, rect image.Rectangle) error {
	sv, dv, target, err := prepare(src, dst, rect)
	if err != nil {
		return err
	}
	if rect.Empty() || target.Empty() {
		return nil
	}

	from := m.SourceRect(rect)
	w, h := rect.Dx(), rect.Dy()
	sw, sh := from.Dx(), from.Dy()

	out := newPixels(target)
	err = ex.run(target.Dy(), func(start, end int) error {
		for y := target.Min.Y + start; y < target.Min.Y+end; y++ {
			dy := y - rect.Min.Y
			sy := from.Min.Y + (2*dy+1)*sh/(2*h)
			for x := target.Min.X; x < target.Max.X; x++ {
				dx := x - rect.Min.X
				sx := from.Min.X + (2*dx+1)*sw/(2*w)
				c, err := sv.Color(sx, sy)
				if noValue(err) {
					continue
				}
				if err != nil {
					return err
				}
				out.set(x, y, c)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return out.writeTo(ex, dv)
}
