// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"image"

	"github.com/gogpu/pixfx"
	icolor "github.com/gogpu/pixfx/internal/color"
)

// Pixelate replaces square blocks of pixels with their mean color.
//
// The block grid is centred on the region: the first block starts half a
// block above and left of rect.Min, so partial blocks appear on every edge.
// A block larger than the region is reduced to the region's size on that
// axis. Each block's mean is taken over the block's pixels inside the region,
// per channel including alpha, with truncating division. The region is rect
// limited to the source; a clipped destination receives the same values it
// would without the clip.
//
// Size <= 1 is the identity.
type Pixelate struct {
	Size int
}

// NewPixelate returns a pixelation filter with the given block size.
func NewPixelate(size int) *Pixelate {
	return &Pixelate{Size: size}
}

// Name implements Filter.
func (p *Pixelate) Name() string { return "pixelate" }

// Apply implements Filter.
func (p *Pixelate) Apply(src, dst pixfx.Surface, rect image.Rectangle) error {
	return p.apply(defaultExecutor(), src, dst, rect)
}

func (p *Pixelate) apply(ex executor, src, dst pixfx.Surface, rect image.Rectangle) error {
	sv, dv, target, err := prepare(src, dst, rect)
	if err != nil {
		return err
	}

	// The grid and the block means follow the requested region; the
	// destination clip only limits which pixels are written.
	region := rect.Intersect(sv.Bounds())
	target = target.Intersect(region)
	if p.Size <= 1 || target.Empty() {
		return nil
	}

	grid := newBlockGrid(region, p.Size)
	out := newPixels(target)

	err = ex.run(grid.rows, func(start, end int) error {
		for row := start; row < end; row++ {
			for col := range grid.cols {
				block := grid.block(col, row)
				visible := block.Intersect(target)
				if visible.Empty() {
					continue
				}
				sum, err := blockSum(sv, block)
				if err != nil {
					return err
				}
				if sum.Empty() {
					continue
				}
				ca, cr, cg, cb := sum.Mean()
				c := pixfx.ARGB(ca, cr, cg, cb)
				for y := visible.Min.Y; y < visible.Max.Y; y++ {
					for x := visible.Min.X; x < visible.Max.X; x++ {
						out.set(x, y, c)
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return out.writeTo(ex, dv)
}

// blockGrid is the centred block partition of a region.
type blockGrid struct {
	rect       image.Rectangle
	origin     image.Point
	bw, bh     int
	cols, rows int
}

func newBlockGrid(rect image.Rectangle, size int) blockGrid {
	bw, bh := min(size, rect.Dx()), min(size, rect.Dy())
	origin := rect.Min.Sub(image.Pt(bw/2, bh/2))
	return blockGrid{
		rect:   rect,
		origin: origin,
		bw:     bw,
		bh:     bh,
		cols:   ceilDiv(rect.Max.X-origin.X, bw),
		rows:   ceilDiv(rect.Max.Y-origin.Y, bh),
	}
}

// block returns block (col, row) intersected with the region.
func (g blockGrid) block(col, row int) image.Rectangle {
	p := g.origin.Add(image.Pt(col*g.bw, row*g.bh))
	return image.Rectangle{Min: p, Max: p.Add(image.Pt(g.bw, g.bh))}.Intersect(g.rect)
}

func blockSum(sv *pixfx.View, block image.Rectangle) (icolor.Sum, error) {
	var s icolor.Sum
	for y := block.Min.Y; y < block.Max.Y; y++ {
		for x := block.Min.X; x < block.Max.X; x++ {
			c, err := sv.Color(x, y)
			if noValue(err) {
				continue
			}
			if err != nil {
				return s, err
			}
			s.Add(c.A, c.R, c.G, c.B)
		}
	}
	return s, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
