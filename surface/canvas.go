// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"
	"image/draw"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/pixfx"
)

// locker is implemented by images whose memory can be locked, such as
// pixfx.Resource.
type locker interface {
	Locked() bool
}

// Canvas is a pixfx.Compositor that draws onto a draw.Image.
//
// Composited pixels replace the destination (draw.Src). Composite copies
// pixels one to one; Scale stretches a source rectangle onto a destination
// rectangle of another size.
//
// Example:
//
//	img := image.NewRGBA(image.Rect(0, 0, 800, 600))
//	c := surface.NewCanvas(img)
//	defer c.Close()
//
//	buf, err := filter.Process(c, res, rect, filter.NewBlur(4))
type Canvas struct {
	mu     sync.Mutex
	img    draw.Image
	closed bool
}

var _ pixfx.Compositor = (*Canvas)(nil)

// NewCanvas creates a canvas drawing onto img.
func NewCanvas(img draw.Image) *Canvas {
	return &Canvas{img: img}
}

// NewImageCanvas creates a canvas backed by a new transparent *image.RGBA.
func NewImageCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return NewCanvas(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// Bounds returns the canvas bounds.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Image returns the image the canvas draws onto.
func (c *Canvas) Image() draw.Image {
	return c.img
}

// Composite implements pixfx.Compositor.
//
// The source region starts at sp and has the size of dst. Parts of it
// outside the source bounds are not drawn, and the matching parts of dst are
// left as they are. Locked sources or destinations are refused with
// pixfx.ErrAlreadyLocked: their memory may be changing.
func (c *Canvas) Composite(dst image.Rectangle, src image.Image, sp image.Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkDraw(src); err != nil {
		return err
	}

	sr := image.Rectangle{Min: sp, Max: sp.Add(dst.Size())}.Intersect(src.Bounds())
	if dst.Empty() || sr.Empty() {
		return nil
	}
	dp := dst.Min.Add(sr.Min.Sub(sp))
	xdraw.Copy(c.img, dp, src, sr, draw.Src, nil)
	return nil
}

// Scale draws sr of src stretched over dst with nearest-neighbor sampling.
// sr is limited to the source bounds first.
func (c *Canvas) Scale(dst image.Rectangle, src image.Image, sr image.Rectangle) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkDraw(src); err != nil {
		return err
	}

	sr = sr.Intersect(src.Bounds())
	if dst.Empty() || sr.Empty() {
		return nil
	}
	xdraw.NearestNeighbor.Scale(c.img, dst, src, sr, draw.Src, nil)
	return nil
}

func (c *Canvas) checkDraw(src image.Image) error {
	if c.closed {
		return pixfx.ErrClosed
	}
	if l, ok := src.(locker); ok && l.Locked() {
		return fmt.Errorf("surface: source: %w", pixfx.ErrAlreadyLocked)
	}
	if l, ok := c.img.(locker); ok && l.Locked() {
		return fmt.Errorf("surface: canvas: %w", pixfx.ErrAlreadyLocked)
	}
	return nil
}

// Snapshot returns a copy of the canvas content.
func (c *Canvas) Snapshot() *image.NRGBA {
	c.mu.Lock()
	defer c.mu.Unlock()

	b := c.img.Bounds()
	out := image.NewNRGBA(b)
	xdraw.Draw(out, b, c.img, b.Min, draw.Src)
	return out
}

// Close marks the canvas closed; later Composite calls fail with
// pixfx.ErrClosed. Close is idempotent and does not touch the image.
func (c *Canvas) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}
