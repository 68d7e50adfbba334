// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides drawing surfaces that processed pixel buffers
// are composited onto.
//
// Canvas wraps a draw.Image and implements pixfx.Compositor, so a filtered
// View can be drawn back over the region it was taken from:
//
//	bm, _ := pixfx.NewBitmap(640, 480)
//	c := surface.NewCanvas(bm)
//	defer c.Close()
//
//	buf, err := filter.Process(c, bm, rect, filter.NewBlur(4))
//	if err != nil {
//	    return err
//	}
//	defer buf.Close()
//
//	out := c.Snapshot()
//
// Composite copies pixels one to one and never stretches. Scale enlarges or
// shrinks a source rectangle with nearest-neighbor sampling.
//
// Canvas refuses to draw from a resource whose pixel memory is still locked.
package surface
