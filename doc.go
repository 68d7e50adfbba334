// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pixfx provides direct access to locked pixel memory for the
// annotation editor's pixel effects.
//
// The package is organized in three layers:
//   - [Resource]: an externally owned image that can hand out its pixel
//     memory for one sub-rectangle at a time. [Bitmap] is the in-memory
//     implementation.
//   - [PixelBuffer]: a locked region of a resource with raw per-pixel access
//     for one physical layout. [ArgbBuffer] stores 32-bit B,G,R,A pixels,
//     [IndexedBuffer] stores 8-bit indices into a palette.
//   - [View]: a coordinate view over a buffer (or another view) that applies
//     an offset and a clip rectangle, so effects can address pixels in canvas
//     coordinates without ever touching memory outside the permitted region.
//
// Buffers are released with Close, which is safe to call more than once:
//
//	buf, err := pixfx.Lock(bitmap, image.Rect(10, 10, 110, 60))
//	if err != nil {
//	    return err
//	}
//	defer buf.Close()
//
//	v, err := pixfx.NewView(buf, pixfx.WithOffset(buf.Area().Min))
//	if err != nil {
//	    return err
//	}
//	c, err := v.Color(42, 17) // canvas coordinates
//
// The effects themselves live in the filter sub-package.
package pixfx
