// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package filter provides the pixel effects of the annotation editor:
//   - Box blur (separable, exact integer mean, edge clamp)
//   - Pixelation (block means on a grid centred on the region)
//   - Highlight (per-channel minimum against a marker color)
//   - Magnifier (nearest-neighbour enlargement of the region centre)
//   - Color matrix transforms (grayscale, brightness, contrast, invert)
//
// Filters read from one pixfx.Surface and write to another, addressing both
// in canvas coordinates. Reads always complete before the first write, so
// source and destination may be the same surface.
//
// Work is split into row or block ranges and run on a shared worker pool.
// The split never changes the result: output is byte-identical for any
// number of workers.
//
// Process wraps the whole editing operation: lock the region, run a filter on
// a copy and hand the result to a compositor.
package filter
