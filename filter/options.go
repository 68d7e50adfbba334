// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import "github.com/gogpu/pixfx"

// Option configures Process.
type Option func(*options)

type options struct {
	invert      bool
	workers     int
	backdrop    pixfx.Color
	hasBackdrop bool
}

// WithInvert applies the filter everywhere except inside the target
// rectangle.
func WithInvert(invert bool) Option {
	return func(o *options) {
		o.invert = invert
	}
}

// WithWorkers sets how many chunks the work is split into.
// n <= 0 uses one chunk per worker of the shared pool. The output does not
// depend on n.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithBackdrop makes the filter read translucent source pixels blended over
// c. Without it pixels are read as stored.
func WithBackdrop(c pixfx.Color) Option {
	return func(o *options) {
		o.backdrop = c
		o.hasBackdrop = true
	}
}
