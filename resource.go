// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pixfx

import "image"

// Resource is an externally owned image whose pixel memory can be locked for
// direct access. At most one lock may be held at a time.
//
// A Resource is also an image.Image so that compositors can read it once it
// has been unlocked.
type Resource interface {
	image.Image

	// Layout returns the physical pixel layout of the locked memory.
	Layout() Layout

	// Palette returns the palette of an indexed resource, or nil.
	// The returned slice must not be modified.
	Palette() []Color

	// LockBits locks area, which must lie within Bounds, and returns its
	// memory. pix[0] is the first byte of pixel area.Min and rows are stride
	// bytes apart. Returns ErrAlreadyLocked if a lock is already held.
	LockBits(area image.Rectangle) (pix []byte, stride int, err error)

	// UnlockBits releases the lock. Calling it without a lock is a no-op.
	UnlockBits() error

	// Locked reports whether a lock is held.
	Locked() bool

	// Close frees the resource. Close is idempotent.
	Close() error
}

// Compositor draws processed pixel content onto a larger drawing surface.
// It is the boundary to the editor's drawing code.
type Compositor interface {
	// Composite draws the part of src starting at sp onto the surface so
	// that it covers dst, pixel for pixel. Parts of that region lying
	// outside src are not drawn.
	Composite(dst image.Rectangle, src image.Image, sp image.Point) error
}
