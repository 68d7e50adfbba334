// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pixfx

import "errors"

// Errors returned by buffers, views and resources.
var (
	// ErrNotLocked is returned when pixels are accessed on a buffer that does
	// not currently hold its resource lock.
	ErrNotLocked = errors.New("pixfx: buffer not locked")

	// ErrUnsupportedColor is returned when an indexed buffer is asked to store
	// a color that is not part of its palette.
	ErrUnsupportedColor = errors.New("pixfx: color not in palette")

	// ErrInvalidRegion is returned for rectangles with negative size or
	// rectangles lying entirely outside the surface they refer to.
	ErrInvalidRegion = errors.New("pixfx: invalid region")

	// ErrNoValue is returned by View.Color for points inside an inverted clip
	// rectangle. There is no pixel to report; callers leave their destination
	// untouched.
	ErrNoValue = errors.New("pixfx: no value at point")

	// ErrAlreadyLocked is returned when a resource is locked twice, or drawn
	// while its memory is locked.
	ErrAlreadyLocked = errors.New("pixfx: resource already locked")

	// ErrClosed is returned when a closed resource is used.
	ErrClosed = errors.New("pixfx: resource closed")

	// ErrInvalidLayout is returned for unknown pixel layouts.
	ErrInvalidLayout = errors.New("pixfx: invalid pixel layout")

	// ErrInvalidStride is returned when a stride is smaller than a pixel row.
	ErrInvalidStride = errors.New("pixfx: stride too small for width")
)
