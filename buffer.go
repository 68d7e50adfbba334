// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pixfx

import (
	"fmt"
	"image"
)

// Surface is pixel storage addressed by integer coordinates.
// PixelBuffer and View both implement it, so views can wrap other views.
type Surface interface {
	// Bounds returns the rectangle of addressable coordinates.
	Bounds() image.Rectangle

	// Layout returns the physical layout of the underlying buffer.
	Layout() Layout

	// Locked reports whether the underlying memory is addressable.
	Locked() bool

	// Color returns the color at (x, y).
	Color(x, y int) (Color, error)

	// SetColor stores c at (x, y).
	SetColor(x, y int, c Color) error
}

// PixelBuffer is a locked region of a Resource with per-pixel access in one
// physical layout.
//
// Color and SetColor address buffer-local coordinates in
// [0, width) × [0, height) and perform no bounds checking of their own:
// coordinates outside that range are a programming error. Use a View to
// address pixels safely.
type PixelBuffer interface {
	Surface

	// Area returns the locked rectangle in resource coordinates.
	Area() image.Rectangle

	// Stride returns the number of bytes between the starts of two rows.
	Stride() int

	// Resource returns the resource the buffer locks.
	Resource() Resource

	// Lock acquires the resource lock. Lock is a no-op if the buffer is
	// already locked or its area is empty.
	Lock() error

	// Unlock releases the resource lock. Unlock is idempotent.
	Unlock() error

	// Close unlocks the buffer and, if the buffer owns its source, closes
	// the resource. Close is idempotent.
	Close() error
}

// BufferOption configures a PixelBuffer created by Lock.
type BufferOption func(*bufferOptions)

type bufferOptions struct {
	backdrop   Color
	ownsSource bool
}

func defaultBufferOptions() bufferOptions {
	return bufferOptions{
		backdrop: White,
	}
}

// WithBackdrop sets the color that ArgbBuffer.BlendedColor blends
// translucent pixels against. The default is White.
func WithBackdrop(c Color) BufferOption {
	return func(o *bufferOptions) {
		o.backdrop = c
	}
}

// WithOwnsSource makes Close also close the locked resource.
func WithOwnsSource(owns bool) BufferOption {
	return func(o *bufferOptions) {
		o.ownsSource = owns
	}
}

// Lock creates a buffer for area of res and locks it.
//
// area is intersected with the resource bounds. If the intersection is
// empty the buffer is returned unlocked and every pixel access reports
// ErrNotLocked. A rectangle with negative width or height is rejected with
// ErrInvalidRegion.
func Lock(res Resource, area image.Rectangle, opts ...BufferOption) (PixelBuffer, error) {
	if area.Max.X < area.Min.X || area.Max.Y < area.Min.Y {
		return nil, fmt.Errorf("pixfx: lock %v: %w", area, ErrInvalidRegion)
	}

	o := defaultBufferOptions()
	for _, opt := range opts {
		opt(&o)
	}

	area = area.Intersect(res.Bounds())
	lc := lockState{res: res, area: area, ownsSource: o.ownsSource}

	var buf PixelBuffer
	switch res.Layout() {
	case LayoutARGB32:
		buf = &ArgbBuffer{lockState: lc, backdrop: o.backdrop}
	case LayoutIndexed8:
		palette := res.Palette()
		if len(palette) == 0 {
			return nil, fmt.Errorf("pixfx: indexed resource without palette: %w", ErrInvalidLayout)
		}
		buf = &IndexedBuffer{lockState: lc, palette: palette}
	default:
		return nil, ErrInvalidLayout
	}

	if err := buf.Lock(); err != nil {
		return nil, err
	}
	return buf, nil
}

// WithLocked locks area of res, calls fn with the buffer and releases the
// buffer afterwards, on every exit path including a panic in fn.
func WithLocked(res Resource, area image.Rectangle, fn func(PixelBuffer) error, opts ...BufferOption) (err error) {
	buf, err := Lock(res, area, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := buf.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(buf)
}

// lockState is the lifecycle shared by all buffer layouts.
type lockState struct {
	res        Resource
	area       image.Rectangle
	ownsSource bool

	pix    []byte
	stride int
	closed bool
}

// Area returns the locked rectangle in resource coordinates.
func (l *lockState) Area() image.Rectangle {
	return l.area
}

// Bounds returns the buffer-local rectangle (0, 0, width, height).
func (l *lockState) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.area.Dx(), l.area.Dy())
}

// Width returns the buffer width in pixels.
func (l *lockState) Width() int {
	return l.area.Dx()
}

// Height returns the buffer height in pixels.
func (l *lockState) Height() int {
	return l.area.Dy()
}

// Stride returns the number of bytes per row, including padding.
// Stride is 0 while the buffer is unlocked.
func (l *lockState) Stride() int {
	return l.stride
}

// Resource returns the locked resource.
func (l *lockState) Resource() Resource {
	return l.res
}

// Locked reports whether the memory is addressable.
func (l *lockState) Locked() bool {
	return l.pix != nil
}

// Lock acquires the resource lock.
func (l *lockState) Lock() error {
	if l.pix != nil || l.area.Empty() {
		return nil
	}
	if l.closed {
		return ErrClosed
	}
	pix, stride, err := l.res.LockBits(l.area)
	if err != nil {
		return err
	}
	l.pix = pix
	l.stride = stride
	return nil
}

// Unlock releases the resource lock.
func (l *lockState) Unlock() error {
	if l.pix == nil {
		return nil
	}
	l.pix = nil
	l.stride = 0
	if err := l.res.UnlockBits(); err != nil {
		Logger().Warn("pixfx: unlock failed", "area", l.area, "err", err)
		return fmt.Errorf("pixfx: unlock: %w", err)
	}
	return nil
}

// Close unlocks and, when the buffer owns its source, closes the resource.
func (l *lockState) Close() error {
	if l.closed {
		return nil
	}
	err := l.Unlock()
	l.closed = true
	if l.ownsSource {
		if cerr := l.res.Close(); cerr != nil {
			Logger().Warn("pixfx: closing source failed", "err", cerr)
			if err == nil {
				err = fmt.Errorf("pixfx: close source: %w", cerr)
			}
		}
	}
	return err
}
