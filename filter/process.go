// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"fmt"
	"image"
	"time"

	"github.com/gogpu/pixfx"
)

// Process applies f to rect of res and composites the result onto canvas.
//
// The filter reads the original pixels of res and writes into a copy of the
// affected area, so res itself is never modified by the filter. Only pixels
// inside rect are changed, or only pixels outside it with WithInvert, in
// which case the whole resource is processed. The copy is then drawn over
// the same area of canvas; a nil canvas skips that step.
//
// The returned buffer holds the processed pixels. It is unlocked; call Lock
// to read it and Close to release it. An empty area returns a nil buffer and
// no error.
func Process(canvas pixfx.Compositor, res pixfx.Resource, rect image.Rectangle, f Filter, opts ...Option) (pixfx.PixelBuffer, error) {
	if rect.Max.X < rect.Min.X || rect.Max.Y < rect.Min.Y {
		return nil, fmt.Errorf("filter: process %v: %w", rect, pixfx.ErrInvalidRegion)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	area := rect
	if o.invert {
		area = res.Bounds()
	}
	area = area.Intersect(res.Bounds())
	if area.Empty() {
		return nil, nil
	}

	start := time.Now()

	clone, err := pixfx.CloneArea(res, area)
	if err != nil {
		return nil, fmt.Errorf("filter: copy %v: %w", area, err)
	}
	out, err := pixfx.Lock(clone, clone.Bounds(), pixfx.WithOwnsSource(true))
	if err != nil {
		_ = clone.Close()
		return nil, err
	}

	if err := run(res, area, rect, out, f, o); err != nil {
		_ = out.Close()
		return nil, err
	}

	dv, err := pixfx.NewView(out, pixfx.WithOffset(area.Min))
	if err != nil {
		_ = out.Close()
		return nil, err
	}
	if canvas != nil {
		err = dv.DrawTo(canvas, area)
	} else {
		err = out.Unlock()
	}
	if err != nil {
		_ = out.Close()
		return nil, err
	}

	pixfx.Logger().Debug("filter: processed",
		"filter", f.Name(),
		"rect", rect,
		"invert", o.invert,
		"duration", time.Since(start))
	return out, nil
}

// run locks area of res as the filter input and applies f into out.
// The input lock is released before run returns.
func run(res pixfx.Resource, area, rect image.Rectangle, out pixfx.PixelBuffer, f Filter, o options) (err error) {
	var bufOpts []pixfx.BufferOption
	var srcOpts []pixfx.ViewOption
	if o.hasBackdrop {
		bufOpts = append(bufOpts, pixfx.WithBackdrop(o.backdrop))
		srcOpts = append(srcOpts, pixfx.WithBlendedReads())
	}

	return pixfx.WithLocked(res, area, func(in pixfx.PixelBuffer) error {
		src, err := pixfx.NewView(in, append(srcOpts, pixfx.WithOffset(area.Min))...)
		if err != nil {
			return err
		}

		clip := pixfx.WithClip(rect.Sub(area.Min))
		if o.invert {
			clip = pixfx.WithInvertedClip(rect.Sub(area.Min))
		}
		dst, err := pixfx.NewView(out, pixfx.WithOffset(area.Min), clip)
		if err != nil {
			return err
		}

		if a, ok := f.(applier); ok {
			err = a.apply(newExecutor(o.workers), src, dst, area)
		} else {
			err = f.Apply(src, dst, area)
		}
		if err != nil {
			return fmt.Errorf("filter: %s: %w", f.Name(), err)
		}
		return nil
	}, bufOpts...)
}
