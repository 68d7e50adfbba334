// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/pixfx"
	"github.com/gogpu/pixfx/internal/parallel"
)

// Filter processes the pixels of rect, reading src and writing dst.
// rect is in the coordinates both surfaces are addressed with.
type Filter interface {
	// Name returns a short lower-case name used in logs and configuration.
	Name() string

	// Apply runs the filter. An empty rect is a no-op; a rect with negative
	// size fails with pixfx.ErrInvalidRegion.
	Apply(src, dst pixfx.Surface, rect image.Rectangle) error
}

// applier is implemented by the filters of this package so that Process can
// choose how work is split.
type applier interface {
	apply(ex executor, src, dst pixfx.Surface, rect image.Rectangle) error
}

// executor splits work into chunks run on a worker pool.
type executor struct {
	pool   *parallel.WorkerPool
	chunks int
}

func defaultExecutor() executor {
	return newExecutor(0)
}

// newExecutor returns an executor splitting work into the given number of
// chunks, or one per pool worker if chunks <= 0.
func newExecutor(chunks int) executor {
	pool := parallel.Default()
	if chunks <= 0 {
		chunks = pool.Workers()
	}
	return executor{pool: pool, chunks: chunks}
}

// forWrites returns an executor that is safe for writing into dst.
// Layouts that do not allow concurrent writes get a single chunk.
func (e executor) forWrites(dst pixfx.Surface) executor {
	if !dst.Layout().ConcurrentWrites() {
		e.chunks = 1
	}
	return e
}

func (e executor) run(n int, fn func(start, end int) error) error {
	return e.pool.ParallelFor(n, e.chunks, fn)
}

// prepare validates rect and wraps both surfaces in views, so that no access
// can reach memory outside a buffer. The returned rect is clipped to what dst
// can accept.
func prepare(src, dst pixfx.Surface, rect image.Rectangle) (sv, dv *pixfx.View, r image.Rectangle, err error) {
	if rect.Max.X < rect.Min.X || rect.Max.Y < rect.Min.Y {
		return nil, nil, image.Rectangle{}, fmt.Errorf("filter: rect %v: %w", rect, pixfx.ErrInvalidRegion)
	}
	if sv, err = asView(src); err != nil {
		return nil, nil, image.Rectangle{}, err
	}
	if dv, err = asView(dst); err != nil {
		return nil, nil, image.Rectangle{}, err
	}
	return sv, dv, rect.Intersect(dv.Bounds()), nil
}

func asView(s pixfx.Surface) (*pixfx.View, error) {
	if v, ok := s.(*pixfx.View); ok {
		return v, nil
	}
	return pixfx.NewView(s)
}

// noValue reports whether err means the source has no pixel at a point.
func noValue(err error) bool {
	return errors.Is(err, pixfx.ErrNoValue)
}

// pixels holds computed colors for a rectangle until they are written.
type pixels struct {
	rect image.Rectangle
	c    []pixfx.Color
	ok   []bool
}

func newPixels(r image.Rectangle) *pixels {
	n := r.Dx() * r.Dy()
	return &pixels{rect: r, c: make([]pixfx.Color, n), ok: make([]bool, n)}
}

func (p *pixels) set(x, y int, c pixfx.Color) {
	i := (y-p.rect.Min.Y)*p.rect.Dx() + (x - p.rect.Min.X)
	p.c[i] = c
	p.ok[i] = true
}

// writeTo stores every computed pixel into dst, rows split by ex.
func (p *pixels) writeTo(ex executor, dst pixfx.Surface) error {
	w := p.rect.Dx()
	return ex.forWrites(dst).run(p.rect.Dy(), func(start, end int) error {
		for oy := start; oy < end; oy++ {
			row := oy * w
			for ox := range w {
				if !p.ok[row+ox] {
					continue
				}
				if err := dst.SetColor(p.rect.Min.X+ox, p.rect.Min.Y+oy, p.c[row+ox]); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
