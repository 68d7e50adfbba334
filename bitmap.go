// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pixfx

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	xdraw "golang.org/x/image/draw"
)

// Bitmap is an in-memory Resource.
//
// Pixel memory is a single byte slice with rows stride bytes apart, in the
// bitmap's Layout. Bitmap also implements draw.Image, so it can serve as the
// canvas a Compositor draws onto.
//
// Thread safety: locking and closing are safe for concurrent use. Pixel
// memory handed out by LockBits is not synchronized.
type Bitmap struct {
	pix     []byte
	stride  int
	rect    image.Rectangle
	layout  Layout
	palette []Color

	// model maps arbitrary colors to palette entries for Set and At.
	model color.Palette

	mu     sync.Mutex
	locked bool
	closed bool
}

var _ Resource = (*Bitmap)(nil)

// NewBitmap creates a transparent ARGB32 bitmap.
func NewBitmap(width, height int) (*Bitmap, error) {
	return NewBitmapWithStride(width, height, LayoutARGB32, LayoutARGB32.RowBytes(width), nil)
}

// NewIndexedBitmap creates an Indexed8 bitmap with every pixel set to
// palette entry 0. The palette must hold between 1 and 256 colors.
func NewIndexedBitmap(width, height int, palette []Color) (*Bitmap, error) {
	return NewBitmapWithStride(width, height, LayoutIndexed8, LayoutIndexed8.RowBytes(width), palette)
}

// NewBitmapWithStride creates a bitmap whose rows are stride bytes apart.
// Stride must be at least layout.RowBytes(width); the extra bytes are row
// padding. palette is required for LayoutIndexed8 and ignored otherwise.
func NewBitmapWithStride(width, height int, layout Layout, stride int, palette []Color) (*Bitmap, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("pixfx: bitmap %dx%d: %w", width, height, ErrInvalidRegion)
	}
	if !layout.IsValid() {
		return nil, ErrInvalidLayout
	}
	if stride < layout.RowBytes(width) {
		return nil, ErrInvalidStride
	}

	b := &Bitmap{
		pix:    make([]byte, stride*height),
		stride: stride,
		rect:   image.Rect(0, 0, width, height),
		layout: layout,
	}

	if layout == LayoutIndexed8 {
		if len(palette) == 0 || len(palette) > 256 {
			return nil, fmt.Errorf("pixfx: palette has %d entries: %w", len(palette), ErrInvalidLayout)
		}
		b.palette = append([]Color(nil), palette...)
		b.model = make(color.Palette, len(palette))
		for i, c := range palette {
			b.model[i] = c.NRGBA()
		}
	}

	return b, nil
}

// BitmapFromImage copies img into a new bitmap with bounds starting at (0,0).
// Paletted images become Indexed8 bitmaps with the same palette; everything
// else is converted to ARGB32.
func BitmapFromImage(img image.Image) (*Bitmap, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if p, ok := img.(*image.Paletted); ok && len(p.Palette) > 0 {
		palette := make([]Color, len(p.Palette))
		for i, c := range p.Palette {
			palette[i] = ColorOf(c)
		}
		b, err := NewIndexedBitmap(w, h, palette)
		if err != nil {
			return nil, err
		}
		for y := range h {
			srcStart := (y+bounds.Min.Y-p.Rect.Min.Y)*p.Stride + (bounds.Min.X - p.Rect.Min.X)
			copy(b.pix[y*b.stride:y*b.stride+w], p.Pix[srcStart:srcStart+w])
		}
		return b, nil
	}

	b, err := NewBitmap(w, h)
	if err != nil {
		return nil, err
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect != bounds {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		xdraw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, xdraw.Src)
	}

	for y := range h {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		dst := b.pix[y*b.stride : y*b.stride+w*4]
		for i := 0; i < len(src); i += 4 {
			dst[i+0] = src[i+2]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i+0]
			dst[i+3] = src[i+3]
		}
	}

	return b, nil
}

// Bounds implements image.Image.
func (b *Bitmap) Bounds() image.Rectangle {
	return b.rect
}

// ColorModel implements image.Image.
func (b *Bitmap) ColorModel() color.Model {
	if b.layout == LayoutIndexed8 {
		return b.model
	}
	return color.NRGBAModel
}

// At implements image.Image.
func (b *Bitmap) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(b.rect)) || b.pix == nil {
		return Transparent
	}
	i := y*b.stride + x*b.layout.BytesPerPixel()
	if b.layout == LayoutIndexed8 {
		idx := int(b.pix[i])
		if idx >= len(b.palette) {
			return Transparent
		}
		return b.palette[idx]
	}
	return Color{B: b.pix[i], G: b.pix[i+1], R: b.pix[i+2], A: b.pix[i+3]}
}

// Set implements draw.Image. On indexed bitmaps c is mapped to the nearest
// palette entry.
func (b *Bitmap) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(b.rect)) || b.pix == nil {
		return
	}
	i := y*b.stride + x*b.layout.BytesPerPixel()
	if b.layout == LayoutIndexed8 {
		b.pix[i] = uint8(b.model.Index(c))
		return
	}
	pc := ColorOf(c)
	b.pix[i+0] = pc.B
	b.pix[i+1] = pc.G
	b.pix[i+2] = pc.R
	b.pix[i+3] = pc.A
}

// Layout returns the pixel layout.
func (b *Bitmap) Layout() Layout {
	return b.layout
}

// Palette returns the palette of an indexed bitmap, or nil.
func (b *Bitmap) Palette() []Color {
	return b.palette
}

// Stride returns the number of bytes per row, including padding.
func (b *Bitmap) Stride() int {
	return b.stride
}

// LockBits implements Resource.
func (b *Bitmap) LockBits(area image.Rectangle) ([]byte, int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, 0, ErrClosed
	}
	if b.locked {
		return nil, 0, ErrAlreadyLocked
	}
	if area.Empty() || !area.In(b.rect) {
		return nil, 0, fmt.Errorf("pixfx: lock %v outside %v: %w", area, b.rect, ErrInvalidRegion)
	}

	bpp := b.layout.BytesPerPixel()
	start := area.Min.Y*b.stride + area.Min.X*bpp
	end := (area.Max.Y-1)*b.stride + area.Max.X*bpp
	b.locked = true

	Logger().Debug("pixfx: bitmap locked", "area", area, "layout", b.layout)
	return b.pix[start:end:end], b.stride, nil
}

// UnlockBits implements Resource.
func (b *Bitmap) UnlockBits() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.locked {
		b.locked = false
		Logger().Debug("pixfx: bitmap unlocked", "bounds", b.rect)
	}
	return nil
}

// Locked implements Resource.
func (b *Bitmap) Locked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.locked
}

// Close frees the pixel memory. Close is idempotent.
func (b *Bitmap) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	b.locked = false
	b.pix = nil
	return nil
}

// Closed reports whether Close has been called.
func (b *Bitmap) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// CloneArea copies area of res, intersected with its bounds, into a new
// tightly packed bitmap with the same layout and palette whose bounds start
// at (0,0). res is locked for the duration of the copy.
func CloneArea(res Resource, area image.Rectangle) (*Bitmap, error) {
	area = area.Intersect(res.Bounds())
	layout := res.Layout()

	c, err := NewBitmapWithStride(area.Dx(), area.Dy(), layout, layout.RowBytes(area.Dx()), res.Palette())
	if err != nil {
		return nil, err
	}
	if area.Empty() {
		return c, nil
	}

	pix, stride, err := res.LockBits(area)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.UnlockBits() }()

	rowBytes := layout.RowBytes(area.Dx())
	for y := range area.Dy() {
		copy(c.pix[y*c.stride:y*c.stride+rowBytes], pix[y*stride:y*stride+rowBytes])
	}

	return c, nil
}

// ToImage returns a copy of the bitmap as an *image.Paletted (indexed
// bitmaps) or *image.NRGBA.
func (b *Bitmap) ToImage() image.Image {
	w, h := b.rect.Dx(), b.rect.Dy()

	if b.layout == LayoutIndexed8 {
		img := image.NewPaletted(b.rect, append(color.Palette(nil), b.model...))
		for y := range h {
			copy(img.Pix[y*img.Stride:y*img.Stride+w], b.pix[y*b.stride:y*b.stride+w])
		}
		return img
	}

	img := image.NewNRGBA(b.rect)
	for y := range h {
		src := b.pix[y*b.stride : y*b.stride+w*4]
		dst := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for i := 0; i < len(src); i += 4 {
			dst[i+0] = src[i+2]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i+0]
			dst[i+3] = src[i+3]
		}
	}
	return img
}
