// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pixfx

// Layout is the physical arrangement of pixels in locked memory.
type Layout uint8

const (
	// LayoutARGB32 stores 4 bytes per pixel in B, G, R, A order, which is a
	// little-endian 0xAARRGGBB word. Alpha is not premultiplied.
	LayoutARGB32 Layout = iota

	// LayoutIndexed8 stores one byte per pixel, an index into a palette.
	LayoutIndexed8

	layoutCount
)

// LayoutInfo contains metadata about a pixel layout.
type LayoutInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// HasAlpha indicates if pixels carry their own alpha channel.
	HasAlpha bool

	// HasPalette indicates if pixels are palette indices.
	HasPalette bool

	// ConcurrentWrites indicates whether goroutines writing disjoint
	// coordinates of one buffer may do so without synchronization.
	ConcurrentWrites bool
}

var layoutInfoTable = [layoutCount]LayoutInfo{
	LayoutARGB32: {
		BytesPerPixel:    4,
		HasAlpha:         true,
		HasPalette:       false,
		ConcurrentWrites: true,
	},
	LayoutIndexed8: {
		BytesPerPixel: 1,
		HasAlpha:      false,
		HasPalette:    true,
		// The color->index cache is shared by all writers of a buffer.
		ConcurrentWrites: false,
	},
}

// Info returns the LayoutInfo for this layout.
func (l Layout) Info() LayoutInfo {
	if l >= layoutCount {
		return LayoutInfo{}
	}
	return layoutInfoTable[l]
}

// BytesPerPixel returns the number of bytes per pixel.
func (l Layout) BytesPerPixel() int {
	return l.Info().BytesPerPixel
}

// ConcurrentWrites reports whether disjoint writes may run in parallel.
func (l Layout) ConcurrentWrites() bool {
	return l.Info().ConcurrentWrites
}

// IsValid returns true if the layout is known.
func (l Layout) IsValid() bool {
	return l < layoutCount
}

// RowBytes returns the number of bytes used by width pixels.
func (l Layout) RowBytes(width int) int {
	return width * l.BytesPerPixel()
}

// String returns a string representation of the layout.
func (l Layout) String() string {
	switch l {
	case LayoutARGB32:
		return "ARGB32"
	case LayoutIndexed8:
		return "Indexed8"
	default:
		return "Unknown"
	}
}
