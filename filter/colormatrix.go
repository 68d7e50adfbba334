// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"image"

	"github.com/gogpu/pixfx"
	icolor "github.com/gogpu/pixfx/internal/color"
)

// ColorMatrix applies a 4x5 color transformation matrix to every pixel:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// Channels are in [0, 255] during the transformation and are rounded and
// clamped back to bytes afterwards. The fifth column is a bias.
type ColorMatrix struct {
	// Matrix is the 4x5 matrix in row-major order:
	// [0-4] = R, [5-9] = G, [10-14] = B, [15-19] = A.
	Matrix [20]float32

	name string
}

// NewColorMatrix creates a color matrix filter with the given matrix.
func NewColorMatrix(matrix [20]float32) *ColorMatrix {
	return &ColorMatrix{Matrix: matrix}
}

// Identity returns a color matrix that passes pixels through unchanged.
func Identity() *ColorMatrix {
	return &ColorMatrix{
		Matrix: [20]float32{
			1, 0, 0, 0, 0, // R
			0, 1, 0, 0, 0, // G
			0, 0, 1, 0, 0, // B
			0, 0, 0, 1, 0, // A
		},
		name: "identity",
	}
}

// Grayscale returns a color matrix that replaces RGB with its luma, using
// the 0.299/0.587/0.114 weights.
func Grayscale() *ColorMatrix {
	const (
		lumR = 0.299
		lumG = 0.587
		lumB = 0.114
	)
	return &ColorMatrix{
		Matrix: [20]float32{
			lumR, lumG, lumB, 0, 0,
			lumR, lumG, lumB, 0, 0,
			lumR, lumG, lumB, 0, 0,
			0, 0, 0, 1, 0,
		},
		name: "grayscale",
	}
}

// Brightness scales RGB by factor.
// 0 = black, 1 = unchanged, 2 = twice as bright.
func Brightness(factor float32) *ColorMatrix {
	return &ColorMatrix{
		Matrix: [20]float32{
			factor, 0, 0, 0, 0,
			0, factor, 0, 0, 0,
			0, 0, factor, 0, 0,
			0, 0, 0, 1, 0,
		},
		name: "brightness",
	}
}

// Contrast scales RGB around mid-gray: (c - 128) * factor + 128.
// 0 = flat gray, 1 = unchanged.
func Contrast(factor float32) *ColorMatrix {
	offset := 128 * (1 - factor)
	return &ColorMatrix{
		Matrix: [20]float32{
			factor, 0, 0, 0, offset,
			0, factor, 0, 0, offset,
			0, 0, factor, 0, offset,
			0, 0, 0, 1, 0,
		},
		name: "contrast",
	}
}

// Invert returns a color matrix producing the negative: c' = 255 - c.
func Invert() *ColorMatrix {
	return &ColorMatrix{
		Matrix: [20]float32{
			-1, 0, 0, 0, 255,
			0, -1, 0, 0, 255,
			0, 0, -1, 0, 255,
			0, 0, 0, 1, 0,
		},
		name: "invert",
	}
}

// Name implements Filter.
func (f *ColorMatrix) Name() string {
	if f.name == "" {
		return "colormatrix"
	}
	return f.name
}

// Transform returns c transformed by the matrix.
func (f *ColorMatrix) Transform(c pixfx.Color) pixfx.Color {
	m := &f.Matrix
	r, g, b, a := float32(c.R), float32(c.G), float32(c.B), float32(c.A)
	return pixfx.Color{
		R: icolor.ClampU8(m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]),
		G: icolor.ClampU8(m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]),
		B: icolor.ClampU8(m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]),
		A: icolor.ClampU8(m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]),
	}
}

// Apply implements Filter.
func (f *ColorMatrix) Apply(src, dst pixfx.Surface, rect image.Rectangle) error {
	return f.apply(defaultExecutor(), src, dst, rect)
}

func (f *ColorMatrix) apply(ex executor, src, dst pixfx.Surface, rect image.Rectangle) error {
	return pointwise(ex, src, dst, rect, f.Transform)
}
