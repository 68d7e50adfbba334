// Package color provides the channel arithmetic shared by pixfx buffers and
// filters: alpha blending against a backdrop, clamping and channel sums for
// block and window means.
//
// All helpers work on 8-bit, non-premultiplied channels.
package color

// Blend composites a foreground channel with alpha a over an opaque
// background channel: (fg*a + bg*(255-a)) / 255.
func Blend(fg, bg, a uint8) uint8 {
	return uint8((uint32(fg)*uint32(a) + uint32(bg)*uint32(255-a)) / 255)
}

// ClampU8 clamps v to [0, 255] and rounds to the nearest integer.
func ClampU8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// ClampInt clamps v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
