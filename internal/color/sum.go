package color

// Sum accumulates channel totals of a set of pixels.
// The zero value is an empty sum.
type Sum struct {
	A, R, G, B int
	N          int
}

// Add adds one pixel to the sum.
func (s *Sum) Add(a, r, g, b uint8) {
	s.A += int(a)
	s.R += int(r)
	s.G += int(g)
	s.B += int(b)
	s.N++
}

// Merge adds all pixels of o to s.
func (s *Sum) Merge(o Sum) {
	s.A += o.A
	s.R += o.R
	s.G += o.G
	s.B += o.B
	s.N += o.N
}

// Sub removes all pixels of o from s. o must have been merged into s.
func (s *Sum) Sub(o Sum) {
	s.A -= o.A
	s.R -= o.R
	s.G -= o.G
	s.B -= o.B
	s.N -= o.N
}

// Scale multiplies s as if every pixel had been added n times.
func (s Sum) Scale(n int) Sum {
	return Sum{A: s.A * n, R: s.R * n, G: s.G * n, B: s.B * n, N: s.N * n}
}

// Empty reports whether no pixel was added.
func (s Sum) Empty() bool {
	return s.N == 0
}

// Mean returns the per-channel mean, truncated toward zero.
// Mean of an empty sum is all zeros.
func (s Sum) Mean() (a, r, g, b uint8) {
	if s.N == 0 {
		return 0, 0, 0, 0
	}
	return uint8(s.A / s.N), uint8(s.R / s.N), uint8(s.G / s.N), uint8(s.B / s.N)
}

// RoundedMean returns the per-channel mean rounded half up.
func (s Sum) RoundedMean() (a, r, g, b uint8) {
	if s.N == 0 {
		return 0, 0, 0, 0
	}
	h := s.N / 2
	return uint8((s.A + h) / s.N), uint8((s.R + h) / s.N), uint8((s.G + h) / s.N), uint8((s.B + h) / s.N)
}
