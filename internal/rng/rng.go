// Package rng provides the single deterministic random stream used by a
// building generation run. Every draw in a run routes through one Stream so
// that identical seed text reproduces identical buildings bit for bit.
package rng

type Stream struct {
	state uint32
}

// New hashes seedText (FNV-1a 32-bit) into the initial LCG state.
func New(seedText string) *Stream {
	var h uint32 = 2166136261
	for i := 0; i < len(seedText); i++ {
		h ^= uint32(seedText[i])
		h *= 16777619
	}
	return &Stream{state: h}
}

// Next advances the stream and returns a value in [0, 1).
func (s *Stream) Next() float64 {
	s.state = s.state*1664525 + 1013904223
	return float64(s.state) / 4294967296.0
}

// Int returns a uniform integer in [min, max] inclusive.
func (s *Stream) Int(min, max int) int {
	if max < min {
		return min
	}
	return int(s.Next()*float64(max-min+1)) + min
}

// Chance reports true with probability p.
func (s *Stream) Chance(p float64) bool {
	return s.Next() < p
}

// Pick returns a uniformly chosen element, or ok=false for an empty slice.
func Pick[T any](s *Stream, list []T) (T, bool) {
	var zero T
	if len(list) == 0 {
		return zero, false
	}
	return list[s.Int(0, len(list)-1)], true
}

// Shuffle performs a seeded Fisher-Yates pass over list in place.
func Shuffle[T any](s *Stream, list []T) {
	for i := len(list) - 1; i > 0; i-- {
		j := s.Int(0, i)
		list[i], list[j] = list[j], list[i]
	}
}
