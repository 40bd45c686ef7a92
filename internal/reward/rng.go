package reward

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource yields uniform draws in [0, 1)
type RandomSource interface {
	Float64() float64
}

// cryptoSource is the default source
type cryptoSource struct{}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64() //nolint:gosec // fallback for game randomness
	}
	// top 53 bits give a uniform float in [0, 1)
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

// DefaultSource returns the crypto-backed source used in production
func DefaultSource() RandomSource { return cryptoSource{} }

type seededSource struct{ r *rand.Rand }

// NewSeededSource returns a reproducible source, used for simulations
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))} //nolint:gosec // reproducible by intent
}

func (s *seededSource) Float64() float64 { return s.r.Float64() }

// FixedSource replays the given rolls in order, repeating the last one
type FixedSource struct {
	rolls []float64
	next  int
}

// NewFixedSource builds a source that returns rolls in sequence
func NewFixedSource(rolls ...float64) *FixedSource {
	return &FixedSource{rolls: rolls}
}

// Float64 returns the next configured roll
func (f *FixedSource) Float64() float64 {
	if len(f.rolls) == 0 {
		return 0
	}
	if f.next >= len(f.rolls) {
		return f.rolls[len(f.rolls)-1]
	}
	v := f.rolls[f.next]
	f.next++
	return v
}
