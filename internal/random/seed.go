// Package random provides seed generation helpers for the sampling engine.
//
// It uses crypto/rand to generate high-entropy seeds so that unseeded
// samplers never share pseudo-random generator state.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"time"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Seed returns a crypto-random seed, falling back to the wall clock when
// the system entropy source is unavailable.
func Seed() int64 {
	seed, err := NewSeed()
	if err != nil {
		return time.Now().UnixNano()
	}
	return seed
}
