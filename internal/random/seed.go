// Package random provides seed generation for deck shuffling.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewRand returns a pseudo-random source seeded with seed, or with a fresh
// crypto/rand seed when seed is zero.
func NewRand(seed int64) (*rand.Rand, error) {
	if seed == 0 {
		var err error
		seed, err = NewSeed()
		if err != nil {
			return nil, err
		}
	}
	return rand.New(rand.NewSource(seed)), nil
}
