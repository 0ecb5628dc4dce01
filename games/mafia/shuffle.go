/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package mafia

import (
	crand "crypto/rand"
	"io"
	"math/big"
	"math/rand/v2"
)

// RandomSource yields integers uniformly distributed in [0, n).
type RandomSource interface {
	IntN(n int) int
}

// CryptoSource draws from crypto/rand. If the system source fails, that draw
// falls back to math/rand/v2, which is uniform but not cryptographically
// secure.
type CryptoSource struct {
	reader io.Reader
}

func (c CryptoSource) IntN(n int) int {
	r := c.reader
	if r == nil {
		r = crand.Reader
	}
	v, err := crand.Int(r, big.NewInt(int64(n)))
	if err != nil {
		return rand.IntN(n)
	}
	return int(v.Int64())
}

// Shuffle permutes s in place with Fisher-Yates: walking from the last index
// down to 1, element i is swapped with a uniformly chosen j in [0, i].
func Shuffle[T any](s []T, src RandomSource) {
	if src == nil {
		src = CryptoSource{}
	}
	for i := len(s) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
