package sim

import "math/rand/v2"

const (
	cookieLen      = 32
	cookieAlphabet = "0123456789abcdef"
)

// NewCookie returns a fresh random 32-character lowercase-hex visitor token.
// Collision probability is negligible at simulation scale, so collisions are
// an accepted risk and never retried.
func NewCookie(rng *rand.Rand) string {
	b := make([]byte, cookieLen)
	for i := range b {
		b[i] = cookieAlphabet[rng.IntN(len(cookieAlphabet))]
	}
	return string(b)
}
