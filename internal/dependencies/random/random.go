package random

import (
	"crypto/rand"
	"math/big"
)

// Random provides the randomness used for room codes and avatar
// assignment. Mockable so tests can pin the generated values.
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// String generates a random string of the given length drawn from
	// the given alphabet
	String(length int, alphabet string) string
}

// CryptoRandom implements Random on top of crypto/rand. Room codes are
// the capability to join a room, so they come from a CSPRNG rather
// than math/rand.
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails if the platform's entropy source is
		// broken; degrade to the first choice rather than panic
		return 0
	}
	return int(v.Int64())
}

// String generates a random string of the given length drawn from the
// given alphabet
func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(out)
}
