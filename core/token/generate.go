package token

import (
	"crypto/rand"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var alphabetSize = big.NewInt(int64(len(alphabet)))

// Random returns a token of n characters drawn uniformly from [A-Za-z0-9]
// with crypto/rand. It panics if n <= 0 or the system randomness source fails.
func Random(n int) string {
	if n <= 0 {
		panic("token: length must be positive")
	}

	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			panic("token: crypto/rand failed: " + err.Error())
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b)
}
