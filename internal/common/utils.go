package common

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// NormalizeEmail trims surrounding whitespace and lower-cases the address so
// that it can be used as an account key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RandomDigits returns a string of n (at most 18) decimal digits drawn from
// crypto/rand, left-padded with zeros.
func RandomDigits(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	if n > 18 {
		return "", fmt.Errorf("too many digits: %d", n)
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	v, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", n, v.Int64()), nil
}

// WipeByteArray zeroes b in place. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
