package crypto

import (
	"crypto/rand"
	"math/big"
)

// RandIntn returns a uniform random value in [0, n). It panics if n is not
// positive.
func RandIntn(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(r.Int64())
}

// Shuffle returns a random permutation of 0..n-1 using a Fisher-Yates walk
// over a crypto random source.
func Shuffle(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	for i := n - 1; i > 0; i-- {
		j := RandIntn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	return perm
}
