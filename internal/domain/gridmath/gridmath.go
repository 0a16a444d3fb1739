package gridmath

import "github.com/squareblocks/backend/pkg/crypto"

// Coordinate maps a score pair to grid coordinates: the last digit of each
// score modulo the actual grid dimensions. No implicit 10x10 assumption.
func Coordinate(homeScore, awayScore, width, height int) (int, int) {
	return homeScore % width, awayScore % height
}

// NewPermutation returns a random shuffle of 0..n-1 used as axis digit
// labels. Generated once at game lock and persisted; settlement replays the
// stored permutation, never a fresh one.
func NewPermutation(n int) []int {
	return crypto.Shuffle(n)
}

// PositionOf translates a raw score digit into the grid position whose label
// is that digit. An empty permutation is the identity mapping. Digits outside
// the permutation return -1.
func PositionOf(perm []int, digit int) int {
	if len(perm) == 0 {
		return digit
	}

	for position, label := range perm {
		if label == digit {
			return position
		}
	}

	return -1
}
