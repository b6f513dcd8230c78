package mines

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// NewRand returns the PCG source used for mine placement. The same seed
// always yields the same layout for the same first move.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
