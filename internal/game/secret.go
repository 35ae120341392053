package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	MinDigits = 1
	MaxDigits = 10
)

const alphabet = "0123456789"

var ErrInvalidDigitCount = errors.New("digit count out of range")

// ValidDigitCount reports whether n digits can form a secret.
func ValidDigitCount(n int) bool {
	return n >= MinDigits && n <= MaxDigits
}

// Generator draws secrets from its random source. It is not safe for
// concurrent use, same as the *rand.Rand it wraps.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator returns a Generator over rnd. A nil rnd selects a source
// seeded from the runtime.
func NewGenerator(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{rnd: rnd}
}

// Generate returns n distinct digits. Every valid secret is equally likely:
// the digits are a uniform n-permutation of the alphabet, redrawn while a
// multi-digit secret would start with '0'.
func (g *Generator) Generate(n int) (string, error) {
	if !ValidDigitCount(n) {
		return "", fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidDigitCount, n, MinDigits, MaxDigits)
	}

	for {
		perm := g.rnd.Perm(len(alphabet))
		if n > 1 && perm[0] == 0 {
			continue
		}

		var b strings.Builder
		b.Grow(n)
		for _, d := range perm[:n] {
			b.WriteByte(alphabet[d])
		}
		return b.String(), nil
	}
}
