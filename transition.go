package dicee

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat/combin"
)

// KeepPattern is the set of dice retained between rerolls, expressed as
// per-face-value counts. Dice of equal value are interchangeable, so this
// collapses the 2^5 positional keep masks into far fewer distinct
// decisions per configuration (empirically ~15-20).
type KeepPattern [numSides]uint8

// KeepAll keeps every die of the configuration (reroll nothing).
func KeepAll(c Config) KeepPattern {
	return KeepPattern(c)
}

// KeepNone rerolls all 5 dice.
var KeepNone = KeepPattern{}

// TotalKept is the number of dice retained.
func (k KeepPattern) TotalKept() int {
	n := 0
	for _, count := range k {
		n += int(count)
	}
	return n
}

// NumRerolled is the number of dice thrown again.
func (k KeepPattern) NumRerolled() int {
	return numDice - k.TotalKept()
}

// ValidFor reports whether the pattern only keeps dice the configuration
// actually has.
func (k KeepPattern) ValidFor(c Config) bool {
	for face, count := range k {
		if count > c[face] {
			return false
		}
	}
	return true
}

func (k KeepPattern) String() string {
	parts := make([]string, 0, numSides)
	for face, count := range k {
		if count > 0 {
			parts = append(parts, fmt.Sprintf("%dx%d", count, face+1))
		}
	}
	if len(parts) == 0 {
		return "keep none"
	}
	return "keep " + strings.Join(parts, ", ")
}

// validKeepPatterns enumerates every keep pattern compatible with the
// configuration, counting like a mixed-radix number where digit f ranges
// over [0, count(f+1)]. KeepNone is always first and KeepAll last.
func validKeepPatterns(c Config) []KeepPattern {
	n := 1
	for _, count := range c {
		n *= int(count) + 1
	}

	result := make([]KeepPattern, 0, n)
	var current KeepPattern
	for {
		result = append(result, current)

		carry := true
		for face := 0; face < numSides && carry; face++ {
			if current[face] < c[face] {
				current[face]++
				carry = false
			} else {
				current[face] = 0
			}
		}
		if carry {
			return result
		}
	}
}

// weightedReroll is an unordered outcome of rerolling m dice: the counts
// of faces rolled and the exact probability of that multiset,
// multinomial(m; counts) / 6^m.
type weightedReroll struct {
	counts [numSides]uint8
	prob   float64
}

// Exact outcome distributions for rerolling 0-5 dice, precomputed once.
// The entries for a fixed m sum to probability 1, and every keep pattern
// with m rerolled dice shares the same table: the kept counts just shift
// which target configuration each outcome lands on.
var rerollOutcomes = func() [numDice + 1][]weightedReroll {
	var result [numDice + 1][]weightedReroll
	for m := 0; m <= numDice; m++ {
		pRoll := 1.0
		for i := 0; i < m; i++ {
			pRoll /= numSides
		}

		var outcomes []weightedReroll
		var counts [numSides]uint8
		var fill func(face, remaining int)
		fill = func(face, remaining int) {
			if face == numSides-1 {
				counts[face] = uint8(remaining)
				outcomes = append(outcomes, weightedReroll{
					counts: counts,
					prob:   float64(multinomial(m, counts)) * pRoll,
				})
				return
			}
			for n := 0; n <= remaining; n++ {
				counts[face] = uint8(n)
				fill(face+1, remaining-n)
			}
		}
		fill(0, m)
		result[m] = outcomes
	}
	return result
}()

// multinomial computes n! / (c1! * c2! * ... * c6!) as a product of
// binomial coefficients.
func multinomial(n int, counts [numSides]uint8) int {
	result, remaining := 1, n
	for _, c := range counts {
		result *= combin.Binomial(remaining, int(c))
		remaining -= int(c)
	}
	return result
}

// ExpectedValue is the probability-weighted average of valuation over all
// configurations reachable by keeping these dice and rerolling the rest.
// With zero dice rerolled this is just valuation of the kept dice.
func (k KeepPattern) ExpectedValue(valuation func(ConfigIndex) float64) float64 {
	total := 0.0
	for _, outcome := range rerollOutcomes[k.NumRerolled()] {
		target := Config(k)
		for face, count := range outcome.counts {
			target[face] += count
		}
		total += outcome.prob * valuation(target.Index())
	}
	return total
}
