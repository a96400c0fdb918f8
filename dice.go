package dicee

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat/combin"
)

const numDice = 5
const numSides = 6

// NumConfigs is the number of canonical 5-die configurations,
// given by stars-and-bars: C(6+5-1, 5) = 252.
const NumConfigs = 252

func init() {
	if combin.Binomial(numSides+numDice-1, numDice) != NumConfigs {
		panic(fmt.Errorf("expected %d canonical configurations", NumConfigs))
	}
}

// Config is the canonical, order-independent form of a 5-die roll.
// Config[f] is the number of dice showing face f+1.
// The counts always sum to exactly 5.
type Config [numSides]uint8

// NewConfig canonicalizes an ordered roll of 5 dice.
func NewConfig(dice ...uint8) (Config, error) {
	if len(dice) != numDice {
		return Config{}, fmt.Errorf("%w: got %d dice, want %d",
			ErrInvalidDice, len(dice), numDice)
	}

	var c Config
	for i, die := range dice {
		if die < 1 || die > numSides {
			return Config{}, fmt.Errorf("%w: die %d = %d, must be 1-%d",
				ErrInvalidDice, i, die, numSides)
		}
		c[die-1]++
	}
	return c, nil
}

// MustConfig is NewConfig for dice known to be valid.
func MustConfig(dice ...uint8) Config {
	c, err := NewConfig(dice...)
	if err != nil {
		panic(err)
	}
	return c
}

// Count of dice showing the given face value (1-6).
func (c Config) Count(face uint8) uint8 {
	return c[face-1]
}

// Sum of all dice values.
func (c Config) Sum() int {
	total := 0
	for face, count := range c {
		total += (face + 1) * int(count)
	}
	return total
}

// MaxCount is the largest count of any single face value.
func (c Config) MaxCount() uint8 {
	best := uint8(0)
	for _, count := range c {
		best = max(best, count)
	}
	return best
}

// DistinctFaces is the number of face values present.
func (c Config) DistinctFaces() int {
	n := 0
	for _, count := range c {
		if count > 0 {
			n++
		}
	}
	return n
}

var factorials = [numDice + 1]int{1, 1, 2, 6, 24, 120}

// Multiplicity is the number of ordered 5-die rolls that canonicalize to
// this configuration: 5! / (n1! * n2! * ... * n6!). The multiplicities of
// all 252 configurations sum to 6^5 = 7776.
func (c Config) Multiplicity() int {
	result := factorials[numDice]
	for _, count := range c {
		result /= factorials[count]
	}
	return result
}

// Dice expands the configuration to 5 dice sorted ascending.
func (c Config) Dice() [numDice]uint8 {
	var dice [numDice]uint8
	pos := 0
	for face := uint8(1); face <= numSides; face++ {
		for i := uint8(0); i < c.Count(face); i++ {
			dice[pos] = face
			pos++
		}
	}
	return dice
}

func (c Config) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, die := range c.Dice() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", die)
	}
	sb.WriteByte(']')
	return sb.String()
}

// Index is the dense index of this configuration in [0, NumConfigs).
// The enumeration is fixed (lexicographic by counts), so indices are
// stable across runs and usable as cache or serialization keys.
func (c Config) Index() ConfigIndex {
	idx, ok := configToIndex[c]
	if !ok {
		panic(fmt.Errorf("no index for configuration %v: counts must sum to %d",
			[numSides]uint8(c), numDice))
	}
	return idx
}

// ConfigIndex is a dense index into the 252 canonical configurations.
type ConfigIndex uint8

// Valid reports whether the index is in [0, NumConfigs).
func (idx ConfigIndex) Valid() bool {
	return idx < NumConfigs
}

// Config returns the configuration for this index.
func (idx ConfigIndex) Config() Config {
	if !idx.Valid() {
		panic(fmt.Errorf("%w: config index %d out of range", ErrInvalidState, idx))
	}
	return allConfigs[idx]
}

// All 252 canonical configurations, enumerated in lexicographic order of
// their counts arrays.
var allConfigs = func() [NumConfigs]Config {
	var configs [NumConfigs]Config
	idx := 0

	var counts Config
	var fill func(face, remaining int)
	fill = func(face, remaining int) {
		if face == numSides-1 {
			counts[face] = uint8(remaining)
			configs[idx] = counts
			idx++
			return
		}
		for c := 0; c <= remaining; c++ {
			counts[face] = uint8(c)
			fill(face+1, remaining-c)
		}
	}
	fill(0, numDice)

	if idx != NumConfigs {
		panic(fmt.Errorf("enumerated %d configurations, want %d", idx, NumConfigs))
	}
	return configs
}()

var configToIndex = func() map[Config]ConfigIndex {
	result := make(map[Config]ConfigIndex, NumConfigs)
	for i, c := range allConfigs {
		result[c] = ConfigIndex(i)
	}
	return result
}()
