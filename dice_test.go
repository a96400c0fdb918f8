package dicee

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConfigValidation(t *testing.T) {
	t.Run("too few dice", func(t *testing.T) {
		_, err := NewConfig(1, 2, 3)
		require.ErrorIs(t, err, ErrInvalidDice)
	})

	t.Run("too many dice", func(t *testing.T) {
		_, err := NewConfig(1, 2, 3, 4, 5, 6)
		require.ErrorIs(t, err, ErrInvalidDice)
	})

	t.Run("die value out of range", func(t *testing.T) {
		_, err := NewConfig(1, 2, 3, 4, 7)
		require.ErrorIs(t, err, ErrInvalidDice)

		_, err = NewConfig(0, 2, 3, 4, 5)
		require.ErrorIs(t, err, ErrInvalidDice)
	})

	t.Run("valid dice", func(t *testing.T) {
		c, err := NewConfig(1, 3, 3, 4, 6)
		require.NoError(t, err)
		require.Equal(t, uint8(1), c.Count(1))
		require.Equal(t, uint8(2), c.Count(3))
		require.Equal(t, uint8(0), c.Count(5))
	})
}

func TestConfigOrderIndependence(t *testing.T) {
	a := MustConfig(1, 3, 3, 4, 6)
	b := MustConfig(6, 3, 4, 3, 1)
	require.Equal(t, a, b, "Canonical form must not depend on roll order")
	require.Equal(t, a.Index(), b.Index())
}

func TestConfigRoundTrip(t *testing.T) {
	// Every one of the 6^5 = 7776 ordered rolls must survive
	// canonicalize -> index -> fromIndex.
	var dice [numDice]uint8
	var visit func(pos int)
	visit = func(pos int) {
		if pos == numDice {
			c := MustConfig(dice[:]...)
			idx := c.Index()
			require.True(t, idx.Valid())
			require.Equal(t, c, idx.Config(), "Round trip failed for %v", dice)
			return
		}
		for die := uint8(1); die <= numSides; die++ {
			dice[pos] = die
			visit(pos + 1)
		}
	}
	visit(0)
}

func TestConfigIndexAnchors(t *testing.T) {
	// The enumeration is lexicographic by counts, so five 6s come first
	// and five 1s come last. These anchors pin the serialization format.
	require.Equal(t, ConfigIndex(0), MustConfig(6, 6, 6, 6, 6).Index())
	require.Equal(t, ConfigIndex(NumConfigs-1), MustConfig(1, 1, 1, 1, 1).Index())
}

func TestConfigIndexOutOfRange(t *testing.T) {
	require.False(t, ConfigIndex(NumConfigs).Valid())
	require.Panics(t, func() {
		ConfigIndex(NumConfigs).Config()
	})
}

func TestMultiplicities(t *testing.T) {
	require.Equal(t, 1, MustConfig(4, 4, 4, 4, 4).Multiplicity())
	require.Equal(t, 120, MustConfig(1, 2, 3, 4, 5).Multiplicity())
	require.Equal(t, 60, MustConfig(1, 1, 2, 3, 4).Multiplicity())

	total := 0
	for _, c := range allConfigs {
		total += c.Multiplicity()
	}
	require.Equal(t, 7776, total, "Multiplicities must cover all ordered rolls")
}

func TestConfigHelpers(t *testing.T) {
	c := MustConfig(2, 2, 5, 5, 5)
	require.Equal(t, 19, c.Sum())
	require.Equal(t, uint8(3), c.MaxCount())
	require.Equal(t, 2, c.DistinctFaces())
	require.Equal(t, [numDice]uint8{2, 2, 5, 5, 5}, c.Dice())
	require.Equal(t, "[2 2 5 5 5]", c.String())
}
