package dicee

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKnownPositions(t *testing.T) {
	t.Run("made five of a kind stops immediately", func(t *testing.T) {
		solver := NewSolver()
		analysis, err := solver.Analyze([]uint8{5, 5, 5, 5, 5}, 2, NewCategorySet(FiveOfAKind))
		require.NoError(t, err)

		require.Equal(t, Stop, analysis.Action)
		require.Equal(t, FiveOfAKind, analysis.Category)
		require.Equal(t, uint32(50), analysis.Score)
		require.InDelta(t, 50.0, analysis.EV, 1e-9)
	})

	t.Run("four of a kind chases five of a kind", func(t *testing.T) {
		solver := NewSolver()
		analysis, err := solver.Analyze([]uint8{3, 3, 3, 3, 1}, 2, NewCategorySet(FiveOfAKind))
		require.NoError(t, err)

		require.Equal(t, Continue, analysis.Action)
		require.Equal(t, [5]bool{true, true, true, true, false}, analysis.Keep,
			"Should keep the four 3s and reroll the 1")
	})

	t.Run("draws to the large straight", func(t *testing.T) {
		solver := NewSolver()
		analysis, err := solver.Analyze([]uint8{1, 2, 3, 4, 6}, 1, NewCategorySet(LargeStraight))
		require.NoError(t, err)

		require.Equal(t, Continue, analysis.Action)
		require.Equal(t, [5]bool{true, true, true, true, false}, analysis.Keep,
			"Should keep 1,2,3,4 and reroll the 6")
		require.InDelta(t, 40.0/6.0, analysis.EV, 1e-9,
			"Hitting the 5 is a 1-in-6 shot at 40 points")
	})

	t.Run("no rolls left forces an immediate score", func(t *testing.T) {
		solver := NewSolver()
		analysis, err := solver.Analyze([]uint8{6, 6, 1, 2, 3}, 0, NewCategorySet(Chance))
		require.NoError(t, err)

		require.Equal(t, Stop, analysis.Action)
		require.Equal(t, Chance, analysis.Category)
		require.Equal(t, uint32(18), analysis.Score)
	})
}

func TestDeterminism(t *testing.T) {
	// Two independent solvers must produce bit-identical values.
	a := NewSolver()
	b := NewSolver()
	available := AllCategories()

	for i := 0; i < NumConfigs; i++ {
		c := ConfigIndex(i).Config()
		for rolls := uint8(0); rolls <= MaxRolls; rolls++ {
			evA, err := a.Evaluate(c, rolls, available)
			require.NoError(t, err)
			evB, err := b.Evaluate(c, rolls, available)
			require.NoError(t, err)
			require.Equal(t, evA, evB, "EV differs for %s r=%d", c, rolls)
		}
	}
}

func TestExpectedValueBounds(t *testing.T) {
	solver := NewSolver()
	available := AllCategories()

	for i := 0; i < NumConfigs; i++ {
		c := ConfigIndex(i).Config()
		for rolls := uint8(0); rolls <= MaxRolls; rolls++ {
			ev, err := solver.Evaluate(c, rolls, available)
			require.NoError(t, err)
			require.GreaterOrEqual(t, ev, 0.0)
			require.LessOrEqual(t, ev, float64(MaxCategoryScore))
		}
	}
}

func TestOptimalityFloor(t *testing.T) {
	// Continuing is always an option, so the value of a state can never
	// be below its immediate stop value.
	solver := NewSolver()
	available := NewCategorySet(Ones, FourOfAKind, SmallStraight, Chance)

	for i := 0; i < NumConfigs; i++ {
		c := ConfigIndex(i).Config()
		_, stopScore, ok := BestAvailable(c, available)
		require.True(t, ok)

		for rolls := uint8(1); rolls <= MaxRolls; rolls++ {
			ev, err := solver.Evaluate(c, rolls, available)
			require.NoError(t, err)
			require.GreaterOrEqual(t, ev, float64(stopScore),
				"Value of %s r=%d below its stop value", c, rolls)
		}
	}
}

func TestTerminalExactness(t *testing.T) {
	solver := NewSolver()
	available := NewCategorySet(Twos, FullHouse, Chance)

	for i := 0; i < NumConfigs; i++ {
		c := ConfigIndex(i).Config()
		_, stopScore, ok := BestAvailable(c, available)
		require.True(t, ok)

		ev, err := solver.Evaluate(c, 0, available)
		require.NoError(t, err)
		require.Equal(t, float64(stopScore), ev,
			"Terminal value must equal the best available score exactly")
	}
}

func TestEVMonotonicInRolls(t *testing.T) {
	solver := NewSolver()
	available := AllCategories()

	for _, dice := range [][]uint8{
		{1, 2, 3, 4, 6},
		{2, 2, 4, 5, 6},
		{1, 1, 3, 5, 6},
	} {
		c := MustConfig(dice...)
		ev0, err := solver.Evaluate(c, 0, available)
		require.NoError(t, err)
		ev1, err := solver.Evaluate(c, 1, available)
		require.NoError(t, err)
		ev2, err := solver.Evaluate(c, 2, available)
		require.NoError(t, err)

		require.GreaterOrEqual(t, ev1, ev0)
		require.GreaterOrEqual(t, ev2, ev1)
	}
}

func TestTieBreakPrefersStop(t *testing.T) {
	// Keeping all five dice reproduces the stop value exactly, so a
	// made hand is a tie between stopping and "continuing" with a full
	// keep. The policy resolves ties toward Stop.
	solver := NewSolver()
	analysis, err := solver.Analyze([]uint8{2, 3, 4, 5, 6}, 2, NewCategorySet(LargeStraight))
	require.NoError(t, err)

	require.Equal(t, Stop, analysis.Action)
	require.Equal(t, LargeStraight, analysis.Category)
}

func TestInvalidInputs(t *testing.T) {
	solver := NewSolver()

	t.Run("rolls remaining out of range", func(t *testing.T) {
		_, err := solver.Evaluate(MustConfig(1, 2, 3, 4, 5), 3, AllCategories())
		require.ErrorIs(t, err, ErrInvalidRollsRemaining)
	})

	t.Run("exhausted categories with no rolls", func(t *testing.T) {
		_, err := solver.Evaluate(MustConfig(1, 2, 3, 4, 5), 0, 0)
		require.ErrorIs(t, err, ErrNoCategories,
			"No action exists: cannot stop and cannot continue")
	})

	t.Run("exhausted categories with rolls forces continue", func(t *testing.T) {
		analysis, err := solver.Analyze([]uint8{1, 2, 3, 4, 5}, 1, 0)
		require.NoError(t, err)
		require.Equal(t, Continue, analysis.Action,
			"Continuing is the only well-defined option")
		require.True(t, math.IsInf(analysis.EV, -1),
			"Stop value is undefined, not zero")
	})
}

func TestSolverCacheGrows(t *testing.T) {
	solver := NewSolver()
	require.Equal(t, 0, solver.CacheSize())

	_, err := solver.Evaluate(MustConfig(1, 2, 3, 4, 5), 2, AllCategories())
	require.NoError(t, err)
	size := solver.CacheSize()
	require.Greater(t, size, 0)

	// A repeated query is answered from cache.
	_, err = solver.Evaluate(MustConfig(1, 2, 3, 4, 5), 2, AllCategories())
	require.NoError(t, err)
	require.Equal(t, size, solver.CacheSize())
}
