package dicee

import (
	"fmt"
	"math"

	"github.com/golang/glog"
)

// MaxRolls is the number of rerolls remaining after the initial roll.
const MaxRolls = 2

// DefaultTieEpsilon is the default tolerance for treating stop and
// continue values as tied.
const DefaultTieEpsilon = 1e-9

// turnKey identifies a turn state for memoization. The solved value is a
// pure function of these three fields.
type turnKey struct {
	config ConfigIndex
	rolls  uint8
	avail  CategorySet
}

// turnValue is a solved state: the expected value of optimal play and the
// action that achieves it.
type turnValue struct {
	ev       float64
	stop     bool
	category Category    // best category, when stopping
	score    uint32      // its immediate score
	keep     KeepPattern // best keep pattern, when continuing
}

// Solver computes optimal single-turn play by memoized backward
// induction. Recursion strictly decreases rolls remaining, so the state
// graph is acyclic with maximum depth 2.
//
// A Solver owns its cache and is not safe for concurrent use. The
// intended deployment is one instance per active game session; entries
// are pure functions of their key and are never invalidated.
type Solver struct {
	// TieEpsilon controls the tie-break between stopping and
	// continuing: Stop is preferred unless continuing is better by
	// more than this margin.
	TieEpsilon float64

	cache      map[turnKey]turnValue
	chaseCache map[chaseKey]float64
	nPuts      int
}

// NewSolver creates a solver with an empty cache and the default
// tie-break policy.
func NewSolver() *Solver {
	return &Solver{
		TieEpsilon: DefaultTieEpsilon,
		cache:      make(map[turnKey]turnValue),
		chaseCache: make(map[chaseKey]float64),
	}
}

// CacheSize is the number of solved states held by this solver.
func (s *Solver) CacheSize() int {
	return len(s.cache)
}

// Evaluate returns the expected value of optimal play from the given
// turn state.
func (s *Solver) Evaluate(c Config, rollsRemaining uint8, available CategorySet) (float64, error) {
	v, err := s.solve(c, rollsRemaining, available)
	if err != nil {
		return 0, err
	}
	return v.ev, nil
}

// solve validates the state and runs the value recursion.
func (s *Solver) solve(c Config, rollsRemaining uint8, available CategorySet) (turnValue, error) {
	if rollsRemaining > MaxRolls {
		return turnValue{}, fmt.Errorf("%w: %d, must be 0-%d",
			ErrInvalidRollsRemaining, rollsRemaining, MaxRolls)
	}
	if available == 0 && rollsRemaining == 0 {
		// Cannot stop (nothing to score) and cannot continue (no
		// rolls left): there is no action to recommend.
		return turnValue{}, ErrNoCategories
	}
	return s.value(c.Index(), rollsRemaining, available), nil
}

// value implements the Bellman equation
//
//	V(c, r, A) = max( bestAvailable(c, A),
//	                  max_K E[ V(c', r-1, A) | keep K ] )
//
// caching each solved state by its key. When the stop and continue values
// are within TieEpsilon, Stop wins.
func (s *Solver) value(idx ConfigIndex, rolls uint8, available CategorySet) turnValue {
	if !idx.Valid() || rolls > MaxRolls {
		panic(fmt.Errorf("%w: config=%d rolls=%d", ErrInvalidState, idx, rolls))
	}

	key := turnKey{config: idx, rolls: rolls, avail: available}
	if v, ok := s.cache[key]; ok {
		return v
	}

	c := idx.Config()
	stopCategory, stopScore, canStop := BestAvailable(c, available)
	stopValue := math.Inf(-1)
	if canStop {
		stopValue = float64(stopScore)
	}

	v := turnValue{
		ev:       stopValue,
		stop:     true,
		category: stopCategory,
		score:    stopScore,
	}

	if rolls > 0 {
		bestEV := math.Inf(-1)
		bestKeep := KeepNone
		for _, keep := range validKeepPatterns(c) {
			ev := keep.ExpectedValue(func(target ConfigIndex) float64 {
				return s.value(target, rolls-1, available).ev
			})
			if ev > bestEV {
				bestEV = ev
				bestKeep = keep
			}
		}

		if !canStop || bestEV > stopValue+s.TieEpsilon {
			v = turnValue{ev: bestEV, keep: bestKeep}
		}
	}

	s.cache[key] = v
	s.nPuts++
	if s.nPuts%100000 == 0 {
		glog.Infof("Solver cache has %d entries. Last: %s r=%d %s -> %.4f",
			len(s.cache), c, rolls, available, v.ev)
	}
	return v
}
