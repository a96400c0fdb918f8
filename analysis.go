package dicee

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Action is the recommended move for a turn state.
type Action uint8

const (
	// Stop scoring now in the recommended category.
	Stop Action = iota
	// Continue rerolling with the recommended keep mask.
	Continue
)

func (a Action) String() string {
	if a == Stop {
		return "stop"
	}
	return "continue"
}

// CategoryEV is the per-category line of a turn analysis.
type CategoryEV struct {
	Category Category
	// Score if this category is taken immediately.
	Score uint32
	// Valid reports whether the dice meet the category's requirements.
	Valid bool
	// EV of rerolling optimally while chasing this category alone.
	// Equals Score when no rolls remain.
	EV float64
	// Optimal marks the category the recommendation settles on.
	Optimal bool
}

// TurnAnalysis is the solver's recommendation for one turn state, using
// only primitive fields so it can cross process or language boundaries.
// It is valid only for the exact input state it was computed from.
type TurnAnalysis struct {
	// Action is the recommended move.
	Action Action

	// Category and Score describe the recommended stop. Meaningful only
	// when Action == Stop.
	Category Category
	Score    uint32

	// Keep marks which of the caller's dice, in the caller's original
	// order, to retain. Meaningful only when Action == Continue.
	Keep [numDice]bool

	// Explanation is a short human-readable account of the
	// recommendation.
	Explanation string

	// EV is the expected value of optimal play from this state.
	EV float64

	// Breakdown holds one record per available category, in wire order.
	Breakdown []CategoryEV
}

// Analyze canonicalizes the dice, solves the resulting turn state, and
// translates the optimal policy back into a caller-friendly
// recommendation. The keep mask assigns kept dice lowest-index-first, so
// equal inputs always produce identical masks.
func (s *Solver) Analyze(dice []uint8, rollsRemaining uint8, available CategorySet) (*TurnAnalysis, error) {
	c, err := NewConfig(dice...)
	if err != nil {
		return nil, err
	}

	v, err := s.solve(c, rollsRemaining, available)
	if err != nil {
		return nil, err
	}

	analysis := &TurnAnalysis{EV: v.ev}
	if v.stop {
		analysis.Action = Stop
		analysis.Category = v.category
		analysis.Score = v.score
		analysis.Explanation = fmt.Sprintf("score %s for %d", v.category, v.score)
	} else {
		analysis.Action = Continue
		analysis.Keep = expandKeepMask(dice, v.keep)
		analysis.Explanation = fmt.Sprintf("%s, reroll %d", v.keep, v.keep.NumRerolled())
	}

	analysis.Breakdown = lo.Map(available.Categories(), func(cat Category, _ int) CategoryEV {
		score, valid := Score(c, cat)
		return CategoryEV{
			Category: cat,
			Score:    score,
			Valid:    valid,
			EV:       s.chaseEV(c.Index(), rollsRemaining, cat),
		}
	})
	s.markOptimal(analysis)

	return analysis, nil
}

// SortedByEV returns the breakdown ordered by descending expected value.
func (ta *TurnAnalysis) SortedByEV() []CategoryEV {
	sorted := slices.Clone(ta.Breakdown)
	slices.SortStableFunc(sorted, func(a, b CategoryEV) int {
		return cmp.Compare(b.EV, a.EV)
	})
	return sorted
}

// SortedByScore returns the breakdown ordered by descending immediate
// score.
func (ta *TurnAnalysis) SortedByScore() []CategoryEV {
	sorted := slices.Clone(ta.Breakdown)
	slices.SortStableFunc(sorted, func(a, b CategoryEV) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return sorted
}

// markOptimal flags the breakdown record the recommendation settles on:
// the stop category, or the highest-EV category when continuing.
func (s *Solver) markOptimal(analysis *TurnAnalysis) {
	if len(analysis.Breakdown) == 0 {
		return
	}

	target := analysis.Category
	if analysis.Action == Continue {
		best := lo.MaxBy(analysis.Breakdown, func(a, b CategoryEV) bool {
			return a.EV > b.EV
		})
		target = best.Category
	}

	for i := range analysis.Breakdown {
		if analysis.Breakdown[i].Category == target {
			analysis.Breakdown[i].Optimal = true
			return
		}
	}
}

// expandKeepMask converts a per-face-value keep pattern into a per-die
// boolean mask over the caller's original dice ordering. Dice sharing a
// face value are interchangeable; the lowest index wins.
func expandKeepMask(dice []uint8, keep KeepPattern) [numDice]bool {
	var mask [numDice]bool
	remaining := keep
	for i, die := range dice {
		if remaining[die-1] > 0 {
			mask[i] = true
			remaining[die-1]--
		}
	}
	return mask
}

// chaseKey memoizes per-category expected values for the breakdown.
type chaseKey struct {
	config   ConfigIndex
	rolls    uint8
	category Category
}

// chaseEV is the expected score from rerolling optimally while committed
// to a single category. Unlike the main value function there is no stop
// decision: the category is scored when rolls run out or when rerolling
// cannot do better.
func (s *Solver) chaseEV(idx ConfigIndex, rolls uint8, category Category) float64 {
	score, _ := Score(idx.Config(), category)
	if rolls == 0 {
		return float64(score)
	}

	key := chaseKey{config: idx, rolls: rolls, category: category}
	if ev, ok := s.chaseCache[key]; ok {
		return ev
	}

	best := float64(score)
	for _, keep := range validKeepPatterns(idx.Config()) {
		ev := keep.ExpectedValue(func(target ConfigIndex) float64 {
			return s.chaseEV(target, rolls-1, category)
		})
		best = max(best, ev)
	}

	s.chaseCache[key] = best
	return best
}
