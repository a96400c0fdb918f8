package dicee

import "math"

// Fixed scores for the pattern categories.
const (
	fullHouseScore     = 25
	smallStraightScore = 30
	largeStraightScore = 40
	fiveOfAKindScore   = 50
)

// MaxCategoryScore is the highest score any single category can award.
const MaxCategoryScore = fiveOfAKindScore

// Score computes the score a configuration earns in a category, and
// whether the dice meet the category's requirements. Invalid categories
// score 0. Upper-section categories and Chance are always valid (they may
// legitimately score 0 or low).
func Score(c Config, category Category) (uint32, bool) {
	switch {
	case category.IsUpper():
		face := category.Face()
		return uint32(face) * uint32(c.Count(face)), true
	case category == ThreeOfAKind:
		return scoreNOfAKind(c, 3)
	case category == FourOfAKind:
		return scoreNOfAKind(c, 4)
	case category == FullHouse:
		if isFullHouse(c) {
			return fullHouseScore, true
		}
	case category == SmallStraight:
		if hasRun(c, 4) {
			return smallStraightScore, true
		}
	case category == LargeStraight:
		if hasRun(c, 5) {
			return largeStraightScore, true
		}
	case category == FiveOfAKind:
		if c.MaxCount() == numDice {
			return fiveOfAKindScore, true
		}
	case category == Chance:
		return uint32(c.Sum()), true
	}

	return 0, false
}

func scoreNOfAKind(c Config, n uint8) (uint32, bool) {
	if c.MaxCount() >= n {
		return uint32(c.Sum()), true
	}
	return 0, false
}

func isFullHouse(c Config) bool {
	hasThree, hasTwo := false, false
	for _, count := range c {
		switch count {
		case 3:
			hasThree = true
		case 2:
			hasTwo = true
		}
	}
	return hasThree && hasTwo
}

// hasRun reports whether the configuration contains n consecutive faces.
func hasRun(c Config, n int) bool {
	run := 0
	for _, count := range c {
		if count > 0 {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

// ScoreAll scores a configuration in every category.
func ScoreAll(c Config) [NumCategories]uint32 {
	var scores [NumCategories]uint32
	for cat := Category(0); cat < NumCategories; cat++ {
		scores[cat], _ = Score(c, cat)
	}
	return scores
}

// BestAvailable is the maximum score over the categories still in the
// set, and the category that achieves it. A category whose requirements
// are not met can still be taken as a 0-score scratch, so every category
// in the set is a legal stop. Ties go to the lowest category number.
// Returns ok=false only when the set is empty.
func BestAvailable(c Config, available CategorySet) (Category, uint32, bool) {
	bestScore := uint32(0)
	bestCategory := Category(0)
	found := false
	for _, cat := range available.Categories() {
		score, _ := Score(c, cat)
		if !found || score > bestScore {
			bestScore = score
			bestCategory = cat
			found = true
		}
	}
	return bestCategory, bestScore, found
}

// bestAvailableValue is BestAvailable as a stop value for the solver:
// -Inf when the set is empty, so that "no option available" is never
// confused with a legitimate zero score.
func bestAvailableValue(c Config, available CategorySet) float64 {
	if _, score, ok := BestAvailable(c, available); ok {
		return float64(score)
	}
	return math.Inf(-1)
}
