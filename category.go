package dicee

import (
	"fmt"
	"math/bits"
	"strings"
)

// Category is one of the 13 scoring categories. The numeric values are
// fixed and shared with external callers: bit i of a CategorySet refers
// to Category(i).
type Category uint8

const (
	Ones Category = iota
	Twos
	Threes
	Fours
	Fives
	Sixes
	ThreeOfAKind
	FourOfAKind
	FullHouse
	SmallStraight
	LargeStraight
	FiveOfAKind
	Chance

	NumCategories = 13
)

var categoryNames = [NumCategories]string{
	"Ones", "Twos", "Threes", "Fours", "Fives", "Sixes",
	"Three of a Kind", "Four of a Kind", "Full House",
	"Small Straight", "Large Straight", "Five of a Kind", "Chance",
}

func (c Category) String() string {
	if int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
	return categoryNames[c]
}

// IsUpper reports whether this is an upper-section category (Ones-Sixes).
func (c Category) IsUpper() bool {
	return c < ThreeOfAKind
}

// Face is the target face value for upper-section categories.
func (c Category) Face() uint8 {
	if !c.IsUpper() {
		panic(fmt.Errorf("category %s has no target face", c))
	}
	return uint8(c) + 1
}

// CategorySet is a bitmask of scoring categories still open this turn.
// Bit i corresponds to Category(i); only the low 13 bits are meaningful.
type CategorySet uint16

const allCategoriesMask CategorySet = (1 << NumCategories) - 1

// AllCategories is the set containing all 13 categories.
func AllCategories() CategorySet {
	return allCategoriesMask
}

// NewCategorySet builds a set from individual categories.
func NewCategorySet(categories ...Category) CategorySet {
	var set CategorySet
	for _, c := range categories {
		set |= 1 << c
	}
	return set
}

// CategorySetFromBits masks a raw caller-supplied value down to the 13
// meaningful bits.
func CategorySetFromBits(bits uint16) CategorySet {
	return CategorySet(bits) & allCategoriesMask
}

// Contains reports whether the category is in the set.
func (s CategorySet) Contains(c Category) bool {
	return s&(1<<c) != 0
}

// With returns the set with the category added.
func (s CategorySet) With(c Category) CategorySet {
	return s | (1 << c)
}

// Without returns the set with the category removed.
func (s CategorySet) Without(c Category) CategorySet {
	return s &^ (1 << c)
}

// Len is the number of categories in the set.
func (s CategorySet) Len() int {
	return bits.OnesCount16(uint16(s))
}

// Categories lists the members of the set in wire order.
func (s CategorySet) Categories() []Category {
	result := make([]Category, 0, s.Len())
	for rem := s; rem != 0; rem &= rem - 1 {
		result = append(result, Category(bits.TrailingZeros16(uint16(rem))))
	}
	return result
}

func (s CategorySet) String() string {
	names := make([]string, 0, s.Len())
	for _, c := range s.Categories() {
		names = append(names, c.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}
