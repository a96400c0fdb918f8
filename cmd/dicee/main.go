package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/dicee-game/go-dicee"
)

type Params struct {
	Dice       string
	Rolls      uint
	Categories uint
}

func main() {
	var params Params
	flag.StringVar(&params.Dice, "dice", "", "The 5 dice rolled, e.g. 1,3,3,4,6")
	flag.UintVar(&params.Rolls, "rolls", 2, "Rolls remaining (0-2)")
	flag.UintVar(&params.Categories, "categories", uint(dicee.AllCategories()),
		"Bitmask of available categories")
	flag.Parse()

	dice, err := parseDice(params.Dice)
	if err != nil {
		glog.Errorf("Unable to parse dice: %v", err)
		os.Exit(1)
	}

	available := dicee.CategorySetFromBits(uint16(params.Categories))
	solver := dicee.NewSolver()
	analysis, err := solver.Analyze(dice, uint8(params.Rolls), available)
	if err != nil {
		glog.Errorf("Unable to analyze turn: %v", err)
		os.Exit(1)
	}

	fmt.Printf("Recommendation: %s (EV = %.3f)\n", analysis.Explanation, analysis.EV)
	if analysis.Action == dicee.Continue {
		fmt.Printf("Keep mask: %v\n", analysis.Keep)
	}

	fmt.Println("\nCategory breakdown:")
	for _, cv := range analysis.SortedByEV() {
		marker := " "
		if cv.Optimal {
			marker = "*"
		}
		fmt.Printf("%s %-16s score=%2d valid=%-5v ev=%.3f\n",
			marker, cv.Category, cv.Score, cv.Valid, cv.EV)
	}
}

func parseDice(s string) ([]uint8, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	dice := make([]uint8, 0, len(parts))
	for _, part := range parts {
		die, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("not a valid die: %q", part)
		}
		dice = append(dice, uint8(die))
	}
	return dice, nil
}
