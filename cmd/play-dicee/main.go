package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
	"lukechampine.com/frand"

	"github.com/dicee-game/go-dicee"
)

func main() {
	flag.Parse()

	solver := dicee.NewSolver()
	available := dicee.AllCategories()
	totalScore := 0

	for available != 0 {
		score, category, err := playTurn(solver, available)
		if err != nil {
			glog.Errorf("Error playing turn: %v", err)
			os.Exit(1)
		}

		totalScore += score
		available = available.Without(category)
		fmt.Printf("Scored %s for %d. Total: %d\n\n", category, score, totalScore)
	}

	fmt.Printf("Game over! Final score: %d\n", totalScore)
}

func playTurn(solver *dicee.Solver, available dicee.CategorySet) (int, dicee.Category, error) {
	dice := rollDice(nil, [5]bool{})
	rolls := uint8(2)

	for {
		fmt.Printf("You rolled: %v\n", dice)
		analysis, err := solver.Analyze(dice, rolls, available)
		if err != nil {
			return 0, 0, err
		}

		if rolls == 0 {
			fmt.Printf("No rolls left. Best available: %s\n", analysis.Explanation)
			return int(analysis.Score), analysis.Category, nil
		}

		keep, stop := promptKeep()
		if stop {
			config, err := dicee.NewConfig(dice...)
			if err != nil {
				return 0, 0, err
			}
			category, score, _ := dicee.BestAvailable(config, available)
			if analysis.Action == dicee.Stop {
				fmt.Println("...stopping is optimal!")
			} else {
				fmt.Printf("...optimal was %s with EV = %.3f\n",
					analysis.Explanation, analysis.EV)
			}
			return int(score), category, nil
		}

		if analysis.Action == dicee.Continue && keep == analysis.Keep {
			fmt.Println("...selected keep is optimal!")
		} else {
			fmt.Printf("...optimal was %s with EV = %.3f\n",
				analysis.Explanation, analysis.EV)
		}

		dice = rollDice(dice, keep)
		rolls--
	}
}

// rollDice rerolls every die not marked kept. With nil dice, all 5 are
// rolled fresh.
func rollDice(dice []uint8, keep [5]bool) []uint8 {
	result := make([]uint8, 5)
	for i := range result {
		if dice != nil && keep[i] {
			result[i] = dice[i]
		} else {
			result[i] = uint8(frand.Intn(6)) + 1
		}
	}
	return result
}

// promptKeep asks which dice to keep, as positions 1-5 (e.g. "125"), or
// "s" to stop and score now.
func promptKeep() ([5]bool, bool) {
	rdr := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("...enter positions to keep (1-5), or 's' to score: ")
		line, err := rdr.ReadString('\n')
		if err != nil {
			fmt.Printf("......unable to read input: %v\n", err)
			continue
		}

		line = strings.TrimSpace(line)
		if strings.EqualFold(line, "s") {
			return [5]bool{}, true
		}

		var keep [5]bool
		ok := true
		for _, c := range line {
			if c < '1' || c > '5' {
				fmt.Printf("......not a valid position: %q\n", c)
				ok = false
				break
			}
			keep[c-'1'] = true
		}
		if ok {
			return keep, false
		}
	}
}
