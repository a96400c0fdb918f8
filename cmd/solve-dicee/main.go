package main

import (
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/golang/glog"

	"github.com/dicee-game/go-dicee"
)

type Params struct {
	Categories uint
	DBPath     string
}

func main() {
	var params Params
	flag.UintVar(&params.Categories, "categories", uint(dicee.AllCategories()),
		"Bitmask of available categories")
	flag.StringVar(&params.DBPath, "db", "dicee.db", "Path to solution database")
	flag.Parse()

	go http.ListenAndServe(":6069", nil)

	available := dicee.CategorySetFromBits(uint16(params.Categories))
	if available == 0 {
		glog.Error("No categories in mask")
		os.Exit(1)
	}
	glog.Infof("Solving all turn states for %s", available)

	db, err := dicee.NewSolutionDB(params.DBPath)
	if err != nil {
		glog.Errorf("Unable to initialize database: %v", err)
		os.Exit(1)
	}

	solver := dicee.NewSolver()
	for rolls := uint8(0); rolls <= dicee.MaxRolls; rolls++ {
		for i := 0; i < dicee.NumConfigs; i++ {
			idx := dicee.ConfigIndex(i)
			ev, err := solver.Evaluate(idx.Config(), rolls, available)
			if err != nil {
				glog.Errorf("Error solving %s r=%d: %v", idx.Config(), rolls, err)
				os.Exit(1)
			}
			db.Put(idx, rolls, ev)
		}
		glog.Infof("Solved all %d configurations with %d rolls remaining",
			dicee.NumConfigs, rolls)
	}

	glog.Infof("Done: %d states solved", solver.CacheSize())
	if err := db.Close(); err != nil {
		glog.Errorf("Error closing database: %v", err)
		os.Exit(1)
	}
}
