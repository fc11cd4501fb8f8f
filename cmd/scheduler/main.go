package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/yorkgf/class-arrangement/internal/catalog"
	"github.com/yorkgf/class-arrangement/internal/engine"
	"github.com/yorkgf/class-arrangement/internal/report"
	"github.com/yorkgf/class-arrangement/internal/schedule"
)

const defaultBudget = 300 * time.Second

var solvers = map[string]func() engine.Solver{
	"gophersat":   engine.NewGophersatSolver,
	"roundingsat": engine.NewRoundingsatSolver,
	"kissat":      engine.NewKissatSolver,
}

func usage() {
	fmt.Printf(`Usage: scheduler [flags] [time-budget-seconds]

Builds the weekly timetable of the term and validates it. The optional
positional argument caps the engine wall-clock time in seconds (default %v).

Flags:
`, int(defaultBudget.Seconds()))
	flag.PrintDefaults()
}

func main() {
	enginePtr := flag.String("engine", "gophersat", `Solving engine to use. Allowed values are: "gophersat" (in-process, decision only), "roundingsat" (subprocess, optimizing) and "kissat" (subprocess, decision only), where "gophersat" is the default`)
	inputPtr := flag.String("input", "", "Path to a JSON catalog. When empty the built-in term is scheduled")
	outPtr := flag.String("out", "", "Directory for the CSV export. When empty no files are written")
	flag.Usage = usage
	flag.Parse()

	budget := defaultBudget
	if flag.NArg() > 0 {
		seconds, err := strconv.Atoi(flag.Arg(0))
		if err != nil || seconds <= 0 || flag.NArg() > 1 {
			usage()
			return
		}
		budget = time.Duration(seconds) * time.Second
	}

	newSolver, ok := solvers[*enginePtr]
	if !ok {
		usage()
		return
	}

	cat := catalog.DefaultTerm()
	if *inputPtr != "" {
		var err error
		cat, err = catalog.FromJSON(*inputPtr)
		if err != nil {
			log.Fatalf("cannot load catalog: %v", err)
		}
	}

	outcome, err := schedule.NewScheduler(newSolver()).Build(cat, budget)
	if err != nil {
		log.Fatal(err)
	}

	if outcome.Timetable == nil {
		fmt.Printf("No timetable produced: %v\n", outcome.Status)
		os.Exit(1)
	}

	defects := schedule.Validate(cat, outcome.Timetable)
	r := report.New(cat, outcome.Timetable, os.Stdout)
	r.GlobalSchedule()
	r.ClassGrids()
	r.ConsecutiveAnalysis()
	r.Summary(outcome.Status, outcome.Objective, defects)

	if *outPtr != "" {
		if err := r.WriteCSV(*outPtr); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("\nCSV export saved to: %v\n", *outPtr)
	}

	if len(defects) > 0 {
		os.Exit(1)
	}
}
