package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/yorkgf/class-arrangement/internal/catalog"
	"github.com/yorkgf/class-arrangement/internal/engine"
	"github.com/yorkgf/class-arrangement/internal/report"
	"github.com/yorkgf/class-arrangement/internal/schedule"
)

var engines = map[string]func() engine.Solver{
	"gophersat":   engine.NewGophersatSolver,
	"roundingsat": engine.NewRoundingsatSolver,
	"kissat":      engine.NewKissatSolver,
}

type runResult struct {
	Engine    string
	Catalog   string
	Status    engine.Status
	Elapsed   time.Duration
	Objective int
	Defects   int
}

func main() {
	enginesPtr := flag.String("engines", "gophersat", "Comma-separated engines to benchmark")
	budgetPtr := flag.Int("budget", 300, "Per-run engine budget in seconds")
	outPtr := flag.String("out", "benchmark.csv", "CSV file for the results")
	flag.Parse()

	catalogs := map[string]*catalog.Catalog{"builtin": catalog.DefaultTerm()}
	for _, file := range flag.Args() {
		cat, err := catalog.FromJSON(file)
		if err != nil {
			log.Fatalf("cannot load catalog %v: %v", file, err)
		}
		catalogs[file] = cat
	}

	names := strings.Split(*enginesPtr, ",")
	results := make([]runResult, 0, len(names)*len(catalogs))
	for _, name := range names {
		newSolver, ok := engines[strings.TrimSpace(name)]
		if !ok {
			log.Fatalf("unknown engine %q", name)
		}
		for catName, cat := range catalogs {
			results = append(results, run(strings.TrimSpace(name), newSolver(), catName, cat, time.Duration(*budgetPtr)*time.Second))
		}
	}

	if err := writeResults(*outPtr, results); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Results saved to: %v\n", *outPtr)
}

func run(engineName string, solver engine.Solver, catName string, cat *catalog.Catalog, budget time.Duration) runResult {
	log.Printf("Running %v on %v", engineName, catName)

	start := time.Now()
	outcome, err := schedule.NewScheduler(solver).Build(cat, budget)
	elapsed := time.Since(start)
	if err != nil {
		log.Printf("%v on %v failed: %v", engineName, catName, err)
		return runResult{Engine: engineName, Catalog: catName, Status: engine.StatusUnknown, Elapsed: elapsed}
	}

	result := runResult{Engine: engineName, Catalog: catName, Status: outcome.Status, Elapsed: elapsed, Objective: outcome.Objective}
	if outcome.Timetable != nil {
		defects := schedule.Validate(cat, outcome.Timetable)
		result.Defects = len(defects)
		report.New(cat, outcome.Timetable, os.Stdout).Summary(outcome.Status, outcome.Objective, defects)
	}
	return result
}

func writeResults(path string, results []runResult) error {
	rows := [][]string{{"Engine", "Catalog", "Status", "ElapsedMs", "Objective", "Defects"}}
	rows = append(rows, lo.Map(results, func(r runResult, _ int) []string {
		return []string{
			r.Engine, r.Catalog, r.Status.String(),
			strconv.FormatInt(r.Elapsed.Milliseconds(), 10),
			strconv.Itoa(r.Objective), strconv.Itoa(r.Defects),
		}
	})...)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %v: %v", path, err)
	}
	defer f.Close()
	return csv.NewWriter(f).WriteAll(rows)
}
