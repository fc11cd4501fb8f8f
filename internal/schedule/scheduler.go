package schedule

import (
	"fmt"
	"log"
	"time"

	"github.com/yorkgf/class-arrangement/internal/catalog"
	"github.com/yorkgf/class-arrangement/internal/engine"
)

// Outcome is the full result of one scheduling run. Timetable is nil unless
// the engine produced an assignment.
type Outcome struct {
	Status    engine.Status
	Timetable *Timetable
	Objective int
}

// Scheduler drives the whole pipeline: feasibility pre-check, compilation,
// engine run and timetable extraction.
type Scheduler struct {
	solver engine.Solver
}

func NewScheduler(solver engine.Solver) *Scheduler {
	return &Scheduler{solver: solver}
}

// Build compiles the catalog and solves it within the wall-clock budget. A
// catalog that fails the structural pre-check never reaches the engine.
func (s *Scheduler) Build(cat *catalog.Catalog, budget time.Duration) (*Outcome, error) {
	if err := catalog.CheckFeasibility(cat); err != nil {
		return nil, fmt.Errorf("catalog failed the feasibility pre-check: %w", err)
	}

	m := engine.NewModel()
	space := Compile(cat, m)
	log.Printf("Compiled model: %v schedule variables, %v variables total, %v sum constraints, %v implications, %v reifications, %v objective terms",
		space.Size(), m.NumVars(), len(m.Sums), len(m.Implications), len(m.Reifications), len(m.Objective))

	start := time.Now()
	res, err := s.solver.Solve(m, budget)
	if err != nil {
		return nil, fmt.Errorf("engine run failed: %w", err)
	}
	log.Printf("Engine finished in %v with status %v", time.Since(start).Round(time.Millisecond), res.Status)

	outcome := &Outcome{Status: res.Status, Objective: res.Objective}
	if res.Status == engine.StatusFeasible || res.Status == engine.StatusOptimal {
		outcome.Timetable = ExtractTimetable(cat, space, res)
	}
	return outcome, nil
}
