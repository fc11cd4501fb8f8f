package engine

import (
	"time"

	"github.com/crillab/gophersat/solver"
)

// gophersatSolver lowers the model to CNF and runs the in-process gophersat
// engine. It is a decision engine: it never explores the objective, so a
// model with soft terms comes back Feasible at best, while a pure hard model
// can be reported Optimal.
type gophersatSolver struct{}

func NewGophersatSolver() Solver {
	return &gophersatSolver{}
}

func (g *gophersatSolver) Solve(m *Model, budget time.Duration) (Result, error) {
	c := lowerToCNF(m)
	s := solver.New(solver.ParseSlice(c.clauses))

	// gophersat has no interruption hook, so an expired budget abandons
	// the search goroutine rather than stopping it.
	done := make(chan solver.Status, 1)
	go func() { done <- s.Solve() }()

	var status solver.Status
	select {
	case status = <-done:
	case <-time.After(budget):
		return Result{Status: StatusUnknown}, nil
	}

	if status == solver.Unsat {
		return Result{Status: StatusInfeasible}, nil
	}
	assignment := s.Model()
	values := make([]bool, m.NumVars())
	copy(values, assignment)
	verdict := StatusOptimal
	if len(m.Objective) > 0 {
		verdict = StatusFeasible
	}
	return Result{Status: verdict, values: values, Objective: objectiveOf(m, values)}, nil
}
