package engine

import "time"

// Status is the engine verdict on a model.
type Status int

const (
	// StatusUnknown means the budget ran out before any assignment was found.
	StatusUnknown Status = iota
	// StatusInfeasible means the hard constraints admit no assignment.
	StatusInfeasible
	// StatusFeasible means an assignment was found but optimality is unproven.
	StatusFeasible
	// StatusOptimal means the returned assignment maximizes the objective.
	StatusOptimal
)

func (s Status) String() string {
	switch s {
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusOptimal:
		return "OPTIMAL"
	default:
		return "UNKNOWN"
	}
}

// Result carries the verdict and, for feasible outcomes, the assignment.
type Result struct {
	Status Status
	// values is indexed by Var; present only for Feasible and Optimal.
	values    []bool
	Objective int
}

// Value reports the assigned truth value of v. It is only meaningful when
// Status is Feasible or Optimal.
func (r Result) Value(v Var) bool {
	if v < 1 || int(v) > len(r.values) {
		return false
	}
	return r.values[v-1]
}

// Solver runs a compiled model against a concrete engine within a wall-clock
// budget. Exceeding the budget with a model in hand degrades Optimal to
// Feasible rather than failing.
type Solver interface {
	Solve(m *Model, budget time.Duration) (Result, error)
}

// objectiveOf evaluates the model objective under an assignment.
func objectiveOf(m *Model, values []bool) int {
	total := 0
	for _, t := range m.Objective {
		if int(t.Var) <= len(values) && values[t.Var-1] {
			total += t.Weight
		}
	}
	return total
}
