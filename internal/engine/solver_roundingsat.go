package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

const roundingsatPath = "roundingsat"

// roundingsatSolver encodes the model in OPB format and feeds it to a
// roundingsat subprocess over stdin. Unlike the in-process engine it is a
// true optimizer and can certify OPTIMAL results for models with soft terms.
type roundingsatSolver struct{}

func NewRoundingsatSolver() Solver {
	return &roundingsatSolver{}
}

func (solver *roundingsatSolver) Solve(m *Model, budget time.Duration) (Result, error) {
	opb := EncodeOPB(m)

	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()
	cmd := exec.CommandContext(ctx, roundingsatPath, "--print-sol=1")
	cmd.Stdin = strings.NewReader(opb)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	res, parsed := parseRoundingsat(stdOut.String(), m)
	// PB solvers signal their verdict through the exit code; any run that
	// still produced a status line is a usable answer
	if err != nil && !parsed && ctx.Err() == nil {
		return Result{}, fmt.Errorf("an error occurred during roundingsat execution: %v : %v", err, stderr.String())
	}
	if !parsed {
		return Result{Status: StatusUnknown}, nil
	}
	return res, nil
}

// parseRoundingsat extracts the verdict and assignment from the solver's
// "s"/"v" output lines. A killed run that already printed an intermediate
// solution degrades to FEASIBLE instead of UNKNOWN.
func parseRoundingsat(output string, m *Model) (Result, bool) {
	lines := strings.Split(output, "\n")

	statusLine, ok := lo.Find(lines, func(line string) bool { return strings.HasPrefix(line, "s ") })
	if !ok {
		return Result{}, false
	}

	var status Status
	switch strings.TrimSpace(statusLine[2:]) {
	case "OPTIMUM FOUND":
		status = StatusOptimal
	case "SATISFIABLE":
		status = StatusFeasible
	case "UNSATISFIABLE":
		return Result{Status: StatusInfeasible}, true
	default:
		return Result{Status: StatusUnknown}, true
	}

	values := make([]bool, m.NumVars())
	valueLines := lo.Filter(lines, func(line string, _ int) bool { return strings.HasPrefix(line, "v ") })
	if len(valueLines) == 0 {
		return Result{Status: StatusUnknown}, true
	}
	for _, line := range valueLines {
		for _, token := range strings.Fields(line[2:]) {
			negative := strings.HasPrefix(token, "-")
			token = strings.TrimPrefix(token, "-")
			token = strings.TrimPrefix(token, "x")
			id, err := strconv.Atoi(token)
			if err != nil || id < 1 {
				continue
			}
			if id <= len(values) {
				values[id-1] = !negative
			}
		}
	}
	return Result{Status: status, values: values, Objective: objectiveOf(m, values)}, true
}
