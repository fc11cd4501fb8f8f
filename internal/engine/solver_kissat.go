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

const kissatPath = "kissat"

// kissatSolver lowers the model to CNF and feeds it to a kissat subprocess
// over stdin. Like the in-process engine it is decision-only.
type kissatSolver struct{}

func NewKissatSolver() Solver {
	return &kissatSolver{}
}

func (solver *kissatSolver) Solve(m *Model, budget time.Duration) (Result, error) {
	dimacs := lowerToCNF(m).toDIMACS()

	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()
	cmd := exec.CommandContext(ctx, kissatPath, "-q")
	cmd.Stdin = strings.NewReader(dimacs)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if cmd.ProcessState == nil {
		return Result{}, fmt.Errorf("kissat did not start: %v", err)
	}
	// Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable
	exitCode := cmd.ProcessState.ExitCode()
	switch {
	case ctx.Err() != nil:
		return Result{Status: StatusUnknown}, nil
	case exitCode == 20:
		return Result{Status: StatusInfeasible}, nil
	case exitCode != 10:
		return Result{}, fmt.Errorf("an error occurred during kissat execution: %v : %v", err, stderr.String())
	}

	values, ok := parseDIMACSModel(stdOut.String(), m.NumVars())
	if !ok {
		return Result{}, fmt.Errorf("kissat reported satisfiable but printed no model")
	}
	verdict := StatusOptimal
	if len(m.Objective) > 0 {
		verdict = StatusFeasible
	}
	return Result{Status: verdict, values: values, Objective: objectiveOf(m, values)}, nil
}

// parseDIMACSModel collects the literals of every "v " line of a SAT
// competition style output.
func parseDIMACSModel(output string, numVars int) ([]bool, bool) {
	valueLines := lo.Filter(strings.Split(output, "\n"), func(line string, _ int) bool {
		return strings.HasPrefix(line, "v")
	})
	if len(valueLines) == 0 {
		return nil, false
	}

	values := make([]bool, numVars)
	for _, line := range valueLines {
		for _, token := range strings.Fields(line[1:]) {
			lit, err := strconv.Atoi(token)
			if err != nil || lit == 0 {
				continue
			}
			id := lit
			if id < 0 {
				id = -id
			}
			if id <= numVars {
				values[id-1] = lit > 0
			}
		}
	}
	return values, true
}
