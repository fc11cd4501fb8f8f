package engine

import (
	"fmt"
	"strings"
)

// toDIMACS renders a lowered clause set in DIMACS-CNF format for the
// subprocess SAT engines.
func (c *cnf) toDIMACS() string {
	var b strings.Builder
	fmt.Fprintf(&b, "p cnf %v %v\n", c.next, len(c.clauses))
	for _, clause := range c.clauses {
		for _, lit := range clause {
			fmt.Fprintf(&b, "%v ", lit)
		}
		b.WriteString("0\n")
	}
	return b.String()
}
