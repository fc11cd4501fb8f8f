package engine

// cnf accumulates the clausal lowering of a Model. Variables keep their model
// numbering; auxiliary variables for cardinality counters are appended after
// them.
type cnf struct {
	clauses [][]int
	next    int
}

func lowerToCNF(m *Model) *cnf {
	c := &cnf{next: m.NumVars()}
	for _, imp := range m.Implications {
		c.add(-int(imp.If), int(imp.Then))
	}
	for _, re := range m.Reifications {
		c.reify(re)
	}
	for _, s := range m.Sums {
		c.sum(s)
	}
	return c
}

func (c *cnf) fresh() int {
	c.next++
	return c.next
}

func (c *cnf) add(lits ...int) {
	c.clauses = append(c.clauses, lits)
}

// addEscaped appends the escape literals of a half-reified constraint to a
// clause before recording it. A satisfied escape literal vacates the clause.
func (c *cnf) addEscaped(esc []int, lits ...int) {
	c.clauses = append(c.clauses, append(lits, esc...))
}

func (c *cnf) reify(re Reification) {
	t := int(re.Target)
	if re.Min {
		// t <-> AND(ops)
		long := make([]int, 0, len(re.Operands)+1)
		long = append(long, t)
		for _, op := range re.Operands {
			c.add(-t, int(op))
			long = append(long, -int(op))
		}
		c.add(long...)
		return
	}
	// t <-> OR(ops)
	long := make([]int, 0, len(re.Operands)+1)
	long = append(long, -t)
	for _, op := range re.Operands {
		c.add(-int(op), t)
		long = append(long, int(op))
	}
	c.add(long...)
}

func (c *cnf) sum(s SumConstraint) {
	var esc []int
	if s.OnlyIf != 0 {
		esc = append(esc, -int(s.OnlyIf))
	}
	if s.OnlyIfNot != 0 {
		esc = append(esc, int(s.OnlyIfNot))
	}
	lits := make([]int, len(s.Vars))
	for i, v := range s.Vars {
		lits[i] = int(v)
	}
	switch s.Rel {
	case SumLe:
		c.atMost(lits, s.Bound, esc)
	case SumGe:
		c.atLeast(lits, s.Bound, esc)
	case SumEq:
		c.atMost(lits, s.Bound, esc)
		c.atLeast(lits, s.Bound, esc)
	}
}

func (c *cnf) atLeast(lits []int, bound int, esc []int) {
	switch {
	case bound <= 0:
		return
	case bound > len(lits):
		c.contradict(esc)
	case bound == len(lits):
		for _, l := range lits {
			c.addEscaped(esc, l)
		}
	case bound == 1:
		c.addEscaped(esc, lits...)
	default:
		// at-least-k over lits is at-most-(n-k) over their negations
		neg := make([]int, len(lits))
		for i, l := range lits {
			neg[i] = -l
		}
		c.atMost(neg, len(lits)-bound, esc)
	}
}

func (c *cnf) atMost(lits []int, bound int, esc []int) {
	switch {
	case bound >= len(lits):
		return
	case bound < 0:
		c.contradict(esc)
	case bound == 0:
		for _, l := range lits {
			c.addEscaped(esc, -l)
		}
	case bound == 1 && len(lits) <= 6:
		for i := 0; i < len(lits); i++ {
			for j := i + 1; j < len(lits); j++ {
				c.addEscaped(esc, -lits[i], -lits[j])
			}
		}
	default:
		c.sequentialCounter(lits, bound, esc)
	}
}

// sequentialCounter emits the Sinz LT encoding of at-most-bound. Register
// s[i][j] reads "at least j of the first i+1 literals hold".
func (c *cnf) sequentialCounter(lits []int, bound int, esc []int) {
	n := len(lits)
	reg := make([][]int, n-1)
	for i := range reg {
		reg[i] = make([]int, bound)
		for j := range reg[i] {
			reg[i][j] = c.fresh()
		}
	}

	c.addEscaped(esc, -lits[0], reg[0][0])
	for j := 1; j < bound; j++ {
		c.addEscaped(esc, -reg[0][j])
	}
	for i := 1; i < n-1; i++ {
		c.addEscaped(esc, -lits[i], reg[i][0])
		c.addEscaped(esc, -reg[i-1][0], reg[i][0])
		for j := 1; j < bound; j++ {
			c.addEscaped(esc, -lits[i], -reg[i-1][j-1], reg[i][j])
			c.addEscaped(esc, -reg[i-1][j], reg[i][j])
		}
		c.addEscaped(esc, -lits[i], -reg[i-1][bound-1])
	}
	c.addEscaped(esc, -lits[n-1], -reg[n-2][bound-1])
}

// contradict records an unsatisfiable core. With escape literals the clause
// simply forces an escape; without them a fresh variable is pinned both ways,
// which keeps the clause set free of empty clauses.
func (c *cnf) contradict(esc []int) {
	if len(esc) > 0 {
		c.addEscaped(esc)
		return
	}
	v := c.fresh()
	c.add(v)
	c.add(-v)
}
