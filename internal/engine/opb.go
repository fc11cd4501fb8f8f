package engine

import (
	"fmt"
	"strings"
)

// EncodeOPB renders a model in the pseudo-boolean competition format. Only
// ">=" and "=" rows are emitted; upper bounds are flipped by negating
// coefficients. Half-reified sums are linearized with a big-M coefficient on
// the guard, which stays exact because every coefficient is unit.
func EncodeOPB(m *Model) string {
	var rows []string
	for _, imp := range m.Implications {
		rows = append(rows, fmt.Sprintf("+1 x%d -1 x%d >= 0 ;", imp.Then, imp.If))
	}
	for _, re := range m.Reifications {
		rows = append(rows, opbReification(re)...)
	}
	for _, s := range m.Sums {
		rows = append(rows, opbSum(s)...)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "* #variable= %d #constraint= %d\n", m.NumVars(), len(rows))
	if len(m.Objective) > 0 {
		b.WriteString("min:")
		for _, t := range m.Objective {
			fmt.Fprintf(&b, " %+d x%d", -t.Weight, t.Var)
		}
		b.WriteString(" ;\n")
	}
	for _, row := range rows {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}

func opbReification(re Reification) []string {
	rows := make([]string, 0, len(re.Operands)+1)
	var long strings.Builder
	if re.Min {
		// target <= each operand, target >= sum - (n-1)
		fmt.Fprintf(&long, "+1 x%d", re.Target)
		for _, op := range re.Operands {
			rows = append(rows, fmt.Sprintf("+1 x%d -1 x%d >= 0 ;", op, re.Target))
			fmt.Fprintf(&long, " -1 x%d", op)
		}
		fmt.Fprintf(&long, " >= %d ;", 1-len(re.Operands))
		return append(rows, long.String())
	}
	// target >= each operand, target <= sum
	fmt.Fprintf(&long, "-1 x%d", re.Target)
	for _, op := range re.Operands {
		rows = append(rows, fmt.Sprintf("+1 x%d -1 x%d >= 0 ;", re.Target, op))
		fmt.Fprintf(&long, " +1 x%d", op)
	}
	long.WriteString(" >= 0 ;")
	return append(rows, long.String())
}

func opbSum(s SumConstraint) []string {
	switch s.Rel {
	case SumEq:
		le, ge := s, s
		le.Rel, ge.Rel = SumLe, SumGe
		if s.OnlyIf == 0 && s.OnlyIfNot == 0 {
			return []string{opbRow(s.Vars, 1, nil, 0, "=", s.Bound)}
		}
		return append(opbSum(le), opbSum(ge)...)
	case SumGe:
		// guard off or escape on relaxes the bound to zero
		switch {
		case s.OnlyIf != 0:
			return []string{opbRow(s.Vars, 1, []Var{s.OnlyIf}, -s.Bound, ">=", 0)}
		case s.OnlyIfNot != 0:
			return []string{opbRow(s.Vars, 1, []Var{s.OnlyIfNot}, s.Bound, ">=", s.Bound)}
		default:
			return []string{opbRow(s.Vars, 1, nil, 0, ">=", s.Bound)}
		}
	default: // SumLe, flipped to >= on negated coefficients
		slack := len(s.Vars) - s.Bound
		switch {
		case s.OnlyIf != 0:
			return []string{opbRow(s.Vars, -1, []Var{s.OnlyIf}, -slack, ">=", -s.Bound-slack)}
		case s.OnlyIfNot != 0:
			return []string{opbRow(s.Vars, -1, []Var{s.OnlyIfNot}, slack, ">=", -s.Bound)}
		default:
			return []string{opbRow(s.Vars, -1, nil, 0, ">=", -s.Bound)}
		}
	}
}

func opbRow(vars []Var, coef int, extra []Var, extraCoef int, op string, rhs int) string {
	var b strings.Builder
	for _, v := range vars {
		fmt.Fprintf(&b, "%+d x%d ", coef, v)
	}
	for _, v := range extra {
		fmt.Fprintf(&b, "%+d x%d ", extraCoef, v)
	}
	fmt.Fprintf(&b, "%s %d ;", op, rhs)
	return b.String()
}
