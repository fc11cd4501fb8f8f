// Package engine defines the narrow contract between the constraint compiler
// and the underlying solving engines: boolean variables, linear sum
// constraints, one-directional implications, AND/OR reifications and a single
// linear objective to maximize. Engines consume a Model and return an
// assignment; nothing of their internal state leaks back.
package engine

// Var is a 1-based handle to a boolean decision variable.
type Var int32

// Relation is the comparison of a sum constraint.
type Relation int

const (
	SumLe Relation = iota
	SumGe
	SumEq
)

func (r Relation) String() string {
	switch r {
	case SumLe:
		return "<="
	case SumGe:
		return ">="
	default:
		return "="
	}
}

// SumConstraint bounds the number of true variables among Vars. OnlyIf and
// OnlyIfNot make the constraint half-reified: it is enforced only while the
// guard variable is true (respectively false) and says nothing otherwise.
type SumConstraint struct {
	Vars      []Var
	Rel       Relation
	Bound     int
	OnlyIf    Var
	OnlyIfNot Var
}

// Implication is the one-directional "If ⇒ Then".
type Implication struct {
	If   Var
	Then Var
}

// Reification binds Target to the AND (min-equality) or OR (max-equality) of
// its operands, with both directions of implication.
type Reification struct {
	Target   Var
	Operands []Var
	Min      bool
}

// Term is one weighted objective contribution. Negative weights are
// penalties.
type Term struct {
	Var    Var
	Weight int
}

// Model is the compiled constraint instance handed to a Solver. It is built
// once and never mutated after Solve is called.
type Model struct {
	names []string

	Sums         []SumConstraint
	Implications []Implication
	Reifications []Reification
	Objective    []Term
}

func NewModel() *Model {
	return &Model{}
}

// NewBool registers a fresh boolean variable under a diagnostic name.
func (m *Model) NewBool(name string) Var {
	m.names = append(m.names, name)
	return Var(len(m.names))
}

func (m *Model) NumVars() int {
	return len(m.names)
}

// Name returns the diagnostic name a variable was registered under.
func (m *Model) Name(v Var) string {
	if v < 1 || int(v) > len(m.names) {
		return ""
	}
	return m.names[v-1]
}

func (m *Model) AddSum(vars []Var, rel Relation, bound int) {
	m.Sums = append(m.Sums, SumConstraint{Vars: vars, Rel: rel, Bound: bound})
}

func (m *Model) AddAtMost(vars []Var, bound int) {
	m.AddSum(vars, SumLe, bound)
}

func (m *Model) AddAtLeast(vars []Var, bound int) {
	m.AddSum(vars, SumGe, bound)
}

func (m *Model) AddExactly(vars []Var, bound int) {
	m.AddSum(vars, SumEq, bound)
}

// FixTrue pins a variable to 1, used for required-slot courses.
func (m *Model) FixTrue(v Var) {
	m.AddExactly([]Var{v}, 1)
}

// AddAtMostUnless enforces sum(vars) <= bound only while the escape variable
// is false. Soft cap families pay for the escape through the objective.
func (m *Model) AddAtMostUnless(vars []Var, bound int, escape Var) {
	m.Sums = append(m.Sums, SumConstraint{Vars: vars, Rel: SumLe, Bound: bound, OnlyIfNot: escape})
}

// AddAtLeastIf enforces sum(vars) >= bound only while the guard variable is
// true, leaving the guard free to stay 0.
func (m *Model) AddAtLeastIf(vars []Var, bound int, guard Var) {
	m.Sums = append(m.Sums, SumConstraint{Vars: vars, Rel: SumGe, Bound: bound, OnlyIf: guard})
}

func (m *Model) AddImplication(ifVar, then Var) {
	m.Implications = append(m.Implications, Implication{If: ifVar, Then: then})
}

// AddEquality couples two variables to the same value.
func (m *Model) AddEquality(a, b Var) {
	m.AddImplication(a, b)
	m.AddImplication(b, a)
}

// AddMinEquality binds target to the logical AND of the operands.
func (m *Model) AddMinEquality(target Var, operands []Var) {
	m.Reifications = append(m.Reifications, Reification{Target: target, Operands: operands, Min: true})
}

// AddMaxEquality binds target to the logical OR of the operands.
func (m *Model) AddMaxEquality(target Var, operands []Var) {
	m.Reifications = append(m.Reifications, Reification{Target: target, Operands: operands})
}

// AddObjectiveTerm contributes weight to the objective whenever v is true.
// The engine maximizes the weighted sum over all terms.
func (m *Model) AddObjectiveTerm(v Var, weight int) {
	m.Objective = append(m.Objective, Term{Var: v, Weight: weight})
}
