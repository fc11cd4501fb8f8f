// Package schedule compiles a catalog into an engine model, runs a solving
// engine over it and turns the resulting assignment back into a weekly
// timetable. It also carries the independent validator that re-derives every
// hard rule from the catalog and checks a finished timetable against them.
package schedule

import (
	"fmt"

	"github.com/yorkgf/class-arrangement/internal/catalog"
	"github.com/yorkgf/class-arrangement/internal/engine"
)

// VarKey identifies one scheduling decision: this class holds this course at
// this slot.
type VarKey struct {
	Class  string
	Course string
	Slot   catalog.TimeSlot
}

// SlotVar pairs a slot with its decision variable for one class course.
type SlotVar struct {
	Slot catalog.TimeSlot
	Var  engine.Var
}

// CourseVar pairs a course with its decision variable for one class slot.
type CourseVar struct {
	Course string
	Var    engine.Var
}

// VariableSpace is the sparse variable table of one compilation. A key that
// was never admissible has no entry, so an absent key always reads as "cannot
// happen" and every constraint family skips it silently.
type VariableSpace struct {
	cat  *catalog.Catalog
	vars map[VarKey]engine.Var
}

// BuildVariableSpace registers one boolean per admissible (class, course,
// slot) triple with the model, in deterministic order so runs are
// reproducible.
func BuildVariableSpace(cat *catalog.Catalog, m *engine.Model) *VariableSpace {
	space := &VariableSpace{cat: cat, vars: map[VarKey]engine.Var{}}
	for _, class := range cat.ClassNames() {
		for _, course := range cat.CourseNames(class) {
			for _, slot := range cat.Grid.Slots() {
				if !cat.Admissible(class, course, slot) {
					continue
				}
				key := VarKey{Class: class, Course: course, Slot: slot}
				space.vars[key] = m.NewBool(fmt.Sprintf("%v/%v/%v", class, course, slot))
			}
		}
	}
	return space
}

func (s *VariableSpace) Size() int {
	return len(s.vars)
}

// Lookup returns the variable of a triple if it exists. Callers treat a miss
// as an impossible placement, never as an error.
func (s *VariableSpace) Lookup(class, course string, slot catalog.TimeSlot) (engine.Var, bool) {
	v, ok := s.vars[VarKey{Class: class, Course: course, Slot: slot}]
	return v, ok
}

// CourseVars lists the variables of one class course over the whole week in
// day-major slot order.
func (s *VariableSpace) CourseVars(class, course string) []SlotVar {
	out := make([]SlotVar, 0, s.cat.Grid.TotalSlots())
	for _, slot := range s.cat.Grid.Slots() {
		if v, ok := s.Lookup(class, course, slot); ok {
			out = append(out, SlotVar{Slot: slot, Var: v})
		}
	}
	return out
}

// DayVars lists the variables of one class course within a single day in
// period order.
func (s *VariableSpace) DayVars(class, course string, day int) []SlotVar {
	out := []SlotVar{}
	for period := 1; period <= s.cat.Grid.Periods(day); period++ {
		slot := catalog.TimeSlot{Day: day, Period: period}
		if v, ok := s.Lookup(class, course, slot); ok {
			out = append(out, SlotVar{Slot: slot, Var: v})
		}
	}
	return out
}

// SlotVars lists every course of the class that could occupy the slot.
func (s *VariableSpace) SlotVars(class string, slot catalog.TimeSlot) []CourseVar {
	out := []CourseVar{}
	for _, course := range s.cat.CourseNames(class) {
		if v, ok := s.Lookup(class, course, slot); ok {
			out = append(out, CourseVar{Course: course, Var: v})
		}
	}
	return out
}

func bare(vars []SlotVar) []engine.Var {
	out := make([]engine.Var, len(vars))
	for i, sv := range vars {
		out[i] = sv.Var
	}
	return out
}
