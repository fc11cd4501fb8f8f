package schedule

import (
	"sort"

	"github.com/yorkgf/class-arrangement/internal/catalog"
	"github.com/yorkgf/class-arrangement/internal/engine"
)

// Entry is one placed period of the final timetable.
type Entry struct {
	Class   string
	Slot    catalog.TimeSlot
	Course  string
	Teacher string
}

// Timetable is the flat result of a solve, indexed for slot lookups. It is
// also what the validator consumes, so it carries no engine state.
type Timetable struct {
	Entries []Entry

	byClassSlot map[string]map[catalog.TimeSlot]string
}

// NewTimetable indexes a list of entries. Entries are kept in class, day,
// period order.
func NewTimetable(entries []Entry) *Timetable {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Class != entries[j].Class {
			return entries[i].Class < entries[j].Class
		}
		if entries[i].Slot.Day != entries[j].Slot.Day {
			return entries[i].Slot.Day < entries[j].Slot.Day
		}
		return entries[i].Slot.Period < entries[j].Slot.Period
	})
	t := &Timetable{Entries: entries, byClassSlot: map[string]map[catalog.TimeSlot]string{}}
	for _, e := range entries {
		if t.byClassSlot[e.Class] == nil {
			t.byClassSlot[e.Class] = map[catalog.TimeSlot]string{}
		}
		t.byClassSlot[e.Class][e.Slot] = e.Course
	}
	return t
}

// ExtractTimetable reads the true schedule variables out of a solved model.
func ExtractTimetable(cat *catalog.Catalog, space *VariableSpace, res engine.Result) *Timetable {
	entries := []Entry{}
	for _, class := range cat.ClassNames() {
		for _, name := range cat.CourseNames(class) {
			course := cat.Classes[class].Courses[name]
			for _, sv := range space.CourseVars(class, name) {
				if res.Value(sv.Var) {
					entries = append(entries, Entry{
						Class:   class,
						Slot:    sv.Slot,
						Course:  name,
						Teacher: course.TeacherLabel(),
					})
				}
			}
		}
	}
	return NewTimetable(entries)
}

// CourseAt returns the course a class holds at a slot, if any.
func (t *Timetable) CourseAt(class string, slot catalog.TimeSlot) (string, bool) {
	course, ok := t.byClassSlot[class][slot]
	return course, ok
}

// SlotsOf lists every slot a class holds the course in, day-major order.
func (t *Timetable) SlotsOf(class, course string) []catalog.TimeSlot {
	slots := []catalog.TimeSlot{}
	for _, e := range t.Entries {
		if e.Class == class && e.Course == course {
			slots = append(slots, e.Slot)
		}
	}
	return slots
}
