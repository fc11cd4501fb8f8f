package schedule

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/yorkgf/class-arrangement/internal/catalog"
)

// Validate re-derives every hard rule from the catalog alone and checks the
// timetable against them, sharing no code with the compiler beyond the
// catalog accessors. It returns one line per defect, in a deterministic
// order, and nil for a clean timetable.
func Validate(cat *catalog.Catalog, t *Timetable) []string {
	v := &validator{cat: cat, t: t}

	v.checkPlacements()
	v.checkLoads()
	v.checkExclusivity()
	v.checkRequiredSlots()
	v.checkJointSessions()
	v.checkTeacherConflicts()
	v.checkSyncRules()
	v.checkOverlapQuotas()
	v.checkTeacherExclusions()
	v.checkTracking()
	v.checkDailyCaps()
	v.checkDoubleDays()

	return v.defects
}

type validator struct {
	cat     *catalog.Catalog
	t       *Timetable
	defects []string
}

func (v *validator) flag(format string, args ...any) {
	v.defects = append(v.defects, fmt.Sprintf(format, args...))
}

// checkPlacements rejects entries outside the catalog or on inadmissible
// slots.
func (v *validator) checkPlacements() {
	for _, e := range v.t.Entries {
		group, ok := v.cat.Classes[e.Class]
		if !ok {
			v.flag("unknown class %v at %v", e.Class, e.Slot)
			continue
		}
		if _, ok := group.Course(e.Course); !ok {
			v.flag("class %v has no course %v (placed at %v)", e.Class, e.Course, e.Slot)
			continue
		}
		if !v.cat.Admissible(e.Class, e.Course, e.Slot) {
			v.flag("class %v course %v placed on inadmissible slot %v", e.Class, e.Course, e.Slot)
		}
	}
}

func (v *validator) checkLoads() {
	for _, class := range v.cat.ClassNames() {
		for _, name := range v.cat.CourseNames(class) {
			want := v.cat.Classes[class].Courses[name].Periods
			got := len(v.t.SlotsOf(class, name))
			if got != want {
				v.flag("class %v course %v occupies %v periods, want %v", class, name, got, want)
			}
		}
	}
}

func (v *validator) checkExclusivity() {
	seen := map[string]map[catalog.TimeSlot]int{}
	for _, e := range v.t.Entries {
		if seen[e.Class] == nil {
			seen[e.Class] = map[catalog.TimeSlot]int{}
		}
		seen[e.Class][e.Slot]++
	}
	for _, class := range v.cat.ClassNames() {
		for _, slot := range v.cat.Grid.Slots() {
			if seen[class][slot] > 1 {
				v.flag("class %v holds %v courses at %v", class, seen[class][slot], slot)
			}
		}
	}
}

func (v *validator) checkRequiredSlots() {
	for _, class := range v.cat.ClassNames() {
		slots := lo.Keys(v.cat.RequiredSlots[class])
		sort.Slice(slots, func(i, j int) bool {
			if slots[i].Day != slots[j].Day {
				return slots[i].Day < slots[j].Day
			}
			return slots[i].Period < slots[j].Period
		})
		for _, slot := range slots {
			want := v.cat.RequiredSlots[class][slot]
			got, ok := v.t.CourseAt(class, slot)
			if !ok || got != want {
				v.flag("class %v must hold %v at %v", class, want, slot)
			}
		}
	}
}

func (v *validator) checkJointSessions() {
	for _, session := range v.cat.JointSessions {
		for _, slot := range v.cat.Grid.Slots() {
			attending := lo.Filter(session.Classes, func(class string, _ int) bool {
				course, ok := v.t.CourseAt(class, slot)
				return ok && course == session.Course
			})
			if len(attending) != 0 && len(attending) != len(session.Classes) {
				v.flag("joint session %v is split at %v: only %v attend", session.Course, slot, attending)
			}
		}
	}
}

// checkTeacherConflicts counts the distinct teaching units of a teacher per
// slot, a joint or shared session being one unit however many classes sit in
// it.
func (v *validator) checkTeacherConflicts() {
	assignments := v.cat.TeacherAssignments()
	teachers := lo.Keys(assignments)
	sort.Strings(teachers)
	for _, teacher := range teachers {
		for _, slot := range v.cat.Grid.Slots() {
			units := map[string]bool{}
			for _, cc := range assignments[teacher] {
				if course, ok := v.t.CourseAt(cc.Class, slot); ok && course == cc.Course {
					units[v.unitKey(teacher, cc)] = true
				}
			}
			if len(units) > 1 {
				keys := lo.Keys(units)
				sort.Strings(keys)
				v.flag("teacher %v teaches %v units at %v: %v", teacher, len(units), slot, keys)
			}
		}
	}
}

func (v *validator) unitKey(teacher string, cc catalog.ClassCourse) string {
	if session, ok := v.cat.JointFor(cc.Class, cc.Course); ok {
		return fmt.Sprintf("joint/%v/%v", cc.Course, session.Classes)
	}
	if group, ok := v.cat.TeacherJointFor(teacher, cc.Class); ok {
		return fmt.Sprintf("shared/%v/%v", cc.Course, group)
	}
	return cc.Class + "/" + cc.Course
}

func (v *validator) checkSyncRules() {
	for _, rule := range v.cat.SyncRules {
		for _, slot := range v.cat.Grid.Slots() {
			triggerOn := v.holds(rule.Trigger, slot)
			if rule.Equal {
				// Equality binds the trigger to every companion, so each
				// companion is checked on its own.
				for _, cc := range rule.Companions {
					if v.holds(cc, slot) == triggerOn {
						continue
					}
					if triggerOn {
						v.flag("sync: %v/%v runs at %v without companion %v/%v",
							rule.Trigger.Class, rule.Trigger.Course, slot, cc.Class, cc.Course)
					} else {
						v.flag("sync: companion %v/%v runs at %v without %v/%v",
							cc.Class, cc.Course, slot, rule.Trigger.Class, rule.Trigger.Course)
					}
				}
				continue
			}
			companionOn := lo.SomeBy(rule.Companions, func(cc catalog.ClassCourse) bool {
				return v.holds(cc, slot)
			})
			if triggerOn && !companionOn {
				v.flag("sync: %v/%v runs at %v with no companion", rule.Trigger.Class, rule.Trigger.Course, slot)
			}
		}
	}
}

func (v *validator) holds(cc catalog.ClassCourse, slot catalog.TimeSlot) bool {
	course, ok := v.t.CourseAt(cc.Class, slot)
	return ok && course == cc.Course
}

func (v *validator) checkOverlapQuotas() {
	for _, quota := range v.cat.OverlapQuotas {
		got := lo.CountBy(v.cat.Grid.Slots(), func(slot catalog.TimeSlot) bool {
			if !v.holds(quota.Satellite, slot) {
				return false
			}
			return lo.SomeBy(quota.References, func(cc catalog.ClassCourse) bool {
				return v.holds(cc, slot)
			})
		})
		if got != quota.Want {
			v.flag("overlap: %v/%v coincides with its references in %v slots, want %v",
				quota.Satellite.Class, quota.Satellite.Course, got, quota.Want)
		}
	}
}

func (v *validator) checkTeacherExclusions() {
	for _, rule := range v.cat.Exclusions {
		for _, slot := range v.cat.Grid.Slots() {
			for _, first := range rule.First {
				if !v.holds(first, slot) {
					continue
				}
				for _, second := range rule.Second {
					if v.holds(second, slot) {
						v.flag("exclusion (%v): %v/%v coincides with %v/%v at %v",
							rule.Teacher, first.Class, first.Course, second.Class, second.Course, slot)
					}
				}
			}
		}
	}
}

func (v *validator) checkTracking() {
	for _, link := range v.cat.TrackingLinks {
		for _, slot := range v.cat.Grid.Slots() {
			if _, busy := v.t.CourseAt(link.Tracking, slot); !busy {
				continue
			}
			for _, admin := range link.Admin {
				if course, ok := v.t.CourseAt(admin, slot); ok {
					v.flag("tracking: %v runs at %v while %v holds %v", link.Tracking, slot, admin, course)
				}
			}
		}
	}
}

func (v *validator) checkDailyCaps() {
	for _, class := range v.cat.ClassNames() {
		if v.cat.CapExemptClasses[class] {
			continue
		}
		for _, name := range v.cat.CourseNames(class) {
			course := v.cat.Classes[class].Courses[name]
			cap := 1
			if course.Periods >= 5 || v.cat.TwoPerDayCourses[name] {
				cap = 2
			}
			for day := 0; day < v.cat.Grid.Days(); day++ {
				periods := v.periodsOn(class, name, day)
				if len(periods) > cap {
					v.flag("class %v course %v has %v periods on day %v, cap %v", class, name, len(periods), day, cap)
					continue
				}
				if len(periods) == 2 && periods[1] != periods[0]+1 {
					v.flag("class %v course %v doubles non-adjacently on day %v: periods %v", class, name, day, periods)
				}
			}
		}
	}
}

func (v *validator) periodsOn(class, course string, day int) []int {
	periods := []int{}
	for _, slot := range v.t.SlotsOf(class, course) {
		if slot.Day == day {
			periods = append(periods, slot.Period)
		}
	}
	sort.Ints(periods)
	return periods
}

func (v *validator) checkDoubleDays() {
	for _, rule := range v.cat.DoubleDayRules {
		doubled := 0
		for day := 0; day < v.cat.Grid.Days(); day++ {
			if len(v.periodsOn(rule.Class, rule.Course, day)) == 2 {
				doubled++
			}
		}
		if rule.Exact && doubled != rule.Limit {
			v.flag("class %v course %v doubles on %v days, want exactly %v", rule.Class, rule.Course, doubled, rule.Limit)
		} else if !rule.Exact && doubled > rule.Limit {
			v.flag("class %v course %v doubles on %v days, cap %v", rule.Class, rule.Course, doubled, rule.Limit)
		}
	}
}
