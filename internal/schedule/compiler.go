package schedule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/yorkgf/class-arrangement/internal/catalog"
	"github.com/yorkgf/class-arrangement/internal/engine"
)

// compiler walks the catalog once per constraint family and emits the
// corresponding model rows. Families never talk to each other; they share
// only the variable space and the teacher occupancy table.
type compiler struct {
	cat   *catalog.Catalog
	m     *engine.Model
	space *VariableSpace

	// occupancy[teacher][slot] holds one variable per teaching unit, joint
	// sessions collapsed to a single variable.
	occupancy map[string]map[catalog.TimeSlot][]engine.Var
}

// Compile turns the catalog into a complete engine model and returns the
// variable space needed to read an assignment back.
func Compile(cat *catalog.Catalog, m *engine.Model) *VariableSpace {
	c := &compiler{cat: cat, m: m, space: BuildVariableSpace(cat, m)}
	c.buildOccupancy()

	c.courseLoads()
	c.slotExclusivity()
	c.jointSessions()
	c.teacherConflicts()
	c.pinnedSlots()
	c.syncRules()
	c.overlapQuotas()
	c.teacherExclusions()
	c.trackingConsistency()
	c.dailyCaps()
	c.doubleDayCounts()

	c.consecutivePreferences()
	c.bundleBonuses()
	c.teacherOpenerCaps()
	c.teacherDailyCaps()

	return c.space
}

// courseLoads fixes every course to its weekly period count.
func (c *compiler) courseLoads() {
	for _, class := range c.cat.ClassNames() {
		for _, name := range c.cat.CourseNames(class) {
			course := c.cat.Classes[class].Courses[name]
			c.m.AddExactly(bare(c.space.CourseVars(class, name)), course.Periods)
		}
	}
}

// slotExclusivity lets a class hold at most one course per slot.
func (c *compiler) slotExclusivity() {
	for _, class := range c.cat.ClassNames() {
		for _, slot := range c.cat.Grid.Slots() {
			vars := c.space.SlotVars(class, slot)
			if len(vars) > 1 {
				c.m.AddAtMost(lo.Map(vars, func(cv CourseVar, _ int) engine.Var { return cv.Var }), 1)
			}
		}
	}
}

// jointSessions couples every member class of a session slot by slot: all of
// them hold the course or none do. A member without a variable at a slot
// drags the others down to zero there.
func (c *compiler) jointSessions() {
	for _, session := range c.cat.JointSessions {
		for _, slot := range c.cat.Grid.Slots() {
			present := []engine.Var{}
			absent := false
			for _, class := range session.Classes {
				if v, ok := c.space.Lookup(class, session.Course, slot); ok {
					present = append(present, v)
				} else {
					absent = true
				}
			}
			if absent {
				for _, v := range present {
					c.m.AddAtMost([]engine.Var{v}, 0)
				}
				continue
			}
			for i := 1; i < len(present); i++ {
				c.m.AddEquality(present[0], present[i])
			}
		}
	}
}

// buildOccupancy groups every teacher's assignments into teaching units per
// slot. A joint session, or a teacher-level simultaneous group, is one unit
// regardless of how many classes attend, so it blocks exactly one period of
// the teacher's time.
func (c *compiler) buildOccupancy() {
	c.occupancy = map[string]map[catalog.TimeSlot][]engine.Var{}
	byTeacher := c.cat.TeacherAssignments()
	teachers := lo.Keys(byTeacher)
	sort.Strings(teachers)
	for _, teacher := range teachers {
		units := map[string][]catalog.ClassCourse{}
		for _, cc := range byTeacher[teacher] {
			units[c.unitKey(teacher, cc)] = append(units[c.unitKey(teacher, cc)], cc)
		}
		keys := lo.Keys(units)
		sort.Strings(keys)

		bySlot := map[catalog.TimeSlot][]engine.Var{}
		for _, key := range keys {
			for _, slot := range c.cat.Grid.Slots() {
				members := []engine.Var{}
				for _, cc := range units[key] {
					if v, ok := c.space.Lookup(cc.Class, cc.Course, slot); ok {
						members = append(members, v)
					}
				}
				switch len(members) {
				case 0:
				case 1:
					bySlot[slot] = append(bySlot[slot], members[0])
				default:
					unit := c.m.NewBool(fmt.Sprintf("unit/%v/%v/%v", teacher, key, slot))
					c.m.AddMaxEquality(unit, members)
					bySlot[slot] = append(bySlot[slot], unit)
				}
			}
		}
		c.occupancy[teacher] = bySlot
	}
}

func (c *compiler) unitKey(teacher string, cc catalog.ClassCourse) string {
	if session, ok := c.cat.JointFor(cc.Class, cc.Course); ok {
		return "joint/" + cc.Course + "/" + strings.Join(session.Classes, "+")
	}
	if group, ok := c.cat.TeacherJointFor(teacher, cc.Class); ok {
		return "shared/" + cc.Course + "/" + strings.Join(group, "+")
	}
	return cc.Class + "/" + cc.Course
}

// teacherConflicts caps every teacher at one teaching unit per slot.
func (c *compiler) teacherConflicts() {
	teachers := lo.Keys(c.occupancy)
	sort.Strings(teachers)
	for _, teacher := range teachers {
		for _, slot := range c.cat.Grid.Slots() {
			if units := c.occupancy[teacher][slot]; len(units) > 1 {
				c.m.AddAtMost(units, 1)
			}
		}
	}
}

// pinnedSlots forces every required (class, slot, course) reservation.
func (c *compiler) pinnedSlots() {
	for _, class := range c.cat.ClassNames() {
		for _, slot := range c.cat.Grid.Slots() {
			course, pinned := c.cat.RequiredSlots[class][slot]
			if !pinned {
				continue
			}
			if v, ok := c.space.Lookup(class, course, slot); ok {
				c.m.FixTrue(v)
			}
		}
	}
}

// syncRules couples trigger courses to their companions slot by slot. An
// equality rule binds both directions; a plain rule only forces a companion
// whenever the trigger runs, leaving companions free to run alone.
func (c *compiler) syncRules() {
	for _, rule := range c.cat.SyncRules {
		for _, slot := range c.cat.Grid.Slots() {
			trigger, ok := c.space.Lookup(rule.Trigger.Class, rule.Trigger.Course, slot)
			if !ok {
				continue
			}
			companions := []engine.Var{}
			for _, cc := range rule.Companions {
				if v, ok := c.space.Lookup(cc.Class, cc.Course, slot); ok {
					companions = append(companions, v)
				}
			}
			switch {
			case len(companions) == 0:
				c.m.AddAtMost([]engine.Var{trigger}, 0)
			case rule.Equal:
				for _, companion := range companions {
					c.m.AddEquality(trigger, companion)
				}
			case len(companions) == 1:
				c.m.AddImplication(trigger, companions[0])
			default:
				any := c.m.NewBool(fmt.Sprintf("sync/%v/%v/%v", rule.Trigger.Class, rule.Trigger.Course, slot))
				c.m.AddMaxEquality(any, companions)
				c.m.AddImplication(trigger, any)
			}
		}
	}
}

// overlapQuotas requires a satellite course to coincide with its reference
// courses in exactly the quota's number of slots.
func (c *compiler) overlapQuotas() {
	for _, quota := range c.cat.OverlapQuotas {
		overlaps := []engine.Var{}
		for _, slot := range c.cat.Grid.Slots() {
			satellite, ok := c.space.Lookup(quota.Satellite.Class, quota.Satellite.Course, slot)
			if !ok {
				continue
			}
			references := []engine.Var{}
			for _, cc := range quota.References {
				if v, ok := c.space.Lookup(cc.Class, cc.Course, slot); ok {
					references = append(references, v)
				}
			}
			if len(references) == 0 {
				continue
			}
			anyRef := references[0]
			if len(references) > 1 {
				anyRef = c.m.NewBool(fmt.Sprintf("overlap-ref/%v/%v/%v", quota.Satellite.Class, quota.Satellite.Course, slot))
				c.m.AddMaxEquality(anyRef, references)
			}
			both := c.m.NewBool(fmt.Sprintf("overlap/%v/%v/%v", quota.Satellite.Class, quota.Satellite.Course, slot))
			c.m.AddMinEquality(both, []engine.Var{satellite, anyRef})
			overlaps = append(overlaps, both)
		}
		c.m.AddExactly(overlaps, quota.Want)
	}
}

// teacherExclusions forbids any first-side course from coinciding with any
// second-side course of the same rule.
func (c *compiler) teacherExclusions() {
	for _, rule := range c.cat.Exclusions {
		for _, slot := range c.cat.Grid.Slots() {
			for _, first := range rule.First {
				fv, ok := c.space.Lookup(first.Class, first.Course, slot)
				if !ok {
					continue
				}
				for _, second := range rule.Second {
					if sv, ok := c.space.Lookup(second.Class, second.Course, slot); ok {
						c.m.AddAtMost([]engine.Var{fv, sv}, 1)
					}
				}
			}
		}
	}
}

// trackingConsistency keeps administrative classes idle while any tracking
// class drawing their students is in session.
func (c *compiler) trackingConsistency() {
	for _, link := range c.cat.TrackingLinks {
		for _, slot := range c.cat.Grid.Slots() {
			for _, tracked := range c.space.SlotVars(link.Tracking, slot) {
				for _, admin := range link.Admin {
					for _, cv := range c.space.SlotVars(admin, slot) {
						c.m.AddAtMost([]engine.Var{tracked.Var, cv.Var}, 1)
					}
				}
			}
		}
	}
}

// dailyCap is the per-day period ceiling of one course: heavy courses and
// the explicit two-per-day list may double up, everything else gets one.
func (c *compiler) dailyCap(course catalog.Course) int {
	if course.Periods >= 5 || c.cat.TwoPerDayCourses[course.Name] {
		return 2
	}
	return 1
}

// dailyCaps bounds each course's periods per day and forces the two periods
// of a doubled day to be adjacent.
func (c *compiler) dailyCaps() {
	for _, class := range c.cat.ClassNames() {
		if c.cat.CapExemptClasses[class] {
			continue
		}
		for _, name := range c.cat.CourseNames(class) {
			course := c.cat.Classes[class].Courses[name]
			cap := c.dailyCap(course)
			for day := 0; day < c.cat.Grid.Days(); day++ {
				dayVars := c.space.DayVars(class, name, day)
				if len(dayVars) > cap {
					c.m.AddAtMost(bare(dayVars), cap)
				}
				if cap < 2 {
					continue
				}
				// doubled periods must be adjacent
				for i := 0; i < len(dayVars); i++ {
					for j := i + 1; j < len(dayVars); j++ {
						if dayVars[j].Slot.Period > dayVars[i].Slot.Period+1 {
							c.m.AddAtMost([]engine.Var{dayVars[i].Var, dayVars[j].Var}, 1)
						}
					}
				}
			}
		}
	}
}

// doubleDayCounts bounds, or fixes, how many days of the week carry exactly
// two periods of a course. The per-day doubling indicator is reified against
// the day's period sum in both directions.
func (c *compiler) doubleDayCounts() {
	for _, rule := range c.cat.DoubleDayRules {
		indicators := []engine.Var{}
		for day := 0; day < c.cat.Grid.Days(); day++ {
			dayVars := bare(c.space.DayVars(rule.Class, rule.Course, day))
			if len(dayVars) < 2 {
				continue
			}
			doubled := c.m.NewBool(fmt.Sprintf("double/%v/%v/day%v", rule.Class, rule.Course, day))
			c.m.AddAtLeastIf(dayVars, 2, doubled)
			c.m.AddAtMostUnless(dayVars, 1, doubled)
			indicators = append(indicators, doubled)
		}
		if rule.Exact {
			c.m.AddExactly(indicators, rule.Limit)
		} else {
			c.m.AddAtMost(indicators, rule.Limit)
		}
	}
}
