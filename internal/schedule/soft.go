package schedule

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/yorkgf/class-arrangement/internal/catalog"
	"github.com/yorkgf/class-arrangement/internal/engine"
)

// consecutivePreferences rewards, or penalizes, back-to-back periods of a
// course. Each adjacent same-day pair gets a fully reified AND indicator
// carrying the course weight, so a negative weight cannot be dodged by
// leaving the indicator unset.
func (c *compiler) consecutivePreferences() {
	for _, class := range c.cat.ClassNames() {
		for _, name := range c.cat.CourseNames(class) {
			weight := c.cat.ConsecutiveWeights[name]
			if weight == 0 && c.cat.Classes[class].Courses[name].PreferConsecutive {
				weight = 1
			}
			if weight == 0 {
				continue
			}
			for day := 0; day < c.cat.Grid.Days(); day++ {
				dayVars := c.space.DayVars(class, name, day)
				for i := 1; i < len(dayVars); i++ {
					if dayVars[i].Slot.Period != dayVars[i-1].Slot.Period+1 {
						continue
					}
					pair := c.m.NewBool(fmt.Sprintf("adjacent/%v/%v/%v", class, name, dayVars[i-1].Slot))
					c.m.AddMinEquality(pair, []engine.Var{dayVars[i-1].Var, dayVars[i].Var})
					c.m.AddObjectiveTerm(pair, weight)
				}
			}
		}
	}
}

// bundleBonuses award a day that stacks enough periods from a course bundle,
// the AP-heavy afternoons the upper grades prefer.
func (c *compiler) bundleBonuses() {
	for _, bonus := range c.cat.BundleBonuses {
		for _, class := range bonus.Classes {
			for day := 0; day < c.cat.Grid.Days(); day++ {
				dayVars := []engine.Var{}
				for _, course := range bonus.Courses {
					dayVars = append(dayVars, bare(c.space.DayVars(class, course, day))...)
				}
				if len(dayVars) < bonus.Min {
					continue
				}
				stacked := c.m.NewBool(fmt.Sprintf("bundle/%v/day%v", class, day))
				c.m.AddAtLeastIf(dayVars, bonus.Min, stacked)
				c.m.AddObjectiveTerm(stacked, bonus.Weight)
			}
		}
	}
}

// teacherOpenerCaps charges a teacher who opens the day at period one more
// often than the weekly cap allows.
func (c *compiler) teacherOpenerCaps() {
	if c.cat.TeacherOpenerCap <= 0 {
		return
	}
	for _, teacher := range sortedTeachers(c.occupancy) {
		openers := []engine.Var{}
		for day := 0; day < c.cat.Grid.Days(); day++ {
			slot := catalog.TimeSlot{Day: day, Period: 1}
			units := c.occupancy[teacher][slot]
			switch len(units) {
			case 0:
			case 1:
				openers = append(openers, units[0])
			default:
				opener := c.m.NewBool(fmt.Sprintf("opener/%v/day%v", teacher, day))
				c.m.AddMaxEquality(opener, units)
				openers = append(openers, opener)
			}
		}
		if len(openers) <= c.cat.TeacherOpenerCap {
			continue
		}
		overloaded := c.m.NewBool(fmt.Sprintf("opener-over/%v", teacher))
		c.m.AddAtMostUnless(openers, c.cat.TeacherOpenerCap, overloaded)
		c.m.AddObjectiveTerm(overloaded, -c.cat.TeacherOpenerCost)
	}
}

// teacherDailyCaps charges a teacher loaded past the daily period cap. The
// teacher-conflict family keeps units below one per slot, so summing unit
// variables over a day counts occupied periods.
func (c *compiler) teacherDailyCaps() {
	if c.cat.TeacherDailyCap <= 0 {
		return
	}
	for _, teacher := range sortedTeachers(c.occupancy) {
		for day := 0; day < c.cat.Grid.Days(); day++ {
			dayUnits := []engine.Var{}
			for period := 1; period <= c.cat.Grid.Periods(day); period++ {
				slot := catalog.TimeSlot{Day: day, Period: period}
				dayUnits = append(dayUnits, c.occupancy[teacher][slot]...)
			}
			if len(dayUnits) <= c.cat.TeacherDailyCap {
				continue
			}
			overloaded := c.m.NewBool(fmt.Sprintf("daily-over/%v/day%v", teacher, day))
			c.m.AddAtMostUnless(dayUnits, c.cat.TeacherDailyCap, overloaded)
			c.m.AddObjectiveTerm(overloaded, -c.cat.TeacherDailyCost)
		}
	}
}

func sortedTeachers(occupancy map[string]map[catalog.TimeSlot][]engine.Var) []string {
	teachers := lo.Keys(occupancy)
	sort.Strings(teachers)
	return teachers
}
