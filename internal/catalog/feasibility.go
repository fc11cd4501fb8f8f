package catalog

import (
	"fmt"
	"strings"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// FeasibilityError reports every class whose demand cannot structurally fit
// the week, found before any engine work is spent.
type FeasibilityError struct {
	Problems []string
}

func (err *FeasibilityError) Error() string {
	return fmt.Sprintf("catalog is infeasible: %v", strings.Join(err.Problems, "; "))
}

type periodInstance struct {
	course  string
	ordinal int
}

// CheckFeasibility verifies, class by class, that every course has at least
// as many admissible slots as weekly periods and that all period instances of
// the class can be matched to distinct slots. The matching step catches
// overloads the raw counts miss, e.g. two courses competing for the same
// narrow band of slots.
func CheckFeasibility(c *Catalog) error {
	var problems []string

	slots := c.Grid.Slots()

	for _, className := range c.ClassNames() {
		group := c.Classes[className]

		instances := make([]periodInstance, 0, group.TotalPeriods())
		for _, courseName := range c.CourseNames(className) {
			course := group.Courses[courseName]

			admissible := lo.CountBy(slots, func(slot TimeSlot) bool {
				return c.Admissible(className, courseName, slot)
			})
			if admissible < course.Periods {
				problems = append(problems, fmt.Sprintf(
					"%v %v: needs %v periods, only %v slots admissible",
					className, courseName, course.Periods, admissible))
				continue
			}

			for ordinal := 0; ordinal < course.Periods; ordinal++ {
				instances = append(instances, periodInstance{course: courseName, ordinal: ordinal})
			}
		}

		if !matchable(c, className, instances, slots) {
			problems = append(problems, fmt.Sprintf(
				"%v: %v weekly periods cannot be matched to distinct slots",
				className, len(instances)))
		}
	}

	if len(problems) > 0 {
		return &FeasibilityError{Problems: problems}
	}
	return nil
}

// matchable runs a maximum bipartite matching between the class's period
// instances and the slots of the week.
func matchable(c *Catalog, className string, instances []periodInstance, slots []TimeSlot) bool {
	if len(instances) == 0 {
		return true
	}

	neighbors := func(instanceAny any, slotAny any) (bool, error) {
		instance := instanceAny.(periodInstance)
		slot := slotAny.(TimeSlot)
		return c.Admissible(className, instance.course, slot), nil
	}

	instancesAny := lo.Map(instances, func(instance periodInstance, _ int) any { return instance })
	slotsAny := lo.Map(slots, func(slot TimeSlot, _ int) any { return slot })

	graph, err := bipartitegraph.NewBipartiteGraph(instancesAny, slotsAny, neighbors)
	if err != nil {
		return false
	}

	return len(graph.LargestMatching()) == len(instances)
}
