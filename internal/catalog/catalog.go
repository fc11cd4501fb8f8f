package catalog

import (
	"sort"

	"github.com/samber/lo"
)

// Catalog is the immutable description of one term: every class group with
// its courses, the joint sessions, structural slot restrictions and the whole
// set of institution-specific rules. It is built once, before any model
// construction, and only read afterwards.
type Catalog struct {
	Grid    WeekGrid
	Classes map[string]*ClassGroup

	JointSessions []JointSession

	// ExcludedSlots lists slots a class can structurally never use. No
	// schedule variable is ever created for them.
	ExcludedSlots map[string]map[TimeSlot]bool

	// RequiredSlots pins one course of a class to one slot; every other
	// course of that class is barred from the slot by construction.
	RequiredSlots map[string]map[TimeSlot]string

	// TeacherJoint is the teacher-level joint-session side table: classes a
	// single teacher handles simultaneously without a formal JointSession
	// record (shared PE and the like). Keyed by teacher, built explicitly.
	TeacherJoint map[string][][]string

	SyncRules      []SyncRule
	OverlapQuotas  []OverlapQuota
	Exclusions     []TeacherExclusion
	TrackingLinks  []TrackingLink
	DoubleDayRules []DoubleDayRule

	// TwoPerDayCourses are courses below the five-period threshold that may
	// still occupy two slots on one day (Art). CapExemptClasses opt out of
	// the daily-cap family entirely; their load is governed by sync rules.
	TwoPerDayCourses map[string]bool
	CapExemptClasses map[string]bool

	// Soft preferences folded into the engine objective.
	ConsecutiveWeights map[string]int
	BundleBonuses      []BundleBonus
	TeacherOpenerCap   int // days per week a teacher may open at period 1
	TeacherOpenerCost  int
	TeacherDailyCap    int // periods per day before a teacher is penalized
	TeacherDailyCost   int
}

// New returns an empty catalog over the given grid with every table
// initialized, ready for term data to be poured in.
func New(grid WeekGrid) *Catalog {
	return &Catalog{
		Grid:               grid,
		Classes:            map[string]*ClassGroup{},
		ExcludedSlots:      map[string]map[TimeSlot]bool{},
		RequiredSlots:      map[string]map[TimeSlot]string{},
		TeacherJoint:       map[string][][]string{},
		TwoPerDayCourses:   map[string]bool{},
		CapExemptClasses:   map[string]bool{},
		ConsecutiveWeights: map[string]int{},
	}
}

func (c *Catalog) AddClass(group *ClassGroup) *ClassGroup {
	c.Classes[group.Name] = group
	return group
}

func (c *Catalog) Exclude(class string, slots ...TimeSlot) {
	if c.ExcludedSlots[class] == nil {
		c.ExcludedSlots[class] = map[TimeSlot]bool{}
	}
	for _, slot := range slots {
		c.ExcludedSlots[class][slot] = true
	}
}

func (c *Catalog) Require(class string, slot TimeSlot, course string) {
	if c.RequiredSlots[class] == nil {
		c.RequiredSlots[class] = map[TimeSlot]string{}
	}
	c.RequiredSlots[class][slot] = course
}

// Excluded reports whether the slot is structurally unavailable to the class.
func (c *Catalog) Excluded(class string, slot TimeSlot) bool {
	return c.ExcludedSlots[class][slot]
}

// Required returns the course pinned to the slot for the class, if any.
func (c *Catalog) Required(class string, slot TimeSlot) (string, bool) {
	course, ok := c.RequiredSlots[class][slot]
	return course, ok
}

// Admissible is the single structural guard used by the variable-space
// builder, the feasibility pre-check and the validator: a course may occupy a
// slot unless the slot is excluded for the class or reserved for a different
// course.
func (c *Catalog) Admissible(class, course string, slot TimeSlot) bool {
	if !c.Grid.Valid(slot) || c.Excluded(class, slot) {
		return false
	}
	if reserved, ok := c.Required(class, slot); ok && reserved != course {
		return false
	}
	return true
}

// ClassNames returns every class group name in stable sorted order.
func (c *Catalog) ClassNames() []string {
	names := lo.Keys(c.Classes)
	sort.Strings(names)
	return names
}

// CourseNames returns the course names of one class in stable sorted order.
func (c *Catalog) CourseNames(class string) []string {
	group, ok := c.Classes[class]
	if !ok {
		return nil
	}
	names := lo.Keys(group.Courses)
	sort.Strings(names)
	return names
}

// TeacherAssignments maps every teacher to the (class, course) pairs they
// appear in, co-taught courses included once per teacher.
func (c *Catalog) TeacherAssignments() map[string][]ClassCourse {
	assignments := map[string][]ClassCourse{}
	for _, class := range c.ClassNames() {
		for _, courseName := range c.CourseNames(class) {
			course := c.Classes[class].Courses[courseName]
			for _, teacher := range course.Teachers {
				assignments[teacher] = append(assignments[teacher], ClassCourse{Class: class, Course: courseName})
			}
		}
	}
	return assignments
}

// JointFor returns the joint session covering the class and course, if any.
func (c *Catalog) JointFor(class, course string) (JointSession, bool) {
	for _, session := range c.JointSessions {
		if session.Course == course && session.Contains(class) {
			return session, true
		}
	}
	return JointSession{}, false
}

// TeacherJointFor returns the teacher-level simultaneous class set the class
// belongs to under the given teacher, if one exists.
func (c *Catalog) TeacherJointFor(teacher, class string) ([]string, bool) {
	for _, group := range c.TeacherJoint[teacher] {
		if lo.Contains(group, class) {
			return group, true
		}
	}
	return nil, false
}

// Teaches reports whether the teacher is assigned to the class's course.
func (c *Catalog) Teaches(teacher, class, course string) bool {
	group, ok := c.Classes[class]
	if !ok {
		return false
	}
	entry, ok := group.Courses[course]
	return ok && lo.Contains(entry.Teachers, teacher)
}
