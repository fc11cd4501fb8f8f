package catalog

import "strings"

// Course is one subject offered to a class group. A course may be co-taught,
// in which case Teachers holds every staff member that must be present.
type Course struct {
	Name              string
	Periods           int
	Teachers          []string
	PreferConsecutive bool
}

// NewCourse builds a course from a comma-separated teacher list, e.g.
// "Chloe,Manuel" for a co-taught subject.
func NewCourse(name string, periods int, teachers string) Course {
	split := strings.Split(teachers, ",")
	list := make([]string, 0, len(split))
	for _, teacher := range split {
		if trimmed := strings.TrimSpace(teacher); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return Course{Name: name, Periods: periods, Teachers: list}
}

// TeacherLabel renders the teacher set the way reports display it.
func (c Course) TeacherLabel() string {
	return strings.Join(c.Teachers, ",")
}

// ClassGroup is a scheduled unit: either an administrative class (9-A) or a
// tracking pseudo-class (9-Eng-A, 10-EAL-C) that draws its students from
// administrative classes for a single subject.
type ClassGroup struct {
	Name    string
	Grade   int
	Courses map[string]Course
}

func NewClassGroup(name string, grade int) *ClassGroup {
	return &ClassGroup{Name: name, Grade: grade, Courses: map[string]Course{}}
}

func (g *ClassGroup) AddCourse(course Course) *ClassGroup {
	g.Courses[course.Name] = course
	return g
}

func (g *ClassGroup) Course(name string) (Course, bool) {
	course, ok := g.Courses[name]
	return course, ok
}

// TotalPeriods is the weekly load of the class, used by the feasibility
// pre-check before any model is built.
func (g *ClassGroup) TotalPeriods() int {
	total := 0
	for _, course := range g.Courses {
		total += course.Periods
	}
	return total
}
