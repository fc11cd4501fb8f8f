// Package report renders a finished timetable: the global per-slot listing,
// per-class weekly grids, the consecutive-period analysis and the CSV export.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/yorkgf/class-arrangement/internal/catalog"
	"github.com/yorkgf/class-arrangement/internal/engine"
	"github.com/yorkgf/class-arrangement/internal/schedule"
)

var longDayNames = [5]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
var shortDayNames = [5]string{"Mon", "Tue", "Wed", "Thu", "Fri"}

// Reporter renders one timetable against the catalog it was built from.
type Reporter struct {
	cat *catalog.Catalog
	t   *schedule.Timetable
	w   io.Writer
}

func New(cat *catalog.Catalog, t *schedule.Timetable, w io.Writer) *Reporter {
	return &Reporter{cat: cat, t: t, w: w}
}

func (r *Reporter) banner(title string) {
	fmt.Fprintf(r.w, "\n%v\n%v\n%v\n", strings.Repeat("=", 100), title, strings.Repeat("=", 100))
}

// GlobalSchedule lists every slot of the week with all classes in session.
func (r *Reporter) GlobalSchedule() {
	r.banner("GLOBAL SCHEDULE (By Time Slot)")
	for day := 0; day < r.cat.Grid.Days(); day++ {
		fmt.Fprintf(r.w, "\n%v\n%v\n", longDayNames[day], strings.Repeat("-", 96))
		for period := 1; period <= r.cat.Grid.Periods(day); period++ {
			slot := catalog.TimeSlot{Day: day, Period: period}
			lines := []string{}
			for _, class := range r.cat.ClassNames() {
				if course, ok := r.t.CourseAt(class, slot); ok {
					lines = append(lines, fmt.Sprintf("%v %v(%v)", class, course, r.teacherOf(class, course)))
				}
			}
			if len(lines) == 0 {
				fmt.Fprintf(r.w, "  Period %2d: [No classes scheduled]\n", period)
				continue
			}
			fmt.Fprintf(r.w, "  Period %2d: %v\n", period, strings.Join(lines, ", "))
		}
	}
}

// ClassGrids prints one weekly grid per class, marking structurally excluded
// cells with [X] and admissible idle cells with [Free].
func (r *Reporter) ClassGrids() {
	r.banner("CLASS SCHEDULES")
	maxPeriods := 0
	for day := 0; day < r.cat.Grid.Days(); day++ {
		if p := r.cat.Grid.Periods(day); p > maxPeriods {
			maxPeriods = p
		}
	}
	for _, class := range r.cat.ClassNames() {
		fmt.Fprintf(r.w, "\n%v (Grade %v)\n%v\n", class, r.cat.Classes[class].Grade, strings.Repeat("-", 40))
		fmt.Fprintf(r.w, "%-8v", "Period")
		for day := 0; day < r.cat.Grid.Days(); day++ {
			fmt.Fprintf(r.w, "%-12v", shortDayNames[day])
		}
		fmt.Fprintln(r.w)
		for period := 1; period <= maxPeriods; period++ {
			fmt.Fprintf(r.w, "%-8v", period)
			for day := 0; day < r.cat.Grid.Days(); day++ {
				fmt.Fprintf(r.w, "%-12v", r.cell(class, catalog.TimeSlot{Day: day, Period: period}))
			}
			fmt.Fprintln(r.w)
		}
	}
}

func (r *Reporter) cell(class string, slot catalog.TimeSlot) string {
	if !r.cat.Grid.Valid(slot) {
		return "-"
	}
	if course, ok := r.t.CourseAt(class, slot); ok {
		if len(course) > 10 {
			return course[:10]
		}
		return course
	}
	if r.cat.Excluded(class, slot) {
		return "[X]"
	}
	return "[Free]"
}

// ConsecutiveAnalysis reports, per weighted course, which days run it
// back-to-back.
func (r *Reporter) ConsecutiveAnalysis() {
	r.banner("CONSECUTIVE PERIOD ANALYSIS (Soft Constraints)")
	courses := make([]string, 0, len(r.cat.ConsecutiveWeights))
	for course := range r.cat.ConsecutiveWeights {
		courses = append(courses, course)
	}
	sort.Strings(courses)
	for _, course := range courses {
		fmt.Fprintf(r.w, "\n%v (weight %+d):\n%v\n", course, r.cat.ConsecutiveWeights[course], strings.Repeat("-", 40))
		for _, class := range r.cat.ClassNames() {
			if _, ok := r.cat.Classes[class].Course(course); !ok {
				continue
			}
			slots := r.t.SlotsOf(class, course)
			pairs := 0
			for i := 1; i < len(slots); i++ {
				if slots[i].Day == slots[i-1].Day && slots[i].Period == slots[i-1].Period+1 {
					pairs++
				}
			}
			fmt.Fprintf(r.w, "  %v: %v consecutive pairs over %v periods\n", class, pairs, len(slots))
		}
	}
}

// Summary prints the run verdict, the validator defects and per-class period
// counts.
func (r *Reporter) Summary(status engine.Status, objective int, defects []string) {
	r.banner("CLASS SCHEDULE REPORT")
	fmt.Fprintf(r.w, "\nEngine status: %v\n", status)
	fmt.Fprintf(r.w, "Objective value: %v\n\n", objective)

	fmt.Fprintf(r.w, "VALIDATION RESULTS:\n%v\n", strings.Repeat("-", 40))
	if len(defects) == 0 {
		fmt.Fprintln(r.w, "[OK] Timetable is valid!")
	} else {
		fmt.Fprintln(r.w, "[X] Timetable has defects:")
		for _, defect := range defects {
			fmt.Fprintf(r.w, "  - %v\n", defect)
		}
	}

	fmt.Fprintf(r.w, "\nCLASS PERIOD COUNTS:\n%v\n", strings.Repeat("-", 40))
	for _, class := range r.cat.ClassNames() {
		want := r.cat.Classes[class].TotalPeriods()
		got := 0
		for _, course := range r.cat.CourseNames(class) {
			got += len(r.t.SlotsOf(class, course))
		}
		mark := "[OK]"
		if got != want {
			mark = "[X]"
		}
		fmt.Fprintf(r.w, "  %v %v: %v/%v periods\n", mark, class, got, want)
	}
}

func (r *Reporter) teacherOf(class, course string) string {
	if entry, ok := r.cat.Classes[class].Course(course); ok {
		return entry.TeacherLabel()
	}
	return ""
}
