package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkgf/class-arrangement/internal/catalog"
	"github.com/yorkgf/class-arrangement/internal/engine"
)

// miniGrid is a two-day week with two periods each, small enough to reason
// about every solution by hand.
func miniGrid() catalog.WeekGrid {
	return catalog.WeekGrid{PeriodsPerDay: [5]int{2, 2, 0, 0, 0}}
}

func mustBuild(t *testing.T, cat *catalog.Catalog) *Timetable {
	t.Helper()
	outcome, err := NewScheduler(engine.NewGophersatSolver()).Build(cat, time.Minute)
	require.NoError(t, err)
	require.Contains(t, []engine.Status{engine.StatusFeasible, engine.StatusOptimal}, outcome.Status)
	require.NotNil(t, outcome.Timetable)
	return outcome.Timetable
}

func TestBuildSharedTeacherNeverCollides(t *testing.T) {
	// Arrange: T1 teaches X in both classes, without a joint session
	cat := catalog.New(miniGrid())
	cat.AddClass(catalog.NewClassGroup("A", 9)).
		AddCourse(catalog.NewCourse("X", 2, "T1")).
		AddCourse(catalog.NewCourse("Y", 2, "T2"))
	cat.AddClass(catalog.NewClassGroup("B", 9)).
		AddCourse(catalog.NewCourse("X", 2, "T1"))

	// Act
	timetable := mustBuild(t, cat)

	// Assert
	assert.Empty(t, Validate(cat, timetable))
	for _, slot := range cat.Grid.Slots() {
		a := slotHolds(timetable, "A", "X", slot)
		b := slotHolds(timetable, "B", "X", slot)
		assert.False(t, a && b, "T1 teaches both classes at %v", slot)
	}
}

func TestBuildJointSessionStaysAligned(t *testing.T) {
	// Arrange
	cat := catalog.New(miniGrid())
	cat.AddClass(catalog.NewClassGroup("A", 9)).
		AddCourse(catalog.NewCourse("PE", 2, "T1")).
		AddCourse(catalog.NewCourse("Y", 2, "T2"))
	cat.AddClass(catalog.NewClassGroup("B", 9)).
		AddCourse(catalog.NewCourse("PE", 2, "T1")).
		AddCourse(catalog.NewCourse("Z", 2, "T3"))
	cat.JointSessions = []catalog.JointSession{{Classes: []string{"A", "B"}, Course: "PE"}}

	// Act
	timetable := mustBuild(t, cat)

	// Assert
	assert.Empty(t, Validate(cat, timetable))
	assert.Equal(t, timetable.SlotsOf("A", "PE"), timetable.SlotsOf("B", "PE"))
}

func TestBuildHonorsRequiredAndExcludedSlots(t *testing.T) {
	// Arrange
	cat := catalog.New(miniGrid())
	cat.AddClass(catalog.NewClassGroup("A", 9)).
		AddCourse(catalog.NewCourse("X", 2, "T1")).
		AddCourse(catalog.NewCourse("Y", 1, "T2"))
	pinned := catalog.TimeSlot{Day: 0, Period: 1}
	banned := catalog.TimeSlot{Day: 1, Period: 2}
	cat.Require("A", pinned, "X")
	cat.Exclude("A", banned)

	// Act
	timetable := mustBuild(t, cat)

	// Assert
	assert.Empty(t, Validate(cat, timetable))
	course, ok := timetable.CourseAt("A", pinned)
	assert.True(t, ok)
	assert.Equal(t, "X", course)
	_, ok = timetable.CourseAt("A", banned)
	assert.False(t, ok)
}

func TestBuildRejectsOverloadedClassUpFront(t *testing.T) {
	// Arrange: five periods into a four-slot week
	cat := catalog.New(miniGrid())
	cat.AddClass(catalog.NewClassGroup("A", 9)).
		AddCourse(catalog.NewCourse("X", 5, "T1"))

	// Act
	outcome, err := NewScheduler(engine.NewGophersatSolver()).Build(cat, time.Minute)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, outcome)
}

func TestBuildConditionalSyncForcesCompanion(t *testing.T) {
	// Arrange: X may only run while Z does, Z is free to run alone
	cat := catalog.New(miniGrid())
	cat.AddClass(catalog.NewClassGroup("A", 9)).
		AddCourse(catalog.NewCourse("X", 1, "T1"))
	cat.AddClass(catalog.NewClassGroup("B", 9)).
		AddCourse(catalog.NewCourse("Z", 2, "T2"))
	cat.SyncRules = []catalog.SyncRule{{
		Trigger:    catalog.ClassCourse{Class: "A", Course: "X"},
		Companions: []catalog.ClassCourse{{Class: "B", Course: "Z"}},
	}}

	// Act
	timetable := mustBuild(t, cat)

	// Assert
	assert.Empty(t, Validate(cat, timetable))
	for _, slot := range timetable.SlotsOf("A", "X") {
		assert.True(t, slotHolds(timetable, "B", "Z", slot), "X runs at %v without Z", slot)
	}
}

func TestBuildOverlapQuotaHitsExactCount(t *testing.T) {
	// Arrange: E must coincide with P exactly once
	cat := catalog.New(miniGrid())
	cat.AddClass(catalog.NewClassGroup("S", 10)).
		AddCourse(catalog.NewCourse("E", 2, "T1"))
	cat.AddClass(catalog.NewClassGroup("R", 10)).
		AddCourse(catalog.NewCourse("P", 2, "T2"))
	cat.OverlapQuotas = []catalog.OverlapQuota{{
		Satellite:  catalog.ClassCourse{Class: "S", Course: "E"},
		References: []catalog.ClassCourse{{Class: "R", Course: "P"}},
		Want:       1,
	}}

	// Act
	timetable := mustBuild(t, cat)

	// Assert
	assert.Empty(t, Validate(cat, timetable))
	overlaps := 0
	for _, slot := range timetable.SlotsOf("S", "E") {
		if slotHolds(timetable, "R", "P", slot) {
			overlaps++
		}
	}
	assert.Equal(t, 1, overlaps)
}

func TestBuildDoubleDayExactWithAdjacency(t *testing.T) {
	// Arrange: three periods of X over two days, exactly one doubled day
	cat := catalog.New(miniGrid())
	cat.AddClass(catalog.NewClassGroup("A", 9)).
		AddCourse(catalog.NewCourse("X", 3, "T1"))
	cat.TwoPerDayCourses["X"] = true
	cat.DoubleDayRules = []catalog.DoubleDayRule{{Class: "A", Course: "X", Limit: 1, Exact: true}}

	// Act
	timetable := mustBuild(t, cat)

	// Assert
	assert.Empty(t, Validate(cat, timetable))
	doubled := 0
	for day := 0; day < cat.Grid.Days(); day++ {
		periods := []int{}
		for _, slot := range timetable.SlotsOf("A", "X") {
			if slot.Day == day {
				periods = append(periods, slot.Period)
			}
		}
		if len(periods) == 2 {
			doubled++
		}
	}
	assert.Equal(t, 1, doubled)
}

func TestBuildSoftCapsNeverBlockFeasibility(t *testing.T) {
	// Arrange: T1 is forced past a daily cap of one on every day
	cat := catalog.New(miniGrid())
	cat.AddClass(catalog.NewClassGroup("A", 9)).
		AddCourse(catalog.NewCourse("X", 2, "T1")).
		AddCourse(catalog.NewCourse("Y", 2, "T1"))
	cat.TeacherDailyCap = 1
	cat.TeacherDailyCost = 2
	cat.TeacherOpenerCap = 1
	cat.TeacherOpenerCost = 2

	// Act
	outcome, err := NewScheduler(engine.NewGophersatSolver()).Build(cat, time.Minute)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, engine.StatusFeasible, outcome.Status)
	assert.Empty(t, Validate(cat, outcome.Timetable))
}

func TestBuildTrackingBlocksAdminClasses(t *testing.T) {
	// Arrange: tracking class Eng draws students from admin class A
	cat := catalog.New(miniGrid())
	cat.AddClass(catalog.NewClassGroup("A", 9)).
		AddCourse(catalog.NewCourse("X", 2, "T1"))
	cat.AddClass(catalog.NewClassGroup("Eng", 9)).
		AddCourse(catalog.NewCourse("English", 2, "T2"))
	cat.TrackingLinks = []catalog.TrackingLink{{Tracking: "Eng", Admin: []string{"A"}}}

	// Act
	timetable := mustBuild(t, cat)

	// Assert
	assert.Empty(t, Validate(cat, timetable))
	for _, slot := range timetable.SlotsOf("Eng", "English") {
		_, busy := timetable.CourseAt("A", slot)
		assert.False(t, busy, "A holds a course at %v while Eng is in session", slot)
	}
}

func TestCompileIsReproducible(t *testing.T) {
	// Arrange
	build := func() *engine.Model {
		m := engine.NewModel()
		Compile(catalog.DefaultTerm(), m)
		return m
	}

	// Act
	first, second := build(), build()

	// Assert: auxiliary variable numbering matches run to run
	require.Equal(t, first.NumVars(), second.NumVars())
	for v := engine.Var(1); int(v) <= first.NumVars(); v++ {
		require.Equal(t, first.Name(v), second.Name(v), "variable %v", v)
	}
}

func slotHolds(t *Timetable, class, course string, slot catalog.TimeSlot) bool {
	got, ok := t.CourseAt(class, slot)
	return ok && got == course
}
