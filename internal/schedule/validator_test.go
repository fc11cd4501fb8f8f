package schedule

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yorkgf/class-arrangement/internal/catalog"
)

func slot(day, period int) catalog.TimeSlot {
	return catalog.TimeSlot{Day: day, Period: period}
}

// validationCatalog is a hand-checkable two-day term used by every fixture
// below: two admin classes sharing teacher T1 on X, plus a tracking class.
func validationCatalog() *catalog.Catalog {
	cat := catalog.New(miniGrid())
	cat.AddClass(catalog.NewClassGroup("A", 9)).
		AddCourse(catalog.NewCourse("X", 2, "T1")).
		AddCourse(catalog.NewCourse("Y", 2, "T2"))
	cat.AddClass(catalog.NewClassGroup("B", 9)).
		AddCourse(catalog.NewCourse("X", 2, "T1"))
	return cat
}

// legalEntries is a defect-free timetable for validationCatalog.
func legalEntries() []Entry {
	return []Entry{
		{Class: "A", Slot: slot(0, 1), Course: "X", Teacher: "T1"},
		{Class: "A", Slot: slot(1, 1), Course: "X", Teacher: "T1"},
		{Class: "A", Slot: slot(0, 2), Course: "Y", Teacher: "T2"},
		{Class: "A", Slot: slot(1, 2), Course: "Y", Teacher: "T2"},
		{Class: "B", Slot: slot(0, 2), Course: "X", Teacher: "T1"},
		{Class: "B", Slot: slot(1, 2), Course: "X", Teacher: "T1"},
	}
}

func hasDefect(defects []string, fragment string) bool {
	for _, d := range defects {
		if strings.Contains(d, fragment) {
			return true
		}
	}
	return false
}

func TestValidateCleanTimetable(t *testing.T) {
	// Arrange
	cat := validationCatalog()

	// Act
	defects := Validate(cat, NewTimetable(legalEntries()))

	// Assert
	assert.Empty(t, defects)
}

func TestValidateFlagsWrongLoad(t *testing.T) {
	// Arrange: drop one period of B's X
	cat := validationCatalog()
	entries := legalEntries()[:len(legalEntries())-1]

	// Act
	defects := Validate(cat, NewTimetable(entries))

	// Assert
	assert.True(t, hasDefect(defects, "class B course X occupies 1 periods, want 2"))
}

func TestValidateFlagsUnknownPlacements(t *testing.T) {
	// Arrange
	cat := validationCatalog()
	entries := append(legalEntries(),
		Entry{Class: "Ghost", Slot: slot(0, 1), Course: "X"},
		Entry{Class: "A", Slot: slot(0, 1), Course: "Chemistry"})

	// Act
	defects := Validate(cat, NewTimetable(entries))

	// Assert
	assert.True(t, hasDefect(defects, "unknown class Ghost"))
	assert.True(t, hasDefect(defects, "class A has no course Chemistry"))
}

func TestValidateFlagsExcludedSlot(t *testing.T) {
	// Arrange: Mon-1 is structurally barred for A
	cat := validationCatalog()
	cat.Exclude("A", slot(0, 1))

	// Act
	defects := Validate(cat, NewTimetable(legalEntries()))

	// Assert
	assert.True(t, hasDefect(defects, "inadmissible slot Mon-1"))
}

func TestValidateFlagsDoubleBooking(t *testing.T) {
	// Arrange: A holds both X and Y at Mon-1
	cat := validationCatalog()
	entries := legalEntries()
	entries[2].Slot = slot(0, 1)

	// Act
	defects := Validate(cat, NewTimetable(entries))

	// Assert
	assert.True(t, hasDefect(defects, "class A holds 2 courses at Mon-1"))
}

func TestValidateFlagsMissedRequiredSlot(t *testing.T) {
	// Arrange: Mon-1 is reserved for Y but X sits there
	cat := validationCatalog()
	cat.Require("A", slot(0, 1), "Y")

	// Act
	defects := Validate(cat, NewTimetable(legalEntries()))

	// Assert
	assert.True(t, hasDefect(defects, "class A must hold Y at Mon-1"))
}

func TestValidateFlagsSplitJointSession(t *testing.T) {
	// Arrange: X is joint but the classes hold it at different slots
	cat := validationCatalog()
	cat.JointSessions = []catalog.JointSession{{Classes: []string{"A", "B"}, Course: "X"}}

	// Act
	defects := Validate(cat, NewTimetable(legalEntries()))

	// Assert
	assert.True(t, hasDefect(defects, "joint session X is split"))
}

func TestValidateFlagsTeacherConflict(t *testing.T) {
	// Arrange: T1 teaches A and B simultaneously at Mon-1
	cat := validationCatalog()
	entries := legalEntries()
	entries[4].Slot = slot(0, 1)
	entries[5].Slot = slot(0, 2)

	// Act
	defects := Validate(cat, NewTimetable(entries))

	// Assert
	assert.True(t, hasDefect(defects, "teacher T1 teaches 2 units at Mon-1"))
}

func TestValidateJointSessionCountsAsOneUnit(t *testing.T) {
	// Arrange: both classes hold joint X at the very same slots
	cat := validationCatalog()
	cat.JointSessions = []catalog.JointSession{{Classes: []string{"A", "B"}, Course: "X"}}
	entries := legalEntries()
	entries[4].Slot = slot(0, 1)
	entries[5].Slot = slot(1, 1)

	// Act
	defects := Validate(cat, NewTimetable(entries))

	// Assert
	assert.False(t, hasDefect(defects, "teacher T1"))
}

func TestValidateFlagsSyncViolations(t *testing.T) {
	// Arrange: A's X must drag B's X along, equality in both directions
	cat := validationCatalog()
	cat.SyncRules = []catalog.SyncRule{{
		Trigger:    catalog.ClassCourse{Class: "A", Course: "X"},
		Companions: []catalog.ClassCourse{{Class: "B", Course: "X"}},
		Equal:      true,
	}}

	// Act: legal entries hold them at disjoint slots
	defects := Validate(cat, NewTimetable(legalEntries()))

	// Assert
	assert.True(t, hasDefect(defects, "sync: A/X runs at Mon-1 without companion B/X"))
	assert.True(t, hasDefect(defects, "sync: companion B/X runs at Mon-2 without A/X"))
}

func TestValidateEqualSyncChecksEveryCompanion(t *testing.T) {
	// Arrange: C's X coincides with A's X, B's X does not
	cat := validationCatalog()
	cat.AddClass(catalog.NewClassGroup("C", 9)).
		AddCourse(catalog.NewCourse("X", 2, "T3"))
	cat.SyncRules = []catalog.SyncRule{{
		Trigger:    catalog.ClassCourse{Class: "A", Course: "X"},
		Companions: []catalog.ClassCourse{{Class: "C", Course: "X"}, {Class: "B", Course: "X"}},
		Equal:      true,
	}}
	entries := append(legalEntries(),
		Entry{Class: "C", Slot: slot(0, 1), Course: "X", Teacher: "T3"},
		Entry{Class: "C", Slot: slot(1, 1), Course: "X", Teacher: "T3"},
	)

	// Act
	defects := Validate(cat, NewTimetable(entries))

	// Assert: one aligned companion must not excuse the other
	assert.True(t, hasDefect(defects, "sync: A/X runs at Mon-1 without companion B/X"))
	assert.False(t, hasDefect(defects, "without companion C/X"))
}

func TestValidateConditionalSyncAllowsCompanionAlone(t *testing.T) {
	// Arrange: implication only, companion B/X runs alone at Mon-2
	cat := validationCatalog()
	cat.SyncRules = []catalog.SyncRule{{
		Trigger:    catalog.ClassCourse{Class: "B", Course: "X"},
		Companions: []catalog.ClassCourse{{Class: "A", Course: "Y"}},
	}}

	// Act: B/X at Mon-2 and Tue-2 always coincides with A/Y
	defects := Validate(cat, NewTimetable(legalEntries()))

	// Assert
	assert.Empty(t, defects)
}

func TestValidateFlagsOverlapQuotaMismatch(t *testing.T) {
	// Arrange: A/X and B/X never coincide but one overlap is required
	cat := validationCatalog()
	cat.OverlapQuotas = []catalog.OverlapQuota{{
		Satellite:  catalog.ClassCourse{Class: "A", Course: "X"},
		References: []catalog.ClassCourse{{Class: "B", Course: "X"}},
		Want:       1,
	}}

	// Act
	defects := Validate(cat, NewTimetable(legalEntries()))

	// Assert
	assert.True(t, hasDefect(defects, "overlap: A/X coincides with its references in 0 slots, want 1"))
}

func TestValidateFlagsTeacherExclusion(t *testing.T) {
	// Arrange: A/Y may not coincide with B/X, but both sit at Mon-2
	cat := validationCatalog()
	cat.Exclusions = []catalog.TeacherExclusion{{
		Teacher: "T2",
		First:   []catalog.ClassCourse{{Class: "A", Course: "Y"}},
		Second:  []catalog.ClassCourse{{Class: "B", Course: "X"}},
	}}

	// Act
	defects := Validate(cat, NewTimetable(legalEntries()))

	// Assert
	assert.True(t, hasDefect(defects, "exclusion (T2): A/Y coincides with B/X at Mon-2"))
}

func TestValidateFlagsTrackingCollision(t *testing.T) {
	// Arrange: B is a tracking class drawing students from A
	cat := validationCatalog()
	cat.TrackingLinks = []catalog.TrackingLink{{Tracking: "B", Admin: []string{"A"}}}

	// Act: B runs Mon-2 while A holds Y there
	defects := Validate(cat, NewTimetable(legalEntries()))

	// Assert
	assert.True(t, hasDefect(defects, "tracking: B runs at Mon-2 while A holds Y"))
}

func TestValidateFlagsDailyCapAndAdjacency(t *testing.T) {
	// Arrange: A's X doubles on Monday although its cap is one
	cat := validationCatalog()
	entries := legalEntries()
	entries[1].Slot = slot(0, 2)
	entries[2].Slot = slot(1, 1)

	// Act
	defects := Validate(cat, NewTimetable(entries))

	// Assert
	assert.True(t, hasDefect(defects, "class A course X has 2 periods on day 0, cap 1"))
}

func TestValidateFlagsNonAdjacentDouble(t *testing.T) {
	// Arrange: a three-period day with X doubled at periods 1 and 3
	grid := catalog.WeekGrid{PeriodsPerDay: [5]int{3, 0, 0, 0, 0}}
	cat := catalog.New(grid)
	cat.AddClass(catalog.NewClassGroup("A", 9)).
		AddCourse(catalog.NewCourse("X", 2, "T1"))
	cat.TwoPerDayCourses["X"] = true
	entries := []Entry{
		{Class: "A", Slot: slot(0, 1), Course: "X", Teacher: "T1"},
		{Class: "A", Slot: slot(0, 3), Course: "X", Teacher: "T1"},
	}

	// Act
	defects := Validate(cat, NewTimetable(entries))

	// Assert
	assert.True(t, hasDefect(defects, "doubles non-adjacently on day 0"))
}

func TestValidateFlagsDoubleDayCountMismatch(t *testing.T) {
	// Arrange: X must double on exactly one day but never does
	cat := validationCatalog()
	cat.DoubleDayRules = []catalog.DoubleDayRule{{Class: "A", Course: "X", Limit: 1, Exact: true}}

	// Act
	defects := Validate(cat, NewTimetable(legalEntries()))

	// Assert
	assert.True(t, hasDefect(defects, "class A course X doubles on 0 days, want exactly 1"))
}

func TestValidateCapExemptClassSkipsDailyCaps(t *testing.T) {
	// Arrange: same doubled Monday as the cap fixture, class exempted
	cat := validationCatalog()
	cat.CapExemptClasses["A"] = true
	entries := legalEntries()
	entries[1].Slot = slot(0, 2)
	entries[2].Slot = slot(1, 1)

	// Act
	defects := Validate(cat, NewTimetable(entries))

	// Assert
	assert.False(t, hasDefect(defects, "class A course X has 2 periods"))
}
