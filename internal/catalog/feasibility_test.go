package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckFeasibilityAcceptsFullyPackedClass(t *testing.T) {
	// Arrange: four periods into four slots
	c := New(testGrid())
	c.AddClass(NewClassGroup("A", 9)).
		AddCourse(NewCourse("X", 2, "T1")).
		AddCourse(NewCourse("Y", 2, "T2"))

	// Assert
	assert.NoError(t, CheckFeasibility(c))
}

func TestCheckFeasibilityRejectsCourseWithTooFewSlots(t *testing.T) {
	// Arrange: three periods of X but two admissible slots
	c := New(testGrid())
	c.AddClass(NewClassGroup("A", 9)).AddCourse(NewCourse("X", 3, "T1"))
	c.Exclude("A", TimeSlot{Day: 0, Period: 1}, TimeSlot{Day: 0, Period: 2})

	// Act
	err := CheckFeasibility(c)

	// Assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "A X: needs 3 periods, only 2 slots admissible")
}

func TestCheckFeasibilityRejectsCompetitionForNarrowBand(t *testing.T) {
	// Arrange: X and Y each fit alone, but four periods chase three slots
	c := New(WeekGrid{PeriodsPerDay: [5]int{3, 0, 0, 0, 0}})
	c.AddClass(NewClassGroup("A", 9)).
		AddCourse(NewCourse("X", 2, "T1")).
		AddCourse(NewCourse("Y", 2, "T2"))

	// Act
	err := CheckFeasibility(c)

	// Assert: counts alone cannot catch this, the matching does
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be matched to distinct slots")
}

func TestCheckFeasibilityReservedSlotCountsForItsCourseOnly(t *testing.T) {
	// Arrange: both Monday slots reserved for X, leaving Y the Tuesday pair
	c := New(testGrid())
	c.AddClass(NewClassGroup("A", 9)).
		AddCourse(NewCourse("X", 2, "T1")).
		AddCourse(NewCourse("Y", 2, "T2"))
	c.Require("A", TimeSlot{Day: 0, Period: 1}, "X")
	c.Require("A", TimeSlot{Day: 0, Period: 2}, "X")

	// Assert
	assert.NoError(t, CheckFeasibility(c))
}
