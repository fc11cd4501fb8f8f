package catalog

import "fmt"

var dayNames = [5]string{"Mon", "Tue", "Wed", "Thu", "Fri"}

// TimeSlot is a single cell of the weekly grid. Days are 0-indexed starting
// on Monday, periods are 1-indexed.
type TimeSlot struct {
	Day    int
	Period int
}

func (s TimeSlot) String() string {
	if s.Day < 0 || s.Day >= len(dayNames) {
		return fmt.Sprintf("Day%v-%v", s.Day, s.Period)
	}
	return fmt.Sprintf("%v-%v", dayNames[s.Day], s.Period)
}

// WeekGrid holds the number of periods of each weekday. The grid is
// asymmetric and fixed for the whole term.
type WeekGrid struct {
	PeriodsPerDay [5]int
}

// DefaultGrid returns the term grid: Mon 6, Tue 8, Wed 8, Thu 6, Fri 7.
func DefaultGrid() WeekGrid {
	return WeekGrid{PeriodsPerDay: [5]int{6, 8, 8, 6, 7}}
}

func (g WeekGrid) Days() int {
	return len(g.PeriodsPerDay)
}

func (g WeekGrid) Periods(day int) int {
	if day < 0 || day >= len(g.PeriodsPerDay) {
		return 0
	}
	return g.PeriodsPerDay[day]
}

func (g WeekGrid) TotalSlots() int {
	total := 0
	for _, periods := range g.PeriodsPerDay {
		total += periods
	}
	return total
}

func (g WeekGrid) Valid(slot TimeSlot) bool {
	return slot.Day >= 0 && slot.Day < len(g.PeriodsPerDay) &&
		slot.Period >= 1 && slot.Period <= g.PeriodsPerDay[slot.Day]
}

// Slots enumerates every slot of the week in day-major order.
func (g WeekGrid) Slots() []TimeSlot {
	slots := make([]TimeSlot, 0, g.TotalSlots())
	for day, periods := range g.PeriodsPerDay {
		for period := 1; period <= periods; period++ {
			slots = append(slots, TimeSlot{Day: day, Period: period})
		}
	}
	return slots
}
