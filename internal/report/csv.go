package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// WriteCSV exports the global schedule and one file per class into the
// directory, creating it if needed. Idle admissible cells of a class file are
// written as [Free] so gaps are visible in a spreadsheet.
func (r *Reporter) WriteCSV(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}
	if err := r.writeGlobalCSV(filepath.Join(dir, "global_schedule.csv")); err != nil {
		return err
	}
	for _, class := range r.cat.ClassNames() {
		path := filepath.Join(dir, class+"_schedule.csv")
		if err := r.writeClassCSV(path, class); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reporter) writeGlobalCSV(path string) error {
	rows := [][]string{{"Day", "Period", "Class", "Course", "Teacher"}}
	for _, slot := range r.cat.Grid.Slots() {
		for _, class := range r.cat.ClassNames() {
			if course, ok := r.t.CourseAt(class, slot); ok {
				rows = append(rows, []string{
					longDayNames[slot.Day], strconv.Itoa(slot.Period), class, course, r.teacherOf(class, course),
				})
			}
		}
	}
	return writeCSVFile(path, rows)
}

func (r *Reporter) writeClassCSV(path, class string) error {
	rows := [][]string{{"Day", "Period", "Course", "Teacher"}}
	for _, slot := range r.cat.Grid.Slots() {
		course, ok := r.t.CourseAt(class, slot)
		switch {
		case ok:
			rows = append(rows, []string{longDayNames[slot.Day], strconv.Itoa(slot.Period), course, r.teacherOf(class, course)})
		case !r.cat.Excluded(class, slot):
			rows = append(rows, []string{longDayNames[slot.Day], strconv.Itoa(slot.Period), "[Free]", ""})
		}
	}
	return writeCSVFile(path, rows)
}

func writeCSVFile(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %v: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("could not write %v: %w", path, err)
	}
	return nil
}
