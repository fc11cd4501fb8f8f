package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
)

type courseInput struct {
	Name              string
	Periods           int
	Teachers          string
	PreferConsecutive bool `mapstructure:"preferConsecutive"`
}

type classInput struct {
	Name    string
	Grade   int
	Courses []courseInput
}

type sessionInput struct {
	Classes []string
	Course  string
}

type pinInput struct {
	Day    int
	Period int
	Course string
}

type classCourseInput struct {
	Class  string
	Course string
}

type syncInput struct {
	Trigger    classCourseInput
	Companions []classCourseInput
	Equal      bool
}

type overlapInput struct {
	Satellite  classCourseInput
	References []classCourseInput
	Want       int
}

type exclusionInput struct {
	Teacher string
	First   []classCourseInput
	Second  []classCourseInput
}

type trackingInput struct {
	Tracking string
	Admin    []string
}

type doubleDayInput struct {
	Class  string
	Course string
	Limit  int
	Exact  bool
}

type catalogInput struct {
	Grid          []int
	Classes       []classInput
	JointSessions []sessionInput `mapstructure:"jointSessions"`
	Excluded      map[string][][2]int
	Required      map[string][]pinInput
	TeacherJoint  map[string][][]string `mapstructure:"teacherJoint"`

	SyncRules      []syncInput      `mapstructure:"syncRules"`
	OverlapQuotas  []overlapInput   `mapstructure:"overlapQuotas"`
	Exclusions     []exclusionInput
	TrackingLinks  []trackingInput  `mapstructure:"trackingLinks"`
	DoubleDayRules []doubleDayInput `mapstructure:"doubleDayRules"`

	TwoPerDay          []string       `mapstructure:"twoPerDay"`
	CapExempt          []string       `mapstructure:"capExempt"`
	ConsecutiveWeights map[string]int `mapstructure:"consecutiveWeights"`
}

// FromJSON loads a term catalog from a JSON file. The format mirrors the
// catalog tables one to one; anything omitted stays empty.
func FromJSON(file string) (*Catalog, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog file: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return nil, fmt.Errorf("cannot parse catalog file: %v", err)
	}

	var input catalogInput
	if err := mapstructure.Decode(raw, &input); err != nil {
		return nil, fmt.Errorf("cannot decode catalog file: %v", err)
	}

	return fromInput(input)
}

func fromInput(input catalogInput) (*Catalog, error) {
	grid := DefaultGrid()
	if len(input.Grid) > 0 {
		if len(input.Grid) != len(grid.PeriodsPerDay) {
			return nil, fmt.Errorf("grid must list %v days, got %v", len(grid.PeriodsPerDay), len(input.Grid))
		}
		copy(grid.PeriodsPerDay[:], input.Grid)
	}

	c := New(grid)

	for _, class := range input.Classes {
		if class.Name == "" {
			return nil, fmt.Errorf("class without a name")
		}
		group := c.AddClass(NewClassGroup(class.Name, class.Grade))
		for _, course := range class.Courses {
			if course.Periods < 1 {
				return nil, fmt.Errorf("%v %v: periods must be positive", class.Name, course.Name)
			}
			if strings.TrimSpace(course.Teachers) == "" {
				return nil, fmt.Errorf("%v %v: no teacher assigned", class.Name, course.Name)
			}
			built := NewCourse(course.Name, course.Periods, course.Teachers)
			built.PreferConsecutive = course.PreferConsecutive
			group.AddCourse(built)
		}
	}

	for _, session := range input.JointSessions {
		c.JointSessions = append(c.JointSessions, JointSession(session))
	}

	for class, pairs := range input.Excluded {
		for _, pair := range pairs {
			c.Exclude(class, TimeSlot{Day: pair[0], Period: pair[1]})
		}
	}
	for class, pins := range input.Required {
		for _, pin := range pins {
			c.Require(class, TimeSlot{Day: pin.Day, Period: pin.Period}, pin.Course)
		}
	}
	for teacher, groups := range input.TeacherJoint {
		c.TeacherJoint[teacher] = groups
	}

	for _, rule := range input.SyncRules {
		c.SyncRules = append(c.SyncRules, SyncRule{
			Trigger:    ClassCourse(rule.Trigger),
			Companions: classCourses(rule.Companions),
			Equal:      rule.Equal,
		})
	}
	for _, quota := range input.OverlapQuotas {
		c.OverlapQuotas = append(c.OverlapQuotas, OverlapQuota{
			Satellite:  ClassCourse(quota.Satellite),
			References: classCourses(quota.References),
			Want:       quota.Want,
		})
	}
	for _, exclusion := range input.Exclusions {
		c.Exclusions = append(c.Exclusions, TeacherExclusion{
			Teacher: exclusion.Teacher,
			First:   classCourses(exclusion.First),
			Second:  classCourses(exclusion.Second),
		})
	}
	for _, link := range input.TrackingLinks {
		c.TrackingLinks = append(c.TrackingLinks, TrackingLink(link))
	}
	for _, rule := range input.DoubleDayRules {
		c.DoubleDayRules = append(c.DoubleDayRules, DoubleDayRule(rule))
	}

	for _, course := range input.TwoPerDay {
		c.TwoPerDayCourses[course] = true
	}
	for _, class := range input.CapExempt {
		c.CapExemptClasses[class] = true
	}
	for course, weight := range input.ConsecutiveWeights {
		c.ConsecutiveWeights[course] = weight
	}

	return c, nil
}

func classCourses(inputs []classCourseInput) []ClassCourse {
	list := make([]ClassCourse, 0, len(inputs))
	for _, input := range inputs {
		list = append(list, ClassCourse(input))
	}
	return list
}
