package catalog

// DefaultTerm builds the current term's catalog: four grades, the 9th-grade
// English tracking classes, the 10th-grade EAL satellites and the full rule
// book the administration hands over each term.
func DefaultTerm() *Catalog {
	c := New(DefaultGrid())

	addNinthGrade(c)
	addTenthGrade(c)
	addEleventhGrade(c)
	addTwelfthGrade(c)

	c.JointSessions = []JointSession{
		// English tracking: students of 9-A/9-B split across A/B/C, students
		// of 9-C across D/E, so each band must run in lockstep.
		{Classes: []string{"9-Eng-A", "9-Eng-B", "9-Eng-C"}, Course: "English"},
		{Classes: []string{"9-Eng-D", "9-Eng-E"}, Course: "English"},
		{Classes: []string{"10-A", "10-B", "10-C"}, Course: "Psych&Geo"},
		{Classes: []string{"10-A", "10-C"}, Course: "Phys&Bio"},
		{Classes: []string{"12-A", "12-B"}, Course: "BC-Stats"},
		{Classes: []string{"12-A", "12-B"}, Course: "AP Seminar"},
		{Classes: []string{"11-A", "11-B", "12-A", "12-B"}, Course: "Group 1 AP"},
		{Classes: []string{"11-A", "11-B", "12-A", "12-B"}, Course: "Group 2 AP"},
		{Classes: []string{"11-A", "11-B", "12-A", "12-B"}, Course: "Group 3 AP"},
	}

	// 9th and 10th grade sit whole-school assembly on Tuesday 7-8.
	for _, class := range []string{
		"9-A", "9-B", "9-C",
		"9-Eng-A", "9-Eng-B", "9-Eng-C", "9-Eng-D", "9-Eng-E",
		"10-A", "10-B", "10-C", "10-EAL-A", "10-EAL-B", "10-EAL-C",
	} {
		c.Exclude(class, TimeSlot{Day: 1, Period: 7}, TimeSlot{Day: 1, Period: 8})
	}
	// 12th grade leaves early on Friday.
	c.Exclude("12-A", TimeSlot{Day: 4, Period: 7})
	c.Exclude("12-B", TimeSlot{Day: 4, Period: 7})

	// 12th grade PE and Counseling are fixed on Tuesday 7-8, which keeps Wen
	// with both senior classes at once: a teacher-level joint session.
	for _, class := range []string{"12-A", "12-B"} {
		c.Require(class, TimeSlot{Day: 1, Period: 7}, "PE")
		c.Require(class, TimeSlot{Day: 1, Period: 8}, "Counseling")
	}
	c.TeacherJoint["Wen"] = [][]string{{"12-A", "12-B"}}

	c.SyncRules = defaultSyncRules()
	c.OverlapQuotas = []OverlapQuota{
		// 10-EAL-C carries three extra periods beyond the Psych&Geo band;
		// exactly three of its six slots must coincide with a Phys&Bio run.
		{
			Satellite:  ClassCourse{Class: "10-EAL-C", Course: "EAL"},
			References: []ClassCourse{{Class: "10-A", Course: "Phys&Bio"}, {Class: "10-C", Course: "Phys&Bio"}},
			Want:       3,
		},
	}
	c.Exclusions = defaultExclusions()

	c.TrackingLinks = []TrackingLink{
		{Tracking: "9-Eng-A", Admin: []string{"9-A", "9-B"}},
		{Tracking: "9-Eng-B", Admin: []string{"9-A", "9-B"}},
		{Tracking: "9-Eng-C", Admin: []string{"9-A", "9-B"}},
		{Tracking: "9-Eng-D", Admin: []string{"9-C"}},
		{Tracking: "9-Eng-E", Admin: []string{"9-C"}},
	}

	c.DoubleDayRules = defaultDoubleDayRules()

	c.TwoPerDayCourses["Art"] = true
	for _, class := range []string{"10-EAL-A", "10-EAL-B", "10-EAL-C"} {
		c.CapExemptClasses[class] = true
	}

	c.ConsecutiveWeights = map[string]int{
		"Cal-ABBC":   3,
		"Group 1 AP": 3,
		"Group 2 AP": 3,
		"Group 3 AP": 3,
		"BC-Stats":   3,
		"AP Seminar": 3,
		"English":    -1,
		"Algebra":    -2,
		"Pre-Cal":    -2,
	}
	c.BundleBonuses = []BundleBonus{
		{
			Classes: []string{"11-A", "11-B", "12-A", "12-B"},
			Courses: []string{"Group 1 AP", "Group 2 AP", "Group 3 AP"},
			Min:     2,
			Weight:  1,
		},
	}
	c.TeacherOpenerCap = 3
	c.TeacherOpenerCost = 2
	c.TeacherDailyCap = 5
	c.TeacherDailyCost = 2

	return c
}

func addNinthGrade(c *Catalog) {
	for _, name := range []string{"9-A", "9-B", "9-C"} {
		c.AddClass(NewClassGroup(name, 9)).
			AddCourse(NewCourse("Algebra", 5, "Yuhan")).
			AddCourse(NewCourse("Social", 4, "Darin")).
			AddCourse(NewCourse("Psychology", 3, "Chloe")).
			AddCourse(NewCourse("Physics", 3, "Guo")).
			AddCourse(NewCourse("Chemistry", 3, "Shao")).
			AddCourse(NewCourse("Biology", 3, "Zhao")).
			AddCourse(NewCourse("Geography", 2, "Manuel")).
			AddCourse(consecutive(NewCourse("Art", 2, "Shiwen"))).
			AddCourse(NewCourse("PE", 2, "Wen"))
	}

	englishTeachers := map[string]string{
		"9-Eng-A": "LZY",
		"9-Eng-B": "CYF",
		"9-Eng-C": "Ezio",
		"9-Eng-D": "Ezio",
		"9-Eng-E": "LZY",
	}
	for name, teacher := range englishTeachers {
		c.AddClass(NewClassGroup(name, 9)).
			AddCourse(NewCourse("English", 6, teacher))
	}
}

func addTenthGrade(c *Catalog) {
	physBioTeachers := map[string]string{"10-A": "Song", "10-B": "Song", "10-C": "Zhao"}
	for _, name := range []string{"10-A", "10-B", "10-C"} {
		c.AddClass(NewClassGroup(name, 10)).
			AddCourse(NewCourse("English", 5, "Lucy")).
			AddCourse(NewCourse("World History", 3, "Neil")).
			AddCourse(NewCourse("Psych&Geo", 3, "Chloe,Manuel")).
			AddCourse(NewCourse("Spanish", 2, "AK")).
			AddCourse(NewCourse("Pre-Cal", 5, "Dan")).
			AddCourse(NewCourse("Micro-Econ", 5, "Shi")).
			AddCourse(NewCourse("Chemistry", 3, "Shao")).
			AddCourse(NewCourse("Phys&Bio", 3, physBioTeachers[name])).
			AddCourse(consecutive(NewCourse("Art", 2, "Shiwen"))).
			AddCourse(NewCourse("PE", 2, "Wen"))
	}

	ealCourses := map[string]Course{
		"10-EAL-A": NewCourse("EAL", 3, "Ezio"),
		"10-EAL-B": NewCourse("EAL", 3, "CYF"),
		"10-EAL-C": NewCourse("EAL", 6, "LZY"),
	}
	for name, course := range ealCourses {
		c.AddClass(NewClassGroup(name, 10)).AddCourse(course)
	}
}

func addEleventhGrade(c *Catalog) {
	calTeachers := map[string]string{"11-A": "Yan,Song", "11-B": "Yan"}
	for _, name := range []string{"11-A", "11-B"} {
		c.AddClass(NewClassGroup(name, 11)).
			AddCourse(NewCourse("English", 5, "CYF")).
			AddCourse(NewCourse("Literature", 3, "CYF")).
			AddCourse(NewCourse("Spanish", 3, "AK")).
			AddCourse(NewCourse("Cal-ABBC", 5, calTeachers[name])).
			AddCourse(NewCourse("Group 1 AP", 5, "Guo,Zhao,Shiwen")).
			AddCourse(NewCourse("Group 2 AP", 5, "Neil,Guo")).
			AddCourse(NewCourse("Group 3 AP", 5, "Chloe,Manuel")).
			AddCourse(consecutive(NewCourse("Art", 2, "Shiwen"))).
			AddCourse(NewCourse("PE", 2, "Wen"))
	}
}

func addTwelfthGrade(c *Catalog) {
	statsTeachers := map[string]string{"12-A": "Yan", "12-B": "Yuhan"}
	for _, name := range []string{"12-A", "12-B"} {
		c.AddClass(NewClassGroup(name, 12)).
			AddCourse(NewCourse("Spanish", 3, "AK")).
			AddCourse(NewCourse("BC-Stats", 5, statsTeachers[name])).
			AddCourse(NewCourse("AP Seminar", 5, "Ezio,Lucy,Darin")).
			AddCourse(NewCourse("Group 1 AP", 5, "Guo,Zhao,Shiwen")).
			AddCourse(NewCourse("Group 2 AP", 5, "Neil,Guo")).
			AddCourse(NewCourse("Group 3 AP", 5, "Chloe,Manuel")).
			AddCourse(NewCourse("PE", 2, "Wen")).
			AddCourse(NewCourse("Counseling", 1, "Wen"))
	}
}

func defaultSyncRules() []SyncRule {
	rules := []SyncRule{
		// 11-A English runs exactly when the senior AP Seminar block runs.
		{
			Trigger:    ClassCourse{Class: "11-A", Course: "English"},
			Companions: []ClassCourse{{Class: "12-A", Course: "AP Seminar"}},
			Equal:      true,
		},
		// 10-A English implies the first English tracking band; the band may
		// still run its sixth period without 10-A.
		{
			Trigger:    ClassCourse{Class: "10-A", Course: "English"},
			Companions: []ClassCourse{{Class: "9-Eng-A", Course: "English"}},
		},
	}

	// EAL bands shadow Psych&Geo: whenever an administrative class sits
	// Psych&Geo, its EAL satellite must be in session too.
	ealPairs := [][2]string{{"10-A", "10-EAL-A"}, {"10-B", "10-EAL-B"}, {"10-C", "10-EAL-C"}}
	for _, pair := range ealPairs {
		rules = append(rules, SyncRule{
			Trigger:    ClassCourse{Class: pair[0], Course: "Psych&Geo"},
			Companions: []ClassCourse{{Class: pair[1], Course: "EAL"}},
		})
	}

	// Group 2 AP pulls its lab cohort out of 10-A, so 10-A must be sitting
	// Chemistry or Phys&Bio at the same time.
	for _, class := range []string{"11-A", "11-B", "12-A", "12-B"} {
		rules = append(rules, SyncRule{
			Trigger: ClassCourse{Class: class, Course: "Group 2 AP"},
			Companions: []ClassCourse{
				{Class: "10-A", Course: "Chemistry"},
				{Class: "10-A", Course: "Phys&Bio"},
			},
		})
	}

	return rules
}

func defaultExclusions() []TeacherExclusion {
	pairs := func(classes []string, course string) []ClassCourse {
		list := make([]ClassCourse, 0, len(classes))
		for _, class := range classes {
			list = append(list, ClassCourse{Class: class, Course: course})
		}
		return list
	}

	apClasses := []string{"11-A", "11-B", "12-A", "12-B"}
	seniorSeminar := pairs([]string{"12-A", "12-B"}, "AP Seminar")

	guoSide := append(pairs(apClasses, "Group 1 AP"), pairs(apClasses, "Group 2 AP")...)

	return []TeacherExclusion{
		// Lucy: senior AP Seminar against her sophomore English sections.
		{
			Teacher: "Lucy",
			First:   []ClassCourse{{Class: "12-A", Course: "AP Seminar"}},
			Second:  pairs([]string{"10-A", "10-B", "10-C"}, "English"),
		},
		// Guo co-teaches both AP groups and all freshman Physics.
		{
			Teacher: "Guo",
			First:   guoSide,
			Second:  pairs([]string{"9-A", "9-B", "9-C"}, "Physics"),
		},
		// Darin: AP Seminar against freshman Social.
		{
			Teacher: "Darin",
			First:   seniorSeminar,
			Second:  pairs([]string{"9-A", "9-B", "9-C"}, "Social"),
		},
		// CYF holds junior Literature while the lower English bands run.
		{
			Teacher: "CYF",
			First:   []ClassCourse{{Class: "9-Eng-A", Course: "English"}, {Class: "10-A", Course: "English"}},
			Second:  pairs([]string{"11-A", "11-B"}, "Literature"),
		},
		// Lucy again: the lower English bands against AP Seminar.
		{
			Teacher: "Lucy",
			First:   []ClassCourse{{Class: "9-Eng-A", Course: "English"}, {Class: "10-A", Course: "English"}},
			Second:  seniorSeminar,
		},
		// Shiwen teaches every Art section and co-teaches Group 1 AP.
		{
			Teacher: "Shiwen",
			First:   pairs([]string{"9-A", "9-B", "9-C", "10-A", "10-B", "10-C", "11-A", "11-B"}, "Art"),
			Second:  pairs(apClasses, "Group 1 AP"),
		},
	}
}

func defaultDoubleDayRules() []DoubleDayRule {
	rules := []DoubleDayRule{}
	// Six English periods split 2+1+1+1+1: exactly one double day per band.
	for _, class := range []string{"9-Eng-A", "9-Eng-B", "9-Eng-C", "9-Eng-D", "9-Eng-E"} {
		rules = append(rules, DoubleDayRule{Class: class, Course: "English", Limit: 1, Exact: true})
	}
	// Art may double up on at most one day.
	for _, class := range []string{"9-A", "9-B", "9-C", "10-A", "10-B", "10-C"} {
		rules = append(rules, DoubleDayRule{Class: class, Course: "Art", Limit: 1})
	}
	return rules
}

func consecutive(course Course) Course {
	course.PreferConsecutive = true
	return course
}
