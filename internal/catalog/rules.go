package catalog

// ClassCourse names one course of one class group, the unit every special
// rule below is written in terms of.
type ClassCourse struct {
	Class  string
	Course string
}

// JointSession forces a set of class groups to take one course at identical
// slots: at every slot either all of them have the course or none do.
type JointSession struct {
	Classes []string
	Course  string
}

// Contains reports whether the class attends this session for its course.
func (j JointSession) Contains(class string) bool {
	for _, member := range j.Classes {
		if member == class {
			return true
		}
	}
	return false
}

// SyncRule couples a trigger course to companion courses slot by slot. When
// Equal is set the coupling is an equality (both or neither); otherwise it is
// a one-directional implication: scheduling the trigger forces one of the
// companions at the same slot, while companions remain free to occur alone.
type SyncRule struct {
	Trigger    ClassCourse
	Companions []ClassCourse
	Equal      bool
}

// OverlapQuota requires the satellite course to coincide with an occurrence
// of any reference course in exactly Want slots over the week.
type OverlapQuota struct {
	Satellite  ClassCourse
	References []ClassCourse
	Want       int
}

// TeacherExclusion forbids any course from First coinciding with any course
// from Second; both sides are taught by the same person in unrelated classes,
// so the generic per-teacher constraint does not cover the pairing.
type TeacherExclusion struct {
	Teacher string
	First   []ClassCourse
	Second  []ClassCourse
}

// TrackingLink ties a tracking pseudo-class to the administrative classes its
// students come from: whenever the tracking class is in session, none of the
// administrative classes may hold any course of their own.
type TrackingLink struct {
	Tracking string
	Admin    []string
}

// DoubleDayRule bounds how many days of the week may carry exactly two
// periods of one course. Exact turns the bound into an equality.
type DoubleDayRule struct {
	Class  string
	Course string
	Limit  int
	Exact  bool
}

// BundleBonus is a soft preference: for each listed class and each day, award
// Weight whenever at least Min periods drawn from Courses land on that day.
type BundleBonus struct {
	Classes []string
	Courses []string
	Min     int
	Weight  int
}
