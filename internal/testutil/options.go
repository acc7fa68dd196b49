package testutil

// courseData holds all data for a course to be inserted.
type courseData struct {
	id          string
	name        string
	instructor  string
	maxStudents int
	days        string
	meetingTime string
	location    string
}

// defaultCourse returns a courseData with sensible defaults.
func defaultCourse(id string) courseData {
	return courseData{
		id:          id,
		name:        id, // Default name is the ID
		maxStudents: 30,
	}
}

// CourseOption configures a course during builder setup.
type CourseOption func(*courseData)

// Name sets the course name.
func Name(name string) CourseOption {
	return func(c *courseData) { c.name = name }
}

// Instructor sets the course instructor.
func Instructor(instructor string) CourseOption {
	return func(c *courseData) { c.instructor = instructor }
}

// MaxStudents sets the enrollment capacity.
func MaxStudents(n int) CourseOption {
	return func(c *courseData) { c.maxStudents = n }
}

// Schedule sets the meeting days and time.
func Schedule(days, meetingTime string) CourseOption {
	return func(c *courseData) {
		c.days = days
		c.meetingTime = meetingTime
	}
}

// Location sets the meeting location.
func Location(location string) CourseOption {
	return func(c *courseData) { c.location = location }
}
