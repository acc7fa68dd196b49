package enrollment

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultMaxStudents is the capacity used when a loaded row omits the field.
const DefaultMaxStudents = 30

// Course represents a course offering with its enrollment set and capacity
// rules. Fields are unexported; all cross-entity mutation goes through the
// Registry so both sides of an enrollment stay in lockstep.
type Course struct {
	id          string
	name        string
	instructor  string
	maxStudents int
	enrolled    map[string]bool

	// Meeting schedule. Empty days or time means no fixed schedule; such
	// courses never participate in conflict detection.
	days        string
	meetingTime string
	location    string
}

// NewCourse creates a course with an empty enrollment set. The id, name,
// and instructor are required and the capacity must be positive.
func NewCourse(id, name, instructor string, maxStudents int) (*Course, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	instructor = strings.TrimSpace(instructor)
	if id == "" || name == "" || instructor == "" {
		return nil, fmt.Errorf("%w: course id, name, and instructor are required", ErrInvalidInput)
	}
	if maxStudents <= 0 {
		return nil, fmt.Errorf("%w: max students must be positive, got %d", ErrInvalidInput, maxStudents)
	}
	return &Course{
		id:          id,
		name:        name,
		instructor:  instructor,
		maxStudents: maxStudents,
		enrolled:    make(map[string]bool),
	}, nil
}

// ReconstituteCourse creates a Course from existing data, typically when
// hydrating from a store. No capacity or schedule validation is applied;
// loaded data is taken as-is.
func ReconstituteCourse(id, name, instructor string, maxStudents int, enrolled []string, days, meetingTime, location string) *Course {
	c := &Course{
		id:          id,
		name:        name,
		instructor:  instructor,
		maxStudents: maxStudents,
		enrolled:    make(map[string]bool),
	}
	c.days = days
	c.meetingTime = meetingTime
	c.location = location
	for _, studentID := range enrolled {
		if studentID != "" {
			c.enrolled[studentID] = true
		}
	}
	return c
}

// ID returns the unique course identifier.
func (c *Course) ID() string {
	return c.id
}

// Name returns the course name.
func (c *Course) Name() string {
	return c.name
}

// Instructor returns the instructor name.
func (c *Course) Instructor() string {
	return c.instructor
}

// MaxStudents returns the course capacity.
func (c *Course) MaxStudents() int {
	return c.maxStudents
}

// Days returns the weekday codes the course meets on, e.g. "MWF" or "TTh".
func (c *Course) Days() string {
	return c.days
}

// MeetingTime returns the "HH:MM-HH:MM" meeting time range.
func (c *Course) MeetingTime() string {
	return c.meetingTime
}

// Location returns the building and room.
func (c *Course) Location() string {
	return c.location
}

// SetSchedule sets the meeting days and time. Both are validated here so
// malformed schedule data is rejected at course-creation time instead of
// silently passing the fail-open conflict check later.
func (c *Course) SetSchedule(days, meetingTime string) error {
	if _, err := ParseDays(days); err != nil {
		return err
	}
	if meetingTime != "" {
		if _, err := ParseTimeRange(meetingTime); err != nil {
			return err
		}
	}
	c.days = days
	c.meetingTime = meetingTime
	return nil
}

// SetLocation sets the building and room.
func (c *Course) SetLocation(location string) {
	c.location = location
}

// AddStudent inserts a student id into the enrollment set. Returns false
// without mutating if the course is already at capacity. Re-adding an
// already-enrolled id succeeds silently; set insertion is a no-op.
func (c *Course) AddStudent(studentID string) bool {
	if len(c.enrolled) >= c.maxStudents {
		return false
	}
	c.enrolled[studentID] = true
	return true
}

// RemoveStudent removes a student id if present. Removing a non-member is a
// no-op, not an error.
func (c *Course) RemoveStudent(studentID string) {
	delete(c.enrolled, studentID)
}

// IsFull reports whether the course has reached capacity.
func (c *Course) IsFull() bool {
	return len(c.enrolled) >= c.maxStudents
}

// AvailableSeats returns the remaining capacity. It can go negative only if
// externally corrupted data was loaded.
func (c *Course) AvailableSeats() int {
	return c.maxStudents - len(c.enrolled)
}

// EnrollmentCount returns the number of enrolled students.
func (c *Course) EnrollmentCount() int {
	return len(c.enrolled)
}

// IsStudentEnrolled reports whether the given student is in the enrollment set.
func (c *Course) IsStudentEnrolled(studentID string) bool {
	return c.enrolled[studentID]
}

// EnrolledStudents returns the enrolled student ids in sorted order.
func (c *Course) EnrolledStudents() []string {
	ids := make([]string, 0, len(c.enrolled))
	for id := range c.enrolled {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasScheduleConflict reports whether this course meets at the same time as
// another. Courses missing days or time never conflict. Day overlap is
// checked first; only when the courses share a weekday are the time ranges
// compared (half-open, so touching endpoints do not conflict). Malformed time
// data evaluates as non-conflicting.
func (c *Course) HasScheduleConflict(other *Course) bool {
	if c.days == "" || c.meetingTime == "" || other.days == "" || other.meetingTime == "" {
		return false
	}
	if !daysOverlap(c.days, other.days) {
		return false
	}
	return timesOverlap(c.meetingTime, other.meetingTime)
}

// MeetsOn reports whether the course meets on the given weekday. Day tokens
// the evaluator does not recognize are ignored.
func (c *Course) MeetsOn(day Day) bool {
	return daySet(c.days)[day]
}

// IsScheduled reports whether the course has both meeting days and a time.
func (c *Course) IsScheduled() bool {
	return c.days != "" && c.meetingTime != ""
}

// Meets returns the schedule as a single display string, e.g. "MWF 9:00-10:15".
func (c *Course) Meets() string {
	if c.days == "" && c.meetingTime == "" {
		return ""
	}
	return fmt.Sprintf("%s %s", c.days, c.meetingTime)
}
