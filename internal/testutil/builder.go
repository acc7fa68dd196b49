package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"registrar/internal/domain/enrollment"
)

// studentData holds data for a student to be inserted.
type studentData struct {
	id   string
	name string
}

// enrollmentPair links a student to a course.
type enrollmentPair struct {
	studentID string
	courseID  string
}

// Builder accumulates test data and materializes it as a snapshot or as
// database rows.
type Builder struct {
	t           *testing.T
	students    []studentData
	courses     []courseData
	enrollments []enrollmentPair
}

// NewBuilder creates a builder for enrollment test data.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t}
}

// WithStudent adds a student.
func (b *Builder) WithStudent(id, name string) *Builder {
	b.students = append(b.students, studentData{id: id, name: name})
	return b
}

// WithCourse adds a course with optional configuration.
func (b *Builder) WithCourse(id string, opts ...CourseOption) *Builder {
	course := defaultCourse(id)
	for _, opt := range opts {
		opt(&course)
	}
	b.courses = append(b.courses, course)
	return b
}

// WithEnrollment links a student to a course on both sides.
func (b *Builder) WithEnrollment(studentID, courseID string) *Builder {
	b.enrollments = append(b.enrollments, enrollmentPair{studentID: studentID, courseID: courseID})
	return b
}

// Snapshot materializes the accumulated data as a domain snapshot with
// bidirectional membership.
func (b *Builder) Snapshot() *enrollment.Snapshot {
	b.t.Helper()

	courseIDs := make(map[string][]string, len(b.students))
	studentIDs := make(map[string][]string, len(b.courses))
	for _, pair := range b.enrollments {
		courseIDs[pair.studentID] = append(courseIDs[pair.studentID], pair.courseID)
		studentIDs[pair.courseID] = append(studentIDs[pair.courseID], pair.studentID)
	}

	snapshot := &enrollment.Snapshot{}
	for _, s := range b.students {
		snapshot.Students = append(snapshot.Students,
			enrollment.ReconstituteStudent(s.id, s.name, courseIDs[s.id]))
	}
	for _, c := range b.courses {
		snapshot.Courses = append(snapshot.Courses,
			enrollment.ReconstituteCourse(c.id, c.name, c.instructor, c.maxStudents,
				studentIDs[c.id], c.days, c.meetingTime, c.location))
	}
	return snapshot
}

// Insert writes the accumulated data into a SQLite database.
// Rows are inserted in reference order: students and courses before
// enrollment pairs.
func (b *Builder) Insert(db *sql.DB) {
	b.t.Helper()
	for _, s := range b.students {
		_, err := db.Exec(`INSERT INTO students (id, name) VALUES (?, ?)`, s.id, s.name)
		require.NoError(b.t, err)
	}
	for _, c := range b.courses {
		_, err := db.Exec(
			`INSERT INTO courses (id, name, instructor, max_students, days, meeting_time, location)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.id, c.name, c.instructor, c.maxStudents, c.days, c.meetingTime, c.location,
		)
		require.NoError(b.t, err)
	}
	for _, pair := range b.enrollments {
		_, err := db.Exec(
			`INSERT INTO enrollments (student_id, course_id) VALUES (?, ?)`,
			pair.studentID, pair.courseID,
		)
		require.NoError(b.t, err)
	}
}
