// Package memory is an in-memory enrollment.Store. It backs tests and
// ephemeral runs where nothing should touch disk.
package memory

import (
	"registrar/internal/domain/enrollment"
)

// Store holds the last saved snapshot in memory. Snapshots are deep-copied
// on both Save and Load so callers never share entity pointers with the
// store.
type Store struct {
	students []*enrollment.Student
	courses  []*enrollment.Course

	// SaveErr, when set, is returned by the next Save calls. Tests use it
	// to exercise save-failure handling.
	SaveErr error
}

var _ enrollment.Store = (*Store)(nil)

// New returns an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Seed replaces the stored state without the copy semantics of Save.
func (s *Store) Seed(snapshot *enrollment.Snapshot) {
	s.students = copyStudents(snapshot.Students)
	s.courses = copyCourses(snapshot.Courses)
}

// Load returns a deep copy of the stored snapshot with a clean report.
func (s *Store) Load() (*enrollment.Snapshot, *enrollment.LoadReport, error) {
	report := &enrollment.LoadReport{
		StudentsLoaded: len(s.students),
		CoursesLoaded:  len(s.courses),
	}
	snapshot := &enrollment.Snapshot{
		Students: copyStudents(s.students),
		Courses:  copyCourses(s.courses),
	}
	return snapshot, report, nil
}

// Save stores a deep copy of the snapshot, or returns SaveErr when set.
func (s *Store) Save(snapshot *enrollment.Snapshot) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.students = copyStudents(snapshot.Students)
	s.courses = copyCourses(snapshot.Courses)
	return nil
}

// StudentCount is the number of students currently stored. Tests use it to
// assert that a failed registry operation did not reach the store.
func (s *Store) StudentCount() int {
	return len(s.students)
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

func copyStudents(students []*enrollment.Student) []*enrollment.Student {
	out := make([]*enrollment.Student, 0, len(students))
	for _, st := range students {
		out = append(out, enrollment.ReconstituteStudent(st.ID(), st.Name(), st.RegisteredCourses()))
	}
	return out
}

func copyCourses(courses []*enrollment.Course) []*enrollment.Course {
	out := make([]*enrollment.Course, 0, len(courses))
	for _, c := range courses {
		out = append(out, enrollment.ReconstituteCourse(
			c.ID(), c.Name(), c.Instructor(), c.MaxStudents(),
			c.EnrolledStudents(), c.Days(), c.MeetingTime(), c.Location()))
	}
	return out
}
