package enrollment

import (
	"fmt"
	"sort"
	"strings"
)

// Student represents a registered student and the set of course ids they are
// enrolled in. All cross-entity validation lives in the Registry; the entity
// itself only maintains its own set.
type Student struct {
	id         string
	name       string
	registered map[string]bool
}

// NewStudent creates a student with an empty course set. Both fields are
// required; surrounding whitespace is trimmed before the check.
func NewStudent(id, name string) (*Student, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" || name == "" {
		return nil, fmt.Errorf("%w: student id and name are required", ErrInvalidInput)
	}
	return &Student{
		id:         id,
		name:       name,
		registered: make(map[string]bool),
	}, nil
}

// ReconstituteStudent creates a Student from existing data, typically when
// hydrating from a store. No validation is applied; loaded data is taken
// as-is.
func ReconstituteStudent(id, name string, courseIDs []string) *Student {
	s := &Student{
		id:         id,
		name:       name,
		registered: make(map[string]bool),
	}
	for _, courseID := range courseIDs {
		if courseID != "" {
			s.registered[courseID] = true
		}
	}
	return s
}

// ID returns the unique student identifier.
func (s *Student) ID() string {
	return s.id
}

// Name returns the student's display name.
func (s *Student) Name() string {
	return s.name
}

// AddCourse inserts a course id. Idempotent.
func (s *Student) AddCourse(courseID string) {
	s.registered[courseID] = true
}

// RemoveCourse removes a course id if present. Idempotent.
func (s *Student) RemoveCourse(courseID string) {
	delete(s.registered, courseID)
}

// CourseCount returns the number of registered courses.
func (s *Student) CourseCount() int {
	return len(s.registered)
}

// IsEnrolledIn reports whether the student is registered in the given course.
func (s *Student) IsEnrolledIn(courseID string) bool {
	return s.registered[courseID]
}

// RegisteredCourses returns the registered course ids in sorted order.
func (s *Student) RegisteredCourses() []string {
	ids := make([]string, 0, len(s.registered))
	for id := range s.registered {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
