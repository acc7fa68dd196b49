package enrollment

import (
	"errors"
	"fmt"
)

// Validation and workflow errors
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrAlreadyEnrolled = errors.New("student is already enrolled")
	ErrNotEnrolled     = errors.New("student is not enrolled")
	ErrCourseFull      = errors.New("course is full")
	ErrSaveFailed      = errors.New("saving enrollment data failed")
)

// NotFoundError is returned when a student or course id is unknown.
type NotFoundError struct {
	Resource string // "student" or "course"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s ID %s not found", e.Resource, e.ID)
}

// DuplicateIDError is returned when registering an id that already exists.
type DuplicateIDError struct {
	Resource string // "student" or "course"
	ID       string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s ID %s already exists", e.Resource, e.ID)
}

// ScheduleConflictError is returned when a target course meets at the same
// time as a course the student is already enrolled in. It names the first
// conflicting course found, scanning the student's courses in sorted id order.
type ScheduleConflictError struct {
	CourseID      string
	CourseName    string
	CourseMeets   string
	ConflictID    string
	ConflictName  string
	ConflictMeets string
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf("schedule conflict: %s (%s) conflicts with %s (%s)",
		e.CourseName, e.CourseMeets, e.ConflictName, e.ConflictMeets)
}
