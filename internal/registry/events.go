package registry

// MutationKind identifies which registry operation produced a Mutation.
type MutationKind string

const (
	MutationStudentRegistered MutationKind = "student_registered"
	MutationCourseAdded       MutationKind = "course_added"
	MutationEnrolled          MutationKind = "enrolled"
	MutationDropped           MutationKind = "dropped"
)

// Mutation is the payload published after every successful mutating
// operation. Ids are set only where they apply to the operation.
type Mutation struct {
	Kind      MutationKind
	StudentID string
	CourseID  string
}
