package registry

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"registrar/internal/domain/enrollment"
	"registrar/internal/log"
	"registrar/internal/pubsub"
	"registrar/internal/tracing"
)

// CourseOption sets an optional attribute on a course at creation time.
type CourseOption func(*enrollment.Course) error

// WithSchedule sets and validates the meeting days and time.
func WithSchedule(days, meetingTime string) CourseOption {
	return func(course *enrollment.Course) error {
		return course.SetSchedule(days, meetingTime)
	}
}

// WithLocation sets the room.
func WithLocation(location string) CourseOption {
	return func(course *enrollment.Course) error {
		course.SetLocation(location)
		return nil
	}
}

// RegisterStudent adds a new student and persists. A failed write is
// reported wrapping enrollment.ErrSaveFailed, but the in-memory mutation
// stands; the next successful save covers it.
func (r *Registry) RegisterStudent(ctx context.Context, id, name string) (*enrollment.Student, error) {
	ctx, span := r.startSpan(ctx, "register_student", attribute.String(tracing.AttrStudentID, id))
	defer span.End()

	id = strings.TrimSpace(id)
	if _, exists := r.students[id]; exists {
		return nil, r.fail(span, &enrollment.DuplicateIDError{Resource: "student", ID: id})
	}
	student, err := enrollment.NewStudent(id, name)
	if err != nil {
		return nil, r.fail(span, err)
	}

	r.students[id] = student
	r.publish(ctx, pubsub.CreatedEvent, Mutation{Kind: MutationStudentRegistered, StudentID: id})
	log.Info(log.CatRegistry, "student registered", "student_id", id)
	if err := r.persist(ctx); err != nil {
		return student, r.fail(span, err)
	}
	span.SetStatus(codes.Ok, "")
	return student, nil
}

// AddCourse adds a new course and persists. Options validate eagerly, so a
// malformed schedule is rejected here rather than surfacing later during
// conflict checks.
func (r *Registry) AddCourse(ctx context.Context, id, name, instructor string, maxStudents int, opts ...CourseOption) (*enrollment.Course, error) {
	ctx, span := r.startSpan(ctx, "add_course", attribute.String(tracing.AttrCourseID, id))
	defer span.End()

	id = strings.TrimSpace(id)
	if _, exists := r.courses[id]; exists {
		return nil, r.fail(span, &enrollment.DuplicateIDError{Resource: "course", ID: id})
	}
	course, err := enrollment.NewCourse(id, name, instructor, maxStudents)
	if err != nil {
		return nil, r.fail(span, err)
	}
	for _, opt := range opts {
		if err := opt(course); err != nil {
			return nil, r.fail(span, err)
		}
	}

	r.courses[id] = course
	r.publish(ctx, pubsub.CreatedEvent, Mutation{Kind: MutationCourseAdded, CourseID: id})
	log.Info(log.CatRegistry, "course added", "course_id", id)
	if err := r.persist(ctx); err != nil {
		return course, r.fail(span, err)
	}
	span.SetStatus(codes.Ok, "")
	return course, nil
}

// Enroll registers a student in a course. Checks run in a fixed order:
// student exists, course exists, not already enrolled, seats available, no
// schedule conflict. The first failure wins and nothing is modified. Like
// all mutations, a failed write keeps the in-memory change.
func (r *Registry) Enroll(ctx context.Context, studentID, courseID string) error {
	ctx, span := r.startSpan(ctx, "enroll",
		attribute.String(tracing.AttrStudentID, studentID),
		attribute.String(tracing.AttrCourseID, courseID))
	defer span.End()

	student, ok := r.students[studentID]
	if !ok {
		return r.fail(span, &enrollment.NotFoundError{Resource: "student", ID: studentID})
	}
	course, ok := r.courses[courseID]
	if !ok {
		return r.fail(span, &enrollment.NotFoundError{Resource: "course", ID: courseID})
	}
	if course.IsStudentEnrolled(studentID) {
		return r.fail(span, enrollment.ErrAlreadyEnrolled)
	}
	if course.IsFull() {
		return r.fail(span, enrollment.ErrCourseFull)
	}
	if err := r.checkScheduleConflict(student, course); err != nil {
		return r.fail(span, err)
	}

	course.AddStudent(studentID)
	student.AddCourse(courseID)
	r.publish(ctx, pubsub.CreatedEvent, Mutation{Kind: MutationEnrolled, StudentID: studentID, CourseID: courseID})
	log.Info(log.CatRegistry, "student enrolled", "student_id", studentID, "course_id", courseID)
	if err := r.persist(ctx); err != nil {
		return r.fail(span, err)
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// Drop removes a student from a course.
func (r *Registry) Drop(ctx context.Context, studentID, courseID string) error {
	ctx, span := r.startSpan(ctx, "drop",
		attribute.String(tracing.AttrStudentID, studentID),
		attribute.String(tracing.AttrCourseID, courseID))
	defer span.End()

	student, ok := r.students[studentID]
	if !ok {
		return r.fail(span, &enrollment.NotFoundError{Resource: "student", ID: studentID})
	}
	course, ok := r.courses[courseID]
	if !ok {
		return r.fail(span, &enrollment.NotFoundError{Resource: "course", ID: courseID})
	}
	if !course.IsStudentEnrolled(studentID) && !student.IsEnrolledIn(courseID) {
		return r.fail(span, enrollment.ErrNotEnrolled)
	}

	course.RemoveStudent(studentID)
	student.RemoveCourse(courseID)
	r.publish(ctx, pubsub.DeletedEvent, Mutation{Kind: MutationDropped, StudentID: studentID, CourseID: courseID})
	log.Info(log.CatRegistry, "student dropped", "student_id", studentID, "course_id", courseID)
	if err := r.persist(ctx); err != nil {
		return r.fail(span, err)
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// checkScheduleConflict scans the student's registered courses in sorted id
// order, so the reported conflict is deterministic when several exist.
func (r *Registry) checkScheduleConflict(student *enrollment.Student, course *enrollment.Course) error {
	for _, courseID := range student.RegisteredCourses() {
		registered, ok := r.courses[courseID]
		if !ok {
			continue
		}
		if course.HasScheduleConflict(registered) {
			return &enrollment.ScheduleConflictError{
				CourseID:      course.ID(),
				CourseName:    course.Name(),
				CourseMeets:   course.Meets(),
				ConflictID:    registered.ID(),
				ConflictName:  registered.Name(),
				ConflictMeets: registered.Meets(),
			}
		}
	}
	return nil
}

func (r *Registry) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := r.tracer.Start(ctx, tracing.SpanPrefixRegistry+op,
		trace.WithSpanKind(trace.SpanKindInternal))
	span.SetAttributes(attrs...)
	return ctx, span
}

// fail records the error on the span and passes it through unchanged.
func (r *Registry) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
