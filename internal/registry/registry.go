// Package registry is the application service coordinating students,
// courses, and enrollments. It owns the in-memory state loaded from a
// Store, enforces enrollment rules, and is the only component that writes
// back.
//
// Registry methods are not safe for concurrent use. The CLI drives one
// operation at a time; a caller that needs concurrency wraps the registry
// in its own lock.
package registry

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"registrar/internal/cachemanager"
	"registrar/internal/domain/enrollment"
	"registrar/internal/log"
	"registrar/internal/presentation"
	"registrar/internal/pubsub"
	"registrar/internal/tracing"
)

const scheduleCacheTTL = 5 * time.Minute

// Registry coordinates enrollment state and persistence.
type Registry struct {
	store    enrollment.Store
	students map[string]*enrollment.Student
	courses  map[string]*enrollment.Course
	report   *enrollment.LoadReport

	broker          *pubsub.Broker[Mutation]
	tracer          trace.Tracer
	autosave        bool
	noScheduleCache bool

	schedules *cachemanager.ReadThroughCache[string, string, string]
}

// Option configures a Registry during Open.
type Option func(*Registry)

// WithBroker publishes a Mutation event after every successful mutating
// operation.
func WithBroker(broker *pubsub.Broker[Mutation]) Option {
	return func(r *Registry) {
		r.broker = broker
	}
}

// WithTracer records a span around each registry operation.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Registry) {
		r.tracer = tracer
	}
}

// WithoutAutosave disables the write-through to the store after each
// mutation. Callers then persist explicitly via Save.
func WithoutAutosave() Option {
	return func(r *Registry) {
		r.autosave = false
	}
}

// WithoutScheduleCache disables the rendered-schedule cache; every lookup
// re-renders.
func WithoutScheduleCache() Option {
	return func(r *Registry) {
		r.noScheduleCache = true
	}
}

// Open loads the snapshot from the store and builds the registry. A
// duplicated id within the snapshot keeps the last occurrence, matching the
// keyed-overwrite behavior of the file formats.
func Open(ctx context.Context, store enrollment.Store, opts ...Option) (*Registry, error) {
	r := &Registry{
		store:    store,
		students: make(map[string]*enrollment.Student),
		courses:  make(map[string]*enrollment.Course),
		tracer:   noop.NewTracerProvider().Tracer("noop"),
		autosave: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if !r.noScheduleCache {
		r.schedules = cachemanager.NewReadThroughCache[string, string, string](
			cachemanager.NewInMemoryCacheManager[string, string]("schedule",
				cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval),
			r.renderSchedule, false)
	}

	_, span := r.tracer.Start(ctx, tracing.SpanPrefixRegistry+"open")
	defer span.End()

	snapshot, report, err := store.Load()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("loading enrollment data: %w", err)
	}
	for _, student := range snapshot.Students {
		r.students[student.ID()] = student
	}
	for _, course := range snapshot.Courses {
		r.courses[course.ID()] = course
	}
	r.report = report

	span.SetAttributes(
		attribute.Int(tracing.AttrStudentsLoaded, report.StudentsLoaded),
		attribute.Int(tracing.AttrCoursesLoaded, report.CoursesLoaded),
		attribute.Int(tracing.AttrRowsSkipped, len(report.Skipped)),
	)
	span.SetStatus(codes.Ok, "")
	log.Info(log.CatRegistry, "registry opened",
		"students", report.StudentsLoaded, "courses", report.CoursesLoaded)
	return r, nil
}

// LoadReport returns the report from the Open-time load.
func (r *Registry) LoadReport() *enrollment.LoadReport {
	return r.report
}

// Student returns the student with the given id.
func (r *Registry) Student(id string) (*enrollment.Student, bool) {
	student, ok := r.students[id]
	return student, ok
}

// Course returns the course with the given id.
func (r *Registry) Course(id string) (*enrollment.Course, bool) {
	course, ok := r.courses[id]
	return course, ok
}

// Students returns all students sorted by id.
func (r *Registry) Students() []*enrollment.Student {
	students := make([]*enrollment.Student, 0, len(r.students))
	for _, student := range r.students {
		students = append(students, student)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID() < students[j].ID() })
	return students
}

// Courses returns all courses sorted by id.
func (r *Registry) Courses() []*enrollment.Course {
	courses := make([]*enrollment.Course, 0, len(r.courses))
	for _, course := range r.courses {
		courses = append(courses, course)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID() < courses[j].ID() })
	return courses
}

// CoursesFor returns the courses a student is registered in, sorted by
// course id. Course ids with no matching course are skipped; membership can
// outlive a course row when files are edited by hand.
func (r *Registry) CoursesFor(studentID string) ([]*enrollment.Course, error) {
	student, ok := r.students[studentID]
	if !ok {
		return nil, &enrollment.NotFoundError{Resource: "student", ID: studentID}
	}
	var courses []*enrollment.Course
	for _, courseID := range student.RegisteredCourses() {
		if course, ok := r.courses[courseID]; ok {
			courses = append(courses, course)
		}
	}
	return courses, nil
}

// Save writes the full state through the store. On failure the in-memory
// state is kept and the error wraps enrollment.ErrSaveFailed.
func (r *Registry) Save(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, tracing.SpanPrefixRegistry+"save")
	defer span.End()

	if err := r.store.Save(r.snapshot()); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatStore, "save failed", err)
		return fmt.Errorf("%w: %v", enrollment.ErrSaveFailed, err)
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// Close closes the underlying store.
func (r *Registry) Close() error {
	return r.store.Close()
}

// snapshot assembles the sorted state for persistence. Sorting makes every
// save byte-deterministic for the same state.
func (r *Registry) snapshot() *enrollment.Snapshot {
	return &enrollment.Snapshot{
		Students: r.Students(),
		Courses:  r.Courses(),
	}
}

// persist runs the write-through after a successful mutation.
func (r *Registry) persist(ctx context.Context) error {
	if !r.autosave {
		return nil
	}
	return r.Save(ctx)
}

// publish emits a mutation event and drops the schedule cache, which may
// render stale rows otherwise.
func (r *Registry) publish(ctx context.Context, eventType pubsub.EventType, mutation Mutation) {
	if r.schedules != nil {
		_ = r.schedules.Flush(ctx)
	}
	if r.broker != nil {
		r.broker.Publish(eventType, mutation)
	}
}

// FormattedSchedule renders a student's weekly schedule, serving repeated
// requests from the cache until the next mutation.
func (r *Registry) FormattedSchedule(ctx context.Context, studentID string) (string, error) {
	if _, ok := r.students[studentID]; !ok {
		return "", &enrollment.NotFoundError{Resource: "student", ID: studentID}
	}
	if r.schedules == nil {
		return r.renderSchedule(ctx, studentID)
	}
	return r.schedules.Get(ctx, studentID, studentID, scheduleCacheTTL)
}

func (r *Registry) renderSchedule(ctx context.Context, studentID string) (string, error) {
	student, ok := r.students[studentID]
	if !ok {
		return "", &enrollment.NotFoundError{Resource: "student", ID: studentID}
	}
	courses, err := r.CoursesFor(studentID)
	if err != nil {
		return "", err
	}
	return presentation.RenderWeeklySchedule(student, courses), nil
}
