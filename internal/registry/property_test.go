package registry

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"registrar/internal/infrastructure/memory"
)

// randomRegistry builds a registry with a drawn population of students and
// courses, then applies a drawn sequence of enroll and drop calls, ignoring
// rejections.
func randomRegistry(rt *rapid.T) *Registry {
	ctx := context.Background()
	reg, err := Open(ctx, memory.New())
	if err != nil {
		rt.Fatal(err)
	}

	numStudents := rapid.IntRange(1, 8).Draw(rt, "numStudents")
	numCourses := rapid.IntRange(1, 6).Draw(rt, "numCourses")

	for i := 0; i < numStudents; i++ {
		if _, err := reg.RegisterStudent(ctx, fmt.Sprintf("S%03d", i), fmt.Sprintf("Student %d", i)); err != nil {
			rt.Fatal(err)
		}
	}

	days := []string{"", "M", "T", "W", "Th", "F", "MWF", "TTh", "MW"}
	times := []string{"", "8:00-9:15", "9:00-10:15", "10:15-11:30", "13:00-14:30"}
	for i := 0; i < numCourses; i++ {
		opts := []CourseOption{}
		day := rapid.SampledFrom(days).Draw(rt, "days")
		tm := rapid.SampledFrom(times).Draw(rt, "time")
		if day != "" && tm != "" {
			opts = append(opts, WithSchedule(day, tm))
		}
		maxStudents := rapid.IntRange(1, 4).Draw(rt, "maxStudents")
		if _, err := reg.AddCourse(ctx, fmt.Sprintf("C%03d", i), fmt.Sprintf("Course %d", i), "Staff", maxStudents, opts...); err != nil {
			rt.Fatal(err)
		}
	}

	numOps := rapid.IntRange(0, 30).Draw(rt, "numOps")
	for i := 0; i < numOps; i++ {
		studentID := fmt.Sprintf("S%03d", rapid.IntRange(0, numStudents-1).Draw(rt, "opStudent"))
		courseID := fmt.Sprintf("C%03d", rapid.IntRange(0, numCourses-1).Draw(rt, "opCourse"))
		if rapid.Bool().Draw(rt, "isDrop") {
			_ = reg.Drop(ctx, studentID, courseID)
		} else {
			_ = reg.Enroll(ctx, studentID, courseID)
		}
	}
	return reg
}

func TestProperty_EnrollmentNeverExceedsCapacity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		reg := randomRegistry(rt)
		for _, course := range reg.Courses() {
			if course.EnrollmentCount() > course.MaxStudents() {
				rt.Fatalf("course %s has %d enrolled with capacity %d",
					course.ID(), course.EnrollmentCount(), course.MaxStudents())
			}
		}
	})
}

func TestProperty_BidirectionalMembershipConsistency(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		reg := randomRegistry(rt)
		for _, student := range reg.Students() {
			for _, course := range reg.Courses() {
				fromStudent := student.IsEnrolledIn(course.ID())
				fromCourse := course.IsStudentEnrolled(student.ID())
				if fromStudent != fromCourse {
					rt.Fatalf("membership disagrees for (%s, %s): student=%v course=%v",
						student.ID(), course.ID(), fromStudent, fromCourse)
				}
			}
		}
	})
}

func TestProperty_EnrollThenDropRestoresState(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		reg := randomRegistry(rt)

		students := reg.Students()
		courses := reg.Courses()
		student := students[rapid.IntRange(0, len(students)-1).Draw(rt, "student")]
		course := courses[rapid.IntRange(0, len(courses)-1).Draw(rt, "course")]

		beforeStudent := student.RegisteredCourses()
		beforeCourse := course.EnrolledStudents()

		if err := reg.Enroll(ctx, student.ID(), course.ID()); err != nil {
			rt.Skip("enrollment rejected")
		}
		if err := reg.Drop(ctx, student.ID(), course.ID()); err != nil {
			rt.Fatalf("drop after successful enroll: %v", err)
		}

		require.Equal(rt, beforeStudent, student.RegisteredCourses())
		require.Equal(rt, beforeCourse, course.EnrolledStudents())
	})
}

func TestProperty_SaveReloadReproducesState(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		reg := randomRegistry(rt)
		if err := reg.Save(ctx); err != nil {
			rt.Fatal(err)
		}

		// The registry and its store share state through Save/Load only.
		reloaded, err := Open(ctx, storeOf(reg))
		if err != nil {
			rt.Fatal(err)
		}

		require.Len(rt, reloaded.Students(), len(reg.Students()))
		require.Len(rt, reloaded.Courses(), len(reg.Courses()))
		for _, student := range reg.Students() {
			got, ok := reloaded.Student(student.ID())
			if !ok {
				rt.Fatalf("student %s lost on reload", student.ID())
			}
			require.Equal(rt, student.RegisteredCourses(), got.RegisteredCourses())
		}
		for _, course := range reg.Courses() {
			got, ok := reloaded.Course(course.ID())
			if !ok {
				rt.Fatalf("course %s lost on reload", course.ID())
			}
			require.Equal(rt, course.EnrolledStudents(), got.EnrolledStudents())
			require.Equal(rt, course.MaxStudents(), got.MaxStudents())
		}
	})
}

func storeOf(reg *Registry) *memory.Store {
	return reg.store.(*memory.Store)
}
