package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SnapshotLinksBothSides(t *testing.T) {
	snapshot := NewBuilder(t).
		WithStudent("S001", "Ada").
		WithCourse("CS101", Name("Intro"), MaxStudents(10)).
		WithEnrollment("S001", "CS101").
		Snapshot()

	require.Len(t, snapshot.Students, 1)
	require.Len(t, snapshot.Courses, 1)
	assert.Equal(t, []string{"CS101"}, snapshot.Students[0].RegisteredCourses())
	assert.Equal(t, []string{"S001"}, snapshot.Courses[0].EnrolledStudents())
}

func TestBuilder_CourseDefaults(t *testing.T) {
	snapshot := NewBuilder(t).WithCourse("CS101").Snapshot()

	course := snapshot.Courses[0]
	assert.Equal(t, "CS101", course.Name())
	assert.Equal(t, 30, course.MaxStudents())
	assert.False(t, course.IsScheduled())
}

func TestBuilder_CourseOptions(t *testing.T) {
	snapshot := NewBuilder(t).
		WithCourse("PHYS150",
			Name("Mechanics"), Instructor("Curie"), MaxStudents(12),
			Schedule("TTh", "13:00-14:30"), Location("Lab 3")).
		Snapshot()

	course := snapshot.Courses[0]
	assert.Equal(t, "Mechanics", course.Name())
	assert.Equal(t, "Curie", course.Instructor())
	assert.Equal(t, 12, course.MaxStudents())
	assert.Equal(t, "TTh", course.Days())
	assert.Equal(t, "13:00-14:30", course.MeetingTime())
	assert.Equal(t, "Lab 3", course.Location())
}

func TestBuilder_InsertWritesRows(t *testing.T) {
	db := NewTestDB(t)

	NewBuilder(t).
		WithStudent("S001", "Ada").
		WithCourse("CS101", Name("Intro")).
		WithEnrollment("S001", "CS101").
		Insert(db)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM students`).Scan(&count))
	assert.Equal(t, 1, count)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM enrollments`).Scan(&count))
	assert.Equal(t, 1, count)

	var name string
	require.NoError(t, db.QueryRow(`SELECT name FROM courses WHERE id = 'CS101'`).Scan(&name))
	assert.Equal(t, "Intro", name)
}

func TestNewTestDB_SchemaApplied(t *testing.T) {
	db := NewTestDB(t)

	for _, table := range []string{"students", "courses", "enrollments"} {
		var count int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&count))
		assert.Zero(t, count)
	}
}
