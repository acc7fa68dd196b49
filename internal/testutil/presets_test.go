package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithStandardCatalog(t *testing.T) {
	snapshot := NewBuilder(t).WithStandardCatalog().Snapshot()

	require.Len(t, snapshot.Students, 3)
	require.Len(t, snapshot.Courses, 4)

	byID := make(map[string]int)
	for i, c := range snapshot.Courses {
		byID[c.ID()] = i
	}

	cs := snapshot.Courses[byID["CS101"]]
	assert.ElementsMatch(t, []string{"S001", "S002"}, cs.EnrolledStudents())
	assert.True(t, cs.IsScheduled())

	sem := snapshot.Courses[byID["SEM500"]]
	assert.False(t, sem.IsScheduled())
	assert.Equal(t, 2, sem.MaxStudents())
}

func TestWithFullCourse(t *testing.T) {
	snapshot := NewBuilder(t).WithFullCourse("LAB101", 3).Snapshot()

	require.Len(t, snapshot.Courses, 1)
	course := snapshot.Courses[0]
	assert.Len(t, course.EnrolledStudents(), 3)
	assert.True(t, course.IsFull())
}
