package presentation

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"registrar/internal/domain/enrollment"
)

func TestFromDomainCourse(t *testing.T) {
	course, err := enrollment.NewCourse("CS101", "Intro to CS", "Dr. Reyes", 2)
	require.NoError(t, err)
	require.NoError(t, course.SetSchedule("MWF", "9:00-10:15"))
	course.SetLocation("Hall 3")
	require.True(t, course.AddStudent("S001"))

	dto := FromDomainCourse(course)

	require.Equal(t, "CS101", dto.ID)
	require.Equal(t, "Intro to CS", dto.Name)
	require.Equal(t, 2, dto.MaxStudents)
	require.Equal(t, 1, dto.Enrolled)
	require.Equal(t, 1, dto.AvailableSeats)
	require.Equal(t, "MWF", dto.Days)
	require.Equal(t, "9:00-10:15", dto.Time)
	require.Equal(t, "Hall 3", dto.Location)
	require.Equal(t, []string{"S001"}, dto.Students)
}

func TestFromDomainStudent_EmptyCoursesIsNotNull(t *testing.T) {
	student, err := enrollment.NewStudent("S001", "Ada Lovelace")
	require.NoError(t, err)

	dto := FromDomainStudent(student)

	require.NotNil(t, dto.Courses)
	require.Empty(t, dto.Courses)
}

func TestFormatter_FormatStudents(t *testing.T) {
	student, err := enrollment.NewStudent("S001", "Ada Lovelace")
	require.NoError(t, err)
	student.AddCourse("CS101")

	var buf bytes.Buffer
	formatter := NewFormatter(&buf)
	require.NoError(t, formatter.FormatStudents([]StudentDTO{FromDomainStudent(student)}))

	require.Contains(t, buf.String(), `"id": "S001"`)
	require.Contains(t, buf.String(), `"CS101"`)
}
