package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"registrar/internal/domain/enrollment"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "registrar.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testSnapshot(t *testing.T) *enrollment.Snapshot {
	t.Helper()

	course, err := enrollment.NewCourse("CS101", "Intro to CS", "Dr. Reyes", 2)
	require.NoError(t, err)
	require.NoError(t, course.SetSchedule("MWF", "9:00-10:15"))
	course.SetLocation("Hall 3")
	require.True(t, course.AddStudent("S001"))

	ada, err := enrollment.NewStudent("S001", "Ada Lovelace")
	require.NoError(t, err)
	ada.AddCourse("CS101")
	alan, err := enrollment.NewStudent("S002", "Alan Turing")
	require.NoError(t, err)

	return &enrollment.Snapshot{
		Students: []*enrollment.Student{ada, alan},
		Courses:  []*enrollment.Course{course},
	}
}

func TestStore_LoadEmptyDatabase(t *testing.T) {
	store := newTestStore(t)

	snapshot, report, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, snapshot.Students)
	require.Empty(t, snapshot.Courses)
	require.True(t, report.Clean())
}

func TestStore_SaveAndReload(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(testSnapshot(t)))

	snapshot, report, err := store.Load()
	require.NoError(t, err)
	require.True(t, report.Clean())
	require.Equal(t, 2, report.StudentsLoaded)
	require.Equal(t, 1, report.CoursesLoaded)

	course := snapshot.Courses[0]
	require.Equal(t, "CS101", course.ID())
	require.Equal(t, "Dr. Reyes", course.Instructor())
	require.Equal(t, 2, course.MaxStudents())
	require.Equal(t, "MWF", course.Days())
	require.Equal(t, "9:00-10:15", course.MeetingTime())
	require.Equal(t, "Hall 3", course.Location())
	require.Equal(t, []string{"S001"}, course.EnrolledStudents())

	require.Equal(t, []string{"CS101"}, snapshot.Students[0].RegisteredCourses())
	require.Empty(t, snapshot.Students[1].RegisteredCourses())
}

func TestStore_SaveReplacesPreviousContents(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(testSnapshot(t)))

	solo, err := enrollment.NewStudent("S003", "Grace Hopper")
	require.NoError(t, err)
	require.NoError(t, store.Save(&enrollment.Snapshot{Students: []*enrollment.Student{solo}}))

	snapshot, _, err := store.Load()
	require.NoError(t, err)
	require.Len(t, snapshot.Students, 1)
	require.Equal(t, "S003", snapshot.Students[0].ID())
	require.Empty(t, snapshot.Courses)
}

func TestStore_ReopenSeesSavedState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registrar.db")

	store, err := New(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(testSnapshot(t)))
	require.NoError(t, store.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	snapshot, _, err := reopened.Load()
	require.NoError(t, err)
	require.Len(t, snapshot.Students, 2)
	require.Len(t, snapshot.Courses, 1)
}

func TestStore_LoadDropsDanglingEnrollmentPairs(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(testSnapshot(t)))

	// Insert a pair pointing at a course that does not exist, mirroring data
	// imported from older files. The schema has no foreign keys, so the
	// insert succeeds and Load has to drop the pair.
	_, err := store.db.Exec(`INSERT INTO enrollments (student_id, course_id) VALUES ('S002', 'GHOST')`)
	require.NoError(t, err)

	snapshot, report, err := store.Load()
	require.NoError(t, err)
	require.False(t, report.Clean())
	require.Len(t, report.Skipped, 1)
	require.Contains(t, report.Skipped[0].Reason, "GHOST")
	require.Empty(t, snapshot.Students[1].RegisteredCourses())
}

func TestStore_SaveToleratesMembershipWithoutCourseRow(t *testing.T) {
	store := newTestStore(t)

	student, err := enrollment.NewStudent("S001", "Ada Lovelace")
	require.NoError(t, err)
	student.AddCourse("GHOST")

	require.NoError(t, store.Save(&enrollment.Snapshot{
		Students: []*enrollment.Student{student},
	}))

	snapshot, report, err := store.Load()
	require.NoError(t, err)
	require.Len(t, report.Skipped, 1)
	require.Empty(t, snapshot.Students[0].RegisteredCourses())
}
