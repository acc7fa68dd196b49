// Package sqlite implements enrollment.Store on a single SQLite database
// file. Membership is normalized into an enrollments join table rather than
// the ";"-joined lists the flat-file store uses.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"registrar/internal/domain/enrollment"
)

// Schema defines the registrar tables. Applied with IF NOT EXISTS on every
// open, so an existing database is left untouched.
//
// The enrollments table deliberately carries no foreign keys: the driver
// enforces them, and that would make Save fail on membership referencing a
// missing row. Dangling pairs are dropped at load time instead, matching
// the flat-file store's tolerance.
const Schema = `
CREATE TABLE IF NOT EXISTS students (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS courses (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	instructor TEXT NOT NULL DEFAULT '',
	max_students INTEGER NOT NULL DEFAULT 30,
	days TEXT NOT NULL DEFAULT '',
	meeting_time TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS enrollments (
	student_id TEXT NOT NULL,
	course_id TEXT NOT NULL,
	PRIMARY KEY (student_id, course_id)
);
`

// Store persists the enrollment snapshot in a SQLite database.
type Store struct {
	db     *sql.DB
	ownsDB bool
}

var _ enrollment.Store = (*Store)(nil)

// New opens (or creates) the database at path and applies the schema. The
// parent directory is created if needed.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db, ownsDB: true}, nil
}

// NewWithDB wraps an existing database handle. The caller keeps ownership
// and is responsible for closing it.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load reads the full snapshot. Membership is rebuilt from the enrollments
// table on both the course and student side; a pair referencing a missing
// row on either side is dropped with a skip entry in the report.
func (s *Store) Load() (*enrollment.Snapshot, *enrollment.LoadReport, error) {
	report := &enrollment.LoadReport{}

	students, studentCourses, err := s.loadStudents()
	if err != nil {
		return nil, nil, err
	}
	courses, courseStudents, err := s.loadCourses()
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.db.Query(`SELECT student_id, course_id FROM enrollments ORDER BY student_id, course_id`)
	if err != nil {
		return nil, nil, fmt.Errorf("querying enrollments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var studentID, courseID string
		if err := rows.Scan(&studentID, &courseID); err != nil {
			return nil, nil, fmt.Errorf("scanning enrollment row: %w", err)
		}
		sc, okStudent := studentCourses[studentID]
		cs, okCourse := courseStudents[courseID]
		if !okStudent || !okCourse {
			report.Skip("enrollments", 0, fmt.Sprintf("pair (%s, %s) references a missing row", studentID, courseID))
			continue
		}
		*sc = append(*sc, courseID)
		*cs = append(*cs, studentID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating enrollment rows: %w", err)
	}

	snapshot := &enrollment.Snapshot{}
	for _, st := range students {
		snapshot.Students = append(snapshot.Students, enrollment.ReconstituteStudent(st.id, st.name, *studentCourses[st.id]))
		report.StudentsLoaded++
	}
	for _, c := range courses {
		snapshot.Courses = append(snapshot.Courses, enrollment.ReconstituteCourse(
			c.id, c.name, c.instructor, c.maxStudents, *courseStudents[c.id], c.days, c.meetingTime, c.location))
		report.CoursesLoaded++
	}
	return snapshot, report, nil
}

type studentRow struct {
	id   string
	name string
}

type courseRow struct {
	id          string
	name        string
	instructor  string
	maxStudents int
	days        string
	meetingTime string
	location    string
}

func (s *Store) loadStudents() ([]studentRow, map[string]*[]string, error) {
	rows, err := s.db.Query(`SELECT id, name FROM students ORDER BY id`)
	if err != nil {
		return nil, nil, fmt.Errorf("querying students: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var students []studentRow
	membership := make(map[string]*[]string)
	for rows.Next() {
		var st studentRow
		if err := rows.Scan(&st.id, &st.name); err != nil {
			return nil, nil, fmt.Errorf("scanning student row: %w", err)
		}
		students = append(students, st)
		membership[st.id] = new([]string)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating student rows: %w", err)
	}
	return students, membership, nil
}

func (s *Store) loadCourses() ([]courseRow, map[string]*[]string, error) {
	rows, err := s.db.Query(`SELECT id, name, instructor, max_students, days, meeting_time, location FROM courses ORDER BY id`)
	if err != nil {
		return nil, nil, fmt.Errorf("querying courses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var courses []courseRow
	membership := make(map[string]*[]string)
	for rows.Next() {
		var c courseRow
		if err := rows.Scan(&c.id, &c.name, &c.instructor, &c.maxStudents, &c.days, &c.meetingTime, &c.location); err != nil {
			return nil, nil, fmt.Errorf("scanning course row: %w", err)
		}
		courses = append(courses, c)
		membership[c.id] = new([]string)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating course rows: %w", err)
	}
	return courses, membership, nil
}

// Save replaces the database contents with the snapshot in one transaction.
// A failed save rolls back and leaves the previous contents intact.
func (s *Store) Save(snapshot *enrollment.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"enrollments", "students", "courses"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, st := range snapshot.Students {
		if _, err := tx.Exec(`INSERT INTO students (id, name) VALUES (?, ?)`, st.ID(), st.Name()); err != nil {
			return fmt.Errorf("inserting student %s: %w", st.ID(), err)
		}
	}
	for _, c := range snapshot.Courses {
		if _, err := tx.Exec(
			`INSERT INTO courses (id, name, instructor, max_students, days, meeting_time, location)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.ID(), c.Name(), c.Instructor(), c.MaxStudents(), c.Days(), c.MeetingTime(), c.Location(),
		); err != nil {
			return fmt.Errorf("inserting course %s: %w", c.ID(), err)
		}
	}
	for _, st := range snapshot.Students {
		for _, courseID := range st.RegisteredCourses() {
			if _, err := tx.Exec(
				`INSERT INTO enrollments (student_id, course_id) VALUES (?, ?)`,
				st.ID(), courseID,
			); err != nil {
				return fmt.Errorf("inserting enrollment (%s, %s): %w", st.ID(), courseID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}
	return nil
}

// Close closes the database when this store opened it.
func (s *Store) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}
