// Package csvstore persists enrollment state as row-oriented CSV files, one
// header row per file. It is the flat-file implementation of
// enrollment.Store.
//
// Three files are written: courses.csv and students.csv carry the membership
// sets as ";"-joined id lists, and enrollments.csv is a derived flattened
// (student_id, course_id) pair list. The pair list is export-only; membership
// truth lives in the first two files and enrollments.csv is never read back.
package csvstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"registrar/internal/domain/enrollment"
	"registrar/internal/log"
)

const (
	coursesFile     = "courses.csv"
	studentsFile    = "students.csv"
	enrollmentsFile = "enrollments.csv"
)

var coursesHeader = []string{"course_id", "name", "instructor", "max_students", "enrolled_students", "days", "time", "location"}
var studentsHeader = []string{"student_id", "name", "registered_courses"}
var enrollmentsHeader = []string{"student_id", "course_id"}

// Store reads and writes the enrollment snapshot under a data directory.
type Store struct {
	dir string
}

var _ enrollment.Store = (*Store)(nil)

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory this store reads and writes.
func (s *Store) Dir() string {
	return s.dir
}

// Load reads courses.csv and students.csv. Loading is tolerant: a missing
// file yields an empty table, a malformed row is skipped with a reason in the
// report, and a mid-file read error keeps whatever was loaded before it.
func (s *Store) Load() (*enrollment.Snapshot, *enrollment.LoadReport, error) {
	snapshot := &enrollment.Snapshot{}
	report := &enrollment.LoadReport{}

	s.loadCourses(snapshot, report)
	s.loadStudents(snapshot, report)

	if !report.Clean() {
		log.Warn(log.CatStore, "partial load",
			"students", report.StudentsLoaded,
			"courses", report.CoursesLoaded,
			"skipped", len(report.Skipped),
			"file_errors", len(report.FileErrors))
	}
	return snapshot, report, nil
}

func (s *Store) loadCourses(snapshot *enrollment.Snapshot, report *enrollment.LoadReport) {
	rows, header, failed := s.readFile(coursesFile, report)
	if failed {
		return
	}

	for _, row := range rows {
		id := header.field(row.fields, "course_id")
		name := header.field(row.fields, "name")
		if id == "" || name == "" {
			report.Skip(coursesFile, row.line, "missing course_id or name")
			continue
		}

		maxStudents := enrollment.DefaultMaxStudents
		if raw := header.field(row.fields, "max_students"); raw != "" {
			parsed, perr := strconv.Atoi(raw)
			if perr != nil || parsed < 0 {
				report.Skip(coursesFile, row.line, fmt.Sprintf("invalid max_students %q", raw))
				continue
			}
			maxStudents = parsed
		}

		course := enrollment.ReconstituteCourse(
			id,
			name,
			header.field(row.fields, "instructor"),
			maxStudents,
			splitIDs(header.field(row.fields, "enrolled_students")),
			header.field(row.fields, "days"),
			header.field(row.fields, "time"),
			header.field(row.fields, "location"),
		)
		snapshot.Courses = append(snapshot.Courses, course)
		report.CoursesLoaded++
	}
}

func (s *Store) loadStudents(snapshot *enrollment.Snapshot, report *enrollment.LoadReport) {
	rows, header, failed := s.readFile(studentsFile, report)
	if failed {
		return
	}

	for _, row := range rows {
		id := header.field(row.fields, "student_id")
		name := header.field(row.fields, "name")
		if id == "" || name == "" {
			report.Skip(studentsFile, row.line, "missing student_id or name")
			continue
		}

		student := enrollment.ReconstituteStudent(
			id,
			name,
			splitIDs(header.field(row.fields, "registered_courses")),
		)
		snapshot.Students = append(snapshot.Students, student)
		report.StudentsLoaded++
	}
}

// columnIndex maps header names to positions for a single file.
type columnIndex map[string]int

// field returns the named column from a row, or "" when the column is absent
// or the row is too short. Missing optional fields default to empty.
func (c columnIndex) field(fields []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}

type csvRow struct {
	line   int
	fields []string
}

// readFile reads one CSV file into rows keyed by its header. Returns nil rows
// with failed=true when the file could not be opened or has no header; a read
// error mid-file records a file error and returns the rows read so far.
func (s *Store) readFile(name string, report *enrollment.LoadReport) ([]csvRow, columnIndex, bool) {
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path) //nolint:gosec // G304: path is within the configured data directory
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			report.FileError(name, err)
		}
		return nil, nil, true
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	headerFields, err := reader.Read()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			report.FileError(name, err)
		}
		return nil, nil, true
	}
	header := make(columnIndex, len(headerFields))
	for i, h := range headerFields {
		header[strings.TrimSpace(h)] = i
	}

	var rows []csvRow
	line := 1
	for {
		line++
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Keep what parsed before the error: an all-or-partial load,
			// not an atomic one.
			report.FileError(name, err)
			break
		}
		rows = append(rows, csvRow{line: line, fields: fields})
	}
	return rows, header, false
}

// Save rewrites all three files from the snapshot. Each save is a full
// rewrite; there is no incremental append and no atomic rename, which is an
// accepted weakness at this system's scale.
func (s *Store) Save(snapshot *enrollment.Snapshot) error {
	if err := s.writeCourses(snapshot.Courses); err != nil {
		return err
	}
	if err := s.writeStudents(snapshot.Students); err != nil {
		return err
	}
	return s.writeEnrollments(snapshot.Students)
}

func (s *Store) writeCourses(courses []*enrollment.Course) error {
	records := make([][]string, 0, len(courses))
	for _, c := range courses {
		records = append(records, []string{
			c.ID(),
			c.Name(),
			c.Instructor(),
			strconv.Itoa(c.MaxStudents()),
			strings.Join(c.EnrolledStudents(), ";"),
			c.Days(),
			c.MeetingTime(),
			c.Location(),
		})
	}
	return s.writeFile(coursesFile, coursesHeader, records)
}

func (s *Store) writeStudents(students []*enrollment.Student) error {
	records := make([][]string, 0, len(students))
	for _, st := range students {
		records = append(records, []string{
			st.ID(),
			st.Name(),
			strings.Join(st.RegisteredCourses(), ";"),
		})
	}
	return s.writeFile(studentsFile, studentsHeader, records)
}

// writeEnrollments exports the flattened pair list, derived from the student
// side of the membership sets.
func (s *Store) writeEnrollments(students []*enrollment.Student) error {
	var records [][]string
	for _, st := range students {
		for _, courseID := range st.RegisteredCourses() {
			records = append(records, []string{st.ID(), courseID})
		}
	}
	return s.writeFile(enrollmentsFile, enrollmentsHeader, records)
}

func (s *Store) writeFile(name string, header []string, records [][]string) error {
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path) //nolint:gosec // G304: path is within the configured data directory
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := writer.WriteAll(records); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return f.Close()
}

// Close releases nothing; files are opened per call.
func (s *Store) Close() error {
	return nil
}

func splitIDs(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ";")
}
