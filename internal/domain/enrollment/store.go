package enrollment

import "fmt"

// Snapshot is the full persisted state: every student and every course.
// Stores read and write whole snapshots; there is no incremental persistence.
type Snapshot struct {
	Students []*Student
	Courses  []*Course
}

// SkippedRow records a row the store could not parse during a tolerant load.
type SkippedRow struct {
	File   string
	Line   int
	Reason string
}

// FileError records an error that ended the load of one file early.
type FileError struct {
	File string
	Err  string
}

func (e FileError) String() string {
	return fmt.Sprintf("%s: %s", e.File, e.Err)
}

// LoadReport describes what a tolerant load actually produced: how much was
// loaded, which rows were skipped and why, and any per-file errors that ended
// a file early. A load never fails outright because of bad rows; callers get
// whatever parsed plus this report.
type LoadReport struct {
	StudentsLoaded int
	CoursesLoaded  int
	Skipped        []SkippedRow
	FileErrors     []FileError
}

// Clean reports whether the load completed with nothing skipped and no file
// errors.
func (r *LoadReport) Clean() bool {
	return len(r.Skipped) == 0 && len(r.FileErrors) == 0
}

// Skip records a skipped row.
func (r *LoadReport) Skip(file string, line int, reason string) {
	r.Skipped = append(r.Skipped, SkippedRow{File: file, Line: line, Reason: reason})
}

// FileError records an error that ended the load of one file early.
func (r *LoadReport) FileError(file string, err error) {
	r.FileErrors = append(r.FileErrors, FileError{File: file, Err: err.Error()})
}

// Store is the persistence abstraction injected into the Registry. The
// storage strategy (flat files, embedded database, in-memory for tests) is
// swappable without touching the enrollment rules.
type Store interface {
	// Load reads the full snapshot. Loading is tolerant: unreadable files
	// and malformed rows are reported in the LoadReport rather than failing
	// the load. The returned error is reserved for failures that leave the
	// store unusable.
	Load() (*Snapshot, *LoadReport, error)

	// Save rewrites the full snapshot. Every mutating Registry operation
	// triggers a complete rewrite, not an incremental append.
	Save(snapshot *Snapshot) error

	// Close releases any resources held by the store.
	Close() error
}
