package presentation

import (
	"encoding/json"
	"io"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatCourses formats a list of courses as JSON
func (f *Formatter) FormatCourses(courses []CourseDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(courses)
}

// FormatStudents formats a list of students as JSON
func (f *Formatter) FormatStudents(students []StudentDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(students)
}

// FormatResult formats an arbitrary result value as JSON
func (f *Formatter) FormatResult(result any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
