package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"registrar/internal/presentation"
)

const shutdownTimeout = 5 * time.Second

// formatResult prints v as indented JSON on stdout.
func formatResult(v any) error {
	return presentation.NewFormatter(os.Stdout).FormatResult(v)
}

// printCourseTable prints courses as an aligned text table.
func printCourseTable(courses []presentation.CourseDTO) {
	if len(courses) == 0 {
		fmt.Println("No courses.")
		return
	}
	printRow("ID", "NAME", "INSTRUCTOR", "SEATS", "MEETS")
	for _, course := range courses {
		meets := course.Days
		if course.Time != "" {
			meets = strings.TrimSpace(course.Days + " " + course.Time)
		}
		seats := fmt.Sprintf("%d/%d", course.Enrolled, course.MaxStudents)
		if course.AvailableSeats == 0 {
			seats = "FULL"
		}
		printRow(course.ID, course.Name, course.Instructor, seats, meets)
	}
}

// printStudentTable prints students as an aligned text table.
func printStudentTable(students []presentation.StudentDTO) {
	if len(students) == 0 {
		fmt.Println("No students.")
		return
	}
	printRow("ID", "NAME", "COURSES")
	for _, student := range students {
		printRow(student.ID, student.Name, strings.Join(student.Courses, ", "))
	}
}

var columnWidths = []int{10, 32, 20, 8}

func printRow(fields ...string) {
	var b strings.Builder
	for i, field := range fields {
		if i == len(fields)-1 {
			b.WriteString(field)
			break
		}
		width := 12
		if i < len(columnWidths) {
			width = columnWidths[i]
		}
		b.WriteString(runewidth.FillRight(runewidth.Truncate(field, width-1, "…"), width))
	}
	fmt.Println(strings.TrimRight(b.String(), " "))
}
