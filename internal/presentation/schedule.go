package presentation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"registrar/internal/domain/enrollment"
)

var (
	scheduleTitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	scheduleDayStyle   = lipgloss.NewStyle().Bold(true)
	scheduleDimStyle   = lipgloss.NewStyle().Faint(true)
)

const (
	timeColWidth = 13
	idColWidth   = 10
	nameColWidth = 30
)

// RenderWeeklySchedule renders a student's courses as a weekday-grouped text
// schedule. Courses appear under every day they meet, ordered by start time
// within the day. Courses missing days or a time are listed separately at
// the end.
func RenderWeeklySchedule(student *enrollment.Student, courses []*enrollment.Course) string {
	var lines []string
	lines = append(lines, scheduleTitleStyle.Render(
		fmt.Sprintf("Weekly Schedule for %s (%s)", student.Name(), student.ID())))

	if len(courses) == 0 {
		lines = append(lines, scheduleDimStyle.Render("No registered courses."))
		return strings.Join(lines, "\n")
	}

	var scheduled, unscheduled []*enrollment.Course
	for _, course := range courses {
		if course.IsScheduled() {
			scheduled = append(scheduled, course)
		} else {
			unscheduled = append(unscheduled, course)
		}
	}

	if len(scheduled) == 0 {
		lines = append(lines, scheduleDimStyle.Render("No scheduled courses."))
	}

	for _, day := range enrollment.WeekDays {
		var meetings []*enrollment.Course
		for _, course := range scheduled {
			if course.MeetsOn(day) {
				meetings = append(meetings, course)
			}
		}
		if len(meetings) == 0 {
			continue
		}
		sortByStartTime(meetings)

		lines = append(lines, "", scheduleDayStyle.Render(day.Name()))
		for _, course := range meetings {
			lines = append(lines, "  "+
				cell(course.MeetingTime(), timeColWidth)+
				cell(course.ID(), idColWidth)+
				cell(course.Name(), nameColWidth)+
				course.Location())
		}
	}

	if len(unscheduled) > 0 {
		lines = append(lines, "", scheduleDimStyle.Render("Unscheduled"))
		for _, course := range unscheduled {
			lines = append(lines, "  "+cell(course.ID(), idColWidth)+course.Name())
		}
	}

	return strings.Join(lines, "\n")
}

// sortByStartTime orders courses by parsed start time, ties and unparseable
// times falling back to course id.
func sortByStartTime(courses []*enrollment.Course) {
	start := func(c *enrollment.Course) int {
		tr, err := enrollment.ParseTimeRange(c.MeetingTime())
		if err != nil {
			return 1 << 30
		}
		return tr.Start()
	}
	sort.SliceStable(courses, func(i, j int) bool {
		si, sj := start(courses[i]), start(courses[j])
		if si != sj {
			return si < sj
		}
		return courses[i].ID() < courses[j].ID()
	})
}

// cell truncates and right-pads a value to a fixed display width.
func cell(value string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(value, width-1, "…"), width)
}
