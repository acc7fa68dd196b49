package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"registrar/internal/presentation"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <student-id>",
	Short: "Show a student's weekly schedule",
	Long: `Show a student's courses grouped by weekday and sorted by start time.

Courses without meeting days or times appear in a separate Unscheduled
section.

Examples:
  registrar schedule S001
  registrar schedule S001 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, cleanup, err := openRegistry(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		if useJSON() {
			courses, err := reg.CoursesFor(args[0])
			if err != nil {
				return err
			}
			dtos := make([]presentation.CourseDTO, 0, len(courses))
			for _, course := range courses {
				dtos = append(dtos, presentation.FromDomainCourse(course))
			}
			return formatResult(map[string]any{
				"student": args[0],
				"courses": dtos,
			})
		}

		rendered, err := reg.FormattedSchedule(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}
