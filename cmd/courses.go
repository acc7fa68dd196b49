package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"registrar/internal/presentation"
	"registrar/internal/registry"
)

var (
	courseName       string
	courseInstructor string
	courseMax        int
	courseDays       string
	courseTime       string
	courseLocation   string
)

var coursesListCmd = &cobra.Command{
	Use:   "courses:list",
	Short: "List the course catalog",
	Long: `List every course with its enrollment count and meeting schedule.

Examples:
  # Aligned text table
  registrar courses:list

  # JSON for scripting
  registrar courses:list --json | jq '.[].id'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, cleanup, err := openRegistry(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		dtos := make([]presentation.CourseDTO, 0)
		for _, course := range reg.Courses() {
			dtos = append(dtos, presentation.FromDomainCourse(course))
		}

		if useJSON() {
			return presentation.NewFormatter(os.Stdout).FormatCourses(dtos)
		}
		printCourseTable(dtos)
		return nil
	},
}

var coursesAddCmd = &cobra.Command{
	Use:   "courses:add <course-id>",
	Short: "Add a course to the catalog",
	Long: `Add a course to the catalog.

The schedule is optional; a course without one never conflicts with other
courses. Days use single letters plus "Th" for Thursday (e.g. MWF, TTh) and
times are 24-hour ranges (e.g. 9:00-10:15).

Examples:
  registrar courses:add CS101 --name "Intro to Computer Science" \
    --instructor Turing --max 30 --days MWF --time 9:00-10:15 --location "Hall A"

  # Unscheduled seminar
  registrar courses:add SEM500 --name "Research Seminar" --instructor Hopper --max 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, cleanup, err := openRegistry(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		opts := make([]registry.CourseOption, 0, 2)
		if courseDays != "" || courseTime != "" {
			opts = append(opts, registry.WithSchedule(courseDays, courseTime))
		}
		if courseLocation != "" {
			opts = append(opts, registry.WithLocation(courseLocation))
		}

		course, err := reg.AddCourse(cmd.Context(), args[0], courseName, courseInstructor, courseMax, opts...)
		if err != nil {
			return err
		}

		if useJSON() {
			return formatResult(presentation.FromDomainCourse(course))
		}
		fmt.Printf("Added course %s (%s)\n", course.ID(), course.Name())
		return nil
	},
}

func init() {
	coursesAddCmd.Flags().StringVarP(&courseName, "name", "n", "", "Course name (required)")
	coursesAddCmd.Flags().StringVarP(&courseInstructor, "instructor", "i", "", "Instructor name (required)")
	coursesAddCmd.Flags().IntVarP(&courseMax, "max", "m", 30, "Maximum enrollment")
	coursesAddCmd.Flags().StringVar(&courseDays, "days", "", "Meeting days (e.g. MWF, TTh)")
	coursesAddCmd.Flags().StringVar(&courseTime, "time", "", "Meeting time (e.g. 9:00-10:15)")
	coursesAddCmd.Flags().StringVar(&courseLocation, "location", "", "Meeting location")
	_ = coursesAddCmd.MarkFlagRequired("name")
	_ = coursesAddCmd.MarkFlagRequired("instructor")

	rootCmd.AddCommand(coursesListCmd)
	rootCmd.AddCommand(coursesAddCmd)
}
