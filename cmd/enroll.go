package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var enrollCmd = &cobra.Command{
	Use:   "enroll <student-id> <course-id>",
	Short: "Enroll a student in a course",
	Long: `Enroll a student in a course.

Enrollment fails when the course is full, when the student is already
enrolled, or when the course's meeting times overlap a course the student is
already taking. The data files are rewritten on success; if the write fails
the enrollment still holds in this process and the error says so.

Examples:
  registrar enroll S001 CS101`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, cleanup, err := openRegistry(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		if err := reg.Enroll(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}

		if useJSON() {
			return formatResult(map[string]string{
				"student": args[0],
				"course":  args[1],
				"action":  "enrolled",
			})
		}
		fmt.Printf("Enrolled %s in %s\n", args[0], args[1])
		return nil
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop <student-id> <course-id>",
	Short: "Drop a student from a course",
	Long: `Drop a student from a course they are enrolled in.

Examples:
  registrar drop S001 CS101`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, cleanup, err := openRegistry(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		if err := reg.Drop(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}

		if useJSON() {
			return formatResult(map[string]string{
				"student": args[0],
				"course":  args[1],
				"action":  "dropped",
			})
		}
		fmt.Printf("Dropped %s from %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(enrollCmd)
	rootCmd.AddCommand(dropCmd)
}
