package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"registrar/internal/presentation"
)

var studentName string

var studentsListCmd = &cobra.Command{
	Use:   "students:list",
	Short: "List registered students",
	Long: `List every registered student and the courses they are enrolled in.

Examples:
  registrar students:list
  registrar students:list --json | jq '.[].courses'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, cleanup, err := openRegistry(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		dtos := make([]presentation.StudentDTO, 0)
		for _, student := range reg.Students() {
			dtos = append(dtos, presentation.FromDomainStudent(student))
		}

		if useJSON() {
			return presentation.NewFormatter(os.Stdout).FormatStudents(dtos)
		}
		printStudentTable(dtos)
		return nil
	},
}

var studentsRegisterCmd = &cobra.Command{
	Use:   "students:register <student-id>",
	Short: "Register a new student",
	Long: `Register a new student with the given id.

Examples:
  registrar students:register S001 --name "Ada Lovelace"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, cleanup, err := openRegistry(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		student, err := reg.RegisterStudent(cmd.Context(), args[0], studentName)
		if err != nil {
			return err
		}

		if useJSON() {
			return formatResult(presentation.FromDomainStudent(student))
		}
		fmt.Printf("Registered student %s (%s)\n", student.ID(), student.Name())
		return nil
	},
}

func init() {
	studentsRegisterCmd.Flags().StringVarP(&studentName, "name", "n", "", "Student name (required)")
	_ = studentsRegisterCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(studentsListCmd)
	rootCmd.AddCommand(studentsRegisterCmd)
}
