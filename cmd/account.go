package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"registrar/internal/auth"
	"registrar/internal/infrastructure/csvstore"
)

var (
	accountPassword string
	accountRole     string
	accountStudent  string
	passwdOld       string
	passwdNew       string
)

// newAuthenticator opens the user store in the data directory.
func newAuthenticator() (*auth.Authenticator, error) {
	store, err := csvstore.NewUserStore(dataDir())
	if err != nil {
		return nil, fmt.Errorf("opening user store: %w", err)
	}
	return auth.NewAuthenticator(store)
}

// readPassword reads a password from the terminal without echo, falling back
// to a plain stdin read when not attached to a terminal.
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if isatty.IsTerminal(os.Stdin.Fd()) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func passwordOrPrompt(flagValue, prompt string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return readPassword(prompt)
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Verify account credentials",
	Long: `Verify a username and password against the user store.

Prompts for the password unless --password is given. On first use the store
is seeded with an "admin" and a "student" account.

Examples:
  registrar login admin
  registrar login student --password student123 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		authenticator, err := newAuthenticator()
		if err != nil {
			return err
		}

		password, err := passwordOrPrompt(accountPassword, "Password: ")
		if err != nil {
			return err
		}

		session, err := authenticator.Login(args[0], password)
		if err != nil {
			return err
		}

		if useJSON() {
			return formatResult(map[string]string{
				"username":   session.Username,
				"role":       string(session.Role),
				"student_id": session.StudentID,
				"token":      session.Token,
			})
		}
		fmt.Printf("Logged in as %s (%s)\n", session.Username, session.Role)
		return nil
	},
}

var accountCreateCmd = &cobra.Command{
	Use:   "account:create <username>",
	Short: "Create a user account",
	Long: `Create a user account in the user store.

Student accounts may be linked to a student id so schedule lookups default
to their own record.

Examples:
  registrar account:create ada --role student --student S001
  registrar account:create dean --role admin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role := auth.Role(accountRole)
		if !role.Valid() {
			return fmt.Errorf("role must be %q or %q, got %q", auth.RoleStudent, auth.RoleAdmin, accountRole)
		}

		authenticator, err := newAuthenticator()
		if err != nil {
			return err
		}

		password, err := passwordOrPrompt(accountPassword, "New password: ")
		if err != nil {
			return err
		}

		user, err := authenticator.RegisterUser(args[0], password, role, accountStudent)
		if err != nil {
			return err
		}

		if useJSON() {
			return formatResult(map[string]string{
				"username":   user.Username(),
				"role":       string(user.Role()),
				"student_id": user.StudentID(),
			})
		}
		fmt.Printf("Created %s account %s\n", user.Role(), user.Username())
		return nil
	},
}

var accountPasswdCmd = &cobra.Command{
	Use:   "account:passwd <username>",
	Short: "Change an account password",
	Long: `Change an account password. The current password is required.

Examples:
  registrar account:passwd ada`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		authenticator, err := newAuthenticator()
		if err != nil {
			return err
		}

		oldPassword, err := passwordOrPrompt(passwdOld, "Current password: ")
		if err != nil {
			return err
		}
		newPassword, err := passwordOrPrompt(passwdNew, "New password: ")
		if err != nil {
			return err
		}

		if err := authenticator.ChangePassword(args[0], oldPassword, newPassword); err != nil {
			return err
		}
		fmt.Println("Password changed")
		return nil
	},
}

var accountListCmd = &cobra.Command{
	Use:   "account:list",
	Short: "List user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		authenticator, err := newAuthenticator()
		if err != nil {
			return err
		}

		users := authenticator.Users()
		if useJSON() {
			rows := make([]map[string]string, 0, len(users))
			for _, user := range users {
				rows = append(rows, map[string]string{
					"username":   user.Username(),
					"role":       string(user.Role()),
					"student_id": user.StudentID(),
				})
			}
			return formatResult(rows)
		}
		printRow("USERNAME", "ROLE", "STUDENT")
		for _, user := range users {
			printRow(user.Username(), string(user.Role()), user.StudentID())
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&accountPassword, "password", "p", "", "Password (prompts when omitted)")

	accountCreateCmd.Flags().StringVarP(&accountPassword, "password", "p", "", "Password (prompts when omitted)")
	accountCreateCmd.Flags().StringVarP(&accountRole, "role", "r", "student", "Account role: student or admin")
	accountCreateCmd.Flags().StringVarP(&accountStudent, "student", "s", "", "Linked student id")

	accountPasswdCmd.Flags().StringVar(&passwdOld, "old", "", "Current password (prompts when omitted)")
	accountPasswdCmd.Flags().StringVar(&passwdNew, "new", "", "New password (prompts when omitted)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(accountCreateCmd)
	rootCmd.AddCommand(accountPasswdCmd)
	rootCmd.AddCommand(accountListCmd)
}
