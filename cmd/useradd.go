package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"worktime/models"
)

var useraddAdmin bool

var useraddCmd = &cobra.Command{
	Use:   "useradd NAME PASSWORD",
	Short: "Create a user account",
	Args:  cobra.ExactArgs(2),
	RunE:  runUseradd,
}

func init() {
	useraddCmd.Flags().BoolVar(&useraddAdmin, "admin", false, "Grant the administrator role")
}

func runUseradd(cmd *cobra.Command, args []string) error {
	username, password := args[0], args[1]
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters")
	}
	if len(password) < 5 {
		return fmt.Errorf("password must be at least 5 characters")
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	role := models.RoleUser
	if useraddAdmin {
		role = models.RoleAdmin
	}
	user, err := s.CreateUser(cmd.Context(), username, password, role)
	if err != nil {
		return err
	}
	fmt.Printf("Created user %s (id %d, %s)\n", user.Username, user.ID, user.Role)
	return nil
}
