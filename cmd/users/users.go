package users

import "github.com/spf13/cobra"

// UsersCmd is the parent command for user directory operations
var UsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage the user directory",
	Long:  `Commands for seeding and inspecting the user directory that list shares resolve against.`,
}

func init() {
	createCmd.Flags().StringVar(&emailFlag, "email", "", "Email address of the user (required)")
	createCmd.Flags().StringVar(&nameFlag, "name", "", "Display name of the user (defaults to the email local part)")
	createCmd.Flags().BoolVar(&adminFlag, "admin", false, "Grant the system admin role")

	UsersCmd.AddCommand(createCmd)
	UsersCmd.AddCommand(listCmd)
}
