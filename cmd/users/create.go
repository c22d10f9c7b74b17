package users

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terraconstructs/tasklists/cmd/cmdutil"
	"github.com/terraconstructs/tasklists/internal/db/bunx"
	"github.com/terraconstructs/tasklists/internal/db/models"
	"github.com/terraconstructs/tasklists/internal/repository"
)

var (
	emailFlag string
	nameFlag  string
	adminFlag bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a user to the directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if emailFlag == "" {
			return fmt.Errorf("--email flag is required")
		}

		addr, err := mail.ParseAddress(emailFlag)
		if err != nil {
			return fmt.Errorf("invalid email format: %w", err)
		}
		email := strings.ToLower(addr.Address)

		name := strings.TrimSpace(nameFlag)
		if name == "" {
			name, _, _ = strings.Cut(email, "@")
		}

		role := models.SystemRoleUser
		if adminFlag {
			role = models.SystemRoleAdmin
		}

		rt, err := cmdutil.RuntimeFromContext(cmd.Context())
		if err != nil {
			return err
		}

		db, err := cmdutil.OpenDB(rt.Config)
		if err != nil {
			return err
		}
		defer bunx.Close(db)

		user := &models.User{Email: email, Name: name, Role: role}
		if err := repository.NewBunUserRepository(db).Create(cmd.Context(), user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "User created successfully!")
		fmt.Fprintln(out, "----------------------------------------")
		fmt.Fprintf(out, "User ID: %s\n", user.ID)
		fmt.Fprintf(out, "Email: %s\n", user.Email)
		fmt.Fprintf(out, "Name: %s\n", user.Name)
		fmt.Fprintf(out, "Role: %s\n", user.Role)
		fmt.Fprintln(out, "----------------------------------------")

		return nil
	},
}
