package users

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/terraconstructs/tasklists/cmd/cmdutil"
	"github.com/terraconstructs/tasklists/internal/db/bunx"
	"github.com/terraconstructs/tasklists/internal/repository"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List directory users ordered by email",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := cmdutil.RuntimeFromContext(cmd.Context())
		if err != nil {
			return err
		}

		db, err := cmdutil.OpenDB(rt.Config)
		if err != nil {
			return err
		}
		defer bunx.Close(db)

		users, err := repository.NewBunUserRepository(db).List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		if len(users) == 0 {
			pterm.Info.Println("No users in the directory.")
			return nil
		}

		table := pterm.TableData{{"ID", "EMAIL", "NAME", "ROLE"}}
		for _, u := range users {
			table = append(table, []string{u.ID, u.Email, u.Name, string(u.Role)})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
	},
}
