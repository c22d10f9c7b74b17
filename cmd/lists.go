package cmd

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/terraconstructs/tasklists/cmd/cmdutil"
)

var provisionEmail string

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "List administration commands",
}

var listsProvisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Create the starter lists and tasks for a user",
	Long: `Creates the default starter lists and their tasks for a directory user.
Users that already own a list are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if provisionEmail == "" {
			return fmt.Errorf("--email flag is required")
		}

		bundle, err := cmdutil.NewServiceBundle(cfg, logger)
		if err != nil {
			return err
		}
		defer bundle.Close()

		ctx := cmd.Context()
		user, err := bundle.Store.Repositories().Users.GetByEmail(ctx, provisionEmail)
		if err != nil {
			return fmt.Errorf("failed to find user: %w", err)
		}

		result, err := bundle.Provisioning.Provision(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("provisioning failed: %w", err)
		}

		if result.AlreadyProvisioned {
			pterm.Info.Printf("%s already owns lists; nothing to do.\n", user.Email)
			return nil
		}

		pterm.Success.Printf("Provisioned %d list(s) and %d task(s) for %s\n", len(result.Lists), result.TaskCount, user.Email)
		table := pterm.TableData{{"ID", "NAME", "ICON", "COLOR", "TASKS"}}
		for _, l := range result.Lists {
			table = append(table, []string{l.ID, l.Name, l.Icon, l.Color, strconv.Itoa(l.TaskCount)})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
	},
}

func init() {
	listsProvisionCmd.Flags().StringVar(&provisionEmail, "email", "", "Email of the directory user to provision (required)")
	listsCmd.AddCommand(listsProvisionCmd)
	rootCmd.AddCommand(listsCmd)
}
