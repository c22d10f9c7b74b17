package cmd

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/terraconstructs/tasklists/cmd/cmdutil"
	"github.com/terraconstructs/tasklists/internal/auth"
	"github.com/terraconstructs/tasklists/internal/db/bunx"
	"github.com/terraconstructs/tasklists/internal/repository"
)

var (
	tokenEmail string
	tokenTTL   time.Duration
	tokenQuiet bool
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Identity token commands for development",
}

var tokenMintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Sign an identity token for a directory user",
	Long: `Signs an HS256 identity token for an existing directory user with the
configured auth.jwt_secret. The token is accepted by 'serve' as a bearer token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenEmail == "" {
			return fmt.Errorf("--email flag is required")
		}
		if err := cfg.RequireJWTSecret(); err != nil {
			return err
		}

		ttl := cfg.Auth.TokenTTL
		if tokenTTL > 0 {
			ttl = tokenTTL
		}
		signer, err := auth.NewSigner(cfg.Auth.JWTSecret, cfg.Auth.Issuer, ttl)
		if err != nil {
			return fmt.Errorf("failed to create token signer: %w", err)
		}

		db, err := cmdutil.OpenDB(cfg)
		if err != nil {
			return err
		}
		defer bunx.Close(db)

		user, err := repository.NewBunUserRepository(db).GetByEmail(cmd.Context(), tokenEmail)
		if err != nil {
			return fmt.Errorf("failed to find user: %w", err)
		}

		token, err := signer.Mint(auth.Identity{UserID: user.ID, Email: user.Email, Role: user.Role})
		if err != nil {
			return fmt.Errorf("failed to mint token: %w", err)
		}

		if tokenQuiet {
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		}

		pterm.DefaultSection.Println("Identity Token")
		pterm.Info.Printf("Subject: %s (%s)\n", user.ID, user.Email)
		pterm.Info.Printf("Expires: %s\n", time.Now().Add(ttl).Format(time.RFC1123))
		pterm.Println()
		pterm.Println(token)
		return nil
	},
}

func init() {
	tokenMintCmd.Flags().StringVar(&tokenEmail, "email", "", "Email of the directory user (required)")
	tokenMintCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (defaults to auth.token_ttl)")
	tokenMintCmd.Flags().BoolVarP(&tokenQuiet, "quiet", "q", false, "Print only the token")
	tokenCmd.AddCommand(tokenMintCmd)
	rootCmd.AddCommand(tokenCmd)
}
