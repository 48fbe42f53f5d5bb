package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tripinvite/portal/pkg/crypto"
)

// NewAdminCommand creates the admin command group.
func NewAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin secret helpers",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "hash-token <secret>",
		Short: "Print a bcrypt hash for admin.link_token_hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := crypto.HashSecret(args[0])
			if err != nil {
				return fmt.Errorf("hash secret: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	})
	return cmd
}
