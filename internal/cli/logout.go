package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"propview/internal/session"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := session.DefaultPath()
			if err != nil {
				return err
			}
			if err := session.Clear(path); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}
