package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List the properties you created",
		Long:  "List properties whose contact matches your stored contact number. Attribution is by contact string only: anyone entering the same number sees the same listings.",
		Args:  cobra.NoArgs,
		RunE:  runMine,
	}
}

func runMine(cmd *cobra.Command, args []string) error {
	sess, err := requireSession()
	if err != nil {
		return err
	}

	repo, err := newRepository()
	if err != nil {
		return err
	}

	props, err := repo.ListByContact(cmd.Context(), sess.Contact)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(props)
	}

	fmt.Printf("Properties listed by %s (%s)\n\n", sess.Name, sess.Contact)
	return printPropertyTable(props)
}
