package cli

import (
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a property's details",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	repo, err := newRepository()
	if err != nil {
		return err
	}

	p, err := repo.GetByID(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(p)
	}
	printPropertySummary(p)
	return nil
}
