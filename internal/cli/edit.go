package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a property listing",
		Long:  "Apply a partial update to an existing listing. Only the flags you set are changed; --image uploads a replacement image first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], &flags)
		},
	}

	flags.register(cmd)

	return cmd
}

func runEdit(cmd *cobra.Command, id string, flags *draftFlags) error {
	repo, err := newRepository()
	if err != nil {
		return err
	}

	imageURL, err := flags.uploadFlagImage(cmd.Context(), repo)
	if err != nil {
		return err
	}

	draft := flags.draft(cmd)
	draft.ImageURL = imageURL

	p, err := repo.Update(cmd.Context(), id, draft)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(p)
	}

	fmt.Println("Property updated.")
	printPropertySummary(p)
	return nil
}
