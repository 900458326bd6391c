package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"propview/internal/property"
)

// draftFlags holds the listing fields shared by add and edit.
type draftFlags struct {
	title       string
	location    string
	price       int64
	description string
	bedroom     int64
	bathroom    int64
	area        float64
	image       string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "listing title")
	cmd.Flags().StringVar(&f.location, "location", "", "property location")
	cmd.Flags().Int64Var(&f.price, "price", 0, "asking price")
	cmd.Flags().StringVar(&f.description, "description", "", "free-form description")
	cmd.Flags().Int64Var(&f.bedroom, "bedroom", 0, "number of bedrooms")
	cmd.Flags().Int64Var(&f.bathroom, "bathroom", 0, "number of bathrooms")
	cmd.Flags().Float64Var(&f.area, "area", 0, "area in square feet")
	cmd.Flags().StringVar(&f.image, "image", "", "path to an image file to upload")
}

// draft builds a Draft from the flags that were actually set.
func (f *draftFlags) draft(cmd *cobra.Command) property.Draft {
	d := property.Draft{
		Title:       f.title,
		Location:    f.location,
		Description: f.description,
	}
	if cmd.Flags().Changed("price") {
		price := f.price
		d.Price = &price
	}
	if cmd.Flags().Changed("bedroom") {
		bedroom := f.bedroom
		d.Bedroom = &bedroom
	}
	if cmd.Flags().Changed("bathroom") {
		bathroom := f.bathroom
		d.Bathroom = &bathroom
	}
	if cmd.Flags().Changed("area") {
		area := f.area
		d.Area = &area
	}
	return d
}

// uploadFlagImage uploads the file named by --image, returning its
// public URL, or "" when the flag is unset.
func (f *draftFlags) uploadFlagImage(ctx context.Context, repo *property.Repository) (string, error) {
	if f.image == "" {
		return "", nil
	}

	data, err := os.ReadFile(f.image)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}

	url, err := repo.UploadImage(ctx, data, f.image)
	if err != nil {
		return "", err
	}
	return url, nil
}

func newAddCmd() *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a property listing",
		Long:  "Create a listing attributed to your stored contact number. Title, location, and price are required; an image file is uploaded first when given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, &flags)
		},
	}

	flags.register(cmd)

	return cmd
}

func runAdd(cmd *cobra.Command, flags *draftFlags) error {
	sess, err := requireSession()
	if err != nil {
		return err
	}

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
	draft.Contact = sess.Contact

	p, err := repo.Create(cmd.Context(), draft)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(p)
	}

	fmt.Println("Property listed!")
	printPropertySummary(p)
	return nil
}
