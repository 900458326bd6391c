package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"propview/internal/cache"
	"propview/internal/property"
)

func newListCmd() *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all properties",
		Long:  "List every property, newest first. With --cached the last fetched snapshot is shown without touching the network.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cached {
				return runListCached()
			}
			return runList(cmd)
		},
	}

	cmd.Flags().BoolVar(&cached, "cached", false, "show the local snapshot instead of fetching")

	return cmd
}

func runList(cmd *cobra.Command) error {
	repo, err := newRepository()
	if err != nil {
		return err
	}

	props, err := repo.ListAll(cmd.Context())
	if err != nil {
		return err
	}

	refreshCache(props)

	if isJSON() {
		return printJSON(props)
	}
	return printPropertyTable(props)
}

func runListCached() error {
	path, err := cache.DefaultPath()
	if err != nil {
		return err
	}
	c, err := cache.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := c.Close(); closeErr != nil {
			slog.Warn("closing cache", "error", closeErr)
		}
	}()

	props, refreshed, err := c.List()
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(props)
	}

	if refreshed.IsZero() {
		fmt.Println("No cached snapshot yet. Run 'pv list' once while online.")
		return nil
	}
	fmt.Printf("Cached snapshot from %s (may be stale)\n\n", refreshed.Local().Format("2006-01-02 15:04"))
	return printPropertyTable(props)
}

// refreshCache updates the local snapshot after a successful fetch.
// Cache trouble never fails the listing.
func refreshCache(props []*property.Property) {
	path, err := cache.DefaultPath()
	if err != nil {
		slog.Warn("locating cache", "error", err)
		return
	}
	c, err := cache.Open(path)
	if err != nil {
		slog.Warn("opening cache", "error", err)
		return
	}
	defer func() {
		if closeErr := c.Close(); closeErr != nil {
			slog.Warn("closing cache", "error", closeErr)
		}
	}()

	if err := c.Replace(props); err != nil {
		slog.Warn("refreshing cache", "error", err)
	}
}
