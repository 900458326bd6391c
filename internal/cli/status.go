package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"propview/internal/comparison"
	"propview/internal/config"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored identity and store configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}
}

func runStatus() error {
	sess, err := loadSession()
	if err != nil {
		return err
	}

	cfgPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	sel, err := openSelection(nil)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(map[string]interface{}{
			"name":       sess.Name,
			"contact":    sess.Contact,
			"store_url":  cfg.StoreURL,
			"comparison": sel.Len(),
		})
	}

	if sess.Active() {
		fmt.Printf("Logged in as %s (%s)\n", sess.Name, sess.Contact)
	} else {
		fmt.Println("Not logged in.")
	}

	if cfg.StoreURL != "" {
		fmt.Printf("Store: %s\n", cfg.StoreURL)
	} else {
		fmt.Println("Store: not configured")
	}

	fmt.Printf("Comparison: %d of %d selected\n", sel.Len(), comparison.MaxProperties)
	return nil
}
