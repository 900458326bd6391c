// Package cli defines the cobra command tree for propview.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"propview/internal/comparison"
	"propview/internal/config"
	"propview/internal/logging"
	"propview/internal/notify"
	"propview/internal/property"
	"propview/internal/session"
	"propview/internal/store"
)

var (
	flagFormat  string
	flagVerbose bool
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pv",
		Short:         "Browse, manage, and compare property listings",
		Long:          "A tool for browsing property listings held in a hosted store. Log in with a name and contact number, list and manage your properties, and compare up to three side by side.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(flagVerbose)
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newStatusCmd(),
		newListCmd(),
		newMineCmd(),
		newShowCmd(),
		newAddCmd(),
		newEditCmd(),
		newRemoveCmd(),
		newCompareCmd(),
		newServeCmd(),
		newVersionCmd(),
	)

	return root
}

// newRepository builds the property repository from the resolved
// store settings.
func newRepository() (*property.Repository, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.StoreURL == "" {
		return nil, fmt.Errorf("store URL is not configured (set PV_STORE_URL or store_url in %s)", path)
	}

	client, err := store.NewClient(cfg.StoreURL, cfg.StoreKey)
	if err != nil {
		return nil, err
	}
	return property.NewRepository(client), nil
}

// loadSession reads the stored identity, a zero session when absent.
func loadSession() (session.Session, error) {
	path, err := session.DefaultPath()
	if err != nil {
		return session.Session{}, err
	}
	return session.Load(path)
}

// requireSession returns the stored identity or an error directing the
// user to log in.
func requireSession() (session.Session, error) {
	sess, err := loadSession()
	if err != nil {
		return session.Session{}, err
	}
	if !sess.Active() {
		return session.Session{}, fmt.Errorf("not logged in: run 'pv login' first")
	}
	return sess, nil
}

// openSelection rehydrates the persisted comparison selection.
func openSelection(bus *notify.Bus) (*comparison.Selection, error) {
	path, err := comparison.DefaultPath()
	if err != nil {
		return nil, err
	}
	return comparison.Load(path, bus), nil
}

// drainNotices prints notices published while the command ran.
func drainNotices(ch <-chan notify.Event) {
	for {
		select {
		case e := <-ch:
			fmt.Println(e.Message)
		default:
			return
		}
	}
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
