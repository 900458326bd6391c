package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"propview/internal/comparison"
	"propview/internal/notify"
	"propview/internal/property"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Manage and view the comparison selection",
		Long:  "Select up to three properties and compare them side by side. The selection persists between commands.",
	}

	cmd.AddCommand(
		newCompareAddCmd(),
		newCompareRemoveCmd(),
		newCompareClearCmd(),
		newCompareListCmd(),
		newCompareShowCmd(),
	)

	return cmd
}

func newCompareAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <id>",
		Short: "Add a property to the comparison selection",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompareAdd,
	}
}

func runCompareAdd(cmd *cobra.Command, args []string) error {
	repo, err := newRepository()
	if err != nil {
		return err
	}

	p, err := repo.GetByID(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	bus := notify.NewBus()
	notices := bus.Subscribe()
	sel, err := openSelection(bus)
	if err != nil {
		return err
	}

	outcome, err := sel.Add(p)
	if err != nil {
		return err
	}

	switch outcome {
	case comparison.AlreadyPresent:
		fmt.Println("This property is already in the comparison list.")
	case comparison.CapacityExceeded:
		fmt.Printf("You can only compare up to %d properties.\n", comparison.MaxProperties)
	}
	drainNotices(notices)
	return nil
}

func newCompareRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a property from the comparison selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := notify.NewBus()
			notices := bus.Subscribe()
			sel, err := openSelection(bus)
			if err != nil {
				return err
			}

			removed, err := sel.Remove(args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Println("That property is not in the comparison list.")
			}
			drainNotices(notices)
			return nil
		},
	}
}

func newCompareClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the comparison selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := notify.NewBus()
			notices := bus.Subscribe()
			sel, err := openSelection(bus)
			if err != nil {
				return err
			}

			if err := sel.Clear(); err != nil {
				return err
			}
			drainNotices(notices)
			return nil
		},
	}
}

func newCompareListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the currently selected properties",
		Long:  "Show the selected snapshots without fetching. Values reflect each property as it was when added.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := openSelection(nil)
			if err != nil {
				return err
			}

			props := sel.Properties()
			if isJSON() {
				return printJSON(props)
			}
			if len(props) == 0 {
				fmt.Println("No properties selected for comparison.")
				return nil
			}
			return printPropertyTable(props)
		},
	}
}

func newCompareShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Compare the selected properties side by side",
		Long:  "Re-fetch the selected properties and compare them. Properties that no longer exist are dropped; at least two must remain.",
		Args:  cobra.NoArgs,
		RunE:  runCompareShow,
	}
}

func runCompareShow(cmd *cobra.Command, args []string) error {
	sel, err := openSelection(nil)
	if err != nil {
		return err
	}

	ids := sel.IDs()
	if len(ids) < 2 {
		fmt.Println("Select at least 2 properties to compare (pv compare add <id>).")
		return nil
	}

	repo, err := newRepository()
	if err != nil {
		return err
	}

	props, err := repo.GetByIDs(cmd.Context(), ids)
	if err != nil {
		return err
	}
	ordered := property.ReorderByIDs(ids, props)

	if len(ordered) < 2 {
		fmt.Println("Fewer than 2 of the selected properties still exist. Add more to compare.")
		return nil
	}

	engine, err := comparison.NewEngine(ordered)
	if err != nil {
		return err
	}

	if isJSON() {
		best := make(map[comparison.Field][]string)
		for _, field := range comparison.Fields() {
			winners := []string{}
			for _, p := range ordered {
				if engine.IsBest(p, field) {
					winners = append(winners, p.ID)
				}
			}
			best[field] = winners
		}
		return printJSON(map[string]interface{}{
			"properties": ordered,
			"best":       best,
		})
	}

	return printComparisonTable(engine)
}
