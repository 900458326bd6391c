package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"propview/internal/comparison"
	"propview/internal/property"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPropertySummary prints a single property in text format.
func printPropertySummary(p *property.Property) {
	fmt.Printf("Property %s\n", p.ID)
	fmt.Printf("  Title:     %s\n", p.Title)
	fmt.Printf("  Location:  %s\n", p.Location)
	fmt.Printf("  Price:     %s\n", property.FormatPrice(p.Price))
	if p.Area != nil {
		fmt.Printf("  Area:      %g sqft\n", *p.Area)
	}
	if p.Bedroom != nil {
		fmt.Printf("  Bedrooms:  %d\n", *p.Bedroom)
	}
	if p.Bathroom != nil {
		fmt.Printf("  Bathrooms: %d\n", *p.Bathroom)
	}
	if p.Description != "" {
		fmt.Printf("  About:     %s\n", p.Description)
	}
	if p.ImageURL != "" {
		fmt.Printf("  Image:     %s\n", p.ImageURL)
	}
	if p.Contact != "" {
		fmt.Printf("  Contact:   %s\n", p.Contact)
	}
	if !p.CreatedAt.IsZero() {
		fmt.Printf("  Listed:    %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// printPropertyTable prints a list of properties as a formatted table.
func printPropertyTable(props []*property.Property) error {
	if len(props) == 0 {
		fmt.Println("No properties found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tTITLE\tLOCATION\tPRICE\tBED\tBATH\tAREA"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-----\t--------\t-----\t---\t----\t----"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, p := range props {
		bed, bath, area := "-", "-", "-"
		if p.Bedroom != nil {
			bed = fmt.Sprintf("%d", *p.Bedroom)
		}
		if p.Bathroom != nil {
			bath = fmt.Sprintf("%d", *p.Bathroom)
		}
		if p.Area != nil {
			area = fmt.Sprintf("%g", *p.Area)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Title, p.Location, property.FormatPrice(p.Price), bed, bath, area); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	return w.Flush()
}

// fieldLabels maps comparable fields to their display labels.
var fieldLabels = map[comparison.Field]string{
	comparison.FieldPrice:        "Price",
	comparison.FieldPricePerArea: "Price/sqft",
	comparison.FieldArea:         "Area",
	comparison.FieldBedroom:      "Bedrooms",
	comparison.FieldBathroom:     "Bathrooms",
}

// printComparisonTable prints the side-by-side comparison with best
// values marked by a trailing asterisk.
func printComparisonTable(engine *comparison.Engine) error {
	props := engine.Properties()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	header := "FIELD"
	for _, p := range props {
		header += "\t" + p.Title
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}

	row := "Location"
	for _, p := range props {
		row += "\t" + p.Location
	}
	if _, err := fmt.Fprintln(w, row); err != nil {
		return fmt.Errorf("writing table row: %w", err)
	}

	for _, field := range comparison.Fields() {
		row := fieldLabels[field]
		for _, p := range props {
			cell := comparisonCell(p, field)
			if engine.IsBest(p, field) {
				cell += " *"
			}
			row += "\t" + cell
		}
		if _, err := fmt.Fprintln(w, row); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println("\n* best value")
	return nil
}

// comparisonCell renders a property's value for one comparable field.
func comparisonCell(p *property.Property, field comparison.Field) string {
	switch field {
	case comparison.FieldPrice:
		return property.FormatPrice(p.Price)
	case comparison.FieldPricePerArea:
		if p.Area == nil || *p.Area <= 0 {
			return "-"
		}
		return property.FormatPrice(int64(math.Round(float64(p.Price) / *p.Area)))
	case comparison.FieldArea:
		if p.Area == nil {
			return "-"
		}
		return fmt.Sprintf("%g sqft", *p.Area)
	case comparison.FieldBedroom:
		return fmt.Sprintf("%d", p.Bedrooms())
	case comparison.FieldBathroom:
		return fmt.Sprintf("%d", p.Bathrooms())
	}
	return "-"
}
