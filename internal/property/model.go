// Package property provides the property domain model and data access.
package property

import (
	"fmt"
	"strings"
	"time"
)

// Property represents a listing held in the remote store. The store
// assigns ID and CreatedAt on insert; both are immutable afterwards.
// CreatedAt is the sole ordering key for listings (newest first).
type Property struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Price       int64     `json:"price"`
	Description string    `json:"description,omitempty"`
	Bedroom     *int64    `json:"bedroom,omitempty"`
	Bathroom    *int64    `json:"bathroom,omitempty"`
	Area        *float64  `json:"area,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Contact     string    `json:"contact,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Bedrooms returns the bedroom count, defaulting to 0 when absent.
func (p *Property) Bedrooms() int64 {
	if p.Bedroom == nil {
		return 0
	}
	return *p.Bedroom
}

// Bathrooms returns the bathroom count, defaulting to 0 when absent.
func (p *Property) Bathrooms() int64 {
	if p.Bathroom == nil {
		return 0
	}
	return *p.Bathroom
}

// AreaSqft returns the area in square feet, defaulting to 0 when absent.
func (p *Property) AreaSqft() float64 {
	if p.Area == nil {
		return 0
	}
	return *p.Area
}

// Draft holds caller-supplied fields for creating or patching a
// property. Nil and empty fields are omitted from the request, which
// makes a Draft usable as a partial update.
type Draft struct {
	Title       string   `json:"title,omitempty"`
	Location    string   `json:"location,omitempty"`
	Price       *int64   `json:"price,omitempty"`
	Description string   `json:"description,omitempty"`
	Bedroom     *int64   `json:"bedroom,omitempty"`
	Bathroom    *int64   `json:"bathroom,omitempty"`
	Area        *float64 `json:"area,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Contact     string   `json:"contact,omitempty"`
}

// Validate checks a draft before creation. The store also rejects rows
// missing required columns, but validating here keeps the round trip
// and the raw service message out of the common path.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if strings.TrimSpace(d.Location) == "" {
		return &ValidationError{Field: "location", Reason: "is required"}
	}
	if d.Price == nil {
		return &ValidationError{Field: "price", Reason: "is required"}
	}
	if *d.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if d.Bedroom != nil && *d.Bedroom < 0 {
		return &ValidationError{Field: "bedroom", Reason: "must not be negative"}
	}
	if d.Bathroom != nil && *d.Bathroom < 0 {
		return &ValidationError{Field: "bathroom", Reason: "must not be negative"}
	}
	if d.Area != nil && *d.Area < 0 {
		return &ValidationError{Field: "area", Reason: "must not be negative"}
	}
	return nil
}

// ReorderByIDs returns props re-ordered to match the requested ids.
// Ids with no matching property are dropped silently; the comparison
// view compares whatever was found.
func ReorderByIDs(ids []string, props []*Property) []*Property {
	byID := make(map[string]*Property, len(props))
	for _, p := range props {
		byID[p.ID] = p
	}

	ordered := make([]*Property, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

// FormatPrice renders a price with thousands separators.
func FormatPrice(price int64) string {
	s := fmt.Sprintf("%d", price)
	var neg string
	if strings.HasPrefix(s, "-") {
		neg, s = "-", s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return neg + strings.Join(parts, ",")
}
