package comparison

import (
	"errors"
	"testing"

	"propview/internal/property"
)

func prop(id string, price int64, area float64) *property.Property {
	p := &property.Property{ID: id, Title: id, Location: "Town", Price: price}
	if area > 0 {
		p.Area = &area
	}
	return p
}

func TestNewEngineSize(t *testing.T) {
	a, b, c := prop("a", 1, 0), prop("b", 2, 0), prop("c", 3, 0)

	if _, err := NewEngine([]*property.Property{a}); !errors.Is(err, ErrTooFew) {
		t.Errorf("one property: err = %v, want ErrTooFew", err)
	}
	if _, err := NewEngine(nil); !errors.Is(err, ErrTooFew) {
		t.Errorf("no properties: err = %v, want ErrTooFew", err)
	}
	if _, err := NewEngine([]*property.Property{a, b, c, prop("d", 4, 0)}); !errors.Is(err, ErrTooMany) {
		t.Errorf("four properties: err = %v, want ErrTooMany", err)
	}
	if _, err := NewEngine([]*property.Property{a, b}); err != nil {
		t.Errorf("two properties: unexpected error %v", err)
	}
}

// The worked example: A(5,000,000 / 1000 sqft), B(4,500,000 / 900 sqft),
// C(4,500,000 / 1200 sqft).
func TestBestValues(t *testing.T) {
	a := prop("a", 5000000, 1000)
	b := prop("b", 4500000, 900)
	c := prop("c", 4500000, 1200)

	engine, err := NewEngine([]*property.Property{a, b, c})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	// Best price: B and C tie at 4,500,000.
	if engine.IsBest(a, FieldPrice) {
		t.Error("a must not be best price")
	}
	if !engine.IsBest(b, FieldPrice) || !engine.IsBest(c, FieldPrice) {
		t.Error("b and c tie for best price; both must be marked")
	}

	// Best area: C alone at 1200.
	if engine.IsBest(a, FieldArea) || engine.IsBest(b, FieldArea) {
		t.Error("only c has the best area")
	}
	if !engine.IsBest(c, FieldArea) {
		t.Error("c must be best area")
	}

	// Price per sqft: A=5000, B=5000, C=3750. C alone wins.
	if engine.IsBest(a, FieldPricePerArea) || engine.IsBest(b, FieldPricePerArea) {
		t.Error("only c has the best price per area")
	}
	if !engine.IsBest(c, FieldPricePerArea) {
		t.Error("c must be best price per area")
	}
	if got := engine.BestValue(FieldPricePerArea); got != 3750 {
		t.Errorf("best price per area = %g, want 3750", got)
	}
}

func TestPricePerAreaTolerance(t *testing.T) {
	// a: 900,000/300 = 3000. b: 1,199,800/400.1 ≈ 2998.75.
	// a sits about 1.25 above the minimum, outside the 1-unit tolerance.
	a := prop("a", 900000, 300)
	b := prop("b", 1199800, 400.1)

	engine, err := NewEngine([]*property.Property{a, b})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	if !engine.IsBest(b, FieldPricePerArea) {
		t.Error("b holds the minimum and must be best")
	}
	if engine.IsBest(a, FieldPricePerArea) {
		t.Error("a is outside the tolerance and must not be best")
	}
}

func TestMissingAreaNeverBestRatio(t *testing.T) {
	a := prop("a", 100, 0) // no area: ratio undefined
	b := prop("b", 200, 50)

	engine, err := NewEngine([]*property.Property{a, b})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	if engine.IsBest(a, FieldPricePerArea) {
		t.Error("missing area must never win price per area")
	}
	if !engine.IsBest(b, FieldPricePerArea) {
		t.Error("b has the only defined ratio and must be best")
	}

	// Missing area counts as 0 for the area field itself.
	if engine.IsBest(a, FieldArea) {
		t.Error("missing area must not win the area field")
	}
	if !engine.IsBest(b, FieldArea) {
		t.Error("b must be best area")
	}
}

func TestAllRatiosUndefined(t *testing.T) {
	a := prop("a", 100, 0)
	b := prop("b", 200, 0)

	engine, err := NewEngine([]*property.Property{a, b})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	if engine.IsBest(a, FieldPricePerArea) || engine.IsBest(b, FieldPricePerArea) {
		t.Error("nobody wins price per area when every ratio is undefined")
	}
}

func TestCountFields(t *testing.T) {
	bed2, bed3 := int64(2), int64(3)
	bath1 := int64(1)

	a := prop("a", 100, 0)
	a.Bedroom = &bed3
	b := prop("b", 200, 0)
	b.Bedroom = &bed2
	b.Bathroom = &bath1
	c := prop("c", 300, 0)
	c.Bedroom = &bed3

	engine, err := NewEngine([]*property.Property{a, b, c})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	if !engine.IsBest(a, FieldBedroom) || !engine.IsBest(c, FieldBedroom) {
		t.Error("a and c tie for bedrooms; both must be marked")
	}
	if engine.IsBest(b, FieldBedroom) {
		t.Error("b must not be best bedrooms")
	}

	// b is the only property with any bathrooms.
	if !engine.IsBest(b, FieldBathroom) {
		t.Error("b must be best bathrooms")
	}
	if engine.IsBest(a, FieldBathroom) || engine.IsBest(c, FieldBathroom) {
		t.Error("missing bathroom counts as 0 and must not win")
	}
}

func TestNonComparableField(t *testing.T) {
	a, b := prop("a", 100, 0), prop("b", 200, 0)
	engine, err := NewEngine([]*property.Property{a, b})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	if engine.IsBest(a, Field("title")) || engine.IsBest(a, Field("contact")) {
		t.Error("fields outside the comparable set must never be best")
	}
}
