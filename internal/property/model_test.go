package property

import (
	"errors"
	"testing"
)

func int64p(v int64) *int64       { return &v }
func float64p(v float64) *float64 { return &v }

func TestValidate(t *testing.T) {
	valid := Draft{Title: "Flat", Location: "Town", Price: int64p(100)}

	tests := []struct {
		name      string
		mutate    func(*Draft)
		wantField string
	}{
		{"valid", func(d *Draft) {}, ""},
		{"zero price ok", func(d *Draft) { d.Price = int64p(0) }, ""},
		{"missing title", func(d *Draft) { d.Title = "" }, "title"},
		{"blank title", func(d *Draft) { d.Title = "   " }, "title"},
		{"missing location", func(d *Draft) { d.Location = "" }, "location"},
		{"missing price", func(d *Draft) { d.Price = nil }, "price"},
		{"negative price", func(d *Draft) { d.Price = int64p(-1) }, "price"},
		{"negative bedroom", func(d *Draft) { d.Bedroom = int64p(-2) }, "bedroom"},
		{"negative bathroom", func(d *Draft) { d.Bathroom = int64p(-1) }, "bathroom"},
		{"negative area", func(d *Draft) { d.Area = float64p(-10) }, "area"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			err := d.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if validationErr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", validationErr.Field, tt.wantField)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	p := &Property{}
	if p.Bedrooms() != 0 || p.Bathrooms() != 0 || p.AreaSqft() != 0 {
		t.Error("absent optional fields must default to 0")
	}

	p.Bedroom = int64p(3)
	p.Area = float64p(1200.5)
	if p.Bedrooms() != 3 {
		t.Errorf("bedrooms = %d, want 3", p.Bedrooms())
	}
	if p.AreaSqft() != 1200.5 {
		t.Errorf("area = %g, want 1200.5", p.AreaSqft())
	}
}

func TestReorderByIDs(t *testing.T) {
	a := &Property{ID: "a"}
	b := &Property{ID: "b"}
	c := &Property{ID: "c"}

	got := ReorderByIDs([]string{"c", "missing", "a", "b"}, []*Property{a, b, c})

	if len(got) != 3 {
		t.Fatalf("got %d properties, want 3", len(got))
	}
	if got[0] != c || got[1] != a || got[2] != b {
		t.Errorf("order = %s, %s, %s; want c, a, b", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestReorderByIDsEmpty(t *testing.T) {
	if got := ReorderByIDs(nil, []*Property{{ID: "a"}}); len(got) != 0 {
		t.Errorf("got %d properties, want 0", len(got))
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{4500000, "4,500,000"},
		{-12345, "-12,345"},
	}

	for _, tt := range tests {
		if got := FormatPrice(tt.in); got != tt.want {
			t.Errorf("FormatPrice(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
