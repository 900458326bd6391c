package comparison

import (
	"errors"
	"math"

	"propview/internal/property"
)

// Field is a comparable property attribute.
type Field string

const (
	FieldPrice        Field = "price"
	FieldPricePerArea Field = "price_per_area"
	FieldArea         Field = "area"
	FieldBedroom      Field = "bedroom"
	FieldBathroom     Field = "bathroom"
)

// Fields lists the comparable fields in display order. Title,
// location, image, description, and contact are never compared.
func Fields() []Field {
	return []Field{FieldPrice, FieldPricePerArea, FieldArea, FieldBedroom, FieldBathroom}
}

// ErrTooFew is returned when fewer than 2 properties are given; the
// caller should prompt for more selections instead of comparing.
var ErrTooFew = errors.New("comparison needs at least 2 properties")

// ErrTooMany is returned when more than MaxProperties are given.
var ErrTooMany = errors.New("comparison accepts at most 3 properties")

// Derived price-per-area values carry division noise, so best-value
// matching uses an absolute tolerance of one currency unit.
const pricePerAreaTolerance = 1.0

// Engine computes per-field best values across the selected
// properties. Each field is evaluated independently; ties mark every
// property achieving the extremum.
type Engine struct {
	props []*property.Property
}

// NewEngine creates an engine over exactly 2 or 3 properties.
func NewEngine(props []*property.Property) (*Engine, error) {
	if len(props) < 2 {
		return nil, ErrTooFew
	}
	if len(props) > MaxProperties {
		return nil, ErrTooMany
	}
	return &Engine{props: props}, nil
}

// Properties returns the compared properties in their given order.
func (e *Engine) Properties() []*property.Property {
	return e.props
}

// BestValue returns the extremum for f across the compared properties:
// the minimum for price and price-per-area, the maximum otherwise.
func (e *Engine) BestValue(f Field) float64 {
	best := fieldValue(e.props[0], f)
	for _, p := range e.props[1:] {
		v := fieldValue(p, f)
		if lowerIsBetter(f) {
			best = math.Min(best, v)
		} else {
			best = math.Max(best, v)
		}
	}
	return best
}

// IsBest reports whether p achieves the best value for f. Fields
// outside the comparable set are never best.
func (e *Engine) IsBest(p *property.Property, f Field) bool {
	if !isComparable(f) {
		return false
	}

	best := e.BestValue(f)
	v := fieldValue(p, f)

	if f == FieldPricePerArea {
		// An undefined ratio (missing area) never wins, even when
		// every property is missing it.
		return math.Abs(v-best) < pricePerAreaTolerance
	}
	return v == best
}

// fieldValue extracts the comparison value for f. Missing values
// resolve so they can never win: +Inf where lower is better, 0 where
// higher is better.
func fieldValue(p *property.Property, f Field) float64 {
	switch f {
	case FieldPrice:
		return float64(p.Price)
	case FieldPricePerArea:
		if p.Area == nil || *p.Area <= 0 {
			return math.Inf(1)
		}
		return float64(p.Price) / *p.Area
	case FieldArea:
		return p.AreaSqft()
	case FieldBedroom:
		return float64(p.Bedrooms())
	case FieldBathroom:
		return float64(p.Bathrooms())
	}
	return 0
}

func lowerIsBetter(f Field) bool {
	return f == FieldPrice || f == FieldPricePerArea
}

func isComparable(f Field) bool {
	switch f {
	case FieldPrice, FieldPricePerArea, FieldArea, FieldBedroom, FieldBathroom:
		return true
	}
	return false
}
