package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// IngredientID uniquely identifies an ingredient
type IngredientID string

// Ingredient represents an ingredient master record. Price is the package
// price; PackageAmount is the quantity one package holds in Unit.
type Ingredient struct {
	ID            IngredientID    `json:"id"`
	Name          string          `json:"name"`
	CodeName      string          `json:"code_name,omitempty"`
	Unit          string          `json:"unit"`
	Price         decimal.Decimal `json:"price"`
	PackageAmount decimal.Decimal `json:"package_amount"`
}

// NewIngredient creates a validated Ingredient
func NewIngredient(
	id IngredientID,
	name string,
	codeName string,
	unit string,
	price decimal.Decimal,
	packageAmount decimal.Decimal,
) (*Ingredient, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("ingredient id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("ingredient name cannot be empty")
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative, got %s", price)
	}
	if packageAmount.IsNegative() {
		return nil, fmt.Errorf("package amount cannot be negative, got %s", packageAmount)
	}

	return &Ingredient{
		ID:            id,
		Name:          name,
		CodeName:      codeName,
		Unit:          unit,
		Price:         price,
		PackageAmount: packageAmount,
	}, nil
}

// UnitPrice returns price per unit (price / packageAmount). The second return
// is false when PackageAmount is zero or missing; callers must treat the
// price as unavailable rather than zero.
func (i *Ingredient) UnitPrice() (decimal.Decimal, bool) {
	if i.PackageAmount.IsZero() || i.PackageAmount.IsNegative() {
		return decimal.Zero, false
	}
	return i.Price.Div(i.PackageAmount), true
}
