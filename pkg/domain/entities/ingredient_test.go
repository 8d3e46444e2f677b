package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestIngredient_Validation(t *testing.T) {
	valid, err := NewIngredient("ing_1", "Onion", "ONI", "kg", decimal.NewFromInt(3000), decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("Expected valid ingredient creation to succeed: %v", err)
	}
	if valid.Name != "Onion" {
		t.Errorf("Expected name Onion, got %s", valid.Name)
	}

	testCases := []struct {
		name          string
		id            IngredientID
		ingName       string
		price         decimal.Decimal
		packageAmount decimal.Decimal
	}{
		{"empty id", "", "Onion", decimal.NewFromInt(100), decimal.NewFromInt(1)},
		{"empty name", "ing_1", "", decimal.NewFromInt(100), decimal.NewFromInt(1)},
		{"negative price", "ing_1", "Onion", decimal.NewFromInt(-1), decimal.NewFromInt(1)},
		{"negative package amount", "ing_1", "Onion", decimal.NewFromInt(100), decimal.NewFromInt(-1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewIngredient(tc.id, tc.ingName, "", "kg", tc.price, tc.packageAmount)
			if err == nil {
				t.Errorf("Expected validation error")
			}
		})
	}
}

func TestIngredient_UnitPrice(t *testing.T) {
	ingredient := &Ingredient{
		ID:            "ing_1",
		Name:          "Onion",
		Price:         decimal.NewFromInt(3000),
		PackageAmount: decimal.NewFromInt(10),
	}

	unitPrice, ok := ingredient.UnitPrice()
	if !ok {
		t.Fatalf("Expected unit price to be available")
	}
	if !unitPrice.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected unit price 300, got %s", unitPrice)
	}
}

func TestIngredient_UnitPriceUnavailable(t *testing.T) {
	// A zero package amount makes the price-per-unit ratio undefined. The
	// caller must get an explicit unavailable signal, never a zero price.
	ingredient := &Ingredient{
		ID:    "ing_1",
		Name:  "Onion",
		Price: decimal.NewFromInt(3000),
	}

	if _, ok := ingredient.UnitPrice(); ok {
		t.Errorf("Expected unit price to be unavailable for zero package amount")
	}
}
