package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MenuID uniquely identifies a menu
type MenuID string

// Menu represents a menu master record
type Menu struct {
	ID   MenuID `json:"id"`
	Name string `json:"name"`
}

// RecipeLine is one ingredient entry of a menu-container recipe. Name is
// denormalized so a historical recipe still renders after the ingredient
// master is deleted.
type RecipeLine struct {
	IngredientID IngredientID    `json:"ingredient_id"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"` // per serving
}

// MenuContainer is the menu-container join record: the recipe for one menu
// cooked and portioned into one container, plus an optional pre-computed
// ingredient cost. A zero or negative IngredientsCost means "not set".
type MenuContainer struct {
	MenuID          MenuID          `json:"menu_id"`
	ContainerID     ContainerID     `json:"container_id"`
	IngredientsCost decimal.Decimal `json:"ingredients_cost"`
	Ingredients     []RecipeLine    `json:"ingredients"`
}

// NewMenuContainer creates a validated MenuContainer
func NewMenuContainer(
	menuID MenuID,
	containerID ContainerID,
	ingredientsCost decimal.Decimal,
	ingredients []RecipeLine,
) (*MenuContainer, error) {
	if string(menuID) == "" {
		return nil, fmt.Errorf("menu id cannot be empty")
	}
	if string(containerID) == "" {
		return nil, fmt.Errorf("container id cannot be empty")
	}
	for i, line := range ingredients {
		if string(line.IngredientID) == "" {
			return nil, fmt.Errorf("recipe line %d: ingredient id cannot be empty", i)
		}
		if line.Amount.IsNegative() {
			return nil, fmt.Errorf("recipe line %d: amount cannot be negative, got %s", i, line.Amount)
		}
	}

	return &MenuContainer{
		MenuID:          menuID,
		ContainerID:     containerID,
		IngredientsCost: ingredientsCost,
		Ingredients:     ingredients,
	}, nil
}

// PriceRecord is one entry of a menu's price history. RecordedAt may be nil
// on legacy rows that were migrated without a timestamp.
type PriceRecord struct {
	MenuID     MenuID          `json:"menu_id"`
	Cost       decimal.Decimal `json:"cost"`
	RecordedAt *time.Time      `json:"recorded_at,omitempty"`
}
