package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuPortion is the aggregated serving record for one menu in one container
// (or no container) at one meal time. Headcounts are summed across meal
// plans; SourceMealPlanIDs is the de-duplicated set of contributing plans.
type MenuPortion struct {
	MenuID            MenuID        `json:"menu_id"`
	MenuName          string        `json:"menu_name"`
	Container         *ContainerRef `json:"container,omitempty"`
	MealTime          MealTime      `json:"meal_time"`
	Headcount         int64         `json:"headcount"`
	SourceMealPlanIDs []MealPlanID  `json:"source_meal_plan_ids"`

	// MissingRecipe marks a portion whose menu-container combination has no
	// registered recipe; it contributes no ingredients but stays visible.
	MissingRecipe bool `json:"missing_recipe,omitempty"`
	// DetailUnavailable marks a portion whose recipe detail fetch failed.
	DetailUnavailable bool `json:"detail_unavailable,omitempty"`
}

// ContainerSplit is the per-container headcount breakdown inside a
// name-level menu group.
type ContainerSplit struct {
	ContainerName string `json:"container_name"`
	Headcount     int64  `json:"headcount"`
}

// MenuGroup collapses menu portions that share a menu name across container
// combinations, as used by the print/export view. Headcount is the sum over
// all splits: a diner served the same menu from two containers received two
// physical servings and is counted twice here.
type MenuGroup struct {
	MenuName    string           `json:"menu_name"`
	Headcount   int64            `json:"headcount"`
	Splits      []ContainerSplit `json:"splits"`
	Ingredients []RecipeLine     `json:"ingredients"`
}

// IngredientRequirement is the aggregated raw-material demand and projected
// cost for one ingredient across a day's cooking plan. When PriceAvailable is
// false the unit price could not be derived (missing master or zero package
// amount) and UnitPrice/TotalPrice/UnitsToOrder must be excluded from sums.
type IngredientRequirement struct {
	IngredientID   IngredientID    `json:"ingredient_id"`
	Name           string          `json:"name"`
	CodeName       string          `json:"code_name,omitempty"`
	Unit           string          `json:"unit"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PackageAmount  decimal.Decimal `json:"package_amount"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	UnitsToOrder   decimal.Decimal `json:"units_to_order"`
	PriceAvailable bool            `json:"price_available"`
}

// ContainerRequirement is the physical-unit demand for one container across a
// day. NeededQuantity counts the plan headcount once per plan that uses the
// container, regardless of how many menus in that plan reuse it.
type ContainerRequirement struct {
	ContainerID    ContainerID     `json:"container_id"`
	Name           string          `json:"name"`
	Code           string          `json:"code,omitempty"`
	NeededQuantity int64           `json:"needed_quantity"`
	Price          decimal.Decimal `json:"price"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Priced         bool            `json:"priced"`
	CurrentStock   *int64          `json:"current_stock,omitempty"`
	StockUpdatedAt *time.Time      `json:"stock_updated_at,omitempty"`
}

// CookingPlan is the aggregate output for one date. It is constructed fresh
// on every read and never mutated in place; any edit to the source meal plans
// triggers a full recompute.
type CookingPlan struct {
	Date                   time.Time               `json:"date"`
	MealPortions           []MealPortion           `json:"meal_portions"`
	MealPlans              []*MealPlan             `json:"meal_plans"`
	MenuPortions           []MenuPortion           `json:"menu_portions"`
	IngredientRequirements []IngredientRequirement `json:"ingredient_requirements"`
	ContainerRequirements  []ContainerRequirement  `json:"container_requirements"`
}
