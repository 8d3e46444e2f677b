package cookingplan

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
)

var testDate = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", value, err)
	}
	return d
}

func ref(id entities.ContainerID, name string) *entities.ContainerRef {
	return &entities.ContainerRef{ID: id, Name: name}
}

func sel(menuID entities.MenuID, menuName string, container *entities.ContainerRef) entities.MealPlanSelection {
	return entities.MealPlanSelection{
		MenuID:    menuID,
		MenuName:  menuName,
		Container: container,
	}
}

func plan(
	t *testing.T,
	id entities.MealPlanID,
	mealTime entities.MealTime,
	headcount int64,
	selections ...entities.MealPlanSelection,
) *entities.MealPlan {
	t.Helper()
	p, err := entities.NewMealPlan(id, "comp_1", testDate, mealTime, string(id), headcount, selections)
	if err != nil {
		t.Fatalf("failed to build meal plan %s: %v", id, err)
	}
	return p
}

func recipe(
	menuID entities.MenuID,
	containerID entities.ContainerID,
	cost decimal.Decimal,
	lines ...entities.RecipeLine,
) *entities.MenuContainer {
	return &entities.MenuContainer{
		MenuID:          menuID,
		ContainerID:     containerID,
		IngredientsCost: cost,
		Ingredients:     lines,
	}
}

func line(id entities.IngredientID, name, amount string) entities.RecipeLine {
	d, _ := decimal.NewFromString(amount)
	return entities.RecipeLine{IngredientID: id, Name: name, Amount: d}
}
