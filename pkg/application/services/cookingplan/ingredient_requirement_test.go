package cookingplan

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
	"github.com/kaimen83/lunchlab/pkg/infrastructure/repositories/memory"
)

// brokenIngredientRepo fails every master read with a non-NotFound error
type brokenIngredientRepo struct{}

func (brokenIngredientRepo) GetIngredient(ctx context.Context, id entities.IngredientID) (*entities.Ingredient, error) {
	return nil, errors.New("database connection reset")
}

func ingredientRepo(t *testing.T, ingredients ...*entities.Ingredient) *memory.IngredientRepository {
	t.Helper()
	repo := memory.NewIngredientRepository()
	for _, ingredient := range ingredients {
		repo.AddIngredient(*ingredient)
	}
	return repo
}

func mustIngredient(t *testing.T, id entities.IngredientID, name, unit, price, packageAmount string) *entities.Ingredient {
	t.Helper()
	ingredient, err := entities.NewIngredient(id, name, "", unit, dec(t, price), dec(t, packageAmount))
	if err != nil {
		t.Fatalf("failed to build ingredient %s: %v", id, err)
	}
	return ingredient
}

func TestAggregateIngredients_AmountTimesHeadcount(t *testing.T) {
	plans := []*entities.MealPlan{
		plan(t, "mp_a", entities.Lunch, 50, sel("menu_1", "Bulgogi", ref("cont_1", "Tray L"))),
	}
	portions := AggregateMenuPortions(ExpandPortions(plans))

	recipes := NewRecipeSet()
	recipes.Put(recipe("menu_1", "cont_1", decimal.Zero, line("ing_beef", "Beef", "0.2")))

	repo := ingredientRepo(t, mustIngredient(t, "ing_beef", "Beef", "kg", "30000", "5"))

	requirements := AggregateIngredients(context.Background(), portions, recipes, repo, nil)
	if len(requirements) != 1 {
		t.Fatalf("Expected 1 requirement, got %d", len(requirements))
	}

	req := requirements[0]
	if !req.TotalAmount.Equal(dec(t, "10")) {
		t.Errorf("Expected total amount 10 (0.2 x 50), got %s", req.TotalAmount)
	}
	if !req.PriceAvailable {
		t.Fatalf("Expected price to be available")
	}
	if !req.UnitPrice.Equal(dec(t, "6000")) {
		t.Errorf("Expected unit price 6000, got %s", req.UnitPrice)
	}
	if !req.TotalPrice.Equal(dec(t, "60000")) {
		t.Errorf("Expected total price 60000, got %s", req.TotalPrice)
	}
	if !req.UnitsToOrder.Equal(dec(t, "2")) {
		t.Errorf("Expected 2 packages to order, got %s", req.UnitsToOrder)
	}
}

func TestAggregateIngredients_CountsOncePerContainerBatch(t *testing.T) {
	// One plan serving the same menu from two containers cooks two batches,
	// so the ingredient demand doubles. This is deliberately asymmetric with
	// container requirements, which count the plan once.
	plans := []*entities.MealPlan{
		plan(t, "mp_a", entities.Lunch, 50,
			sel("menu_1", "Bulgogi", ref("cont_1", "Tray L")),
			sel("menu_1", "Bulgogi", ref("cont_2", "Tray S")),
		),
	}
	portions := AggregateMenuPortions(ExpandPortions(plans))

	recipes := NewRecipeSet()
	recipes.Put(recipe("menu_1", "cont_1", decimal.Zero, line("ing_beef", "Beef", "0.2")))
	recipes.Put(recipe("menu_1", "cont_2", decimal.Zero, line("ing_beef", "Beef", "0.2")))

	repo := ingredientRepo(t, mustIngredient(t, "ing_beef", "Beef", "kg", "30000", "5"))

	requirements := AggregateIngredients(context.Background(), portions, recipes, repo, nil)
	if len(requirements) != 1 {
		t.Fatalf("Expected 1 requirement, got %d", len(requirements))
	}
	if !requirements[0].TotalAmount.Equal(dec(t, "20")) {
		t.Errorf("Expected total amount 20 (two batches of 0.2 x 50), got %s", requirements[0].TotalAmount)
	}
}

func TestAggregateIngredients_MissingRecipeFlagsPortion(t *testing.T) {
	plans := []*entities.MealPlan{
		plan(t, "mp_a", entities.Lunch, 50, sel("menu_1", "Bulgogi", ref("cont_1", "Tray L"))),
	}
	portions := AggregateMenuPortions(ExpandPortions(plans))

	requirements := AggregateIngredients(context.Background(), portions, NewRecipeSet(), ingredientRepo(t), nil)
	if len(requirements) != 0 {
		t.Errorf("Expected no requirements, got %d", len(requirements))
	}
	if !portions[0].MissingRecipe {
		t.Errorf("Expected portion to be flagged MissingRecipe")
	}
	if portions[0].DetailUnavailable {
		t.Errorf("Expected DetailUnavailable to stay false")
	}
}

func TestAggregateIngredients_FailedFetchFlagsPortion(t *testing.T) {
	plans := []*entities.MealPlan{
		plan(t, "mp_a", entities.Lunch, 50, sel("menu_1", "Bulgogi", ref("cont_1", "Tray L"))),
		plan(t, "mp_b", entities.Lunch, 30, sel("menu_2", "Soup", ref("cont_2", "Bowl"))),
	}
	portions := AggregateMenuPortions(ExpandPortions(plans))

	recipes := NewRecipeSet()
	recipes.MarkFailed("menu_1", "cont_1")
	recipes.Put(recipe("menu_2", "cont_2", decimal.Zero, line("ing_leek", "Leek", "0.1")))

	repo := ingredientRepo(t, mustIngredient(t, "ing_leek", "Leek", "kg", "1000", "2"))

	requirements := AggregateIngredients(context.Background(), portions, recipes, repo, nil)
	// The failed combination degrades alone; the healthy one still aggregates.
	if len(requirements) != 1 {
		t.Fatalf("Expected 1 requirement from the healthy portion, got %d", len(requirements))
	}

	var failed *entities.MenuPortion
	for i := range portions {
		if portions[i].MenuID == "menu_1" {
			failed = &portions[i]
		}
	}
	if failed == nil || !failed.DetailUnavailable {
		t.Errorf("Expected the failed portion to be flagged DetailUnavailable")
	}
}

func TestAggregateIngredients_DeletedMasterDegradesRow(t *testing.T) {
	plans := []*entities.MealPlan{
		plan(t, "mp_a", entities.Lunch, 50, sel("menu_1", "Bulgogi", ref("cont_1", "Tray L"))),
	}
	portions := AggregateMenuPortions(ExpandPortions(plans))

	recipes := NewRecipeSet()
	recipes.Put(recipe("menu_1", "cont_1", decimal.Zero, line("ing_gone", "Old Beef", "0.2")))

	requirements := AggregateIngredients(context.Background(), portions, recipes, ingredientRepo(t), nil)
	if len(requirements) != 1 {
		t.Fatalf("Expected the row to survive, got %d requirements", len(requirements))
	}

	req := requirements[0]
	if req.Name != "Old Beef" {
		t.Errorf("Expected last-known name Old Beef, got %q", req.Name)
	}
	if req.PriceAvailable {
		t.Errorf("Expected price to be unavailable for a deleted master")
	}
	if !req.TotalAmount.Equal(dec(t, "10")) {
		t.Errorf("Expected total amount 10, got %s", req.TotalAmount)
	}
}

func TestAggregateIngredients_MasterReadFailureDegradesRow(t *testing.T) {
	// An unreachable ingredient master degrades the one row exactly like a
	// deleted master; it never aborts the aggregation.
	plans := []*entities.MealPlan{
		plan(t, "mp_a", entities.Lunch, 50, sel("menu_1", "Bulgogi", ref("cont_1", "Tray L"))),
	}
	portions := AggregateMenuPortions(ExpandPortions(plans))

	recipes := NewRecipeSet()
	recipes.Put(recipe("menu_1", "cont_1", decimal.Zero, line("ing_beef", "Beef", "0.2")))

	requirements := AggregateIngredients(context.Background(), portions, recipes, brokenIngredientRepo{}, nil)
	if len(requirements) != 1 {
		t.Fatalf("Expected the row to survive the read failure, got %d requirements", len(requirements))
	}

	req := requirements[0]
	if req.Name != "Beef" {
		t.Errorf("Expected last-known name Beef, got %q", req.Name)
	}
	if req.PriceAvailable {
		t.Errorf("Expected price unavailable when the master cannot be read")
	}
	if !req.TotalAmount.Equal(dec(t, "10")) {
		t.Errorf("Expected total amount 10, got %s", req.TotalAmount)
	}
}

func TestAggregateIngredients_ZeroPackageAmountUnpriced(t *testing.T) {
	plans := []*entities.MealPlan{
		plan(t, "mp_a", entities.Lunch, 10, sel("menu_1", "Bulgogi", ref("cont_1", "Tray L"))),
	}
	portions := AggregateMenuPortions(ExpandPortions(plans))

	recipes := NewRecipeSet()
	recipes.Put(recipe("menu_1", "cont_1", decimal.Zero, line("ing_salt", "Salt", "0.01")))

	repo := ingredientRepo(t, mustIngredient(t, "ing_salt", "Salt", "kg", "500", "0"))

	requirements := AggregateIngredients(context.Background(), portions, recipes, repo, nil)
	req := requirements[0]
	if req.PriceAvailable {
		t.Errorf("Expected price unavailable when package amount is zero")
	}
	if !req.UnitPrice.IsZero() || !req.TotalPrice.IsZero() {
		t.Errorf("Expected derived prices to stay zero-valued, got %s / %s", req.UnitPrice, req.TotalPrice)
	}
}
