package cookingplan

import (
	"testing"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
)

func TestAggregateMenuPortions_MergesAcrossPlans(t *testing.T) {
	plans := []*entities.MealPlan{
		plan(t, "mp_a", entities.Lunch, 50, sel("menu_1", "Bulgogi", ref("cont_1", "Tray L"))),
		plan(t, "mp_b", entities.Lunch, 30, sel("menu_1", "Bulgogi", ref("cont_1", "Tray L"))),
	}

	portions := AggregateMenuPortions(ExpandPortions(plans))
	if len(portions) != 1 {
		t.Fatalf("Expected 1 merged portion, got %d", len(portions))
	}
	if portions[0].Headcount != 80 {
		t.Errorf("Expected headcount 80, got %d", portions[0].Headcount)
	}
	if len(portions[0].SourceMealPlanIDs) != 2 {
		t.Errorf("Expected 2 source plans, got %d", len(portions[0].SourceMealPlanIDs))
	}
}

func TestAggregateMenuPortions_PlanCountedOncePerKey(t *testing.T) {
	// Duplicate selections of one (menu, container) pair inside one plan must
	// not double the plan's headcount contribution.
	plans := []*entities.MealPlan{
		plan(t, "mp_a", entities.Lunch, 50,
			sel("menu_1", "Bulgogi", ref("cont_1", "Tray L")),
			sel("menu_1", "Bulgogi", ref("cont_1", "Tray L")),
		),
	}

	portions := AggregateMenuPortions(ExpandPortions(plans))
	if len(portions) != 1 {
		t.Fatalf("Expected 1 portion, got %d", len(portions))
	}
	if portions[0].Headcount != 50 {
		t.Errorf("Expected headcount 50, got %d", portions[0].Headcount)
	}
	if len(portions[0].SourceMealPlanIDs) != 1 {
		t.Errorf("Expected 1 source plan, got %d", len(portions[0].SourceMealPlanIDs))
	}
}

func TestAggregateMenuPortions_SeparatesByMealTimeAndContainer(t *testing.T) {
	plans := []*entities.MealPlan{
		plan(t, "mp_lunch", entities.Lunch, 50, sel("menu_1", "Bulgogi", ref("cont_1", "Tray L"))),
		plan(t, "mp_dinner", entities.Dinner, 20, sel("menu_1", "Bulgogi", ref("cont_1", "Tray L"))),
		plan(t, "mp_other", entities.Lunch, 10, sel("menu_1", "Bulgogi", ref("cont_2", "Tray S"))),
		plan(t, "mp_none", entities.Lunch, 5, sel("menu_1", "Bulgogi", nil)),
	}

	portions := AggregateMenuPortions(ExpandPortions(plans))
	if len(portions) != 4 {
		t.Fatalf("Expected 4 distinct portions, got %d", len(portions))
	}

	var noContainer *entities.MenuPortion
	for i := range portions {
		if portions[i].Container == nil {
			noContainer = &portions[i]
		}
	}
	if noContainer == nil {
		t.Fatalf("Expected a no-container portion group")
	}
	if noContainer.Headcount != 5 {
		t.Errorf("Expected no-container headcount 5, got %d", noContainer.Headcount)
	}
}

func TestAggregateMenuPortions_DeterministicOrder(t *testing.T) {
	build := func(plans []*entities.MealPlan) []entities.MenuPortion {
		return AggregateMenuPortions(ExpandPortions(plans))
	}

	planA := plan(t, "mp_a", entities.Lunch, 50,
		sel("menu_1", "Bulgogi", ref("cont_1", "Tray L")),
		sel("menu_2", "Soup", ref("cont_2", "Bowl")),
	)
	planB := plan(t, "mp_b", entities.Breakfast, 30,
		sel("menu_3", "Rice", ref("cont_1", "Tray L")),
	)

	forward := build([]*entities.MealPlan{planA, planB})
	reversed := build([]*entities.MealPlan{planB, planA})

	if len(forward) != len(reversed) {
		t.Fatalf("Expected equal lengths, got %d and %d", len(forward), len(reversed))
	}
	for i := range forward {
		if forward[i].MenuID != reversed[i].MenuID || forward[i].Headcount != reversed[i].Headcount {
			t.Errorf("Position %d differs between input orders: %+v vs %+v", i, forward[i], reversed[i])
		}
	}
	if forward[0].MealTime != entities.Breakfast {
		t.Errorf("Expected breakfast portions first, got %v", forward[0].MealTime)
	}
}

func TestGroupMenuPortionsByName(t *testing.T) {
	plans := []*entities.MealPlan{
		plan(t, "mp_a", entities.Lunch, 50, sel("menu_1", "Bulgogi", ref("cont_1", "Tray L"))),
		plan(t, "mp_b", entities.Lunch, 30, sel("menu_1", "Bulgogi", ref("cont_2", "Tray S"))),
		plan(t, "mp_c", entities.Lunch, 10, sel("menu_2", "Soup", ref("cont_3", "Bowl"))),
	}
	portions := AggregateMenuPortions(ExpandPortions(plans))

	recipes := NewRecipeSet()
	recipes.Put(recipe("menu_1", "cont_1", dec(t, "0"),
		line("ing_beef", "Beef", "0.2"),
		line("ing_onion", "Onion", "0.05"),
	))
	recipes.Put(recipe("menu_1", "cont_2", dec(t, "0"),
		line("ing_beef", "Beef", "0.2"),
	))

	groups := GroupMenuPortionsByName(portions, recipes.Get)
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}

	bulgogi := groups[0]
	if bulgogi.MenuName != "Bulgogi" {
		t.Fatalf("Expected Bulgogi first, got %s", bulgogi.MenuName)
	}
	if bulgogi.Headcount != 80 {
		t.Errorf("Expected group headcount 80, got %d", bulgogi.Headcount)
	}
	if len(bulgogi.Splits) != 2 {
		t.Errorf("Expected 2 container splits, got %d", len(bulgogi.Splits))
	}
	// Beef appears in both recipes but the merged ingredient list holds it once.
	if len(bulgogi.Ingredients) != 2 {
		t.Errorf("Expected 2 deduplicated ingredients, got %d", len(bulgogi.Ingredients))
	}
}
