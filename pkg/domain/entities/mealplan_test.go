package entities

import (
	"testing"
	"time"
)

func TestMealTime_RoundTrip(t *testing.T) {
	for _, mealTime := range []MealTime{Breakfast, Lunch, Dinner} {
		parsed, err := ParseMealTime(mealTime.String())
		if err != nil {
			t.Fatalf("Expected %s to parse: %v", mealTime, err)
		}
		if parsed != mealTime {
			t.Errorf("Expected %v after round trip, got %v", mealTime, parsed)
		}
	}
}

func TestParseMealTime_Invalid(t *testing.T) {
	for _, input := range []string{"", "brunch", "LUNCH", "Dinner"} {
		if _, err := ParseMealTime(input); err == nil {
			t.Errorf("Expected error parsing %q", input)
		}
	}
}

func TestMealPlan_Validation(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	validPlan, err := NewMealPlan("mp_1", "comp_1", date, Lunch, "Lunch A", 50, []MealPlanSelection{
		{MenuID: "menu_1", MenuName: "Bulgogi", Container: &ContainerRef{ID: "cont_1", Name: "Tray L"}},
		{MenuID: "menu_2", MenuName: "Soup"},
	})
	if err != nil {
		t.Fatalf("Expected valid meal plan creation to succeed: %v", err)
	}
	if validPlan.Headcount != 50 {
		t.Errorf("Expected headcount 50, got %d", validPlan.Headcount)
	}
	if len(validPlan.Selections) != 2 {
		t.Errorf("Expected 2 selections, got %d", len(validPlan.Selections))
	}

	testCases := []struct {
		name       string
		id         MealPlanID
		headcount  int64
		selections []MealPlanSelection
	}{
		{"empty id", "", 10, nil},
		{"negative headcount", "mp_1", -1, nil},
		{"selection without menu id", "mp_1", 10, []MealPlanSelection{{MenuName: "Soup"}}},
		{
			"container ref with empty id",
			"mp_1",
			10,
			[]MealPlanSelection{{MenuID: "menu_1", Container: &ContainerRef{Name: "Tray"}}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMealPlan(tc.id, "comp_1", date, Lunch, "Lunch A", tc.headcount, tc.selections)
			if err == nil {
				t.Errorf("Expected validation error")
			}
		})
	}
}

func TestMealPlan_ZeroHeadcountAllowed(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	plan, err := NewMealPlan("mp_1", "comp_1", date, Breakfast, "Early", 0, nil)
	if err != nil {
		t.Fatalf("Expected zero headcount to be valid: %v", err)
	}
	if plan.Headcount != 0 {
		t.Errorf("Expected headcount 0, got %d", plan.Headcount)
	}
}
