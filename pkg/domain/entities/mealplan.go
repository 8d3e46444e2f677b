package entities

import (
	"encoding/json"
	"fmt"
	"time"
)

// MealPlanID uniquely identifies a meal plan
type MealPlanID string

// MealTime identifies the meal service slot a plan belongs to
type MealTime int

const (
	Breakfast MealTime = iota
	Lunch
	Dinner
)

// String method for MealTime enum
func (m MealTime) String() string {
	switch m {
	case Breakfast:
		return "breakfast"
	case Lunch:
		return "lunch"
	case Dinner:
		return "dinner"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes a meal time as its label, so API responses round-trip
// through the same representation requests use.
func (m MealTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a meal time label
func (m *MealTime) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parsed, err := ParseMealTime(label)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMealTime parses a meal time label into a MealTime
func ParseMealTime(s string) (MealTime, error) {
	switch s {
	case "breakfast":
		return Breakfast, nil
	case "lunch":
		return Lunch, nil
	case "dinner":
		return Dinner, nil
	default:
		return Breakfast, fmt.Errorf("invalid meal time: %q", s)
	}
}

// ContainerRef is a denormalized reference to a container captured at
// selection time. The name survives deletion of the container master.
type ContainerRef struct {
	ID   ContainerID `json:"id"`
	Name string      `json:"name"`
}

// MealPlanSelection is one (menu, container) choice inside a meal plan.
// Container is nil when the menu is served without a tracked container.
type MealPlanSelection struct {
	MenuID    MenuID        `json:"menu_id"`
	MenuName  string        `json:"menu_name"`
	Container *ContainerRef `json:"container,omitempty"`
}

// MealPlan is a named, dated, meal-time-scoped selection of menus and
// containers with the headcount it serves. Read-only to the engine.
type MealPlan struct {
	ID         MealPlanID          `json:"id"`
	CompanyID  string              `json:"company_id"`
	Date       time.Time           `json:"date"`
	MealTime   MealTime            `json:"meal_time"`
	Name       string              `json:"name"`
	Headcount  int64               `json:"headcount"`
	Selections []MealPlanSelection `json:"selections"`
}

// NewMealPlan creates a validated MealPlan
func NewMealPlan(
	id MealPlanID,
	companyID string,
	date time.Time,
	mealTime MealTime,
	name string,
	headcount int64,
	selections []MealPlanSelection,
) (*MealPlan, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("meal plan id cannot be empty")
	}
	if headcount < 0 {
		return nil, fmt.Errorf("headcount cannot be negative, got %d", headcount)
	}
	for i, sel := range selections {
		if string(sel.MenuID) == "" {
			return nil, fmt.Errorf("selection %d: menu id cannot be empty", i)
		}
		if sel.Container != nil && string(sel.Container.ID) == "" {
			return nil, fmt.Errorf("selection %d: container reference has empty id", i)
		}
	}

	return &MealPlan{
		ID:         id,
		CompanyID:  companyID,
		Date:       date,
		MealTime:   mealTime,
		Name:       name,
		Headcount:  headcount,
		Selections: selections,
	}, nil
}

// MealPortion is the raw per-plan headcount as recorded, carried through to
// the cooking plan unmodified for display alongside the aggregated rows.
type MealPortion struct {
	MealPlanID MealPlanID `json:"meal_plan_id"`
	Name       string     `json:"name"`
	MealTime   MealTime   `json:"meal_time"`
	Headcount  int64      `json:"headcount"`
}
