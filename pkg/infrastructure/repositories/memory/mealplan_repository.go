package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
	"github.com/kaimen83/lunchlab/pkg/domain/repositories"
)

// MealPlanRepository provides in-memory meal plan storage
type MealPlanRepository struct {
	plans    []entities.MealPlan
	plansMap map[entities.MealPlanID]int
}

// NewMealPlanRepository creates a new in-memory meal plan repository
func NewMealPlanRepository() *MealPlanRepository {
	return &MealPlanRepository{
		plansMap: make(map[entities.MealPlanID]int),
	}
}

// Verify interface compliance
var _ repositories.MealPlanRepository = (*MealPlanRepository)(nil)

// LoadMealPlans loads meal plans into the repository
func (r *MealPlanRepository) LoadMealPlans(plans []*entities.MealPlan) error {
	for _, plan := range plans {
		if err := r.SaveMealPlan(context.Background(), plan); err != nil {
			return err
		}
	}
	return nil
}

// GetMealPlans returns the meal plans for a company on a date. An empty
// companyID matches every company.
func (r *MealPlanRepository) GetMealPlans(
	ctx context.Context,
	companyID string,
	date time.Time,
) ([]*entities.MealPlan, error) {
	var plans []*entities.MealPlan
	for i := range r.plans {
		plan := &r.plans[i]
		if companyID != "" && plan.CompanyID != companyID {
			continue
		}
		if !sameDate(plan.Date, date) {
			continue
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// GetMealPlan returns one meal plan by id
func (r *MealPlanRepository) GetMealPlan(
	ctx context.Context,
	id entities.MealPlanID,
) (*entities.MealPlan, error) {
	index, exists := r.plansMap[id]
	if !exists {
		return nil, fmt.Errorf("meal plan %s: %w", id, repositories.ErrNotFound)
	}
	return &r.plans[index], nil
}

// SaveMealPlan inserts or replaces a meal plan
func (r *MealPlanRepository) SaveMealPlan(ctx context.Context, plan *entities.MealPlan) error {
	if index, exists := r.plansMap[plan.ID]; exists {
		r.plans[index] = *plan
		return nil
	}
	r.plansMap[plan.ID] = len(r.plans)
	r.plans = append(r.plans, *plan)
	return nil
}

// DeleteMealPlan removes a meal plan by id
func (r *MealPlanRepository) DeleteMealPlan(ctx context.Context, id entities.MealPlanID) error {
	index, exists := r.plansMap[id]
	if !exists {
		return fmt.Errorf("meal plan %s: %w", id, repositories.ErrNotFound)
	}

	r.plans = append(r.plans[:index], r.plans[index+1:]...)
	delete(r.plansMap, id)
	for i := index; i < len(r.plans); i++ {
		r.plansMap[r.plans[i].ID] = i
	}
	return nil
}

// sameDate compares two timestamps by calendar day, ignoring time of day
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
