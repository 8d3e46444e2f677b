package repositories

import (
	"context"
	"time"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
)

// MealPlanRepository provides access to meal plan records for a company.
// The engine only reads; writes exist for the surrounding application.
type MealPlanRepository interface {
	// GetMealPlans returns all meal plans for a company on a date. An empty
	// companyID matches every company (offline scenario runs).
	GetMealPlans(ctx context.Context, companyID string, date time.Time) ([]*entities.MealPlan, error)
	GetMealPlan(ctx context.Context, id entities.MealPlanID) (*entities.MealPlan, error)
	SaveMealPlan(ctx context.Context, plan *entities.MealPlan) error
	DeleteMealPlan(ctx context.Context, id entities.MealPlanID) error
}
