package cookingplan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
	"github.com/kaimen83/lunchlab/pkg/domain/repositories"
)

// Service builds cooking plans for a company and date. Each build is a pure
// function of the day's source records; no state survives between calls.
type Service struct {
	mealPlans   repositories.MealPlanRepository
	menus       repositories.MenuRepository
	containers  repositories.ContainerRepository
	ingredients repositories.IngredientRepository
	stocks      repositories.StockRepository
	logger      *slog.Logger
}

// NewService creates a cooking-plan service over the given readers. A nil
// stocks repository disables the stock merge; a nil logger discards logs.
func NewService(
	mealPlans repositories.MealPlanRepository,
	menus repositories.MenuRepository,
	containers repositories.ContainerRepository,
	ingredients repositories.IngredientRepository,
	stocks repositories.StockRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		mealPlans:   mealPlans,
		menus:       menus,
		containers:  containers,
		ingredients: ingredients,
		stocks:      stocks,
		logger:      ensureLogger(logger),
	}
}

// ensureLogger substitutes a discarding logger for nil
func ensureLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

// CostModel returns a cost model over the service's masters
func (s *Service) CostModel() *CostModel {
	return NewCostModel(s.menus, s.containers)
}

// BuildCookingPlan computes the full cooking plan for one company and date.
//
// Only a failure to read the meal-plan list itself is terminal; every other
// problem degrades the affected row and the rest of the aggregation
// proceeds. A date with no meal plans returns a plan with empty slices, a
// valid displayable state distinct from an error.
func (s *Service) BuildCookingPlan(
	ctx context.Context,
	companyID string,
	date time.Time,
) (*entities.CookingPlan, error) {
	plans, err := s.mealPlans.GetMealPlans(ctx, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get meal plans for %s: %w", date.Format("2006-01-02"), err)
	}

	plan := &entities.CookingPlan{
		Date:                   date,
		MealPortions:           []entities.MealPortion{},
		MealPlans:              plans,
		MenuPortions:           []entities.MenuPortion{},
		IngredientRequirements: []entities.IngredientRequirement{},
		ContainerRequirements:  []entities.ContainerRequirement{},
	}
	if len(plans) == 0 {
		return plan, nil
	}

	sortMealPlans(plans)
	plan.MealPortions = buildMealPortions(plans)

	seeds := ExpandPortions(plans)
	plan.MenuPortions = AggregateMenuPortions(seeds)

	recipes := s.fetchRecipes(ctx, plan.MenuPortions)
	plan.IngredientRequirements = AggregateIngredients(ctx, plan.MenuPortions, recipes, s.ingredients, s.logger)

	stocks := s.fetchStocks(ctx, companyID)
	plan.ContainerRequirements = AggregateContainerRequirements(ctx, plans, s.containers, stocks, s.logger)

	return plan, nil
}

// MenuGroups collapses a plan's menu portions by menu name for the print
// view, merging each group's ingredient set from the registered recipes.
func (s *Service) MenuGroups(
	ctx context.Context,
	portions []entities.MenuPortion,
) []entities.MenuGroup {
	recipes := s.fetchRecipes(ctx, portions)
	return GroupMenuPortionsByName(portions, recipes.Get)
}

// fetchRecipes resolves recipe joins for every distinct menu-container
// combination among the portions. Fetches fan out concurrently; any single
// failure marks only its own combination, so one unreachable detail row
// never aborts the whole aggregation.
func (s *Service) fetchRecipes(
	ctx context.Context,
	portions []entities.MenuPortion,
) *RecipeSet {
	keys := make(map[recipeKey]struct{})
	for _, portion := range portions {
		if portion.Container == nil {
			continue
		}
		keys[recipeKey{MenuID: portion.MenuID, ContainerID: portion.Container.ID}] = struct{}{}
	}

	recipes := NewRecipeSet()
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for key := range keys {
		wg.Add(1)
		go func(key recipeKey) {
			defer wg.Done()

			join, err := s.menus.GetMenuContainer(ctx, key.MenuID, key.ContainerID)
			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				recipes.Put(join)
			case errors.Is(err, repositories.ErrNotFound):
				// No recipe registered; the portion is flagged downstream.
			default:
				s.logger.Warn("recipe detail fetch failed",
					"menu_id", key.MenuID,
					"container_id", key.ContainerID,
					"error", err,
				)
				recipes.MarkFailed(key.MenuID, key.ContainerID)
			}
		}(key)
	}

	wg.Wait()
	return recipes
}

// fetchStocks reads the optional stock snapshot. The snapshot enriches
// container rows but is never required; a read failure skips the merge.
func (s *Service) fetchStocks(ctx context.Context, companyID string) []*entities.StockSnapshot {
	if s.stocks == nil {
		return nil
	}
	stocks, err := s.stocks.GetStockSnapshots(ctx, companyID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.logger.Warn("stock snapshot read failed",
				"company_id", companyID,
				"error", err,
			)
		}
		return nil
	}
	return stocks
}

// buildMealPortions carries the raw per-plan headcounts through unmodified
func buildMealPortions(plans []*entities.MealPlan) []entities.MealPortion {
	portions := make([]entities.MealPortion, 0, len(plans))
	for _, plan := range plans {
		portions = append(portions, entities.MealPortion{
			MealPlanID: plan.ID,
			Name:       plan.Name,
			MealTime:   plan.MealTime,
			Headcount:  plan.Headcount,
		})
	}
	return portions
}

// sortMealPlans orders plans deterministically by meal time, name, then id
func sortMealPlans(plans []*entities.MealPlan) {
	sort.Slice(plans, func(i, j int) bool {
		if plans[i].MealTime != plans[j].MealTime {
			return plans[i].MealTime < plans[j].MealTime
		}
		if plans[i].Name != plans[j].Name {
			return plans[i].Name < plans[j].Name
		}
		return plans[i].ID < plans[j].ID
	})
}
