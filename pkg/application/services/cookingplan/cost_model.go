package cookingplan

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
	"github.com/kaimen83/lunchlab/pkg/domain/repositories"
)

// CostModel derives menu and meal-plan costs from the menu-container joins
// and the menu price history. It is stateless; every call reads fresh.
type CostModel struct {
	menus      repositories.MenuRepository
	containers repositories.ContainerRepository
}

// NewCostModel creates a cost model over the given masters
func NewCostModel(
	menus repositories.MenuRepository,
	containers repositories.ContainerRepository,
) *CostModel {
	return &CostModel{menus: menus, containers: containers}
}

// MenuCost resolves the ingredient cost of one menu served in one container
// (containerID empty for untracked servings). Resolution is a fixed two-step
// rule: a positive cached cost on the menu-container join wins; otherwise the
// most recent price-history entry for the bare menu applies. The boolean is
// false when neither source yields a cost.
func (m *CostModel) MenuCost(
	ctx context.Context,
	menuID entities.MenuID,
	containerID entities.ContainerID,
) (decimal.Decimal, bool, error) {
	if containerID != "" {
		join, err := m.menus.GetMenuContainer(ctx, menuID, containerID)
		switch {
		case err == nil:
			if join.IngredientsCost.IsPositive() {
				return join.IngredientsCost, true, nil
			}
		case errors.Is(err, repositories.ErrNotFound):
			// No recipe registered; fall through to price history.
		default:
			return decimal.Zero, false, fmt.Errorf("failed to get menu-container %s/%s: %w", menuID, containerID, err)
		}
	}

	history, err := m.menus.GetPriceHistory(ctx, menuID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("failed to get price history for %s: %w", menuID, err)
	}

	latest := LatestPriceRecord(history)
	if latest == nil {
		return decimal.Zero, false, nil
	}
	return latest.Cost, true, nil
}

// LatestPriceRecord picks the most recent entry of a price history. Entries
// are compared by RecordedAt descending; a nil RecordedAt sorts after every
// timestamped entry, and equal timestamps keep the earlier input entry. One
// deterministic rule, applied everywhere the fallback is needed.
func LatestPriceRecord(history []*entities.PriceRecord) *entities.PriceRecord {
	var latest *entities.PriceRecord

	for _, record := range history {
		if record == nil {
			continue
		}
		if latest == nil {
			latest = record
			continue
		}
		if record.RecordedAt == nil {
			continue
		}
		if latest.RecordedAt == nil || record.RecordedAt.After(*latest.RecordedAt) {
			latest = record
		}
	}

	return latest
}

// MealPlanCost is the cost breakdown for one meal plan
type MealPlanCost struct {
	MealPlanID      entities.MealPlanID `json:"meal_plan_id"`
	IngredientsCost decimal.Decimal     `json:"ingredients_cost"`
	ContainersCost  decimal.Decimal     `json:"containers_cost"`
	TotalCost       decimal.Decimal     `json:"total_cost"`
	// CostComplete is false when at least one menu or container had no
	// resolvable price; the totals then cover only the priced part.
	CostComplete bool `json:"cost_complete"`
}

// MealPlanTotalCost computes a plan's cost: the sum of ingredient costs over
// each distinct (menu, container) selection plus each distinct container's
// price charged exactly once. The distinct-container set is the same one the
// container aggregator uses, so the two views always agree.
func (m *CostModel) MealPlanTotalCost(
	ctx context.Context,
	plan *entities.MealPlan,
) (*MealPlanCost, error) {
	cost := &MealPlanCost{
		MealPlanID:   plan.ID,
		CostComplete: true,
	}

	type selectionKey struct {
		MenuID      entities.MenuID
		ContainerID entities.ContainerID
	}
	seen := make(map[selectionKey]struct{})

	for _, sel := range plan.Selections {
		key := selectionKey{MenuID: sel.MenuID}
		if sel.Container != nil {
			key.ContainerID = sel.Container.ID
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		menuCost, ok, err := m.MenuCost(ctx, sel.MenuID, key.ContainerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			cost.CostComplete = false
			continue
		}
		cost.IngredientsCost = cost.IngredientsCost.Add(menuCost)
	}

	for _, ref := range DistinctContainers(plan) {
		master, err := m.containers.GetContainer(ctx, ref.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				cost.CostComplete = false
				continue
			}
			return nil, fmt.Errorf("failed to get container %s: %w", ref.ID, err)
		}
		if !master.HasPrice {
			cost.CostComplete = false
			continue
		}
		cost.ContainersCost = cost.ContainersCost.Add(master.Price)
	}

	cost.TotalCost = cost.IngredientsCost.Add(cost.ContainersCost)
	return cost, nil
}
