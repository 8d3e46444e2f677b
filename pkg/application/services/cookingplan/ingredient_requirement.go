package cookingplan

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
	"github.com/kaimen83/lunchlab/pkg/domain/repositories"
)

// recipeKey identifies a menu-container recipe join
type recipeKey struct {
	MenuID      entities.MenuID
	ContainerID entities.ContainerID
}

// RecipeSet holds the resolved recipe joins for one aggregation pass, with
// per-key fetch outcomes so a failed detail fetch degrades only its own rows.
type RecipeSet struct {
	joins  map[recipeKey]*entities.MenuContainer
	failed map[recipeKey]struct{}
}

// NewRecipeSet creates an empty RecipeSet
func NewRecipeSet() *RecipeSet {
	return &RecipeSet{
		joins:  make(map[recipeKey]*entities.MenuContainer),
		failed: make(map[recipeKey]struct{}),
	}
}

// Put records a resolved recipe join
func (r *RecipeSet) Put(join *entities.MenuContainer) {
	r.joins[recipeKey{MenuID: join.MenuID, ContainerID: join.ContainerID}] = join
}

// MarkFailed records a menu-container combination whose detail fetch failed
func (r *RecipeSet) MarkFailed(menuID entities.MenuID, containerID entities.ContainerID) {
	r.failed[recipeKey{MenuID: menuID, ContainerID: containerID}] = struct{}{}
}

// Get returns the recipe join for a combination, or false when none is
// registered.
func (r *RecipeSet) Get(menuID entities.MenuID, containerID entities.ContainerID) (*entities.MenuContainer, bool) {
	join, ok := r.joins[recipeKey{MenuID: menuID, ContainerID: containerID}]
	return join, ok
}

// Failed reports whether the detail fetch for a combination failed
func (r *RecipeSet) Failed(menuID entities.MenuID, containerID entities.ContainerID) bool {
	_, ok := r.failed[recipeKey{MenuID: menuID, ContainerID: containerID}]
	return ok
}

// AggregateIngredients accumulates per-ingredient demand and projected cost
// over every menu portion with a container, for the whole day.
//
// Each contributing portion adds recipeAmount × portionHeadcount. A menu that
// appears in several containers of one plan contributes once per container;
// each container is a separately cooked batch. This is intentionally
// asymmetric with container requirements, which de-duplicate per plan.
//
// Portions are annotated in place: MissingRecipe when no recipe join exists,
// DetailUnavailable when the join fetch failed. Neither aborts the pass, and
// neither does a failed master read; nothing here raises across rows.
func AggregateIngredients(
	ctx context.Context,
	portions []entities.MenuPortion,
	recipes *RecipeSet,
	ingredients repositories.IngredientRepository,
	logger *slog.Logger,
) []entities.IngredientRequirement {
	logger = ensureLogger(logger)
	totals := make(map[entities.IngredientID]decimal.Decimal)
	lastKnownName := make(map[entities.IngredientID]string)

	for i := range portions {
		portion := &portions[i]
		if portion.Container == nil {
			continue
		}

		if recipes.Failed(portion.MenuID, portion.Container.ID) {
			portion.DetailUnavailable = true
			continue
		}

		join, ok := recipes.Get(portion.MenuID, portion.Container.ID)
		if !ok || len(join.Ingredients) == 0 {
			portion.MissingRecipe = true
			continue
		}

		headcount := decimal.NewFromInt(portion.Headcount)
		for _, line := range join.Ingredients {
			totals[line.IngredientID] = totals[line.IngredientID].Add(line.Amount.Mul(headcount))
			if line.Name != "" {
				lastKnownName[line.IngredientID] = line.Name
			}
		}
	}

	ids := make([]entities.IngredientID, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	requirements := make([]entities.IngredientRequirement, 0, len(ids))
	for _, id := range ids {
		requirements = append(requirements,
			buildIngredientRequirement(ctx, id, totals[id], lastKnownName[id], ingredients, logger))
	}

	sort.Slice(requirements, func(i, j int) bool {
		if requirements[i].Name != requirements[j].Name {
			return requirements[i].Name < requirements[j].Name
		}
		return requirements[i].IngredientID < requirements[j].IngredientID
	})
	return requirements
}

// buildIngredientRequirement derives the priced requirement row for one
// ingredient. A deleted or unreadable ingredient master degrades to the
// last-known name with cost unavailable; it never drops the row or fails
// the pass.
func buildIngredientRequirement(
	ctx context.Context,
	id entities.IngredientID,
	totalAmount decimal.Decimal,
	lastKnownName string,
	ingredients repositories.IngredientRepository,
	logger *slog.Logger,
) entities.IngredientRequirement {
	req := entities.IngredientRequirement{
		IngredientID: id,
		Name:         lastKnownName,
		TotalAmount:  totalAmount,
	}

	master, err := ingredients.GetIngredient(ctx, id)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			logger.Warn("ingredient master read failed",
				"ingredient_id", id,
				"error", err,
			)
		}
		return req
	}

	req.Name = master.Name
	req.CodeName = master.CodeName
	req.Unit = master.Unit
	req.PackageAmount = master.PackageAmount

	unitPrice, ok := master.UnitPrice()
	if !ok {
		// Zero or missing package amount: the ratio is undefined. Leave the
		// derived fields unavailable instead of coercing them to zero.
		return req
	}

	req.UnitPrice = unitPrice
	req.TotalPrice = totalAmount.Mul(unitPrice)
	req.UnitsToOrder = totalAmount.Div(master.PackageAmount)
	req.PriceAvailable = true
	return req
}
