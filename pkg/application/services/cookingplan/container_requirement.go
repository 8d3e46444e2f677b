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

// DistinctContainers returns the set of containers a meal plan references,
// in first-seen selection order, each at most once no matter how many menus
// of the plan reuse it. The cost model intersects this same set so the two
// views cannot drift.
func DistinctContainers(plan *entities.MealPlan) []entities.ContainerRef {
	var refs []entities.ContainerRef
	seen := make(map[entities.ContainerID]struct{})

	for _, sel := range plan.Selections {
		if sel.Container == nil {
			continue
		}
		if _, dup := seen[sel.Container.ID]; dup {
			continue
		}
		seen[sel.Container.ID] = struct{}{}
		refs = append(refs, *sel.Container)
	}

	return refs
}

// AggregateContainerRequirements computes per-container physical-unit demand
// for a day in two passes.
//
// Pass 1 walks each meal plan and records the plan's headcount once per
// distinct container, so a plan with headcount H whose menus reuse container
// C ten times still needs exactly H units of C. Pass 2 sums the per-plan
// contributions across plans, which independently use the same container.
//
// Names resolve against the container master; a container deleted after the
// plan was created keeps the name denormalized on the selection, and a master
// read failure degrades that row the same way. An unknown price yields
// TotalPrice zero with Priced false: here quantity, not cost, is the
// actionable output.
func AggregateContainerRequirements(
	ctx context.Context,
	plans []*entities.MealPlan,
	containers repositories.ContainerRepository,
	stocks []*entities.StockSnapshot,
	logger *slog.Logger,
) []entities.ContainerRequirement {
	logger = ensureLogger(logger)
	needed := make(map[entities.ContainerID]int64)
	lastKnownName := make(map[entities.ContainerID]string)

	// Pass 1: per-plan distinct containers, headcount counted once each.
	for _, plan := range plans {
		for _, ref := range DistinctContainers(plan) {
			needed[ref.ID] += plan.Headcount
			if ref.Name != "" {
				lastKnownName[ref.ID] = ref.Name
			}
		}
	}

	stockByID := make(map[entities.ContainerID]*entities.StockSnapshot, len(stocks))
	for _, snapshot := range stocks {
		stockByID[snapshot.ItemID] = snapshot
	}

	// Pass 2: resolve masters and build the summed rows.
	ids := make([]entities.ContainerID, 0, len(needed))
	for id := range needed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	requirements := make([]entities.ContainerRequirement, 0, len(ids))
	for _, id := range ids {
		req := entities.ContainerRequirement{
			ContainerID:    id,
			Name:           lastKnownName[id],
			NeededQuantity: needed[id],
		}

		master, err := containers.GetContainer(ctx, id)
		switch {
		case err == nil:
			req.Name = master.Name
			req.Code = master.Code
			if master.HasPrice {
				req.Price = master.Price
				req.TotalPrice = master.Price.Mul(decimal.NewFromInt(needed[id]))
				req.Priced = true
			}
		case errors.Is(err, repositories.ErrNotFound):
			// Deleted from the master after plan creation: keep the
			// last-known name, report the quantity unpriced.
		default:
			logger.Warn("container master read failed",
				"container_id", id,
				"error", err,
			)
		}

		if snapshot, ok := stockByID[id]; ok {
			stock := snapshot.CurrentQuantity
			updatedAt := snapshot.LastUpdated
			req.CurrentStock = &stock
			req.StockUpdatedAt = &updatedAt
		}

		requirements = append(requirements, req)
	}

	sort.Slice(requirements, func(i, j int) bool {
		if requirements[i].Name != requirements[j].Name {
			return requirements[i].Name < requirements[j].Name
		}
		return requirements[i].ContainerID < requirements[j].ContainerID
	})
	return requirements
}
