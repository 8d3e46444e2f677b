package cookingplan

import (
	"github.com/kaimen83/lunchlab/pkg/domain/entities"
)

// PortionSeed is one flattened (menu, container-or-none) occurrence from a
// meal plan, carrying the owning plan and its headcount. No aggregation has
// happened yet at this stage.
type PortionSeed struct {
	MealPlanID entities.MealPlanID
	MealTime   entities.MealTime
	MenuID     entities.MenuID
	MenuName   string
	Container  *entities.ContainerRef
	Headcount  int64
}

// ExpandPortions flattens a day's meal plans into one seed per selection.
// A plan that selects the same menu into several containers produces one
// seed per container, each attributed the full plan headcount: every
// container is a separately cooked and portioned batch.
// Plans with empty selection lists yield zero seeds and are skipped.
func ExpandPortions(plans []*entities.MealPlan) []PortionSeed {
	var seeds []PortionSeed

	for _, plan := range plans {
		if len(plan.Selections) == 0 {
			continue
		}

		for _, sel := range plan.Selections {
			seed := PortionSeed{
				MealPlanID: plan.ID,
				MealTime:   plan.MealTime,
				MenuID:     sel.MenuID,
				MenuName:   sel.MenuName,
				Headcount:  plan.Headcount,
			}
			if sel.Container != nil {
				ref := *sel.Container
				seed.Container = &ref
			}
			seeds = append(seeds, seed)
		}
	}

	return seeds
}
