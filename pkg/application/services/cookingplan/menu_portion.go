package cookingplan

import (
	"sort"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
)

// portionKey is the composite grouping key for menu portions. HasContainer
// distinguishes the "no container" variant from a real container id so that
// untracked servings form their own valid group.
type portionKey struct {
	MenuID       entities.MenuID
	ContainerID  entities.ContainerID
	HasContainer bool
	MealTime     entities.MealTime
}

func seedKey(seed PortionSeed) portionKey {
	key := portionKey{
		MenuID:   seed.MenuID,
		MealTime: seed.MealTime,
	}
	if seed.Container != nil {
		key.ContainerID = seed.Container.ID
		key.HasContainer = true
	}
	return key
}

// AggregateMenuPortions collapses portion seeds into one row per
// (menu, container, meal time) combination. Headcounts are summed and the
// contributing meal plan ids are collected as a set, so re-aggregating an
// already merged input is idempotent.
func AggregateMenuPortions(seeds []PortionSeed) []entities.MenuPortion {
	groups := make(map[portionKey]*entities.MenuPortion)
	sources := make(map[portionKey]map[entities.MealPlanID]struct{})

	for _, seed := range seeds {
		key := seedKey(seed)

		portion, exists := groups[key]
		if !exists {
			portion = &entities.MenuPortion{
				MenuID:   seed.MenuID,
				MenuName: seed.MenuName,
				MealTime: seed.MealTime,
			}
			if seed.Container != nil {
				ref := *seed.Container
				portion.Container = &ref
			}
			groups[key] = portion
			sources[key] = make(map[entities.MealPlanID]struct{})
		}

		// A plan contributes its headcount once per (menu, container) row.
		if _, seen := sources[key][seed.MealPlanID]; !seen {
			portion.Headcount += seed.Headcount
			sources[key][seed.MealPlanID] = struct{}{}
		}
	}

	portions := make([]entities.MenuPortion, 0, len(groups))
	for key, portion := range groups {
		ids := make([]entities.MealPlanID, 0, len(sources[key]))
		for id := range sources[key] {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		portion.SourceMealPlanIDs = ids
		portions = append(portions, *portion)
	}

	sortMenuPortions(portions)
	return portions
}

// sortMenuPortions orders portions deterministically so that repeated runs
// over identical input produce identical output regardless of map iteration.
func sortMenuPortions(portions []entities.MenuPortion) {
	sort.Slice(portions, func(i, j int) bool {
		a, b := portions[i], portions[j]
		if a.MealTime != b.MealTime {
			return a.MealTime < b.MealTime
		}
		if a.MenuName != b.MenuName {
			return a.MenuName < b.MenuName
		}
		if a.MenuID != b.MenuID {
			return a.MenuID < b.MenuID
		}
		return containerSortKey(a.Container) < containerSortKey(b.Container)
	})
}

func containerSortKey(ref *entities.ContainerRef) string {
	if ref == nil {
		return ""
	}
	return ref.Name + "|" + string(ref.ID)
}

// RecipeLookup resolves the recipe join for a menu-container combination.
// The boolean is false when no recipe is registered.
type RecipeLookup func(menuID entities.MenuID, containerID entities.ContainerID) (*entities.MenuContainer, bool)

// GroupMenuPortionsByName performs the second-level collapse used by the
// print view: all container combinations of the same menu name merge into
// one logical row with a per-container headcount breakdown. The group
// headcount is the sum over splits and is deliberately not deduplicated
// further; a diner counted under two containers received two servings.
func GroupMenuPortionsByName(
	portions []entities.MenuPortion,
	recipes RecipeLookup,
) []entities.MenuGroup {
	groups := make(map[string]*entities.MenuGroup)
	seenIngredients := make(map[string]map[entities.IngredientID]struct{})
	order := make([]string, 0)

	for _, portion := range portions {
		group, exists := groups[portion.MenuName]
		if !exists {
			group = &entities.MenuGroup{MenuName: portion.MenuName}
			groups[portion.MenuName] = group
			seenIngredients[portion.MenuName] = make(map[entities.IngredientID]struct{})
			order = append(order, portion.MenuName)
		}

		containerName := ""
		if portion.Container != nil {
			containerName = portion.Container.Name
		}
		group.Splits = append(group.Splits, entities.ContainerSplit{
			ContainerName: containerName,
			Headcount:     portion.Headcount,
		})
		group.Headcount += portion.Headcount

		if portion.Container != nil && recipes != nil {
			if join, ok := recipes(portion.MenuID, portion.Container.ID); ok {
				for _, line := range join.Ingredients {
					if _, dup := seenIngredients[portion.MenuName][line.IngredientID]; dup {
						continue
					}
					seenIngredients[portion.MenuName][line.IngredientID] = struct{}{}
					group.Ingredients = append(group.Ingredients, line)
				}
			}
		}
	}

	result := make([]entities.MenuGroup, 0, len(order))
	sort.Strings(order)
	for _, name := range order {
		group := groups[name]
		sort.Slice(group.Ingredients, func(i, j int) bool {
			return group.Ingredients[i].Name < group.Ingredients[j].Name
		})
		result = append(result, *group)
	}
	return result
}
