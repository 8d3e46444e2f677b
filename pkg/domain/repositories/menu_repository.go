package repositories

import (
	"context"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
)

// MenuRepository provides access to menu masters, menu-container recipe
// joins, and menu price history.
type MenuRepository interface {
	GetMenu(ctx context.Context, id entities.MenuID) (*entities.Menu, error)

	// GetMenuContainer returns the recipe join for a menu cooked into a
	// container. Returns ErrNotFound when no recipe is registered.
	GetMenuContainer(
		ctx context.Context,
		menuID entities.MenuID,
		containerID entities.ContainerID,
	) (*entities.MenuContainer, error)

	// GetPriceHistory returns the recorded price entries for a menu in their
	// original stored order. Callers own any recency sorting.
	GetPriceHistory(ctx context.Context, menuID entities.MenuID) ([]*entities.PriceRecord, error)
}
