package memory

import (
	"context"
	"fmt"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
	"github.com/kaimen83/lunchlab/pkg/domain/repositories"
)

type menuContainerKey struct {
	MenuID      entities.MenuID
	ContainerID entities.ContainerID
}

// MenuRepository provides in-memory menu master, recipe join, and price
// history storage
type MenuRepository struct {
	menus        map[entities.MenuID]*entities.Menu
	joins        map[menuContainerKey]*entities.MenuContainer
	priceHistory map[entities.MenuID][]*entities.PriceRecord
}

// NewMenuRepository creates a new in-memory menu repository
func NewMenuRepository() *MenuRepository {
	return &MenuRepository{
		menus:        make(map[entities.MenuID]*entities.Menu),
		joins:        make(map[menuContainerKey]*entities.MenuContainer),
		priceHistory: make(map[entities.MenuID][]*entities.PriceRecord),
	}
}

// Verify interface compliance
var _ repositories.MenuRepository = (*MenuRepository)(nil)

// AddMenu adds a menu master record
func (r *MenuRepository) AddMenu(menu entities.Menu) {
	r.menus[menu.ID] = &menu
}

// AddMenuContainer adds a menu-container recipe join
func (r *MenuRepository) AddMenuContainer(join entities.MenuContainer) {
	r.joins[menuContainerKey{MenuID: join.MenuID, ContainerID: join.ContainerID}] = &join
}

// AddPriceRecord appends a price history entry, preserving insertion order
func (r *MenuRepository) AddPriceRecord(record entities.PriceRecord) {
	r.priceHistory[record.MenuID] = append(r.priceHistory[record.MenuID], &record)
}

// GetMenu returns a menu master record by id
func (r *MenuRepository) GetMenu(ctx context.Context, id entities.MenuID) (*entities.Menu, error) {
	menu, exists := r.menus[id]
	if !exists {
		return nil, fmt.Errorf("menu %s: %w", id, repositories.ErrNotFound)
	}
	return menu, nil
}

// GetMenuContainer returns the recipe join for a menu-container combination
func (r *MenuRepository) GetMenuContainer(
	ctx context.Context,
	menuID entities.MenuID,
	containerID entities.ContainerID,
) (*entities.MenuContainer, error) {
	join, exists := r.joins[menuContainerKey{MenuID: menuID, ContainerID: containerID}]
	if !exists {
		return nil, fmt.Errorf("menu-container %s/%s: %w", menuID, containerID, repositories.ErrNotFound)
	}
	return join, nil
}

// GetPriceHistory returns a menu's price entries in insertion order
func (r *MenuRepository) GetPriceHistory(
	ctx context.Context,
	menuID entities.MenuID,
) ([]*entities.PriceRecord, error) {
	return r.priceHistory[menuID], nil
}
