package cookingplan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
	"github.com/kaimen83/lunchlab/pkg/infrastructure/repositories/memory"
)

// brokenContainerRepo fails every master read with a non-NotFound error
type brokenContainerRepo struct{}

func (brokenContainerRepo) GetContainer(ctx context.Context, id entities.ContainerID) (*entities.Container, error) {
	return nil, errors.New("database connection reset")
}

func (brokenContainerRepo) GetAllContainers(ctx context.Context) ([]*entities.Container, error) {
	return nil, errors.New("database connection reset")
}

func containerRepo(t *testing.T, containers ...*entities.Container) *memory.ContainerRepository {
	t.Helper()
	repo := memory.NewContainerRepository()
	for _, container := range containers {
		repo.AddContainer(*container)
	}
	return repo
}

func mustContainer(t *testing.T, id entities.ContainerID, name, code, price string) *entities.Container {
	t.Helper()
	hasPrice := price != ""
	value := dec(t, "0")
	if hasPrice {
		value = dec(t, price)
	}
	container, err := entities.NewContainer(id, name, code, value, hasPrice)
	if err != nil {
		t.Fatalf("failed to build container %s: %v", id, err)
	}
	return container
}

func TestDistinctContainers(t *testing.T) {
	p := plan(t, "mp_a", entities.Lunch, 50,
		sel("menu_1", "Bulgogi", ref("cont_1", "Tray L")),
		sel("menu_2", "Soup", ref("cont_2", "Bowl")),
		sel("menu_3", "Rice", ref("cont_1", "Tray L")),
		sel("menu_4", "Kimchi", nil),
	)

	refs := DistinctContainers(p)
	if len(refs) != 2 {
		t.Fatalf("Expected 2 distinct containers, got %d", len(refs))
	}
	if refs[0].ID != "cont_1" || refs[1].ID != "cont_2" {
		t.Errorf("Expected first-seen order cont_1, cont_2, got %s, %s", refs[0].ID, refs[1].ID)
	}
}

func TestAggregateContainerRequirements_HeadcountOncePerPlan(t *testing.T) {
	// A plan with headcount H that reuses a container for several menus still
	// needs exactly H units, never a multiple of H.
	plans := []*entities.MealPlan{
		plan(t, "mp_a", entities.Lunch, 50,
			sel("menu_1", "Bulgogi", ref("cont_1", "Tray L")),
			sel("menu_2", "Soup", ref("cont_1", "Tray L")),
			sel("menu_3", "Rice", ref("cont_1", "Tray L")),
		),
	}

	repo := containerRepo(t, mustContainer(t, "cont_1", "Tray L", "TL", "120"))

	requirements := AggregateContainerRequirements(context.Background(), plans, repo, nil, nil)
	if len(requirements) != 1 {
		t.Fatalf("Expected 1 requirement, got %d", len(requirements))
	}
	if requirements[0].NeededQuantity != 50 {
		t.Errorf("Expected needed quantity 50, got %d", requirements[0].NeededQuantity)
	}
	if !requirements[0].TotalPrice.Equal(dec(t, "6000")) {
		t.Errorf("Expected total price 6000, got %s", requirements[0].TotalPrice)
	}
}

func TestAggregateContainerRequirements_SumsAcrossPlans(t *testing.T) {
	plans := []*entities.MealPlan{
		plan(t, "mp_a", entities.Lunch, 50, sel("menu_1", "Bulgogi", ref("cont_1", "Tray L"))),
		plan(t, "mp_b", entities.Lunch, 30, sel("menu_2", "Soup", ref("cont_1", "Tray L"))),
	}

	repo := containerRepo(t, mustContainer(t, "cont_1", "Tray L", "TL", "120"))

	requirements := AggregateContainerRequirements(context.Background(), plans, repo, nil, nil)
	if requirements[0].NeededQuantity != 80 {
		t.Errorf("Expected needed quantity 80 across plans, got %d", requirements[0].NeededQuantity)
	}
}

func TestAggregateContainerRequirements_DeletedMasterKeepsRow(t *testing.T) {
	plans := []*entities.MealPlan{
		plan(t, "mp_a", entities.Lunch, 25, sel("menu_1", "Bulgogi", ref("cont_gone", "Retired Tray"))),
	}

	requirements := AggregateContainerRequirements(context.Background(), plans, containerRepo(t), nil, nil)
	if len(requirements) != 1 {
		t.Fatalf("Expected the row to survive, got %d requirements", len(requirements))
	}

	req := requirements[0]
	if req.Name != "Retired Tray" {
		t.Errorf("Expected denormalized name Retired Tray, got %q", req.Name)
	}
	if req.Priced {
		t.Errorf("Expected the row to be unpriced")
	}
	if req.NeededQuantity != 25 {
		t.Errorf("Expected needed quantity 25, got %d", req.NeededQuantity)
	}
}

func TestAggregateContainerRequirements_MasterReadFailureKeepsRow(t *testing.T) {
	// An unreachable container master degrades its row like a deleted one;
	// the quantity still comes through with the denormalized name.
	plans := []*entities.MealPlan{
		plan(t, "mp_a", entities.Lunch, 25, sel("menu_1", "Bulgogi", ref("cont_1", "Tray L"))),
	}

	requirements := AggregateContainerRequirements(context.Background(), plans, brokenContainerRepo{}, nil, nil)
	if len(requirements) != 1 {
		t.Fatalf("Expected the row to survive the read failure, got %d requirements", len(requirements))
	}

	req := requirements[0]
	if req.Name != "Tray L" {
		t.Errorf("Expected denormalized name Tray L, got %q", req.Name)
	}
	if req.Priced {
		t.Errorf("Expected the row to be unpriced")
	}
	if req.NeededQuantity != 25 {
		t.Errorf("Expected needed quantity 25, got %d", req.NeededQuantity)
	}
}

func TestAggregateContainerRequirements_UnpricedMaster(t *testing.T) {
	plans := []*entities.MealPlan{
		plan(t, "mp_a", entities.Lunch, 10, sel("menu_1", "Bulgogi", ref("cont_1", "Tray L"))),
	}

	repo := containerRepo(t, mustContainer(t, "cont_1", "Tray L", "TL", ""))

	requirements := AggregateContainerRequirements(context.Background(), plans, repo, nil, nil)
	req := requirements[0]
	if req.Priced {
		t.Errorf("Expected unpriced row")
	}
	if !req.TotalPrice.IsZero() {
		t.Errorf("Expected zero total price, got %s", req.TotalPrice)
	}
}

func TestAggregateContainerRequirements_MergesStock(t *testing.T) {
	plans := []*entities.MealPlan{
		plan(t, "mp_a", entities.Lunch, 50, sel("menu_1", "Bulgogi", ref("cont_1", "Tray L"))),
	}
	repo := containerRepo(t, mustContainer(t, "cont_1", "Tray L", "TL", "120"))

	updated := time.Date(2025, 3, 13, 18, 0, 0, 0, time.UTC)
	stocks := []*entities.StockSnapshot{
		{ItemID: "cont_1", CurrentQuantity: 35, LastUpdated: updated},
		{ItemID: "cont_unrelated", CurrentQuantity: 99, LastUpdated: updated},
	}

	requirements := AggregateContainerRequirements(context.Background(), plans, repo, stocks, nil)
	req := requirements[0]
	if req.CurrentStock == nil || *req.CurrentStock != 35 {
		t.Errorf("Expected current stock 35, got %v", req.CurrentStock)
	}
	if req.StockUpdatedAt == nil || !req.StockUpdatedAt.Equal(updated) {
		t.Errorf("Expected stock timestamp %v, got %v", updated, req.StockUpdatedAt)
	}
}
