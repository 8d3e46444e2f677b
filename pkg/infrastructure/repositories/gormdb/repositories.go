package gormdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
	"github.com/kaimen83/lunchlab/pkg/domain/repositories"
)

// MealPlanRepository is the gorm-backed meal plan store
type MealPlanRepository struct {
	db *gorm.DB
}

// NewMealPlanRepository creates a gorm-backed meal plan repository
func NewMealPlanRepository(db *gorm.DB) *MealPlanRepository {
	return &MealPlanRepository{db: db}
}

// Verify interface compliance
var _ repositories.MealPlanRepository = (*MealPlanRepository)(nil)

// GetMealPlans returns the meal plans for a company on a date
func (r *MealPlanRepository) GetMealPlans(
	ctx context.Context,
	companyID string,
	date time.Time,
) ([]*entities.MealPlan, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Order("meal_time, name, id")
	if companyID != "" {
		query = query.Where("company_id = ?", companyID)
	}

	var models []MealPlanModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to query meal plans: %w", err)
	}

	plans := make([]*entities.MealPlan, 0, len(models))
	for i := range models {
		plan, err := models[i].toEntity()
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// GetMealPlan returns one meal plan by id
func (r *MealPlanRepository) GetMealPlan(
	ctx context.Context,
	id entities.MealPlanID,
) (*entities.MealPlan, error) {
	var model MealPlanModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", string(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("meal plan %s: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query meal plan %s: %w", id, err)
	}
	return model.toEntity()
}

// SaveMealPlan inserts or replaces a meal plan
func (r *MealPlanRepository) SaveMealPlan(ctx context.Context, plan *entities.MealPlan) error {
	model, err := mealPlanModel(plan)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save meal plan %s: %w", plan.ID, err)
	}
	return nil
}

// DeleteMealPlan removes a meal plan by id
func (r *MealPlanRepository) DeleteMealPlan(ctx context.Context, id entities.MealPlanID) error {
	result := r.db.WithContext(ctx).Delete(&MealPlanModel{}, "id = ?", string(id))
	if result.Error != nil {
		return fmt.Errorf("failed to delete meal plan %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("meal plan %s: %w", id, repositories.ErrNotFound)
	}
	return nil
}

// MenuRepository is the gorm-backed menu master store
type MenuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates a gorm-backed menu repository
func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// Verify interface compliance
var _ repositories.MenuRepository = (*MenuRepository)(nil)

// GetMenu returns a menu master record by id
func (r *MenuRepository) GetMenu(ctx context.Context, id entities.MenuID) (*entities.Menu, error) {
	var model MenuModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", string(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("menu %s: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query menu %s: %w", id, err)
	}
	return &entities.Menu{ID: entities.MenuID(model.ID), Name: model.Name}, nil
}

// GetMenuContainer returns the recipe join for a menu-container combination
func (r *MenuRepository) GetMenuContainer(
	ctx context.Context,
	menuID entities.MenuID,
	containerID entities.ContainerID,
) (*entities.MenuContainer, error) {
	var model MenuContainerModel
	err := r.db.WithContext(ctx).
		First(&model, "menu_id = ? AND container_id = ?", string(menuID), string(containerID)).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("menu-container %s/%s: %w", menuID, containerID, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query menu-container %s/%s: %w", menuID, containerID, err)
	}
	return model.toEntity()
}

// GetPriceHistory returns a menu's price entries in stored order
func (r *MenuRepository) GetPriceHistory(
	ctx context.Context,
	menuID entities.MenuID,
) ([]*entities.PriceRecord, error) {
	var models []PriceRecordModel
	err := r.db.WithContext(ctx).
		Where("menu_id = ?", string(menuID)).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query price history for %s: %w", menuID, err)
	}

	records := make([]*entities.PriceRecord, 0, len(models))
	for i := range models {
		records = append(records, &entities.PriceRecord{
			MenuID:     entities.MenuID(models[i].MenuID),
			Cost:       models[i].Cost,
			RecordedAt: models[i].RecordedAt,
		})
	}
	return records, nil
}

// ContainerRepository is the gorm-backed container master store
type ContainerRepository struct {
	db *gorm.DB
}

// NewContainerRepository creates a gorm-backed container repository
func NewContainerRepository(db *gorm.DB) *ContainerRepository {
	return &ContainerRepository{db: db}
}

// Verify interface compliance
var _ repositories.ContainerRepository = (*ContainerRepository)(nil)

// GetContainer returns a container master record by id
func (r *ContainerRepository) GetContainer(
	ctx context.Context,
	id entities.ContainerID,
) (*entities.Container, error) {
	var model ContainerModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", string(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("container %s: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query container %s: %w", id, err)
	}
	return containerEntity(&model), nil
}

// GetAllContainers returns all container master records
func (r *ContainerRepository) GetAllContainers(ctx context.Context) ([]*entities.Container, error) {
	var models []ContainerModel
	if err := r.db.WithContext(ctx).Order("name, id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to query containers: %w", err)
	}

	containers := make([]*entities.Container, 0, len(models))
	for i := range models {
		containers = append(containers, containerEntity(&models[i]))
	}
	return containers, nil
}

func containerEntity(model *ContainerModel) *entities.Container {
	return &entities.Container{
		ID:       entities.ContainerID(model.ID),
		Name:     model.Name,
		Code:     model.Code,
		Price:    model.Price,
		HasPrice: model.HasPrice,
	}
}

// IngredientRepository is the gorm-backed ingredient master store
type IngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a gorm-backed ingredient repository
func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// Verify interface compliance
var _ repositories.IngredientRepository = (*IngredientRepository)(nil)

// GetIngredient returns an ingredient master record by id
func (r *IngredientRepository) GetIngredient(
	ctx context.Context,
	id entities.IngredientID,
) (*entities.Ingredient, error) {
	var model IngredientModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", string(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ingredient %s: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query ingredient %s: %w", id, err)
	}

	return &entities.Ingredient{
		ID:            entities.IngredientID(model.ID),
		Name:          model.Name,
		CodeName:      model.CodeName,
		Unit:          model.Unit,
		Price:         model.Price,
		PackageAmount: model.PackageAmount,
	}, nil
}

// StockRepository is the gorm-backed stock snapshot store
type StockRepository struct {
	db *gorm.DB
}

// NewStockRepository creates a gorm-backed stock repository
func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

// Verify interface compliance
var _ repositories.StockRepository = (*StockRepository)(nil)

// GetStockSnapshots returns the stock snapshots recorded for a company
func (r *StockRepository) GetStockSnapshots(
	ctx context.Context,
	companyID string,
) ([]*entities.StockSnapshot, error) {
	var models []StockSnapshotModel
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("container_id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query stock snapshots: %w", err)
	}

	snapshots := make([]*entities.StockSnapshot, 0, len(models))
	for i := range models {
		snapshots = append(snapshots, &entities.StockSnapshot{
			ItemID:          entities.ContainerID(models[i].ContainerID),
			CurrentQuantity: models[i].CurrentQuantity,
			LastUpdated:     models[i].LastUpdated,
		})
	}
	return snapshots, nil
}
