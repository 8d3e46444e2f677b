package gormdb

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
)

// MealPlanModel is the persisted form of a meal plan. Selections are kept as
// a JSON document; the engine never queries inside them.
type MealPlanModel struct {
	ID         string         `gorm:"primaryKey"`
	CompanyID  string         `gorm:"index:idx_meal_plans_company_date"`
	Date       time.Time      `gorm:"index:idx_meal_plans_company_date"`
	MealTime   string         `gorm:"not null"`
	Name       string         `gorm:"not null"`
	Headcount  int64          `gorm:"not null;default:0"`
	Selections datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for MealPlanModel
func (MealPlanModel) TableName() string { return "meal_plans" }

// MenuModel is the persisted menu master
type MenuModel struct {
	ID   string `gorm:"primaryKey"`
	Name string `gorm:"not null;index"`
}

// TableName specifies the table name for MenuModel
func (MenuModel) TableName() string { return "menus" }

// MenuContainerModel is the persisted menu-container recipe join
type MenuContainerModel struct {
	MenuID          string          `gorm:"primaryKey"`
	ContainerID     string          `gorm:"primaryKey"`
	IngredientsCost decimal.Decimal `gorm:"type:decimal(20,6)"`
	Ingredients     datatypes.JSON  `gorm:"not null"`
}

// TableName specifies the table name for MenuContainerModel
func (MenuContainerModel) TableName() string { return "menu_containers" }

// PriceRecordModel is one persisted menu price history entry
type PriceRecordModel struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"`
	MenuID     string          `gorm:"not null;index"`
	Cost       decimal.Decimal `gorm:"type:decimal(20,6)"`
	RecordedAt *time.Time
}

// TableName specifies the table name for PriceRecordModel
func (PriceRecordModel) TableName() string { return "menu_price_history" }

// IngredientModel is the persisted ingredient master
type IngredientModel struct {
	ID            string          `gorm:"primaryKey"`
	Name          string          `gorm:"not null;index"`
	CodeName      string
	Unit          string
	Price         decimal.Decimal `gorm:"type:decimal(20,6)"`
	PackageAmount decimal.Decimal `gorm:"type:decimal(20,6)"`
}

// TableName specifies the table name for IngredientModel
func (IngredientModel) TableName() string { return "ingredients" }

// ContainerModel is the persisted container master
type ContainerModel struct {
	ID       string          `gorm:"primaryKey"`
	Name     string          `gorm:"not null;index"`
	Code     string
	Price    decimal.Decimal `gorm:"type:decimal(20,6)"`
	HasPrice bool            `gorm:"not null;default:false"`
}

// TableName specifies the table name for ContainerModel
func (ContainerModel) TableName() string { return "containers" }

// StockSnapshotModel is the persisted on-hand stock reading per company and
// container
type StockSnapshotModel struct {
	CompanyID       string    `gorm:"primaryKey"`
	ContainerID     string    `gorm:"primaryKey"`
	CurrentQuantity int64     `gorm:"not null;default:0"`
	LastUpdated     time.Time `gorm:"not null"`
}

// TableName specifies the table name for StockSnapshotModel
func (StockSnapshotModel) TableName() string { return "stock_snapshots" }

func (m *MealPlanModel) toEntity() (*entities.MealPlan, error) {
	mealTime, err := entities.ParseMealTime(m.MealTime)
	if err != nil {
		return nil, fmt.Errorf("meal plan %s: %w", m.ID, err)
	}

	var selections []entities.MealPlanSelection
	if len(m.Selections) > 0 {
		if err := json.Unmarshal(m.Selections, &selections); err != nil {
			return nil, fmt.Errorf("meal plan %s: failed to decode selections: %w", m.ID, err)
		}
	}

	return &entities.MealPlan{
		ID:         entities.MealPlanID(m.ID),
		CompanyID:  m.CompanyID,
		Date:       m.Date,
		MealTime:   mealTime,
		Name:       m.Name,
		Headcount:  m.Headcount,
		Selections: selections,
	}, nil
}

func mealPlanModel(plan *entities.MealPlan) (*MealPlanModel, error) {
	selections, err := json.Marshal(plan.Selections)
	if err != nil {
		return nil, fmt.Errorf("meal plan %s: failed to encode selections: %w", plan.ID, err)
	}

	return &MealPlanModel{
		ID:         string(plan.ID),
		CompanyID:  plan.CompanyID,
		Date:       plan.Date,
		MealTime:   plan.MealTime.String(),
		Name:       plan.Name,
		Headcount:  plan.Headcount,
		Selections: selections,
	}, nil
}

func (m *MenuContainerModel) toEntity() (*entities.MenuContainer, error) {
	var lines []entities.RecipeLine
	if len(m.Ingredients) > 0 {
		if err := json.Unmarshal(m.Ingredients, &lines); err != nil {
			return nil, fmt.Errorf("menu-container %s/%s: failed to decode ingredients: %w", m.MenuID, m.ContainerID, err)
		}
	}

	return &entities.MenuContainer{
		MenuID:          entities.MenuID(m.MenuID),
		ContainerID:     entities.ContainerID(m.ContainerID),
		IngredientsCost: m.IngredientsCost,
		Ingredients:     lines,
	}, nil
}
