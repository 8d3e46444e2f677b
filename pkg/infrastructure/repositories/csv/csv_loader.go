package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
)

// Loader handles loading cooking-plan scenario data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadMealPlans loads meal plans and their selections from two CSV files.
// Selections reference plans by id; a selection for an unknown plan id is an
// error since the scenario files are expected to be consistent.
func (l *Loader) LoadMealPlans(plansFile, selectionsFile string) ([]*entities.MealPlan, error) {
	records, err := readCSV(plansFile, []string{"id", "company_id", "date", "meal_time", "name", "headcount"})
	if err != nil {
		return nil, fmt.Errorf("meal plans: %w", err)
	}

	var plans []*entities.MealPlan
	plansByID := make(map[entities.MealPlanID]*entities.MealPlan)
	for i, record := range records {
		date, err := time.Parse("2006-01-02", record[2])
		if err != nil {
			return nil, fmt.Errorf("meal plans row %d: invalid date %q: %w", i+2, record[2], err)
		}
		mealTime, err := entities.ParseMealTime(record[3])
		if err != nil {
			return nil, fmt.Errorf("meal plans row %d: %w", i+2, err)
		}
		headcount, err := strconv.ParseInt(record[5], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("meal plans row %d: invalid headcount %q: %w", i+2, record[5], err)
		}

		plan, err := entities.NewMealPlan(
			entities.MealPlanID(record[0]),
			record[1],
			date,
			mealTime,
			record[4],
			headcount,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("meal plans row %d: %w", i+2, err)
		}
		plans = append(plans, plan)
		plansByID[plan.ID] = plan
	}

	selections, err := readCSV(selectionsFile, []string{"meal_plan_id", "menu_id", "menu_name", "container_id", "container_name"})
	if err != nil {
		return nil, fmt.Errorf("selections: %w", err)
	}

	for i, record := range selections {
		plan, exists := plansByID[entities.MealPlanID(record[0])]
		if !exists {
			return nil, fmt.Errorf("selections row %d: unknown meal plan id %q", i+2, record[0])
		}

		selection := entities.MealPlanSelection{
			MenuID:   entities.MenuID(record[1]),
			MenuName: record[2],
		}
		if record[3] != "" {
			selection.Container = &entities.ContainerRef{
				ID:   entities.ContainerID(record[3]),
				Name: record[4],
			}
		}
		plan.Selections = append(plan.Selections, selection)
	}

	return plans, nil
}

// LoadMenuContainers loads recipe joins from a join file and a recipe line
// file keyed by (menu_id, container_id)
func (l *Loader) LoadMenuContainers(joinsFile, linesFile string) ([]*entities.MenuContainer, error) {
	records, err := readCSV(joinsFile, []string{"menu_id", "container_id", "ingredients_cost"})
	if err != nil {
		return nil, fmt.Errorf("menu containers: %w", err)
	}

	type joinKey struct {
		menuID      entities.MenuID
		containerID entities.ContainerID
	}
	var joins []*entities.MenuContainer
	joinsByKey := make(map[joinKey]*entities.MenuContainer)
	for i, record := range records {
		cost := decimal.Zero
		if record[2] != "" {
			cost, err = decimal.NewFromString(record[2])
			if err != nil {
				return nil, fmt.Errorf("menu containers row %d: invalid cost %q: %w", i+2, record[2], err)
			}
		}

		join := &entities.MenuContainer{
			MenuID:          entities.MenuID(record[0]),
			ContainerID:     entities.ContainerID(record[1]),
			IngredientsCost: cost,
		}
		joins = append(joins, join)
		joinsByKey[joinKey{join.MenuID, join.ContainerID}] = join
	}

	lines, err := readCSV(linesFile, []string{"menu_id", "container_id", "ingredient_id", "ingredient_name", "amount"})
	if err != nil {
		return nil, fmt.Errorf("recipe lines: %w", err)
	}

	for i, record := range lines {
		key := joinKey{entities.MenuID(record[0]), entities.ContainerID(record[1])}
		join, exists := joinsByKey[key]
		if !exists {
			return nil, fmt.Errorf("recipe lines row %d: unknown menu-container %s/%s", i+2, record[0], record[1])
		}

		amount, err := decimal.NewFromString(record[4])
		if err != nil {
			return nil, fmt.Errorf("recipe lines row %d: invalid amount %q: %w", i+2, record[4], err)
		}
		join.Ingredients = append(join.Ingredients, entities.RecipeLine{
			IngredientID: entities.IngredientID(record[2]),
			Name:         record[3],
			Amount:       amount,
		})
	}

	return joins, nil
}

// LoadPriceHistory loads menu price history entries, preserving file order
func (l *Loader) LoadPriceHistory(filename string) ([]*entities.PriceRecord, error) {
	records, err := readCSV(filename, []string{"menu_id", "cost", "recorded_at"})
	if err != nil {
		return nil, fmt.Errorf("price history: %w", err)
	}

	var history []*entities.PriceRecord
	for i, record := range records {
		cost, err := decimal.NewFromString(record[1])
		if err != nil {
			return nil, fmt.Errorf("price history row %d: invalid cost %q: %w", i+2, record[1], err)
		}

		entry := &entities.PriceRecord{
			MenuID: entities.MenuID(record[0]),
			Cost:   cost,
		}
		if record[2] != "" {
			recordedAt, err := time.Parse(time.RFC3339, record[2])
			if err != nil {
				return nil, fmt.Errorf("price history row %d: invalid recorded_at %q: %w", i+2, record[2], err)
			}
			entry.RecordedAt = &recordedAt
		}
		history = append(history, entry)
	}

	return history, nil
}

// LoadIngredients loads ingredient masters from a CSV file
func (l *Loader) LoadIngredients(filename string) ([]*entities.Ingredient, error) {
	records, err := readCSV(filename, []string{"id", "name", "code_name", "unit", "price", "package_amount"})
	if err != nil {
		return nil, fmt.Errorf("ingredients: %w", err)
	}

	var ingredients []*entities.Ingredient
	for i, record := range records {
		price, err := decimal.NewFromString(record[4])
		if err != nil {
			return nil, fmt.Errorf("ingredients row %d: invalid price %q: %w", i+2, record[4], err)
		}
		packageAmount := decimal.Zero
		if record[5] != "" {
			packageAmount, err = decimal.NewFromString(record[5])
			if err != nil {
				return nil, fmt.Errorf("ingredients row %d: invalid package_amount %q: %w", i+2, record[5], err)
			}
		}

		ingredient, err := entities.NewIngredient(
			entities.IngredientID(record[0]),
			record[1],
			record[2],
			record[3],
			price,
			packageAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("ingredients row %d: %w", i+2, err)
		}
		ingredients = append(ingredients, ingredient)
	}

	return ingredients, nil
}

// LoadContainers loads container masters from a CSV file. An empty price
// field means the container is unpriced.
func (l *Loader) LoadContainers(filename string) ([]*entities.Container, error) {
	records, err := readCSV(filename, []string{"id", "name", "code", "price"})
	if err != nil {
		return nil, fmt.Errorf("containers: %w", err)
	}

	var containers []*entities.Container
	for i, record := range records {
		price := decimal.Zero
		hasPrice := false
		if record[3] != "" {
			price, err = decimal.NewFromString(record[3])
			if err != nil {
				return nil, fmt.Errorf("containers row %d: invalid price %q: %w", i+2, record[3], err)
			}
			hasPrice = true
		}

		container, err := entities.NewContainer(
			entities.ContainerID(record[0]),
			record[1],
			record[2],
			price,
			hasPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("containers row %d: %w", i+2, err)
		}
		containers = append(containers, container)
	}

	return containers, nil
}

// LoadStock loads stock snapshots from a CSV file, grouped by company
func (l *Loader) LoadStock(filename string) (map[string][]*entities.StockSnapshot, error) {
	records, err := readCSV(filename, []string{"company_id", "container_id", "current_quantity", "last_updated"})
	if err != nil {
		return nil, fmt.Errorf("stock: %w", err)
	}

	snapshots := make(map[string][]*entities.StockSnapshot)
	for i, record := range records {
		quantity, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("stock row %d: invalid current_quantity %q: %w", i+2, record[2], err)
		}
		lastUpdated, err := time.Parse(time.RFC3339, record[3])
		if err != nil {
			return nil, fmt.Errorf("stock row %d: invalid last_updated %q: %w", i+2, record[3], err)
		}

		snapshots[record[0]] = append(snapshots[record[0]], &entities.StockSnapshot{
			ItemID:          entities.ContainerID(record[1]),
			CurrentQuantity: quantity,
			LastUpdated:     lastUpdated,
		})
	}

	return snapshots, nil
}

// readCSV reads a CSV file, validates its header, and returns the data rows
func readCSV(filename string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s: file is empty", filename)
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s: header mismatch. Expected: %v, Got: %v", filename, expectedHeader, records[0])
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filename, i+2, len(expectedHeader), len(record))
		}
	}

	return records[1:], nil
}

// validateHeader checks that a CSV header matches the expected column names
func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return false
		}
	}
	return true
}
