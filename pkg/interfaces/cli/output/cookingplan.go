package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/kaimen83/lunchlab/pkg/application/services/cookingplan"
	"github.com/kaimen83/lunchlab/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	BuildTime time.Duration
}

// Report bundles the aggregated structures handed to the exporters. All
// totals arrive fully aggregated; exporters only render.
type Report struct {
	Plan       *entities.CookingPlan      `json:"cooking_plan"`
	MenuGroups []entities.MenuGroup       `json:"menu_groups,omitempty"`
	PlanCosts  []*cookingplan.MealPlanCost `json:"meal_plan_costs,omitempty"`
}

// Generate creates output in the specified format
func Generate(report *Report, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(report, config)
	case "json":
		return generateJSONOutput(report, config)
	case "csv":
		return generateCSVOutput(report, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(report *Report, config Config) error {
	plan := report.Plan

	fmt.Printf("Cooking Plan for %s\n", plan.Date.Format("2006-01-02"))
	fmt.Printf("==========================\n\n")
	fmt.Printf("Meal Plans: %d\n", len(plan.MealPlans))
	fmt.Printf("Menu Portions: %d\n", len(plan.MenuPortions))
	fmt.Printf("Ingredients: %d\n", len(plan.IngredientRequirements))
	fmt.Printf("Containers: %d\n", len(plan.ContainerRequirements))
	if config.Verbose {
		fmt.Printf("Build Time: %v\n", config.BuildTime)
	}
	fmt.Println()

	if len(plan.MenuPortions) > 0 {
		fmt.Printf("Menu Portions:\n")
		fmt.Printf("%-10s %-24s %-20s %10s %8s\n",
			"Meal", "Menu", "Container", "Headcount", "Flags")
		fmt.Printf("%-10s %-24s %-20s %10s %8s\n",
			"----------", "------------------------", "--------------------", "----------", "--------")
		for _, portion := range plan.MenuPortions {
			fmt.Printf("%-10s %-24s %-20s %10d %8s\n",
				portion.MealTime.String(),
				portion.MenuName,
				containerLabel(portion.Container),
				portion.Headcount,
				portionFlags(portion))
		}
		fmt.Println()
	}

	if len(report.MenuGroups) > 0 {
		fmt.Printf("Menu Groups (by name):\n")
		for _, group := range report.MenuGroups {
			fmt.Printf("  %s: %d servings\n", group.MenuName, group.Headcount)
			for _, split := range group.Splits {
				name := split.ContainerName
				if name == "" {
					name = "(no container)"
				}
				fmt.Printf("    %-20s %d\n", name, split.Headcount)
			}
		}
		fmt.Println()
	}

	if len(plan.IngredientRequirements) > 0 {
		fmt.Printf("Ingredient Requirements:\n")
		fmt.Printf("%-24s %12s %-8s %12s %12s %12s\n",
			"Ingredient", "Amount", "Unit", "Unit Price", "Total", "To Order")
		fmt.Printf("%-24s %12s %-8s %12s %12s %12s\n",
			"------------------------", "------------", "--------", "------------", "------------", "------------")
		for _, req := range plan.IngredientRequirements {
			unitPrice, totalPrice, toOrder := "-", "-", "-"
			if req.PriceAvailable {
				unitPrice = req.UnitPrice.StringFixed(2)
				totalPrice = req.TotalPrice.StringFixed(2)
				toOrder = req.UnitsToOrder.StringFixed(2)
			}
			fmt.Printf("%-24s %12s %-8s %12s %12s %12s\n",
				req.Name,
				req.TotalAmount.String(),
				req.Unit,
				unitPrice,
				totalPrice,
				toOrder)
		}
		fmt.Println()
	}

	if len(plan.ContainerRequirements) > 0 {
		fmt.Printf("Container Requirements:\n")
		fmt.Printf("%-24s %-10s %10s %12s %12s %10s\n",
			"Container", "Code", "Needed", "Price", "Total", "In Stock")
		fmt.Printf("%-24s %-10s %10s %12s %12s %10s\n",
			"------------------------", "----------", "----------", "------------", "------------", "----------")
		for _, req := range plan.ContainerRequirements {
			price, total := "-", "-"
			if req.Priced {
				price = req.Price.StringFixed(2)
				total = req.TotalPrice.StringFixed(2)
			}
			stock := "-"
			if req.CurrentStock != nil {
				stock = fmt.Sprintf("%d", *req.CurrentStock)
			}
			fmt.Printf("%-24s %-10s %10d %12s %12s %10s\n",
				req.Name, req.Code, req.NeededQuantity, price, total, stock)
		}
		fmt.Println()
	}

	if len(report.PlanCosts) > 0 {
		fmt.Printf("Meal Plan Costs:\n")
		fmt.Printf("%-20s %14s %14s %14s %10s\n",
			"Meal Plan", "Ingredients", "Containers", "Total", "Complete")
		fmt.Printf("%-20s %14s %14s %14s %10s\n",
			"--------------------", "--------------", "--------------", "--------------", "----------")
		for _, cost := range report.PlanCosts {
			fmt.Printf("%-20s %14s %14s %14s %10t\n",
				cost.MealPlanID,
				cost.IngredientsCost.StringFixed(2),
				cost.ContainersCost.StringFixed(2),
				cost.TotalCost.StringFixed(2),
				cost.CostComplete)
		}
		fmt.Println()
	}

	return nil
}

// generateJSONOutput writes the full report as JSON to stdout or a file
func generateJSONOutput(report *Report, config Config) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir,
		fmt.Sprintf("cooking_plan_%s.json", report.Plan.Date.Format("2006-01-02")))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if config.Verbose {
		fmt.Printf("Wrote %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes one CSV file per aggregate into the output dir
func generateCSVOutput(report *Report, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("csv output requires an output directory")
	}
	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	date := report.Plan.Date.Format("2006-01-02")
	files := map[string]func(io.Writer, *entities.CookingPlan) error{
		fmt.Sprintf("menu_portions_%s.csv", date):           WriteMenuPortionsCSV,
		fmt.Sprintf("ingredient_requirements_%s.csv", date): WriteIngredientRequirementsCSV,
		fmt.Sprintf("container_requirements_%s.csv", date):  WriteContainerRequirementsCSV,
	}

	for name, write := range files {
		path := filepath.Join(config.OutputDir, name)
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := write(file, report.Plan); err != nil {
			file.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", path, err)
		}
		if config.Verbose {
			fmt.Printf("Wrote %s\n", path)
		}
	}

	return nil
}

// WriteMenuPortionsCSV serializes the aggregated menu portions
func WriteMenuPortionsCSV(w io.Writer, plan *entities.CookingPlan) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"meal_time", "menu_id", "menu_name", "container_id", "container_name", "headcount", "source_meal_plans", "missing_recipe"}); err != nil {
		return err
	}

	for _, portion := range plan.MenuPortions {
		containerID, containerName := "", ""
		if portion.Container != nil {
			containerID = string(portion.Container.ID)
			containerName = portion.Container.Name
		}
		record := []string{
			portion.MealTime.String(),
			string(portion.MenuID),
			portion.MenuName,
			containerID,
			containerName,
			fmt.Sprintf("%d", portion.Headcount),
			fmt.Sprintf("%d", len(portion.SourceMealPlanIDs)),
			fmt.Sprintf("%t", portion.MissingRecipe),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteIngredientRequirementsCSV serializes the aggregated ingredient demand.
// Unavailable prices render as "-" so a missing package amount is visible
// instead of silently zeroed.
func WriteIngredientRequirementsCSV(w io.Writer, plan *entities.CookingPlan) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"ingredient_id", "name", "code_name", "unit", "total_amount", "package_amount", "unit_price", "total_price", "units_to_order"}); err != nil {
		return err
	}

	for _, req := range plan.IngredientRequirements {
		unitPrice, totalPrice, toOrder := "-", "-", "-"
		if req.PriceAvailable {
			unitPrice = req.UnitPrice.String()
			totalPrice = req.TotalPrice.String()
			toOrder = req.UnitsToOrder.String()
		}
		record := []string{
			string(req.IngredientID),
			req.Name,
			req.CodeName,
			req.Unit,
			req.TotalAmount.String(),
			req.PackageAmount.String(),
			unitPrice,
			totalPrice,
			toOrder,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteContainerRequirementsCSV serializes the aggregated container demand
func WriteContainerRequirementsCSV(w io.Writer, plan *entities.CookingPlan) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"container_id", "name", "code", "needed_quantity", "price", "total_price", "current_stock", "stock_updated_at"}); err != nil {
		return err
	}

	for _, req := range plan.ContainerRequirements {
		price := "-"
		if req.Priced {
			price = req.Price.String()
		}
		stock, updatedAt := "", ""
		if req.CurrentStock != nil {
			stock = fmt.Sprintf("%d", *req.CurrentStock)
		}
		if req.StockUpdatedAt != nil {
			updatedAt = req.StockUpdatedAt.Format(time.RFC3339)
		}
		record := []string{
			string(req.ContainerID),
			req.Name,
			req.Code,
			fmt.Sprintf("%d", req.NeededQuantity),
			price,
			req.TotalPrice.String(),
			stock,
			updatedAt,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func containerLabel(ref *entities.ContainerRef) string {
	if ref == nil {
		return "(none)"
	}
	return ref.Name
}

func portionFlags(portion entities.MenuPortion) string {
	switch {
	case portion.DetailUnavailable:
		return "detail?"
	case portion.MissingRecipe:
		return "no-recipe"
	default:
		return ""
	}
}
