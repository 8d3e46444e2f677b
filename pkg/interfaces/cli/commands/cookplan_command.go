package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kaimen83/lunchlab/pkg/application/services/cookingplan"
	"github.com/kaimen83/lunchlab/pkg/infrastructure/repositories/csv"
	"github.com/kaimen83/lunchlab/pkg/infrastructure/repositories/memory"
	"github.com/kaimen83/lunchlab/pkg/interfaces/cli/output"
)

// Config holds configuration for the cooking plan command
type Config struct {
	ScenarioDir string
	CompanyID   string
	Date        string
	OutputDir   string
	Format      string
	Verbose     bool
	WithGroups  bool
	WithCosts   bool
	Help        bool
}

// CookPlanCommand handles the cooking plan build
type CookPlanCommand struct {
	config Config
	logger *slog.Logger
}

// NewCookPlanCommand creates a new cooking plan command with the given
// configuration
func NewCookPlanCommand(config Config, logger *slog.Logger) *CookPlanCommand {
	return &CookPlanCommand{
		config: config,
		logger: logger,
	}
}

// Execute runs the cooking plan command
func (c *CookPlanCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	date, err := time.Parse("2006-01-02", c.config.Date)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", c.config.Date, err)
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		c.printHeader(files)
	}

	service, err := c.buildService(files)
	if err != nil {
		return err
	}

	startTime := time.Now()
	plan, err := service.BuildCookingPlan(ctx, c.config.CompanyID, date)
	buildTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("error building cooking plan: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("Cooking plan built in %v\n\n", buildTime)
	}

	report := &output.Report{Plan: plan}

	if c.config.WithGroups {
		report.MenuGroups = service.MenuGroups(ctx, plan.MenuPortions)
	}

	if c.config.WithCosts {
		costModel := service.CostModel()
		for _, mealPlan := range plan.MealPlans {
			cost, err := costModel.MealPlanTotalCost(ctx, mealPlan)
			if err != nil {
				fmt.Printf("Warning: failed to cost meal plan %s: %v\n", mealPlan.ID, err)
				continue
			}
			report.PlanCosts = append(report.PlanCosts, cost)
		}
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		BuildTime: buildTime,
	}
	if err := output.Generate(report, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// buildService loads the scenario CSV files into memory repositories and
// wires the aggregation service on top of them
func (c *CookPlanCommand) buildService(files map[string]string) (*cookingplan.Service, error) {
	loader := csv.NewLoader()

	plans, err := loader.LoadMealPlans(files["MealPlans"], files["Selections"])
	if err != nil {
		return nil, fmt.Errorf("error loading meal plans: %w", err)
	}

	joins, err := loader.LoadMenuContainers(files["MenuContainers"], files["RecipeLines"])
	if err != nil {
		return nil, fmt.Errorf("error loading recipes: %w", err)
	}

	history, err := loader.LoadPriceHistory(files["PriceHistory"])
	if err != nil {
		return nil, fmt.Errorf("error loading price history: %w", err)
	}

	ingredients, err := loader.LoadIngredients(files["Ingredients"])
	if err != nil {
		return nil, fmt.Errorf("error loading ingredients: %w", err)
	}

	containers, err := loader.LoadContainers(files["Containers"])
	if err != nil {
		return nil, fmt.Errorf("error loading containers: %w", err)
	}

	stocks, err := loader.LoadStock(files["Stock"])
	if err != nil {
		return nil, fmt.Errorf("error loading stock: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("Data loaded:\n")
		fmt.Printf("  Meal Plans: %d\n", len(plans))
		fmt.Printf("  Recipes: %d\n", len(joins))
		fmt.Printf("  Price History: %d\n", len(history))
		fmt.Printf("  Ingredients: %d\n", len(ingredients))
		fmt.Printf("  Containers: %d\n", len(containers))
		fmt.Println()
	}

	mealPlanRepo := memory.NewMealPlanRepository()
	if err := mealPlanRepo.LoadMealPlans(plans); err != nil {
		return nil, fmt.Errorf("failed to load meal plans into repository: %w", err)
	}

	menuRepo := memory.NewMenuRepository()
	for _, join := range joins {
		menuRepo.AddMenuContainer(*join)
	}
	for _, record := range history {
		menuRepo.AddPriceRecord(*record)
	}

	containerRepo := memory.NewContainerRepository()
	for _, container := range containers {
		containerRepo.AddContainer(*container)
	}

	ingredientRepo := memory.NewIngredientRepository()
	for _, ingredient := range ingredients {
		ingredientRepo.AddIngredient(*ingredient)
	}

	stockRepo := memory.NewStockRepository()
	for companyID, snapshots := range stocks {
		for _, snapshot := range snapshots {
			stockRepo.AddSnapshot(companyID, *snapshot)
		}
	}

	return cookingplan.NewService(
		mealPlanRepo,
		menuRepo,
		containerRepo,
		ingredientRepo,
		stockRepo,
		c.logger,
	), nil
}

// validateInputs validates the command configuration
func (c *CookPlanCommand) validateInputs() error {
	if c.config.ScenarioDir == "" {
		return fmt.Errorf("must specify a -scenario directory")
	}
	if c.config.Date == "" {
		return fmt.Errorf("must specify a -date (YYYY-MM-DD)")
	}
	return nil
}

// resolveInputFiles determines the actual file paths to use
func (c *CookPlanCommand) resolveInputFiles() (map[string]string, error) {
	files := map[string]string{
		"MealPlans":      filepath.Join(c.config.ScenarioDir, "meal_plans.csv"),
		"Selections":     filepath.Join(c.config.ScenarioDir, "selections.csv"),
		"MenuContainers": filepath.Join(c.config.ScenarioDir, "menu_containers.csv"),
		"RecipeLines":    filepath.Join(c.config.ScenarioDir, "recipe_lines.csv"),
		"PriceHistory":   filepath.Join(c.config.ScenarioDir, "price_history.csv"),
		"Ingredients":    filepath.Join(c.config.ScenarioDir, "ingredients.csv"),
		"Containers":     filepath.Join(c.config.ScenarioDir, "containers.csv"),
		"Stock":          filepath.Join(c.config.ScenarioDir, "stock.csv"),
	}

	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

// printHeader prints the command header information
func (c *CookPlanCommand) printHeader(files map[string]string) {
	fmt.Printf("Cooking Plan CLI\n")
	fmt.Printf("Scenario: %s\n", c.config.ScenarioDir)
	fmt.Printf("Company: %s\n", c.config.CompanyID)
	fmt.Printf("Date: %s\n", c.config.Date)
	fmt.Printf("Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Printf("Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Println()
}

// showHelp displays the help message
func (c *CookPlanCommand) showHelp() {
	fmt.Printf(`Cooking Plan CLI - requirement aggregation for catering operations

USAGE:
    cookplan -scenario <directory> -date <YYYY-MM-DD> [options]

OPTIONS:
    -scenario <dir>     Path to scenario directory containing CSV files
    -company <id>       Company to aggregate (empty means all companies)
    -date <date>        Service date to aggregate, YYYY-MM-DD
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, csv (default: text)
    -groups             Include menu groups collapsed by menu name
    -costs              Include per-meal-plan cost estimates
    -verbose            Enable verbose output
    -help               Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
        meal_plans.csv       # Meal plans: id,company_id,date,meal_time,name,headcount
        selections.csv       # Menu picks: meal_plan_id,menu_id,menu_name,container_id,container_name
        menu_containers.csv  # Recipe joins: menu_id,container_id,ingredients_cost
        recipe_lines.csv     # Recipe lines: menu_id,container_id,ingredient_id,ingredient_name,amount
        price_history.csv    # Menu prices: menu_id,cost,recorded_at
        ingredients.csv      # Masters: id,name,code_name,unit,price,package_amount
        containers.csv       # Masters: id,name,code,price
        stock.csv            # Snapshots: company_id,container_id,current_quantity,last_updated

EXAMPLES:
    # Aggregate one company's plans for a date
    cookplan -scenario example/daily_catering -company comp_1 -date 2025-03-14

    # Full report with name groups and cost estimates
    cookplan -scenario example/daily_catering -date 2025-03-14 -groups -costs -verbose

    # Export CSV files for the kitchen
    cookplan -scenario example/daily_catering -date 2025-03-14 -format csv -output results/
`)
}
