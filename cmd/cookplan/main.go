package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/kaimen83/lunchlab/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		companyID  = flag.String("company", "", "Company to aggregate (empty means all companies)")
		date       = flag.String("date", "", "Service date to aggregate, YYYY-MM-DD")
		outputDir  = flag.String("output", "", "Output directory for results (optional)")
		format     = flag.String("format", "text", "Output format: text, json, csv")
		withGroups = flag.Bool("groups", false, "Include menu groups collapsed by menu name")
		withCosts  = flag.Bool("costs", false, "Include per-meal-plan cost estimates")
		verbose    = flag.Bool("verbose", false, "Enable verbose output")
		help       = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		ScenarioDir: *scenarioDir,
		CompanyID:   *companyID,
		Date:        *date,
		OutputDir:   *outputDir,
		Format:      *format,
		Verbose:     *verbose,
		WithGroups:  *withGroups,
		WithCosts:   *withCosts,
		Help:        *help,
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	// Create and execute command
	cmd := commands.NewCookPlanCommand(config, logger)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
