package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/kaimen83/lunchlab/pkg/application/services/cookingplan"
	"github.com/kaimen83/lunchlab/pkg/infrastructure/repositories/gormdb"
	httpapi "github.com/kaimen83/lunchlab/pkg/interfaces/http"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	dsn := getenv("DATABASE_PATH", "lunchlab.db")
	db, err := gormdb.Open(dsn)
	if err != nil {
		logger.Error("failed to open database", "path", dsn, "error", err)
		os.Exit(1)
	}

	mealPlanRepo := gormdb.NewMealPlanRepository(db)
	menuRepo := gormdb.NewMenuRepository(db)
	containerRepo := gormdb.NewContainerRepository(db)
	ingredientRepo := gormdb.NewIngredientRepository(db)
	stockRepo := gormdb.NewStockRepository(db)

	service := cookingplan.NewService(
		mealPlanRepo,
		menuRepo,
		containerRepo,
		ingredientRepo,
		stockRepo,
		logger,
	)

	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := httpapi.NewHandler(service, mealPlanRepo, menuRepo, containerRepo)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		AllowOrigins: splitList(getenv("CORS_ORIGINS", "http://localhost:3000")),
		RateLimit:    rate.Limit(getenvFloat("RATE_LIMIT_RPS", 50)),
		RateBurst:    getenvInt("RATE_LIMIT_BURST", 100),
	})

	addr := fmt.Sprintf(":%s", getenv("PORT", "8080"))
	logger.Info("starting server", "addr", addr, "database", dsn)
	if err := router.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getenvFloat(key string, fallback float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return value
}

func splitList(value string) []string {
	origins := strings.Split(value, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}
