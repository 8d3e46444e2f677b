package http

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RouterConfig holds configuration for the HTTP router
type RouterConfig struct {
	AllowOrigins []string
	RateLimit    rate.Limit
	RateBurst    int
}

// NewRouter builds the gin engine with middleware and all API routes
func NewRouter(handler *Handler, logger *slog.Logger, config RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))

	if config.RateLimit > 0 {
		r.Use(RateLimiter(config.RateLimit, config.RateBurst))
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handler.Health)

	api := r.Group("/api")
	{
		api.GET("/cooking-plans/:date", handler.GetCookingPlan)
		api.GET("/cooking-plans/:date/export.csv", handler.ExportCookingPlanCSV)

		api.GET("/containers", handler.ListContainers)

		api.POST("/meal-plans", handler.CreateMealPlan)
		api.GET("/meal-plans/:id", handler.GetMealPlan)
		api.PUT("/meal-plans/:id", handler.UpdateMealPlan)
		api.DELETE("/meal-plans/:id", handler.DeleteMealPlan)
	}

	return r
}
