package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kaimen83/lunchlab/pkg/application/services/cookingplan"
	"github.com/kaimen83/lunchlab/pkg/domain/entities"
	"github.com/kaimen83/lunchlab/pkg/domain/repositories"
	"github.com/kaimen83/lunchlab/pkg/interfaces/cli/output"
)

// Handler exposes the cooking plan engine over HTTP
type Handler struct {
	service    *cookingplan.Service
	mealPlans  repositories.MealPlanRepository
	menus      repositories.MenuRepository
	containers repositories.ContainerRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(
	service *cookingplan.Service,
	mealPlans repositories.MealPlanRepository,
	menus repositories.MenuRepository,
	containers repositories.ContainerRepository,
) *Handler {
	return &Handler{
		service:    service,
		mealPlans:  mealPlans,
		menus:      menus,
		containers: containers,
	}
}

// Health reports service liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetCookingPlan builds and returns the cooking plan for a date.
//
// GET /api/cooking-plans/:date?company_id=...&groups=true&costs=true
func (h *Handler) GetCookingPlan(c *gin.Context) {
	date, err := parseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	companyID := c.Query("company_id")

	plan, err := h.service.BuildCookingPlan(c.Request.Context(), companyID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build cooking plan"})
		return
	}

	response := gin.H{"cooking_plan": plan}

	if c.Query("groups") == "true" {
		response["menu_groups"] = h.service.MenuGroups(c.Request.Context(), plan.MenuPortions)
	}

	if c.Query("costs") == "true" {
		costModel := h.service.CostModel()
		costs := make([]*cookingplan.MealPlanCost, 0, len(plan.MealPlans))
		for _, mealPlan := range plan.MealPlans {
			cost, err := costModel.MealPlanTotalCost(c.Request.Context(), mealPlan)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute meal plan costs"})
				return
			}
			costs = append(costs, cost)
		}
		response["meal_plan_costs"] = costs
	}

	c.JSON(http.StatusOK, response)
}

// ExportCookingPlanCSV streams one of the plan's aggregates as a CSV file.
//
// GET /api/cooking-plans/:date/export.csv?company_id=...&table=ingredients
func (h *Handler) ExportCookingPlanCSV(c *gin.Context) {
	date, err := parseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	companyID := c.Query("company_id")

	table := c.DefaultQuery("table", "ingredients")
	var write func(c *gin.Context, plan *entities.CookingPlan) error
	switch table {
	case "ingredients":
		write = func(c *gin.Context, plan *entities.CookingPlan) error {
			return output.WriteIngredientRequirementsCSV(c.Writer, plan)
		}
	case "containers":
		write = func(c *gin.Context, plan *entities.CookingPlan) error {
			return output.WriteContainerRequirementsCSV(c.Writer, plan)
		}
	case "portions":
		write = func(c *gin.Context, plan *entities.CookingPlan) error {
			return output.WriteMenuPortionsCSV(c.Writer, plan)
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown table %q", table)})
		return
	}

	plan, err := h.service.BuildCookingPlan(c.Request.Context(), companyID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build cooking plan"})
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", table, date.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	if err := write(c, plan); err != nil {
		_ = c.Error(err)
	}
}

// ListContainers returns all container masters.
//
// GET /api/containers
func (h *Handler) ListContainers(c *gin.Context) {
	containers, err := h.containers.GetAllContainers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list containers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"containers": containers})
}

// mealPlanRequest is the JSON body for creating or replacing a meal plan
type mealPlanRequest struct {
	CompanyID  string                       `json:"company_id" binding:"required"`
	Date       string                       `json:"date" binding:"required"`
	MealTime   string                       `json:"meal_time" binding:"required"`
	Name       string                       `json:"name" binding:"required"`
	Headcount  int64                        `json:"headcount"`
	Selections []entities.MealPlanSelection `json:"selections"`
}

func (r *mealPlanRequest) toEntity(id entities.MealPlanID) (*entities.MealPlan, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return nil, err
	}
	mealTime, err := entities.ParseMealTime(r.MealTime)
	if err != nil {
		return nil, err
	}
	return entities.NewMealPlan(id, r.CompanyID, date, mealTime, r.Name, r.Headcount, r.Selections)
}

// CreateMealPlan registers a new meal plan.
//
// POST /api/meal-plans
func (h *Handler) CreateMealPlan(c *gin.Context) {
	var req mealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	plan, err := req.toEntity(entities.MealPlanID(uuid.NewString()))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.fillMenuNames(c.Request.Context(), plan)

	if err := h.mealPlans.SaveMealPlan(c.Request.Context(), plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save meal plan"})
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// GetMealPlan returns one meal plan by id.
//
// GET /api/meal-plans/:id
func (h *Handler) GetMealPlan(c *gin.Context) {
	id := entities.MealPlanID(c.Param("id"))

	plan, err := h.mealPlans.GetMealPlan(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get meal plan"})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// UpdateMealPlan replaces an existing meal plan.
//
// PUT /api/meal-plans/:id
func (h *Handler) UpdateMealPlan(c *gin.Context) {
	id := entities.MealPlanID(c.Param("id"))

	if _, err := h.mealPlans.GetMealPlan(c.Request.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get meal plan"})
		return
	}

	var req mealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	plan, err := req.toEntity(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.fillMenuNames(c.Request.Context(), plan)

	if err := h.mealPlans.SaveMealPlan(c.Request.Context(), plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save meal plan"})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DeleteMealPlan removes a meal plan by id.
//
// DELETE /api/meal-plans/:id
func (h *Handler) DeleteMealPlan(c *gin.Context) {
	id := entities.MealPlanID(c.Param("id"))

	if err := h.mealPlans.DeleteMealPlan(c.Request.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete meal plan"})
		return
	}

	c.Status(http.StatusNoContent)
}

// fillMenuNames denormalizes the menu master name onto selections that were
// submitted without one, so the name survives later menu deletion. An unknown
// menu leaves the name empty rather than rejecting the plan.
func (h *Handler) fillMenuNames(ctx context.Context, plan *entities.MealPlan) {
	for i := range plan.Selections {
		if plan.Selections[i].MenuName != "" {
			continue
		}
		menu, err := h.menus.GetMenu(ctx, plan.Selections[i].MenuID)
		if err != nil {
			continue
		}
		plan.Selections[i].MenuName = menu.Name
	}
}

// parseDate accepts the short form used in URLs and request bodies, plus the
// RFC 3339 form the API itself emits, so a fetched plan can be sent back
// unedited.
func parseDate(value string) (time.Time, error) {
	if date, err := time.Parse("2006-01-02", value); err == nil {
		return date, nil
	}
	if date, err := time.Parse(time.RFC3339, value); err == nil {
		return date, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
}
