package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pulsemind/fitness-coach/internal/domain"
	"pulsemind/fitness-coach/internal/service"
)

// PlanHandler holds the plan and export service dependencies.
type PlanHandler struct {
	planService   service.PlanService
	exportService service.ExportService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService, exportService service.ExportService) *PlanHandler {
	return &PlanHandler{
		planService:   planService,
		exportService: exportService,
	}
}

// --- Request/Response Structs ---

type CreatePlanRequest struct {
	Name        string             `json:"name" binding:"required"`
	WorkoutPlan domain.WorkoutPlan `json:"workoutPlan" binding:"required"`
	DietPlan    domain.DietPlan    `json:"dietPlan" binding:"required"`
}

type PlanResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	WorkoutPlan domain.WorkoutPlan `json:"workoutPlan"`
	DietPlan    domain.DietPlan    `json:"dietPlan"`
	IsActive    bool               `json:"isActive"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type ExportResponse struct {
	ID          string    `json:"id"`
	PlanID      string    `json:"planId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	GeneratedAt time.Time `json:"generatedAt"`
	DownloadURL string    `json:"downloadUrl,omitempty"`
}

// --- Handler Methods ---

// GetPlans returns all of the caller's plans, newest first.
func (h *PlanHandler) GetPlans(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	plans, err := h.planService.GetUserPlans(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plans")
		return
	}

	response := make([]PlanResponse, len(plans))
	for i, plan := range plans {
		response[i] = MapPlanToResponse(&plan)
	}
	c.JSON(http.StatusOK, response)
}

// GetActivePlan returns the caller's single active plan.
func (h *PlanHandler) GetActivePlan(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	plan, err := h.planService.GetActivePlan(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActivePlan) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve active plan")
		}
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// CreatePlan stores a new plan and makes it the caller's active one.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), userID, req.Name, req.WorkoutPlan, req.DietPlan)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create plan")
		return
	}
	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

// ActivatePlan makes one plan active and deactivates the caller's others.
func (h *PlanHandler) ActivatePlan(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	if err := h.planService.ActivatePlan(c.Request.Context(), planID, userID); err != nil {
		if errors.Is(err, service.ErrPlanAccessDenied) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to activate plan")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan activated"})
}

// DeletePlan removes a plan the caller owns.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), planID, userID); err != nil {
		if errors.Is(err, service.ErrPlanAccessDenied) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete plan")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportPlan renders the plan to PDF and returns a download link.
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	exp, url, err := h.exportService.ExportPlan(c.Request.Context(), planID, userID)
	if err != nil {
		if errors.Is(err, service.ErrPlanAccessDenied) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to export plan")
		}
		return
	}

	response := MapExportToResponse(exp)
	response.DownloadURL = url
	c.JSON(http.StatusCreated, response)
}

// GetExports lists the caller's past exports.
func (h *PlanHandler) GetExports(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	exports, err := h.exportService.GetUserExports(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exports")
		return
	}

	response := make([]ExportResponse, len(exports))
	for i := range exports {
		response[i] = MapExportToResponse(&exports[i])
	}
	c.JSON(http.StatusOK, response)
}

// MapPlanToResponse converts a domain Plan to a PlanResponse DTO.
func MapPlanToResponse(plan *domain.Plan) PlanResponse {
	if plan == nil {
		return PlanResponse{}
	}
	return PlanResponse{
		ID:          plan.ID.Hex(),
		Name:        plan.Name,
		WorkoutPlan: plan.WorkoutPlan,
		DietPlan:    plan.DietPlan,
		IsActive:    plan.IsActive,
		CreatedAt:   plan.CreatedAt,
	}
}

// MapExportToResponse converts a domain Export to an ExportResponse DTO.
func MapExportToResponse(exp *domain.Export) ExportResponse {
	if exp == nil {
		return ExportResponse{}
	}
	return ExportResponse{
		ID:          exp.ID.Hex(),
		PlanID:      exp.PlanID.Hex(),
		FileName:    exp.FileName,
		ContentType: exp.ContentType,
		Size:        exp.Size,
		GeneratedAt: exp.GeneratedAt,
	}
}
