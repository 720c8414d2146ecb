package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripplanner/planner"
)

type GenerateResponse struct {
	Plan    *planner.TripPlan `json:"plan"`
	Message string            `json:"message"`
}

// GeneratePlan validates and synthesizes a plan without creating a session.
func (h *Handler) GeneratePlan(c *gin.Context) {
	var req planner.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if !h.withinDayLimit(c, req) {
		return
	}

	plan, err := h.Synthesize(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{
		Plan:    plan,
		Message: "Your personalized trip has been generated!",
	})
}

// ExportPlan turns a plan the client already holds into a JSON download.
func (h *Handler) ExportPlan(c *gin.Context) {
	var plan planner.TripPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan: " + err.Error()})
		return
	}
	if strings.TrimSpace(plan.Destination) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plan has no destination"})
		return
	}
	h.sendJSONExport(c, &plan)
}
