package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"larder/internal/models"
)

// Advisory handlers. The advisor always returns a well-formed response,
// so these only translate between JSON and the orchestrator.

func (s *Server) HandleAdvice(c *gin.Context) {
	var req models.AdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := s.advisor.GeneralAdvice(c.Request.Context(), req.Question)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) HandlePlan(c *gin.Context) {
	var req models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := s.advisor.WeeklyPlan(c.Request.Context(), req.Goal, req.Capacity)
	c.JSON(http.StatusOK, resp)
}

// Pantry row handlers

func (s *Server) ListPantry(c *gin.Context) {
	rows, err := s.store.ReadAllRows(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (s *Server) AddPantryRow(c *gin.Context) {
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := s.store.AddRow(c.Request.Context(), fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) UpdatePantryRow(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid row id"})
		return
	}

	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.UpdateRow(c.Request.Context(), uint(id), fields); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Row not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Row updated successfully"})
}

// HandleMetrics returns the current operational metrics
func (s *Server) HandleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.GetMetrics())
}
