package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/service/schedule"
	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	service schedule.ScheduleUseCase
}

type assignAircraftRequest struct {
	TailNumber string `json:"tail_number"`
}

type assignCrewRequest struct {
	CrewMemberID int64  `json:"crew_member_id"`
	Role         string `json:"role"`
}

type assignCrewBatchRequest struct {
	Assignments []schedule.CrewAssignment `json:"assignments"`
}

func NewScheduleHandler(service schedule.ScheduleUseCase) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

func (h *ScheduleHandler) Register(router *gin.RouterGroup) {
	router.GET("/schedule/conflicts", h.findConflict)
	router.PUT("/flights/:id/aircraft", h.assignAircraft)
	router.POST("/flights/:id/crew", h.assignCrew)
	router.POST("/flights/:id/crew/batch", h.assignCrewBatch)
	router.DELETE("/flights/:id/crew/:crew_member_id", h.removeCrew)
}

func (h *ScheduleHandler) findConflict(c *gin.Context) {
	tailNumber := c.Query("tail_number")
	if tailNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tail_number is required"})
		return
	}
	departure, err := time.Parse(time.RFC3339, c.Query("departure"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid departure"})
		return
	}
	arrival, err := time.Parse(time.RFC3339, c.Query("arrival"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid arrival"})
		return
	}
	var excludeID int64
	if raw := c.Query("exclude_instance_id"); raw != "" {
		excludeID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid exclude_instance_id"})
			return
		}
	}

	conflicting, err := h.service.FindConflictingFlight(c.Request.Context(), tailNumber, departure, arrival, excludeID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	if conflicting == nil {
		c.JSON(http.StatusOK, gin.H{"conflict": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conflict": true, "flight_instance": conflicting})
}

func (h *ScheduleHandler) assignAircraft(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req assignAircraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TailNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tail_number is required"})
		return
	}

	instance, err := h.service.AssignAircraft(c.Request.Context(), id, req.TailNumber)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, instance)
}

func (h *ScheduleHandler) assignCrew(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req assignCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.AssignCrew(c.Request.Context(), id, req.CrewMemberID, req.Role); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusCreated)
}

func (h *ScheduleHandler) assignCrewBatch(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req assignCrewBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.AssignCrewBatch(c.Request.Context(), id, req.Assignments); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusCreated)
}

func (h *ScheduleHandler) removeCrew(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	crewMemberID, err := strconv.ParseInt(c.Param("crew_member_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid crew_member_id"})
		return
	}

	if err := h.service.RemoveCrewAssignment(c.Request.Context(), id, crewMemberID); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
