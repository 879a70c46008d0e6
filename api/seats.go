package api

import (
	"net/http"
	"strconv"

	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/service/seats"
	"github.com/gin-gonic/gin"
)

type SeatHandler struct {
	service seats.SeatAllocationUseCase
}

type assignSeatRequest struct {
	BookingID   int64  `json:"booking_id"`
	PassengerID int64  `json:"passenger_id"`
	SeatID      string `json:"seat_id"`
}

func NewSeatHandler(service seats.SeatAllocationUseCase) *SeatHandler {
	return &SeatHandler{service: service}
}

func (h *SeatHandler) Register(router *gin.RouterGroup) {
	router.GET("/flights/:id/seatmap", h.seatMap)
	router.GET("/flights/:id/seats/available", h.availableSeats)
	router.GET("/flights/:id/seat-counts", h.seatCounts)
	router.POST("/flights/:id/seats", h.assign)
	router.DELETE("/bookings/:booking_id/passengers/:passenger_id/seat", h.release)
}

func (h *SeatHandler) seatMap(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	seatMap, err := h.service.GetSeatMap(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, seatMap)
}

func (h *SeatHandler) availableSeats(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var cabinClassID *int64
	if raw := c.Query("cabin_class_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cabin_class_id"})
			return
		}
		cabinClassID = &parsed
	}

	available, err := h.service.GetAvailableSeats(c.Request.Context(), id, cabinClassID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, available)
}

func (h *SeatHandler) seatCounts(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	counts, err := h.service.GetSeatCounts(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *SeatHandler) assign(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req assignSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.SeatID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seat_id is required"})
		return
	}

	bp, err := h.service.AssignSeat(c.Request.Context(), seats.AssignSeatInput{
		FlightInstanceID: id,
		BookingID:        req.BookingID,
		PassengerID:      req.PassengerID,
		SeatID:           req.SeatID,
	})
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bp)
}

func (h *SeatHandler) release(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("booking_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking_id"})
		return
	}
	passengerID, err := strconv.ParseInt(c.Param("passenger_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid passenger_id"})
		return
	}

	if err := h.service.ReleaseSeat(c.Request.Context(), bookingID, passengerID); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
