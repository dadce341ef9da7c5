package api

import (
	"net/http"

	reqdto "rentbook/internal/handler/dto/request"
	resdto "rentbook/internal/handler/dto/response"
	"rentbook/internal/handler/httperr"
	"rentbook/internal/handler/middleware"
	"rentbook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservations commands.ReservationCommands
}

func NewReservationHandler(reservations commands.ReservationCommands) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

// @Summary Reserve a date range
// @Description Commit a booking for the inclusive range, failing on any overlap
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.IntervalResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	// Guests book without an owner; authenticated callers get holds
	// skipped for their own checkout.
	var owner *uuid.UUID
	if ownerID, ok := middleware.GetOwnerID(c); ok {
		owner = &ownerID
	}

	params, err := req.ToParams(owner)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, want YYYY-MM-DD", nil)
		return
	}

	iv, err := h.reservations.Reserve(c.Request.Context(), params)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookedInterval(iv))
}

// @Summary Release an order
// @Description Remove every interval booked under the order, idempotently
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.ReleaseResponse
// @Failure 400 {object} httperr.Response
// @Router /orders/{id}/release [post]
func (h *ReservationHandler) ReleaseOrder(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	removed, err := h.reservations.Release(c.Request.Context(), orderID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ReleaseResponse{OrderID: orderID, Removed: removed})
}

// @Summary Create a hold
// @Description Take a TTL-bounded provisional claim on a date range before payment
// @Tags holds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateHoldRequest true "Hold request"
// @Success 201 {object} resdto.HoldResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /holds [post]
func (h *ReservationHandler) CreateHold(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	var req reqdto.CreateHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	params, err := req.ToParams(ownerID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, want YYYY-MM-DD", nil)
		return
	}

	hold, err := h.reservations.CreateHold(c.Request.Context(), params)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromHold(hold))
}

// @Summary Confirm a hold
// @Description Convert a live hold into a committed interval under the given order
// @Tags holds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hold ID"
// @Param request body reqdto.ConfirmHoldRequest true "Confirmation"
// @Success 201 {object} resdto.IntervalResponse
// @Failure 404 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Router /holds/{id}/confirm [post]
func (h *ReservationHandler) ConfirmHold(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	holdID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req reqdto.ConfirmHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	iv, err := h.reservations.ConfirmHold(c.Request.Context(), holdID, ownerID, req.OrderID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookedInterval(iv))
}

// @Summary Drop a hold
// @Tags holds
// @Security BearerAuth
// @Param id path string true "Hold ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Router /holds/{id} [delete]
func (h *ReservationHandler) ReleaseHold(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	holdID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.reservations.ReleaseHold(c.Request.Context(), holdID, ownerID); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func requireOwner(c *gin.Context) (uuid.UUID, bool) {
	ownerID, ok := middleware.GetOwnerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		c.Abort()
		return uuid.Nil, false
	}
	return ownerID, true
}
