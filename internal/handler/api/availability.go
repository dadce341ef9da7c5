package api

import (
	"net/http"

	reqdto "rentbook/internal/handler/dto/request"
	resdto "rentbook/internal/handler/dto/response"
	"rentbook/internal/handler/httperr"
	"rentbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// @Summary Check a booking window
// @Description Report whether the inclusive date range is bookable and why not
// @Tags availability
// @Accept json
// @Produce json
// @Param request body reqdto.CheckAvailabilityRequest true "Window to check"
// @Success 200 {object} resdto.RangeCheckResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /availability/check [post]
func (h *AvailabilityHandler) CheckRange(c *gin.Context) {
	var req reqdto.CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	start, end, err := req.Window()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, want YYYY-MM-DD", nil)
		return
	}

	view, err := h.availability.CheckRange(c.Request.Context(), req.ItemID, start, end)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRangeCheckView(view))
}

// @Summary Actual available dates of an item
// @Description Allowed dates minus booked dates, empty when the allowed set is open-ended
// @Tags availability
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 404 {object} httperr.Response
// @Router /items/{id}/availability [get]
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	available, err := h.availability.AvailableDays(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	booked, err := h.availability.BookedDays(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewAvailabilityResponse(id, available, booked))
}
