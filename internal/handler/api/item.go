package api

import (
	"errors"
	"net/http"

	reqdto "rentbook/internal/handler/dto/request"
	resdto "rentbook/internal/handler/dto/response"
	"rentbook/internal/handler/httperr"
	"rentbook/internal/usecase/commands"
	"rentbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ItemHandler struct {
	itemCommands commands.ItemCommands
	itemQueries  queries.ItemQueries
}

func NewItemHandler(itemCommands commands.ItemCommands, itemQueries queries.ItemQueries) *ItemHandler {
	return &ItemHandler{
		itemCommands: itemCommands,
		itemQueries:  itemQueries,
	}
}

// @Summary Create item
// @Description Register a bookable item with optional allowed and excluded dates
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateItemRequest true "Item request"
// @Success 201 {object} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req reqdto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	params, err := req.ToParams()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, want YYYY-MM-DD", nil)
		return
	}

	created, err := h.itemCommands.CreateItem(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, commands.ErrInvalidItem) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item", nil)
			return
		}
		httperr.AbortWithDomainError(c, err)
		return
	}

	view, err := h.itemQueries.GetByID(c.Request.Context(), created.ID())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromItemView(view))
}

// @Summary Get item
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} resdto.ItemResponse
// @Failure 404 {object} httperr.Response
// @Router /items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.itemQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemView(view))
}

// @Summary List bookings of an item
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} resdto.ItemBookingsResponse
// @Failure 404 {object} httperr.Response
// @Router /items/{id}/bookings [get]
func (h *ItemHandler) GetItemBookings(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.itemQueries.Bookings(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemBookingsView(view))
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}
