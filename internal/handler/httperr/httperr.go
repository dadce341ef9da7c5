package httperr

import (
	"errors"
	"net/http"

	"rentbook/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// statusOf maps the shared sentinel errors to transport codes. Persistence
// failures stay opaque 500s; lock timeouts are 503 so clients retry.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrInvalidRange):
		return http.StatusBadRequest, "invalid date range"
	case errors.Is(err, errs.ErrPastDate):
		return http.StatusBadRequest, "start date is in the past"
	case errors.Is(err, errs.ErrItemNotFound):
		return http.StatusNotFound, "item not found"
	case errors.Is(err, errs.ErrHoldNotFound):
		return http.StatusNotFound, "hold not found"
	case errors.Is(err, errs.ErrRangeUnavailable):
		return http.StatusConflict, "range unavailable"
	case errors.Is(err, errs.ErrHoldConflict):
		return http.StatusConflict, "overlapping hold exists"
	case errors.Is(err, errs.ErrHoldExpired):
		return http.StatusGone, "hold expired"
	case errors.Is(err, errs.ErrReservationTimeout):
		return http.StatusServiceUnavailable, "item is busy, retry later"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// AbortWithDomainError translates a usecase error into the response envelope.
func AbortWithDomainError(c *gin.Context, err error) {
	status, msg := statusOf(err)
	AbortWithError(c, status, err, msg, nil)
}
