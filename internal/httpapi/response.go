package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// envelope — общий формат ответа API.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func ok(c *gin.Context, code int, data any, message string) {
	c.JSON(code, envelope{Success: true, Data: data, Message: message})
}

func okList(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data, Count: &count})
}

func fail(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, envelope{Success: false, Message: message})
}

// statusCode сопоставляет доменную ошибку HTTP-статусу.
func statusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrInvalidCustomer):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrProductAlreadyExists),
		errors.Is(err, domain.ErrIdempotencyHashMismatch),
		errors.Is(err, domain.ErrIdempotencyInProgress):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// failErr пишет ответ об ошибке. Текст внутренних ошибок уходит только в лог.
func (s *Server) failErr(c *gin.Context, err error, internalMessage string) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		s.logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		fail(c, code, internalMessage)
		return
	}
	fail(c, code, err.Error())
}
