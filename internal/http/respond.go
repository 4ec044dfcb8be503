package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/David-H-L/Backend/internal/apperr"
)

// Envelope is the uniform response body for every endpoint.
type Envelope struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Data    any    `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		OK:      true,
		Message: message,
		Status:  status,
		Data:    data,
	})
}

func respondErr(c *gin.Context, err error) {
	status := statusOf(apperr.KindOf(err))
	c.JSON(status, Envelope{
		OK:      false,
		Message: apperr.MessageOf(err),
		Status:  status,
	})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{
		OK:      false,
		Message: message,
		Status:  status,
	})
}

// statusOf maps the error taxonomy to HTTP codes. Authorization is
// always 403 and conflicts are always 409; the codes never depend on
// the endpoint.
func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.Auth:
		return http.StatusUnauthorized
	case apperr.Authorization:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
