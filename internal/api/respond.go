package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"moneyvault/internal/domain"
)

// abortError translates a vault error into an HTTP response using the
// error taxonomy. Unclassified errors (storage failures included) are
// logged and reported without detail.
func abortError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		logrus.WithError(err).Error("request failed")
		c.JSON(status, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrPermission):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrFormat):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// PrincipalResponse is the principal shape returned over HTTP. The encoded
// PIN stays in the store and in backups, never in API responses.
type PrincipalResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toPrincipalResponse(p domain.Principal) PrincipalResponse {
	return PrincipalResponse{ID: p.ID, Name: p.Name, Role: p.Role, CreatedAt: p.CreatedAt}
}
