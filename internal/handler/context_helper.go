package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/booking-api/internal/middleware"
	"github.com/noah-isme/booking-api/internal/models"
	appErrors "github.com/noah-isme/booking-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// calendarOwner resolves whose calendar an admin request targets. Admins may act on
// any provider through requested; providers always act on their own calendar.
func calendarOwner(c *gin.Context, requested string) (string, error) {
	claims := claimsFromContext(c)
	if claims == nil {
		return "", appErrors.ErrUnauthorized
	}
	requested = strings.TrimSpace(requested)
	if claims.Role == models.RoleAdmin {
		if requested == "" {
			return "", appErrors.Clone(appErrors.ErrValidation, "user_id is required")
		}
		return requested, nil
	}
	if requested != "" && requested != claims.UserID {
		return "", appErrors.ErrForbidden
	}
	return claims.UserID, nil
}
