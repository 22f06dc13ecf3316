package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/nkiselev/microfeed/backend/internal/models"
)

// getUserClaims returns the authenticated user's claims, or nil for an
// anonymous request
func getUserClaims(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

// getUserIDFromContext returns the authenticated user's ID, or 0 when the
// request is anonymous
func getUserIDFromContext(c echo.Context) uint {
	claims := getUserClaims(c)
	if claims == nil {
		return 0
	}
	return claims.UserID
}
