package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/nkiselev/microfeed/backend/internal/models"
)

// JWTAuthMiddleware checks for a valid JWT and extracts user claims.
func JWTAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			claims, err := parseBearerToken(authHeader)
			if err != nil {
				return err
			}

			// Store user claims in context
			c.Set("user", claims)

			return next(c)
		}
	}
}

// OptionalJWTAuthMiddleware extracts user claims when a valid token is
// present but lets anonymous requests through. Public feeds use it so the
// profile follow flag can be computed for a signed-in viewer.
func OptionalJWTAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader != "" {
				if claims, err := parseBearerToken(authHeader); err == nil {
					c.Set("user", claims)
				}
			}
			return next(c)
		}
	}
}

func parseBearerToken(authHeader string) (*models.JwtCustomClaims, error) {
	// Expecting "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}
	tokenString := parts[1]

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "supersecretjwtkey" // Must match the secret used for signing
	}

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})

	if err != nil {
		if err == jwt.ErrSignatureInvalid {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token signature")
		}
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	if !token.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	return claims, nil
}
