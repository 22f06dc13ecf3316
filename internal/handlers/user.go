package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nkiselev/microfeed/backend/internal/repositories"
	"gorm.io/gorm"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, followRepo repositories.FollowRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo, followRepository: followRepo}
}

// RegisterPublicUserRoutes registers public profile routes
func (h *UserHandler) RegisterPublicUserRoutes(g *echo.Group) {
	g.GET("/users/:username", h.GetProfile)
}

// GetProfile returns a user's public profile with follower counts
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	followers, err := h.followRepository.GetFollowersCount(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	following, err := h.followRepository.GetFollowingCount(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"user":            user.ToCompact(),
			"followers_count": followers,
			"following_count": following,
		},
	})
}
