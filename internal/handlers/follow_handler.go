package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nkiselev/microfeed/backend/internal/models"
	"github.com/nkiselev/microfeed/backend/internal/repositories"
	"gorm.io/gorm"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository       repositories.FollowRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
) *FollowHandler {
	return &FollowHandler{
		followRepository:       followRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:username/follow", h.FollowUser)
	g.DELETE("/users/:username/follow", h.UnfollowUser)
}

// FollowUser subscribes the requester to the target author. Following
// yourself is silently ignored. Following someone twice leaves exactly one
// edge; the storage-level unique pair absorbs the duplicate.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	target, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if currentUserID == target.ID {
		// Self-follow is a no-op, never an edge
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
	}

	alreadyFollowing, err := h.followRepository.IsFollowing(currentUserID, target.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.followRepository.EnsureFollow(currentUserID, target.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Notify the followee. Best effort: a notification failure never fails
	// the follow.
	if !alreadyFollowing && h.notificationRepository != nil {
		if actor, err := h.userRepository.GetUserByID(currentUserID); err == nil {
			notif := &models.Notification{
				Type:        "follow",
				ActorID:     currentUserID,
				RecipientID: target.ID,
				Message:     actor.Username + " started following you",
			}
			h.notificationRepository.CreateNotification(notif)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": true}})
}

// UnfollowUser removes the requester's subscription to the target author.
// Unfollowing someone you don't follow is not an error.
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	target, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.followRepository.DeleteFollow(currentUserID, target.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
}
