package handlers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/nkiselev/microfeed/backend/internal/models"
	"github.com/nkiselev/microfeed/backend/internal/repositories"
	"gorm.io/gorm"
)

// GroupHandler handles HTTP requests related to groups
type GroupHandler struct {
	groupRepository repositories.GroupRepository
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupRepo repositories.GroupRepository) *GroupHandler {
	return &GroupHandler{groupRepository: groupRepo}
}

// RegisterPublicGroupRoutes registers unauthenticated group routes
func (h *GroupHandler) RegisterPublicGroupRoutes(g *echo.Group) {
	g.GET("/groups", h.GetGroups)
	g.GET("/groups/:slug", h.GetGroup)
}

// RegisterProtectedGroupRoutes registers authenticated group routes
func (h *GroupHandler) RegisterProtectedGroupRoutes(g *echo.Group) {
	g.POST("/groups", h.CreateGroup)
}

// GetGroups lists all groups
func (h *GroupHandler) GetGroups(c echo.Context) error {
	groups, err := h.groupRepository.GetGroups()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"groups": groups}})
}

// GetGroup retrieves a group by slug
func (h *GroupHandler) GetGroup(c echo.Context) error {
	group, err := h.groupRepository.GetGroupBySlug(c.Param("slug"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Group not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, group)
}

// CreateGroup creates a new group with a unique slug
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	group := &models.Group{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	}

	if err := h.groupRepository.CreateGroup(group); err != nil {
		if isUniqueViolation(err) {
			return echo.NewHTTPError(http.StatusConflict, "A group with this slug already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, group)
}

// isUniqueViolation matches the driver-specific duplicate-key errors for
// both postgres and the sqlite test driver
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
