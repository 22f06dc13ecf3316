package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nkiselev/microfeed/backend/internal/models"
	"github.com/nkiselev/microfeed/backend/internal/pagination"
	"github.com/nkiselev/microfeed/backend/internal/repositories"
	"gorm.io/gorm"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	postRepository   repositories.PostRepository
	userRepository   repositories.UserRepository
	groupRepository  repositories.GroupRepository
	followRepository repositories.FollowRepository
	pageSize         int
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	groupRepo repositories.GroupRepository,
	followRepo repositories.FollowRepository,
	pageSize int,
) *FeedHandler {
	if pageSize < 1 {
		pageSize = pagination.DefaultPageSize
	}
	return &FeedHandler{
		postRepository:   postRepo,
		userRepository:   userRepo,
		groupRepository:  groupRepo,
		followRepository: followRepo,
		pageSize:         pageSize,
	}
}

// RegisterPublicFeedRoutes registers the feeds readable without authentication
func (h *FeedHandler) RegisterPublicFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetGlobalFeed)
	g.GET("/groups/:slug/feed", h.GetGroupFeed)
	g.GET("/users/:username/feed", h.GetProfileFeed)
}

// RegisterProtectedFeedRoutes registers the feeds requiring authentication
func (h *FeedHandler) RegisterProtectedFeedRoutes(g *echo.Group) {
	g.GET("/feed/following", h.GetFollowingFeed)
}

// EnrichedPost is a post with its author's public payload attached
type EnrichedPost struct {
	models.Post
	Author models.UserCompact `json:"author"`
}

// GetGlobalFeed returns a page of all posts, newest first. An empty corpus
// yields an empty page, never an error.
func (h *FeedHandler) GetGlobalFeed(c echo.Context) error {
	totalItems, err := h.postRepository.CountAllPosts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := h.resolvePage(c, totalItems)
	posts, err := h.postRepository.GetAllPosts(page.Offset(), page.PerPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": h.enrichPosts(posts)},
		"meta":    page,
	})
}

// GetGroupFeed returns a page of one group's posts, newest first
func (h *FeedHandler) GetGroupFeed(c echo.Context) error {
	slug := c.Param("slug")

	group, err := h.groupRepository.GetGroupBySlug(slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Group not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	totalItems, err := h.postRepository.CountPostsByGroupID(group.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := h.resolvePage(c, totalItems)
	posts, err := h.postRepository.GetPostsByGroupID(group.ID, page.Offset(), page.PerPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"group": group, "posts": h.enrichPosts(posts)},
		"meta":    page,
	})
}

// GetProfileFeed returns a page of one author's posts plus the follow flag
// for the requesting viewer. Anonymous viewers always see is_following=false.
// Viewing your own profile is not special-cased: self-follow edges can never
// exist, so the flag is naturally false.
func (h *FeedHandler) GetProfileFeed(c echo.Context) error {
	username := c.Param("username")

	author, err := h.userRepository.GetUserByUsername(username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	totalItems, err := h.postRepository.CountPostsByAuthorID(author.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := h.resolvePage(c, totalItems)
	posts, err := h.postRepository.GetPostsByAuthorID(author.ID, page.Offset(), page.PerPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	isFollowing := false
	if viewerID := getUserIDFromContext(c); viewerID > 0 {
		isFollowing, err = h.followRepository.IsFollowing(viewerID, author.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"author":       author.ToCompact(),
			"posts":        h.enrichPosts(posts),
			"is_following": isFollowing,
		},
		"meta": page,
	})
}

// GetFollowingFeed returns a page of posts authored by anyone the requester
// follows, newest first
func (h *FeedHandler) GetFollowingFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	totalItems, err := h.postRepository.CountPostsByFollowed(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := h.resolvePage(c, totalItems)
	posts, err := h.postRepository.GetPostsByFollowed(currentUserID, page.Offset(), page.PerPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": h.enrichPosts(posts)},
		"meta":    page,
	})
}

// resolvePage clamps the requested page number against the total
func (h *FeedHandler) resolvePage(c echo.Context, totalItems int64) pagination.Page {
	requested, _ := strconv.Atoi(c.QueryParam("page"))
	return pagination.Resolve(requested, h.pageSize, totalItems)
}

// enrichPosts attaches each post's author payload
func (h *FeedHandler) enrichPosts(posts []models.Post) []EnrichedPost {
	userMap := make(map[uint]models.UserCompact)
	for _, p := range posts {
		if _, ok := userMap[p.AuthorID]; ok {
			continue
		}
		if user, err := h.userRepository.GetUserByID(p.AuthorID); err == nil {
			userMap[p.AuthorID] = user.ToCompact()
		}
	}

	enriched := make([]EnrichedPost, len(posts))
	for i, p := range posts {
		enriched[i] = EnrichedPost{Post: p, Author: userMap[p.AuthorID]}
	}
	return enriched
}
