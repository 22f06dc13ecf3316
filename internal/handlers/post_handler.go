package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/nkiselev/microfeed/backend/internal/models"
	"github.com/nkiselev/microfeed/backend/internal/repositories"
	"gorm.io/gorm"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository    repositories.PostRepository
	userRepository    repositories.UserRepository
	groupRepository   repositories.GroupRepository
	commentRepository repositories.CommentRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	groupRepo repositories.GroupRepository,
	commentRepo repositories.CommentRepository,
) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		userRepository:    userRepo,
		groupRepository:   groupRepo,
		commentRepository: commentRepo,
	}
}

// RegisterPublicPostRoutes registers the unauthenticated post read view
func (h *PostHandler) RegisterPublicPostRoutes(g *echo.Group) {
	g.GET("/users/:username/posts/:id", h.GetPost)
}

// RegisterProtectedPostRoutes registers authoring routes
func (h *PostHandler) RegisterProtectedPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post owned by the authenticated user. The
// creation timestamp is assigned by the store and is immutable.
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	groupID, err := h.resolveGroupID(req.GroupSlug)
	if err != nil {
		return err
	}

	post := &models.Post{
		Text:     req.Text,
		AuthorID: currentUserID,
		GroupID:  groupID,
		ImageID:  req.ImageID,
	}

	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a single post with its comments. The username in the
// path must match the post's author.
func (h *PostHandler) GetPost(c echo.Context) error {
	username := c.Param("username")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, author, err := h.getAuthoredPost(username, uint(postID))
	if err != nil {
		return err
	}

	comments, err := h.commentRepository.GetCommentsByPostID(post.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"post":     post,
			"author":   author.ToCompact(),
			"comments": comments,
		},
	})
}

// UpdatePost edits a post's text, group and image in place. Only the author
// may edit; anyone else is redirected to the read view instead of getting an
// error page. CreatedAt is never altered.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(postID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.AuthorID != currentUserID {
		return c.Redirect(http.StatusFound, h.postViewPath(post))
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	groupID, err := h.resolveGroupID(req.GroupSlug)
	if err != nil {
		return err
	}

	post.Text = req.Text
	post.GroupID = groupID
	if req.ImageID != "" {
		post.ImageID = req.ImageID
	}

	if err := h.postRepository.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post. Only the author may delete.
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(postID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.AuthorID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this post")
	}

	if err := h.postRepository.DeletePost(post.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// getAuthoredPost loads a post and verifies it belongs to the named author
func (h *PostHandler) getAuthoredPost(username string, postID uint) (*models.Post, *models.User, error) {
	author, err := h.userRepository.GetUserByUsername(username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return nil, nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return nil, nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.AuthorID != author.ID {
		return nil, nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	return post, author, nil
}

// resolveGroupID maps an optional group slug to its ID
func (h *PostHandler) resolveGroupID(slug string) (*uint, error) {
	if slug == "" {
		return nil, nil
	}
	group, err := h.groupRepository.GetGroupBySlug(slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Unknown group slug")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return &group.ID, nil
}

// postViewPath is the public read view for a post
func (h *PostHandler) postViewPath(post *models.Post) string {
	author, err := h.userRepository.GetUserByID(post.AuthorID)
	if err != nil {
		return fmt.Sprintf("/posts/%d", post.ID)
	}
	return fmt.Sprintf("/users/%s/posts/%d", author.Username, post.ID)
}
