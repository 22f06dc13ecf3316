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

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	userRepository    repositories.UserRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		userRepository:    userRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
}

// CreateComment adds a comment to a post and redirects to the post view.
// An invalid submission (empty text) is silently discarded with the same
// redirect and no error payload.
func (h *CommentHandler) CreateComment(c echo.Context) error {
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

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.Redirect(http.StatusFound, h.postViewPath(post))
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return c.Redirect(http.StatusFound, h.postViewPath(post))
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: currentUserID,
		Text:     req.Text,
	}

	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, h.postViewPath(post))
}

// postViewPath is the public read view for a post
func (h *CommentHandler) postViewPath(post *models.Post) string {
	author, err := h.userRepository.GetUserByID(post.AuthorID)
	if err != nil {
		return fmt.Sprintf("/posts/%d", post.ID)
	}
	return fmt.Sprintf("/users/%s/posts/%d", author.Username, post.ID)
}
