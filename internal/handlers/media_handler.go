package handlers

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nkiselev/microfeed/backend/internal/models"
	"github.com/nkiselev/microfeed/backend/internal/repositories"
)

// maxImageBytes caps uploads at 5 MiB
const maxImageBytes = 5 << 20

// MediaHandler handles image upload and retrieval
type MediaHandler struct {
	mediaRepository repositories.MediaRepository
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaRepo repositories.MediaRepository) *MediaHandler {
	return &MediaHandler{mediaRepository: mediaRepo}
}

// RegisterPublicMediaRoutes registers the unauthenticated image read route
func (h *MediaHandler) RegisterPublicMediaRoutes(g *echo.Group) {
	g.GET("/media/:id", h.GetMedia)
}

// RegisterProtectedMediaRoutes registers the authenticated upload route
func (h *MediaHandler) RegisterProtectedMediaRoutes(g *echo.Group) {
	g.POST("/media", h.UploadMedia)
}

// UploadMedia stores a multipart image upload and returns its reference ID
func (h *MediaHandler) UploadMedia(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing image file")
	}
	if fileHeader.Size > maxImageBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Image too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	media := &models.Media{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
		UploaderID:  currentUserID,
	}

	if err := h.mediaRepository.SaveMedia(c.Request().Context(), media); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"id": media.ID})
}

// GetMedia serves the stored image bytes
func (h *MediaHandler) GetMedia(c echo.Context) error {
	media, err := h.mediaRepository.GetMediaByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err.Error() == "media not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Media not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	contentType := media.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Blob(http.StatusOK, contentType, media.Data)
}
