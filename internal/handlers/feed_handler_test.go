package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/nkiselev/microfeed/backend/internal/models"
	"github.com/nkiselev/microfeed/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFeedHandler(db *gorm.DB, pageSize int) *FeedHandler {
	return NewFeedHandler(
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresGroupRepository(db),
		repositories.NewPostgresFollowRepository(db),
		pageSize,
	)
}

type feedResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Posts       []EnrichedPost `json:"posts"`
		IsFollowing bool           `json:"is_following"`
	} `json:"data"`
	Meta struct {
		CurrentPage int `json:"currentPage"`
		TotalPages  int `json:"totalPages"`
	} `json:"meta"`
}

func decodeFeed(t *testing.T, body []byte) feedResponse {
	t.Helper()
	var resp feedResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func seedPosts(t *testing.T, db *gorm.DB, author *models.User, n int) {
	t.Helper()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		require.NoError(t, db.Create(&models.Post{
			Text:      fmt.Sprintf("post %d", i),
			AuthorID:  author.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}).Error)
	}
}

func TestGlobalFeedPages(t *testing.T) {
	db := newTestDB(t)
	h := newFeedHandler(db, 10)
	author := createTestUser(t, db, "prolific")
	seedPosts(t, db, author, 14)

	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantPosts int
	}{
		{"first page", "?page=1", 1, 10},
		{"second page", "?page=2", 2, 4},
		{"missing page param defaults to first", "", 1, 10},
		{"page zero clamps to first", "?page=0", 1, 10},
		{"past the end clamps to last", "?page=99", 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodGet, "/feed"+tt.query, "")
			require.NoError(t, h.GetGlobalFeed(c))
			assert.Equal(t, http.StatusOK, rec.Code)

			resp := decodeFeed(t, rec.Body.Bytes())
			assert.Equal(t, tt.wantPage, resp.Meta.CurrentPage)
			assert.Equal(t, 2, resp.Meta.TotalPages)
			assert.Len(t, resp.Data.Posts, tt.wantPosts)
		})
	}
}

func TestGlobalFeedEmptyCorpus(t *testing.T) {
	db := newTestDB(t)
	h := newFeedHandler(db, 10)

	c, rec := newJSONContext(t, http.MethodGet, "/feed", "")
	require.NoError(t, h.GetGlobalFeed(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeFeed(t, rec.Body.Bytes())
	assert.Empty(t, resp.Data.Posts)
	assert.Equal(t, 1, resp.Meta.CurrentPage)
	assert.Equal(t, 1, resp.Meta.TotalPages)
}

func TestGroupFeedScenario(t *testing.T) {
	db := newTestDB(t)
	h := newFeedHandler(db, 10)
	author := createTestUser(t, db, "anna")

	group := &models.Group{Title: "Test", Slug: "testslug"}
	require.NoError(t, db.Create(group).Error)
	require.NoError(t, db.Create(&models.Post{
		Text: "тестовый текст", AuthorID: author.ID, GroupID: &group.ID,
	}).Error)

	c, rec := newJSONContext(t, http.MethodGet, "/groups/testslug/feed", "")
	c.SetParamNames("slug")
	c.SetParamValues("testslug")
	require.NoError(t, h.GetGroupFeed(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeFeed(t, rec.Body.Bytes())
	require.Len(t, resp.Data.Posts, 1)
	assert.Equal(t, "тестовый текст", resp.Data.Posts[0].Text)
	assert.Equal(t, "anna", resp.Data.Posts[0].Author.Username)

	c, _ = newJSONContext(t, http.MethodGet, "/groups/otherslug/feed", "")
	c.SetParamNames("slug")
	c.SetParamValues("otherslug")
	err := h.GetGroupFeed(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestProfileFeedFollowFlag(t *testing.T) {
	db := newTestDB(t)
	h := newFeedHandler(db, 10)
	author := createTestUser(t, db, "star")
	fan := createTestUser(t, db, "fan")
	seedPosts(t, db, author, 2)

	followRepo := repositories.NewPostgresFollowRepository(db)
	require.NoError(t, followRepo.EnsureFollow(fan.ID, author.ID))

	// Anonymous viewer: never following
	c, rec := newJSONContext(t, http.MethodGet, "/users/star/feed", "")
	c.SetParamNames("username")
	c.SetParamValues("star")
	require.NoError(t, h.GetProfileFeed(c))
	resp := decodeFeed(t, rec.Body.Bytes())
	assert.False(t, resp.Data.IsFollowing)
	assert.Len(t, resp.Data.Posts, 2)

	// A follower sees the flag set
	c, rec = newJSONContext(t, http.MethodGet, "/users/star/feed", "")
	c.SetParamNames("username")
	c.SetParamValues("star")
	authenticate(c, fan)
	require.NoError(t, h.GetProfileFeed(c))
	resp = decodeFeed(t, rec.Body.Bytes())
	assert.True(t, resp.Data.IsFollowing)

	// The profile owner is never "following" themselves
	c, rec = newJSONContext(t, http.MethodGet, "/users/star/feed", "")
	c.SetParamNames("username")
	c.SetParamValues("star")
	authenticate(c, author)
	require.NoError(t, h.GetProfileFeed(c))
	resp = decodeFeed(t, rec.Body.Bytes())
	assert.False(t, resp.Data.IsFollowing)
}

func TestProfileFeedUnknownUser(t *testing.T) {
	db := newTestDB(t)
	h := newFeedHandler(db, 10)

	c, _ := newJSONContext(t, http.MethodGet, "/users/ghost/feed", "")
	c.SetParamNames("username")
	c.SetParamValues("ghost")
	err := h.GetProfileFeed(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestFollowingFeed(t *testing.T) {
	db := newTestDB(t)
	h := newFeedHandler(db, 10)
	reader := createTestUser(t, db, "reader")
	followed := createTestUser(t, db, "followed")
	ignored := createTestUser(t, db, "ignored")
	seedPosts(t, db, followed, 3)
	seedPosts(t, db, ignored, 2)

	followRepo := repositories.NewPostgresFollowRepository(db)
	require.NoError(t, followRepo.EnsureFollow(reader.ID, followed.ID))

	c, rec := newJSONContext(t, http.MethodGet, "/api/v1/feed/following", "")
	authenticate(c, reader)
	require.NoError(t, h.GetFollowingFeed(c))

	resp := decodeFeed(t, rec.Body.Bytes())
	require.Len(t, resp.Data.Posts, 3)
	for _, p := range resp.Data.Posts {
		assert.Equal(t, "followed", p.Author.Username)
	}
}

func TestFollowingFeedRequiresAuthentication(t *testing.T) {
	db := newTestDB(t)
	h := newFeedHandler(db, 10)

	c, _ := newJSONContext(t, http.MethodGet, "/api/v1/feed/following", "")
	err := h.GetFollowingFeed(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))
}
