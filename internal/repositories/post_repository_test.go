package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/nkiselev/microfeed/backend/internal/models"
	"github.com/nkiselev/microfeed/backend/internal/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetAllPostsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPostRepository(db)
	author := createTestUser(t, db, "leo")

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		post := &models.Post{
			Text:      fmt.Sprintf("post %d", i),
			AuthorID:  author.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.CreatePost(post))
	}

	posts, err := repo.GetAllPosts(0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "post 2", posts[0].Text)
	assert.Equal(t, "post 1", posts[1].Text)
	assert.Equal(t, "post 0", posts[2].Text)
}

func TestGroupFeed(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostgresPostRepository(db)
	groupRepo := NewPostgresGroupRepository(db)
	author := createTestUser(t, db, "anna")
	group := createTestGroup(t, db, "testslug")

	post := &models.Post{Text: "тестовый текст", AuthorID: author.ID, GroupID: &group.ID}
	require.NoError(t, postRepo.CreatePost(post))

	found, err := groupRepo.GetGroupBySlug("testslug")
	require.NoError(t, err)

	posts, err := postRepo.GetPostsByGroupID(found.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "тестовый текст", posts[0].Text)

	_, err = groupRepo.GetGroupBySlug("otherslug")
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}

func TestGlobalFeedPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPostRepository(db)
	author := createTestUser(t, db, "maria")

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 14; i++ {
		post := &models.Post{
			Text:      fmt.Sprintf("post %d", i),
			AuthorID:  author.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.CreatePost(post))
	}

	total, err := repo.CountAllPosts()
	require.NoError(t, err)
	assert.Equal(t, int64(14), total)

	pageOne := pagination.Resolve(1, 10, total)
	posts, err := repo.GetAllPosts(pageOne.Offset(), pageOne.PerPage)
	require.NoError(t, err)
	assert.Len(t, posts, 10)

	pageTwo := pagination.Resolve(2, 10, total)
	posts, err = repo.GetAllPosts(pageTwo.Offset(), pageTwo.PerPage)
	require.NoError(t, err)
	assert.Len(t, posts, 4)
}

func TestFollowingFeedVisibility(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostgresPostRepository(db)
	followRepo := NewPostgresFollowRepository(db)

	reader := createTestUser(t, db, "reader")
	stranger := createTestUser(t, db, "stranger")
	author := createTestUser(t, db, "author")

	for i := 0; i < 3; i++ {
		require.NoError(t, postRepo.CreatePost(&models.Post{
			Text:     fmt.Sprintf("entry %d", i),
			AuthorID: author.ID,
		}))
	}

	require.NoError(t, followRepo.EnsureFollow(reader.ID, author.ID))

	posts, err := postRepo.GetPostsByFollowed(reader.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	posts, err = postRepo.GetPostsByFollowed(stranger.ID, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestUpdatePostKeepsCreatedAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPostRepository(db)
	author := createTestUser(t, db, "ivan")

	created := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	post := &models.Post{Text: "original", AuthorID: author.ID, CreatedAt: created}
	require.NoError(t, repo.CreatePost(post))

	post.Text = "edited"
	require.NoError(t, repo.UpdatePost(post))

	reloaded, err := repo.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", reloaded.Text)
	assert.True(t, reloaded.CreatedAt.Equal(created))
}

func TestDeleteGroupCascadesToPosts(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostgresPostRepository(db)
	groupRepo := NewPostgresGroupRepository(db)
	author := createTestUser(t, db, "nina")
	group := createTestGroup(t, db, "doomed")

	require.NoError(t, postRepo.CreatePost(&models.Post{
		Text: "will vanish", AuthorID: author.ID, GroupID: &group.ID,
	}))
	require.NoError(t, postRepo.CreatePost(&models.Post{
		Text: "will survive", AuthorID: author.ID,
	}))

	require.NoError(t, groupRepo.DeleteGroup(group.ID))

	total, err := postRepo.CountAllPosts()
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
