package repositories

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/nkiselev/microfeed/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an isolated in-memory sqlite database with the full
// schema migrated. Foreign keys are enabled so cascade rules behave as in
// postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
		&models.Notification{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestGroup(t *testing.T, db *gorm.DB, slug string) *models.Group {
	t.Helper()
	group := &models.Group{
		Title: "Group " + slug,
		Slug:  slug,
	}
	require.NoError(t, db.Create(group).Error)
	return group
}
