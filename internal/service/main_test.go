package service

import (
	"fmt"
	"testing"
	"time"

	"chirp/internal/database"
	"chirp/internal/models"
	"chirp/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db            *gorm.DB
	users         repository.UserRepository
	follows       repository.FollowRepository
	posts         repository.PostRepository
	likes         repository.LikeRepository
	notifications repository.NotificationRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.AllModels()...))

	return &testEnv{
		db:            db,
		users:         repository.NewUserRepository(db),
		follows:       repository.NewFollowRepository(db),
		posts:         repository.NewPostRepository(db),
		likes:         repository.NewLikeRepository(db),
		notifications: repository.NewNotificationRepository(db),
	}
}

func (e *testEnv) graphService() *GraphService {
	return NewGraphService(e.users, e.follows, e.posts, e.likes, e.notifications)
}

func (e *testEnv) createUser(t *testing.T, name string) *models.User {
	t.Helper()

	ts := time.Now().UnixNano()
	u := &models.User{
		Username: fmt.Sprintf("%s_%d", name, ts),
		FullName: name,
		Email:    fmt.Sprintf("%s_%d@example.com", name, ts),
		Password: "hashed-password",
	}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) createPost(t *testing.T, authorID uint, text string) *models.Post {
	t.Helper()

	p := &models.Post{UserID: authorID, Text: text}
	require.NoError(t, e.db.Create(p).Error)
	return p
}
