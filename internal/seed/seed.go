// Package seed populates the database with demo data for development.
package seed

import (
	"fmt"
	"log"
	"math/rand"

	"chirp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	userCount    = 15
	postsPerUser = 3
	// Every seeded account logs in with this password.
	seedPassword = "password123"
)

// Seed wipes the tables and fills them with generated users, a follow graph,
// posts, comments, and likes.
func Seed(db *gorm.DB) error {
	log.Println("Starting database seeding...")

	if err := clearData(db); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}

	users, err := createUsers(db)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("Created %d users", len(users))

	if err := createFollows(db, users); err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}

	posts, err := createPosts(db, users)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("Created %d posts", len(posts))

	if err := createInteractions(db, users, posts); err != nil {
		return fmt.Errorf("failed to create interactions: %w", err)
	}

	log.Println("Seeding complete. All accounts use password:", seedPassword)
	return nil
}

func clearData(db *gorm.DB) error {
	for _, model := range []any{
		&models.Notification{},
		&models.Like{},
		&models.Comment{},
		&models.Post{},
		&models.Follow{},
		&models.User{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		user := models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			FullName: gofakeit.Name(),
			Email:    fmt.Sprintf("user%d_%s", i, gofakeit.Email()),
			Password: string(hashed),
			Bio:      gofakeit.Sentence(8),
			Link:     gofakeit.URL(),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createFollows(db *gorm.DB, users []models.User) error {
	for i := range users {
		for j := range users {
			if i == j || rand.Intn(3) != 0 {
				continue
			}
			follow := models.Follow{FollowerID: users[i].ID, FollowedID: users[j].ID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func createPosts(db *gorm.DB, users []models.User) ([]models.Post, error) {
	var posts []models.Post
	for _, user := range users {
		for i := 0; i < postsPerUser; i++ {
			post := models.Post{
				UserID: user.ID,
				Text:   gofakeit.Sentence(rand.Intn(20) + 5),
			}
			if err := db.Create(&post).Error; err != nil {
				return nil, err
			}
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func createInteractions(db *gorm.DB, users []models.User, posts []models.Post) error {
	for _, post := range posts {
		for _, user := range users {
			if rand.Intn(4) == 0 {
				comment := models.Comment{
					PostID: post.ID,
					UserID: user.ID,
					Text:   gofakeit.Sentence(rand.Intn(10) + 3),
				}
				if err := db.Create(&comment).Error; err != nil {
					return err
				}
			}
			if rand.Intn(3) == 0 {
				like := models.Like{UserID: user.ID, PostID: post.ID}
				if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
					return err
				}
				notification := models.Notification{
					FromID: user.ID,
					ToID:   post.UserID,
					PostID: post.ID,
					Type:   models.NotificationTypeLike,
				}
				if err := db.Create(&notification).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}
