package main

import (
	"fmt"

	"minigram/internal/model"
	"minigram/pkg/config"
	"minigram/pkg/database"
	"minigram/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.PostModel{},
		&model.PostLikeModel{},
	); err != nil {
		log.Error("Failed to migrate database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	testUsers := []struct {
		name     string
		email    string
		username string
		password string
	}{
		{"Alice", "alice@test.com", "alice", "password123"},
		{"Bob", "bob@test.com", "bob", "password123"},
		{"Charlie", "charlie@test.com", "charlie", "password123"},
	}

	userIDs := make([]uint, 0, len(testUsers))

	for _, userData := range testUsers {
		var existingUser model.UserModel
		result := db.Where("username = ?", userData.username).First(&existingUser)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", userData.username)
			userIDs = append(userIDs, existingUser.ID)
			continue
		}

		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)

		user := &model.UserModel{
			Name:     userData.name,
			Email:    userData.email,
			Username: userData.username,
			Password: string(hashedPassword),
		}

		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", userData.username, err)
			continue
		}

		log.Info("Created user: %s (%s)", user.Username, user.Email)
		userIDs = append(userIDs, user.ID)
	}

	if len(userIDs) == 0 {
		return fmt.Errorf("no users available for seeding posts")
	}

	testPosts := []struct {
		body      string
		mediaPath string
	}{
		{"hello from minigram", "images/hello.png"},
		{"a day at the beach", "images/beach.jpg"},
		{"my first clip", "videos/clip.mp4"},
	}

	for i, postData := range testPosts {
		authorID := userIDs[i%len(userIDs)]

		var existing model.PostModel
		result := db.Where("body = ? AND author_id = ?", postData.body, authorID).First(&existing)
		if result.Error == nil {
			log.Info("Post %q already exists, skipping", postData.body)
			continue
		}

		post := &model.PostModel{
			Body:      postData.body,
			AuthorID:  authorID,
			MediaPath: postData.mediaPath,
		}

		if err := db.Create(post).Error; err != nil {
			log.Error("Failed to create post %q: %v", postData.body, err)
			continue
		}

		// Everyone except the author likes it
		for _, userID := range userIDs {
			if userID == authorID {
				continue
			}
			like := &model.PostLikeModel{UserID: userID, PostID: post.ID}
			if err := db.Create(like).Error; err != nil {
				log.Error("Failed to create like: %v", err)
			}
		}

		log.Info("Created post: %q", postData.body)
	}

	return nil
}
