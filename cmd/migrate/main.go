package main

import (
	"fmt"

	"minigram/internal/model"
	"minigram/pkg/config"
	"minigram/pkg/database"
	"minigram/pkg/logger"
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

	log.Info("Migrations applied successfully!")
}
