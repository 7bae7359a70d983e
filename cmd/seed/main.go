package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskman/internal/config"
	"taskman/internal/db"
	"taskman/internal/model"
	"taskman/internal/repository"
)

// Seeds a demo user with a couple of tasks for local development.
func main() {
	cfg := config.Load()
	ctx := context.Background()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.SessionToken{}, &model.Task{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	users := repository.NewUserRepository(gormDB)
	tasks := repository.NewTaskRepository(gormDB)

	const demoEmail = "demo@taskman.local"
	if _, err := users.FindByEmail(ctx, demoEmail); err == nil {
		log.Printf("demo user %s already present, nothing to do", demoEmail)
		return
	} else if err != gorm.ErrRecordNotFound {
		log.Fatalf("check demo user: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo-secret"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	user := &model.User{
		Name:         "Demo User",
		Age:          30,
		Email:        demoEmail,
		PasswordHash: string(hashed),
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("create demo user: %v", err)
	}

	for _, description := range []string{"Try out the API", "Upload an avatar"} {
		if err := tasks.Create(ctx, &model.Task{Description: description, OwnerID: user.ID}); err != nil {
			log.Fatalf("create demo task: %v", err)
		}
	}

	log.Printf("seeded demo user %s with 2 tasks", demoEmail)
}
