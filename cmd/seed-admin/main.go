// Command seed-admin bootstraps the first System Administrator account.
// Registration only ever creates Normal Users, so the initial admin has to be
// inserted out of band.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ratespot/ratespot/internal/auth"
	"github.com/ratespot/ratespot/internal/config"
	"github.com/ratespot/ratespot/internal/domain"
	"github.com/ratespot/ratespot/internal/repository"
	"github.com/ratespot/ratespot/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	name := os.Getenv("ADMIN_NAME")
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	address := os.Getenv("ADMIN_ADDRESS")
	if name == "" || email == "" || password == "" {
		log.Fatal("ADMIN_NAME, ADMIN_EMAIL, and ADMIN_PASSWORD are required")
	}

	logger := log.New(os.Stdout, "[seed-admin] ", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := store.New(ctx, cfg.DBURL, store.Options{
		MaxConns:    1,
		ConnTimeout: time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer st.Close()

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	repo := repository.New(st)
	user, err := repo.Users.Create(ctx, repository.UserCreateParams{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Address:      address,
		Role:         domain.RoleSystemAdmin,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			log.Fatalf("admin with email %s already exists", email)
		}
		log.Fatalf("create admin: %v", err)
	}

	logger.Printf("created administrator %s (%s)", user.Name, user.ID)
}
