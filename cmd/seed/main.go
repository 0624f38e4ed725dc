// Seed creates or replaces a dashboard account.
//
//	go run ./cmd/seed -email info@my-ai.nl -password secret123 -name "Admin"
//
// Flags fall back to ADMIN_EMAIL / ADMIN_PASSWORD / ADMIN_NAME.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/MYAIBV/my-ai-portfolio/internal/auth"
	"github.com/MYAIBV/my-ai-portfolio/internal/config"
	"github.com/MYAIBV/my-ai-portfolio/internal/kv"
	"github.com/MYAIBV/my-ai-portfolio/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	email := flag.String("email", cfg.AdminEmail, "account email")
	password := flag.String("password", cfg.AdminPassword, "account password")
	name := flag.String("name", cfg.AdminName, "display name")
	flag.Parse()

	if *password == "" {
		log.Fatal("a password is required (flag -password or ADMIN_PASSWORD)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var store *kv.RedisHash
	if cfg.RedisURL != "" {
		store, err = kv.NewRedisFromURL(cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
	} else if cfg.RedisAddr != "" {
		store = kv.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	} else {
		log.Fatal("redis is required for seeding (REDIS_URL or REDIS_ADDR)")
	}
	if err := store.Ping(ctx); err != nil {
		log.Fatal(err)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal(err)
	}

	userStore := users.NewStore(store)
	user := users.User{
		Email:        *email,
		PasswordHash: hash,
		Name:         *name,
		CreatedAt:    time.Now().UTC(),
	}
	if err := userStore.Put(ctx, user); err != nil {
		log.Fatal(err)
	}
	log.Printf("user %s created", user.Email)
}
