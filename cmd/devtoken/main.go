// Package main prints a signed bearer token for local development against the API.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"conferencecentral/internal/adapters/auth"
	"conferencecentral/internal/domain"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	var (
		userID   string
		mail     string
		nickname string
		expiry   time.Duration
	)
	flag.StringVar(&userID, "sub", "", "user id (default: random uuid)")
	flag.StringVar(&mail, "email", "dev@example.com", "email claim")
	flag.StringVar(&nickname, "name", "", "nickname claim")
	flag.DurationVar(&expiry, "ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "Error: JWT_SECRET is not set")
		os.Exit(1)
	}
	if userID == "" {
		userID = uuid.NewString()
	}

	token, err := auth.NewJWTIssuer(secret).Issue(domain.Identity{UserID: userID, Email: mail, Nickname: nickname}, expiry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
