package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"ground-experiment/groundlink/internal/common"
)

// Mints a development session token for a given user id, bypassing the
// session exchange endpoint. Useful for curl and WebSocket testing.
func main() {
	userID := flag.String("user", "", "stable user id to embed in the token")
	displayName := flag.String("name", "", "display name (defaults to the user id)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *userID == "" {
		log.Fatal("usage: token_gen -user <id> [-name <display name>] [-ttl 24h]")
	}

	name := *displayName
	if name == "" {
		name = *userID
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "groundlink-dev-secret"
	}

	signer := common.NewTokenSignerService([]byte(secret))

	// No session id: dev tokens skip the server-side session check
	token, err := signer.SignSessionToken(*userID, name, "", *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}

	fmt.Println(token)
}
