//go:build ignore

// Generates the secrets the service reads from the environment.
//
//	go run scripts/generate_keys.go
//	go run scripts/generate_keys.go instructor@example.edu 'a long password'
//
// With an email and password it also prints an INSTRUCTOR_ACCOUNTS entry
// holding the bcrypt hash of the password.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/guttosm/suppository-service/internal/service"
)

const minPasswordLength = 8

func generateSecureKey(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	jwtSecret, err := generateSecureKey(32)
	if err != nil {
		fail("generate JWT secret: %v", err)
	}
	apiKey, err := generateSecureKey(24)
	if err != nil {
		fail("generate API key: %v", err)
	}

	fmt.Println("# Add to your .env file; never commit these values.")
	fmt.Printf("JWT_SECRET_KEY=%s\n", jwtSecret)
	fmt.Printf("API_KEYS=%s\n", apiKey)

	switch len(os.Args) {
	case 1:
		return
	case 3:
	default:
		fail("usage: go run scripts/generate_keys.go [email password]")
	}

	email := strings.ToLower(strings.TrimSpace(os.Args[1]))
	password := os.Args[2]
	if email == "" || strings.ContainsAny(email, ":,") {
		fail("invalid email %q", os.Args[1])
	}
	if len(password) < minPasswordLength {
		fail("password must be at least %d characters", minPasswordLength)
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		fail("hash password: %v", err)
	}
	fmt.Printf("INSTRUCTOR_ACCOUNTS=%s:%s\n", email, hash)
}
