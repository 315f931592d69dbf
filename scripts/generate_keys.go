//go:build ignore

// Generates the random secrets the storefront needs: the two JWT signing
// keys for staff sessions and an upload API key.
// Run with: go run scripts/generate_keys.go
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
)

func generateSecureKey(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating key: %v\n", err)
		os.Exit(1)
	}
	return base64.StdEncoding.EncodeToString(bytes)
}

func main() {
	fmt.Println("=== Storefront Key Generator ===")
	fmt.Println()

	// 32 bytes = 256 bits for HS256 signing.
	jwtSecret := generateSecureKey(32)
	jwtRefreshSecret := generateSecureKey(32)
	apiKey := generateSecureKey(24)

	fmt.Println("Add these to your .env file:")
	fmt.Println()
	fmt.Println("# JWT signing keys for staff login")
	fmt.Printf("JWT_SECRET_KEY=%s\n", jwtSecret)
	fmt.Printf("JWT_REFRESH_SECRET_KEY=%s\n", jwtRefreshSecret)
	fmt.Println()
	fmt.Println("# API key for the upload endpoint when JWT auth is disabled")
	fmt.Printf("API_KEYS=%s\n", apiKey)
	fmt.Println()
	fmt.Println("=== IMPORTANT ===")
	fmt.Println("- Never commit these keys to version control")
	fmt.Println("- Use different keys for each environment (dev, staging, prod)")
	fmt.Println("- Store production keys in a secure secret manager")
}
