package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
)

const minSecretBytes = 32

func main() {
	size := flag.Int("bytes", 48, "random bytes in the secret (minimum 32)")
	flag.Parse()

	secret, err := buildSecret(*size)
	if err != nil {
		log.Fatalf("failed to generate secret: %v", err)
	}

	fmt.Println("Generated JWT signing secret")
	fmt.Printf("JWT_SECRET=%s\n", secret)
}

func validateSize(n int) error {
	if n < minSecretBytes {
		return fmt.Errorf("invalid bytes: %d (minimum %d)", n, minSecretBytes)
	}
	return nil
}

func buildSecret(n int) (string, error) {
	if err := validateSize(n); err != nil {
		return "", err
	}
	return generateRandomHex(n)
}

func generateRandomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
