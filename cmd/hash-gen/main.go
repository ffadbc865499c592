package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"profile-api.backend/pkg/crypto"
)

var (
	printfFn       = fmt.Printf
	generateHashFn = crypto.HashPasswordWithCost
	fatalfFn       = log.Fatalf
)

// resolvePassword takes the first argument, then ADMIN_PASSWORD.
func resolvePassword(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if p := os.Getenv("ADMIN_PASSWORD"); p != "" {
		return p, nil
	}
	return "", errors.New("password required: pass it as an argument or set ADMIN_PASSWORD")
}

func run(args []string) error {
	fs := flag.NewFlagSet("hash-gen", flag.ContinueOnError)
	cost := fs.Int("cost", crypto.DefaultCost, "bcrypt cost")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := resolvePassword(fs.Args())
	if err != nil {
		return err
	}

	hash, err := generateHashFn(password, *cost)
	if err != nil {
		return err
	}

	printfFn("ADMIN_PASSWORD_HASH=%s\n", hash)
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fatalfFn("%v", err)
	}
}
