package main

import (
	"fmt"
	"log"
	"os"

	"mercato.backend/pkg/crypto"
)

var (
	printfFn       = fmt.Printf
	generateHashFn = crypto.HashPassword
	fatalfFn       = log.Fatalf
)

// resolvePassword takes the password from the first argument, falling back to SEED_DEVELOPER_PASSWORD.
func resolvePassword(args []string) (string, bool) {
	if len(args) > 0 && args[0] != "" {
		return args[0], true
	}
	if p := os.Getenv("SEED_DEVELOPER_PASSWORD"); p != "" {
		return p, true
	}
	return "", false
}

func main() {
	password, ok := resolvePassword(os.Args[1:])
	if !ok {
		fatalfFn("usage: genhash <password>")
		return
	}

	hash, err := generateHashFn(password)
	if err != nil {
		fatalfFn("Failed to hash password: %v", err)
		return
	}
	printfFn("%s\n", hash)
}
