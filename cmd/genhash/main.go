package main

import (
	"fmt"
	"os"

	"adlicense.backend/pkg/crypto"
)

// Prints a bcrypt hash for seeding admin accounts.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: genhash <password>")
		os.Exit(1)
	}

	hash, err := crypto.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash failed:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
