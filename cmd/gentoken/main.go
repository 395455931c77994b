// gentoken mints HS256 dev tokens accepted by a server running with
// DEV_TOKEN_SECRET set. For local admin testing only.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hirotalab/cms-server/internal/auth"
)

func main() {
	var (
		email  = flag.String("email", "admin@example.org", "email claim to embed")
		secret = flag.String("secret", os.Getenv("DEV_TOKEN_SECRET"), "shared HS256 secret (default: $DEV_TOKEN_SECRET)")
		ttl    = flag.Duration("ttl", 24*time.Hour, "token lifetime")
	)
	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "Error: no secret given (set DEV_TOKEN_SECRET or pass -secret)")
		os.Exit(1)
	}

	token, err := auth.SignDevToken(*secret, *email, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Dev token:")
	fmt.Println(token)
	fmt.Println("\nTest with:")
	fmt.Printf("curl -H 'Authorization: Bearer %s' -X POST http://localhost:8080/content/news -d '{\"title\":\"t\",\"body\":\"b\",\"date\":\"2025-01-01\"}'\n", token)
}
