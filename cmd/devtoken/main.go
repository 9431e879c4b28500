// Command devtoken prints an access token for local development against
// JWT_ACCESS_SECRET.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"estate_portal_backend/platform/httpkit"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	userID := flag.String("user", "", "user ID (random when empty)")
	name := flag.String("name", "", "display name; builders use it as the builder name")
	roles := flag.String("roles", httpkit.RoleCustomer, "comma separated roles: builder, customer, admin")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()
	secret := os.Getenv("JWT_ACCESS_SECRET")

	id := uuid.New()
	if *userID != "" {
		parsed, err := uuid.Parse(*userID)
		if err != nil {
			fmt.Fprintln(os.Stderr, "invalid user id:", err)
			os.Exit(2)
		}
		id = parsed
	}

	var roleList []string
	for _, r := range strings.Split(*roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roleList = append(roleList, r)
		}
	}

	token, err := httpkit.IssueAccessToken(secret, id, *name, roleList, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "issue token:", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "user %s roles %v\n", id, roleList)
	fmt.Println(token)
}
