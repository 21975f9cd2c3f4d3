package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stayvelle/hotel-backend/internal/utils"
	"github.com/stayvelle/hotel-backend/pkg/jwt"
)

func main() {
	mintToken := flag.Bool("token", false, "also mint a development access token signed with the new secret")
	secretFlag := flag.String("secret", "", "sign the token with this secret instead of a new one")
	actor := flag.String("actor", "frontdesk", "username carried by the token")
	roles := flag.String("roles", "staff", "comma-separated roles carried by the token")
	issuer := flag.String("issuer", "stayvelle", "token issuer, must match JWT_ISSUER")
	expiry := flag.Duration("expiry", 24*time.Hour, "token lifetime")
	flag.Parse()

	fmt.Println("===========================================")
	fmt.Println("JWT Secret Generator")
	fmt.Println("===========================================")
	fmt.Println()

	secret := *secretFlag
	if secret == "" {
		generated, err := utils.GenerateJWTSecret()
		if err != nil {
			log.Fatalf("Failed to generate secret: %v", err)
		}
		secret = generated

		fmt.Println("Add this to your .env file:")
		fmt.Println()
		fmt.Printf("JWT_SECRET=%s\n", secret)
		fmt.Println()
	}

	if *mintToken {
		service := jwt.NewService(secret, *issuer, *expiry)
		token, err := service.GenerateAccessToken(uuid.New(), *actor, splitRoles(*roles))
		if err != nil {
			log.Fatalf("Failed to mint token: %v", err)
		}
		fmt.Printf("Development token for %q (expires in %s):\n\n", *actor, *expiry)
		fmt.Printf("Authorization: Bearer %s\n\n", token)
	}

	fmt.Println("Keep secrets out of version control.")
	fmt.Println("===========================================")
}

func splitRoles(s string) []string {
	var roles []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}
