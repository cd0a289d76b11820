// Command devtoken prints a bearer token for local testing of the API and pages.
package main

import (
	"Food-Quality-Registry/domain"
	"Food-Quality-Registry/internal/utils"
	"Food-Quality-Registry/pkg/jwt"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
)

var userFlag = flag.String("user", "", "user id to embed (random when empty)")

func main() {
	flag.Parse()
	utils.LoadConfig()

	userID := *userFlag
	if userID == "" {
		userID = uuid.NewString()
	} else if _, err := uuid.Parse(userID); err != nil {
		log.Fatalf("invalid user id %q: %v", userID, err)
	}

	secret := utils.GetConfig("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not configured")
	}

	token, err := jwt.NewJWTService(secret, utils.GetConfig("JWT_ISSUER")).GenerateTokenUser(userID, domain.RoleUser)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}

	fmt.Printf("user_id: %s\ntoken:   %s\n", userID, token)
}
