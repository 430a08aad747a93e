// Command token mints an admin access token for operators, signed with the
// same JWT_SECRET_KEY the API verifies against.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
)

func main() {
	subject := flag.String("sub", "admin", "token subject")
	email := flag.String("email", "", "email claim")
	admin := flag.Bool("admin", true, "grant the is_admin claim")
	flag.Parse()

	cfg, err := config.LoadJWT()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	JWTService, err := jwt.NewJWTService(cfg.Secret, cfg.AccessExpiration)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error creating jwt service:", err)
		os.Exit(1)
	}

	token, expiresAt, err := JWTService.GenerateAccessToken(*subject, *email, *admin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error signing token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
}
