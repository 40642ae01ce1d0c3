// Command token prints an operator token for the scoreboard API, signed
// with JWT_SECRET.
//
//	token --operator desk-1 --ttl 12h
package main

import (
	"fmt"
	"log"

	"example.com/scoreboard/internal/auth"
	"example.com/scoreboard/internal/config"
	"github.com/spf13/pflag"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	operator := pflag.StringP("operator", "o", "", "operator id embedded in the token")
	ttl := pflag.Duration("ttl", cfg.Auth.TokenTTL, "token lifetime")
	pflag.Parse()

	if *operator == "" {
		log.Fatal("--operator is required")
	}

	token, err := auth.NewService([]byte(cfg.Auth.Secret)).Sign(*operator, *ttl)
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	fmt.Println(token)
}
