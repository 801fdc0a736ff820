// Command ledger_token mints a bearer token for a ledger owner, signed with
// the server's JWT_SECRET.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/household_ledger/internal/platform/config"
	"github.com/SscSPs/household_ledger/internal/utils"
	"github.com/spf13/pflag"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ownerID := pflag.StringP("owner", "o", "", "owner ID to put in the token subject")
	ttl := pflag.DurationP("ttl", "t", 24*time.Hour, "token lifetime")
	issuer := pflag.String("issuer", "household-ledger", "token issuer")
	pflag.Parse()

	if *ownerID == "" {
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	token, err := utils.GenerateOwnerToken(*ownerID, cfg.JWTSecret, *issuer, *ttl, time.Now())
	if err != nil {
		logger.Error("Failed to generate token", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(token)
}
