// Command agency-mcp starts the tool server. Run with the single argument
// "auth" to perform the interactive Google consent flow and seed the token
// cache; the server itself never blocks a request on interactive consent.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/artermis-ops/agency-mcp/internal/config"
	"github.com/artermis-ops/agency-mcp/internal/gauth"
	"github.com/artermis-ops/agency-mcp/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if len(os.Args) > 1 && os.Args[1] == "auth" {
		if err := runAuth(cfg); err != nil {
			log.Fatal().Err(err).Msg("authorization failed")
		}
		return
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("server setup failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("company", cfg.CompanyName).
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Msg("agency-mcp ready")

	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func runAuth(cfg *config.Config) error {
	if cfg.GoogleCredentialsFile == "" {
		return fmt.Errorf("google_credentials_file is not configured")
	}
	provider, err := gauth.NewProvider(cfg.GoogleCredentialsFile, cfg.GoogleTokenFile, gauth.Scopes...)
	if err != nil {
		return err
	}

	fmt.Println("Open the following URL in a browser and approve access:")
	fmt.Println()
	fmt.Println("  " + provider.AuthURL())
	fmt.Println()
	fmt.Print("Enter the authorization code: ")

	var code string
	if _, err := fmt.Scanln(&code); err != nil {
		return fmt.Errorf("read authorization code: %w", err)
	}
	if err := provider.Exchange(context.Background(), code); err != nil {
		return err
	}
	fmt.Println("Token saved to", cfg.GoogleTokenFile)
	return nil
}
