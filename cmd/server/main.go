// Package main is the entry point for the game-arcade server.
//
// Its job is limited to reading configuration, constructing the logger and
// the session secret, and handing everything to internal/server. All real
// logic lives in the imported packages.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sakif/game-arcade/internal/server"
)

func main() {
	// Optional .env file for local development; real deployments set the
	// environment directly. A missing file is not an error.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	dbPath := "data/arcade.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	templateDir := "web/templates"
	if envTmpl := os.Getenv("TEMPLATE_DIR"); envTmpl != "" {
		templateDir = envTmpl
	}

	secret, err := sessionSecret(logger)
	if err != nil {
		logger.Error("failed to derive session secret", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv, err := server.New(server.Config{
		Port:          port,
		TemplateDir:   templateDir,
		DBPath:        dbPath,
		SessionSecret: secret,
	}, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// sessionSecret returns the cookie-signing key.
//
// SESSION_SECRET (hex-encoded, 32+ hex chars) pins the key across restarts so
// sessions survive a redeploy. Without it, 32 fresh random bytes are drawn per
// process — every outstanding session dies when the process does.
func sessionSecret(logger *slog.Logger) ([]byte, error) {
	if envSecret := os.Getenv("SESSION_SECRET"); envSecret != "" {
		secret, err := hex.DecodeString(envSecret)
		if err != nil {
			return nil, err
		}
		return secret, nil
	}

	logger.Warn("SESSION_SECRET not set — sessions will not survive a restart")
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	return secret, nil
}

// logLevel reads LOG_LEVEL, defaulting to debug like a dev server should.
func logLevel() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
