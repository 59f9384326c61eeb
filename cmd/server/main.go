package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/tabby/internal/reminder"
	"github.com/mmynk/tabby/internal/server"
	"github.com/mmynk/tabby/internal/service"
	"github.com/mmynk/tabby/internal/session"
	"github.com/mmynk/tabby/internal/storage/sqlite"
	"github.com/mmynk/tabby/pkg/logging"
)

const sessionDuration = 30 * 24 * time.Hour

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	port := getEnv("PORT", "8080")
	dbPath := getEnv("DB_PATH", "./data/tabby.db")

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		// Ephemeral secret: session tokens die with the process, but raw
		// access tokens still resolve through the store.
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			slog.Error("Failed to generate session secret", "error", err)
			os.Exit(1)
		}
		secret = hex.EncodeToString(buf)
		slog.Warn("SESSION_SECRET not set, using ephemeral secret")
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	manager := session.NewManager(secret, sessionDuration)
	resolver := session.NewStoreResolver(store, manager)

	reminders := reminder.New(os.Getenv("ANTHROPIC_API_KEY"))

	srv := server.New(
		service.NewTabService(store),
		service.NewLedgerService(store),
		manager,
		resolver,
		reminders,
	)

	// h2c so gRPC-style HTTP/2 clients work without TLS termination in
	// front of us.
	handler := h2c.NewHandler(srv.Routes(), &http2.Server{})

	addr := fmt.Sprintf(":%s", port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
