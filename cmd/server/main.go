package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/myrayzsiza/cse-340/internal/config"
	"github.com/myrayzsiza/cse-340/internal/handlers"
	"github.com/myrayzsiza/cse-340/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	st, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		Domain:   cfg.CookieDomain,
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}

	if err := os.MkdirAll("static/uploads", 0o755); err != nil {
		slog.Error("Failed to create upload dir", "error", err)
		os.Exit(1)
	}

	guard := &handlers.AuthGuard{SessionStore: sessionStore, JWTSecret: cfg.JWTSecret}
	reg := &handlers.Registry{
		Home: &handlers.HomeHandler{Store: st, Templates: templates, SessionStore: sessionStore, Guard: guard},
		Account: &handlers.AccountHandler{
			Store: st, Templates: templates, SessionStore: sessionStore,
			JWTSecret: cfg.JWTSecret, JWTTTL: cfg.JWTTTL, CookieSecure: cfg.CookieSecure,
		},
		Inventory: &handlers.InventoryHandler{Store: st, Templates: templates, SessionStore: sessionStore, UploadDir: "static/uploads"},
		Cart:      &handlers.CartHandler{Store: st, Templates: templates, SessionStore: sessionStore},
		Orders:    &handlers.OrderHandler{Store: st, Templates: templates, SessionStore: sessionStore},
		Reviews:   &handlers.ReviewHandler{Store: st, Templates: templates, SessionStore: sessionStore},
		Search:    &handlers.SearchHandler{Store: st, Templates: templates, SessionStore: sessionStore},
		Profile:   &handlers.ProfileHandler{Store: st, Templates: templates, SessionStore: sessionStore},
		Activity:  &handlers.ActivityHandler{Store: st, Templates: templates, SessionStore: sessionStore},
		Admin:     &handlers.AdminHandler{Store: st, Templates: templates, SessionStore: sessionStore},
		Guard:     guard,
	}
	mux := reg.Routes()

	csrfMiddleware := csrf.Protect(cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.Path("/"),
		csrf.TrustedOrigins([]string{cfg.Host + ":" + cfg.Port}),
	)

	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			csrfMiddleware(mux)))

	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Server listening", "addr", "http://"+addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
	slog.Info("Server stopped")
}
