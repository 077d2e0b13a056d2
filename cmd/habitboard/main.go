package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/joho/godotenv"
	svix "github.com/svix/svix-webhooks/go"

	adapthttp "habitboard/internal/adapter/http"
	"habitboard/internal/adapter/memory"
	"habitboard/internal/adapter/postgres"
	"habitboard/internal/app"
	"habitboard/internal/domain"
)

func main() {
	_ = godotenv.Load()

	addr := env("ADDR", ":8080")
	webDir := env("WEB_DIR", "web")

	var (
		habitRepo    domain.HabitRepository
		progressRepo domain.ProgressRepository
		userRepo     domain.UserRepository
	)
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		db, err := postgres.Open(connStr)
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		defer func() { _ = db.Close() }()
		habitRepo, progressRepo, userRepo = db, db, db
	} else {
		log.Print("DATABASE_URL not set, using in-memory store")
		db := memory.New()
		habitRepo, progressRepo, userRepo = db, db, db
	}

	habitSvc := app.NewHabitService(habitRepo, progressRepo)
	progressSvc := app.NewProgressService(progressRepo)
	statsSvc := app.NewStatsService(habitSvc)
	identitySvc := app.NewIdentityService(userRepo)

	srv := adapthttp.New(habitSvc, progressSvc, statsSvc, identitySvc, oidcVerifier(), identityWebhook(), webDir)
	if os.Getenv("DISABLE_AUTH") == "1" {
		log.Print("bearer auth disabled")
		srv = srv.WithoutAuth()
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("listening on %s", addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func oidcVerifier() *oidc.IDTokenVerifier {
	issuer := os.Getenv("OIDC_ISSUER")
	if issuer == "" {
		log.Print("OIDC_ISSUER not set, bearer auth unavailable")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		log.Fatalf("oidc provider: %v", err)
	}
	return provider.Verifier(&oidc.Config{ClientID: os.Getenv("OIDC_CLIENT_ID")})
}

func identityWebhook() *svix.Webhook {
	secret := os.Getenv("IDENTITY_WEBHOOK_SECRET")
	if secret == "" {
		log.Print("IDENTITY_WEBHOOK_SECRET not set, identity webhook disabled")
		return nil
	}
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		log.Fatalf("webhook secret: %v", err)
	}
	return wh
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
