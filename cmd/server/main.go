package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	attendancetokenrepo "field-attendance/backend/internal/attendancetoken/repository"
	"field-attendance/backend/internal/audit"
	auditrepo "field-attendance/backend/internal/audit/repository"
	challengerepo "field-attendance/backend/internal/challenge/repository"
	"field-attendance/backend/internal/config"
	credentialrepo "field-attendance/backend/internal/credential/repository"
	"field-attendance/backend/internal/db"
	employeerepo "field-attendance/backend/internal/employee/repository"
	healthhandler "field-attendance/backend/internal/health/handler"
	"field-attendance/backend/internal/security"
	"field-attendance/backend/internal/server"
	otelsetup "field-attendance/backend/internal/telemetry/otel"
	verificationhandler "field-attendance/backend/internal/verification/handler"
	verificationservice "field-attendance/backend/internal/verification/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	ctx := context.Background()

	providers, err := otelsetup.NewProviders(ctx, cfg.OTLPEndpoint, "attendance-verification", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()

	auditLogger := audit.Multi(
		audit.NewLogger(auditrepo.NewPostgresRepository(database), server.ClientIP),
		otelsetup.NewAuditEmitter(providers.LoggerProvider),
	)

	svc := verificationservice.NewService(verificationservice.Deps{
		Tokens:         attendancetokenrepo.NewPostgresRepository(database),
		Employees:      employeerepo.NewPostgresRepository(database),
		Challenges:     challengerepo.NewPostgresRepository(database),
		Credentials:    credentialrepo.NewPostgresRepository(database),
		Hasher:         security.NewHasher(cfg.BcryptCost),
		Audit:          auditLogger,
		RPDisplayName:  cfg.RPDisplayName,
		ChallengeTTL:   cfg.ChallengeLifetime(),
		TokenMinLength: cfg.TokenMinLength,
	})

	router := server.NewRouter(server.Deps{
		Verification: verificationhandler.NewHandler(svc),
		Health:       healthhandler.NewHandler(database),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("HTTP server stopped")
}
