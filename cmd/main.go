package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpctx "github.com/idforge/identity-server/internal/api/http/context"
	"github.com/idforge/identity-server/internal/api/http/router"
	"github.com/idforge/identity-server/internal/config"
	"github.com/idforge/identity-server/internal/logger"
	"github.com/idforge/identity-server/internal/model"
	"github.com/idforge/identity-server/internal/password"
	"github.com/idforge/identity-server/internal/repository/postgres"
	"github.com/idforge/identity-server/internal/server"
	"github.com/idforge/identity-server/internal/service"
	"github.com/idforge/identity-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	identityRepo := postgres.NewIdentityRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	hasher := password.NewArgon2Hasher()
	tokenIssuer := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL)

	// Explicit construction order keeps the dependency graph acyclic:
	// auth depends only on the store and issuer, signup/signin depend
	// on auth.
	authService := service.NewAuth(identityRepo, tokenIssuer, logger)
	registrationService := service.NewRegistration(identityRepo, hasher, authService, eventRepo, cfg.Events.Topic, logger)
	sessionService := service.NewSession(identityRepo, hasher, authService, logger)
	ctxMgr := httpctx.NewManager()

	r := router.New(registrationService, sessionService, authService, tokenIssuer, ctxMgr, logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
