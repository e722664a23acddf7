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

	httpctx "github.com/vpopov/authgate/internal/api/http/context"
	"github.com/vpopov/authgate/internal/api/http/router"
	"github.com/vpopov/authgate/internal/config"
	"github.com/vpopov/authgate/internal/logger"
	"github.com/vpopov/authgate/internal/model"
	"github.com/vpopov/authgate/internal/password"
	"github.com/vpopov/authgate/internal/repository/postgres"
	"github.com/vpopov/authgate/internal/server"
	"github.com/vpopov/authgate/internal/service"
	"github.com/vpopov/authgate/internal/token"
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

	userRepo := postgres.NewUserRepository(db)
	revokedTokenRepo := postgres.NewRevokedTokenRepository(db)

	tokenManager, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.TTL)
	if err != nil {
		logger.Fatal("failed to create token manager", "error", err)
	}

	tokenService := service.NewTokenService(tokenManager, revokedTokenRepo, userRepo, logger)
	authService := service.NewAuth(userRepo, password.NewHasher(), tokenService, logger)
	ctxMgr := httpctx.NewManager()

	// Blacklist entries older than the token TTL can never matter again.
	if err := tokenService.PruneBefore(ctx, time.Now().Add(-cfg.JWT.TTL)); err != nil {
		logger.Error("failed to prune revoked tokens", "error", err)
	}

	r := router.New(authService, tokenService, ctxMgr, logger)
	httpServer := server.NewHTTPServer(r.Handler(), fmt.Sprintf(":%s", cfg.HTTP.Port))

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
		if err := s.Start(sl); err != nil {
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
