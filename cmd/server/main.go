package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/api"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/auth"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/config"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/diagnosis"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := internal.NewLogger(cfg.Env)

	var provider auth.Provider
	switch cfg.AuthBackend {
	case "remote":
		provider = auth.NewRemoteAuthProvider(cfg.AuthURL, cfg.AuthAnonKey, logger)
	default:
		provider = auth.NewLocalAuthProvider(cfg.JWTSecret, logger)
	}

	var profiles storage.ProfileRepository
	var err error
	switch cfg.DBType {
	case "postgres":
		profiles, err = storage.NewPostgresRepository(cfg.DBDSN, logger)
	default:
		if _, statErr := os.Stat("data"); os.IsNotExist(statErr) {
			_ = os.Mkdir("data", 0755)
		}
		profiles, err = storage.NewFileRepository(cfg.ProfilesFile, logger)
	}
	if err != nil {
		logger.Fatalf("failed to init profile storage: %v", err)
	}

	diagClient := diagnosis.NewClient(cfg.DiagnosisAPIURL, logger)
	diagService := diagnosis.NewService(diagClient, profiles, diagnosis.NewStatusBoard(), logger)

	app := api.NewApp(logger, provider, profiles, diagService)
	router := api.NewRouter(app)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("GlycoSight portal starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down portal...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("forced to shutdown: %v", err)
	}

	if fs, ok := profiles.(*storage.FileStorage); ok {
		fs.Shutdown()
	}

	logger.Info("Portal exited")
}
