package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/go-catalog/pkg/adapters/handler"
	"github.com/wadjakorntonsri/go-catalog/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/go-catalog/pkg/config"
	"github.com/wadjakorntonsri/go-catalog/pkg/core/assembler"
	"github.com/wadjakorntonsri/go-catalog/pkg/core/services"
	"github.com/wadjakorntonsri/go-catalog/pkg/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Initialize Repository
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer repo.Close()

	mux := handler.NewRouter(cfg, log, newServices(repo, log))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}

// newServices wires every catalog service over one repository
func newServices(repo *sqlite.SQLiteRepository, log *zap.Logger) handler.Services {
	asm := assembler.New()
	return handler.Services{
		Categories:         services.NewCategoryService(repo, asm, log),
		Collections:        services.NewCollectionService(repo, asm, log),
		Products:           services.NewProductService(repo, asm, log),
		ProductCollections: services.NewProductCollectionService(repo, log),
		Orders:             services.NewOrderService(repo, repo, asm, log),
		OrderProducts:      services.NewOrderProductService(repo, repo, asm, log),
	}
}
