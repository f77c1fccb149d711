package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/go-catalog/pkg/adapters/handler"
	"github.com/wadjakorntonsri/go-catalog/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/go-catalog/pkg/config"
	"github.com/wadjakorntonsri/go-catalog/pkg/core/assembler"
	"github.com/wadjakorntonsri/go-catalog/pkg/core/services"
	"github.com/wadjakorntonsri/go-catalog/pkg/logger"
)

var mux http.Handler

func init() {
	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		panic(err)
	}

	// Note: On Vercel, the local sqlite file is ephemeral unless DATABASE_URL points at Turso
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", zap.Error(err))
		panic(err)
	}

	asm := assembler.New()
	mux = handler.NewRouter(cfg, log, handler.Services{
		Categories:         services.NewCategoryService(repo, asm, log),
		Collections:        services.NewCollectionService(repo, asm, log),
		Products:           services.NewProductService(repo, asm, log),
		ProductCollections: services.NewProductCollectionService(repo, log),
		Orders:             services.NewOrderService(repo, repo, asm, log),
		OrderProducts:      services.NewOrderProductService(repo, repo, asm, log),
	})
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
