package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/openfma/fma/internal/ai"
	"github.com/openfma/fma/internal/categorize"
	"github.com/openfma/fma/internal/category"
	"github.com/openfma/fma/internal/config"
	"github.com/openfma/fma/internal/currency"
	"github.com/openfma/fma/internal/database"
	fmaHttp "github.com/openfma/fma/internal/http"
	aiHandler "github.com/openfma/fma/internal/http/aiadmin"
	categorizeHandler "github.com/openfma/fma/internal/http/categorize"
	categoryHandler "github.com/openfma/fma/internal/http/category"
	dashboardHandler "github.com/openfma/fma/internal/http/dashboard"
	planHandler "github.com/openfma/fma/internal/http/plan"
	planfileHandler "github.com/openfma/fma/internal/http/planfile"
	"github.com/openfma/fma/internal/kv"
	"github.com/openfma/fma/internal/plan"
	planStore "github.com/openfma/fma/internal/plan/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log := slog.Default()

	store := openStore(ctx, cfg, log)

	var (
		planService     = plan.NewService(planStore.New(store))
		categoryService = category.NewService(store)
		currencyService = currency.NewService(cfg.Currency.APIKey, cfg.Currency.BaseURL, store, log)
	)

	creds := make([]ai.Credential, 0, 4)
	for _, k := range cfg.OpenAIKeys() {
		creds = append(creds, ai.Credential{Source: k.Source, Key: k.Key})
	}

	runner := ai.NewRunner(creds, func(c ai.Credential) ai.Client {
		return ai.NewOpenAI(c.Key, cfg.OpenAI.BaseURL, cfg.OpenAI.Model)
	}, log)

	var (
		aiService         = ai.NewService(runner, cfg.OpenAI.Model)
		categorizeService = categorize.NewService(aiService, store, log)
	)

	router := fmaHttp.New(
		planHandler.NewHandler(planService),
		dashboardHandler.NewHandler(planService, currencyService),
		planfileHandler.NewHandler(planService, categoryService, categorizeService, aiService, cfg.Encrypt.Key),
		categorizeHandler.NewHandler(categorizeService, planService, categoryService),
		categoryHandler.NewHandler(categoryService),
		aiHandler.NewHandler(aiService),
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// openStore connects the Postgres-backed kv store, falling back to the
// in-memory one so the app still runs without a database (nothing survives a
// restart in that mode).
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) kv.Store {
	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		log.Warn("database unavailable, using in-memory store", "error", err)
		return kv.NewMemory()
	}

	pg := kv.NewPostgres(db)
	if err := pg.Init(ctx); err != nil {
		log.Warn("failed to init kv table, using in-memory store", "error", err)
		return kv.NewMemory()
	}

	return pg
}
