package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"boutique/internal/catalog"
	"boutique/internal/config"
	"boutique/internal/llm/openai"
	"boutique/internal/orders"
	"boutique/internal/retrieval"
	"boutique/internal/server"
	"boutique/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	initLogger(cfg.LogLevel)

	st, err := store.NewSQLite(cfg.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SQLitePath).Msg("store open failed")
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := catalog.SeedIfEmpty(ctx, st); err != nil {
		log.Fatal().Err(err).Msg("catalog seed failed")
	}

	provider := openai.New(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Temperature, cfg.LLM.Timeout)
	ordersSvc := orders.NewService(st, cfg.Fulfillment.WebhookURL, cfg.Fulfillment.Timeout)

	api := server.New(server.Options{
		Provider: provider,
		Catalog:  st,
		Orders:   st,
		Retrieval: retrieval.Options{
			TopK:             cfg.Retrieval.TopK,
			MinSimilarity:    cfg.Retrieval.MinSimilarity,
			FullCatalogLimit: cfg.Retrieval.FullCatalogLimit,
		},
		MaxDiscountPercent: cfg.Coupon.MaxDiscountPercent,
		FulfillmentURL:     cfg.Fulfillment.WebhookURL,
	}, ordersSvc)

	log.Info().Str("addr", cfg.ListenAddr).Msg("boutiqued listening")
	if err := api.Run(ctx, cfg.ListenAddr); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}

func initLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
