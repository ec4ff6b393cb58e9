package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kainan-pos/api/internal/config"
	"github.com/kainan-pos/api/internal/database"
	"github.com/kainan-pos/api/internal/order"
	"github.com/kainan-pos/api/internal/router"
	"github.com/kainan-pos/api/internal/ws"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("ping database", zap.Error(err))
	}
	logger.Info("connected to database")

	queries := database.New(pool)

	menu, err := database.LoadCatalog(ctx, queries)
	if err != nil {
		logger.Fatal("load catalog", zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.Int("products", len(menu.Products())),
		zap.Int("meals", len(menu.Meals())))

	policy, err := discountPolicy(cfg)
	if err != nil {
		logger.Fatal("parse discount policy", zap.Error(err))
	}

	carts := order.NewRegistry(menu, policy)

	hub := ws.NewHub(logger)
	go hub.Run()

	r := router.New(cfg, queries, menu, carts, hub, logger)

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("starting server", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func discountPolicy(cfg *config.Config) (order.DiscountPolicy, error) {
	rate, err := decimal.NewFromString(cfg.DiscountRate)
	if err != nil {
		return order.DiscountPolicy{}, fmt.Errorf("discount rate %q: %w", cfg.DiscountRate, err)
	}
	vat, err := decimal.NewFromString(cfg.VATRate)
	if err != nil {
		return order.DiscountPolicy{}, fmt.Errorf("vat rate %q: %w", cfg.VATRate, err)
	}
	return order.DiscountPolicy{
		StatutoryRate: rate,
		VATRate:       vat,
		VATExclusive:  true,
	}, nil
}
