package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"

	"bondbuy/internal/audit"
	"bondbuy/internal/bonds"
	bondsHandler "bondbuy/internal/bonds/handler"
	"bondbuy/internal/holdings"
	holdingsHandler "bondbuy/internal/holdings/handler"
	"bondbuy/internal/jwttoken"
	"bondbuy/internal/platform/config"
	"bondbuy/internal/platform/database"
	"bondbuy/internal/platform/httpserver"
	"bondbuy/internal/platform/logger"
	"bondbuy/internal/platform/metrics"
	platformredis "bondbuy/internal/platform/redis"
	"bondbuy/internal/portfolio"
	httptransport "bondbuy/internal/transport/http"
	"bondbuy/internal/verification"
	verificationHandler "bondbuy/internal/verification/handler"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal feature packages. Postgres, Redis and
// Kafka are all optional; the binary falls back to in-memory implementations
// so the demo runs with no environment at all.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err.Error())
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	redisClient, err := platformredis.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Audit pipeline: channel worker fanning out to the in-memory sink and,
	// when brokers are configured, Kafka.
	inbox := make(chan audit.Event, 256)
	sinks := []audit.Sink{audit.NewInMemorySink()}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka connection failed", "error", err.Error())
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
	}
	worker := audit.NewWorker(inbox, log, sinks...)
	go func() {
		if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("audit worker stopped", "error", err.Error())
		}
	}()
	auditor := audit.NewPublisher(inbox, log)

	m := metrics.New()

	var receiptStore verification.Store
	var holdingStore holdings.Store
	if db != nil {
		receiptStore = verification.NewPostgresStore(db)
		holdingStore = holdings.NewPostgresStore(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		receiptStore = verification.NewInMemoryStore()
		holdingStore = holdings.NewInMemoryStore()
	}
	if redisClient != nil {
		receiptStore = verification.NewCachedStore(receiptStore, redisClient.Client, cfg.ReceiptCacheTTL, log)
	}

	policy := verification.Policy{
		MinimumInvestment:      cfg.MinimumInvestment,
		APYMinBasisPoints:      cfg.APYMinBasisPoints,
		APYMaxBasisPoints:      cfg.APYMaxBasisPoints,
		MinWalletAddressLength: cfg.MinWalletAddressLength,
	}
	verificationService := verification.NewService(
		verification.NewEvaluator(policy),
		verification.NewComposer(cfg.Chain.Executor),
		verification.NewSimulatedLedger(cfg.Chain.Network, cfg.Chain.Executor),
		receiptStore,
		log,
		m,
		auditor,
	)

	catalog := bonds.NewSeededCatalog()
	holdingsService := holdings.NewService(holdingStore, catalog, log)
	portfolioService := portfolio.NewService(holdingsService, verificationService)

	jwtService := jwttoken.NewService(cfg.JWTSigningKey, "bondbuy")

	var authHandler *jwttoken.Handler
	if cfg.AdminSecretHash != "" {
		authHandler = jwttoken.NewHandler(jwtService, cfg.AdminSecretHash, cfg.AdminTokenTTL, log)
	} else {
		log.Warn("ADMIN_SECRET_HASH not set, token endpoint disabled")
	}

	router := httptransport.NewRouter(log, jwtService, httptransport.Handlers{
		Verification: verificationHandler.New(verificationService, log),
		Bonds:        bondsHandler.New(catalog, log),
		Holdings:     holdingsHandler.New(holdingsService, log),
		Portfolio:    portfolio.NewHandler(portfolioService, log),
		Auth:         authHandler,
	})

	srv := httpserver.New(cfg.Addr, router, cfg.HTTP)

	log.Info("starting bondbuy", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
	}
}
