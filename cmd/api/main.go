package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nvsprasad/ricemill-ops/internal/config"
	"github.com/nvsprasad/ricemill-ops/internal/httpx"
	kafkax "github.com/nvsprasad/ricemill-ops/internal/kafka"
	"github.com/nvsprasad/ricemill-ops/internal/postgres"
	"github.com/nvsprasad/ricemill-ops/internal/redisx"
	"github.com/nvsprasad/ricemill-ops/internal/ricemill"
)

func main() {
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer (satu producer, topic per message)
	prod := kafkax.NewProducer(cfg.KafkaBrokers, 1024, log)
	prod.Start(ctx)

	// Repo & handlers
	repo := &ricemill.Repo{DB: db}
	cache := &redisx.Cache{RDB: rdb}
	router := httpx.NewRouter()
	(&httpx.QuotesHandler{Store: repo, Producer: prod, Cache: cache, Log: log, Service: cfg.ServiceName}).Register(router)
	(&httpx.OrdersHandler{Store: repo, Producer: prod, Cache: cache, Log: log, Service: cfg.ServiceName}).Register(router)
	(&httpx.DispatchHandler{Store: repo, Producer: prod, Cache: cache, Log: log, Service: cfg.ServiceName}).Register(router)
	(&httpx.RiceHandler{Store: repo, Log: log}).Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // tutup inbox -> flush & close writer
	prod.WaitClosed() // drain
}
