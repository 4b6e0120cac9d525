package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nvsprasad/ricemill-ops/internal/config"
	kafkax "github.com/nvsprasad/ricemill-ops/internal/kafka"
	"github.com/nvsprasad/ricemill-ops/internal/notifier"
	"github.com/nvsprasad/ricemill-ops/internal/redisx"
	"github.com/nvsprasad/ricemill-ops/internal/ricemill"
)

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

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

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Service
	svc := &notifier.Service{
		Cache:       &redisx.Cache{RDB: rdb},
		Log:         log,
		ServiceName: cfg.ServiceName + "-notifier",
	}

	// Consumer: semua topic workflow dalam satu group
	group := getenv("NOTIFIER_GROUP", "ricemill-notifier")
	workers := mustAtoi(os.Getenv("NOTIFIER_WORKERS"), "4")
	topics := []string{
		ricemill.TopicQuoteSubmitted,
		ricemill.TopicQuoteDecided,
		ricemill.TopicOrderPaid,
		ricemill.TopicDispatchScheduled,
	}
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, topics, workers, log)

	go func() {
		log.Info("notifier consumer started",
			zap.String("group", group),
			zap.Strings("topics", topics),
			zap.Int("workers", workers))
		if err := cons.Start(ctx, svc.HandleEvent); err != nil {
			log.Warn("consumer exit", zap.Error(err))
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}
