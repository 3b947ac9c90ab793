package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/weplanet/ecoquest/internal/config"
	"github.com/weplanet/ecoquest/internal/stubserver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	store, err := stubserver.OpenStore(context.Background(), cfg.Stub.DB)
	if err != nil {
		log.Fatal("failed to open stub store", zap.Error(err))
	}
	defer store.Close()

	srv := &http.Server{
		Addr:              cfg.Stub.Addr,
		Handler:           stubserver.New(store, log).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info("stub backend listening", zap.String("addr", cfg.Stub.Addr), zap.String("db", cfg.Stub.DB))
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal("stub backend stopped", zap.Error(err))
	}
}
