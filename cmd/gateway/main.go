package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/LewyHua/RiceTrace-sub000/config"
	"github.com/LewyHua/RiceTrace-sub000/internal/fabric"
	"github.com/LewyHua/RiceTrace-sub000/internal/gateway"
	"github.com/LewyHua/RiceTrace-sub000/internal/platform/logger"
)

func main() {
	configDir := flag.String("config", "./config", "directory containing *.defaults.yml files")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.Gateway == nil {
		cfg.Gateway = config.DefaultGatewayConfig()
	}
	if cfg.Fabric == nil {
		fmt.Fprintln(os.Stderr, "fabric configuration is required (fabric.defaults.yml)")
		os.Exit(1)
	}

	log, err := logger.New(cfg.Gateway.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ledger, err := fabric.NewGatewayClient(cfg.Fabric, log)
	if err != nil {
		log.Fatal("failed to connect to fabric", "err", err)
	}
	defer ledger.Close()

	cache := gateway.NewRedisCache(cfg.Cache, log)
	handler := gateway.NewTraceHandler(ledger, cache, log, cfg.Gateway.MaxUploadBytes)
	router := gateway.NewRouter(cfg.Gateway, handler)

	log.Info("gateway listening", "addr", cfg.Gateway.ListenAddr)
	if err := router.Run(cfg.Gateway.ListenAddr); err != nil {
		log.Fatal("gateway stopped", "err", err)
	}
}
