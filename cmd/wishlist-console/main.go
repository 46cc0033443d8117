package main

import (
	"context"
	"flag"
	"log"

	"github.com/goliatone/go-wishlist-console/pkg/config"
	"github.com/goliatone/go-wishlist-console/pkg/orchestrator"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	envFile := flag.String("env", ".env", "dotenv file loaded before reading the environment")
	addr := flag.String("addr", "", "listen address (overrides server.addr)")
	apiURL := flag.String("api", "", "wishlist service base URL (overrides api.base_url)")
	metrics := flag.Bool("metrics", false, "expose /metrics")
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		log.Fatalf("Failed to load %s: %v", *envFile, err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}
	if *metrics {
		cfg.Server.Metrics = true
	}

	console, err := orchestrator.New(cfg)
	if err != nil {
		log.Fatalf("Failed to build console: %v", err)
	}
	srv, err := console.Server()
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}

	spec := console.Spec()
	log.Printf("Wishlist console on %s, service %s (%s %s)", srv.Addr(), cfg.API.BaseURL, spec.Title(), spec.Version())
	if err := srv.ListenAndServe(context.Background()); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	log.Println("Server exited properly")
}
