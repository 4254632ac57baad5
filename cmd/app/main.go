package main

import (
	"flag"
	"log"
	"os"

	"github.com/alokrrr/Ecom-Analytics/internal/di"
	"github.com/alokrrr/Ecom-Analytics/pkg/config"

	"github.com/joho/godotenv"
)

func main() {
	// Local development secrets; absent in containers.
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s clickhouse=%s:%d kafka_enabled=%v", cfg.Environment, cfg.ClickHouse.Host, cfg.ClickHouse.Port, cfg.Kafka.Enabled)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Blocks until signal.
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
