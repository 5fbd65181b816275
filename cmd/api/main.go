package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/interviewninja/backend/internal/config"
	"github.com/interviewninja/backend/internal/db"
	"github.com/interviewninja/backend/internal/httpapi"
	"github.com/interviewninja/backend/internal/store/rabbitmq"
	"github.com/interviewninja/backend/internal/store/redisstore"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	gdb := db.Connect(cfg.DBDriver, cfg.DBDSN)

	// Redis only backs the TTS audio cache; run without it if unreachable.
	var rds *redisstore.Store
	{
		s := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := s.Ping(ctx); err != nil {
			log.Printf("[redis] unreachable at %s, tts cache disabled: %v", cfg.RedisAddr, err)
			_ = s.Close()
		} else {
			rds = s
		}
		cancel()
	}

	// RabbitMQ backs async analysis; run without it if unreachable.
	rabbit, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
	if err != nil {
		log.Printf("[rabbit] unreachable, async analysis disabled: %v", err)
		rabbit = nil
	} else {
		defer rabbit.Close()
	}

	r := httpapi.NewRouter(gdb, cfg, rds, rabbit)

	log.Printf("api listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
