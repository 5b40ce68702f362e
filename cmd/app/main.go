package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelikov/flightdesk/api"
	"github.com/avelikov/flightdesk/config"
	"github.com/avelikov/flightdesk/internal/bootstrap"
	"github.com/avelikov/flightdesk/internal/cache"
	"github.com/avelikov/flightdesk/internal/kafka"
	"github.com/avelikov/flightdesk/internal/logging"
	"github.com/avelikov/flightdesk/internal/metrics"
	"github.com/avelikov/flightdesk/internal/passport"
	"github.com/avelikov/flightdesk/internal/repository"
	"github.com/avelikov/flightdesk/internal/service/booking"
	"github.com/avelikov/flightdesk/internal/service/flights"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}
	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logging.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	reg := metrics.NewRegistry()
	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.FlightsTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	passportClient := passport.NewClient(cfg.Passport)

	flightRepo := repository.NewFlightRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)

	flightService := flights.NewFlightService(flightRepo, redisCache, reg)
	bookingService := booking.NewBookingService(
		passengerRepo,
		passportClient,
		producer,
		cfg.Kafka.PassengerTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithMetrics(reg),
	)

	health := map[string]api.Pinger{
		"postgres": pool,
		"redis":    redisCache,
	}

	logging.Info("flightdesk starting", "address", cfg.HTTP.Address, "environment", appEnv)
	if err := bootstrap.Run(ctx, cfg, flightService, bookingService, reg, health); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
