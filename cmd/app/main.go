package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/config"
	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/bootstrap"
	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/cache"
	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/kafka"
	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/repository"
	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/service/schedule"
	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/service/seats"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Inventory.SeatMapCacheTTLSec)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightInstanceRepository(pool)
	seatRepo := repository.NewSeatRepository(pool)
	bookingRepo := repository.NewBookingPassengerRepository(pool)
	aircraftRepo := repository.NewAircraftRepository(pool)
	crewRepo := repository.NewFlightCrewRepository(pool)
	certRepo := repository.NewCertificationRepository(pool)
	txManager := repository.NewTxManager(pool)

	seatService := seats.NewSeatService(
		flightRepo,
		seatRepo,
		bookingRepo,
		time.Duration(cfg.Inventory.SeatHoldTTLSeconds)*time.Second,
		seats.WithCache(redisCache),
		seats.WithProducer(producer, cfg.Kafka.InventoryTopic),
	)
	scheduleService := schedule.NewScheduleService(
		flightRepo,
		aircraftRepo,
		crewRepo,
		certRepo,
		txManager,
		schedule.WithProducer(producer, cfg.Kafka.InventoryTopic),
	)

	if err := bootstrap.Run(ctx, cfg, seatService, scheduleService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
