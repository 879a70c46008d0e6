package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/config"
	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/kafka"
	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/notify"
	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/repository"
	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/service/seats"
	"github.com/google/uuid"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightInstanceRepository(pool)
	seatRepo := repository.NewSeatRepository(pool)
	bookingRepo := repository.NewBookingPassengerRepository(pool)
	seatService := seats.NewSeatService(
		flightRepo,
		seatRepo,
		bookingRepo,
		time.Duration(cfg.Inventory.SeatHoldTTLSeconds)*time.Second,
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.InventoryTopic)
	defer consumer.Close()

	notifier := notify.NewNotifier()

	go func() {
		if err := consumer.Consume(ctx, notifier.Notify); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	sweepTicker := time.NewTicker(time.Duration(cfg.Worker.LoadFactorSweepMinutes) * time.Minute)
	defer sweepTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	horizon := time.Duration(cfg.Worker.LoadFactorHorizonHours) * time.Hour

	for {
		select {
		case <-sweepTicker.C:
			publishLoadFactors(ctx, flightRepo, seatService, producer, cfg.Kafka.NotificationsTopic, horizon)
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}

// publishLoadFactors snapshots capacity vs. bookings for every flight
// departing inside the horizon and pushes the numbers to the ops topic.
func publishLoadFactors(
	ctx context.Context,
	flights repository.FlightInstanceRepository,
	seatService seats.SeatAllocationUseCase,
	producer *kafka.Producer,
	topic string,
	horizon time.Duration,
) {
	now := time.Now().UTC()
	upcoming, err := flights.ListDepartingBetween(ctx, now, now.Add(horizon))
	if err != nil {
		log.Printf("list upcoming flights: %v", err)
		return
	}

	for _, instance := range upcoming {
		counts, err := seatService.GetSeatCounts(ctx, instance.ID)
		if err != nil {
			// Flights without an assigned aircraft have no capacity yet.
			continue
		}
		event := kafka.InventoryEvent{
			Type:             kafka.EventLoadFactor,
			FlightInstanceID: instance.ID,
			TotalCapacity:    counts.TotalCapacity,
			BookedSeats:      counts.BookedSeats,
			OccurredAt:       now,
		}
		if err := producer.Publish(ctx, topic, uuid.NewString(), event); err != nil {
			log.Printf("publish load factor for flight %d: %v", instance.ID, err)
		}
	}
	if len(upcoming) > 0 {
		log.Printf("published load factors for %d flights", len(upcoming))
	}
}
