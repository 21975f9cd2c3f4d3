package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stayvelle/hotel-backend/internal/config"
	"github.com/stayvelle/hotel-backend/internal/database"
	"github.com/stayvelle/hotel-backend/internal/metrics"
	"github.com/stayvelle/hotel-backend/internal/services"
)

// Runs the room status reconciliation once and prints every drifted room.
// Exits with status 1 when drift was found so it can gate deploy scripts.
func main() {
	timeout := flag.Duration("timeout", time.Minute, "query timeout")
	flag.Parse()

	drifted, err := run(*timeout)
	if err != nil {
		log.Fatal(err)
	}
	if drifted {
		os.Exit(1)
	}
}

func run(timeout time.Duration) (bool, error) {
	cfg, err := config.Load()
	if err != nil {
		return false, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		return false, err
	}
	defer db.Close()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)

	reconciler := services.NewCronService(db, metrics.New(prometheus.NewRegistry()), logger)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	drift, err := reconciler.ReconcileRoomStatus(ctx)
	if err != nil {
		return false, fmt.Errorf("reconciliation failed: %w", err)
	}

	if len(drift) == 0 {
		fmt.Println("Room status matches bookings for every active room.")
		return false, nil
	}

	fmt.Printf("%d room(s) disagree with their bookings:\n", len(drift))
	for _, d := range drift {
		fmt.Printf("  room %-8s status=%-12s active_bookings=%d\n", d.RoomNumber, d.Status, d.ActiveBookings)
	}
	return true, nil
}
