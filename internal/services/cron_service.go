package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/stayvelle/hotel-backend/internal/database"
	"github.com/stayvelle/hotel-backend/internal/metrics"
	"github.com/stayvelle/hotel-backend/internal/models"
)

// Drift kinds reported by the reconciler
const (
	DriftOccupiedWithoutBooking = "occupied_without_booking"
	DriftBookedButNotOccupied   = "booked_not_occupied"
)

// CronService runs the room status reconciliation job.
// The job only reads and reports; it never changes room status.
type CronService struct {
	cron    *cron.Cron
	rooms   *database.RoomRepository
	metrics *metrics.Metrics
	logger  *logrus.Logger
	timeout time.Duration
}

// NewCronService creates a new CronService.
// Schedules use the six-field format with seconds, e.g. "0 */15 * * * *".
func NewCronService(db database.Querier, m *metrics.Metrics, logger *logrus.Logger) *CronService {
	return &CronService{
		cron:    cron.New(cron.WithSeconds()),
		rooms:   database.NewRoomRepository(db),
		metrics: m,
		logger:  logger,
		timeout: time.Minute,
	}
}

// Start schedules the reconciler and starts the scheduler
func (s *CronService) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.reconcileRoomStatusJob); err != nil {
		return fmt.Errorf("failed to schedule room reconciliation job: %w", err)
	}
	s.cron.Start()
	s.logger.WithField("schedule", schedule).Info("Cron service started")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron service stopped")
}

func (s *CronService) reconcileRoomStatusJob() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.ReconcileRoomStatus(ctx); err != nil {
		s.logger.WithError(err).Error("Room status reconciliation failed")
	}
}

// ReconcileRoomStatus compares room status with active bookings, logs every
// mismatch and updates the drift gauge. Returns the mismatched rooms.
func (s *CronService) ReconcileRoomStatus(ctx context.Context) ([]database.StatusDrift, error) {
	start := time.Now()

	drift, err := s.rooms.FindStatusDrift(ctx)
	if err != nil {
		s.metrics.ReconcileRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	counts := map[string]int{
		DriftOccupiedWithoutBooking: 0,
		DriftBookedButNotOccupied:   0,
	}
	for _, d := range drift {
		kind := DriftBookedButNotOccupied
		if d.Status == models.RoomStatusOccupied {
			kind = DriftOccupiedWithoutBooking
		}
		counts[kind]++

		s.logger.WithFields(logrus.Fields{
			"room_id":         d.RoomID,
			"room_number":     d.RoomNumber,
			"room_status":     d.Status,
			"active_bookings": d.ActiveBookings,
			"kind":            kind,
		}).Warn("Room status does not match bookings")
	}
	for kind, n := range counts {
		s.metrics.RoomStatusDrift.WithLabelValues(kind).Set(float64(n))
	}
	s.metrics.ReconcileRuns.WithLabelValues("ok").Inc()

	s.logger.WithFields(logrus.Fields{
		"drifted":  len(drift),
		"duration": time.Since(start).String(),
	}).Info("Room status reconciliation finished")

	return drift, nil
}
