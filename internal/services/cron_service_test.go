package services

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stayvelle/hotel-backend/internal/metrics"
	"github.com/stayvelle/hotel-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronService_ReconcileRoomStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Reports Drift", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		logger, hook := logtest.NewNullLogger()
		m := metrics.New(prometheus.NewRegistry())
		svc := NewCronService(db, m, logger)

		rows := sqlmock.NewRows([]string{"id", "room_number", "room_status", "active_bookings"}).
			AddRow(uuid.New().String(), "101", "Occupied", 0).
			AddRow(uuid.New().String(), "102", "Available", 1).
			AddRow(uuid.New().String(), "103", "Maintenance", 1)
		mock.ExpectQuery(`FROM rooms r LEFT JOIN bookings b`).WillReturnRows(rows)

		drift, err := svc.ReconcileRoomStatus(ctx)
		require.NoError(t, err)
		assert.Len(t, drift, 3)

		assert.Equal(t, 1.0, promtest.ToFloat64(m.RoomStatusDrift.WithLabelValues(DriftOccupiedWithoutBooking)))
		assert.Equal(t, 2.0, promtest.ToFloat64(m.RoomStatusDrift.WithLabelValues(DriftBookedButNotOccupied)))
		assert.Equal(t, 1.0, promtest.ToFloat64(m.ReconcileRuns.WithLabelValues("ok")))

		warnings := 0
		for _, e := range hook.AllEntries() {
			if e.Level == logrus.WarnLevel {
				warnings++
			}
		}
		assert.Equal(t, 3, warnings)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Clean Registry Resets Gauge", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		logger, _ := logtest.NewNullLogger()
		m := metrics.New(prometheus.NewRegistry())
		svc := NewCronService(db, m, logger)

		m.RoomStatusDrift.WithLabelValues(DriftOccupiedWithoutBooking).Set(4)
		mock.ExpectQuery(`FROM rooms r LEFT JOIN bookings b`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "room_status", "active_bookings"}))

		drift, err := svc.ReconcileRoomStatus(ctx)
		require.NoError(t, err)
		assert.Empty(t, drift)
		assert.Equal(t, 0.0, promtest.ToFloat64(m.RoomStatusDrift.WithLabelValues(DriftOccupiedWithoutBooking)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Query Failure", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		logger, _ := logtest.NewNullLogger()
		m := metrics.New(prometheus.NewRegistry())
		svc := NewCronService(db, m, logger)

		mock.ExpectQuery(`FROM rooms r LEFT JOIN bookings b`).WillReturnError(fmt.Errorf("timeout"))

		_, err := svc.ReconcileRoomStatus(ctx)
		assert.Error(t, err)
		assert.Equal(t, 1.0, promtest.ToFloat64(m.ReconcileRuns.WithLabelValues("error")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCronService_StartRejectsBadSchedule(t *testing.T) {
	db, _ := testutil.NewMockDB(t)
	logger, _ := logtest.NewNullLogger()
	svc := NewCronService(db, metrics.New(prometheus.NewRegistry()), logger)

	assert.Error(t, svc.Start("every now and then"))
}

func TestAuditService_Log(t *testing.T) {
	ctx := context.Background()
	bookingID := uuid.New()
	event := AuditEvent{
		Actor:      "frontdesk",
		Action:     AuditActionCheckOut,
		EntityType: "booking",
		EntityID:   &bookingID,
		IPAddress:  "203.0.113.7",
		UserAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		Details:    map[string]interface{}{"room_number": "101"},
	}

	t.Run("Disabled", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		svc := NewAuditService(db, false)

		require.NoError(t, svc.Log(ctx, event))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Enabled", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		svc := NewAuditService(db, true)

		details := &jsonCapture{}
		mock.ExpectExec(`INSERT INTO audit_logs`).
			WithArgs(sqlmock.AnyArg(), "frontdesk", AuditActionCheckOut, "booking", bookingID, "203.0.113.7", event.UserAgent, details).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, svc.Log(ctx, event))
		assert.Equal(t, "101", details.value["room_number"])
		device, ok := details.value["device_info"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "desktop", device["device_type"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// jsonCapture matches a JSON object argument and decodes it
type jsonCapture struct {
	value map[string]interface{}
}

func (c *jsonCapture) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(s), &c.value) == nil
}
