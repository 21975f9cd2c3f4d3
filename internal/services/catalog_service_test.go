package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stayvelle/hotel-backend/internal/apperr"
	"github.com/stayvelle/hotel-backend/internal/models"
	"github.com/stayvelle/hotel-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_CreateService(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewCatalogService(db)

	mock.ExpectExec(`INSERT INTO services`).
		WithArgs(sqlmock.AnyArg(), "Laundry", "Ironing", "Shirt Press", 40.0, "piece", false, true, "admin", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := svc.CreateService(context.Background(), &models.CreateServiceRequest{
		ServiceCategory: "Laundry",
		SubCategory:     "Ironing",
		ServiceName:     "Shirt Press",
		Price:           40,
		Unit:            "piece",
	}, "admin")
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogService_UpdateService(t *testing.T) {
	ctx := context.Background()

	t.Run("Partial", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		svc := NewCatalogService(db)
		existing := sampleCatalogService()
		inactive := false

		mock.ExpectQuery(`SELECT (.+) FROM services WHERE id = \$1`).WithArgs(existing.ID).WillReturnRows(testutil.ServiceRows(existing))
		mock.ExpectExec(`UPDATE services SET`).
			WithArgs(existing.ID, "Food", "Breakfast", "Continental Breakfast", 250.0, "plate", false, false, "admin", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		got, err := svc.UpdateService(ctx, existing.ID, &models.UpdateServiceRequest{IsActive: &inactive}, "admin")
		require.NoError(t, err)
		assert.False(t, got.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		svc := NewCatalogService(db)
		id := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM services WHERE id = \$1`).WithArgs(id).WillReturnRows(testutil.ServiceRows())

		_, err := svc.UpdateService(ctx, id, &models.UpdateServiceRequest{}, "admin")
		requireKind(t, err, apperr.KindNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCatalogService_DeleteService(t *testing.T) {
	ctx := context.Background()

	t.Run("Referenced By Booking", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		svc := NewCatalogService(db)
		id := uuid.New()

		mock.ExpectExec(`DELETE FROM services WHERE id = \$1`).WithArgs(id).WillReturnError(&pq.Error{Code: "23503"})

		_, err := svc.DeleteService(ctx, id)
		requireKind(t, err, apperr.KindConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		svc := NewCatalogService(db)
		id := uuid.New()

		mock.ExpectExec(`DELETE FROM services WHERE id = \$1`).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))

		deleted, err := svc.DeleteService(ctx, id)
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentService(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		svc := NewDocumentService(db)
		roomID := uuid.New()

		mock.ExpectExec(`INSERT INTO documents`).
			WithArgs(sqlmock.AnyArg(), models.EntityRoom, roomID, "ROOM_IMAGE", "101.jpg", nil, "rooms/101.jpg", true, "admin", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		doc, err := svc.CreateDocument(ctx, &models.DocumentRequest{
			EntityType:   models.EntityRoom,
			EntityID:     roomID,
			DocumentType: "ROOM_IMAGE",
			FileName:     "101.jpg",
			FilePath:     "rooms/101.jpg",
			IsPrimary:    true,
		}, "admin")
		require.NoError(t, err)
		assert.Equal(t, roomID, doc.EntityID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Entity Type", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		svc := NewDocumentService(db)

		_, err := svc.GetDocuments(ctx, "BOOKING", uuid.New())
		requireKind(t, err, apperr.KindValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("List", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		svc := NewDocumentService(db)
		guestID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM documents WHERE entity_type = \$1 AND entity_id = ANY`).
			WithArgs(models.EntityGuest, sqlmock.AnyArg()).
			WillReturnRows(testutil.DocumentRows())

		docs, err := svc.GetDocuments(ctx, models.EntityGuest, guestID)
		require.NoError(t, err)
		assert.Empty(t, docs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
