package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stayvelle/hotel-backend/internal/apperr"
	"github.com/stayvelle/hotel-backend/internal/database"
	"github.com/stayvelle/hotel-backend/internal/models"
)

// RoomService maintains the room registry
type RoomService struct {
	db        database.DB
	rooms     *database.RoomRepository
	documents *database.DocumentRepository
}

// NewRoomService creates a new room service
func NewRoomService(db database.DB) *RoomService {
	return &RoomService{
		db:        db,
		rooms:     database.NewRoomRepository(db),
		documents: database.NewDocumentRepository(db),
	}
}

// CreateRoom adds a room. The room number must not be used by another active room.
func (s *RoomService) CreateRoom(ctx context.Context, req *models.CreateRoomRequest, actor string) (*models.Room, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation("%s", err.Error())
	}
	status := req.Status
	if status == "" {
		status = models.RoomStatusAvailable
	}

	taken, err := s.rooms.RoomNumberTaken(ctx, req.RoomNumber, nil)
	if err != nil {
		return nil, appError(err, "Failed to create room")
	}
	if taken {
		return nil, apperr.Conflict("Room number %s already exists", req.RoomNumber)
	}

	room := &models.Room{
		ID:           uuid.New(),
		RoomNumber:   req.RoomNumber,
		Price:        req.Price,
		MaxOccupancy: req.MaxOccupancy,
		Floor:        req.Floor,
		NumberOfBeds: req.NumberOfBeds,
		ACType:       req.ACType,
		BathroomType: req.BathroomType,
		RoomType:     req.RoomType,
		Status:       status,
		IsActive:     true,
		IsTV:         req.IsTV,
		Description:  req.Description,
		CreatedBy:    actor,
		CreatedAt:    time.Now(),
		Documents:    []models.Document{},
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Room number %s already exists", req.RoomNumber)
		}
		return nil, appError(err, "Failed to create room")
	}
	return room, nil
}

// UpdateRoom applies a partial update. Occupied is owned by bookings and can
// neither be set nor cleared here.
func (s *RoomService) UpdateRoom(ctx context.Context, id uuid.UUID, req *models.UpdateRoomRequest, actor string) (*models.Room, error) {
	var updated *models.Room
	err := database.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		rooms := s.rooms.WithTx(tx)

		room, err := rooms.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if room == nil {
			return apperr.NotFound("Room %s not found", id)
		}

		if req.Status != nil && *req.Status != room.Status {
			next := *req.Status
			if room.Status == models.RoomStatusOccupied || !next.ManuallySettable() {
				return apperr.InvalidState("Room status %s is managed by bookings", models.RoomStatusOccupied)
			}
			if !room.Status.CanTransitionTo(next) {
				return apperr.InvalidState("Room cannot move from %s to %s", room.Status, next)
			}
		}
		if req.IsActive != nil && !*req.IsActive && room.Status == models.RoomStatusOccupied {
			return apperr.InvalidState("Room %s is occupied and cannot be deactivated", room.RoomNumber)
		}

		if req.RoomNumber != nil && *req.RoomNumber != room.RoomNumber {
			taken, err := rooms.RoomNumberTaken(ctx, *req.RoomNumber, &room.ID)
			if err != nil {
				return err
			}
			if taken {
				return apperr.Conflict("Room number %s already exists", *req.RoomNumber)
			}
		}

		req.Apply(room)
		now := time.Now()
		room.ModifiedBy = &actor
		room.ModifiedAt = &now
		if err := rooms.Update(ctx, room); err != nil {
			if database.IsUniqueViolation(err) {
				return apperr.Conflict("Room number %s already exists", room.RoomNumber)
			}
			return err
		}

		updated = room
		return nil
	})
	if err != nil {
		return nil, appError(err, "Failed to update room")
	}
	if err := s.attachDocuments(ctx, []*models.Room{updated}); err != nil {
		return nil, appError(err, "Failed to update room")
	}
	return updated, nil
}

// DeleteRoom deactivates a room, or removes it with its documents when hard is set.
// Returns false if the room does not exist.
func (s *RoomService) DeleteRoom(ctx context.Context, id uuid.UUID, hard bool, actor string) (bool, error) {
	deleted := false
	err := database.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		rooms := s.rooms.WithTx(tx)

		room, err := rooms.GetByIDForUpdate(ctx, id)
		if err != nil || room == nil {
			return err
		}
		if room.Status == models.RoomStatusOccupied {
			return apperr.InvalidState("Room %s is occupied", room.RoomNumber)
		}

		if !hard {
			deleted, err = rooms.Deactivate(ctx, id, actor)
			return err
		}

		hasBookings, err := rooms.HasBookings(ctx, id)
		if err != nil {
			return err
		}
		if hasBookings {
			return apperr.Conflict("Room %s has bookings and cannot be removed", room.RoomNumber)
		}
		if err := s.documents.WithTx(tx).DeleteByEntities(ctx, models.EntityRoom, []uuid.UUID{id}); err != nil {
			return err
		}
		deleted, err = rooms.Delete(ctx, id)
		return err
	})
	if err != nil {
		return false, appError(err, "Failed to delete room")
	}
	return deleted, nil
}

// GetRooms lists rooms matching the filter
func (s *RoomService) GetRooms(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperr.Validation("Unknown room status %q", filter.Status)
	}
	if filter.RoomType != "" && !filter.RoomType.Valid() {
		return nil, apperr.Validation("Unknown room type %q", filter.RoomType)
	}

	rooms, err := s.rooms.List(ctx, filter)
	if err != nil {
		return nil, appError(err, "Failed to retrieve rooms")
	}
	ptrs := make([]*models.Room, len(rooms))
	for i := range rooms {
		ptrs[i] = &rooms[i]
	}
	if err := s.attachDocuments(ctx, ptrs); err != nil {
		return nil, appError(err, "Failed to retrieve rooms")
	}
	return rooms, nil
}

// GetRoomByID returns one room with its documents
func (s *RoomService) GetRoomByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, appError(err, "Failed to retrieve room")
	}
	if room == nil {
		return nil, apperr.NotFound("Room %s not found", id)
	}
	if err := s.attachDocuments(ctx, []*models.Room{room}); err != nil {
		return nil, appError(err, "Failed to retrieve room")
	}
	return room, nil
}

// GetRoomByNumber returns the active room with the given number
func (s *RoomService) GetRoomByNumber(ctx context.Context, roomNumber string) (*models.Room, error) {
	rooms, err := s.GetRooms(ctx, models.RoomFilter{RoomNumber: roomNumber, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, apperr.NotFound("Room %s not found", roomNumber)
	}
	return &rooms[0], nil
}

func (s *RoomService) attachDocuments(ctx context.Context, rooms []*models.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}
	docs, err := s.documents.ListByEntities(ctx, models.EntityRoom, ids)
	if err != nil {
		return err
	}
	grouped := groupDocuments(docs)
	for _, r := range rooms {
		r.Documents = grouped[r.ID]
		if r.Documents == nil {
			r.Documents = []models.Document{}
		}
	}
	return nil
}
