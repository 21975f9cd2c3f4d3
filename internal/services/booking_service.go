package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stayvelle/hotel-backend/internal/apperr"
	"github.com/stayvelle/hotel-backend/internal/database"
	"github.com/stayvelle/hotel-backend/internal/models"
	"github.com/stayvelle/hotel-backend/pkg/validator"
)

// BookingService owns the booking lifecycle and the room status changes it causes
type BookingService struct {
	db        database.DB
	rooms     *database.RoomRepository
	bookings  *database.BookingRepository
	tasks     *database.HousekeepingRepository
	catalog   *database.ServiceRepository
	documents *database.DocumentRepository
	phones    *validator.PhoneValidator
	logger    *logrus.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(db database.DB, logger *logrus.Logger) *BookingService {
	return &BookingService{
		db:        db,
		rooms:     database.NewRoomRepository(db),
		bookings:  database.NewBookingRepository(db),
		tasks:     database.NewHousekeepingRepository(db),
		catalog:   database.NewServiceRepository(db),
		documents: database.NewDocumentRepository(db),
		phones:    validator.NewPhoneValidator(),
		logger:    logger,
	}
}

// CreateBooking reserves an available room for a guest party.
//
// The request is validated before the database is touched. The room row is
// locked for the rest of the transaction so two bookings cannot claim it.
func (s *BookingService) CreateBooking(ctx context.Context, req *models.CreateBookingRequest, actor string) (*models.Booking, error) {
	if err := validateStay(req.CheckInDate, req.CheckOutDate); err != nil {
		return nil, err
	}
	if len(req.Guests) == 0 {
		return nil, apperr.Validation("At least one guest is required")
	}

	hasPrimary := false
	phones := make([]string, len(req.Guests))
	for i, g := range req.Guests {
		if g.IsPrimary {
			hasPrimary = true
		}
		if g.GuestPhone == "" {
			continue
		}
		phone, err := s.phones.Validate(g.GuestPhone)
		if err != nil {
			return nil, apperr.Validation("Invalid phone number for guest %s: %v", g.GuestName, err)
		}
		phones[i] = phone
	}
	if !hasPrimary {
		return nil, apperr.Validation("At least one guest must be marked as primary")
	}

	numberOfGuests := req.NumberOfGuests
	if numberOfGuests == 0 {
		numberOfGuests = len(req.Guests)
	}

	now := time.Now()
	booking := &models.Booking{
		ID:             uuid.New(),
		RoomID:         req.RoomID,
		CheckInDate:    req.CheckInDate,
		CheckOutDate:   req.CheckOutDate,
		NumberOfGuests: numberOfGuests,
		Status:         models.BookingStatusBooked,
		CreatedBy:      actor,
		CreatedAt:      now,
		Guests:         []models.Guest{},
		Services:       []models.BookingService{},
	}

	err := database.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		rooms := s.rooms.WithTx(tx)
		bookings := s.bookings.WithTx(tx)
		documents := s.documents.WithTx(tx)

		room, err := rooms.GetByIDForUpdate(ctx, req.RoomID)
		if err != nil {
			return err
		}
		if room == nil {
			return apperr.NotFound("Room %s not found", req.RoomID)
		}
		if !room.IsActive {
			return apperr.InvalidState("Room %s is inactive", room.RoomNumber)
		}
		if room.Status != models.RoomStatusAvailable {
			return apperr.InvalidState("Room %s is not available (status: %s)", room.RoomNumber, room.Status)
		}
		booking.RoomNumber = room.RoomNumber

		if err := bookings.Create(ctx, booking); err != nil {
			return err
		}

		for i, g := range req.Guests {
			guest := models.Guest{
				ID:         uuid.New(),
				BookingID:  booking.ID,
				GuestName:  g.GuestName,
				Age:        g.Age,
				Gender:     g.Gender,
				GuestPhone: phones[i],
				GuestEmail: g.GuestEmail,
				IsPrimary:  g.IsPrimary,
				CreatedBy:  actor,
				CreatedAt:  now,
				Documents:  []models.Document{},
			}
			if err := bookings.CreateGuest(ctx, &guest); err != nil {
				return err
			}

			for _, d := range g.Documents {
				doc := newDocument(d, models.EntityGuest, guest.ID, actor, now)
				if err := documents.Create(ctx, &doc); err != nil {
					return err
				}
				guest.Documents = append(guest.Documents, doc)
			}
			booking.Guests = append(booking.Guests, guest)
		}

		lines, err := s.insertServiceLines(ctx, tx, booking.ID, req.Services, actor, now)
		if err != nil {
			return err
		}
		booking.Services = lines

		return rooms.UpdateStatus(ctx, room.ID, models.RoomStatusOccupied, actor)
	})
	if err != nil {
		return nil, appError(err, "Failed to create booking")
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"room_number": booking.RoomNumber,
		"guests":      len(booking.Guests),
		"actor":       actor,
	}).Info("Booking created")

	return booking, nil
}

// UpdateBooking overwrites the room, dates, guest count and status of a booking.
// Moving an active booking to another room releases the old room and occupies the new one.
func (s *BookingService) UpdateBooking(ctx context.Context, id uuid.UUID, req *models.UpdateBookingRequest, actor string) (*models.Booking, error) {
	if err := validateStay(req.CheckInDate, req.CheckOutDate); err != nil {
		return nil, err
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, apperr.Validation("Unknown booking status %q", *req.Status)
	}

	var updated *models.Booking
	err := database.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		rooms := s.rooms.WithTx(tx)
		bookings := s.bookings.WithTx(tx)

		b, err := bookings.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if b == nil {
			return apperr.NotFound("Booking %s not found", id)
		}

		now := time.Now()
		oldRoomID := b.RoomID
		wasActive := b.Status.IsActive()

		if req.Status != nil && *req.Status != b.Status {
			if !b.Status.CanTransitionTo(*req.Status) {
				return apperr.InvalidState("Booking cannot move from %s to %s", b.Status, *req.Status)
			}
			b.Status = *req.Status
			switch b.Status {
			case models.BookingStatusCheckedIn:
				b.ActualCheckInTime = &now
			case models.BookingStatusCheckedOut:
				b.ActualCheckOut = &now
			}
		}

		roomChanged := req.RoomID != oldRoomID
		if roomChanged {
			room, err := rooms.GetByIDForUpdate(ctx, req.RoomID)
			if err != nil {
				return err
			}
			if room == nil {
				return apperr.NotFound("Room %s not found", req.RoomID)
			}
			if !room.IsActive {
				return apperr.InvalidState("Room %s is inactive", room.RoomNumber)
			}
			if b.Status.IsActive() && room.Status != models.RoomStatusAvailable {
				return apperr.InvalidState("Room %s is not available (status: %s)", room.RoomNumber, room.Status)
			}
			b.RoomID = room.ID
			b.RoomNumber = room.RoomNumber
		}

		b.CheckInDate = req.CheckInDate
		b.CheckOutDate = req.CheckOutDate
		if req.NumberOfGuests > 0 {
			b.NumberOfGuests = req.NumberOfGuests
		}
		b.ModifiedBy = &actor
		b.ModifiedAt = &now

		if err := bookings.Update(ctx, b); err != nil {
			return err
		}

		if wasActive && (roomChanged || !b.Status.IsActive()) {
			release := models.RoomStatusAvailable
			if b.Status == models.BookingStatusCheckedOut {
				release = models.RoomStatusMaintenance
			}
			if err := rooms.UpdateStatus(ctx, oldRoomID, release, actor); err != nil {
				return err
			}
		}
		if roomChanged && b.Status.IsActive() {
			if err := rooms.UpdateStatus(ctx, b.RoomID, models.RoomStatusOccupied, actor); err != nil {
				return err
			}
		}

		updated = b
		return nil
	})
	if err != nil {
		return nil, appError(err, "Failed to update booking")
	}
	return updated, nil
}

// CheckIn records the guest's arrival
func (s *BookingService) CheckIn(ctx context.Context, id uuid.UUID, actor string) (*models.Booking, error) {
	var booking *models.Booking
	err := database.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		rooms := s.rooms.WithTx(tx)
		bookings := s.bookings.WithTx(tx)

		b, err := s.lockForTransition(ctx, bookings, id, models.BookingStatusCheckedIn)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := bookings.MarkCheckedIn(ctx, id, now, actor); err != nil {
			return err
		}

		room, err := rooms.GetByIDForUpdate(ctx, b.RoomID)
		if err != nil {
			return err
		}
		if room != nil && room.Status != models.RoomStatusOccupied {
			if err := rooms.UpdateStatus(ctx, room.ID, models.RoomStatusOccupied, actor); err != nil {
				return err
			}
		}

		b.Status = models.BookingStatusCheckedIn
		b.ActualCheckInTime = &now
		b.ModifiedBy = &actor
		b.ModifiedAt = &now
		booking = b
		return nil
	})
	if err != nil {
		return nil, appError(err, "Failed to check in booking")
	}
	return booking, nil
}

// CheckOut records the guest's departure, puts the room into maintenance and
// queues a cleaning task. A failure to queue the task does not undo the checkout.
func (s *BookingService) CheckOut(ctx context.Context, id uuid.UUID, actor string) (*models.Booking, error) {
	var booking *models.Booking
	err := database.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		bookings := s.bookings.WithTx(tx)

		b, err := s.lockForTransition(ctx, bookings, id, models.BookingStatusCheckedOut)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := bookings.MarkCheckedOut(ctx, id, now, actor); err != nil {
			return err
		}
		if err := s.rooms.WithTx(tx).UpdateStatus(ctx, b.RoomID, models.RoomStatusMaintenance, actor); err != nil {
			return err
		}

		b.Status = models.BookingStatusCheckedOut
		b.ActualCheckOut = &now
		b.ModifiedBy = &actor
		b.ModifiedAt = &now
		booking = b
		return nil
	})
	if err != nil {
		return nil, appError(err, "Failed to check out booking")
	}

	task := &models.HousekeepingTask{
		ID:        uuid.New(),
		RoomID:    booking.RoomID,
		BookingID: booking.ID,
		TaskType:  models.DefaultTaskType,
		Status:    models.TaskStatusPending,
		CreatedBy: actor,
		CreatedAt: time.Now(),
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"booking_id": booking.ID,
			"room_id":    booking.RoomID,
		}).Warn("Failed to create housekeeping task after checkout")
	}

	return booking, nil
}

// CancelBooking cancels a booking that has not been checked in and frees its room
func (s *BookingService) CancelBooking(ctx context.Context, id uuid.UUID, actor string) (*models.Booking, error) {
	var booking *models.Booking
	err := database.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		bookings := s.bookings.WithTx(tx)

		b, err := s.lockForTransition(ctx, bookings, id, models.BookingStatusCancelled)
		if err != nil {
			return err
		}
		if err := bookings.UpdateStatus(ctx, id, models.BookingStatusCancelled, actor); err != nil {
			return err
		}
		if err := s.rooms.WithTx(tx).UpdateStatus(ctx, b.RoomID, models.RoomStatusAvailable, actor); err != nil {
			return err
		}

		now := time.Now()
		b.Status = models.BookingStatusCancelled
		b.ModifiedBy = &actor
		b.ModifiedAt = &now
		booking = b
		return nil
	})
	if err != nil {
		return nil, appError(err, "Failed to cancel booking")
	}
	return booking, nil
}

// DeleteBooking removes a booking with its guests, guest documents and service
// lines. Deleting a Booked or CheckedIn booking makes the room available again;
// the room of a finished booking is left as it is. Returns false if the booking
// does not exist.
func (s *BookingService) DeleteBooking(ctx context.Context, id uuid.UUID, actor string) (bool, error) {
	found := false
	err := database.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		bookings := s.bookings.WithTx(tx)

		b, err := bookings.GetByIDForUpdate(ctx, id)
		if err != nil || b == nil {
			return err
		}

		// tasks cascade with the booking
		if !b.Status.IsActive() {
			open, err := s.tasks.WithTx(tx).CountOpenByBooking(ctx, id)
			if err != nil {
				return err
			}
			if open > 0 {
				return apperr.Conflict("Booking %s has %d open housekeeping task(s)", id, open)
			}
		}

		if err := bookings.DeleteServices(ctx, id); err != nil {
			return err
		}
		guestIDs, err := bookings.DeleteGuests(ctx, id)
		if err != nil {
			return err
		}
		if err := s.documents.WithTx(tx).DeleteByEntities(ctx, models.EntityGuest, guestIDs); err != nil {
			return err
		}
		if _, err := bookings.Delete(ctx, id); err != nil {
			return err
		}
		// only an active booking holds its room
		if b.Status.IsActive() {
			if err := s.rooms.WithTx(tx).UpdateStatus(ctx, b.RoomID, models.RoomStatusAvailable, actor); err != nil {
				return err
			}
		}

		found = true
		return nil
	})
	if err != nil {
		return false, appError(err, "Failed to delete booking")
	}
	return found, nil
}

// GetAllBookings returns every booking with guests and services, newest first
func (s *BookingService) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, appError(err, "Failed to retrieve bookings")
	}
	if err := s.hydrate(ctx, bookings); err != nil {
		return nil, appError(err, "Failed to retrieve bookings")
	}
	return bookings, nil
}

// GetBookingByID returns one booking with guests and services
func (s *BookingService) GetBookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	return s.single(ctx, b, err, "Booking %s not found", id)
}

// GetBookingByGuestID returns the booking a guest belongs to
func (s *BookingService) GetBookingByGuestID(ctx context.Context, guestID uuid.UUID) (*models.Booking, error) {
	b, err := s.bookings.GetByGuestID(ctx, guestID)
	return s.single(ctx, b, err, "No booking found for guest %s", guestID)
}

// GetBookingByRoom returns the most recent booking of a room
func (s *BookingService) GetBookingByRoom(ctx context.Context, roomID uuid.UUID, roomNumber string) (*models.Booking, error) {
	b, err := s.bookings.GetLatestByRoom(ctx, roomID, roomNumber)
	return s.single(ctx, b, err, "No booking found for room %s", roomNumber)
}

// GetBookingsByPhone returns the bookings with a guest using the phone number.
// The number is normalised the same way it was when the guest was stored.
func (s *BookingService) GetBookingsByPhone(ctx context.Context, phone string) ([]models.Booking, error) {
	normalized := s.phones.Normalize(phone)
	if normalized == "" {
		return nil, apperr.Validation("Phone number is required")
	}

	bookings, err := s.bookings.ListByGuestPhone(ctx, normalized)
	if err != nil {
		return nil, appError(err, "Failed to retrieve bookings")
	}
	if err := s.hydrate(ctx, bookings); err != nil {
		return nil, appError(err, "Failed to retrieve bookings")
	}
	return bookings, nil
}

// AddServicesToBooking attaches catalogue services to active bookings in one transaction
func (s *BookingService) AddServicesToBooking(ctx context.Context, lines []models.BookingServiceRequest, actor string) ([]models.BookingService, error) {
	if len(lines) == 0 {
		return nil, apperr.Validation("At least one service is required")
	}
	byBooking := map[uuid.UUID][]models.BookingServiceRequest{}
	order := []uuid.UUID{}
	for _, line := range lines {
		if line.BookingID == uuid.Nil {
			return nil, apperr.Validation("booking_id is required for every service")
		}
		if _, seen := byBooking[line.BookingID]; !seen {
			order = append(order, line.BookingID)
		}
		byBooking[line.BookingID] = append(byBooking[line.BookingID], line)
	}

	created := []models.BookingService{}
	err := database.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		bookings := s.bookings.WithTx(tx)
		now := time.Now()

		for _, bookingID := range order {
			b, err := bookings.GetByIDForUpdate(ctx, bookingID)
			if err != nil {
				return err
			}
			if b == nil {
				return apperr.NotFound("Booking %s not found", bookingID)
			}
			if !b.Status.IsActive() {
				return apperr.InvalidState("Services cannot be added to a %s booking", b.Status)
			}

			inserted, err := s.insertServiceLines(ctx, tx, bookingID, byBooking[bookingID], actor, now)
			if err != nil {
				return err
			}
			created = append(created, inserted...)
		}
		return nil
	})
	if err != nil {
		return nil, appError(err, "Failed to add services to booking")
	}
	return created, nil
}

// GetBookingDetails returns a booking with its room charge, service charges and total
func (s *BookingService) GetBookingDetails(ctx context.Context, id uuid.UUID) (*models.BookingDetails, error) {
	b, err := s.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, b.RoomID)
	if err != nil {
		return nil, appError(err, "Failed to retrieve booking details")
	}
	if room == nil {
		return nil, apperr.NotFound("Room %s not found", b.RoomID)
	}

	nights := models.Nights(b.CheckInDate, b.CheckOutDate)
	details := &models.BookingDetails{
		Booking:    b,
		RoomNumber: room.RoomNumber,
		RoomPrice:  room.Price,
		Nights:     nights,
		RoomTotal:  room.Price * float64(nights),
		Services:   b.Services,
	}
	for _, line := range b.Services {
		if line.Status == models.BookingServiceCancelled {
			continue
		}
		details.ServiceCost += line.LineTotal()
	}
	details.TotalAmount = details.RoomTotal + details.ServiceCost
	return details, nil
}

// lockForTransition loads a booking under a row lock and checks it may move to next
func (s *BookingService) lockForTransition(ctx context.Context, bookings *database.BookingRepository, id uuid.UUID, next models.BookingStatus) (*models.Booking, error) {
	b, err := bookings.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.NotFound("Booking %s not found", id)
	}
	if !b.Status.CanTransitionTo(next) {
		return nil, apperr.InvalidState("Booking is %s and cannot move to %s", b.Status, next)
	}
	return b, nil
}

// insertServiceLines prices each request from the catalogue unless a price is
// given and stores it against the booking
func (s *BookingService) insertServiceLines(ctx context.Context, tx *sqlx.Tx, bookingID uuid.UUID, reqs []models.BookingServiceRequest, actor string, now time.Time) ([]models.BookingService, error) {
	catalog := s.catalog.WithTx(tx)
	bookings := s.bookings.WithTx(tx)

	lines := make([]models.BookingService, 0, len(reqs))
	for _, req := range reqs {
		svc, err := catalog.GetByID(ctx, req.ServiceID)
		if err != nil {
			return nil, err
		}
		if svc == nil {
			return nil, apperr.NotFound("Service %s not found", req.ServiceID)
		}
		if !svc.IsActive {
			return nil, apperr.InvalidState("Service %s is not active", svc.ServiceName)
		}

		line := models.BookingService{
			ID:              uuid.New(),
			BookingID:       bookingID,
			ServiceID:       svc.ID,
			ServiceCategory: svc.ServiceCategory,
			SubCategory:     svc.SubCategory,
			ServiceName:     svc.ServiceName,
			Price:           svc.Price,
			Unit:            svc.Unit,
			IsComplementary: svc.IsComplementary,
			Quantity:        req.Quantity,
			ServiceDate:     now,
			Status:          models.BookingServiceRequested,
			CreatedBy:       actor,
			CreatedAt:       now,
		}
		if req.Price != nil {
			line.Price = *req.Price
		}
		if line.Quantity == 0 {
			line.Quantity = 1
		}
		if req.ServiceDate != nil {
			line.ServiceDate = *req.ServiceDate
		}

		if err := bookings.CreateService(ctx, &line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *BookingService) single(ctx context.Context, b *models.Booking, err error, format string, args ...interface{}) (*models.Booking, error) {
	if err != nil {
		return nil, appError(err, "Failed to retrieve booking")
	}
	if b == nil {
		return nil, apperr.NotFound(format, args...)
	}
	list := []models.Booking{*b}
	if err := s.hydrate(ctx, list); err != nil {
		return nil, appError(err, "Failed to retrieve booking")
	}
	return &list[0], nil
}

// hydrate attaches guests, guest documents and service lines to bookings in place
func (s *BookingService) hydrate(ctx context.Context, bookings []models.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(bookings))
	index := make(map[uuid.UUID]int, len(bookings))
	for i := range bookings {
		ids[i] = bookings[i].ID
		index[bookings[i].ID] = i
		bookings[i].Guests = []models.Guest{}
		bookings[i].Services = []models.BookingService{}
	}

	guests, err := s.bookings.ListGuests(ctx, ids)
	if err != nil {
		return err
	}
	guestIDs := make([]uuid.UUID, len(guests))
	for i := range guests {
		guestIDs[i] = guests[i].ID
	}
	docs, err := s.documents.ListByEntities(ctx, models.EntityGuest, guestIDs)
	if err != nil {
		return err
	}
	docsByGuest := groupDocuments(docs)

	for _, g := range guests {
		g.Documents = docsByGuest[g.ID]
		if g.Documents == nil {
			g.Documents = []models.Document{}
		}
		i := index[g.BookingID]
		bookings[i].Guests = append(bookings[i].Guests, g)
	}

	lines, err := s.bookings.ListServices(ctx, ids)
	if err != nil {
		return err
	}
	for _, line := range lines {
		i := index[line.BookingID]
		bookings[i].Services = append(bookings[i].Services, line)
	}
	return nil
}

func validateStay(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return apperr.Validation("Check-in and check-out dates are required")
	}
	if !checkOut.After(checkIn) {
		return apperr.Validation("Check-out date must be after check-in date")
	}
	return nil
}
