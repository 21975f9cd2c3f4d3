package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stayvelle/hotel-backend/internal/apperr"
	"github.com/stayvelle/hotel-backend/internal/middleware"
	"github.com/stayvelle/hotel-backend/internal/models"
	"github.com/stayvelle/hotel-backend/internal/services"
)

// BookingHandler handles booking HTTP requests, including check-in and checkout
type BookingHandler struct {
	baseHandler
	bookings *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookings *services.BookingService, audit *services.AuditService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		baseHandler: baseHandler{audit: audit, logger: logger},
		bookings:    bookings,
	}
}

// ===================================================================
// QUERIES
// ===================================================================

// GetBookings handles GET /api/Booking
func (h *BookingHandler) GetBookings(c *gin.Context) {
	bookings, err := h.bookings.GetAllBookings(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// GetBooking handles GET /api/Booking/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	booking, err := h.bookings.GetBookingByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Booking retrieved successfully", booking)
}

// GetBookingDetails handles GET /api/Booking/:id/details
func (h *BookingHandler) GetBookingDetails(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	details, err := h.bookings.GetBookingDetails(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Booking details retrieved successfully", details)
}

// GetBookingByGuest handles GET /api/Booking/guest/:guestId
func (h *BookingHandler) GetBookingByGuest(c *gin.Context) {
	guestID, ok := h.paramUUID(c, "guestId")
	if !ok {
		return
	}
	booking, err := h.bookings.GetBookingByGuestID(c.Request.Context(), guestID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Booking retrieved successfully", booking)
}

// GetBookingsByPhone handles GET /api/Booking/phone/:phoneNumber
func (h *BookingHandler) GetBookingsByPhone(c *gin.Context) {
	bookings, err := h.bookings.GetBookingsByPhone(c.Request.Context(), c.Param("phoneNumber"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// GetBookingByRoom handles GET /api/Booking/room/:roomId/:roomNumber
func (h *BookingHandler) GetBookingByRoom(c *gin.Context) {
	roomID, ok := h.paramUUID(c, "roomId")
	if !ok {
		return
	}
	booking, err := h.bookings.GetBookingByRoom(c.Request.Context(), roomID, c.Param("roomNumber"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Booking retrieved successfully", booking)
}

// ===================================================================
// MUTATIONS
// ===================================================================

// CreateBooking handles POST /api/Booking
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if !h.bindJSON(c, &req) {
		return
	}

	booking, err := h.bookings.CreateBooking(c.Request.Context(), &req, middleware.ActorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.safeLogAudit(c, services.AuditActionCreate, "booking", &booking.ID, map[string]interface{}{
		"room_id":     booking.RoomID,
		"room_number": booking.RoomNumber,
		"guests":      len(booking.Guests),
	})
	h.respond(c, http.StatusCreated, "Booking created successfully", booking)
}

// UpdateBooking handles PUT /api/Booking/:id
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateBookingRequest
	if !h.bindJSON(c, &req) {
		return
	}

	booking, err := h.bookings.UpdateBooking(c.Request.Context(), id, &req, middleware.ActorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.safeLogAudit(c, services.AuditActionUpdate, "booking", &booking.ID, map[string]interface{}{
		"room_id":        booking.RoomID,
		"booking_status": booking.Status,
	})
	h.respond(c, http.StatusOK, "Booking updated successfully", booking)
}

// CheckIn handles POST /api/Booking/:id/checkin
func (h *BookingHandler) CheckIn(c *gin.Context) {
	h.transition(c, services.AuditActionCheckIn, "Guest checked in successfully", h.bookings.CheckIn)
}

// CheckOut handles POST /api/Booking/:id/checkout
func (h *BookingHandler) CheckOut(c *gin.Context) {
	h.transition(c, services.AuditActionCheckOut, "Guest checked out successfully", h.bookings.CheckOut)
}

// CancelBooking handles POST /api/Booking/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.transition(c, services.AuditActionCancel, "Booking cancelled successfully", h.bookings.CancelBooking)
}

func (h *BookingHandler) transition(
	c *gin.Context,
	action, message string,
	apply func(ctx context.Context, id uuid.UUID, actor string) (*models.Booking, error),
) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}

	booking, err := apply(c.Request.Context(), id, middleware.ActorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.safeLogAudit(c, action, "booking", &booking.ID, map[string]interface{}{
		"room_id":        booking.RoomID,
		"room_number":    booking.RoomNumber,
		"booking_status": booking.Status,
	})
	h.respond(c, http.StatusOK, message, booking)
}

// DeleteBooking handles DELETE /api/Booking/:id
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.bookings.DeleteBooking(c.Request.Context(), id, middleware.ActorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !deleted {
		h.respondError(c, apperr.NotFound("Booking %s not found", id))
		return
	}

	h.safeLogAudit(c, services.AuditActionDelete, "booking", &id, nil)
	h.respond(c, http.StatusOK, "Booking deleted successfully", nil)
}

// AddServices handles POST /api/Booking/services
// The body is a list of service lines, each naming its booking.
func (h *BookingHandler) AddServices(c *gin.Context) {
	var lines []models.BookingServiceRequest
	if !h.bindJSON(c, &lines) {
		return
	}

	added, err := h.bookings.AddServicesToBooking(c.Request.Context(), lines, middleware.ActorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	for i := range added {
		h.safeLogAudit(c, services.AuditActionCreate, "booking_service", &added[i].ID, map[string]interface{}{
			"booking_id":   added[i].BookingID,
			"service_name": added[i].ServiceName,
			"quantity":     added[i].Quantity,
		})
	}
	h.respond(c, http.StatusCreated, "Services added successfully", added)
}
