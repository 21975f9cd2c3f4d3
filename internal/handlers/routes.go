package handlers

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups the resource handlers mounted under /api
type Handlers struct {
	Rooms        *RoomHandler
	Bookings     *BookingHandler
	Housekeeping *HousekeepingHandler
	Catalog      *CatalogHandler
	Users        *UserHandler
	Documents    *DocumentHandler
}

// RegisterRoutes mounts every API route on api. adminOnly guards user management.
func RegisterRoutes(api *gin.RouterGroup, h *Handlers, adminOnly gin.HandlerFunc) {
	room := api.Group("/Room")
	{
		room.GET("", h.Rooms.GetRooms)
		room.POST("", h.Rooms.CreateRoom)
		room.GET("/:id", h.Rooms.GetRoom)
		room.PUT("/:id", h.Rooms.UpdateRoom)
		room.DELETE("/:id", h.Rooms.DeleteRoom)
		room.GET("/status/:status", h.Rooms.GetRoomsByStatus)
		room.GET("/type/:roomType", h.Rooms.GetRoomsByType)
		room.GET("/roomnumber/:roomNumber", h.Rooms.GetRoomByNumber)
	}

	booking := api.Group("/Booking")
	{
		booking.GET("", h.Bookings.GetBookings)
		booking.POST("", h.Bookings.CreateBooking)
		booking.POST("/services", h.Bookings.AddServices)
		booking.GET("/guest/:guestId", h.Bookings.GetBookingByGuest)
		booking.GET("/phone/:phoneNumber", h.Bookings.GetBookingsByPhone)
		booking.GET("/room/:roomId/:roomNumber", h.Bookings.GetBookingByRoom)
		booking.GET("/:id", h.Bookings.GetBooking)
		booking.PUT("/:id", h.Bookings.UpdateBooking)
		booking.DELETE("/:id", h.Bookings.DeleteBooking)
		booking.GET("/:id/details", h.Bookings.GetBookingDetails)
		booking.POST("/:id/checkin", h.Bookings.CheckIn)
		booking.POST("/:id/checkout", h.Bookings.CheckOut)
		booking.POST("/:id/cancel", h.Bookings.CancelBooking)
	}

	task := api.Group("/HousekeepingTask")
	{
		task.GET("", h.Housekeeping.GetTasks)
		task.POST("", h.Housekeeping.CreateTask)
		task.GET("/room/:roomId", h.Housekeeping.GetTasksByRoom)
		task.GET("/user/:userId", h.Housekeeping.GetTasksByUser)
		task.GET("/:id", h.Housekeeping.GetTask)
		task.PUT("/:id", h.Housekeeping.UpdateTask)
		task.POST("/:id/complete", h.Housekeeping.CompleteTask)
	}

	service := api.Group("/Service")
	{
		service.GET("", h.Catalog.GetServices)
		service.POST("", h.Catalog.CreateService)
		service.GET("/:id", h.Catalog.GetService)
		service.PUT("/:id", h.Catalog.UpdateService)
		service.DELETE("/:id", h.Catalog.DeleteService)
	}

	users := api.Group("/Users")
	{
		users.GET("", h.Users.GetUsers)
		users.GET("/:id", h.Users.GetUser)
		users.POST("", adminOnly, h.Users.CreateUser)
		users.PUT("/:id", adminOnly, h.Users.UpdateUser)
		users.DELETE("/:id", adminOnly, h.Users.DeleteUser)
	}

	document := api.Group("/Document")
	{
		document.GET("/:entityType/:entityId", h.Documents.GetDocuments)
		document.POST("", h.Documents.CreateDocument)
		document.DELETE("/:id", h.Documents.DeleteDocument)
	}
}
