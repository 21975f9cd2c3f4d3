// Package testutil holds sqlmock helpers shared by repository, service and
// handler tests.
package testutil

import (
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stayvelle/hotel-backend/internal/models"
	"github.com/stretchr/testify/require"
)

// NewMockDB returns an sqlx handle backed by sqlmock. The connection is
// closed when the test ends.
func NewMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

var (
	RoomColumns = []string{
		"id", "room_number", "price", "max_occupancy", "floor", "number_of_beds", "ac_type",
		"bathroom_type", "room_type", "room_status", "is_active", "is_tv", "description",
		"created_by", "created_at", "modified_by", "modified_at",
	}
	BookingColumns = []string{
		"id", "room_id", "room_number", "check_in_date", "check_out_date",
		"actual_check_in_time", "actual_check_out_time", "number_of_guests", "booking_status",
		"created_by", "created_at", "modified_by", "modified_at",
	}
	GuestColumns = []string{
		"id", "booking_id", "guest_name", "age", "gender", "guest_phone", "guest_email",
		"is_primary", "created_by", "created_at", "modified_by", "modified_at",
	}
	BookingServiceColumns = []string{
		"id", "booking_id", "service_id", "service_category", "sub_category",
		"service_name", "price", "unit", "is_complementary", "quantity", "service_date",
		"service_status", "created_by", "created_at",
	}
	TaskColumns = []string{
		"id", "room_id", "booking_id", "task_type", "task_status", "room_image",
		"assigned_to_user_id", "created_by", "created_at", "modified_by", "modified_at",
	}
	ServiceColumns = []string{
		"id", "service_category", "sub_category", "service_name", "price", "unit",
		"is_complementary", "is_active", "created_by", "created_at", "modified_by", "modified_at",
	}
	DocumentColumns = []string{
		"id", "entity_type", "entity_id", "document_type", "file_name", "description",
		"file_path", "is_primary", "created_by", "created_at",
	}
	UserColumns = []string{
		"id", "username", "name", "email", "phone", "password_hash", "roles", "is_active",
		"is_deleted", "created_by", "created_at", "modified_by", "modified_at",
	}
)

// RoomRows builds result rows for the given rooms
func RoomRows(rooms ...models.Room) *sqlmock.Rows {
	rows := sqlmock.NewRows(RoomColumns)
	for _, r := range rooms {
		rows.AddRow(
			r.ID.String(), r.RoomNumber, r.Price, r.MaxOccupancy, r.Floor, r.NumberOfBeds, r.ACType,
			r.BathroomType, string(r.RoomType), string(r.Status), r.IsActive, r.IsTV, nullableString(r.Description),
			r.CreatedBy, r.CreatedAt, nullableString(r.ModifiedBy), nil,
		)
	}
	return rows
}

// BookingRows builds result rows for the given bookings
func BookingRows(bookings ...models.Booking) *sqlmock.Rows {
	rows := sqlmock.NewRows(BookingColumns)
	for _, b := range bookings {
		var checkedIn, checkedOut driver.Value
		if b.ActualCheckInTime != nil {
			checkedIn = *b.ActualCheckInTime
		}
		if b.ActualCheckOut != nil {
			checkedOut = *b.ActualCheckOut
		}
		rows.AddRow(
			b.ID.String(), b.RoomID.String(), b.RoomNumber, b.CheckInDate, b.CheckOutDate,
			checkedIn, checkedOut, b.NumberOfGuests, string(b.Status),
			b.CreatedBy, b.CreatedAt, nullableString(b.ModifiedBy), nil,
		)
	}
	return rows
}

// GuestRows builds result rows for the given guests
func GuestRows(guests ...models.Guest) *sqlmock.Rows {
	rows := sqlmock.NewRows(GuestColumns)
	for _, g := range guests {
		rows.AddRow(
			g.ID.String(), g.BookingID.String(), g.GuestName, g.Age, g.Gender, g.GuestPhone,
			nullableString(g.GuestEmail), g.IsPrimary, g.CreatedBy, g.CreatedAt, nil, nil,
		)
	}
	return rows
}

// BookingServiceRows builds result rows for the given service lines
func BookingServiceRows(lines ...models.BookingService) *sqlmock.Rows {
	rows := sqlmock.NewRows(BookingServiceColumns)
	for _, s := range lines {
		rows.AddRow(
			s.ID.String(), s.BookingID.String(), s.ServiceID.String(), s.ServiceCategory, s.SubCategory,
			s.ServiceName, s.Price, s.Unit, s.IsComplementary, s.Quantity, s.ServiceDate,
			string(s.Status), s.CreatedBy, s.CreatedAt,
		)
	}
	return rows
}

// TaskRows builds result rows for the given housekeeping tasks
func TaskRows(tasks ...models.HousekeepingTask) *sqlmock.Rows {
	rows := sqlmock.NewRows(TaskColumns)
	for _, t := range tasks {
		var assignee driver.Value
		if t.AssignedToUserID != nil {
			assignee = t.AssignedToUserID.String()
		}
		rows.AddRow(
			t.ID.String(), t.RoomID.String(), t.BookingID.String(), t.TaskType, string(t.Status),
			nullableString(t.RoomImage), assignee, t.CreatedBy, t.CreatedAt, nullableString(t.ModifiedBy), nil,
		)
	}
	return rows
}

// ServiceRows builds result rows for the given catalogue entries
func ServiceRows(services ...models.Service) *sqlmock.Rows {
	rows := sqlmock.NewRows(ServiceColumns)
	for _, s := range services {
		rows.AddRow(
			s.ID.String(), s.ServiceCategory, s.SubCategory, s.ServiceName, s.Price, s.Unit,
			s.IsComplementary, s.IsActive, s.CreatedBy, s.CreatedAt, nil, nil,
		)
	}
	return rows
}

// DocumentRows builds result rows for the given documents
func DocumentRows(docs ...models.Document) *sqlmock.Rows {
	rows := sqlmock.NewRows(DocumentColumns)
	for _, d := range docs {
		rows.AddRow(
			d.ID.String(), string(d.EntityType), d.EntityID.String(), d.DocumentType, d.FileName,
			nullableString(d.Description), d.FilePath, d.IsPrimary, d.CreatedBy, d.CreatedAt,
		)
	}
	return rows
}

// UserRows builds result rows for the given users
func UserRows(users ...models.User) *sqlmock.Rows {
	rows := sqlmock.NewRows(UserColumns)
	for _, u := range users {
		roles, _ := u.Roles.Value()
		rows.AddRow(
			u.ID.String(), u.Username, u.Name, u.Email, nullableString(u.Phone), u.PasswordHash,
			roles, u.IsActive, u.IsDeleted, u.CreatedBy, u.CreatedAt, nullableString(u.ModifiedBy), nil,
		)
	}
	return rows
}

func nullableString(s *string) driver.Value {
	if s == nil {
		return nil
	}
	return *s
}
