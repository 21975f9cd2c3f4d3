package database

import (
	"context"
	"fmt"
)

// schemaStatements create the hotel tables. Every statement is idempotent so
// the list can run on each startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS rooms (
		id UUID PRIMARY KEY,
		room_number VARCHAR(20) NOT NULL,
		price NUMERIC(10, 2) NOT NULL,
		max_occupancy INT NOT NULL DEFAULT 1,
		floor VARCHAR(20) NOT NULL DEFAULT '',
		number_of_beds VARCHAR(2) NOT NULL DEFAULT '1',
		ac_type VARCHAR(10) NOT NULL DEFAULT 'AC',
		bathroom_type VARCHAR(20) NOT NULL DEFAULT 'Attached',
		room_type VARCHAR(20) NOT NULL,
		room_status VARCHAR(20) NOT NULL DEFAULT 'Available',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_tv BOOLEAN NOT NULL DEFAULT FALSE,
		description TEXT,
		created_by VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		modified_by VARCHAR(100),
		modified_at TIMESTAMPTZ
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS rooms_active_room_number_idx
		ON rooms (room_number) WHERE is_active`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id UUID PRIMARY KEY,
		room_id UUID NOT NULL REFERENCES rooms(id),
		room_number VARCHAR(20) NOT NULL,
		check_in_date TIMESTAMPTZ NOT NULL,
		check_out_date TIMESTAMPTZ NOT NULL,
		actual_check_in_time TIMESTAMPTZ,
		actual_check_out_time TIMESTAMPTZ,
		number_of_guests INT NOT NULL DEFAULT 1,
		booking_status VARCHAR(20) NOT NULL DEFAULT 'Booked',
		created_by VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		modified_by VARCHAR(100),
		modified_at TIMESTAMPTZ,
		CONSTRAINT bookings_dates_check CHECK (check_out_date > check_in_date)
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_room_id_idx ON bookings (room_id)`,
	`CREATE TABLE IF NOT EXISTS guests (
		id UUID PRIMARY KEY,
		booking_id UUID NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
		guest_name VARCHAR(100) NOT NULL,
		age INT NOT NULL DEFAULT 0,
		gender VARCHAR(10) NOT NULL DEFAULT '',
		guest_phone VARCHAR(16) NOT NULL DEFAULT '',
		guest_email VARCHAR(100),
		is_primary BOOLEAN NOT NULL DEFAULT FALSE,
		created_by VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		modified_by VARCHAR(100),
		modified_at TIMESTAMPTZ
	)`,
	`ALTER TABLE guests ALTER COLUMN guest_phone TYPE VARCHAR(16)`,
	`CREATE INDEX IF NOT EXISTS guests_booking_id_idx ON guests (booking_id)`,
	`CREATE INDEX IF NOT EXISTS guests_phone_idx ON guests (guest_phone)`,
	`CREATE TABLE IF NOT EXISTS services (
		id UUID PRIMARY KEY,
		service_category VARCHAR(50) NOT NULL,
		sub_category VARCHAR(50) NOT NULL DEFAULT '',
		service_name VARCHAR(100) NOT NULL,
		price NUMERIC(10, 2) NOT NULL DEFAULT 0,
		unit VARCHAR(20) NOT NULL DEFAULT '',
		is_complementary BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_by VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		modified_by VARCHAR(100),
		modified_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS booking_services (
		id UUID PRIMARY KEY,
		booking_id UUID NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
		service_id UUID NOT NULL REFERENCES services(id),
		service_category VARCHAR(50) NOT NULL,
		sub_category VARCHAR(50) NOT NULL DEFAULT '',
		service_name VARCHAR(100) NOT NULL,
		price NUMERIC(10, 2) NOT NULL,
		unit VARCHAR(20) NOT NULL DEFAULT '',
		is_complementary BOOLEAN NOT NULL DEFAULT FALSE,
		quantity INT NOT NULL DEFAULT 1,
		service_date TIMESTAMPTZ NOT NULL,
		service_status VARCHAR(20) NOT NULL DEFAULT 'Requested',
		created_by VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS booking_services_booking_id_idx ON booking_services (booking_id)`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(100) NOT NULL UNIQUE,
		phone VARCHAR(15),
		password_hash TEXT NOT NULL,
		roles TEXT[] NOT NULL DEFAULT '{}',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		created_by VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		modified_by VARCHAR(100),
		modified_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS housekeeping_tasks (
		id UUID PRIMARY KEY,
		room_id UUID NOT NULL REFERENCES rooms(id),
		booking_id UUID NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
		task_type VARCHAR(50) NOT NULL DEFAULT 'Cleaning',
		task_status VARCHAR(20) NOT NULL DEFAULT 'Pending',
		room_image TEXT,
		assigned_to_user_id UUID REFERENCES users(id),
		created_by VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		modified_by VARCHAR(100),
		modified_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS housekeeping_tasks_room_id_idx ON housekeeping_tasks (room_id)`,
	`CREATE TABLE IF NOT EXISTS documents (
		id UUID PRIMARY KEY,
		entity_type VARCHAR(20) NOT NULL,
		entity_id UUID NOT NULL,
		document_type VARCHAR(50) NOT NULL,
		file_name VARCHAR(255) NOT NULL,
		description TEXT,
		file_path TEXT NOT NULL DEFAULT '',
		is_primary BOOLEAN NOT NULL DEFAULT FALSE,
		created_by VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS documents_entity_idx ON documents (entity_type, entity_id)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id UUID PRIMARY KEY,
		actor VARCHAR(100) NOT NULL,
		action VARCHAR(50) NOT NULL,
		entity_type VARCHAR(50) NOT NULL,
		entity_id UUID,
		ip_address VARCHAR(64),
		user_agent TEXT,
		details JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Tables lists every hotel table in dependency order, children first
var Tables = []string{
	"audit_logs",
	"documents",
	"housekeeping_tasks",
	"booking_services",
	"guests",
	"bookings",
	"services",
	"rooms",
	"users",
}

// EnsureSchema creates any missing tables and indexes
func EnsureSchema(ctx context.Context, db Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
