package schedule

import (
	"context"
	"time"

	"github.com/bienestar-studio/studio-scheduler/internal/models"
)

type AppointmentFilter struct {
	ClientID uint
	State    string
	Page     int
	Limit    int
}

type Repository interface {
	// -------- Service catalog --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	ListServices(
		ctx context.Context,
	) ([]models.Service, error)

	// -------- Appointment (create / conflict) --------

	// ReserveAppointment inserts the appointment only if its range is free of
	// blocking appointments and blocks, re-checking inside the same
	// transaction that performs the insert.
	ReserveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	HasAppointmentConflict(
		ctx context.Context,
		rng TimeRange,
		excludeID uint,
	) (bool, error)

	// -------- Appointment (read / mutate) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	SaveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// RescheduleAppointment persists new date/time/service fields after
	// re-running both conflict checks (excluding the appointment itself)
	// inside the write transaction.
	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	ListAppointments(
		ctx context.Context,
		filter AppointmentFilter,
	) ([]models.Appointment, int64, error)

	ListBlockingAppointmentsForDay(
		ctx context.Context,
		day time.Time,
	) ([]models.Appointment, error)

	ListConfirmedAppointments(
		ctx context.Context,
	) ([]models.Appointment, error)

	// -------- Blocked slots --------

	// CreateBlockPeriod validates every day of the period and writes all rows
	// in one transaction; a conflict on any day writes nothing.
	CreateBlockPeriod(
		ctx context.Context,
		blocks []models.BlockedSlot,
	) error

	// UpdateBlockChecked re-validates the block against appointments and the
	// other blocks of its day (excluding itself) before saving.
	UpdateBlockChecked(
		ctx context.Context,
		block *models.BlockedSlot,
	) error

	GetBlock(
		ctx context.Context,
		id uint,
	) (*models.BlockedSlot, error)

	DeleteBlock(
		ctx context.Context,
		id uint,
	) error

	DeleteBlockGroup(
		ctx context.Context,
		groupID string,
	) (int64, error)

	ListBlocksByGroup(
		ctx context.Context,
		groupID string,
	) ([]models.BlockedSlot, error)

	ListBlocks(
		ctx context.Context,
	) ([]models.BlockedSlot, error)

	ListBlocksForDay(
		ctx context.Context,
		day time.Time,
	) ([]models.BlockedSlot, error)

	HasBlockConflict(
		ctx context.Context,
		day time.Time,
		rng *TimeRange,
	) (bool, error)
}
