package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/bienestar-studio/studio-scheduler/internal/domain/schedule"
	"github.com/bienestar-studio/studio-scheduler/internal/httperr"
	"github.com/bienestar-studio/studio-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// States that occupy their slot.
const blockingStates = "state NOT IN ('CANCELED', 'NOT_ASSISTED')"

// --------------------------------------------------
// Service catalog
// --------------------------------------------------

func (r *ScheduleGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrNotFound("service_not_found")
		}
		return nil, err
	}
	return &svc, nil
}

func (r *ScheduleGormRepository) ListServices(
	ctx context.Context,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *ScheduleGormRepository) HasAppointmentConflict(
	ctx context.Context,
	rng domain.TimeRange,
	excludeID uint,
) (bool, error) {
	return r.appointmentConflict(r.db.WithContext(ctx), rng, excludeID, false)
}

func (r *ScheduleGormRepository) ReserveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rng := domain.Span(ap)

		conflict, err := r.appointmentConflict(tx, rng, 0, true)
		if err != nil {
			return err
		}
		if conflict {
			return httperr.ErrConflict("time_conflict")
		}

		if err := r.assertNoBlockConflict(tx, ap.AppointmentDate, &rng, 0); err != nil {
			return err
		}

		return tx.Create(ap).Error
	})
}

func (r *ScheduleGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rng := domain.Span(ap)

		conflict, err := r.appointmentConflict(tx, rng, ap.ID, true)
		if err != nil {
			return err
		}
		if conflict {
			return httperr.ErrConflict("time_conflict")
		}

		if err := r.assertNoBlockConflict(tx, ap.AppointmentDate, &rng, 0); err != nil {
			return err
		}

		return tx.Save(ap).Error
	})
}

func (r *ScheduleGormRepository) appointmentConflict(
	tx *gorm.DB,
	rng domain.TimeRange,
	excludeID uint,
	lock bool,
) (bool, error) {

	q := tx.Model(&models.Appointment{}).
		Where(blockingStates).
		Where("start_time < ? AND end_time > ?", rng.End, rng.Start)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	// SELECT ... FOR UPDATE serializes concurrent reserve attempts on
	// postgres; sqlite (tests) runs single-writer anyway. Postgres forbids a
	// locking clause around an aggregate, so the locked variant fetches one
	// conflicting row id instead of counting.
	if lock && tx.Dialector.Name() == "postgres" {
		var ids []uint
		if err := q.Clauses(clause.Locking{Strength: "UPDATE"}).
			Limit(1).
			Pluck("id", &ids).Error; err != nil {
			return false, err
		}
		return len(ids) > 0, nil
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Appointment (read / mutate)
// --------------------------------------------------

func (r *ScheduleGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		First(&ap, id).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrNotFound("appointment_not_found")
		}
		return nil, err
	}
	return &ap, nil
}

func (r *ScheduleGormRepository) SaveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *ScheduleGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("appointment_not_found")
	}
	return nil
}

func (r *ScheduleGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.AppointmentFilter,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	if filter.ClientID != 0 {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.State != "" {
		q = q.Where("state = ?", filter.State)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	var aps []models.Appointment
	if err := q.
		Preload("Client").
		Preload("Service").
		Order("appointment_date DESC, start_time DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&aps).Error; err != nil {
		return nil, 0, err
	}

	return aps, total, nil
}

func (r *ScheduleGormRepository) ListBlockingAppointmentsForDay(
	ctx context.Context,
	day time.Time,
) ([]models.Appointment, error) {

	start := domain.DayOf(day)
	end := start.AddDate(0, 0, 1)

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time").
		Where(blockingStates).
		Where("start_time >= ? AND start_time < ?", start, end).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *ScheduleGormRepository) ListConfirmedAppointments(
	ctx context.Context,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("state = ?", string(domain.StateConfirmed)).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Blocked slots
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateBlockPeriod(
	ctx context.Context,
	blocks []models.BlockedSlot,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Validate every day before writing anything: a conflict on one day
		// aborts the whole period.
		for i := range blocks {
			b := &blocks[i]

			if err := r.assertNoAppointmentInWindow(tx, b); err != nil {
				return err
			}

			var rng *domain.TimeRange
			if !b.FullDay {
				w := domain.BlockWindow(b)
				rng = &w
			}
			if err := r.assertNoBlockConflict(tx, b.Date, rng, 0); err != nil {
				return err
			}
		}

		for i := range blocks {
			if err := tx.Create(&blocks[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ScheduleGormRepository) UpdateBlockChecked(
	ctx context.Context,
	block *models.BlockedSlot,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.assertNoAppointmentInWindow(tx, block); err != nil {
			return err
		}

		var rng *domain.TimeRange
		if !block.FullDay {
			w := domain.BlockWindow(block)
			rng = &w
		}
		if err := r.assertNoBlockConflict(tx, block.Date, rng, block.ID); err != nil {
			return err
		}

		return tx.Save(block).Error
	})
}

// assertNoAppointmentInWindow rejects a block whose window would swallow an
// active appointment. Full-day blocks conflict with any active appointment
// on the day.
func (r *ScheduleGormRepository) assertNoAppointmentInWindow(
	tx *gorm.DB,
	b *models.BlockedSlot,
) error {

	dayStart := domain.DayOf(b.Date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	q := tx.Model(&models.Appointment{}).
		Where(blockingStates).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd)

	if !b.FullDay {
		w := domain.BlockWindow(b)
		q = q.Where("start_time < ? AND end_time > ?", w.End, w.Start)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return httperr.ErrConflict("appointment_in_block_window")
	}
	return nil
}

// assertNoBlockConflict applies the block precedence rules for one day: an
// existing full-day block rejects anything new, a nil rng (full-day request)
// rejects on any existing block, partial vs partial uses range overlap.
func (r *ScheduleGormRepository) assertNoBlockConflict(
	tx *gorm.DB,
	day time.Time,
	rng *domain.TimeRange,
	excludeID uint,
) error {

	dayStart := domain.DayOf(day)
	dayEnd := dayStart.AddDate(0, 0, 1)

	base := tx.Model(&models.BlockedSlot{}).
		Where("date >= ? AND date < ?", dayStart, dayEnd)
	if excludeID != 0 {
		base = base.Where("id <> ?", excludeID)
	}
	base = base.Session(&gorm.Session{})

	var fullDays int64
	if err := base.
		Where("full_day = ?", true).
		Count(&fullDays).Error; err != nil {
		return err
	}
	if fullDays > 0 {
		return httperr.ErrConflict("day_fully_blocked")
	}

	if rng == nil {
		// Whole-day query: any remaining block on the day conflicts.
		var count int64
		if err := base.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrConflict("block_overlap")
		}
		return nil
	}

	var count int64
	if err := base.
		Where("full_day = ?", false).
		Where("start_time < ? AND end_time > ?", rng.End, rng.Start).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return httperr.ErrConflict("block_overlap")
	}
	return nil
}

func (r *ScheduleGormRepository) HasBlockConflict(
	ctx context.Context,
	day time.Time,
	rng *domain.TimeRange,
) (bool, error) {

	err := r.assertNoBlockConflict(r.db.WithContext(ctx), day, rng, 0)
	if err == nil {
		return false, nil
	}
	if httperr.IsKind(err, httperr.KindConflict) {
		return true, nil
	}
	return false, err
}

func (r *ScheduleGormRepository) GetBlock(
	ctx context.Context,
	id uint,
) (*models.BlockedSlot, error) {

	var b models.BlockedSlot
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrNotFound("block_not_found")
		}
		return nil, err
	}
	return &b, nil
}

func (r *ScheduleGormRepository) DeleteBlock(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.BlockedSlot{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("block_not_found")
	}
	return nil
}

func (r *ScheduleGormRepository) DeleteBlockGroup(
	ctx context.Context,
	groupID string,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Delete(&models.BlockedSlot{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, httperr.ErrNotFound("block_group_not_found")
	}
	return res.RowsAffected, nil
}

func (r *ScheduleGormRepository) ListBlocksByGroup(
	ctx context.Context,
	groupID string,
) ([]models.BlockedSlot, error) {

	var blocks []models.BlockedSlot
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("date ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *ScheduleGormRepository) ListBlocks(
	ctx context.Context,
) ([]models.BlockedSlot, error) {

	var blocks []models.BlockedSlot
	if err := r.db.WithContext(ctx).
		Order("date ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *ScheduleGormRepository) ListBlocksForDay(
	ctx context.Context,
	day time.Time,
) ([]models.BlockedSlot, error) {

	start := domain.DayOf(day)
	end := start.AddDate(0, 0, 1)

	var blocks []models.BlockedSlot
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", start, end).
		Order("start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
