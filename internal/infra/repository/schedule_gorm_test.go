package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/bienestar-studio/studio-scheduler/internal/domain/schedule"
	"github.com/bienestar-studio/studio-scheduler/internal/httperr"
	"github.com/bienestar-studio/studio-scheduler/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Appointment{},
		&models.BlockedSlot{},
		&models.AuditLog{},
	))

	return db
}

func seedClient(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Name: "Client", Email: email, PasswordHash: "x", Role: "CUSTOMER"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedService(t *testing.T, db *gorm.DB) *models.Service {
	t.Helper()
	s := &models.Service{Name: "Reiki", DurationMinutes: 60, Active: true}
	require.NoError(t, db.Create(s).Error)
	return s
}

// Wednesday.
var day = time.Date(2026, 3, 4, 0, 0, 0, 0, time.Local)

func appointmentAt(clientID, serviceID uint, startHour int, state string) *models.Appointment {
	start := day.Add(time.Duration(startHour) * time.Hour)
	return &models.Appointment{
		ClientID:        clientID,
		ServiceID:       serviceID,
		AppointmentDate: day,
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		State:           state,
		SessionType:     "SESSION_60",
	}
}

func TestReserveAppointment(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, "a@example.com")
	other := seedClient(t, db, "b@example.com")
	svc := seedService(t, db)

	require.NoError(t, repo.ReserveAppointment(ctx, appointmentAt(client.ID, svc.ID, 10, "PENDING")))

	t.Run("same slot by another client conflicts", func(t *testing.T) {
		err := repo.ReserveAppointment(ctx, appointmentAt(other.ID, svc.ID, 10, "PENDING"))
		assert.True(t, httperr.IsBusiness(err, "time_conflict"), "got %v", err)
	})

	t.Run("touching slot does not conflict", func(t *testing.T) {
		assert.NoError(t, repo.ReserveAppointment(ctx, appointmentAt(other.ID, svc.ID, 11, "PENDING")))
	})

	t.Run("conflict writes nothing", func(t *testing.T) {
		var count int64
		db.Model(&models.Appointment{}).Count(&count)
		assert.Equal(t, int64(2), count)
	})
}

func TestReserveAppointment_CanceledDoesNotBlock(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, "a@example.com")
	other := seedClient(t, db, "b@example.com")
	svc := seedService(t, db)

	require.NoError(t, db.Create(appointmentAt(client.ID, svc.ID, 10, "CANCELED")).Error)
	require.NoError(t, db.Create(appointmentAt(client.ID, svc.ID, 11, "NOT_ASSISTED")).Error)

	assert.NoError(t, repo.ReserveAppointment(ctx, appointmentAt(other.ID, svc.ID, 10, "PENDING")))
	assert.NoError(t, repo.ReserveAppointment(ctx, appointmentAt(other.ID, svc.ID, 11, "PENDING")))
}

func TestReserveAppointment_BlockedWindow(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, "a@example.com")
	svc := seedService(t, db)

	start := day.Add(12 * time.Hour)
	end := day.Add(13 * time.Hour)
	require.NoError(t, db.Create(&models.BlockedSlot{
		GroupID: "g1", Date: day, StartTime: &start, EndTime: &end,
	}).Error)

	err := repo.ReserveAppointment(ctx, appointmentAt(client.ID, svc.ID, 12, "PENDING"))
	assert.True(t, httperr.IsBusiness(err, "block_overlap"), "got %v", err)

	// Outside the blocked window the slot stays bookable.
	assert.NoError(t, repo.ReserveAppointment(ctx, appointmentAt(client.ID, svc.ID, 13, "PENDING")))
}

func TestReserveAppointment_FullDayBlock(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, "a@example.com")
	svc := seedService(t, db)

	require.NoError(t, db.Create(&models.BlockedSlot{GroupID: "g1", Date: day, FullDay: true}).Error)

	err := repo.ReserveAppointment(ctx, appointmentAt(client.ID, svc.ID, 10, "PENDING"))
	assert.True(t, httperr.IsBusiness(err, "day_fully_blocked"), "got %v", err)
}

func TestRescheduleAppointment_ExcludesItself(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, "a@example.com")
	svc := seedService(t, db)

	ap := appointmentAt(client.ID, svc.ID, 10, "PENDING")
	require.NoError(t, repo.ReserveAppointment(ctx, ap))

	// Shifting within its own occupied range must not self-conflict.
	ap.StartTime = day.Add(10*time.Hour + 30*time.Minute)
	ap.EndTime = ap.StartTime.Add(time.Hour)
	assert.NoError(t, repo.RescheduleAppointment(ctx, ap))
}

func TestCreateBlockPeriod_AllOrNothing(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, "a@example.com")
	svc := seedService(t, db)

	// Active appointment on the middle day.
	middle := day.AddDate(0, 0, 1)
	ap := appointmentAt(client.ID, svc.ID, 10, "CONFIRMED")
	ap.AppointmentDate = middle
	ap.StartTime = middle.Add(10 * time.Hour)
	ap.EndTime = ap.StartTime.Add(time.Hour)
	require.NoError(t, db.Create(ap).Error)

	blocks := []models.BlockedSlot{
		{GroupID: "g1", Date: day, FullDay: true},
		{GroupID: "g1", Date: middle, FullDay: true},
		{GroupID: "g1", Date: day.AddDate(0, 0, 2), FullDay: true},
	}

	err := repo.CreateBlockPeriod(ctx, blocks)
	assert.True(t, httperr.IsBusiness(err, "appointment_in_block_window"), "got %v", err)

	var count int64
	db.Model(&models.BlockedSlot{}).Count(&count)
	assert.Zero(t, count, "a conflict on one day must write no rows at all")
}

func TestCreateBlockPeriod_MultiDay(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	blocks := []models.BlockedSlot{
		{GroupID: "g1", Date: day, FullDay: true},
		{GroupID: "g1", Date: day.AddDate(0, 0, 1), FullDay: true},
		{GroupID: "g1", Date: day.AddDate(0, 0, 2), FullDay: true},
	}
	require.NoError(t, repo.CreateBlockPeriod(ctx, blocks))

	listed, err := repo.ListBlocksByGroup(ctx, "g1")
	require.NoError(t, err)
	assert.Len(t, listed, 3)

	removed, err := repo.DeleteBlockGroup(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	_, err = repo.DeleteBlockGroup(ctx, "g1")
	assert.True(t, httperr.IsBusiness(err, "block_group_not_found"))
}

func TestCreateBlockPeriod_OverlapRules(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	start := day.Add(10 * time.Hour)
	end := day.Add(12 * time.Hour)
	require.NoError(t, repo.CreateBlockPeriod(ctx, []models.BlockedSlot{
		{GroupID: "g1", Date: day, StartTime: &start, EndTime: &end},
	}))

	t.Run("overlapping partial rejected", func(t *testing.T) {
		s := day.Add(11 * time.Hour)
		e := day.Add(13 * time.Hour)
		err := repo.CreateBlockPeriod(ctx, []models.BlockedSlot{
			{GroupID: "g2", Date: day, StartTime: &s, EndTime: &e},
		})
		assert.True(t, httperr.IsBusiness(err, "block_overlap"), "got %v", err)
	})

	t.Run("full day over existing partial rejected", func(t *testing.T) {
		err := repo.CreateBlockPeriod(ctx, []models.BlockedSlot{
			{GroupID: "g3", Date: day, FullDay: true},
		})
		assert.True(t, httperr.IsBusiness(err, "block_overlap"), "got %v", err)
	})

	t.Run("touching partial accepted", func(t *testing.T) {
		s := day.Add(12 * time.Hour)
		e := day.Add(13 * time.Hour)
		assert.NoError(t, repo.CreateBlockPeriod(ctx, []models.BlockedSlot{
			{GroupID: "g4", Date: day, StartTime: &s, EndTime: &e},
		}))
	})
}

func TestUpdateBlockChecked_ExcludesItself(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	start := day.Add(10 * time.Hour)
	end := day.Add(12 * time.Hour)
	b := models.BlockedSlot{GroupID: "g1", Date: day, StartTime: &start, EndTime: &end}
	require.NoError(t, db.Create(&b).Error)

	// Widening the same block must not collide with its own row.
	newEnd := day.Add(13 * time.Hour)
	b.EndTime = &newEnd
	assert.NoError(t, repo.UpdateBlockChecked(ctx, &b))
}

func TestListAppointments_FilterAndPaginate(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, "a@example.com")
	other := seedClient(t, db, "b@example.com")
	svc := seedService(t, db)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(appointmentAt(client.ID, svc.ID, 10+i, "PENDING")).Error)
	}
	require.NoError(t, db.Create(appointmentAt(other.ID, svc.ID, 13, "CONFIRMED")).Error)

	aps, total, err := repo.ListAppointments(ctx, domain.AppointmentFilter{ClientID: client.ID, Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, aps, 2)

	aps, total, err = repo.ListAppointments(ctx, domain.AppointmentFilter{State: "CONFIRMED", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, aps, 1)
	assert.Equal(t, other.ID, aps[0].ClientID)
}

// openDryRunPostgres builds statements against the postgres dialector
// without a server, recording every rendered query.
func openDryRunPostgres(t *testing.T, captured *[]string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=studio dbname=studio",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		*captured = append(*captured, tx.Statement.SQL.String())
	}))

	return db
}

func TestAppointmentConflict_PostgresSQLShape(t *testing.T) {
	var captured []string
	db := openDryRunPostgres(t, &captured)
	repo := NewScheduleGormRepository(db)

	start := day.Add(10 * time.Hour)
	rng := domain.TimeRange{Start: start, End: start.Add(time.Hour)}

	t.Run("locked lookup never wraps an aggregate", func(t *testing.T) {
		captured = captured[:0]

		_, err := repo.appointmentConflict(db, rng, 0, true)
		require.NoError(t, err)

		require.Len(t, captured, 1)
		sql := strings.ToUpper(captured[0])
		assert.Contains(t, sql, "FOR UPDATE")
		assert.NotContains(t, sql, "COUNT(")
		assert.Contains(t, sql, "LIMIT")
	})

	t.Run("unlocked count carries no locking clause", func(t *testing.T) {
		captured = captured[:0]

		_, err := repo.appointmentConflict(db, rng, 0, false)
		require.NoError(t, err)

		require.Len(t, captured, 1)
		sql := strings.ToUpper(captured[0])
		assert.Contains(t, sql, "COUNT(")
		assert.NotContains(t, sql, "FOR UPDATE")
	})
}

func TestGetService_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleGormRepository(db)

	_, err := repo.GetService(context.Background(), 42)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}
