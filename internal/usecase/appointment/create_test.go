package appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bienestar-studio/studio-scheduler/internal/audit"
	domain "github.com/bienestar-studio/studio-scheduler/internal/domain/schedule"
	"github.com/bienestar-studio/studio-scheduler/internal/httperr"
	infraRepo "github.com/bienestar-studio/studio-scheduler/internal/infra/repository"
	"github.com/bienestar-studio/studio-scheduler/internal/models"
)

type testEnv struct {
	db    *gorm.DB
	repo  domain.Repository
	audit *audit.Dispatcher
	clock domain.Clock

	client  *models.User
	other   *models.User
	service *models.Service
}

// Clock frozen the day before the bookable Wednesday 2026-03-04.
var frozenNow = time.Date(2026, 3, 3, 9, 0, 0, 0, time.Local)

func newTestEnv(t *testing.T) *testEnv {
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

	client := &models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x", Role: "CUSTOMER"}
	require.NoError(t, db.Create(client).Error)
	other := &models.User{Name: "Luis", Email: "luis@example.com", PasswordHash: "x", Role: "CUSTOMER"}
	require.NoError(t, db.Create(other).Error)

	service := &models.Service{Name: "Reiki", DurationMinutes: 60, Active: true}
	require.NoError(t, db.Create(service).Error)

	return &testEnv{
		db:      db,
		repo:    infraRepo.NewScheduleGormRepository(db),
		audit:   audit.NewDispatcher(audit.New(db)),
		clock:   domain.FixedClock{Instant: frozenNow},
		client:  client,
		other:   other,
		service: service,
	}
}

func (e *testEnv) ranges(t *testing.T) []domain.WorkingRange {
	t.Helper()
	ranges, err := domain.ParseWorkingRanges("10:00-14:00,17:00-22:00")
	require.NoError(t, err)
	return ranges
}

func (e *testEnv) createUC(t *testing.T) *CreateAppointment {
	return NewCreateAppointment(e.repo, nil, e.audit, e.clock, e.ranges(t), 60)
}

func TestCreateAppointment(t *testing.T) {
	env := newTestEnv(t)
	uc := env.createUC(t)
	ctx := context.Background()

	ap, err := uc.Execute(ctx, CreateAppointmentInput{
		ClientID:  env.client.ID,
		ServiceID: env.service.ID,
		Date:      "2026-03-04",
		StartHour: "10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "PENDING", ap.State)
	assert.Equal(t, "SESSION_60", ap.SessionType)
	assert.Equal(t, "10:00", ap.StartTime.Format("15:04"))
	assert.Equal(t, "11:00", ap.EndTime.Format("15:04"))
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.Local), ap.AppointmentDate)
	assert.NotZero(t, ap.ID)
}

func TestCreateAppointment_SecondClientSameSlot(t *testing.T) {
	env := newTestEnv(t)
	uc := env.createUC(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, CreateAppointmentInput{
		ClientID: env.client.ID, ServiceID: env.service.ID,
		Date: "2026-03-04", StartHour: "10:00",
	})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, CreateAppointmentInput{
		ClientID: env.other.ID, ServiceID: env.service.ID,
		Date: "2026-03-04", StartHour: "10:00",
	})
	assert.True(t, httperr.IsBusiness(err, "time_conflict"), "got %v", err)
}

func TestCreateAppointment_AdjacentSlots(t *testing.T) {
	env := newTestEnv(t)
	uc := env.createUC(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, CreateAppointmentInput{
		ClientID: env.client.ID, ServiceID: env.service.ID,
		Date: "2026-03-04", StartHour: "10:00",
	})
	require.NoError(t, err)

	// Back-to-back booking touches but does not overlap.
	_, err = uc.Execute(ctx, CreateAppointmentInput{
		ClientID: env.other.ID, ServiceID: env.service.ID,
		Date: "2026-03-04", StartHour: "11:00",
	})
	assert.NoError(t, err)
}

func TestCreateAppointment_Validation(t *testing.T) {
	env := newTestEnv(t)
	uc := env.createUC(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		in       CreateAppointmentInput
		wantCode string
	}{
		{
			"bad date",
			CreateAppointmentInput{ClientID: env.client.ID, ServiceID: env.service.ID, Date: "04-03-2026", StartHour: "10:00"},
			"invalid_date",
		},
		{
			"bad hour",
			CreateAppointmentInput{ClientID: env.client.ID, ServiceID: env.service.ID, Date: "2026-03-04", StartHour: "25:00"},
			"invalid_time",
		},
		{
			"unknown service",
			CreateAppointmentInput{ClientID: env.client.ID, ServiceID: 999, Date: "2026-03-04", StartHour: "10:00"},
			"service_not_found",
		},
		{
			"weekend",
			CreateAppointmentInput{ClientID: env.client.ID, ServiceID: env.service.ID, Date: "2026-03-07", StartHour: "10:00"},
			"outside_working_hours",
		},
		{
			"afternoon break",
			CreateAppointmentInput{ClientID: env.client.ID, ServiceID: env.service.ID, Date: "2026-03-04", StartHour: "15:00"},
			"outside_working_hours",
		},
		{
			"spills past closing",
			CreateAppointmentInput{ClientID: env.client.ID, ServiceID: env.service.ID, Date: "2026-03-04", StartHour: "21:30"},
			"outside_working_hours",
		},
		{
			"in the past",
			CreateAppointmentInput{ClientID: env.client.ID, ServiceID: env.service.ID, Date: "2026-03-02", StartHour: "10:00"},
			"slot_in_the_past",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tc.in)
			assert.True(t, httperr.IsBusiness(err, tc.wantCode), "got %v", err)
		})
	}
}

func TestCreateAppointment_InactiveService(t *testing.T) {
	env := newTestEnv(t)
	uc := env.createUC(t)

	require.NoError(t, env.db.Model(env.service).Update("active", false).Error)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID: env.client.ID, ServiceID: env.service.ID,
		Date: "2026-03-04", StartHour: "10:00",
	})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"), "got %v", err)
}

func TestCreateAppointment_NinetyMinuteService(t *testing.T) {
	env := newTestEnv(t)
	uc := env.createUC(t)

	long := &models.Service{Name: "Masaje y Osteopatía", DurationMinutes: 90, Active: true}
	require.NoError(t, env.db.Create(long).Error)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID: env.client.ID, ServiceID: long.ID,
		Date: "2026-03-04", StartHour: "10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "SESSION_90", ap.SessionType)
	assert.Equal(t, "11:30", ap.EndTime.Format("15:04"))
}
