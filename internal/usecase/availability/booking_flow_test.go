package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bienestar-studio/studio-scheduler/internal/audit"
	domain "github.com/bienestar-studio/studio-scheduler/internal/domain/schedule"
	"github.com/bienestar-studio/studio-scheduler/internal/httperr"
	infraRepo "github.com/bienestar-studio/studio-scheduler/internal/infra/repository"
	"github.com/bienestar-studio/studio-scheduler/internal/models"
	ucAppointment "github.com/bienestar-studio/studio-scheduler/internal/usecase/appointment"
)

// Listing, booking, conflicting and re-listing against the same store.
func TestBookingFlow(t *testing.T) {
	now := day.AddDate(0, 0, -1)
	hoursUC, db := newTestUC(t, now)
	ctx := context.Background()

	repo := infraRepo.NewScheduleGormRepository(db)
	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))

	ana := models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&ana).Error)
	luis := models.User{Name: "Luis", Email: "luis@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&luis).Error)
	svc := models.Service{Name: "Reiki", DurationMinutes: 60, Active: true}
	require.NoError(t, db.Create(&svc).Error)

	ranges, err := domain.ParseWorkingRanges("10:00-14:00,17:00-22:00")
	require.NoError(t, err)
	createUC := ucAppointment.NewCreateAppointment(
		repo,
		nil,
		audit.NewDispatcher(audit.New(db)),
		domain.FixedClock{Instant: now},
		ranges,
		60,
	)

	hours, err := hoursUC.Execute(ctx, day)
	require.NoError(t, err)
	assert.Contains(t, hours, "12:00")

	ap, err := createUC.Execute(ctx, ucAppointment.CreateAppointmentInput{
		ClientID:  ana.ID,
		ServiceID: svc.ID,
		Date:      day.Format("2006-01-02"),
		StartHour: "12:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", ap.State)

	_, err = createUC.Execute(ctx, ucAppointment.CreateAppointmentInput{
		ClientID:  luis.ID,
		ServiceID: svc.ID,
		Date:      day.Format("2006-01-02"),
		StartHour: "12:00",
	})
	assert.True(t, httperr.IsKind(err, httperr.KindConflict), "got %v", err)

	hours, err = hoursUC.Execute(ctx, day)
	require.NoError(t, err)
	assert.NotContains(t, hours, "12:00")
	assert.Contains(t, hours, "13:00")
}
