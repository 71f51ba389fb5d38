package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/bienestar-studio/studio-scheduler/internal/audit"
	"github.com/bienestar-studio/studio-scheduler/internal/cache"
	"github.com/bienestar-studio/studio-scheduler/internal/config"
	domain "github.com/bienestar-studio/studio-scheduler/internal/domain/schedule"
	"github.com/bienestar-studio/studio-scheduler/internal/handlers"
	infraRepo "github.com/bienestar-studio/studio-scheduler/internal/infra/repository"
	"github.com/bienestar-studio/studio-scheduler/internal/metrics"
	"github.com/bienestar-studio/studio-scheduler/internal/middleware"
	ucAppointment "github.com/bienestar-studio/studio-scheduler/internal/usecase/appointment"
	ucAvailability "github.com/bienestar-studio/studio-scheduler/internal/usecase/availability"
	ucBlock "github.com/bienestar-studio/studio-scheduler/internal/usecase/block"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORS())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	repo := infraRepo.NewScheduleGormRepository(db)

	availabilityCache := cache.NewAvailability(rdb, cfg.AvailabilityCacheTTL)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	clock := domain.SystemClock()

	// ======================================================
	// USE CASES — AVAILABILITY
	// ======================================================
	availableHoursUC := ucAvailability.NewGetAvailableHours(
		repo,
		availabilityCache,
		clock,
		cfg.WorkingRanges,
		cfg.SlotMinutes,
	)

	calendarUC := ucAvailability.NewGetCalendar(repo)

	// ======================================================
	// USE CASES — BLOCKED SLOTS
	// ======================================================
	listBlocksUC := ucBlock.NewListBlocks(repo)

	createBlockUC := ucBlock.NewCreateBlock(
		repo,
		availabilityCache,
		auditDispatcher,
	)

	updateBlockUC := ucBlock.NewUpdateBlock(
		repo,
		availabilityCache,
		auditDispatcher,
	)

	deleteBlockUC := ucBlock.NewDeleteBlock(
		repo,
		availabilityCache,
		auditDispatcher,
	)

	deleteBlockGroupUC := ucBlock.NewDeleteBlockGroup(
		repo,
		availabilityCache,
		auditDispatcher,
	)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		repo,
		availabilityCache,
		auditDispatcher,
		clock,
		cfg.WorkingRanges,
		cfg.DefaultSessionMinutes,
	)

	rescheduleUC := ucAppointment.NewReschedule(
		repo,
		availabilityCache,
		auditDispatcher,
		clock,
		cfg.WorkingRanges,
		cfg.DefaultSessionMinutes,
	)

	transitionUC := ucAppointment.NewTransitionState(
		repo,
		availabilityCache,
		auditDispatcher,
		clock,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		repo,
		availabilityCache,
		auditDispatcher,
	)

	getAppointmentUC := ucAppointment.NewGetAppointment(repo)
	listAppointmentsUC := ucAppointment.NewListAppointments(repo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	serviceHandler := handlers.NewServiceHandler(repo)

	availabilityHandler := handlers.NewAvailabilityHandler(
		availableHoursUC,
		listBlocksUC,
		createBlockUC,
		updateBlockUC,
		deleteBlockUC,
		deleteBlockGroupUC,
	)

	calendarHandler := handlers.NewCalendarHandler(calendarUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		rescheduleUC,
		transitionUC,
		deleteAppointmentUC,
		getAppointmentUC,
		listAppointmentsUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// OPERATIONAL ENDPOINTS
	// ======================================================
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api/v1")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/services", serviceHandler.List)

			secured.GET("/availability/:date", availabilityHandler.GetAvailableHours)
			secured.GET("/blocks", availabilityHandler.ListBlocks)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListMine)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id", appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/no-show", appointmentHandler.MarkNoShow)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRole(string(domain.RoleAdmin)))
			{
				admin.GET("/admin/appointments", appointmentHandler.ListAll)
				admin.DELETE("/appointments/:id", appointmentHandler.Delete)

				admin.GET("/calendar", calendarHandler.Get)

				admin.POST("/blocks", availabilityHandler.CreateBlock)
				admin.PUT("/blocks/:id", availabilityHandler.UpdateBlock)
				admin.DELETE("/blocks/:id", availabilityHandler.DeleteBlock)
				admin.DELETE("/block-groups/:gid", availabilityHandler.DeleteBlockGroup)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
