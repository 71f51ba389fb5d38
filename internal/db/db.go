package db

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bienestar-studio/studio-scheduler/internal/config"
	"github.com/bienestar-studio/studio-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	Seed(db, cfg)

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Appointment{},
		&models.BlockedSlot{},
		&models.AuditLog{},
	)
}

// Seed creates the admin account and the service catalog on first boot.
// Both writes are idempotent, existing rows are left untouched.
func Seed(db *gorm.DB, cfg *config.Config) {
	if cfg.AdminPassword != "" {
		var count int64
		db.Model(&models.User{}).Where("email = ?", cfg.AdminEmail).Count(&count)
		if count == 0 {
			hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Error().Err(err).Msg("failed to hash admin password")
			} else {
				admin := models.User{
					Name:         "Admin",
					Email:        cfg.AdminEmail,
					PasswordHash: string(hashed),
					Role:         "ADMIN",
				}
				if err := db.Create(&admin).Error; err != nil {
					log.Error().Err(err).Msg("failed to seed admin user")
				}
			}
		}
	}

	services := []models.Service{
		{Name: "Masaje y Osteopatía", Description: "Manual therapy session", DurationMinutes: 60},
		{Name: "Par Biomagnético", Description: "Biomagnetic pair session", DurationMinutes: 60},
		{Name: "Técnicas Emocionales", Description: "Emotional release techniques", DurationMinutes: 60},
		{Name: "Asesoramiento Nutricional y Estilo de Vida", Description: "Nutrition and lifestyle counseling", DurationMinutes: 60},
		{Name: "VARS", Description: "VARS session", DurationMinutes: 60},
		{Name: "Reiki", Description: "Reiki session", DurationMinutes: 60},
	}

	for _, s := range services {
		var count int64
		db.Model(&models.Service{}).Where("name = ?", s.Name).Count(&count)
		if count > 0 {
			continue
		}
		s.Active = true
		if err := db.Create(&s).Error; err != nil {
			log.Error().Err(err).Str("service", s.Name).Msg("failed to seed service")
		}
	}
}
