package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/StudioBelezaApp/salon-scheduler/internal/config"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
)

// Colunas time.Time viram timestamptz no driver, então o range do
// constraint é tstzrange.
const bookingsNoOverlapDDL = `
        DO $$ BEGIN
            ALTER TABLE bookings
                ADD CONSTRAINT bookings_no_overlap
                EXCLUDE USING gist (
                    professional_id WITH =,
                    tstzrange(scheduled_start, ends_at) WITH &&
                )
                WHERE (status IN ('pending', 'accepted'));
        EXCEPTION
            WHEN duplicate_table THEN NULL;
            WHEN duplicate_object THEN NULL;
        END $$;
    `

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Salon{},
		&models.Professional{},
		&models.ServiceOffering{},
		&models.WorkingHours{},
		&models.Client{},
		&models.Booking{},
		&models.BookingItem{},
		&models.BlockedTime{},
		&models.LastMinuteSettings{},
		&models.LastMinuteServiceRule{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := db.Exec(`
        UPDATE salons
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, cfg.DefaultTimezone).Error; err != nil {
		log.Fatalf("failed to backfill salon timezone: %v", err)
	}

	// Rede de segurança contra corrida perdida no check-then-insert:
	// inserts sobrepostos para o mesmo profissional falham com 23P01
	// e são traduzidos em time_slot_unavailable.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to create btree_gist extension: %v", err)
	}
	if err := db.Exec(bookingsNoOverlapDDL).Error; err != nil {
		log.Fatalf("failed to create overlap constraint: %v", err)
	}

	return db
}
