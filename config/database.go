package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/whistle-guardian/api-go/models"
)

// InitDB connects to postgres using env configuration and migrates the schema.
func InitDB() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		zap.S().Fatalw("failed to connect to database", "error", err)
	}

	if err := MigrateModels(db); err != nil {
		zap.S().Fatalw("failed to migrate database schema", "error", err)
	}

	return db
}

// MigrateModels runs AutoMigrate for every model. Split out so tests can
// apply the same schema to their own database.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Report{},
		&models.ReportLike{},
		&models.ReportUpdate{},
		&models.BountyAcceptance{},
		&models.Notification{},
	)
}
