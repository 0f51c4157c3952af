package config

import (
	"os"

	"foodshare-api/models"

	"github.com/glebarez/sqlite"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "foodshare_super_secret_2024"))

// UploadDir is where donation images are stored
var UploadDir = getEnv("UPLOAD_DIR", "static/uploads")

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DBPath returns the sqlite file path from env or the default
func DBPath() string {
	return getEnv("DB_PATH", "foodshare.db")
}

// InitDB opens the database at path, runs migrations and seeds the
// admin account if one is configured and none exists yet.
func InitDB(path string) error {
	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Donation{},
	); err != nil {
		return err
	}

	if err := seedAdmin(); err != nil {
		return err
	}

	log.WithField("db", path).Info("database connected and migrated")
	return nil
}

// seedAdmin provisions the admin account from env. Self-registration
// never produces admins, so this is the only way one comes to exist.
func seedAdmin() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var count int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:         getEnv("ADMIN_NAME", "Administrator"),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}
	log.WithField("email", email).Info("seeded admin account")
	return nil
}
