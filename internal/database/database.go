package database

import (
	"sivitb/config"
	"sivitb/internal/domain"
	"sivitb/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Establecimiento{},
		&models.Usuario{},
		&models.CasoIndice{},
		&models.Contacto{},
		&models.ExamenContacto{},
		&models.SeguimientoTPT{},
		&models.DerivacionTransferencia{},
		&models.Notificacion{},
		&models.AuditLog{},
	)
}

// SeedAdmin creates the initial admin account when no user exists yet.
func SeedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.Usuario{}).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return
	}
	admin := &models.Usuario{
		Nombre:       "Administrador",
		Email:        "admin@sivitb.local",
		PasswordHash: string(hash),
		Rol:          domain.RoleAdmin,
		Activo:       true,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Error().Err(err).Msg("seed admin")
		return
	}
	log.Info().Str("email", admin.Email).Msg("usuario admin inicial creado (cambiar contraseña)")
}
