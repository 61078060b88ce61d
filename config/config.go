package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Cloudinary CloudinaryConfig
	Alertas    AlertasConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// AlertasConfig holds the day thresholds for the derived alert queries.
type AlertasConfig struct {
	DiasSinExamen         int
	DiasSinControlTPT     int
	DiasDerivacionVencida int
}

func Load() *Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DATABASE_DSN", "sivitb:sivitb@tcp(localhost:3306)/sivitb?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("JWT_ACCESS_SECRET", "change-me-in-production")
	v.SetDefault("JWT_REFRESH_SECRET", "change-me-refresh")
	v.SetDefault("JWT_ACCESS_EXPIRY_MIN", 30)
	v.SetDefault("JWT_REFRESH_EXPIRY_H", 168)
	v.SetDefault("ALERTA_DIAS_SIN_EXAMEN", 30)
	v.SetDefault("ALERTA_DIAS_SIN_CONTROL_TPT", 60)
	v.SetDefault("ALERTA_DIAS_DERIVACION", 15)

	// .env is optional; env vars win either way.
	_ = v.ReadInConfig()

	return &Config{
		Server: ServerConfig{
			Port:         v.GetString("PORT"),
			Env:          v.GetString("ENV"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             v.GetString("DATABASE_DSN"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  v.GetString("JWT_ACCESS_SECRET"),
			RefreshSecret: v.GetString("JWT_REFRESH_SECRET"),
			AccessExpiry:  time.Duration(v.GetInt("JWT_ACCESS_EXPIRY_MIN")) * time.Minute,
			RefreshExpiry: time.Duration(v.GetInt("JWT_REFRESH_EXPIRY_H")) * time.Hour,
			Issuer:        "sivitb",
		},
		Cloudinary: CloudinaryConfig{
			CloudName: v.GetString("CLOUDINARY_CLOUD_NAME"),
			APIKey:    v.GetString("CLOUDINARY_API_KEY"),
			APISecret: v.GetString("CLOUDINARY_API_SECRET"),
		},
		Alertas: AlertasConfig{
			DiasSinExamen:         v.GetInt("ALERTA_DIAS_SIN_EXAMEN"),
			DiasSinControlTPT:     v.GetInt("ALERTA_DIAS_SIN_CONTROL_TPT"),
			DiasDerivacionVencida: v.GetInt("ALERTA_DIAS_DERIVACION"),
		},
	}
}
