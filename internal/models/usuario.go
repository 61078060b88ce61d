package models

import (
	"time"

	"sivitb/internal/domain"

	"gorm.io/gorm"
)

type Usuario struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Nombre            string         `gorm:"size:120;not null" json:"nombre"`
	Email             string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash      string         `gorm:"size:255" json:"-"`
	Rol               string         `gorm:"size:20;not null;index" json:"rol"` // ADMIN | MEDICO | ENFERMERO
	EstablecimientoID *uint          `gorm:"index" json:"establecimiento_id"`
	Activo            bool           `gorm:"default:true" json:"activo"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	Establecimiento *Establecimiento `gorm:"foreignKey:EstablecimientoID" json:"establecimiento,omitempty"`
}

func (Usuario) TableName() string { return "usuarios" }

func (u *Usuario) EsAdmin() bool { return u.Rol == domain.RoleAdmin }
