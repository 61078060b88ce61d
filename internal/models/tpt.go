package models

import (
	"time"

	"gorm.io/gorm"
)

// SeguimientoTPT tracks tuberculosis preventive therapy for a contact.
type SeguimientoTPT struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ContactoID     uint           `gorm:"not null;index" json:"contacto_id"`
	Esquema        string         `gorm:"size:50;not null" json:"esquema"` // 3HP, 6H, etc.
	FechaInicio    Fecha          `gorm:"not null" json:"fecha_inicio"`
	EstadoTPT      string         `gorm:"size:20;not null;default:'EnCurso';index" json:"estado_tpt"`
	ControlesMes   int            `gorm:"default:0" json:"controles_mes"`
	UltimoControl  *Fecha         `json:"ultimo_control"`
	Observaciones  string         `gorm:"type:text" json:"observaciones"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Contacto *Contacto `gorm:"foreignKey:ContactoID" json:"contacto,omitempty"`
}

func (SeguimientoTPT) TableName() string { return "seguimientos_tpt" }
