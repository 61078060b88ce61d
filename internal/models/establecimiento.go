package models

import (
	"time"

	"gorm.io/gorm"
)

// Establecimiento is a health facility that can originate or receive
// derivaciones/transferencias.
type Establecimiento struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Nombre    string         `gorm:"size:200;not null" json:"nombre"`
	Codigo    string         `gorm:"uniqueIndex;size:30;not null" json:"codigo"`
	Direccion string         `gorm:"size:255" json:"direccion"`
	Activo    bool           `gorm:"default:true;index" json:"activo"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Establecimiento) TableName() string { return "establecimientos" }
