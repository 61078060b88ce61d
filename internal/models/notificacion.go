package models

import (
	"time"

	"gorm.io/gorm"
)

type Notificacion struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UsuarioID uint           `gorm:"not null;index" json:"usuario_id"`
	Tipo      string         `gorm:"size:50;not null;index" json:"tipo"`
	Titulo    string         `gorm:"size:255" json:"titulo"`
	Mensaje   string         `gorm:"type:text" json:"mensaje"`
	Data      string         `gorm:"type:text" json:"data"` // JSON payload
	LeidaAt   *time.Time     `json:"leida_at"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Usuario Usuario `gorm:"foreignKey:UsuarioID" json:"-"`
}

func (Notificacion) TableName() string { return "notificaciones" }
