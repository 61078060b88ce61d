package models

import (
	"time"

	"gorm.io/gorm"
)

// Contacto is a person linked to a caso índice for monitoring and examination.
type Contacto struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CasoIndiceID    uint           `gorm:"not null;index" json:"caso_indice_id"`
	Nombre          string         `gorm:"size:150;not null" json:"nombre"`
	Documento       string         `gorm:"size:20;index" json:"documento"`
	FechaNacimiento *Fecha         `json:"fecha_nacimiento"`
	Parentesco      string         `gorm:"size:50" json:"parentesco"`
	Conviviente     bool           `gorm:"default:false" json:"conviviente"`
	Telefono        string         `gorm:"size:20" json:"telefono"`
	FechaRegistro   Fecha          `gorm:"not null" json:"fecha_registro"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	CasoIndice *CasoIndice      `gorm:"foreignKey:CasoIndiceID" json:"caso_indice,omitempty"`
	Examenes   []ExamenContacto `gorm:"foreignKey:ContactoID" json:"examenes,omitempty"`
}

func (Contacto) TableName() string { return "contactos" }
