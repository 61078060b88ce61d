package models

import (
	"time"

	"gorm.io/gorm"
)

// ExamenContacto records one examination performed on a contact.
type ExamenContacto struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ContactoID  uint           `gorm:"not null;index" json:"contacto_id"`
	TipoExamen  string         `gorm:"size:30;not null" json:"tipo_examen"` // Baciloscopia | Radiografia | PPD | GeneXpert
	Resultado   string         `gorm:"size:100" json:"resultado"`
	FechaExamen Fecha          `gorm:"not null" json:"fecha_examen"`
	AdjuntoURL  string         `gorm:"size:512" json:"adjunto_url"` // imagen subida a Cloudinary
	Observacion string         `gorm:"type:text" json:"observacion"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Contacto *Contacto `gorm:"foreignKey:ContactoID" json:"contacto,omitempty"`
}

func (ExamenContacto) TableName() string { return "examenes_contacto" }
