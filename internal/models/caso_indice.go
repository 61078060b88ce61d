package models

import (
	"time"

	"gorm.io/gorm"
)

// CasoIndice is the initially diagnosed tuberculosis patient from whom
// contact tracing originates.
type CasoIndice struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	NombrePaciente    string         `gorm:"size:150;not null" json:"nombre_paciente"`
	Documento         string         `gorm:"uniqueIndex;size:20;not null" json:"documento"`
	FechaNacimiento   *Fecha         `json:"fecha_nacimiento"`
	Sexo              string         `gorm:"size:1" json:"sexo"` // M | F
	Telefono          string         `gorm:"size:20" json:"telefono"`
	Direccion         string         `gorm:"size:255" json:"direccion"`
	EstablecimientoID uint           `gorm:"not null;index" json:"establecimiento_id"`
	FechaDiagnostico  Fecha          `gorm:"not null" json:"fecha_diagnostico"`
	EstadoCaso        string         `gorm:"size:20;not null;default:'Activo';index" json:"estado_caso"`
	Observaciones     string         `gorm:"type:text" json:"observaciones"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	Establecimiento *Establecimiento `gorm:"foreignKey:EstablecimientoID" json:"establecimiento,omitempty"`
	Contactos       []Contacto       `gorm:"foreignKey:CasoIndiceID" json:"contactos,omitempty"`
}

func (CasoIndice) TableName() string { return "casos_indice" }
