package models

import (
	"time"

	"gorm.io/gorm"
)

// DerivacionTransferencia is a request to move clinical responsibility for a
// contact from one facility to another. Estado moves only through the
// transition table in domain.TransicionesEstado.
type DerivacionTransferencia struct {
	ID                        uint           `gorm:"primaryKey" json:"id"`
	CodigoSeguimiento         string         `gorm:"uniqueIndex;size:36;not null" json:"codigo_seguimiento"`
	Tipo                      string         `gorm:"size:20;not null;index" json:"tipo"` // Derivación | Transferencia
	ContactoID                uint           `gorm:"not null;index" json:"contacto_id"`
	EstablecimientoOrigenID   uint           `gorm:"not null;index" json:"establecimiento_origen_id"`
	EstablecimientoDestinoID  uint           `gorm:"not null;index" json:"establecimiento_destino_id"`
	Motivo                    string         `gorm:"type:text;not null" json:"motivo"`
	MotivoRechazo             string         `gorm:"type:text" json:"motivo_rechazo"`
	Observaciones             string         `gorm:"type:text" json:"observaciones"`
	FechaSolicitud            Fecha          `gorm:"not null" json:"fecha_solicitud"`
	Estado                    string         `gorm:"size:20;not null;default:'Pendiente';index" json:"estado"`
	FechaAceptacion           *Fecha         `json:"fecha_aceptacion"`
	UsuarioSolicitaID         uint           `gorm:"not null;index" json:"usuario_solicita_id"`
	UsuarioAceptaID           *uint          `gorm:"index" json:"usuario_acepta_id"`
	CreatedAt                 time.Time      `json:"created_at"`
	UpdatedAt                 time.Time      `json:"updated_at"`
	DeletedAt                 gorm.DeletedAt `gorm:"index" json:"-"`

	Contacto               *Contacto        `gorm:"foreignKey:ContactoID" json:"contacto,omitempty"`
	EstablecimientoOrigen  *Establecimiento `gorm:"foreignKey:EstablecimientoOrigenID" json:"establecimiento_origen,omitempty"`
	EstablecimientoDestino *Establecimiento `gorm:"foreignKey:EstablecimientoDestinoID" json:"establecimiento_destino,omitempty"`
	UsuarioSolicita        *Usuario         `gorm:"foreignKey:UsuarioSolicitaID" json:"usuario_solicita,omitempty"`
	UsuarioAcepta          *Usuario         `gorm:"foreignKey:UsuarioAceptaID" json:"usuario_acepta,omitempty"`
}

func (DerivacionTransferencia) TableName() string { return "derivaciones_transferencias" }
