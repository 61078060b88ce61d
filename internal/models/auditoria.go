package models

import "time"

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UsuarioID *uint     `gorm:"index" json:"usuario_id"`
	Accion    string    `gorm:"size:100;not null;index" json:"accion"`
	Recurso   string    `gorm:"size:100;index" json:"recurso"`
	RecursoID string    `gorm:"size:100;index" json:"recurso_id"`
	IP        string    `gorm:"size:45" json:"ip"`
	UserAgent string    `gorm:"size:512" json:"user_agent"`
	Metadata  string    `gorm:"type:text" json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }
