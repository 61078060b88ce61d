package repository

import (
	"sivitb/internal/models"

	"gorm.io/gorm"
)

type AuditoriaRepository struct {
	db *gorm.DB
}

var _ AuditLogger = (*AuditoriaRepository)(nil)

func NewAuditoriaRepository(db *gorm.DB) *AuditoriaRepository {
	return &AuditoriaRepository{db: db}
}

func (r *AuditoriaRepository) Log(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}

func (r *AuditoriaRepository) List(usuarioID uint, accion string, page, limit int) ([]models.AuditLog, int64, error) {
	q := r.db.Model(&models.AuditLog{})
	if usuarioID != 0 {
		q = q.Where("usuario_id = ?", usuarioID)
	}
	if accion != "" {
		q = q.Where("accion = ?", accion)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.AuditLog
	err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&list).Error
	return list, total, err
}
