package repository

import (
	"time"

	"sivitb/internal/models"

	"gorm.io/gorm"
)

type NotificacionRepository struct {
	db *gorm.DB
}

func NewNotificacionRepository(db *gorm.DB) *NotificacionRepository {
	return &NotificacionRepository{db: db}
}

func (r *NotificacionRepository) Create(n *models.Notificacion) error {
	return r.db.Create(n).Error
}

func (r *NotificacionRepository) ListByUsuarioID(usuarioID uint, soloNoLeidas bool, limit, offset int) ([]models.Notificacion, error) {
	q := r.db.Where("usuario_id = ?", usuarioID)
	if soloNoLeidas {
		q = q.Where("leida_at IS NULL")
	}
	var list []models.Notificacion
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *NotificacionRepository) MarcarLeida(id, usuarioID uint) error {
	now := time.Now()
	return r.db.Model(&models.Notificacion{}).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		Update("leida_at", &now).Error
}

func (r *NotificacionRepository) CountNoLeidas(usuarioID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.Notificacion{}).
		Where("usuario_id = ? AND leida_at IS NULL", usuarioID).
		Count(&c).Error
	return c, err
}
