package repository

import (
	"errors"

	"sivitb/internal/domain"
	"sivitb/internal/models"

	"gorm.io/gorm"
)

type TPTRepository struct {
	db *gorm.DB
}

func NewTPTRepository(db *gorm.DB) *TPTRepository {
	return &TPTRepository{db: db}
}

func (r *TPTRepository) Create(s *models.SeguimientoTPT) error {
	return r.db.Create(s).Error
}

func (r *TPTRepository) GetByID(id uint) (*models.SeguimientoTPT, error) {
	var s models.SeguimientoTPT
	err := r.db.Preload("Contacto").First(&s, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *TPTRepository) Update(s *models.SeguimientoTPT) error {
	return r.db.Save(s).Error
}

func (r *TPTRepository) Delete(id uint) error {
	return r.db.Delete(&models.SeguimientoTPT{}, id).Error
}

func (r *TPTRepository) ListByContactoID(contactoID uint) ([]models.SeguimientoTPT, error) {
	var list []models.SeguimientoTPT
	err := r.db.Where("contacto_id = ?", contactoID).
		Order("fecha_inicio DESC, id DESC").Find(&list).Error
	return list, err
}

func (r *TPTRepository) List(estadoTPT string, page, limit int) ([]models.SeguimientoTPT, int64, error) {
	q := r.db.Model(&models.SeguimientoTPT{})
	if estadoTPT != "" {
		q = q.Where("estado_tpt = ?", estadoTPT)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.SeguimientoTPT
	err := q.Preload("Contacto").Order("fecha_inicio DESC, id DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&list).Error
	return list, total, err
}

// ListAbandonados returns TPT records in Abandonado state.
func (r *TPTRepository) ListAbandonados() ([]models.SeguimientoTPT, error) {
	var list []models.SeguimientoTPT
	err := r.db.Where("estado_tpt = ?", domain.TPTAbandonado).Preload("Contacto").Find(&list).Error
	return list, err
}

// ListSinControlDesde returns in-progress TPT records whose last control is
// missing or on/before the cutoff date.
func (r *TPTRepository) ListSinControlDesde(cutoff models.Fecha) ([]models.SeguimientoTPT, error) {
	var list []models.SeguimientoTPT
	err := r.db.
		Where("estado_tpt = ?", domain.TPTEnCurso).
		Where("ultimo_control IS NULL OR ultimo_control <= ?", cutoff).
		Preload("Contacto").
		Find(&list).Error
	return list, err
}
