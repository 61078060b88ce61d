package repository

import (
	"errors"

	"sivitb/internal/models"

	"gorm.io/gorm"
)

type ContactoRepository struct {
	db *gorm.DB
}

var _ ContactoFinder = (*ContactoRepository)(nil)

func NewContactoRepository(db *gorm.DB) *ContactoRepository {
	return &ContactoRepository{db: db}
}

func (r *ContactoRepository) Create(c *models.Contacto) error {
	return r.db.Create(c).Error
}

func (r *ContactoRepository) GetByID(id uint) (*models.Contacto, error) {
	var contacto models.Contacto
	err := r.db.Preload("CasoIndice").Preload("Examenes").First(&contacto, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contacto, nil
}

func (r *ContactoRepository) Update(c *models.Contacto) error {
	return r.db.Save(c).Error
}

func (r *ContactoRepository) Delete(id uint) error {
	return r.db.Delete(&models.Contacto{}, id).Error
}

func (r *ContactoRepository) Exists(id uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.Contacto{}).Where("id = ?", id).Count(&c).Error
	return c > 0, err
}

func (r *ContactoRepository) ListByCasoID(casoID uint, page, limit int) ([]models.Contacto, int64, error) {
	q := r.db.Model(&models.Contacto{}).Where("caso_indice_id = ?", casoID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Contacto
	err := q.Order("nombre ASC").Offset((page - 1) * limit).Limit(limit).Find(&list).Error
	return list, total, err
}

// ListSinExamenDesde returns contacts registered on or before the cutoff with
// no examination on record, for the overdue-examination alert.
func (r *ContactoRepository) ListSinExamenDesde(cutoff models.Fecha) ([]models.Contacto, error) {
	var list []models.Contacto
	err := r.db.
		Where("fecha_registro <= ?", cutoff).
		Where("NOT EXISTS (SELECT 1 FROM examenes_contacto e WHERE e.contacto_id = contactos.id AND e.deleted_at IS NULL)").
		Preload("CasoIndice").
		Find(&list).Error
	return list, err
}
