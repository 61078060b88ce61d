package repository

import (
	"errors"

	"sivitb/internal/models"

	"gorm.io/gorm"
)

type CasoRepository struct {
	db *gorm.DB
}

func NewCasoRepository(db *gorm.DB) *CasoRepository {
	return &CasoRepository{db: db}
}

func (r *CasoRepository) Create(c *models.CasoIndice) error {
	return r.db.Create(c).Error
}

func (r *CasoRepository) GetByID(id uint) (*models.CasoIndice, error) {
	var caso models.CasoIndice
	err := r.db.Preload("Establecimiento").Preload("Contactos").First(&caso, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &caso, nil
}

func (r *CasoRepository) Update(c *models.CasoIndice) error {
	return r.db.Save(c).Error
}

func (r *CasoRepository) Delete(id uint) error {
	return r.db.Delete(&models.CasoIndice{}, id).Error
}

func (r *CasoRepository) Exists(id uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.CasoIndice{}).Where("id = ?", id).Count(&c).Error
	return c > 0, err
}

func (r *CasoRepository) List(search, estadoCaso string, establecimientoID uint, page, limit int) ([]models.CasoIndice, int64, error) {
	q := r.db.Model(&models.CasoIndice{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("nombre_paciente LIKE ? OR documento LIKE ?", like, like)
	}
	if estadoCaso != "" {
		q = q.Where("estado_caso = ?", estadoCaso)
	}
	if establecimientoID != 0 {
		q = q.Where("establecimiento_id = ?", establecimientoID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.CasoIndice
	err := q.Preload("Establecimiento").
		Order("fecha_diagnostico DESC, id DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&list).Error
	return list, total, err
}
