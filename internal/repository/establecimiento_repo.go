package repository

import (
	"errors"

	"sivitb/internal/models"

	"gorm.io/gorm"
)

type EstablecimientoRepository struct {
	db *gorm.DB
}

var _ EstablecimientoFinder = (*EstablecimientoRepository)(nil)

func NewEstablecimientoRepository(db *gorm.DB) *EstablecimientoRepository {
	return &EstablecimientoRepository{db: db}
}

func (r *EstablecimientoRepository) Create(e *models.Establecimiento) error {
	return r.db.Create(e).Error
}

func (r *EstablecimientoRepository) GetByID(id uint) (*models.Establecimiento, error) {
	var e models.Establecimiento
	err := r.db.First(&e, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EstablecimientoRepository) GetByCodigo(codigo string) (*models.Establecimiento, error) {
	var e models.Establecimiento
	err := r.db.Where("codigo = ?", codigo).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EstablecimientoRepository) Update(e *models.Establecimiento) error {
	return r.db.Save(e).Error
}

func (r *EstablecimientoRepository) Delete(id uint) error {
	return r.db.Delete(&models.Establecimiento{}, id).Error
}

func (r *EstablecimientoRepository) ExistsActivo(id uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.Establecimiento{}).
		Where("id = ? AND activo = ?", id, true).
		Count(&c).Error
	return c > 0, err
}

func (r *EstablecimientoRepository) List(search string, soloActivos bool, page, limit int) ([]models.Establecimiento, int64, error) {
	q := r.db.Model(&models.Establecimiento{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("nombre LIKE ? OR codigo LIKE ?", like, like)
	}
	if soloActivos {
		q = q.Where("activo = ?", true)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Establecimiento
	err := q.Order("nombre ASC").Offset((page - 1) * limit).Limit(limit).Find(&list).Error
	return list, total, err
}
