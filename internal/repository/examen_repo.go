package repository

import (
	"errors"

	"sivitb/internal/models"

	"gorm.io/gorm"
)

type ExamenRepository struct {
	db *gorm.DB
}

func NewExamenRepository(db *gorm.DB) *ExamenRepository {
	return &ExamenRepository{db: db}
}

func (r *ExamenRepository) Create(e *models.ExamenContacto) error {
	return r.db.Create(e).Error
}

func (r *ExamenRepository) GetByID(id uint) (*models.ExamenContacto, error) {
	var e models.ExamenContacto
	err := r.db.Preload("Contacto").First(&e, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *ExamenRepository) Update(e *models.ExamenContacto) error {
	return r.db.Save(e).Error
}

func (r *ExamenRepository) Delete(id uint) error {
	return r.db.Delete(&models.ExamenContacto{}, id).Error
}

func (r *ExamenRepository) ListByContactoID(contactoID uint) ([]models.ExamenContacto, error) {
	var list []models.ExamenContacto
	err := r.db.Where("contacto_id = ?", contactoID).
		Order("fecha_examen DESC, id DESC").Find(&list).Error
	return list, err
}
