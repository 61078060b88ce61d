package repository

import (
	"sivitb/internal/models"

	"gorm.io/gorm"
)

type UsuarioRepository struct {
	db *gorm.DB
}

func NewUsuarioRepository(db *gorm.DB) *UsuarioRepository {
	return &UsuarioRepository{db: db}
}

func (r *UsuarioRepository) Create(u *models.Usuario) error {
	return r.db.Create(u).Error
}

func (r *UsuarioRepository) GetByID(id uint) (*models.Usuario, error) {
	var u models.Usuario
	err := r.db.Preload("Establecimiento").First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UsuarioRepository) GetByEmail(email string) (*models.Usuario, error) {
	var u models.Usuario
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UsuarioRepository) Update(u *models.Usuario) error {
	return r.db.Save(u).Error
}

func (r *UsuarioRepository) Exists(id uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.Usuario{}).Where("id = ?", id).Count(&c).Error
	return c > 0, err
}

func (r *UsuarioRepository) List(search, rol string, page, limit int) ([]models.Usuario, int64, error) {
	q := r.db.Model(&models.Usuario{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("nombre LIKE ? OR email LIKE ?", like, like)
	}
	if rol != "" {
		q = q.Where("rol = ?", rol)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Usuario
	err := q.Preload("Establecimiento").Order("nombre ASC").
		Offset((page - 1) * limit).Limit(limit).Find(&list).Error
	return list, total, err
}

// ListByEstablecimientoID returns the active users attached to a facility,
// used to fan out referral notifications.
func (r *UsuarioRepository) ListByEstablecimientoID(establecimientoID uint) ([]models.Usuario, error) {
	var list []models.Usuario
	err := r.db.Where("establecimiento_id = ? AND activo = ?", establecimientoID, true).Find(&list).Error
	return list, err
}
