package repository

import (
	"errors"

	"sivitb/internal/domain"
	"sivitb/internal/models"

	"gorm.io/gorm"
)

type DerivacionRepository struct {
	db *gorm.DB
}

var _ DerivacionRepositoryContract = (*DerivacionRepository)(nil)

func NewDerivacionRepository(db *gorm.DB) *DerivacionRepository {
	return &DerivacionRepository{db: db}
}

func (r *DerivacionRepository) preloads(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Contacto").
		Preload("Contacto.CasoIndice").
		Preload("EstablecimientoOrigen").
		Preload("EstablecimientoDestino").
		Preload("UsuarioSolicita").
		Preload("UsuarioAcepta")
}

func (r *DerivacionRepository) Create(d *models.DerivacionTransferencia) error {
	return r.db.Create(d).Error
}

func (r *DerivacionRepository) GetByID(id uint) (*models.DerivacionTransferencia, error) {
	var d models.DerivacionTransferencia
	err := r.preloads(r.db).First(&d, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DerivacionRepository) Update(d *models.DerivacionTransferencia) error {
	return r.db.Save(d).Error
}

// Transition applies campos in a single conditional UPDATE keyed on the
// expected current estado, so concurrent transitions cannot overwrite each
// other. Zero affected rows means the record is gone or already moved on.
func (r *DerivacionRepository) Transition(id uint, desde string, campos map[string]interface{}) (bool, error) {
	res := r.db.Model(&models.DerivacionTransferencia{}).
		Where("id = ? AND estado = ?", id, desde).
		Updates(campos)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *DerivacionRepository) Delete(id uint) error {
	return r.db.Delete(&models.DerivacionTransferencia{}, id).Error
}

func (r *DerivacionRepository) filtered(f DerivacionFiltros) *gorm.DB {
	q := r.db.Model(&models.DerivacionTransferencia{})
	if f.ContactoID != 0 {
		q = q.Where("contacto_id = ?", f.ContactoID)
	}
	if f.Tipo != "" {
		q = q.Where("tipo = ?", f.Tipo)
	}
	if f.Estado != "" {
		q = q.Where("estado = ?", f.Estado)
	}
	if f.EstablecimientoOrigenID != 0 {
		q = q.Where("establecimiento_origen_id = ?", f.EstablecimientoOrigenID)
	}
	if f.EstablecimientoDestinoID != 0 {
		q = q.Where("establecimiento_destino_id = ?", f.EstablecimientoDestinoID)
	}
	return q
}

// List returns one page plus the total count of matching records.
// Ordering is fecha_solicitud DESC with id DESC as deterministic tiebreak.
func (r *DerivacionRepository) List(f DerivacionFiltros, page, limit int) ([]models.DerivacionTransferencia, int64, error) {
	var total int64
	if err := r.filtered(f).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.DerivacionTransferencia
	err := r.preloads(r.filtered(f)).
		Order("fecha_solicitud DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).Error
	return list, total, err
}

func (r *DerivacionRepository) ListByContactoID(contactoID uint) ([]models.DerivacionTransferencia, error) {
	var list []models.DerivacionTransferencia
	err := r.preloads(r.db).
		Where("contacto_id = ?", contactoID).
		Order("fecha_solicitud DESC, id DESC").
		Find(&list).Error
	return list, err
}

// ListPendientesAntesDe returns Pendiente records requested on or before the
// cutoff date, for the stale-referral alert.
func (r *DerivacionRepository) ListPendientesAntesDe(cutoff models.Fecha) ([]models.DerivacionTransferencia, error) {
	var list []models.DerivacionTransferencia
	err := r.db.Where("estado = ? AND fecha_solicitud <= ?", domain.EstadoPendiente, cutoff).
		Order("fecha_solicitud ASC, id ASC").
		Find(&list).Error
	return list, err
}
