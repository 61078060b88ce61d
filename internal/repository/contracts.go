package repository

import "sivitb/internal/models"

// DerivacionFiltros are the optional, AND-combined list filters. Zero values
// mean "not present" and are stripped before querying.
type DerivacionFiltros struct {
	ContactoID               uint
	Tipo                     string
	Estado                   string
	EstablecimientoOrigenID  uint
	EstablecimientoDestinoID uint
}

// DerivacionRepositoryContract is the data access contract the derivación
// service depends on. The gorm implementation lives in this package; tests
// substitute a mock.
type DerivacionRepositoryContract interface {
	Create(d *models.DerivacionTransferencia) error
	GetByID(id uint) (*models.DerivacionTransferencia, error)
	Update(d *models.DerivacionTransferencia) error
	// Transition applies campos only if the record is still in estado desde.
	// Returns false when no row matched (missing record or concurrent transition).
	Transition(id uint, desde string, campos map[string]interface{}) (bool, error)
	Delete(id uint) error
	List(f DerivacionFiltros, page, limit int) ([]models.DerivacionTransferencia, int64, error)
	ListByContactoID(contactoID uint) ([]models.DerivacionTransferencia, error)
}

// AuditLogger records one audit trail entry per mutating request.
type AuditLogger interface {
	Log(entry *models.AuditLog) error
}

// ContactoFinder resolves contact existence for cross-entity validation.
type ContactoFinder interface {
	Exists(id uint) (bool, error)
}

// EstablecimientoFinder resolves facility existence for cross-entity validation.
type EstablecimientoFinder interface {
	ExistsActivo(id uint) (bool, error)
}
