package service

import (
	"sivitb/internal/models"
	"sivitb/internal/repository"
)

type mockDerivacionRepo struct {
	CreateFn         func(d *models.DerivacionTransferencia) error
	GetByIDFn        func(id uint) (*models.DerivacionTransferencia, error)
	UpdateFn         func(d *models.DerivacionTransferencia) error
	TransitionFn     func(id uint, desde string, campos map[string]interface{}) (bool, error)
	DeleteFn         func(id uint) error
	ListFn           func(f repository.DerivacionFiltros, page, limit int) ([]models.DerivacionTransferencia, int64, error)
	ListByContactoFn func(contactoID uint) ([]models.DerivacionTransferencia, error)
}

func (m *mockDerivacionRepo) Create(d *models.DerivacionTransferencia) error {
	return m.CreateFn(d)
}

func (m *mockDerivacionRepo) GetByID(id uint) (*models.DerivacionTransferencia, error) {
	return m.GetByIDFn(id)
}

func (m *mockDerivacionRepo) Update(d *models.DerivacionTransferencia) error {
	return m.UpdateFn(d)
}

func (m *mockDerivacionRepo) Transition(id uint, desde string, campos map[string]interface{}) (bool, error) {
	return m.TransitionFn(id, desde, campos)
}

func (m *mockDerivacionRepo) Delete(id uint) error {
	return m.DeleteFn(id)
}

func (m *mockDerivacionRepo) List(f repository.DerivacionFiltros, page, limit int) ([]models.DerivacionTransferencia, int64, error) {
	return m.ListFn(f, page, limit)
}

func (m *mockDerivacionRepo) ListByContactoID(contactoID uint) ([]models.DerivacionTransferencia, error) {
	return m.ListByContactoFn(contactoID)
}

type mockContactoFinder struct {
	ExistsFn func(id uint) (bool, error)
}

func (m *mockContactoFinder) Exists(id uint) (bool, error) {
	return m.ExistsFn(id)
}

type mockEstablecimientoFinder struct {
	ExistsActivoFn func(id uint) (bool, error)
}

func (m *mockEstablecimientoFinder) ExistsActivo(id uint) (bool, error) {
	return m.ExistsActivoFn(id)
}

type mockNotifier struct {
	eventos []string
}

func (m *mockNotifier) NotificarDerivacion(d *models.DerivacionTransferencia, evento string) {
	m.eventos = append(m.eventos, evento)
}
