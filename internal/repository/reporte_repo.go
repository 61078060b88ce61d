package repository

import (
	"sivitb/internal/domain"
	"sivitb/internal/models"

	"gorm.io/gorm"
)

type DashboardStats struct {
	CasosActivos            int64 `json:"casos_activos"`
	CasosEnTratamiento      int64 `json:"casos_en_tratamiento"`
	TotalContactos          int64 `json:"total_contactos"`
	DerivacionesPendientes  int64 `json:"derivaciones_pendientes"`
	DerivacionesAceptadas   int64 `json:"derivaciones_aceptadas"`
	DerivacionesCompletadas int64 `json:"derivaciones_completadas"`
	TPTEnCurso              int64 `json:"tpt_en_curso"`
	TPTAbandonados          int64 `json:"tpt_abandonados"`
	EstablecimientosActivos int64 `json:"establecimientos_activos"`
}

type ReporteRepository struct {
	db *gorm.DB
}

func NewReporteRepository(db *gorm.DB) *ReporteRepository {
	return &ReporteRepository{db: db}
}

func (r *ReporteRepository) GetDashboardStats() (*DashboardStats, error) {
	var s DashboardStats
	r.db.Model(&models.CasoIndice{}).Where("estado_caso = ?", domain.EstadoCasoActivo).Count(&s.CasosActivos)
	r.db.Model(&models.CasoIndice{}).Where("estado_caso = ?", domain.EstadoCasoEnTratamiento).Count(&s.CasosEnTratamiento)
	r.db.Model(&models.Contacto{}).Count(&s.TotalContactos)
	r.db.Model(&models.DerivacionTransferencia{}).Where("estado = ?", domain.EstadoPendiente).Count(&s.DerivacionesPendientes)
	r.db.Model(&models.DerivacionTransferencia{}).Where("estado = ?", domain.EstadoAceptada).Count(&s.DerivacionesAceptadas)
	r.db.Model(&models.DerivacionTransferencia{}).Where("estado = ?", domain.EstadoCompletada).Count(&s.DerivacionesCompletadas)
	r.db.Model(&models.SeguimientoTPT{}).Where("estado_tpt = ?", domain.TPTEnCurso).Count(&s.TPTEnCurso)
	r.db.Model(&models.SeguimientoTPT{}).Where("estado_tpt = ?", domain.TPTAbandonado).Count(&s.TPTAbandonados)
	r.db.Model(&models.Establecimiento{}).Where("activo = ?", true).Count(&s.EstablecimientosActivos)
	return &s, nil
}
