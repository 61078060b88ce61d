package service

import (
	"fmt"
	"time"

	"sivitb/config"
	"sivitb/internal/domain"
	"sivitb/internal/models"
	"sivitb/internal/repository"
)

// Alerta is a descriptive label over a query result; there is no rules engine
// behind it.
type Alerta struct {
	Tipo       string `json:"tipo"`
	Mensaje    string `json:"mensaje"`
	ContactoID uint   `json:"contacto_id,omitempty"`
	RecursoID  uint   `json:"recurso_id,omitempty"`
}

type AlertaService struct {
	cfg            *config.AlertasConfig
	contactoRepo   *repository.ContactoRepository
	tptRepo        *repository.TPTRepository
	derivacionRepo *repository.DerivacionRepository
}

func NewAlertaService(
	cfg *config.AlertasConfig,
	contactoRepo *repository.ContactoRepository,
	tptRepo *repository.TPTRepository,
	derivacionRepo *repository.DerivacionRepository,
) *AlertaService {
	return &AlertaService{
		cfg:            cfg,
		contactoRepo:   contactoRepo,
		tptRepo:        tptRepo,
		derivacionRepo: derivacionRepo,
	}
}

// Generar computes the current alert set, grouped by alert type.
func (s *AlertaService) Generar() (map[string][]Alerta, error) {
	out := make(map[string][]Alerta)
	hoy := time.Now()

	corteExamen := models.NuevaFecha(hoy.AddDate(0, 0, -s.cfg.DiasSinExamen))
	sinExamen, err := s.contactoRepo.ListSinExamenDesde(corteExamen)
	if err != nil {
		return nil, err
	}
	for _, c := range sinExamen {
		out[domain.AlertaContactoSinExamen] = append(out[domain.AlertaContactoSinExamen], Alerta{
			Tipo:       domain.AlertaContactoSinExamen,
			Mensaje:    fmt.Sprintf("El contacto %s no registra ningún examen desde su registro (%s)", c.Nombre, c.FechaRegistro),
			ContactoID: c.ID,
			RecursoID:  c.ID,
		})
	}

	corteControl := models.NuevaFecha(hoy.AddDate(0, 0, -s.cfg.DiasSinControlTPT))
	sinControl, err := s.tptRepo.ListSinControlDesde(corteControl)
	if err != nil {
		return nil, err
	}
	for _, t := range sinControl {
		out[domain.AlertaTPTSinControl] = append(out[domain.AlertaTPTSinControl], Alerta{
			Tipo:       domain.AlertaTPTSinControl,
			Mensaje:    fmt.Sprintf("Seguimiento TPT %d sin control en los últimos %d días", t.ID, s.cfg.DiasSinControlTPT),
			ContactoID: t.ContactoID,
			RecursoID:  t.ID,
		})
	}

	abandonados, err := s.tptRepo.ListAbandonados()
	if err != nil {
		return nil, err
	}
	for _, t := range abandonados {
		out[domain.AlertaTPTAbandonado] = append(out[domain.AlertaTPTAbandonado], Alerta{
			Tipo:       domain.AlertaTPTAbandonado,
			Mensaje:    fmt.Sprintf("Seguimiento TPT %d en estado Abandonado", t.ID),
			ContactoID: t.ContactoID,
			RecursoID:  t.ID,
		})
	}

	corteDerivacion := models.NuevaFecha(hoy.AddDate(0, 0, -s.cfg.DiasDerivacionVencida))
	pendientes, err := s.derivacionRepo.ListPendientesAntesDe(corteDerivacion)
	if err != nil {
		return nil, err
	}
	for _, d := range pendientes {
		out[domain.AlertaDerivacionVencida] = append(out[domain.AlertaDerivacionVencida], Alerta{
			Tipo:      domain.AlertaDerivacionVencida,
			Mensaje:   fmt.Sprintf("%s %s pendiente desde %s", d.Tipo, d.CodigoSeguimiento, d.FechaSolicitud),
			RecursoID: d.ID,
		})
	}

	return out, nil
}
