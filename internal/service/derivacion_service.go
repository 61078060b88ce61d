package service

import (
	"strings"
	"time"

	"sivitb/internal/domain"
	"sivitb/internal/models"
	"sivitb/internal/repository"

	"github.com/google/uuid"
)

// DerivacionInput is the caller-supplied payload for create and update.
// Dates travel as YYYY-MM-DD strings.
type DerivacionInput struct {
	Tipo                     string `json:"tipo"`
	ContactoID               uint   `json:"contacto_id"`
	EstablecimientoOrigenID  uint   `json:"establecimiento_origen_id"`
	EstablecimientoDestinoID uint   `json:"establecimiento_destino_id"`
	Motivo                   string `json:"motivo"`
	Observaciones            string `json:"observaciones"`
	FechaSolicitud           string `json:"fecha_solicitud"`
}

// Paginacion mirrors the list envelope's pagination block.
type Paginacion struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// DerivacionNotifier receives lifecycle events for fan-out (in-app rows,
// websocket push). May be a no-op.
type DerivacionNotifier interface {
	NotificarDerivacion(d *models.DerivacionTransferencia, evento string)
}

// DerivacionService owns the referral/transfer lifecycle: validation, the
// state machine, and attribution stamping. Estado never changes through
// Actualizar; only the dedicated transitions move it, each as a conditional
// update keyed on the expected current state.
type DerivacionService struct {
	repo             repository.DerivacionRepositoryContract
	contactos        repository.ContactoFinder
	establecimientos repository.EstablecimientoFinder
	notifier         DerivacionNotifier
}

func NewDerivacionService(
	repo repository.DerivacionRepositoryContract,
	contactos repository.ContactoFinder,
	establecimientos repository.EstablecimientoFinder,
	notifier DerivacionNotifier,
) *DerivacionService {
	return &DerivacionService{
		repo:             repo,
		contactos:        contactos,
		establecimientos: establecimientos,
		notifier:         notifier,
	}
}

func (s *DerivacionService) validar(in *DerivacionInput) (models.Fecha, *ValidationError) {
	v := nuevaValidacion()

	in.Tipo = strings.TrimSpace(in.Tipo)
	in.Motivo = strings.TrimSpace(in.Motivo)
	in.Observaciones = strings.TrimSpace(in.Observaciones)

	switch in.Tipo {
	case "":
		v.agregar("tipo", "el tipo es obligatorio")
	case domain.TipoDerivacion, domain.TipoTransferencia:
	default:
		v.agregar("tipo", "tipo inválido: debe ser Derivación o Transferencia")
	}

	if in.Motivo == "" {
		v.agregar("motivo", "el motivo es obligatorio")
	}

	if in.ContactoID == 0 {
		v.agregar("contacto_id", "el contacto es obligatorio")
	} else if ok, err := s.contactos.Exists(in.ContactoID); err == nil && !ok {
		v.agregar("contacto_id", "el contacto no existe")
	}

	if in.EstablecimientoOrigenID == 0 {
		v.agregar("establecimiento_origen_id", "el establecimiento de origen es obligatorio")
	} else if ok, err := s.establecimientos.ExistsActivo(in.EstablecimientoOrigenID); err == nil && !ok {
		v.agregar("establecimiento_origen_id", "el establecimiento de origen no existe o está inactivo")
	}

	if in.EstablecimientoDestinoID == 0 {
		v.agregar("establecimiento_destino_id", "el establecimiento de destino es obligatorio")
	} else if ok, err := s.establecimientos.ExistsActivo(in.EstablecimientoDestinoID); err == nil && !ok {
		v.agregar("establecimiento_destino_id", "el establecimiento de destino no existe o está inactivo")
	}

	if in.EstablecimientoOrigenID != 0 && in.EstablecimientoOrigenID == in.EstablecimientoDestinoID {
		v.agregar("establecimiento_destino_id", "el establecimiento de destino debe ser distinto del de origen")
	}

	var fecha models.Fecha
	if strings.TrimSpace(in.FechaSolicitud) == "" {
		v.agregar("fecha_solicitud", "la fecha de solicitud es obligatoria")
	} else {
		f, err := models.ParseFecha(in.FechaSolicitud)
		if err != nil {
			v.agregar("fecha_solicitud", "fecha inválida: se espera YYYY-MM-DD")
		} else if hoy := models.NuevaFecha(time.Now()); hoy.Antes(f) {
			v.agregar("fecha_solicitud", "la fecha de solicitud no puede ser futura")
		} else {
			fecha = f
		}
	}

	if v.vacio() {
		return fecha, nil
	}
	return fecha, v
}

// Crear validates the input and persists a new record in estado Pendiente,
// attributed to the authenticated caller.
func (s *DerivacionService) Crear(in DerivacionInput, usuarioID uint) (*models.DerivacionTransferencia, error) {
	fecha, verr := s.validar(&in)
	if verr != nil {
		return nil, verr
	}
	d := &models.DerivacionTransferencia{
		CodigoSeguimiento:        uuid.New().String(),
		Tipo:                     in.Tipo,
		ContactoID:               in.ContactoID,
		EstablecimientoOrigenID:  in.EstablecimientoOrigenID,
		EstablecimientoDestinoID: in.EstablecimientoDestinoID,
		Motivo:                   in.Motivo,
		Observaciones:            in.Observaciones,
		FechaSolicitud:           fecha,
		Estado:                   domain.EstadoPendiente,
		UsuarioSolicitaID:        usuarioID,
	}
	if err := s.repo.Create(d); err != nil {
		return nil, err
	}
	creado, err := s.repo.GetByID(d.ID)
	if err != nil || creado == nil {
		return d, err
	}
	s.notificar(creado, domain.NotifDerivacionCreada)
	return creado, nil
}

// Actualizar overwrites the descriptive fields. Estado, fecha_aceptacion and
// the attribution columns are untouchable here: state moves only through
// Aceptar, Rechazar and Completar.
func (s *DerivacionService) Actualizar(id uint, in DerivacionInput) (*models.DerivacionTransferencia, error) {
	d, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrNoEncontrado
	}
	fecha, verr := s.validar(&in)
	if verr != nil {
		return nil, verr
	}
	d.Tipo = in.Tipo
	d.ContactoID = in.ContactoID
	d.EstablecimientoOrigenID = in.EstablecimientoOrigenID
	d.EstablecimientoDestinoID = in.EstablecimientoDestinoID
	d.Motivo = in.Motivo
	d.Observaciones = in.Observaciones
	d.FechaSolicitud = fecha
	if err := s.repo.Update(d); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

// Aceptar moves Pendiente -> Aceptada, stamping fecha_aceptacion and the
// accepting user.
func (s *DerivacionService) Aceptar(id, usuarioID uint) (*models.DerivacionTransferencia, error) {
	return s.transicionar(id, domain.EstadoAceptada, domain.NotifDerivacionAceptada, map[string]interface{}{
		"estado":            domain.EstadoAceptada,
		"fecha_aceptacion":  models.NuevaFecha(time.Now()),
		"usuario_acepta_id": usuarioID,
	})
}

// Rechazar moves Pendiente -> Rechazada. The rejection reason is stored in
// motivo_rechazo; the original request motivo is never overwritten.
func (s *DerivacionService) Rechazar(id, usuarioID uint, motivo string) (*models.DerivacionTransferencia, error) {
	motivo = strings.TrimSpace(motivo)
	if motivo == "" {
		v := nuevaValidacion()
		v.agregar("motivo", "el motivo de rechazo es obligatorio")
		return nil, v
	}
	return s.transicionar(id, domain.EstadoRechazada, domain.NotifDerivacionRechazada, map[string]interface{}{
		"estado":            domain.EstadoRechazada,
		"motivo_rechazo":    motivo,
		"fecha_aceptacion":  models.NuevaFecha(time.Now()),
		"usuario_acepta_id": usuarioID,
	})
}

// Completar moves Aceptada -> Completada. fecha_aceptacion and the accepting
// user were already stamped by Aceptar.
func (s *DerivacionService) Completar(id, usuarioID uint) (*models.DerivacionTransferencia, error) {
	return s.transicionar(id, domain.EstadoCompletada, domain.NotifDerivacionCompletada, map[string]interface{}{
		"estado": domain.EstadoCompletada,
	})
}

func (s *DerivacionService) transicionar(id uint, hacia, evento string, campos map[string]interface{}) (*models.DerivacionTransferencia, error) {
	d, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrNoEncontrado
	}
	if !domain.TransicionValida(d.Estado, hacia) {
		return nil, ErrConflictoEstado
	}
	ok, err := s.repo.Transition(id, d.Estado, campos)
	if err != nil {
		return nil, err
	}
	if !ok {
		// The record moved (or vanished) between the read and the update.
		return nil, ErrConflictoEstado
	}
	actualizado, err := s.repo.GetByID(id)
	if err != nil || actualizado == nil {
		return actualizado, err
	}
	s.notificar(actualizado, evento)
	return actualizado, nil
}

// Eliminar removes the record unconditionally regardless of state.
func (s *DerivacionService) Eliminar(id uint) error {
	d, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if d == nil {
		return ErrNoEncontrado
	}
	return s.repo.Delete(id)
}

// PorID returns the hydrated record.
func (s *DerivacionService) PorID(id uint) (*models.DerivacionTransferencia, error) {
	d, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrNoEncontrado
	}
	return d, nil
}

// Listar returns one page of hydrated records plus pagination metadata.
func (s *DerivacionService) Listar(f repository.DerivacionFiltros, page, limit int) ([]models.DerivacionTransferencia, *Paginacion, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	list, total, err := s.repo.List(f, page, limit)
	if err != nil {
		return nil, nil, err
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return list, &Paginacion{Page: page, Limit: limit, Total: total, TotalPages: totalPages}, nil
}

// PorContacto returns every referral/transfer of one contact, newest first.
func (s *DerivacionService) PorContacto(contactoID uint) ([]models.DerivacionTransferencia, error) {
	return s.repo.ListByContactoID(contactoID)
}

func (s *DerivacionService) notificar(d *models.DerivacionTransferencia, evento string) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotificarDerivacion(d, evento)
}
