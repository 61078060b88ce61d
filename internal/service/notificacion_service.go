package service

import (
	"encoding/json"

	"sivitb/internal/domain"
	"sivitb/internal/models"
	"sivitb/internal/repository"
	"sivitb/internal/ws"
)

// NotificacionService persists in-app notifications and pushes them to
// connected clients through the websocket hub.
type NotificacionService struct {
	repo        *repository.NotificacionRepository
	usuarioRepo *repository.UsuarioRepository
	hub         *ws.Hub
}

func NewNotificacionService(repo *repository.NotificacionRepository, usuarioRepo *repository.UsuarioRepository, hub *ws.Hub) *NotificacionService {
	return &NotificacionService{repo: repo, usuarioRepo: usuarioRepo, hub: hub}
}

func (s *NotificacionService) Notificar(usuarioID uint, tipo, titulo, mensaje string, data map[string]interface{}) error {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	n := &models.Notificacion{
		UsuarioID: usuarioID,
		Tipo:      tipo,
		Titulo:    titulo,
		Mensaje:   mensaje,
		Data:      dataJSON,
	}
	if err := s.repo.Create(n); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.BroadcastToUser(usuarioID, n)
	}
	return nil
}

// NotificarDerivacion fans out a referral lifecycle event: creation goes to
// the destination facility's users, transitions go back to the requester.
func (s *NotificacionService) NotificarDerivacion(d *models.DerivacionTransferencia, evento string) {
	data := map[string]interface{}{
		"derivacion_id":      d.ID,
		"codigo_seguimiento": d.CodigoSeguimiento,
		"estado":             d.Estado,
	}
	switch evento {
	case domain.NotifDerivacionCreada:
		destinatarios, err := s.usuarioRepo.ListByEstablecimientoID(d.EstablecimientoDestinoID)
		if err != nil {
			return
		}
		titulo := d.Tipo + " recibida"
		for _, u := range destinatarios {
			_ = s.Notificar(u.ID, evento, titulo, "Nueva solicitud pendiente de revisión: "+d.Motivo, data)
		}
	case domain.NotifDerivacionAceptada:
		_ = s.Notificar(d.UsuarioSolicitaID, evento, d.Tipo+" aceptada", "La solicitud fue aceptada por el establecimiento de destino", data)
	case domain.NotifDerivacionRechazada:
		_ = s.Notificar(d.UsuarioSolicitaID, evento, d.Tipo+" rechazada", "La solicitud fue rechazada: "+d.MotivoRechazo, data)
	case domain.NotifDerivacionCompletada:
		_ = s.Notificar(d.UsuarioSolicitaID, evento, d.Tipo+" completada", "El traslado del contacto fue completado", data)
	}
}
