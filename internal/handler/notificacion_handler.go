package handler

import (
	"net/http"

	"sivitb/internal/middleware"
	"sivitb/internal/repository"

	"github.com/gin-gonic/gin"
)

type NotificacionHandler struct {
	repo *repository.NotificacionRepository
}

func NewNotificacionHandler(repo *repository.NotificacionRepository) *NotificacionHandler {
	return &NotificacionHandler{repo: repo}
}

// List handles GET /notificaciones for the authenticated user.
func (h *NotificacionHandler) List(c *gin.Context) {
	usuarioID := middleware.GetUsuarioID(c)
	page, limit := parsePagination(c)
	soloNoLeidas := c.Query("no_leidas") == "true"
	list, err := h.repo.ListByUsuarioID(usuarioID, soloNoLeidas, limit, (page-1)*limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	noLeidas, err := h.repo.CountNoLeidas(usuarioID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"notificaciones": list,
		"no_leidas":      noLeidas,
	})
}

// MarcarLeida handles PUT /notificaciones/:id/leida.
func (h *NotificacionHandler) MarcarLeida(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	usuarioID := middleware.GetUsuarioID(c)
	if err := h.repo.MarcarLeida(id, usuarioID); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo marcar la notificación")
		return
	}
	respondMensaje(c, "notificación marcada como leída")
}
