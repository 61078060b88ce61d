package handler

import (
	"net/http"

	"sivitb/internal/service"

	"github.com/gin-gonic/gin"
)

type AlertaHandler struct {
	svc *service.AlertaService
}

func NewAlertaHandler(svc *service.AlertaService) *AlertaHandler {
	return &AlertaHandler{svc: svc}
}

// List handles GET /alertas: alerts computed on demand, grouped by type.
func (h *AlertaHandler) List(c *gin.Context) {
	alertas, err := h.svc.Generar()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudieron generar las alertas")
		return
	}
	respondOK(c, http.StatusOK, alertas)
}
