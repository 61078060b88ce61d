package handler

import (
	"net/http"

	"sivitb/internal/repository"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	repo      *repository.ReporteRepository
	auditRepo *repository.AuditoriaRepository
}

func NewDashboardHandler(repo *repository.ReporteRepository, auditRepo *repository.AuditoriaRepository) *DashboardHandler {
	return &DashboardHandler{repo: repo, auditRepo: auditRepo}
}

// Stats handles GET /dashboard.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.repo.GetDashboardStats()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	respondOK(c, http.StatusOK, stats)
}

// Auditoria handles GET /auditoria (admin only).
func (h *DashboardHandler) Auditoria(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.auditRepo.List(parseUintQuery(c, "usuario_id"), c.Query("accion"), page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"registros": list,
		"total":     total,
	})
}
