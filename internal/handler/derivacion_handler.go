package handler

import (
	"net/http"
	"strconv"

	"sivitb/internal/middleware"
	"sivitb/internal/models"
	"sivitb/internal/repository"
	"sivitb/internal/service"

	"github.com/gin-gonic/gin"
)

type DerivacionHandler struct {
	svc       *service.DerivacionService
	auditRepo repository.AuditLogger
}

func NewDerivacionHandler(svc *service.DerivacionService, auditRepo repository.AuditLogger) *DerivacionHandler {
	return &DerivacionHandler{svc: svc, auditRepo: auditRepo}
}

// List handles GET /derivaciones-transferencias.
func (h *DerivacionHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	f := repository.DerivacionFiltros{
		ContactoID:               parseUintQuery(c, "contacto_id"),
		Tipo:                     c.Query("tipo"),
		Estado:                   c.Query("estado"),
		EstablecimientoOrigenID:  parseUintQuery(c, "establecimiento_origen_id"),
		EstablecimientoDestinoID: parseUintQuery(c, "establecimiento_destino_id"),
	}
	list, pag, err := h.svc.Listar(f, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondPaginado(c, list, pag)
}

// GetByContacto handles GET /derivaciones-transferencias/contacto/:contactoId.
func (h *DerivacionHandler) GetByContacto(c *gin.Context) {
	contactoID, ok := parseIDParam(c, "contactoId")
	if !ok {
		return
	}
	list, err := h.svc.PorContacto(contactoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, list)
}

// GetByID handles GET /derivaciones-transferencias/:id.
func (h *DerivacionHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	d, err := h.svc.PorID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, d)
}

// Create handles POST /derivaciones-transferencias.
func (h *DerivacionHandler) Create(c *gin.Context) {
	var in service.DerivacionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}
	usuarioID := middleware.GetUsuarioID(c)
	d, err := h.svc.Crear(in, usuarioID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.audit(c, "DERIVACION_CREAR", d)
	respondOK(c, http.StatusCreated, d)
}

// Update handles PUT /derivaciones-transferencias/:id. Descriptive fields
// only; estado moves through the transition endpoints.
func (h *DerivacionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in service.DerivacionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}
	d, err := h.svc.Actualizar(id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.audit(c, "DERIVACION_ACTUALIZAR", d)
	respondOK(c, http.StatusOK, d)
}

// Aceptar handles PUT /derivaciones-transferencias/:id/aceptar.
func (h *DerivacionHandler) Aceptar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	d, err := h.svc.Aceptar(id, middleware.GetUsuarioID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.audit(c, "DERIVACION_ACEPTAR", d)
	respondOK(c, http.StatusOK, d)
}

// Rechazar handles PUT /derivaciones-transferencias/:id/rechazar.
func (h *DerivacionHandler) Rechazar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body struct {
		Motivo string `json:"motivo"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}
	d, err := h.svc.Rechazar(id, middleware.GetUsuarioID(c), body.Motivo)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.audit(c, "DERIVACION_RECHAZAR", d)
	respondOK(c, http.StatusOK, d)
}

// Completar handles PUT /derivaciones-transferencias/:id/completar.
func (h *DerivacionHandler) Completar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	d, err := h.svc.Completar(id, middleware.GetUsuarioID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.audit(c, "DERIVACION_COMPLETAR", d)
	respondOK(c, http.StatusOK, d)
}

// Delete handles DELETE /derivaciones-transferencias/:id.
func (h *DerivacionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(id); err != nil {
		respondServiceError(c, err)
		return
	}
	usuarioID := middleware.GetUsuarioID(c)
	_ = h.auditRepo.Log(&models.AuditLog{
		UsuarioID: &usuarioID,
		Accion:    "DERIVACION_ELIMINAR",
		Recurso:   "derivaciones_transferencias",
		RecursoID: strconv.FormatUint(uint64(id), 10),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	respondMensaje(c, "registro eliminado")
}

func (h *DerivacionHandler) audit(c *gin.Context, accion string, d *models.DerivacionTransferencia) {
	usuarioID := middleware.GetUsuarioID(c)
	_ = h.auditRepo.Log(&models.AuditLog{
		UsuarioID: &usuarioID,
		Accion:    accion,
		Recurso:   "derivaciones_transferencias",
		RecursoID: strconv.FormatUint(uint64(d.ID), 10),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
}
