package handler

import (
	"net/http"
	"strings"
	"time"

	"sivitb/internal/domain"
	"sivitb/internal/models"
	"sivitb/internal/repository"
	"sivitb/internal/service"

	"github.com/gin-gonic/gin"
)

type TPTHandler struct {
	repo         *repository.TPTRepository
	contactoRepo *repository.ContactoRepository
}

func NewTPTHandler(repo *repository.TPTRepository, contactoRepo *repository.ContactoRepository) *TPTHandler {
	return &TPTHandler{repo: repo, contactoRepo: contactoRepo}
}

type tptInput struct {
	ContactoID    uint   `json:"contacto_id"`
	Esquema       string `json:"esquema"`
	FechaInicio   string `json:"fecha_inicio"`
	EstadoTPT     string `json:"estado_tpt"`
	ControlesMes  int    `json:"controles_mes"`
	UltimoControl string `json:"ultimo_control"`
	Observaciones string `json:"observaciones"`
}

func (h *TPTHandler) validar(in *tptInput) (models.Fecha, *models.Fecha, map[string]string) {
	errs := make(map[string]string)
	in.Esquema = strings.TrimSpace(in.Esquema)
	if in.ContactoID == 0 {
		errs["contacto_id"] = "el contacto es obligatorio"
	} else if ok, err := h.contactoRepo.Exists(in.ContactoID); err == nil && !ok {
		errs["contacto_id"] = "el contacto no existe"
	}
	if in.Esquema == "" {
		errs["esquema"] = "el esquema es obligatorio"
	}
	switch in.EstadoTPT {
	case "", domain.TPTEnCurso, domain.TPTCompletado, domain.TPTAbandonado, domain.TPTSuspendido:
	default:
		errs["estado_tpt"] = "estado TPT inválido"
	}
	if in.ControlesMes < 0 {
		errs["controles_mes"] = "controles_mes no puede ser negativo"
	}

	var inicio models.Fecha
	if in.FechaInicio == "" {
		errs["fecha_inicio"] = "la fecha de inicio es obligatoria"
	} else if f, err := models.ParseFecha(in.FechaInicio); err != nil {
		errs["fecha_inicio"] = "fecha inválida: se espera YYYY-MM-DD"
	} else {
		inicio = f
	}

	var ultimo *models.Fecha
	if in.UltimoControl != "" {
		if f, err := models.ParseFecha(in.UltimoControl); err != nil {
			errs["ultimo_control"] = "fecha inválida: se espera YYYY-MM-DD"
		} else if models.NuevaFecha(time.Now()).Antes(f) {
			errs["ultimo_control"] = "el último control no puede ser futuro"
		} else {
			ultimo = &f
		}
	}

	if len(errs) == 0 {
		return inicio, ultimo, nil
	}
	return inicio, ultimo, errs
}

// List handles GET /tpt.
func (h *TPTHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.repo.List(c.Query("estado_tpt"), page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	respondPaginado(c, list, &service.Paginacion{Page: page, Limit: limit, Total: total, TotalPages: totalPages})
}

// ListByContacto handles GET /contactos/:id/tpt.
func (h *TPTHandler) ListByContacto(c *gin.Context) {
	contactoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	list, err := h.repo.ListByContactoID(contactoID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	respondOK(c, http.StatusOK, list)
}

// GetByID handles GET /tpt/:id.
func (h *TPTHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	s, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	if s == nil {
		respondError(c, http.StatusNotFound, "seguimiento TPT no encontrado")
		return
	}
	respondOK(c, http.StatusOK, s)
}

// Create handles POST /tpt.
func (h *TPTHandler) Create(c *gin.Context) {
	var in tptInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}
	inicio, ultimo, errs := h.validar(&in)
	if errs != nil {
		respondValidacion(c, errs)
		return
	}
	estado := in.EstadoTPT
	if estado == "" {
		estado = domain.TPTEnCurso
	}
	s := &models.SeguimientoTPT{
		ContactoID:    in.ContactoID,
		Esquema:       in.Esquema,
		FechaInicio:   inicio,
		EstadoTPT:     estado,
		ControlesMes:  in.ControlesMes,
		UltimoControl: ultimo,
		Observaciones: in.Observaciones,
	}
	if err := h.repo.Create(s); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo registrar el seguimiento TPT")
		return
	}
	respondOK(c, http.StatusCreated, s)
}

// Update handles PUT /tpt/:id.
func (h *TPTHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	s, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	if s == nil {
		respondError(c, http.StatusNotFound, "seguimiento TPT no encontrado")
		return
	}
	var in tptInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}
	inicio, ultimo, errs := h.validar(&in)
	if errs != nil {
		respondValidacion(c, errs)
		return
	}
	s.ContactoID = in.ContactoID
	s.Esquema = in.Esquema
	s.FechaInicio = inicio
	if in.EstadoTPT != "" {
		s.EstadoTPT = in.EstadoTPT
	}
	s.ControlesMes = in.ControlesMes
	s.UltimoControl = ultimo
	s.Observaciones = in.Observaciones
	if err := h.repo.Update(s); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo actualizar el seguimiento TPT")
		return
	}
	respondOK(c, http.StatusOK, s)
}

// RegistrarControl handles PUT /tpt/:id/control: stamps a monthly control.
func (h *TPTHandler) RegistrarControl(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	s, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	if s == nil {
		respondError(c, http.StatusNotFound, "seguimiento TPT no encontrado")
		return
	}
	if s.EstadoTPT != domain.TPTEnCurso {
		respondError(c, http.StatusConflict, "solo se registran controles sobre un TPT en curso")
		return
	}
	hoy := models.NuevaFecha(time.Now())
	s.UltimoControl = &hoy
	s.ControlesMes++
	if err := h.repo.Update(s); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo registrar el control")
		return
	}
	respondOK(c, http.StatusOK, s)
}

// Delete handles DELETE /tpt/:id.
func (h *TPTHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	s, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	if s == nil {
		respondError(c, http.StatusNotFound, "seguimiento TPT no encontrado")
		return
	}
	if err := h.repo.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo eliminar el seguimiento TPT")
		return
	}
	respondMensaje(c, "seguimiento TPT eliminado")
}
