package handler

import (
	"net/http"
	"strings"

	"sivitb/internal/models"
	"sivitb/internal/repository"
	"sivitb/internal/service"

	"github.com/gin-gonic/gin"
)

type EstablecimientoHandler struct {
	repo *repository.EstablecimientoRepository
}

func NewEstablecimientoHandler(repo *repository.EstablecimientoRepository) *EstablecimientoHandler {
	return &EstablecimientoHandler{repo: repo}
}

type establecimientoInput struct {
	Nombre    string `json:"nombre"`
	Codigo    string `json:"codigo"`
	Direccion string `json:"direccion"`
	Activo    *bool  `json:"activo"`
}

func (in *establecimientoInput) validar() map[string]string {
	errs := make(map[string]string)
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Codigo = strings.TrimSpace(in.Codigo)
	in.Direccion = strings.TrimSpace(in.Direccion)
	if in.Nombre == "" {
		errs["nombre"] = "el nombre es obligatorio"
	}
	if in.Codigo == "" {
		errs["codigo"] = "el código es obligatorio"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// List handles GET /establecimientos.
func (h *EstablecimientoHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	soloActivos := c.Query("activo") == "true"
	list, total, err := h.repo.List(c.Query("search"), soloActivos, page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	respondPaginado(c, list, &service.Paginacion{Page: page, Limit: limit, Total: total, TotalPages: totalPages})
}

// GetByID handles GET /establecimientos/:id.
func (h *EstablecimientoHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	e, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	if e == nil {
		respondError(c, http.StatusNotFound, "establecimiento no encontrado")
		return
	}
	respondOK(c, http.StatusOK, e)
}

// Create handles POST /establecimientos.
func (h *EstablecimientoHandler) Create(c *gin.Context) {
	var in establecimientoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}
	if errs := in.validar(); errs != nil {
		respondValidacion(c, errs)
		return
	}
	if existente, err := h.repo.GetByCodigo(in.Codigo); err == nil && existente != nil {
		respondValidacion(c, map[string]string{"codigo": "el código ya está en uso"})
		return
	}
	e := &models.Establecimiento{
		Nombre:    in.Nombre,
		Codigo:    in.Codigo,
		Direccion: in.Direccion,
		Activo:    true,
	}
	if in.Activo != nil {
		e.Activo = *in.Activo
	}
	if err := h.repo.Create(e); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo crear el establecimiento")
		return
	}
	respondOK(c, http.StatusCreated, e)
}

// Update handles PUT /establecimientos/:id.
func (h *EstablecimientoHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	e, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	if e == nil {
		respondError(c, http.StatusNotFound, "establecimiento no encontrado")
		return
	}
	var in establecimientoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}
	if errs := in.validar(); errs != nil {
		respondValidacion(c, errs)
		return
	}
	if otro, err := h.repo.GetByCodigo(in.Codigo); err == nil && otro != nil && otro.ID != e.ID {
		respondValidacion(c, map[string]string{"codigo": "el código ya está en uso"})
		return
	}
	e.Nombre = in.Nombre
	e.Codigo = in.Codigo
	e.Direccion = in.Direccion
	if in.Activo != nil {
		e.Activo = *in.Activo
	}
	if err := h.repo.Update(e); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo actualizar el establecimiento")
		return
	}
	respondOK(c, http.StatusOK, e)
}

// Delete handles DELETE /establecimientos/:id.
func (h *EstablecimientoHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	e, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	if e == nil {
		respondError(c, http.StatusNotFound, "establecimiento no encontrado")
		return
	}
	if err := h.repo.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo eliminar el establecimiento")
		return
	}
	respondMensaje(c, "establecimiento eliminado")
}
