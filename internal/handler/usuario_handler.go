package handler

import (
	"errors"
	"net/http"
	"strings"

	"sivitb/internal/domain"
	"sivitb/internal/middleware"
	"sivitb/internal/repository"
	"sivitb/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UsuarioHandler struct {
	repo                *repository.UsuarioRepository
	establecimientoRepo *repository.EstablecimientoRepository
}

func NewUsuarioHandler(repo *repository.UsuarioRepository, establecimientoRepo *repository.EstablecimientoRepository) *UsuarioHandler {
	return &UsuarioHandler{repo: repo, establecimientoRepo: establecimientoRepo}
}

// List handles GET /usuarios (admin only).
func (h *UsuarioHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.repo.List(c.Query("search"), c.Query("rol"), page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	respondPaginado(c, list, &service.Paginacion{Page: page, Limit: limit, Total: total, TotalPages: totalPages})
}

// Me handles GET /usuarios/me.
func (h *UsuarioHandler) Me(c *gin.Context) {
	u, err := h.repo.GetByID(middleware.GetUsuarioID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "usuario no encontrado")
			return
		}
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	respondOK(c, http.StatusOK, u)
}

// Update handles PUT /usuarios/:id (admin only): nombre, rol, establecimiento
// and activo. Email and password go through the auth routes.
func (h *UsuarioHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	u, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "usuario no encontrado")
			return
		}
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	var in struct {
		Nombre            string `json:"nombre"`
		Rol               string `json:"rol"`
		EstablecimientoID *uint  `json:"establecimiento_id"`
		Activo            *bool  `json:"activo"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}
	errs := make(map[string]string)
	in.Nombre = strings.TrimSpace(in.Nombre)
	if in.Nombre == "" {
		errs["nombre"] = "el nombre es obligatorio"
	}
	switch in.Rol {
	case domain.RoleAdmin, domain.RoleMedico, domain.RoleEnfermero:
	default:
		errs["rol"] = "rol inválido"
	}
	if in.EstablecimientoID != nil {
		if ok, err := h.establecimientoRepo.ExistsActivo(*in.EstablecimientoID); err == nil && !ok {
			errs["establecimiento_id"] = "el establecimiento no existe o está inactivo"
		}
	}
	if len(errs) > 0 {
		respondValidacion(c, errs)
		return
	}
	u.Nombre = in.Nombre
	u.Rol = in.Rol
	u.EstablecimientoID = in.EstablecimientoID
	if in.Activo != nil {
		u.Activo = *in.Activo
	}
	if err := h.repo.Update(u); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo actualizar el usuario")
		return
	}
	respondOK(c, http.StatusOK, u)
}
