package handler

import (
	"net/http"
	"strings"
	"time"

	"sivitb/internal/models"
	"sivitb/internal/repository"
	"sivitb/internal/service"

	"github.com/gin-gonic/gin"
)

type ContactoHandler struct {
	repo     *repository.ContactoRepository
	casoRepo *repository.CasoRepository
}

func NewContactoHandler(repo *repository.ContactoRepository, casoRepo *repository.CasoRepository) *ContactoHandler {
	return &ContactoHandler{repo: repo, casoRepo: casoRepo}
}

type contactoInput struct {
	CasoIndiceID    uint   `json:"caso_indice_id"`
	Nombre          string `json:"nombre"`
	Documento       string `json:"documento"`
	FechaNacimiento string `json:"fecha_nacimiento"`
	Parentesco      string `json:"parentesco"`
	Conviviente     bool   `json:"conviviente"`
	Telefono        string `json:"telefono"`
	FechaRegistro   string `json:"fecha_registro"`
}

func (h *ContactoHandler) validar(in *contactoInput) (models.Fecha, *models.Fecha, map[string]string) {
	errs := make(map[string]string)
	in.Nombre = strings.TrimSpace(in.Nombre)
	if in.Nombre == "" {
		errs["nombre"] = "el nombre es obligatorio"
	}
	if in.CasoIndiceID == 0 {
		errs["caso_indice_id"] = "el caso índice es obligatorio"
	} else if ok, err := h.casoRepo.Exists(in.CasoIndiceID); err == nil && !ok {
		errs["caso_indice_id"] = "el caso índice no existe"
	}

	var fechaReg models.Fecha
	if in.FechaRegistro == "" {
		fechaReg = models.NuevaFecha(time.Now())
	} else if f, err := models.ParseFecha(in.FechaRegistro); err != nil {
		errs["fecha_registro"] = "fecha inválida: se espera YYYY-MM-DD"
	} else {
		fechaReg = f
	}

	var fechaNac *models.Fecha
	if in.FechaNacimiento != "" {
		if f, err := models.ParseFecha(in.FechaNacimiento); err != nil {
			errs["fecha_nacimiento"] = "fecha inválida: se espera YYYY-MM-DD"
		} else {
			fechaNac = &f
		}
	}

	if len(errs) == 0 {
		return fechaReg, fechaNac, nil
	}
	return fechaReg, fechaNac, errs
}

// ListByCaso handles GET /casos/:id/contactos.
func (h *ContactoHandler) ListByCaso(c *gin.Context) {
	casoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	page, limit := parsePagination(c)
	list, total, err := h.repo.ListByCasoID(casoID, page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	respondPaginado(c, list, &service.Paginacion{Page: page, Limit: limit, Total: total, TotalPages: totalPages})
}

// GetByID handles GET /contactos/:id.
func (h *ContactoHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	contacto, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	if contacto == nil {
		respondError(c, http.StatusNotFound, "contacto no encontrado")
		return
	}
	respondOK(c, http.StatusOK, contacto)
}

// Create handles POST /contactos.
func (h *ContactoHandler) Create(c *gin.Context) {
	var in contactoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}
	fechaReg, fechaNac, errs := h.validar(&in)
	if errs != nil {
		respondValidacion(c, errs)
		return
	}
	contacto := &models.Contacto{
		CasoIndiceID:    in.CasoIndiceID,
		Nombre:          in.Nombre,
		Documento:       strings.TrimSpace(in.Documento),
		FechaNacimiento: fechaNac,
		Parentesco:      in.Parentesco,
		Conviviente:     in.Conviviente,
		Telefono:        in.Telefono,
		FechaRegistro:   fechaReg,
	}
	if err := h.repo.Create(contacto); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo crear el contacto")
		return
	}
	respondOK(c, http.StatusCreated, contacto)
}

// Update handles PUT /contactos/:id.
func (h *ContactoHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	contacto, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	if contacto == nil {
		respondError(c, http.StatusNotFound, "contacto no encontrado")
		return
	}
	var in contactoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}
	fechaReg, fechaNac, errs := h.validar(&in)
	if errs != nil {
		respondValidacion(c, errs)
		return
	}
	contacto.CasoIndiceID = in.CasoIndiceID
	contacto.Nombre = in.Nombre
	contacto.Documento = strings.TrimSpace(in.Documento)
	contacto.FechaNacimiento = fechaNac
	contacto.Parentesco = in.Parentesco
	contacto.Conviviente = in.Conviviente
	contacto.Telefono = in.Telefono
	contacto.FechaRegistro = fechaReg
	if err := h.repo.Update(contacto); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo actualizar el contacto")
		return
	}
	respondOK(c, http.StatusOK, contacto)
}

// Delete handles DELETE /contactos/:id.
func (h *ContactoHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	contacto, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	if contacto == nil {
		respondError(c, http.StatusNotFound, "contacto no encontrado")
		return
	}
	if err := h.repo.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo eliminar el contacto")
		return
	}
	respondMensaje(c, "contacto eliminado")
}
