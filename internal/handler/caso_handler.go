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

type CasoHandler struct {
	repo                *repository.CasoRepository
	establecimientoRepo *repository.EstablecimientoRepository
}

func NewCasoHandler(repo *repository.CasoRepository, establecimientoRepo *repository.EstablecimientoRepository) *CasoHandler {
	return &CasoHandler{repo: repo, establecimientoRepo: establecimientoRepo}
}

type casoInput struct {
	NombrePaciente    string `json:"nombre_paciente"`
	Documento         string `json:"documento"`
	FechaNacimiento   string `json:"fecha_nacimiento"`
	Sexo              string `json:"sexo"`
	Telefono          string `json:"telefono"`
	Direccion         string `json:"direccion"`
	EstablecimientoID uint   `json:"establecimiento_id"`
	FechaDiagnostico  string `json:"fecha_diagnostico"`
	EstadoCaso        string `json:"estado_caso"`
	Observaciones     string `json:"observaciones"`
}

func (h *CasoHandler) validar(in *casoInput) (models.Fecha, *models.Fecha, map[string]string) {
	errs := make(map[string]string)
	in.NombrePaciente = strings.TrimSpace(in.NombrePaciente)
	in.Documento = strings.TrimSpace(in.Documento)
	if in.NombrePaciente == "" {
		errs["nombre_paciente"] = "el nombre del paciente es obligatorio"
	}
	if in.Documento == "" {
		errs["documento"] = "el documento es obligatorio"
	}
	if in.Sexo != "" && in.Sexo != "M" && in.Sexo != "F" {
		errs["sexo"] = "sexo inválido: debe ser M o F"
	}
	if in.EstablecimientoID == 0 {
		errs["establecimiento_id"] = "el establecimiento es obligatorio"
	} else if ok, err := h.establecimientoRepo.ExistsActivo(in.EstablecimientoID); err == nil && !ok {
		errs["establecimiento_id"] = "el establecimiento no existe o está inactivo"
	}

	var fechaDiag models.Fecha
	if in.FechaDiagnostico == "" {
		errs["fecha_diagnostico"] = "la fecha de diagnóstico es obligatoria"
	} else if f, err := models.ParseFecha(in.FechaDiagnostico); err != nil {
		errs["fecha_diagnostico"] = "fecha inválida: se espera YYYY-MM-DD"
	} else if models.NuevaFecha(time.Now()).Antes(f) {
		errs["fecha_diagnostico"] = "la fecha de diagnóstico no puede ser futura"
	} else {
		fechaDiag = f
	}

	var fechaNac *models.Fecha
	if in.FechaNacimiento != "" {
		if f, err := models.ParseFecha(in.FechaNacimiento); err != nil {
			errs["fecha_nacimiento"] = "fecha inválida: se espera YYYY-MM-DD"
		} else {
			fechaNac = &f
		}
	}

	switch in.EstadoCaso {
	case "", domain.EstadoCasoActivo, domain.EstadoCasoEnTratamiento, domain.EstadoCasoCurado, domain.EstadoCasoAbandonado:
	default:
		errs["estado_caso"] = "estado de caso inválido"
	}

	if len(errs) == 0 {
		return fechaDiag, fechaNac, nil
	}
	return fechaDiag, fechaNac, errs
}

// List handles GET /casos.
func (h *CasoHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.repo.List(c.Query("search"), c.Query("estado_caso"), parseUintQuery(c, "establecimiento_id"), page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	respondPaginado(c, list, &service.Paginacion{Page: page, Limit: limit, Total: total, TotalPages: totalPages})
}

// GetByID handles GET /casos/:id.
func (h *CasoHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	caso, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	if caso == nil {
		respondError(c, http.StatusNotFound, "caso no encontrado")
		return
	}
	respondOK(c, http.StatusOK, caso)
}

// Create handles POST /casos.
func (h *CasoHandler) Create(c *gin.Context) {
	var in casoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}
	fechaDiag, fechaNac, errs := h.validar(&in)
	if errs != nil {
		respondValidacion(c, errs)
		return
	}
	estado := in.EstadoCaso
	if estado == "" {
		estado = domain.EstadoCasoActivo
	}
	caso := &models.CasoIndice{
		NombrePaciente:    in.NombrePaciente,
		Documento:         in.Documento,
		FechaNacimiento:   fechaNac,
		Sexo:              in.Sexo,
		Telefono:          in.Telefono,
		Direccion:         in.Direccion,
		EstablecimientoID: in.EstablecimientoID,
		FechaDiagnostico:  fechaDiag,
		EstadoCaso:        estado,
		Observaciones:     in.Observaciones,
	}
	if err := h.repo.Create(caso); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo crear el caso")
		return
	}
	respondOK(c, http.StatusCreated, caso)
}

// Update handles PUT /casos/:id.
func (h *CasoHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	caso, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	if caso == nil {
		respondError(c, http.StatusNotFound, "caso no encontrado")
		return
	}
	var in casoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}
	fechaDiag, fechaNac, errs := h.validar(&in)
	if errs != nil {
		respondValidacion(c, errs)
		return
	}
	caso.NombrePaciente = in.NombrePaciente
	caso.Documento = in.Documento
	caso.FechaNacimiento = fechaNac
	caso.Sexo = in.Sexo
	caso.Telefono = in.Telefono
	caso.Direccion = in.Direccion
	caso.EstablecimientoID = in.EstablecimientoID
	caso.FechaDiagnostico = fechaDiag
	if in.EstadoCaso != "" {
		caso.EstadoCaso = in.EstadoCaso
	}
	caso.Observaciones = in.Observaciones
	if err := h.repo.Update(caso); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo actualizar el caso")
		return
	}
	respondOK(c, http.StatusOK, caso)
}

// Delete handles DELETE /casos/:id.
func (h *CasoHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	caso, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	if caso == nil {
		respondError(c, http.StatusNotFound, "caso no encontrado")
		return
	}
	if err := h.repo.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo eliminar el caso")
		return
	}
	respondMensaje(c, "caso eliminado")
}
