package handler

import (
	"net/http"
	"strings"
	"time"

	"sivitb/internal/domain"
	"sivitb/internal/models"
	"sivitb/internal/repository"

	"github.com/gin-gonic/gin"
)

type ExamenHandler struct {
	repo         *repository.ExamenRepository
	contactoRepo *repository.ContactoRepository
}

func NewExamenHandler(repo *repository.ExamenRepository, contactoRepo *repository.ContactoRepository) *ExamenHandler {
	return &ExamenHandler{repo: repo, contactoRepo: contactoRepo}
}

type examenInput struct {
	ContactoID  uint   `json:"contacto_id"`
	TipoExamen  string `json:"tipo_examen"`
	Resultado   string `json:"resultado"`
	FechaExamen string `json:"fecha_examen"`
	AdjuntoURL  string `json:"adjunto_url"`
	Observacion string `json:"observacion"`
}

func (h *ExamenHandler) validar(in *examenInput) (models.Fecha, map[string]string) {
	errs := make(map[string]string)
	if in.ContactoID == 0 {
		errs["contacto_id"] = "el contacto es obligatorio"
	} else if ok, err := h.contactoRepo.Exists(in.ContactoID); err == nil && !ok {
		errs["contacto_id"] = "el contacto no existe"
	}
	switch in.TipoExamen {
	case domain.ExamenBaciloscopia, domain.ExamenRadiografia, domain.ExamenPPD, domain.ExamenGeneXpert:
	default:
		errs["tipo_examen"] = "tipo de examen inválido"
	}

	var fecha models.Fecha
	if in.FechaExamen == "" {
		errs["fecha_examen"] = "la fecha del examen es obligatoria"
	} else if f, err := models.ParseFecha(in.FechaExamen); err != nil {
		errs["fecha_examen"] = "fecha inválida: se espera YYYY-MM-DD"
	} else if models.NuevaFecha(time.Now()).Antes(f) {
		errs["fecha_examen"] = "la fecha del examen no puede ser futura"
	} else {
		fecha = f
	}

	if len(errs) == 0 {
		return fecha, nil
	}
	return fecha, errs
}

// ListByContacto handles GET /contactos/:id/examenes.
func (h *ExamenHandler) ListByContacto(c *gin.Context) {
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

// GetByID handles GET /examenes/:id.
func (h *ExamenHandler) GetByID(c *gin.Context) {
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
		respondError(c, http.StatusNotFound, "examen no encontrado")
		return
	}
	respondOK(c, http.StatusOK, e)
}

// Create handles POST /examenes.
func (h *ExamenHandler) Create(c *gin.Context) {
	var in examenInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}
	fecha, errs := h.validar(&in)
	if errs != nil {
		respondValidacion(c, errs)
		return
	}
	e := &models.ExamenContacto{
		ContactoID:  in.ContactoID,
		TipoExamen:  in.TipoExamen,
		Resultado:   strings.TrimSpace(in.Resultado),
		FechaExamen: fecha,
		AdjuntoURL:  in.AdjuntoURL,
		Observacion: in.Observacion,
	}
	if err := h.repo.Create(e); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo registrar el examen")
		return
	}
	respondOK(c, http.StatusCreated, e)
}

// Update handles PUT /examenes/:id.
func (h *ExamenHandler) Update(c *gin.Context) {
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
		respondError(c, http.StatusNotFound, "examen no encontrado")
		return
	}
	var in examenInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}
	fecha, errs := h.validar(&in)
	if errs != nil {
		respondValidacion(c, errs)
		return
	}
	e.ContactoID = in.ContactoID
	e.TipoExamen = in.TipoExamen
	e.Resultado = strings.TrimSpace(in.Resultado)
	e.FechaExamen = fecha
	e.AdjuntoURL = in.AdjuntoURL
	e.Observacion = in.Observacion
	if err := h.repo.Update(e); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo actualizar el examen")
		return
	}
	respondOK(c, http.StatusOK, e)
}

// Delete handles DELETE /examenes/:id.
func (h *ExamenHandler) Delete(c *gin.Context) {
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
		respondError(c, http.StatusNotFound, "examen no encontrado")
		return
	}
	if err := h.repo.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo eliminar el examen")
		return
	}
	respondMensaje(c, "examen eliminado")
}
