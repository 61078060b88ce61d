package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sivitb/internal/domain"
	"sivitb/internal/models"
	"sivitb/internal/repository"
	"sivitb/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memAuditLogger struct {
	entradas []models.AuditLog
}

func (m *memAuditLogger) Log(entry *models.AuditLog) error {
	m.entradas = append(m.entradas, *entry)
	return nil
}

type memDerivacionRepo struct {
	store  map[uint]*models.DerivacionTransferencia
	nextID uint
}

func newMemDerivacionRepo() *memDerivacionRepo {
	return &memDerivacionRepo{store: map[uint]*models.DerivacionTransferencia{}}
}

func (m *memDerivacionRepo) Create(d *models.DerivacionTransferencia) error {
	m.nextID++
	d.ID = m.nextID
	m.store[d.ID] = d
	return nil
}

func (m *memDerivacionRepo) GetByID(id uint) (*models.DerivacionTransferencia, error) {
	d, ok := m.store[id]
	if !ok {
		return nil, nil
	}
	copia := *d
	return &copia, nil
}

func (m *memDerivacionRepo) Update(d *models.DerivacionTransferencia) error {
	m.store[d.ID] = d
	return nil
}

func (m *memDerivacionRepo) Transition(id uint, desde string, campos map[string]interface{}) (bool, error) {
	d, ok := m.store[id]
	if !ok || d.Estado != desde {
		return false, nil
	}
	if e, ok := campos["estado"].(string); ok {
		d.Estado = e
	}
	if f, ok := campos["fecha_aceptacion"].(models.Fecha); ok {
		d.FechaAceptacion = &f
	}
	if u, ok := campos["usuario_acepta_id"].(uint); ok {
		d.UsuarioAceptaID = &u
	}
	if mr, ok := campos["motivo_rechazo"].(string); ok {
		d.MotivoRechazo = mr
	}
	return true, nil
}

func (m *memDerivacionRepo) Delete(id uint) error {
	delete(m.store, id)
	return nil
}

func (m *memDerivacionRepo) List(f repository.DerivacionFiltros, page, limit int) ([]models.DerivacionTransferencia, int64, error) {
	var out []models.DerivacionTransferencia
	for _, d := range m.store {
		if f.Estado != "" && d.Estado != f.Estado {
			continue
		}
		if f.Tipo != "" && d.Tipo != f.Tipo {
			continue
		}
		if f.ContactoID != 0 && d.ContactoID != f.ContactoID {
			continue
		}
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (m *memDerivacionRepo) ListByContactoID(contactoID uint) ([]models.DerivacionTransferencia, error) {
	var out []models.DerivacionTransferencia
	for _, d := range m.store {
		if d.ContactoID == contactoID {
			out = append(out, *d)
		}
	}
	return out, nil
}

type siempreExiste struct{}

func (siempreExiste) Exists(id uint) (bool, error)       { return true, nil }
func (siempreExiste) ExistsActivo(id uint) (bool, error) { return true, nil }

func setupDerivacionRouter(repo *memDerivacionRepo, audit *memAuditLogger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewDerivacionService(repo, siempreExiste{}, siempreExiste{}, nil)
	h := NewDerivacionHandler(svc, audit)

	r := gin.New()
	// stand-in for the auth middleware
	r.Use(func(c *gin.Context) {
		c.Set("usuario_id", uint(42))
		c.Set("rol", domain.RoleMedico)
	})
	g := r.Group("/api/v1/derivaciones-transferencias")
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.GET("/contacto/:contactoId", h.GetByContacto)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.PUT("/:id/aceptar", h.Aceptar)
	g.PUT("/:id/rechazar", h.Rechazar)
	g.PUT("/:id/completar", h.Completar)
	g.DELETE("/:id", h.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func cuerpoValido() map[string]interface{} {
	return map[string]interface{}{
		"tipo":                       domain.TipoDerivacion,
		"contacto_id":                1,
		"establecimiento_origen_id":  10,
		"establecimiento_destino_id": 20,
		"motivo":                     "evaluación de contacto sintomático",
		"fecha_solicitud":            models.NuevaFecha(time.Now()).String(),
	}
}

func TestCrearEndpoint(t *testing.T) {
	audit := &memAuditLogger{}
	r := setupDerivacionRouter(newMemDerivacionRepo(), audit)

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/derivaciones-transferencias", cuerpoValido())
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, resp["success"])

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, domain.EstadoPendiente, data["estado"])
	assert.Nil(t, data["fecha_aceptacion"])
	assert.NotEmpty(t, data["codigo_seguimiento"])

	require.Len(t, audit.entradas, 1)
	assert.Equal(t, "DERIVACION_CREAR", audit.entradas[0].Accion)
}

func TestCrearEndpointValidacion(t *testing.T) {
	r := setupDerivacionRouter(newMemDerivacionRepo(), &memAuditLogger{})

	body := cuerpoValido()
	body["establecimiento_destino_id"] = body["establecimiento_origen_id"]
	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/derivaciones-transferencias", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
	errores := resp["errors"].(map[string]interface{})
	assert.Contains(t, errores, "establecimiento_destino_id")
}

func TestAceptarEndpoint(t *testing.T) {
	repo := newMemDerivacionRepo()
	audit := &memAuditLogger{}
	r := setupDerivacionRouter(repo, audit)

	_, resp := doJSON(t, r, http.MethodPost, "/api/v1/derivaciones-transferencias", cuerpoValido())
	id := resp["data"].(map[string]interface{})["id"].(float64)
	require.Equal(t, float64(1), id)

	w, resp := doJSON(t, r, http.MethodPut, "/api/v1/derivaciones-transferencias/1/aceptar", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, domain.EstadoAceptada, data["estado"])
	assert.NotNil(t, data["fecha_aceptacion"])

	// second accept conflicts
	w, resp = doJSON(t, r, http.MethodPut, "/api/v1/derivaciones-transferencias/1/aceptar", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestRechazarEndpoint(t *testing.T) {
	repo := newMemDerivacionRepo()
	r := setupDerivacionRouter(repo, &memAuditLogger{})

	doJSON(t, r, http.MethodPost, "/api/v1/derivaciones-transferencias", cuerpoValido())

	w, resp := doJSON(t, r, http.MethodPut, "/api/v1/derivaciones-transferencias/1/rechazar",
		map[string]interface{}{"motivo": "sin capacidad de atención"})
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, domain.EstadoRechazada, data["estado"])
	assert.Equal(t, "sin capacidad de atención", data["motivo_rechazo"])
	assert.Equal(t, "evaluación de contacto sintomático", data["motivo"])
}

func TestRechazarEndpointSinMotivo(t *testing.T) {
	repo := newMemDerivacionRepo()
	r := setupDerivacionRouter(repo, &memAuditLogger{})

	doJSON(t, r, http.MethodPost, "/api/v1/derivaciones-transferencias", cuerpoValido())

	w, resp := doJSON(t, r, http.MethodPut, "/api/v1/derivaciones-transferencias/1/rechazar",
		map[string]interface{}{"motivo": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
	errores := resp["errors"].(map[string]interface{})
	assert.Contains(t, errores, "motivo")
}

func TestCompletarEndpointRequiereAceptada(t *testing.T) {
	repo := newMemDerivacionRepo()
	r := setupDerivacionRouter(repo, &memAuditLogger{})

	doJSON(t, r, http.MethodPost, "/api/v1/derivaciones-transferencias", cuerpoValido())

	w, _ := doJSON(t, r, http.MethodPut, "/api/v1/derivaciones-transferencias/1/completar", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	doJSON(t, r, http.MethodPut, "/api/v1/derivaciones-transferencias/1/aceptar", nil)
	w, resp := doJSON(t, r, http.MethodPut, "/api/v1/derivaciones-transferencias/1/completar", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.EstadoCompletada, resp["data"].(map[string]interface{})["estado"])
}

func TestGetByIDEndpointInexistente(t *testing.T) {
	r := setupDerivacionRouter(newMemDerivacionRepo(), &memAuditLogger{})

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/derivaciones-transferencias/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestDeleteEndpoint(t *testing.T) {
	repo := newMemDerivacionRepo()
	r := setupDerivacionRouter(repo, &memAuditLogger{})

	doJSON(t, r, http.MethodPost, "/api/v1/derivaciones-transferencias", cuerpoValido())

	w, _ := doJSON(t, r, http.MethodDelete, "/api/v1/derivaciones-transferencias/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, "/api/v1/derivaciones-transferencias/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListEndpointEnvelope(t *testing.T) {
	repo := newMemDerivacionRepo()
	r := setupDerivacionRouter(repo, &memAuditLogger{})

	doJSON(t, r, http.MethodPost, "/api/v1/derivaciones-transferencias", cuerpoValido())
	doJSON(t, r, http.MethodPost, "/api/v1/derivaciones-transferencias", cuerpoValido())

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/derivaciones-transferencias?estado=Pendiente", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Len(t, resp["data"], 2)

	pag := resp["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pag["total"])
	assert.Equal(t, float64(1), pag["totalPages"])
	assert.Equal(t, float64(1), pag["page"])
	assert.Equal(t, float64(20), pag["limit"])
}

func TestIDInvalido(t *testing.T) {
	r := setupDerivacionRouter(newMemDerivacionRepo(), &memAuditLogger{})

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/derivaciones-transferencias/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
}
