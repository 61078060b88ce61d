package service

import (
	"errors"
	"testing"
	"time"

	"sivitb/internal/domain"
	"sivitb/internal/models"
	"sivitb/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() DerivacionInput {
	return DerivacionInput{
		Tipo:                     domain.TipoDerivacion,
		ContactoID:               1,
		EstablecimientoOrigenID:  10,
		EstablecimientoDestinoID: 20,
		Motivo:                   "contacto sintomático requiere evaluación",
		FechaSolicitud:           models.NuevaFecha(time.Now()).String(),
	}
}

func newTestService(repo *mockDerivacionRepo) (*DerivacionService, *mockNotifier) {
	notifier := &mockNotifier{}
	svc := NewDerivacionService(
		repo,
		&mockContactoFinder{ExistsFn: func(id uint) (bool, error) { return id == 1, nil }},
		&mockEstablecimientoFinder{ExistsActivoFn: func(id uint) (bool, error) { return id == 10 || id == 20, nil }},
		notifier,
	)
	return svc, notifier
}

func TestCrearDerivacion(t *testing.T) {
	var creado *models.DerivacionTransferencia
	repo := &mockDerivacionRepo{
		CreateFn: func(d *models.DerivacionTransferencia) error {
			d.ID = 7
			creado = d
			return nil
		},
		GetByIDFn: func(id uint) (*models.DerivacionTransferencia, error) {
			return creado, nil
		},
	}
	svc, notifier := newTestService(repo)

	d, err := svc.Crear(validInput(), 42)
	require.NoError(t, err)
	assert.Equal(t, domain.EstadoPendiente, d.Estado)
	assert.Nil(t, d.FechaAceptacion)
	assert.Equal(t, uint(42), d.UsuarioSolicitaID)
	assert.NotEmpty(t, d.CodigoSeguimiento)
	assert.Equal(t, []string{domain.NotifDerivacionCreada}, notifier.eventos)
}

func TestCrearRechazaOrigenIgualDestino(t *testing.T) {
	svc, _ := newTestService(&mockDerivacionRepo{})

	in := validInput()
	in.EstablecimientoDestinoID = in.EstablecimientoOrigenID

	_, err := svc.Crear(in, 1)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Campos, "establecimiento_destino_id")
}

func TestCrearRechazaCamposObligatorios(t *testing.T) {
	svc, _ := newTestService(&mockDerivacionRepo{})

	_, err := svc.Crear(DerivacionInput{}, 1)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	for _, campo := range []string{"tipo", "motivo", "contacto_id", "establecimiento_origen_id", "establecimiento_destino_id", "fecha_solicitud"} {
		assert.Contains(t, verr.Campos, campo)
	}
}

func TestCrearRechazaTipoDesconocido(t *testing.T) {
	svc, _ := newTestService(&mockDerivacionRepo{})

	in := validInput()
	in.Tipo = "Traslado"

	_, err := svc.Crear(in, 1)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Campos, "tipo")
}

func TestCrearRechazaContactoInexistente(t *testing.T) {
	svc, _ := newTestService(&mockDerivacionRepo{})

	in := validInput()
	in.ContactoID = 999

	_, err := svc.Crear(in, 1)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "el contacto no existe", verr.Campos["contacto_id"])
}

func TestCrearRechazaFechaFutura(t *testing.T) {
	svc, _ := newTestService(&mockDerivacionRepo{})

	in := validInput()
	in.FechaSolicitud = models.NuevaFecha(time.Now().AddDate(0, 0, 3)).String()

	_, err := svc.Crear(in, 1)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Campos, "fecha_solicitud")
}

func TestCrearRechazaFechaMalFormada(t *testing.T) {
	svc, _ := newTestService(&mockDerivacionRepo{})

	in := validInput()
	in.FechaSolicitud = "15/01/2026"

	_, err := svc.Crear(in, 1)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Campos, "fecha_solicitud")
}

func TestAceptarDesdePendiente(t *testing.T) {
	estado := domain.EstadoPendiente
	var stamped map[string]interface{}
	repo := &mockDerivacionRepo{
		GetByIDFn: func(id uint) (*models.DerivacionTransferencia, error) {
			return &models.DerivacionTransferencia{ID: id, Estado: estado}, nil
		},
		TransitionFn: func(id uint, desde string, campos map[string]interface{}) (bool, error) {
			assert.Equal(t, domain.EstadoPendiente, desde)
			stamped = campos
			estado = domain.EstadoAceptada
			return true, nil
		},
	}
	svc, notifier := newTestService(repo)

	d, err := svc.Aceptar(5, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.EstadoAceptada, d.Estado)
	assert.Equal(t, domain.EstadoAceptada, stamped["estado"])
	assert.Equal(t, uint(9), stamped["usuario_acepta_id"])
	assert.Contains(t, stamped, "fecha_aceptacion")
	assert.Equal(t, []string{domain.NotifDerivacionAceptada}, notifier.eventos)
}

func TestAceptarSoloDesdePendiente(t *testing.T) {
	for _, estado := range []string{domain.EstadoAceptada, domain.EstadoRechazada, domain.EstadoCompletada} {
		repo := &mockDerivacionRepo{
			GetByIDFn: func(id uint) (*models.DerivacionTransferencia, error) {
				return &models.DerivacionTransferencia{ID: id, Estado: estado}, nil
			},
		}
		svc, notifier := newTestService(repo)

		_, err := svc.Aceptar(5, 9)
		assert.ErrorIs(t, err, ErrConflictoEstado, "estado %s", estado)
		assert.Empty(t, notifier.eventos)
	}
}

func TestRechazarGuardaMotivoAparte(t *testing.T) {
	var stamped map[string]interface{}
	repo := &mockDerivacionRepo{
		GetByIDFn: func(id uint) (*models.DerivacionTransferencia, error) {
			return &models.DerivacionTransferencia{ID: id, Estado: domain.EstadoPendiente, Motivo: "motivo original"}, nil
		},
		TransitionFn: func(id uint, desde string, campos map[string]interface{}) (bool, error) {
			stamped = campos
			return true, nil
		},
	}
	svc, _ := newTestService(repo)

	_, err := svc.Rechazar(5, 9, "no hay cupo en el establecimiento")
	require.NoError(t, err)
	assert.Equal(t, "no hay cupo en el establecimiento", stamped["motivo_rechazo"])
	_, tocaMotivo := stamped["motivo"]
	assert.False(t, tocaMotivo)
}

func TestRechazarExigeMotivo(t *testing.T) {
	svc, _ := newTestService(&mockDerivacionRepo{})

	_, err := svc.Rechazar(5, 9, "   ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Campos, "motivo")
}

func TestCompletarSoloDesdeAceptada(t *testing.T) {
	repo := &mockDerivacionRepo{
		GetByIDFn: func(id uint) (*models.DerivacionTransferencia, error) {
			return &models.DerivacionTransferencia{ID: id, Estado: domain.EstadoPendiente}, nil
		},
	}
	svc, _ := newTestService(repo)

	_, err := svc.Completar(5, 9)
	assert.ErrorIs(t, err, ErrConflictoEstado)
}

func TestCompletarDesdeAceptada(t *testing.T) {
	estado := domain.EstadoAceptada
	repo := &mockDerivacionRepo{
		GetByIDFn: func(id uint) (*models.DerivacionTransferencia, error) {
			return &models.DerivacionTransferencia{ID: id, Estado: estado}, nil
		},
		TransitionFn: func(id uint, desde string, campos map[string]interface{}) (bool, error) {
			assert.Equal(t, domain.EstadoAceptada, desde)
			estado = domain.EstadoCompletada
			return true, nil
		},
	}
	svc, notifier := newTestService(repo)

	d, err := svc.Completar(5, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.EstadoCompletada, d.Estado)
	assert.Equal(t, []string{domain.NotifDerivacionCompletada}, notifier.eventos)
}

func TestTransicionPerdidaPorCarrera(t *testing.T) {
	repo := &mockDerivacionRepo{
		GetByIDFn: func(id uint) (*models.DerivacionTransferencia, error) {
			return &models.DerivacionTransferencia{ID: id, Estado: domain.EstadoPendiente}, nil
		},
		TransitionFn: func(id uint, desde string, campos map[string]interface{}) (bool, error) {
			// another caller moved the record first
			return false, nil
		},
	}
	svc, notifier := newTestService(repo)

	_, err := svc.Aceptar(5, 9)
	assert.ErrorIs(t, err, ErrConflictoEstado)
	assert.Empty(t, notifier.eventos)
}

func TestTransicionSobreInexistente(t *testing.T) {
	repo := &mockDerivacionRepo{
		GetByIDFn: func(id uint) (*models.DerivacionTransferencia, error) {
			return nil, nil
		},
	}
	svc, _ := newTestService(repo)

	_, err := svc.Aceptar(999, 9)
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestActualizarNoTocaEstado(t *testing.T) {
	actual := &models.DerivacionTransferencia{
		ID:                       5,
		Tipo:                     domain.TipoDerivacion,
		ContactoID:               1,
		EstablecimientoOrigenID:  10,
		EstablecimientoDestinoID: 20,
		Motivo:                   "motivo original",
		Estado:                   domain.EstadoAceptada,
		FechaSolicitud:           models.NuevaFecha(time.Now()),
	}
	repo := &mockDerivacionRepo{
		GetByIDFn: func(id uint) (*models.DerivacionTransferencia, error) {
			copia := *actual
			return &copia, nil
		},
		UpdateFn: func(d *models.DerivacionTransferencia) error {
			actual = d
			return nil
		},
	}
	svc, _ := newTestService(repo)

	in := validInput()
	in.Motivo = "motivo corregido"
	d, err := svc.Actualizar(5, in)
	require.NoError(t, err)
	assert.Equal(t, "motivo corregido", d.Motivo)
	assert.Equal(t, domain.EstadoAceptada, d.Estado)
}

func TestActualizarInexistente(t *testing.T) {
	repo := &mockDerivacionRepo{
		GetByIDFn: func(id uint) (*models.DerivacionTransferencia, error) { return nil, nil },
	}
	svc, _ := newTestService(repo)

	_, err := svc.Actualizar(999, validInput())
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestEliminarInexistente(t *testing.T) {
	repo := &mockDerivacionRepo{
		GetByIDFn: func(id uint) (*models.DerivacionTransferencia, error) { return nil, nil },
	}
	svc, _ := newTestService(repo)

	err := svc.Eliminar(999)
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestEliminar(t *testing.T) {
	var deleted uint
	repo := &mockDerivacionRepo{
		GetByIDFn: func(id uint) (*models.DerivacionTransferencia, error) {
			return &models.DerivacionTransferencia{ID: id, Estado: domain.EstadoCompletada}, nil
		},
		DeleteFn: func(id uint) error {
			deleted = id
			return nil
		},
	}
	svc, _ := newTestService(repo)

	require.NoError(t, svc.Eliminar(5))
	assert.Equal(t, uint(5), deleted)
}

func TestListarPaginacion(t *testing.T) {
	repo := &mockDerivacionRepo{
		ListFn: func(f repository.DerivacionFiltros, page, limit int) ([]models.DerivacionTransferencia, int64, error) {
			assert.Equal(t, 2, page)
			assert.Equal(t, 10, limit)
			return make([]models.DerivacionTransferencia, 10), 25, nil
		},
	}
	svc, _ := newTestService(repo)

	list, pag, err := svc.Listar(repository.DerivacionFiltros{Estado: domain.EstadoPendiente}, 2, 10)
	require.NoError(t, err)
	assert.Len(t, list, 10)
	assert.Equal(t, int64(25), pag.Total)
	assert.Equal(t, 3, pag.TotalPages)
}

func TestListarNormalizaPaginacion(t *testing.T) {
	repo := &mockDerivacionRepo{
		ListFn: func(f repository.DerivacionFiltros, page, limit int) ([]models.DerivacionTransferencia, int64, error) {
			assert.Equal(t, 1, page)
			assert.Equal(t, 20, limit)
			return nil, 0, nil
		},
	}
	svc, _ := newTestService(repo)

	_, pag, err := svc.Listar(repository.DerivacionFiltros{}, 0, 5000)
	require.NoError(t, err)
	assert.Equal(t, 1, pag.Page)
	assert.Equal(t, 20, pag.Limit)
	assert.Equal(t, 0, pag.TotalPages)
}

func TestPorIDInexistente(t *testing.T) {
	repo := &mockDerivacionRepo{
		GetByIDFn: func(id uint) (*models.DerivacionTransferencia, error) { return nil, nil },
	}
	svc, _ := newTestService(repo)

	_, err := svc.PorID(404)
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestErroresDeRepoSePropagan(t *testing.T) {
	boom := errors.New("conexión perdida")
	repo := &mockDerivacionRepo{
		GetByIDFn: func(id uint) (*models.DerivacionTransferencia, error) { return nil, boom },
	}
	svc, _ := newTestService(repo)

	_, err := svc.PorID(1)
	assert.ErrorIs(t, err, boom)
}

// Full lifecycle over an in-memory store: create, accept, complete.
func TestCicloCompleto(t *testing.T) {
	store := map[uint]*models.DerivacionTransferencia{}
	var nextID uint
	repo := &mockDerivacionRepo{
		CreateFn: func(d *models.DerivacionTransferencia) error {
			nextID++
			d.ID = nextID
			store[d.ID] = d
			return nil
		},
		GetByIDFn: func(id uint) (*models.DerivacionTransferencia, error) {
			d, ok := store[id]
			if !ok {
				return nil, nil
			}
			copia := *d
			return &copia, nil
		},
		TransitionFn: func(id uint, desde string, campos map[string]interface{}) (bool, error) {
			d, ok := store[id]
			if !ok || d.Estado != desde {
				return false, nil
			}
			d.Estado = campos["estado"].(string)
			if f, ok := campos["fecha_aceptacion"].(models.Fecha); ok {
				d.FechaAceptacion = &f
			}
			if u, ok := campos["usuario_acepta_id"].(uint); ok {
				d.UsuarioAceptaID = &u
			}
			return true, nil
		},
	}
	svc, notifier := newTestService(repo)

	creada, err := svc.Crear(validInput(), 1)
	require.NoError(t, err)
	require.Equal(t, domain.EstadoPendiente, creada.Estado)

	aceptada, err := svc.Aceptar(creada.ID, 2)
	require.NoError(t, err)
	require.Equal(t, domain.EstadoAceptada, aceptada.Estado)
	require.NotNil(t, aceptada.FechaAceptacion)
	require.NotNil(t, aceptada.UsuarioAceptaID)
	assert.Equal(t, uint(2), *aceptada.UsuarioAceptaID)

	// a second accept must now fail
	_, err = svc.Aceptar(creada.ID, 3)
	assert.ErrorIs(t, err, ErrConflictoEstado)

	completada, err := svc.Completar(creada.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.EstadoCompletada, completada.Estado)

	assert.Equal(t, []string{
		domain.NotifDerivacionCreada,
		domain.NotifDerivacionAceptada,
		domain.NotifDerivacionCompletada,
	}, notifier.eventos)
}
