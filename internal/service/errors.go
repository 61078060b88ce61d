package service

import "errors"

var (
	// ErrNoEncontrado signals that the requested record (or a referenced
	// entity) does not exist.
	ErrNoEncontrado = errors.New("registro no encontrado")
	// ErrConflictoEstado signals an illegal or concurrently-lost state
	// transition.
	ErrConflictoEstado = errors.New("transición de estado no permitida")
)

// ValidationError carries per-field messages keyed by JSON field name, to be
// surfaced verbatim in the error envelope.
type ValidationError struct {
	Campos map[string]string
}

func (e *ValidationError) Error() string {
	return "datos inválidos"
}

func nuevaValidacion() *ValidationError {
	return &ValidationError{Campos: make(map[string]string)}
}

func (e *ValidationError) agregar(campo, mensaje string) {
	if _, ok := e.Campos[campo]; !ok {
		e.Campos[campo] = mensaje
	}
}

func (e *ValidationError) vacio() bool {
	return len(e.Campos) == 0
}
