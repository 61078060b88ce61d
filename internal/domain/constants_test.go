package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransicionValida(t *testing.T) {
	casos := []struct {
		desde, hacia string
		ok           bool
	}{
		{EstadoPendiente, EstadoAceptada, true},
		{EstadoPendiente, EstadoRechazada, true},
		{EstadoAceptada, EstadoCompletada, true},
		{EstadoPendiente, EstadoCompletada, false},
		{EstadoAceptada, EstadoRechazada, false},
		{EstadoAceptada, EstadoPendiente, false},
		{EstadoRechazada, EstadoAceptada, false},
		{EstadoRechazada, EstadoCompletada, false},
		{EstadoCompletada, EstadoPendiente, false},
		{EstadoPendiente, EstadoPendiente, false},
		{"", EstadoAceptada, false},
		{EstadoPendiente, "", false},
	}
	for _, c := range casos {
		assert.Equal(t, c.ok, TransicionValida(c.desde, c.hacia), "%s -> %s", c.desde, c.hacia)
	}
}

func TestEstadosTerminales(t *testing.T) {
	assert.Empty(t, TransicionesEstado[EstadoRechazada])
	assert.Empty(t, TransicionesEstado[EstadoCompletada])
}
