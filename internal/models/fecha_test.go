package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFechaJSON(t *testing.T) {
	f, err := ParseFecha("2026-01-15")
	require.NoError(t, err)

	b, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, `"2026-01-15"`, string(b))

	var otra Fecha
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-02"`), &otra))
	assert.Equal(t, "2026-03-02", otra.String())
}

func TestFechaJSONRechazaFormatosAjenos(t *testing.T) {
	var f Fecha
	for _, raw := range []string{`"15/01/2026"`, `"2026-13-40"`, `"ayer"`} {
		assert.Error(t, json.Unmarshal([]byte(raw), &f), raw)
	}
}

func TestFechaJSONNull(t *testing.T) {
	var f Fecha
	require.NoError(t, json.Unmarshal([]byte(`null`), &f))
	assert.True(t, f.IsZero())
}

func TestFechaScan(t *testing.T) {
	var f Fecha
	require.NoError(t, f.Scan(time.Date(2026, 2, 10, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "2026-02-10", f.String())

	require.NoError(t, f.Scan([]byte("2026-02-11")))
	assert.Equal(t, "2026-02-11", f.String())

	require.NoError(t, f.Scan("2026-02-12"))
	assert.Equal(t, "2026-02-12", f.String())

	require.NoError(t, f.Scan(nil))
	assert.Error(t, f.Scan(42))
}

func TestFechaValue(t *testing.T) {
	f, _ := ParseFecha("2026-02-10")
	v, err := f.Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-02-10", v)
}

func TestNuevaFechaDescartaHora(t *testing.T) {
	f := NuevaFecha(time.Date(2026, 5, 20, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, "2026-05-20", f.String())
}

func TestAntes(t *testing.T) {
	a, _ := ParseFecha("2026-01-01")
	b, _ := ParseFecha("2026-01-02")
	assert.True(t, a.Antes(b))
	assert.False(t, b.Antes(a))
	assert.False(t, a.Antes(a))
}
