package auth

import (
	"testing"
	"time"

	"sivitb/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "secreto-acceso",
		RefreshSecret: "secreto-refresh",
		AccessExpiry:  30 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        "sivitb",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	est := uint(3)
	token, err := GenerateAccessToken(cfg, 42, "medico@sivitb.local", "MEDICO", &est)
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UsuarioID)
	assert.Equal(t, "medico@sivitb.local", claims.Email)
	assert.Equal(t, "MEDICO", claims.Rol)
	require.NotNil(t, claims.EstablecimientoID)
	assert.Equal(t, uint(3), *claims.EstablecimientoID)
}

func TestAccessTokenConSecretoAjeno(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateAccessToken(cfg, 1, "a@b.c", "ADMIN", nil)
	require.NoError(t, err)

	otro := testJWTConfig()
	otro.AccessSecret = "otro-secreto"
	_, err = ParseAccessToken(otro, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessTokenExpirado(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessExpiry = -time.Minute
	token, err := GenerateAccessToken(cfg, 1, "a@b.c", "ADMIN", nil)
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateRefreshToken(cfg, 42)
	require.NoError(t, err)

	id, err := ParseRefreshToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestRefreshTokenNoSirveComoAccess(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateRefreshToken(cfg, 42)
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseBasura(t *testing.T) {
	cfg := testJWTConfig()
	_, err := ParseAccessToken(cfg, "no-es-un-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
