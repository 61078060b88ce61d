package middleware

import (
	"net/http"
	"strings"

	"sivitb/config"
	"sivitb/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and sets the caller identity in context.
func AuthRequired(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "falta el encabezado de autorización"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "formato de autorización inválido"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "token inválido o expirado"})
			return
		}
		c.Set("usuario_id", claims.UsuarioID)
		c.Set("email", claims.Email)
		c.Set("rol", claims.Rol)
		c.Set("claims", claims)
		c.Next()
	}
}

// RequireRole checks that the authenticated user has one of the allowed roles.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rol, exists := c.Get("rol")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "no autenticado"})
			return
		}
		r := rol.(string)
		for _, a := range allowed {
			if r == a {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "permisos insuficientes"})
	}
}

// GetUsuarioID returns the authenticated user ID from context (must be used after AuthRequired).
func GetUsuarioID(c *gin.Context) uint {
	v, _ := c.Get("usuario_id")
	if v == nil {
		return 0
	}
	return v.(uint)
}

// GetClaims returns the parsed token claims, or nil outside an authenticated request.
func GetClaims(c *gin.Context) *auth.Claims {
	v, _ := c.Get("claims")
	claims, _ := v.(*auth.Claims)
	return claims
}
