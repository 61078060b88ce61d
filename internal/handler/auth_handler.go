package handler

import (
	"errors"
	"net/http"
	"strconv"

	"sivitb/internal/middleware"
	"sivitb/internal/models"
	"sivitb/internal/repository"
	"sivitb/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc   *service.AuthService
	auditRepo repository.AuditLogger
}

func NewAuthHandler(authSvc *service.AuthService, auditRepo repository.AuditLogger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, auditRepo: auditRepo}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "email y contraseña son obligatorios")
		return
	}
	u, access, refresh, err := h.authSvc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrCredencialesInvalidas) || errors.Is(err, service.ErrUsuarioInactivo) {
			respondError(c, http.StatusUnauthorized, "credenciales inválidas")
			return
		}
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	_ = h.auditRepo.Log(&models.AuditLog{
		UsuarioID: &u.ID,
		Accion:    "LOGIN",
		Recurso:   "usuarios",
		RecursoID: strconv.FormatUint(uint64(u.ID), 10),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	respondOK(c, http.StatusOK, gin.H{
		"usuario":       u,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// Register handles POST /auth/register (admin only).
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Nombre            string `json:"nombre" binding:"required"`
		Email             string `json:"email" binding:"required,email"`
		Password          string `json:"password" binding:"required,min=8"`
		Rol               string `json:"rol" binding:"required"`
		EstablecimientoID *uint  `json:"establecimiento_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "datos de registro inválidos")
		return
	}
	u, err := h.authSvc.Register(req.Nombre, req.Email, req.Password, req.Rol, req.EstablecimientoID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExiste):
			respondValidacion(c, map[string]string{"email": "el email ya está registrado"})
		case errors.Is(err, service.ErrRolInvalido):
			respondValidacion(c, map[string]string{"rol": "rol inválido"})
		default:
			respondError(c, http.StatusInternalServerError, "error interno")
		}
		return
	}
	respondOK(c, http.StatusCreated, u)
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "refresh_token es obligatorio")
		return
	}
	access, err := h.authSvc.Refresh(req.RefreshToken)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "token inválido o expirado")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"access_token": access})
}

// ChangePassword handles PATCH /auth/change-password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		PasswordActual string `json:"password_actual" binding:"required"`
		PasswordNueva  string `json:"password_nueva" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "contraseña actual y nueva son obligatorias")
		return
	}
	usuarioID := middleware.GetUsuarioID(c)
	if err := h.authSvc.ChangePassword(usuarioID, req.PasswordActual, req.PasswordNueva); err != nil {
		if errors.Is(err, service.ErrCredencialesInvalidas) {
			respondError(c, http.StatusUnauthorized, "la contraseña actual no coincide")
			return
		}
		respondError(c, http.StatusInternalServerError, "error interno")
		return
	}
	respondMensaje(c, "contraseña actualizada")
}
