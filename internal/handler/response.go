package handler

import (
	"errors"
	"net/http"
	"strconv"

	"sivitb/internal/service"

	"github.com/gin-gonic/gin"
)

// Success/error envelope shared by every endpoint:
//   { success: true, data, [pagination] }
//   { success: false, message, [errors] }

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondPaginado(c *gin.Context, data interface{}, p *service.Paginacion) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "pagination": p})
}

func respondMensaje(c *gin.Context, mensaje string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": mensaje})
}

func respondError(c *gin.Context, status int, mensaje string) {
	c.JSON(status, gin.H{"success": false, "message": mensaje})
}

func respondValidacion(c *gin.Context, campos map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "datos inválidos", "errors": campos})
}

// respondServiceError maps service-layer failures onto the envelope.
func respondServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondValidacion(c, verr.Campos)
	case errors.Is(err, service.ErrNoEncontrado):
		respondError(c, http.StatusNotFound, "registro no encontrado")
	case errors.Is(err, service.ErrConflictoEstado):
		respondError(c, http.StatusConflict, "transición de estado no permitida")
	default:
		respondError(c, http.StatusInternalServerError, "error interno")
	}
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "identificador inválido")
		return 0, false
	}
	return uint(id), true
}

func parseUintQuery(c *gin.Context, name string) uint {
	v, _ := strconv.ParseUint(c.Query(name), 10, 64)
	return uint(v)
}
