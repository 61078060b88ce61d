package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"sivitb/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20

type UploadHandler struct {
	cld cloudinary.Client
}

func NewUploadHandler(cld cloudinary.Client) *UploadHandler {
	return &UploadHandler{cld: cld}
}

var allowedUploadExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".pdf":  true,
}

// UploadExamen handles POST /uploads/examenes: multipart "file" field, returns
// the Cloudinary URLs to attach to an exam record.
func (h *UploadHandler) UploadExamen(c *gin.Context) {
	if h.cld == nil {
		respondError(c, http.StatusServiceUnavailable, "el servicio de archivos no está configurado")
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "se espera un archivo en el campo 'file'")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respondError(c, http.StatusBadRequest, "el archivo supera el tamaño máximo de 10MB")
		return
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedUploadExt[ext] {
		respondError(c, http.StatusBadRequest, "formato no permitido: se aceptan jpg, png, webp o pdf")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo leer el archivo")
		return
	}
	defer f.Close()

	publicID := fmt.Sprintf("examen_%d_%s", time.Now().Unix(), uuid.New().String()[:8])
	url, thumbURL, err := h.cld.UploadImage(c.Request.Context(), f, "sivitb/examenes", publicID)
	if err != nil {
		respondError(c, http.StatusBadGateway, "no se pudo subir el archivo")
		return
	}
	respondOK(c, http.StatusCreated, gin.H{
		"url":           url,
		"thumbnail_url": thumbURL,
	})
}
