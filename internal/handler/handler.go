package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AakashShah07/Web-Development-Assesment/internal/domain"
	"github.com/AakashShah07/Web-Development-Assesment/internal/repository"
	"github.com/AakashShah07/Web-Development-Assesment/internal/service"
)

type Handler struct {
	schools       service.SchoolService
	images        service.ImageService
	maxUploadSize int64
	log           *zap.Logger
}

func NewHandler(schools service.SchoolService, images service.ImageService, maxUploadSize int64, log *zap.Logger) *Handler {
	return &Handler{
		schools:       schools,
		images:        images,
		maxUploadSize: maxUploadSize,
		log:           log,
	}
}

func (h *Handler) ListSchools(c *gin.Context) {
	schools, err := h.schools.ListSchools(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to fetch schools", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schools"})
		return
	}

	c.JSON(http.StatusOK, schools)
}

func (h *Handler) CreateSchool(c *gin.Context) {
	var in domain.NewSchool
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id, err := h.schools.CreateSchool(c.Request.Context(), in)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
			return
		}
		h.log.Error("Error adding school", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add school"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "School added successfully", "id": id})
}

// uploadOverhead leaves room for multipart headers around the file.
const uploadOverhead = 1 << 20

func (h *Handler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize+uploadOverhead)

	file, err := c.FormFile("image")
	if isBodyTooLarge(err) {
		h.log.Warn("Upload body exceeds limit", zap.Int64("max_size", h.maxUploadSize))
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}
	if err != nil {
		h.log.Warn("Failed to get file from form", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}

	if file.Size > h.maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	f, err := file.Open()
	if err != nil {
		h.log.Error("Failed to open file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadSize+1))
	if err != nil {
		h.log.Error("Failed to read file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	image, err := h.images.StoreImage(c.Request.Context(), data, file.Filename)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Fields["image"]})
			return
		}
		h.log.Error("Failed to upload image", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Image uploaded successfully",
		"imagePath": image.Path,
		"path":      image.Path,
		"url":       image.Path,
		"image":     image,
	})
}

func isBodyTooLarge(err error) bool {
	if err == nil {
		return false
	}
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large")
}

// ServeImage streams a stored image for backends that are not on local disk.
func (h *Handler) ServeImage(c *gin.Context) {
	rc, err := h.images.Open(c.Request.Context(), c.Param("name"))
	if errors.Is(err, repository.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("Failed to read image", zap.String("name", c.Param("name")), zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(c.Param("name")))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, -1, contentType, rc, nil)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	if err := h.schools.Ping(c.Request.Context()); err != nil {
		h.log.Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "UNAVAILABLE"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
