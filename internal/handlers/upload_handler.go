package handlers

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"linkup/internal/services"
)

type UploadHandler struct {
	uploads services.UploadService
}

func NewUploadHandler(uploads services.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// @Summary      Upload a profile image
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar  formData  file  true  "Image file"
// @Success      200     {object}  map[string]string
// @Failure      400     {object}  map[string]string
// @Router       /upload/profile [post]
func (h *UploadHandler) UploadProfileImage(c *gin.Context) {
	h.upload(c, "avatar", "uploads")
}

// @Summary      Upload a post image
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "Image file"
// @Success      200    {object}  map[string]string
// @Failure      400    {object}  map[string]string
// @Router       /upload/post [post]
func (h *UploadHandler) UploadPostImage(c *gin.Context) {
	h.upload(c, "image", "post")
}

func (h *UploadHandler) upload(c *gin.Context, field, folder string) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only image uploads are allowed"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Upload failed"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Upload failed"})
		return
	}

	url, err := h.uploads.Upload(c.Request.Context(), folder, fileHeader.Filename, contentType, data)
	if err != nil {
		log.Printf("[upload][%s] failed: %v", folder, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image uploaded successfully", "url": url})
}
