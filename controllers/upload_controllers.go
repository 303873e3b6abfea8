package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodiego/services"
)

type UploadController struct {
	uploads *services.UploadService
}

func NewUploadController(uploads *services.UploadService) *UploadController {
	return &UploadController{uploads: uploads}
}

// Upload stores the multipart "file" field and answers {url}.
func (uc *UploadController) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondActionError(c, services.ErrNoFile)
		return
	}

	name, path, err := uc.uploads.Destination(file)
	if err != nil {
		respondActionError(c, err)
		return
	}

	if err := c.SaveUploadedFile(file, path); err != nil {
		respondActionError(c, services.UploadError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": services.UploadURL(name)})
}
