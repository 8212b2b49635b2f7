package controllers

import (
	"leasedesk/response"
	"leasedesk/services"

	"github.com/gin-gonic/gin"
)

const uploadFolder = "uploads"

type UploadController struct {
	uploader services.Uploader
}

func NewUploadController(uploader services.Uploader) UploadController {
	return UploadController{uploader: uploader}
}

// UploadFiles godoc
// @Summary Upload một hoặc nhiều file (trường files hoặc file)
// @Tags uploads
// @Accept mpfd
// @Success 200 {object} response.Response
// @Router /uploads [post]
func (uc UploadController) UploadFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Form không hợp lệ")
		return
	}
	headers := append(form.File["files"], form.File["file"]...)
	if len(headers) == 0 {
		response.BadRequest(c, "Không có file nào được gửi lên")
		return
	}
	files, closeFiles, ok := openFiles(c, headers)
	if !ok {
		return
	}
	defer closeFiles()

	results, err := services.UploadAll(c.Request.Context(), uc.uploader, files, uploadFolder)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, results)
}
