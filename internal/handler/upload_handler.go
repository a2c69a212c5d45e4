package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-blog/internal/service"
	"go-blog/pkg/log"
)

// 图片在对象存储中的目录，按用途区分。
const (
	dirBackgroundImage = "background_image"
	dirHeadImage       = "head_image"
)

// maxImageSize 限制单张图片的大小（8 MB）。
const maxImageSize = 8 << 20

// UploadHandler 负责处理图片上传的 API 请求。
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler 创建一个新的 UploadHandler 实例。
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadAvatar 处理用户头像上传，需要登录。
// 返回的 URL 由前端随后通过更新资料接口写入用户信息。
func (h *UploadHandler) UploadAvatar(c *gin.Context) {
	h.upload(c, dirHeadImage)
}

// UploadBackground 处理站点背景图上传（管理后台）。
func (h *UploadHandler) UploadBackground(c *gin.Context) {
	h.upload(c, dirBackgroundImage)
}

func (h *UploadHandler) upload(c *gin.Context, dir string) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "缺少上传文件", "data": nil})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "图片大小超过限制", "data": nil})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("upload: Failed to open uploaded file", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "读取上传文件失败", "data": nil})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error("upload: Failed to read uploaded file", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "读取上传文件失败", "data": nil})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.uploadService.UploadImage(c.Request.Context(), dir, fileHeader.Filename, contentType, data)
	if err != nil {
		log.Error("upload: Failed to upload image", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "图片上传失败", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{"url": url}})
}
