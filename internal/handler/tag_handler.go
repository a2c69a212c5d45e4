package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-blog/internal/model"
	"go-blog/internal/service"
	"go-blog/pkg/log"
)

// TagHandler 负责处理文章标签相关的 API 请求。
type TagHandler struct {
	tagService service.TagService
}

// NewTagHandler 创建一个新的 TagHandler 实例。
func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// List 处理获取标签列表的请求。
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tagService.ListTags()
	if err != nil {
		log.Error("List: Failed to list tags", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取标签列表失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": tags})
}

// TagRequest 定义了创建/更新标签 API 的请求体结构。
type TagRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create 处理创建标签的请求（管理后台）。
func (h *TagHandler) Create(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Create: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	owner := c.MustGet("user").(*model.User)
	tag, err := h.tagService.CreateTag(req.Name, owner)
	if err != nil {
		if errors.Is(err, service.ErrTagNameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "标签名称已存在", "data": nil})
			return
		}
		log.Error("Create: Failed to create tag", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "创建标签失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": tag})
}

// Update 处理重命名标签的请求（管理后台）。
func (h *TagHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的标签 ID", "data": nil})
		return
	}

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	tag, err := h.tagService.UpdateTag(uint(id), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrTagNameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "标签名称已存在", "data": nil})
			return
		}
		log.Error("Update: Failed to update tag", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "更新标签失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": tag})
}

// Delete 处理删除标签的请求（管理后台，软删除）。
func (h *TagHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的标签 ID", "data": nil})
		return
	}
	if err := h.tagService.DeleteTag(uint(id)); err != nil {
		log.Error("Delete: Failed to delete tag", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "删除标签失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}
