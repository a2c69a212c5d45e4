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

// CategoryHandler 负责处理文章分类相关的 API 请求。
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler 创建一个新的 CategoryHandler 实例。
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Tree 处理获取导航分类树的请求。
func (h *CategoryHandler) Tree(c *gin.Context) {
	root, _ := strconv.ParseUint(c.DefaultQuery("root", "0"), 10, 64)
	tree, err := h.categoryService.CategoryTree(uint(root))
	if err != nil {
		log.Error("Tree: Failed to build category tree", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取分类树失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": tree})
}

// List 处理获取分类列表的请求（管理后台）。
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		log.Error("List: Failed to list categories", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取分类列表失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": categories})
}

// CategoryRequest 定义了创建/更新分类 API 的请求体结构。
type CategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID *uint  `json:"parentId"`
	IsNav    bool   `json:"isNav"`
	Sort     uint   `json:"sort"`
}

// Create 处理创建分类的请求（管理后台）。
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Create: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	owner := c.MustGet("user").(*model.User)
	category, err := h.categoryService.CreateCategory(req.Name, req.ParentID, req.IsNav, req.Sort, owner)
	if err != nil {
		if errors.Is(err, service.ErrParentNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "父级分类不存在", "data": nil})
			return
		}
		log.Error("Create: Failed to create category", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "创建分类失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": category})
}

// Update 处理更新分类的请求（管理后台）。
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的分类 ID", "data": nil})
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Update: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	category, err := h.categoryService.UpdateCategory(uint(id), req.Name, req.ParentID, req.IsNav, req.Sort)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryCycle):
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "分类的父级链路不能形成循环", "data": nil})
		case errors.Is(err, service.ErrParentNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "父级分类不存在", "data": nil})
		default:
			log.Error("Update: Failed to update category", err)
			c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "更新分类失败", "data": nil})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": category})
}

// Delete 处理删除分类的请求（管理后台，软删除）。
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的分类 ID", "data": nil})
		return
	}
	if err := h.categoryService.DeleteCategory(uint(id)); err != nil {
		log.Error("Delete: Failed to delete category", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "删除分类失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}
