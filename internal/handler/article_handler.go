// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-blog/internal/middleware"
	"go-blog/internal/model"
	"go-blog/internal/service"
	"go-blog/pkg/log"
)

// ArticleHandler 负责处理文章相关的 API 请求。
type ArticleHandler struct {
	articleService service.ArticleService
	commentService service.CommentService
	visitService   service.VisitService
}

// NewArticleHandler 创建一个新的 ArticleHandler 实例。
func NewArticleHandler(articleService service.ArticleService, commentService service.CommentService, visitService service.VisitService) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		commentService: commentService,
		visitService:   visitService,
	}
}

// List 处理文章列表页请求，支持关键词、分类、标签和年份筛选。
func (h *ArticleHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	categoryID, _ := strconv.ParseUint(c.Query("category"), 10, 64)
	tagID, _ := strconv.ParseUint(c.Query("tag"), 10, 64)
	year, _ := strconv.Atoi(c.Query("year"))

	filter := service.ArticleListFilter{
		Key:        c.Query("key"),
		CategoryID: uint(categoryID),
		TagID:      uint(tagID),
		PubYearGte: year,
	}

	result, err := h.articleService.ListArticles(c.Request.Context(), filter, page)
	if err != nil {
		log.Error("List: Failed to list articles", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取文章列表失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": result})
}

// Detail 处理文章详情页请求：返回文章、相邻文章和评论树，并为本次访问记账。
func (h *ArticleHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的文章 ID", "data": nil})
		return
	}

	detail, err := h.articleService.GetPublishedArticle(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "文章不存在", "data": nil})
			return
		}
		log.Error("Detail: Failed to get article", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取文章失败", "data": nil})
		return
	}

	commentTree, err := h.commentService.CommentTree(uint(id), 0)
	if err != nil {
		log.Error("Detail: Failed to build comment tree", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取评论失败", "data": nil})
		return
	}

	// 访问计数在响应前完成，数据库侧自增失败视为本次请求失败
	uid := c.GetString(middleware.VisitorKey)
	if err := h.visitService.RecordVisit(c.Request.Context(), uid, c.Request.URL.Path, uint(id), time.Now()); err != nil {
		log.Error("Detail: Failed to record visit", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "访问计数失败", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{
		"article":     detail.Article,
		"prev":        detail.Prev,
		"next":        detail.Next,
		"commentTree": commentTree,
	}})
}

// Archives 处理文章归档页请求。
func (h *ArticleHandler) Archives(c *gin.Context) {
	articles, err := h.articleService.Archives()
	if err != nil {
		log.Error("Archives: Failed to list archives", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取归档失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": articles})
}

// ArticleRequest 定义了创建/更新文章 API 的请求体结构。
type ArticleRequest struct {
	Title          string `json:"title" binding:"required"`
	Summary        string `json:"summary"`
	Content        string `json:"content" binding:"required"`
	CategoryID     uint   `json:"categoryId" binding:"required"`
	TagIDs         []uint `json:"tagIds"`
	CommentAllowed bool   `json:"commentAllowed"`
	IsPublished    bool   `json:"isPublished"`
	OnTop          bool   `json:"onTop"`
}

func (r *ArticleRequest) toInput() service.ArticleInput {
	return service.ArticleInput{
		Title:          r.Title,
		Summary:        r.Summary,
		Content:        r.Content,
		CategoryID:     r.CategoryID,
		TagIDs:         r.TagIDs,
		CommentAllowed: r.CommentAllowed,
		IsPublished:    r.IsPublished,
		OnTop:          r.OnTop,
	}
}

// Create 处理创建文章的请求（管理后台）。
func (h *ArticleHandler) Create(c *gin.Context) {
	var req ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Create: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	author := c.MustGet("user").(*model.User)
	article, err := h.articleService.CreateArticle(req.toInput(), author)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "分类不存在", "data": nil})
			return
		}
		log.Error("Create: Failed to create article", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "创建文章失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": article})
}

// Update 处理更新文章的请求（管理后台）。
func (h *ArticleHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的文章 ID", "data": nil})
		return
	}

	var req ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Update: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	article, err := h.articleService.UpdateArticle(uint(id), req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrArticleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "文章不存在", "data": nil})
		case errors.Is(err, service.ErrCategoryNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "分类不存在", "data": nil})
		default:
			log.Error("Update: Failed to update article", err)
			c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "更新文章失败", "data": nil})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": article})
}

// Publish 处理发布文章的请求（管理后台）。
func (h *ArticleHandler) Publish(c *gin.Context) {
	h.transition(c, h.articleService.PublishArticle, "发布文章失败")
}

// Unpublish 处理撤回文章的请求（管理后台）。
func (h *ArticleHandler) Unpublish(c *gin.Context) {
	h.transition(c, h.articleService.UnpublishArticle, "撤回文章失败")
}

// SetTopRequest 定义了置顶 API 的请求体结构。
type SetTopRequest struct {
	OnTop bool `json:"onTop"`
}

// SetTop 处理置顶/取消置顶文章的请求（管理后台）。
func (h *ArticleHandler) SetTop(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的文章 ID", "data": nil})
		return
	}

	var req SetTopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	if err := h.articleService.SetTop(uint(id), req.OnTop); err != nil {
		if errors.Is(err, service.ErrTopRequiresPublished) {
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "只有已发布的文章才能置顶", "data": nil})
			return
		}
		log.Error("SetTop: Failed to set top flag", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "设置置顶失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}

// Delete 处理删除文章的请求（管理后台）。
func (h *ArticleHandler) Delete(c *gin.Context) {
	h.transition(c, h.articleService.DeleteArticle, "删除文章失败")
}

// transition 封装只需要文章 ID 的状态流转请求。
func (h *ArticleHandler) transition(c *gin.Context, op func(uint) error, failMsg string) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的文章 ID", "data": nil})
		return
	}
	if err := op(uint(id)); err != nil {
		log.Error("transition: "+failMsg, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": failMsg, "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}
