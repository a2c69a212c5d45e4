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

// CommentHandler 负责处理评论相关的 API 请求。
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler 创建一个新的 CommentHandler 实例。
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// AddCommentRequest 定义了发表评论 API 的请求体结构。
type AddCommentRequest struct {
	Content  string `json:"content" binding:"required,max=2000"`
	ParentID *uint  `json:"parentId"`
}

// Add 处理发表评论的请求，需要登录。
func (h *CommentHandler) Add(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的文章 ID", "data": nil})
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Add: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	author := c.MustGet("user").(*model.User)
	comment, err := h.commentService.AddComment(c.Request.Context(), uint(articleID), req.Content, req.ParentID, author)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrArticleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "文章不存在", "data": nil})
		case errors.Is(err, service.ErrCommentClosed):
			c.JSON(http.StatusForbidden, gin.H{"code": http.StatusForbidden, "message": "评论功能已关闭", "data": nil})
		case errors.Is(err, service.ErrParentCommentInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "上级评论无效", "data": nil})
		default:
			log.Error("Add: Failed to add comment", err)
			c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "发表评论失败", "data": nil})
		}
		return
	}

	log.Infof("用户 '%s' 在文章 %d 下发表了评论 %d", author.Username, articleID, comment.ID)
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": comment})
}

// Delete 处理删除评论的请求，仅评论作者或管理员可操作。
func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的评论 ID", "data": nil})
		return
	}

	actor := c.MustGet("user").(*model.User)
	if err := h.commentService.DeleteComment(uint(id), actor); err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "评论不存在", "data": nil})
		case errors.Is(err, service.ErrNotCommentOwner):
			c.JSON(http.StatusForbidden, gin.H{"code": http.StatusForbidden, "message": "没有权限删除该评论", "data": nil})
		default:
			log.Error("Delete: Failed to delete comment", err)
			c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "删除评论失败", "data": nil})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}
