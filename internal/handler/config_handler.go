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

// ConfigHandler 负责处理站点配置（设置、侧边栏、友链）相关的 API 请求。
type ConfigHandler struct {
	configService service.ConfigService
}

// NewConfigHandler 创建一个新的 ConfigHandler 实例。
func NewConfigHandler(configService service.ConfigService) *ConfigHandler {
	return &ConfigHandler{configService: configService}
}

// Settings 处理获取站点设置的请求（走缓存）。
func (h *ConfigHandler) Settings(c *gin.Context) {
	setting, err := h.configService.GetBlogSettings(c.Request.Context())
	if err != nil {
		log.Error("Settings: Failed to get blog settings", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取站点设置失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": setting})
}

// SideBars 处理获取侧边栏的请求，返回按展示类型解析好的数据。
func (h *ConfigHandler) SideBars(c *gin.Context) {
	views, err := h.configService.SideBars(c.Request.Context())
	if err != nil {
		log.Error("SideBars: Failed to resolve sidebars", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取侧边栏失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": views})
}

// Links 处理获取友链列表的请求。
func (h *ConfigHandler) Links(c *gin.Context) {
	links, err := h.configService.Links()
	if err != nil {
		log.Error("Links: Failed to list links", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取友链失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": links})
}

// ListSettings 处理获取所有设置行的请求（管理后台）。
func (h *ConfigHandler) ListSettings(c *gin.Context) {
	rows, err := h.configService.ListSettings()
	if err != nil {
		log.Error("ListSettings: Failed to list settings", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取站点配置失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": rows})
}

// SettingsRequest 定义了保存站点设置 API 的请求体结构。
type SettingsRequest struct {
	ID                  uint   `json:"id"`
	SiteName            string `json:"siteName" binding:"required"`
	SiteDescription     string `json:"siteDescription"`
	BackgroundImage     string `json:"backgroundImage"`
	PerPageCount        int    `json:"perPageCount"`
	ArticleSubLength    int    `json:"articleSubLength"`
	SidebarArticleCount int    `json:"sidebarArticleCount"`
	SidebarCommentCount int    `json:"sidebarCommentCount"`
	OpenSiteComment     bool   `json:"openSiteComment"`
	Theme               int    `json:"theme"`
	RecordNumber        string `json:"recordNumber"`
	IsEnable            bool   `json:"isEnable"`
}

// SaveSettings 处理创建或更新站点设置的请求（管理后台）。
// 保证最多一行启用，保存成功后设置缓存立即失效。
func (h *ConfigHandler) SaveSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("SaveSettings: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	settings := &model.BlogSettings{
		ID:                  req.ID,
		SiteName:            req.SiteName,
		SiteDescription:     req.SiteDescription,
		BackgroundImage:     req.BackgroundImage,
		PerPageCount:        req.PerPageCount,
		ArticleSubLength:    req.ArticleSubLength,
		SidebarArticleCount: req.SidebarArticleCount,
		SidebarCommentCount: req.SidebarCommentCount,
		OpenSiteComment:     req.OpenSiteComment,
		Theme:               req.Theme,
		RecordNumber:        req.RecordNumber,
		IsEnable:            req.IsEnable,
	}
	if err := h.configService.SaveSettings(c.Request.Context(), settings); err != nil {
		if errors.Is(err, service.ErrMultipleEnabledSettings) {
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "只能有一个启用的站点配置", "data": nil})
			return
		}
		log.Error("SaveSettings: Failed to save settings", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "保存站点配置失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": settings})
}

// SideBarRequest 定义了创建/更新侧边栏 API 的请求体结构。
type SideBarRequest struct {
	ID       uint   `json:"id"`
	Title    string `json:"title" binding:"required"`
	Type     int    `json:"type" binding:"required,min=1,max=6"`
	Content  string `json:"content"`
	IsEnable bool   `json:"isEnable"`
	Order    int    `json:"order"`
}

// SaveSideBar 处理创建或更新侧边栏的请求（管理后台）。
func (h *ConfigHandler) SaveSideBar(c *gin.Context) {
	var req SideBarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("SaveSideBar: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	owner := c.MustGet("user").(*model.User)
	sidebar := &model.SideBar{
		ID:       req.ID,
		Title:    req.Title,
		Type:     req.Type,
		Content:  req.Content,
		IsEnable: req.IsEnable,
		Order:    req.Order,
		OwnerID:  owner.ID,
	}

	var err error
	if sidebar.ID == 0 {
		err = h.configService.CreateSideBar(sidebar)
	} else {
		err = h.configService.UpdateSideBar(sidebar)
	}
	if err != nil {
		log.Error("SaveSideBar: Failed to save sidebar", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "保存侧边栏失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": sidebar})
}

// DeleteSideBar 处理删除侧边栏的请求（管理后台）。
func (h *ConfigHandler) DeleteSideBar(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的侧边栏 ID", "data": nil})
		return
	}
	if err := h.configService.DeleteSideBar(uint(id)); err != nil {
		log.Error("DeleteSideBar: Failed to delete sidebar", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "删除侧边栏失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}

// LinkRequest 定义了创建/更新友链 API 的请求体结构。
type LinkRequest struct {
	ID       uint   `json:"id"`
	Name     string `json:"name" binding:"required"`
	Href     string `json:"href" binding:"required,url"`
	IsEnable bool   `json:"isEnable"`
	Weight   uint   `json:"weight" binding:"min=1,max=5"`
}

// SaveLink 处理创建或更新友链的请求（管理后台）。
func (h *ConfigHandler) SaveLink(c *gin.Context) {
	var req LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("SaveLink: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载", "data": nil})
		return
	}

	owner := c.MustGet("user").(*model.User)
	link := &model.Link{
		ID:       req.ID,
		Name:     req.Name,
		Href:     req.Href,
		IsEnable: req.IsEnable,
		Weight:   req.Weight,
		OwnerID:  owner.ID,
	}

	var err error
	if link.ID == 0 {
		err = h.configService.CreateLink(link)
	} else {
		err = h.configService.UpdateLink(link)
	}
	if err != nil {
		log.Error("SaveLink: Failed to save link", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "保存友链失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": link})
}

// DeleteLink 处理删除友链的请求（管理后台）。
func (h *ConfigHandler) DeleteLink(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的友链 ID", "data": nil})
		return
	}
	if err := h.configService.DeleteLink(uint(id)); err != nil {
		log.Error("DeleteLink: Failed to delete link", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "删除友链失败", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}
