package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-blog/internal/model"
	"go-blog/internal/repository"
	"go-blog/pkg/cache"
	"go-blog/pkg/log"
)

// ErrMultipleEnabledSettings 表示已经存在另一行启用的站点设置。
var ErrMultipleEnabledSettings = errors.New("只能有一个启用的站点配置")

// blogSettingCacheKey 是站点设置在缓存中的键。
const blogSettingCacheKey = "blog:setting"

// blogSettingCacheTTL 是站点设置的缓存有效期。
const blogSettingCacheTTL = 30 * time.Minute

// BlogSetting 是对外暴露的站点设置视图，字段集合固定。
type BlogSetting struct {
	SiteName            string `json:"site_name"`
	SiteDescription     string `json:"site_description"`
	BackgroundImage     string `json:"background_image"`
	PerPageCount        int    `json:"per_page_count"`
	ArticleSubLength    int    `json:"article_sub_length"`
	SidebarArticleCount int    `json:"sidebar_article_count"`
	SidebarCommentCount int    `json:"sidebar_comment_count"`
	OpenSiteComment     bool   `json:"open_site_comment"`
	Theme               int    `json:"theme"`
	RecordNumber        string `json:"record_number"`
}

// defaultBlogSetting 返回没有任何启用配置行时的兜底设置。
func defaultBlogSetting() *BlogSetting {
	return &BlogSetting{
		SiteName:            "一个博客",
		SiteDescription:     "这是一个用 Go 开发的博客",
		BackgroundImage:     "",
		PerPageCount:        10,
		ArticleSubLength:    200,
		SidebarArticleCount: 5,
		SidebarCommentCount: 5,
		OpenSiteComment:     true,
		Theme:               1,
		RecordNumber:        "还没有备案",
	}
}

// SideBarView 是解析后的侧边栏条目：Data 按展示类型填充对应的数据。
type SideBarView struct {
	Title   string      `json:"title"`
	Type    int         `json:"type"`
	Content string      `json:"content,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ConfigService 接口定义了站点配置相关的业务操作。
type ConfigService interface {
	// GetBlogSettings 返回站点设置，优先读缓存，未命中时查库并回填。
	GetBlogSettings(ctx context.Context) (*BlogSetting, error)
	ListSettings() ([]model.BlogSettings, error)
	// SaveSettings 创建或更新一行站点设置，保证最多一行启用，并使缓存失效。
	SaveSettings(ctx context.Context, settings *model.BlogSettings) error

	// SideBars 返回启用的侧边栏，并按展示类型填充动态数据。
	SideBars(ctx context.Context) ([]SideBarView, error)
	CreateSideBar(sidebar *model.SideBar) error
	UpdateSideBar(sidebar *model.SideBar) error
	DeleteSideBar(id uint) error

	// Links 返回所有启用的友链。
	Links() ([]model.Link, error)
	CreateLink(link *model.Link) error
	UpdateLink(link *model.Link) error
	DeleteLink(id uint) error
}

// configService 是 ConfigService 接口的实现。
type configService struct {
	siteRepo    repository.SiteConfigRepository
	tagRepo     repository.TagRepository
	articleRepo repository.ArticleRepository
	commentRepo repository.CommentRepository
	cache       cache.Cache
}

// NewConfigService 创建一个新的 ConfigService 实例。
func NewConfigService(
	siteRepo repository.SiteConfigRepository,
	tagRepo repository.TagRepository,
	articleRepo repository.ArticleRepository,
	commentRepo repository.CommentRepository,
	c cache.Cache,
) ConfigService {
	return &configService{
		siteRepo:    siteRepo,
		tagRepo:     tagRepo,
		articleRepo: articleRepo,
		commentRepo: commentRepo,
		cache:       c,
	}
}

// GetBlogSettings 返回站点设置。
// 缓存未命中时查询启用的配置行；没有启用行时返回硬编码的默认值。
// 默认值同样会被写入缓存（管理员启用配置时会显式失效，陈旧窗口由失效保证）。
// 缓存读写失败只降级为直查数据库，不影响页面渲染。
func (s *configService) GetBlogSettings(ctx context.Context) (*BlogSetting, error) {
	cached, err := s.cache.Get(ctx, blogSettingCacheKey)
	if err == nil {
		var setting BlogSetting
		if jsonErr := json.Unmarshal([]byte(cached), &setting); jsonErr == nil {
			return &setting, nil
		}
		// 缓存内容损坏时当作未命中处理
		log.Warnf("站点设置缓存内容无法解析，回源查询")
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		log.Warnf("读取站点设置缓存失败，回源查询: %v", err)
	}

	rows, err := s.siteRepo.FindEnabledSettings()
	if err != nil {
		return nil, err
	}

	setting := defaultBlogSetting()
	if len(rows) > 0 {
		// 约束上最多一行启用；出现多行时容忍并取第一行
		row := rows[0]
		setting = &BlogSetting{
			SiteName:            row.SiteName,
			SiteDescription:     row.SiteDescription,
			BackgroundImage:     row.BackgroundImage,
			PerPageCount:        row.PerPageCount,
			ArticleSubLength:    row.ArticleSubLength,
			SidebarArticleCount: row.SidebarArticleCount,
			SidebarCommentCount: row.SidebarCommentCount,
			OpenSiteComment:     row.OpenSiteComment,
			Theme:               row.Theme,
			RecordNumber:        row.RecordNumber,
		}
	}

	if data, jsonErr := json.Marshal(setting); jsonErr == nil {
		if cacheErr := s.cache.Set(ctx, blogSettingCacheKey, string(data), blogSettingCacheTTL); cacheErr != nil {
			log.Warnf("写入站点设置缓存失败: %v", cacheErr)
		}
	}
	return setting, nil
}

// ListSettings 返回所有站点设置行（管理后台使用）。
func (s *configService) ListSettings() ([]model.BlogSettings, error) {
	return s.siteRepo.FindAllSettings()
}

// SaveSettings 创建或更新一行站点设置。
// 写入侧校验"最多一行启用"的约束，保存成功后使缓存失效。
func (s *configService) SaveSettings(ctx context.Context, settings *model.BlogSettings) error {
	if settings.IsEnable {
		count, err := s.siteRepo.CountEnabledSettingsExcept(settings.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrMultipleEnabledSettings
		}
	}

	var err error
	if settings.ID == 0 {
		err = s.siteRepo.CreateSettings(settings)
	} else {
		err = s.siteRepo.UpdateSettings(settings)
	}
	if err != nil {
		return err
	}

	if cacheErr := s.cache.Delete(ctx, blogSettingCacheKey); cacheErr != nil {
		log.Warnf("站点设置缓存失效失败: %v", cacheErr)
	}
	return nil
}

// SideBars 返回启用的侧边栏并按展示类型填充数据。
func (s *configService) SideBars(ctx context.Context) ([]SideBarView, error) {
	sidebars, err := s.siteRepo.FindEnabledSideBars()
	if err != nil {
		return nil, err
	}

	setting, err := s.GetBlogSettings(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]SideBarView, 0, len(sidebars))
	for _, sb := range sidebars {
		view := SideBarView{Title: sb.Title, Type: sb.Type}
		switch sb.Type {
		case model.SideBarTypeHTML:
			view.Content = sb.Content
		case model.SideBarTypeTags:
			view.Data, err = s.tagRepo.FindActiveWithCount()
		case model.SideBarTypeLatestArticles:
			view.Data, err = s.articleRepo.LatestPublished(setting.SidebarArticleCount)
		case model.SideBarTypeHottestArticles:
			view.Data, err = s.articleRepo.HottestPublished(setting.SidebarArticleCount)
		case model.SideBarTypeLatestComments:
			view.Data, err = s.commentRepo.LatestActive(setting.SidebarCommentCount)
		case model.SideBarTypeLinks:
			view.Data, err = s.siteRepo.FindEnabledLinks()
		}
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// CreateSideBar 创建一条侧边栏记录。
func (s *configService) CreateSideBar(sidebar *model.SideBar) error {
	return s.siteRepo.CreateSideBar(sidebar)
}

// UpdateSideBar 更新一条侧边栏记录。
func (s *configService) UpdateSideBar(sidebar *model.SideBar) error {
	return s.siteRepo.UpdateSideBar(sidebar)
}

// DeleteSideBar 删除一条侧边栏记录。
func (s *configService) DeleteSideBar(id uint) error {
	return s.siteRepo.DeleteSideBar(id)
}

// Links 返回所有启用的友链。
func (s *configService) Links() ([]model.Link, error) {
	return s.siteRepo.FindEnabledLinks()
}

// CreateLink 创建一条友链记录。
func (s *configService) CreateLink(link *model.Link) error {
	return s.siteRepo.CreateLink(link)
}

// UpdateLink 更新一条友链记录。
func (s *configService) UpdateLink(link *model.Link) error {
	return s.siteRepo.UpdateLink(link)
}

// DeleteLink 删除一条友链记录。
func (s *configService) DeleteLink(id uint) error {
	return s.siteRepo.DeleteLink(id)
}
