package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-blog/internal/model"
)

func enabledSettingsRow() model.BlogSettings {
	return model.BlogSettings{
		ID:                  1,
		SiteName:            "我的博客",
		SiteDescription:     "记录一些想法",
		PerPageCount:        20,
		ArticleSubLength:    150,
		SidebarArticleCount: 8,
		SidebarCommentCount: 3,
		OpenSiteComment:     true,
		Theme:               2,
		RecordNumber:        "京ICP备00000000号",
		IsEnable:            true,
	}
}

// 没有任何启用的配置行时返回一组固定的默认值。
func TestGetBlogSettingsDefaults(t *testing.T) {
	siteRepo := newFakeSiteConfigRepo()
	c := newFakeCache()
	s := NewConfigService(siteRepo, newFakeTagRepo(), newFakeArticleRepo(), newFakeCommentRepo(), c)

	setting, err := s.GetBlogSettings(context.Background())
	if err != nil {
		t.Fatalf("GetBlogSettings: %v", err)
	}

	if setting.SiteName != "一个博客" {
		t.Errorf("site_name: got %q, want %q", setting.SiteName, "一个博客")
	}
	if setting.SiteDescription != "这是一个用 Go 开发的博客" {
		t.Errorf("site_description: got %q", setting.SiteDescription)
	}
	if setting.PerPageCount != 10 {
		t.Errorf("per_page_count: got %d, want 10", setting.PerPageCount)
	}
	if setting.ArticleSubLength != 200 {
		t.Errorf("article_sub_length: got %d, want 200", setting.ArticleSubLength)
	}
	if setting.SidebarArticleCount != 5 || setting.SidebarCommentCount != 5 {
		t.Errorf("sidebar counts: got %d/%d, want 5/5", setting.SidebarArticleCount, setting.SidebarCommentCount)
	}
	if !setting.OpenSiteComment {
		t.Error("open_site_comment: got false, want true")
	}
	if setting.Theme != 1 {
		t.Errorf("theme: got %d, want 1", setting.Theme)
	}
	if setting.RecordNumber != "还没有备案" {
		t.Errorf("record_number: got %q, want %q", setting.RecordNumber, "还没有备案")
	}

	// 默认值同样会被写入缓存
	if _, ok := c.data[blogSettingCacheKey]; !ok {
		t.Error("defaults were not cached")
	}
	if c.ttls[blogSettingCacheKey] != blogSettingCacheTTL {
		t.Errorf("cache ttl: got %v, want %v", c.ttls[blogSettingCacheKey], blogSettingCacheTTL)
	}
}

func TestGetBlogSettingsFromEnabledRow(t *testing.T) {
	siteRepo := newFakeSiteConfigRepo()
	siteRepo.settings = []model.BlogSettings{enabledSettingsRow()}
	s := NewConfigService(siteRepo, newFakeTagRepo(), newFakeArticleRepo(), newFakeCommentRepo(), newFakeCache())

	setting, err := s.GetBlogSettings(context.Background())
	if err != nil {
		t.Fatalf("GetBlogSettings: %v", err)
	}
	if setting.SiteName != "我的博客" {
		t.Errorf("site_name: got %q, want %q", setting.SiteName, "我的博客")
	}
	if setting.PerPageCount != 20 {
		t.Errorf("per_page_count: got %d, want 20", setting.PerPageCount)
	}
	if setting.RecordNumber != "京ICP备00000000号" {
		t.Errorf("record_number: got %q", setting.RecordNumber)
	}
}

// 缓存命中时不应回源查询数据库。
func TestGetBlogSettingsCacheHit(t *testing.T) {
	siteRepo := newFakeSiteConfigRepo()
	siteRepo.findErr = errors.New("database should not be touched")
	c := newFakeCache()

	cached := BlogSetting{SiteName: "缓存中的博客", PerPageCount: 7, OpenSiteComment: true, Theme: 1}
	data, err := json.Marshal(&cached)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	c.data[blogSettingCacheKey] = string(data)

	s := NewConfigService(siteRepo, newFakeTagRepo(), newFakeArticleRepo(), newFakeCommentRepo(), c)
	setting, err := s.GetBlogSettings(context.Background())
	if err != nil {
		t.Fatalf("GetBlogSettings: %v", err)
	}
	if setting.SiteName != "缓存中的博客" || setting.PerPageCount != 7 {
		t.Errorf("cached setting: got %+v", setting)
	}
}

// 缓存内容损坏时当作未命中，回源查询。
func TestGetBlogSettingsCorruptCache(t *testing.T) {
	siteRepo := newFakeSiteConfigRepo()
	siteRepo.settings = []model.BlogSettings{enabledSettingsRow()}
	c := newFakeCache()
	c.data[blogSettingCacheKey] = "{not json"

	s := NewConfigService(siteRepo, newFakeTagRepo(), newFakeArticleRepo(), newFakeCommentRepo(), c)
	setting, err := s.GetBlogSettings(context.Background())
	if err != nil {
		t.Fatalf("GetBlogSettings: %v", err)
	}
	if setting.SiteName != "我的博客" {
		t.Errorf("site_name: got %q, want %q", setting.SiteName, "我的博客")
	}
}

// 缓存整体不可用时降级为直查数据库。
func TestGetBlogSettingsCacheDown(t *testing.T) {
	siteRepo := newFakeSiteConfigRepo()
	siteRepo.settings = []model.BlogSettings{enabledSettingsRow()}
	c := newFakeCache()
	c.getErr = errors.New("redis: connection refused")
	c.setErr = errors.New("redis: connection refused")

	s := NewConfigService(siteRepo, newFakeTagRepo(), newFakeArticleRepo(), newFakeCommentRepo(), c)
	setting, err := s.GetBlogSettings(context.Background())
	if err != nil {
		t.Fatalf("GetBlogSettings: %v", err)
	}
	if setting.SiteName != "我的博客" {
		t.Errorf("site_name: got %q, want %q", setting.SiteName, "我的博客")
	}
}

func TestSaveSettingsSingleEnabledRow(t *testing.T) {
	siteRepo := newFakeSiteConfigRepo()
	siteRepo.settings = []model.BlogSettings{enabledSettingsRow()}
	c := newFakeCache()
	s := NewConfigService(siteRepo, newFakeTagRepo(), newFakeArticleRepo(), newFakeCommentRepo(), c)

	// 已有启用行时，再启用一行新配置会被拒绝
	second := enabledSettingsRow()
	second.ID = 0
	second.SiteName = "第二个配置"
	if err := s.SaveSettings(context.Background(), &second); !errors.Is(err, ErrMultipleEnabledSettings) {
		t.Errorf("second enabled row: got %v, want ErrMultipleEnabledSettings", err)
	}

	// 未启用的新行可以保存
	second.IsEnable = false
	if err := s.SaveSettings(context.Background(), &second); err != nil {
		t.Fatalf("save disabled row: %v", err)
	}

	// 更新已启用的那一行自身不受约束限制
	row := enabledSettingsRow()
	row.SiteName = "改名后的博客"
	if err := s.SaveSettings(context.Background(), &row); err != nil {
		t.Fatalf("update enabled row: %v", err)
	}
}

// 保存设置后必须使缓存失效，下一次读取拿到新值。
func TestSaveSettingsInvalidatesCache(t *testing.T) {
	siteRepo := newFakeSiteConfigRepo()
	siteRepo.settings = []model.BlogSettings{enabledSettingsRow()}
	c := newFakeCache()
	s := NewConfigService(siteRepo, newFakeTagRepo(), newFakeArticleRepo(), newFakeCommentRepo(), c)

	if _, err := s.GetBlogSettings(context.Background()); err != nil {
		t.Fatalf("GetBlogSettings: %v", err)
	}
	if _, ok := c.data[blogSettingCacheKey]; !ok {
		t.Fatal("settings were not cached")
	}

	row := enabledSettingsRow()
	row.SiteName = "改名后的博客"
	if err := s.SaveSettings(context.Background(), &row); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	if _, ok := c.data[blogSettingCacheKey]; ok {
		t.Error("cache was not invalidated after save")
	}

	setting, err := s.GetBlogSettings(context.Background())
	if err != nil {
		t.Fatalf("GetBlogSettings after save: %v", err)
	}
	if setting.SiteName != "改名后的博客" {
		t.Errorf("site_name after save: got %q, want %q", setting.SiteName, "改名后的博客")
	}
}

func TestSideBars(t *testing.T) {
	siteRepo := newFakeSiteConfigRepo()
	siteRepo.settings = []model.BlogSettings{enabledSettingsRow()}
	siteRepo.sidebars = []model.SideBar{
		{ID: 1, Title: "公告", Type: model.SideBarTypeHTML, Content: "<p>欢迎</p>", IsEnable: true, Order: 1},
		{ID: 2, Title: "最新文章", Type: model.SideBarTypeLatestArticles, IsEnable: true, Order: 2},
		{ID: 3, Title: "友情链接", Type: model.SideBarTypeLinks, IsEnable: true, Order: 3},
		{ID: 4, Title: "停用的", Type: model.SideBarTypeHTML, IsEnable: false, Order: 4},
	}
	siteRepo.links = []model.Link{{ID: 1, Name: "Go 官网", Href: "https://go.dev", IsEnable: true, Weight: 5}}

	articleRepo := newFakeArticleRepo()
	articleRepo.latest = []model.Article{{ID: 1, Title: "最新的一篇"}}
	s := NewConfigService(siteRepo, newFakeTagRepo(), articleRepo, newFakeCommentRepo(), newFakeCache())

	views, err := s.SideBars(context.Background())
	if err != nil {
		t.Fatalf("SideBars: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("views: got %d, want 3", len(views))
	}

	if views[0].Content != "<p>欢迎</p>" {
		t.Errorf("html sidebar content: got %q", views[0].Content)
	}
	articles, ok := views[1].Data.([]model.Article)
	if !ok || len(articles) != 1 || articles[0].Title != "最新的一篇" {
		t.Errorf("latest articles sidebar: got %+v", views[1].Data)
	}
	links, ok := views[2].Data.([]model.Link)
	if !ok || len(links) != 1 || links[0].Name != "Go 官网" {
		t.Errorf("links sidebar: got %+v", views[2].Data)
	}
}
