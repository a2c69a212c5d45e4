package handler

import (
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-blog/internal/config"
	"go-blog/internal/service"
	"go-blog/pkg/log"
)

// rssItemCount RSS 输出的文章条数。
const rssItemCount = 20

// SEOHandler 负责生成 sitemap.xml 和 RSS 订阅源。
type SEOHandler struct {
	articleService service.ArticleService
	configService  service.ConfigService
}

// NewSEOHandler 创建一个新的 SEOHandler 实例。
func NewSEOHandler(articleService service.ArticleService, configService service.ConfigService) *SEOHandler {
	return &SEOHandler{articleService: articleService, configService: configService}
}

// SitemapXML 动态生成 sitemap.xml：首页、归档页加上全部已发布文章。
func (h *SEOHandler) SitemapXML(c *gin.Context) {
	baseURL := config.Conf.Site.BaseURL
	now := time.Now().Format("2006-01-02")

	articles, err := h.articleService.Archives()
	if err != nil {
		log.Error("seo: Failed to list articles for sitemap", err)
		c.String(http.StatusInternalServerError, "")
		return
	}

	xml := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
`

	// 首页和归档页
	xml += fmt.Sprintf(`  <url>
    <loc>%s/</loc>
    <lastmod>%s</lastmod>
    <changefreq>daily</changefreq>
    <priority>1.0</priority>
  </url>
`, baseURL, now)
	xml += fmt.Sprintf(`  <url>
    <loc>%s/archives</loc>
    <lastmod>%s</lastmod>
    <changefreq>weekly</changefreq>
    <priority>0.8</priority>
  </url>
`, baseURL, now)

	// 文章详情页，越新的文章优先级越高
	for _, article := range articles {
		if article.PubTime == nil {
			continue
		}
		priority := 0.6
		changefreq := "monthly"
		daysSincePub := time.Since(*article.PubTime).Hours() / 24
		if daysSincePub < 7 {
			priority = 0.8
			changefreq = "daily"
		} else if daysSincePub < 30 {
			priority = 0.7
			changefreq = "weekly"
		}

		xml += fmt.Sprintf(`  <url>
    <loc>%s/articles/%d</loc>
    <lastmod>%s</lastmod>
    <changefreq>%s</changefreq>
    <priority>%.1f</priority>
  </url>
`, baseURL, article.ID, article.UpdatedAt.Format("2006-01-02"), changefreq, priority)
	}

	xml += `</urlset>`

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, xml)
}

// RSSFeed 生成 RSS 2.0 订阅源，包含最新发布的文章。
func (h *SEOHandler) RSSFeed(c *gin.Context) {
	baseURL := config.Conf.Site.BaseURL
	now := time.Now()

	setting, err := h.configService.GetBlogSettings(c.Request.Context())
	if err != nil {
		log.Error("seo: Failed to load blog settings for rss", err)
		c.String(http.StatusInternalServerError, "")
		return
	}

	articles, err := h.articleService.Archives()
	if err != nil {
		log.Error("seo: Failed to list articles for rss", err)
		c.String(http.StatusInternalServerError, "")
		return
	}
	if len(articles) > rssItemCount {
		articles = articles[:rssItemCount]
	}

	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">
  <channel>
    <title>` + escapeXML(setting.SiteName) + `</title>
    <link>` + baseURL + `</link>
    <description>` + escapeXML(setting.SiteDescription) + `</description>
    <language>zh-CN</language>
    <lastBuildDate>` + now.Format(time.RFC1123Z) + `</lastBuildDate>
    <atom:link href="` + baseURL + `/rss" rel="self" type="application/rss+xml"/>
`

	for _, article := range articles {
		link := fmt.Sprintf("%s/articles/%d", baseURL, article.ID)
		pubTime := article.CreatedAt
		if article.PubTime != nil {
			pubTime = *article.PubTime
		}

		// description 用摘要，正文留给站内阅读
		rss += `    <item>
      <title>` + escapeXML(article.Title) + `</title>
      <link>` + link + `</link>
      <description><![CDATA[` + article.Summary + `]]></description>
      <pubDate>` + pubTime.Format(time.RFC1123Z) + `</pubDate>
      <guid isPermaLink="true">` + link + `</guid>
    </item>
`
	}

	rss += `  </channel>
</rss>`

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.String(http.StatusOK, rss)
}

// escapeXML 转义 XML 特殊字符。
func escapeXML(s string) string {
	return html.EscapeString(s)
}
