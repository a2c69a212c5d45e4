package model

import "time"

// Link 对应于数据库中的 'links' 表，即友情链接。
type Link struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Href     string `gorm:"type:varchar(200);not null" json:"href"`
	IsEnable bool   `gorm:"not null;default:true" json:"isEnable"`
	// Weight 取 1..5，权重高的展示顺序靠前。
	Weight    uint      `gorm:"not null;default:1" json:"weight"`
	OwnerID   uint      `gorm:"not null" json:"ownerId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Link) TableName() string {
	return "links"
}

// 侧边栏展示类型。
const (
	SideBarTypeHTML            = 1 // 自定义 HTML
	SideBarTypeTags            = 2 // 标签统计
	SideBarTypeLatestArticles  = 3 // 最新文章
	SideBarTypeHottestArticles = 4 // 最热文章
	SideBarTypeLatestComments  = 5 // 最近评论
	SideBarTypeLinks           = 6 // 友情链接
)

// SideBar 对应于数据库中的 'sidebars' 表。
type SideBar struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title string `gorm:"type:varchar(50);not null" json:"title"`
	Type  int    `gorm:"not null;default:1" json:"type"`
	// Content 只在 HTML 类型下使用，其余类型的数据由查询动态填充。
	Content   string    `gorm:"type:text" json:"content"`
	IsEnable  bool      `gorm:"not null;default:true" json:"isEnable"`
	Order     int       `gorm:"column:display_order;uniqueIndex;not null" json:"order"`
	OwnerID   uint      `gorm:"not null" json:"ownerId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (SideBar) TableName() string {
	return "sidebars"
}

// BlogSettings 对应于数据库中的 'blog_settings' 表，即站点配置。
// 约束：最多只能有一行 is_enable 为真，由写入侧校验保证。
type BlogSettings struct {
	ID              uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	SiteName        string `gorm:"type:varchar(200);not null" json:"siteName"`
	SiteDescription string `gorm:"type:varchar(1000)" json:"siteDescription"`
	// BackgroundImage 是背景图片在对象存储中的 URL。
	BackgroundImage     string    `gorm:"type:varchar(255)" json:"backgroundImage"`
	PerPageCount        int       `gorm:"not null;default:10" json:"perPageCount"`
	ArticleSubLength    int       `gorm:"not null;default:200" json:"articleSubLength"`
	SidebarArticleCount int       `gorm:"not null;default:5" json:"sidebarArticleCount"`
	SidebarCommentCount int       `gorm:"not null;default:5" json:"sidebarCommentCount"`
	OpenSiteComment     bool      `gorm:"not null;default:true" json:"openSiteComment"`
	Theme               int       `gorm:"not null;default:1" json:"theme"`
	RecordNumber        string    `gorm:"type:varchar(100)" json:"recordNumber"`
	IsEnable            bool      `gorm:"not null;default:false" json:"isEnable"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (BlogSettings) TableName() string {
	return "blog_settings"
}
