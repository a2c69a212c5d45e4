package model

import "time"

// Article 对应于数据库中的 'articles' 表。
type Article struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Summary string `gorm:"type:varchar(1024)" json:"summary"`
	// Content 是 Markdown 原文，ContentHTML 是保存时渲染出的 HTML。
	Content     string `gorm:"type:longtext;not null" json:"content"`
	ContentHTML string `gorm:"type:longtext" json:"contentHtml"`
	CategoryID  uint   `gorm:"not null;index" json:"categoryId"`
	AuthorID    uint   `gorm:"not null" json:"authorId"`
	// OnTop 表示是否置顶，只有已发布的文章才可置顶。
	OnTop          bool `gorm:"not null;default:false" json:"onTop"`
	CommentAllowed bool `gorm:"not null;default:true" json:"commentAllowed"`
	IsPublished    bool `gorm:"not null;default:false" json:"isPublished"`
	// PubTime 在发布时设置；未发布的文章不应该有发布时间。
	PubTime *time.Time `gorm:"index" json:"pubTime"`
	// PV/UV 是浏览计数，仅由访问计数器通过原子自增更新。
	PV        uint      `gorm:"not null;default:0" json:"pv"`
	UV        uint      `gorm:"not null;default:0" json:"uv"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Tags []Tag `gorm:"many2many:article_tags" json:"tags"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Article) TableName() string {
	return "articles"
}

// Normalize 在保存前修正发布状态相关的字段组合：
// 未发布的文章清空发布时间；发布而没有发布时间的补当前时间；
// 置顶的文章必须是已发布的。
func (a *Article) Normalize(now time.Time) {
	if !a.IsPublished && a.PubTime != nil {
		a.PubTime = nil
	}
	if a.IsPublished && a.PubTime == nil {
		t := now
		a.PubTime = &t
	}
	if a.OnTop && !a.IsPublished {
		a.OnTop = false
	}
}
