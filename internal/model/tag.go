package model

import "time"

// Tag 对应于数据库中的 'tags' 表，即文章标签。
type Tag struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	IsDeleted bool      `gorm:"not null;default:false" json:"isDeleted"`
	OwnerID   uint      `gorm:"not null" json:"ownerId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	// ArticleCount 由查询时统计得出，不落库。
	ArticleCount int64 `gorm:"-" json:"articleCount"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Tag) TableName() string {
	return "tags"
}
