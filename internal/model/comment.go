package model

import "time"

// Comment 对应于数据库中的 'comments' 表，即用户评论。
// ParentID 指向同一篇文章下的上级评论，NULL 表示顶层评论。
type Comment struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ArticleID uint   `gorm:"not null;index" json:"articleId"`
	Content   string `gorm:"type:varchar(2000);not null" json:"content"`
	AuthorID  uint   `gorm:"not null" json:"authorId"`
	ParentID  *uint  `gorm:"index" json:"parentId"`
	// IsDeleted 为软删除标记；被删除的评论保留记录，因为子评论仍引用它。
	IsDeleted bool      `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Comment) TableName() string {
	return "comments"
}

// CommentNode 是评论树中的一个节点。
// Author 由批量查询补充，作者已注销时为 nil。
// Children 永远是非 nil 的切片，叶子节点为空切片。
type CommentNode struct {
	Current  Comment        `json:"current"`
	Author   *User          `json:"author,omitempty"`
	Children []*CommentNode `json:"children"`
}
