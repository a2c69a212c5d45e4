package model

import "time"

// Category 对应于数据库中的 'categories' 表，即文章分类。
// ParentID 指向父级分类，使用指针以接受 NULL 值，表示顶级分类。
type Category struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"type:varchar(50);not null" json:"name"`
	ParentID  *uint  `gorm:"index" json:"parentId"`
	IsNav     bool   `gorm:"not null;default:true" json:"isNav"`
	IsDeleted bool   `gorm:"not null;default:false" json:"isDeleted"`
	// Sort 是分类的展示顺序编号，小的排前面。
	Sort      uint      `gorm:"not null" json:"sort"`
	OwnerID   uint      `gorm:"not null" json:"ownerId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Category) TableName() string {
	return "categories"
}

// CategoryNode 是分类树中的一个节点。
// Children 永远是非 nil 的切片，叶子节点为空切片。
type CategoryNode struct {
	Current  Category        `json:"current"`
	Children []*CategoryNode `json:"children"`
}
