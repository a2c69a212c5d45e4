// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

// 用户角色常量。
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User 对应于数据库中的 'users' 表。
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	// Password 存储 bcrypt 哈希，永远不在 JSON 中返回。
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Nickname string `gorm:"type:varchar(100)" json:"nickname"`
	Mobile   string `gorm:"type:varchar(11)" json:"mobile"`
	// Avatar 是用户头像在对象存储中的 URL。
	Avatar    string    `gorm:"type:varchar(255)" json:"avatar"`
	Homepage  string    `gorm:"type:varchar(255)" json:"homepage"`
	Role      string    `gorm:"type:varchar(20);not null;default:USER" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (User) TableName() string {
	return "users"
}

// DisplayName 返回用户的展示名称，昵称为空时退回用户名。
func (u *User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Username
}

// IsAdmin 判断用户是否为管理员。
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
