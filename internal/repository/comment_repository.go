package repository

import (
	"gorm.io/gorm"

	"go-blog/internal/model"
)

// CommentRepository 接口定义了评论的数据操作方法。
type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByID(id uint) (*model.Comment, error)
	// FindActiveByArticle 返回一篇文章下所有未删除的评论，按创建时间升序。
	FindActiveByArticle(articleID uint) ([]model.Comment, error)
	// LatestActive 返回全站最近的 limit 条未删除评论。
	LatestActive(limit int) ([]model.Comment, error)
	SoftDelete(id uint) error
}

// commentRepository 是 CommentRepository 接口的 GORM 实现。
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建一个新的 CommentRepository 实例。
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create 在数据库中插入一条新评论。
func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// FindByID 根据 ID 查找一条评论。
func (r *commentRepository) FindByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindActiveByArticle 返回一篇文章下所有未删除的评论。
// 创建时间加上 id 作为决胜项，保证树的渲染顺序稳定可复现。
func (r *commentRepository) FindActiveByArticle(articleID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.Where("article_id = ? AND is_deleted = ?", articleID, false).
		Order("created_at, id").Find(&comments).Error
	return comments, err
}

// LatestActive 返回全站最近的 limit 条未删除评论。
func (r *commentRepository) LatestActive(limit int) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.Where("is_deleted = ?", false).
		Order("created_at DESC").Limit(limit).Find(&comments).Error
	return comments, err
}

// SoftDelete 将评论标记为已删除。
// 评论从不物理删除，因为它的子评论仍然引用它。
func (r *commentRepository) SoftDelete(id uint) error {
	return r.db.Model(&model.Comment{}).Where("id = ?", id).
		Update("is_deleted", true).Error
}
