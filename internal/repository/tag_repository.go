package repository

import (
	"gorm.io/gorm"

	"go-blog/internal/model"
)

// TagRepository 接口定义了文章标签的数据操作方法。
type TagRepository interface {
	Create(tag *model.Tag) error
	FindByID(id uint) (*model.Tag, error)
	FindByName(name string) (*model.Tag, error)
	// FindActiveWithCount 返回所有未删除的标签并统计各自的文章数量。
	FindActiveWithCount() ([]model.Tag, error)
	Update(tag *model.Tag) error
	SoftDelete(id uint) error
}

// tagRepository 是 TagRepository 接口的 GORM 实现。
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建一个新的 TagRepository 实例。
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// Create 在数据库中插入一个新的标签记录。
func (r *tagRepository) Create(tag *model.Tag) error {
	return r.db.Create(tag).Error
}

// FindByID 根据 ID 查找一个标签。
func (r *tagRepository) FindByID(id uint) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.First(&tag, id).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindByName 根据名称查找一个标签。
func (r *tagRepository) FindByName(name string) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.Where("name = ?", name).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindActiveWithCount 返回所有未删除的标签，按创建时间升序，
// 并通过关联表统计每个标签下的文章数量。
func (r *tagRepository) FindActiveWithCount() ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.Where("is_deleted = ?", false).
		Order("created_at, id").Find(&tags).Error
	if err != nil {
		return nil, err
	}
	for i := range tags {
		var count int64
		if err := r.db.Table("article_tags").
			Where("tag_id = ?", tags[i].ID).Count(&count).Error; err != nil {
			return nil, err
		}
		tags[i].ArticleCount = count
	}
	return tags, nil
}

// Update 更新数据库中一个已存在的标签记录。
func (r *tagRepository) Update(tag *model.Tag) error {
	return r.db.Save(tag).Error
}

// SoftDelete 将标签标记为已删除。
func (r *tagRepository) SoftDelete(id uint) error {
	return r.db.Model(&model.Tag{}).Where("id = ?", id).
		Update("is_deleted", true).Error
}
