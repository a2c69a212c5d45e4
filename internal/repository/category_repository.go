package repository

import (
	"gorm.io/gorm"

	"go-blog/internal/model"
)

// CategoryRepository 接口定义了文章分类的数据操作方法。
type CategoryRepository interface {
	Create(category *model.Category) error
	FindByID(id uint) (*model.Category, error)
	// FindNavigable 返回所有未删除且参与导航的分类，按 sort 升序。
	FindNavigable() ([]model.Category, error)
	// FindActive 返回所有未删除的分类，按 sort 升序。
	FindActive() ([]model.Category, error)
	// FindChildIDs 返回某个分类的直接子分类 ID（不含已删除的）。
	FindChildIDs(parentID uint) ([]uint, error)
	Update(category *model.Category) error
	SoftDelete(id uint) error
}

// categoryRepository 是 CategoryRepository 接口的 GORM 实现。
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建一个新的 CategoryRepository 实例。
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create 在数据库中插入一个新的分类记录。
func (r *categoryRepository) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

// FindByID 根据 ID 查找一个分类。
func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindNavigable 返回所有未删除且参与主页导航的分类。
// 排序键加上 id 作为决胜项，保证树的渲染顺序稳定可复现。
func (r *categoryRepository) FindNavigable() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Where("is_deleted = ? AND is_nav = ?", false, true).
		Order("sort, id").Find(&categories).Error
	return categories, err
}

// FindActive 返回所有未删除的分类。
func (r *categoryRepository) FindActive() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Where("is_deleted = ?", false).
		Order("sort, id").Find(&categories).Error
	return categories, err
}

// FindChildIDs 返回某个分类的直接子分类 ID。
func (r *categoryRepository) FindChildIDs(parentID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Category{}).
		Where("parent_id = ? AND is_deleted = ?", parentID, false).
		Pluck("id", &ids).Error
	return ids, err
}

// Update 更新数据库中一个已存在的分类记录。
func (r *categoryRepository) Update(category *model.Category) error {
	return r.db.Save(category).Error
}

// SoftDelete 将分类标记为已删除。分类可能仍被文章引用，因此从不物理删除。
func (r *categoryRepository) SoftDelete(id uint) error {
	return r.db.Model(&model.Category{}).Where("id = ?", id).
		Update("is_deleted", true).Error
}
