// Package service 包含了应用的业务逻辑层。
package service

import (
	"errors"

	"gorm.io/gorm"

	"go-blog/internal/model"
	"go-blog/internal/repository"
)

// ErrCategoryCycle 表示分类的父级链路会形成循环。
var ErrCategoryCycle = errors.New("分类的父级链路不能形成循环")

// ErrParentNotFound 表示指定的父级分类不存在或已删除。
var ErrParentNotFound = errors.New("父级分类不存在")

// CategoryService 接口定义了文章分类相关的业务操作。
type CategoryService interface {
	// CategoryTree 返回导航分类组成的树，root 为 0 时从顶级分类开始。
	CategoryTree(root uint) ([]*model.CategoryNode, error)
	ListCategories() ([]model.Category, error)
	CreateCategory(name string, parentID *uint, isNav bool, sort uint, owner *model.User) (*model.Category, error)
	UpdateCategory(id uint, name string, parentID *uint, isNav bool, sort uint) (*model.Category, error)
	DeleteCategory(id uint) error
}

// categoryService 是 CategoryService 接口的实现。
type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建一个新的 CategoryService 实例。
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// CategoryTree 把导航分类的平面关系组装成树。
// 一次查询取出全部候选，再按父子索引递归组装，顺序继承查询的排序。
func (s *categoryService) CategoryTree(root uint) ([]*model.CategoryNode, error) {
	categories, err := s.categoryRepo.FindNavigable()
	if err != nil {
		return nil, err
	}

	// 以父分类 id 为键索引直接子分类，顶级分类挂在键 0 下
	children := make(map[uint][]model.Category)
	for _, c := range categories {
		parent := uint(0)
		if c.ParentID != nil {
			parent = *c.ParentID
		}
		children[parent] = append(children[parent], c)
	}

	var build func(parent uint) []*model.CategoryNode
	build = func(parent uint) []*model.CategoryNode {
		nodes := make([]*model.CategoryNode, 0, len(children[parent]))
		for _, c := range children[parent] {
			nodes = append(nodes, &model.CategoryNode{
				Current:  c,
				Children: build(c.ID),
			})
		}
		return nodes
	}
	return build(root), nil
}

// ListCategories 返回所有未删除的分类（管理后台使用）。
func (s *categoryService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindActive()
}

// CreateCategory 创建一个新的分类。
func (s *categoryService) CreateCategory(name string, parentID *uint, isNav bool, sort uint, owner *model.User) (*model.Category, error) {
	if err := s.checkParent(0, parentID); err != nil {
		return nil, err
	}

	category := &model.Category{
		Name:     name,
		ParentID: parentID,
		IsNav:    isNav,
		Sort:     sort,
		OwnerID:  owner.ID,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory 更新一个已存在的分类。
func (s *categoryService) UpdateCategory(id uint, name string, parentID *uint, isNav bool, sort uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkParent(id, parentID); err != nil {
		return nil, err
	}

	category.Name = name
	category.ParentID = parentID
	category.IsNav = isNav
	category.Sort = sort
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory 软删除一个分类。分类可能仍被文章引用，因此从不物理删除。
func (s *categoryService) DeleteCategory(id uint) error {
	return s.categoryRepo.SoftDelete(id)
}

// checkParent 校验父级分类存在，并且从新父级向上走不会回到 id 本身。
// 自引用外键本身挡不住循环，必须在写入时沿父链检查。
func (s *categoryService) checkParent(id uint, parentID *uint) error {
	seen := map[uint]bool{}
	if id != 0 {
		seen[id] = true
	}
	cur := parentID
	for cur != nil {
		if seen[*cur] {
			return ErrCategoryCycle
		}
		seen[*cur] = true

		parent, err := s.categoryRepo.FindByID(*cur)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrParentNotFound
			}
			return err
		}
		if parent.IsDeleted {
			return ErrParentNotFound
		}
		cur = parent.ParentID
	}
	return nil
}
