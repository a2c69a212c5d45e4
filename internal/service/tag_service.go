package service

import (
	"errors"

	"gorm.io/gorm"

	"go-blog/internal/model"
	"go-blog/internal/repository"
)

// ErrTagNameTaken 表示标签名称已存在。
var ErrTagNameTaken = errors.New("标签名称已存在")

// TagService 接口定义了文章标签相关的业务操作。
type TagService interface {
	// ListTags 返回所有未删除的标签及各自的文章数量。
	ListTags() ([]model.Tag, error)
	CreateTag(name string, owner *model.User) (*model.Tag, error)
	UpdateTag(id uint, name string) (*model.Tag, error)
	DeleteTag(id uint) error
}

// tagService 是 TagService 接口的实现。
type tagService struct {
	tagRepo repository.TagRepository
}

// NewTagService 创建一个新的 TagService 实例。
func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

// ListTags 返回所有未删除的标签。
func (s *tagService) ListTags() ([]model.Tag, error) {
	return s.tagRepo.FindActiveWithCount()
}

// CreateTag 创建一个新标签，名称全局唯一。
func (s *tagService) CreateTag(name string, owner *model.User) (*model.Tag, error) {
	_, err := s.tagRepo.FindByName(name)
	if err == nil {
		return nil, ErrTagNameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag := &model.Tag{
		Name:    name,
		OwnerID: owner.ID,
	}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// UpdateTag 重命名一个标签。
func (s *tagService) UpdateTag(id uint, name string) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if existing, err := s.tagRepo.FindByName(name); err == nil && existing.ID != id {
		return nil, ErrTagNameTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag.Name = name
	if err := s.tagRepo.Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag 软删除一个标签。
func (s *tagService) DeleteTag(id uint) error {
	return s.tagRepo.SoftDelete(id)
}
