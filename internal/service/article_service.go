package service

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"go-blog/internal/model"
	"go-blog/internal/repository"
	"go-blog/pkg/markdown"
)

// ErrTopRequiresPublished 表示只有已发布的文章才能置顶。
var ErrTopRequiresPublished = errors.New("只有已发布的文章才能置顶")

// ErrCategoryNotFound 表示指定的分类不存在。
var ErrCategoryNotFound = errors.New("分类不存在")

// ArticleInput 是创建/更新文章时的输入字段。
type ArticleInput struct {
	Title          string
	Summary        string
	Content        string
	CategoryID     uint
	TagIDs         []uint
	CommentAllowed bool
	IsPublished    bool
	OnTop          bool
}

// ArticleListFilter 是文章列表页的筛选输入。
type ArticleListFilter struct {
	Key        string `json:"key,omitempty"`
	CategoryID uint   `json:"category,omitempty"`
	TagID      uint   `json:"tag,omitempty"`
	PubYearGte int    `json:"year,omitempty"`
}

// ArticleListResult 是文章列表页的响应结构。
type ArticleListResult struct {
	Articles      []model.Article   `json:"articles"`
	Total         int64             `json:"total"`
	TotalPages    int               `json:"totalPages"`
	Page          int               `json:"page"`
	PerPage       int               `json:"perPage"`
	AppliedFilter ArticleListFilter `json:"appliedFilter"`
}

// ArticleDetail 是文章详情页的响应结构，Prev/Next 不存在时为 nil。
type ArticleDetail struct {
	Article *model.Article `json:"article"`
	Prev    *model.Article `json:"prev"`
	Next    *model.Article `json:"next"`
}

// ArticleService 接口定义了文章相关的业务操作。
type ArticleService interface {
	// ListArticles 返回已发布文章的一页，置顶优先，其余按发布时间倒序。
	// 分类筛选会覆盖选中的分类及其直接子分类；每页条数来自站点设置。
	ListArticles(ctx context.Context, filter ArticleListFilter, page int) (*ArticleListResult, error)
	// Archives 返回所有已发布文章，按发布时间倒序。
	Archives() ([]model.Article, error)
	// GetPublishedArticle 返回一篇已发布文章及其相邻文章。
	GetPublishedArticle(id uint) (*ArticleDetail, error)
	GetArticle(id uint) (*model.Article, error)
	CreateArticle(input ArticleInput, author *model.User) (*model.Article, error)
	UpdateArticle(id uint, input ArticleInput) (*model.Article, error)
	// PublishArticle 发布一篇文章并记下发布时间。
	PublishArticle(id uint) error
	// UnpublishArticle 撤回一篇文章：清空发布时间并取消置顶。
	UnpublishArticle(id uint) error
	// SetTop 设置或取消置顶，只有已发布的文章才能置顶。
	SetTop(id uint, onTop bool) error
	DeleteArticle(id uint) error
}

// articleService 是 ArticleService 接口的实现。
type articleService struct {
	articleRepo   repository.ArticleRepository
	categoryRepo  repository.CategoryRepository
	tagRepo       repository.TagRepository
	configService ConfigService
}

// NewArticleService 创建一个新的 ArticleService 实例。
func NewArticleService(
	articleRepo repository.ArticleRepository,
	categoryRepo repository.CategoryRepository,
	tagRepo repository.TagRepository,
	configService ConfigService,
) ArticleService {
	return &articleService{
		articleRepo:   articleRepo,
		categoryRepo:  categoryRepo,
		tagRepo:       tagRepo,
		configService: configService,
	}
}

// ListArticles 返回已发布文章的一页。
func (s *articleService) ListArticles(ctx context.Context, filter ArticleListFilter, page int) (*ArticleListResult, error) {
	setting, err := s.configService.GetBlogSettings(ctx)
	if err != nil {
		return nil, err
	}
	perPage := setting.PerPageCount
	if page < 1 {
		page = 1
	}

	repoFilter := repository.ArticleFilter{
		Key:        filter.Key,
		TagID:      filter.TagID,
		PubYearGte: filter.PubYearGte,
	}
	if filter.CategoryID != 0 {
		// 选中某个分类时，同时命中它的直接子分类
		childIDs, err := s.categoryRepo.FindChildIDs(filter.CategoryID)
		if err != nil {
			return nil, err
		}
		repoFilter.CategoryIDs = append([]uint{filter.CategoryID}, childIDs...)
	}

	articles, total, err := s.articleRepo.ListPublished(repoFilter, (page-1)*perPage, perPage)
	if err != nil {
		return nil, err
	}

	return &ArticleListResult{
		Articles:      articles,
		Total:         total,
		TotalPages:    int(math.Ceil(float64(total) / float64(perPage))),
		Page:          page,
		PerPage:       perPage,
		AppliedFilter: filter,
	}, nil
}

// Archives 返回所有已发布文章。
func (s *articleService) Archives() ([]model.Article, error) {
	return s.articleRepo.Archives()
}

// GetPublishedArticle 返回一篇已发布文章及其按 id 相邻的前后文章。
func (s *articleService) GetPublishedArticle(id uint) (*ArticleDetail, error) {
	article, err := s.articleRepo.FindPublishedByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	detail := &ArticleDetail{Article: article}
	if prev, err := s.articleRepo.PrevPublished(id); err == nil {
		detail.Prev = prev
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if next, err := s.articleRepo.NextPublished(id); err == nil {
		detail.Next = next
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return detail, nil
}

// GetArticle 返回一篇文章，不限发布状态（管理后台使用）。
func (s *articleService) GetArticle(id uint) (*model.Article, error) {
	return s.articleRepo.FindByID(id)
}

// CreateArticle 创建一篇新文章：渲染正文 HTML，修正发布状态字段后入库。
func (s *articleService) CreateArticle(input ArticleInput, author *model.User) (*model.Article, error) {
	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	tags, err := s.resolveTags(input.TagIDs)
	if err != nil {
		return nil, err
	}

	article := &model.Article{
		Title:          input.Title,
		Summary:        input.Summary,
		Content:        input.Content,
		ContentHTML:    markdown.Render(input.Content),
		CategoryID:     input.CategoryID,
		AuthorID:       author.ID,
		CommentAllowed: input.CommentAllowed,
		IsPublished:    input.IsPublished,
		OnTop:          input.OnTop,
		Tags:           tags,
	}
	article.Normalize(time.Now())

	if err := s.articleRepo.Create(article); err != nil {
		return nil, err
	}
	return article, nil
}

// UpdateArticle 更新一篇文章并重建标签关联。
func (s *articleService) UpdateArticle(id uint, input ArticleInput) (*model.Article, error) {
	article, err := s.articleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	tags, err := s.resolveTags(input.TagIDs)
	if err != nil {
		return nil, err
	}

	article.Title = input.Title
	article.Summary = input.Summary
	article.Content = input.Content
	article.ContentHTML = markdown.Render(input.Content)
	article.CategoryID = input.CategoryID
	article.CommentAllowed = input.CommentAllowed
	article.IsPublished = input.IsPublished
	article.OnTop = input.OnTop
	article.Normalize(time.Now())
	article.Tags = nil

	if err := s.articleRepo.Update(article); err != nil {
		return nil, err
	}
	if err := s.articleRepo.ReplaceTags(article, tags); err != nil {
		return nil, err
	}
	article.Tags = tags
	return article, nil
}

// PublishArticle 发布一篇文章并记下当前时间。
func (s *articleService) PublishArticle(id uint) error {
	article, err := s.articleRepo.FindByID(id)
	if err != nil {
		return err
	}
	now := time.Now()
	article.IsPublished = true
	article.PubTime = &now
	return s.articleRepo.Update(article)
}

// UnpublishArticle 撤回一篇文章。
func (s *articleService) UnpublishArticle(id uint) error {
	article, err := s.articleRepo.FindByID(id)
	if err != nil {
		return err
	}
	article.IsPublished = false
	article.PubTime = nil
	article.OnTop = false
	return s.articleRepo.Update(article)
}

// SetTop 设置或取消置顶。
func (s *articleService) SetTop(id uint, onTop bool) error {
	article, err := s.articleRepo.FindByID(id)
	if err != nil {
		return err
	}
	if onTop && !article.IsPublished {
		return ErrTopRequiresPublished
	}
	article.OnTop = onTop
	return s.articleRepo.Update(article)
}

// DeleteArticle 删除一篇文章。
func (s *articleService) DeleteArticle(id uint) error {
	return s.articleRepo.Delete(id)
}

// resolveTags 把标签 ID 列表解析为标签实体，忽略已删除的标签。
func (s *articleService) resolveTags(tagIDs []uint) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tag, err := s.tagRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		if tag.IsDeleted {
			continue
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}
