package repository

import (
	"gorm.io/gorm"

	"go-blog/internal/model"
)

// ArticleFilter 描述文章列表页的筛选条件，零值字段表示不筛选。
type ArticleFilter struct {
	// Key 对标题、摘要和正文做包含匹配。
	Key string
	// CategoryIDs 匹配任意一个分类（选中的分类及其直接子分类）。
	CategoryIDs []uint
	// TagID 匹配带有某个标签的文章。
	TagID uint
	// PubYearGte 匹配发表年份大于等于该值的文章。
	PubYearGte int
}

// ArticleRepository 接口定义了文章的数据操作方法。
type ArticleRepository interface {
	Create(article *model.Article) error
	Update(article *model.Article) error
	FindByID(id uint) (*model.Article, error)
	FindPublishedByID(id uint) (*model.Article, error)
	// ListPublished 返回已发布文章的一页，置顶优先，其余按发布时间倒序。
	ListPublished(filter ArticleFilter, offset, limit int) ([]model.Article, int64, error)
	// Archives 返回所有已发布文章，按发布时间倒序。
	Archives() ([]model.Article, error)
	// LatestPublished 返回最新发布的 limit 篇文章（不含置顶）。
	LatestPublished(limit int) ([]model.Article, error)
	// HottestPublished 返回浏览量最高的 limit 篇已发布文章。
	HottestPublished(limit int) ([]model.Article, error)
	// NextPublished / PrevPublished 按 id 顺序返回相邻的已发布文章，没有时返回 gorm.ErrRecordNotFound。
	NextPublished(id uint) (*model.Article, error)
	PrevPublished(id uint) (*model.Article, error)
	// IncrementViews 以一条原子 UPDATE 自增 pv 和/或 uv，两者都为 false 时不发起更新。
	IncrementViews(id uint, pv, uv bool) error
	ReplaceTags(article *model.Article, tags []model.Tag) error
	Delete(id uint) error
}

// articleRepository 是 ArticleRepository 接口的 GORM 实现。
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository 创建一个新的 ArticleRepository 实例。
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// Create 在数据库中插入一篇新文章。
func (r *articleRepository) Create(article *model.Article) error {
	return r.db.Create(article).Error
}

// Update 更新一篇已存在的文章。
func (r *articleRepository) Update(article *model.Article) error {
	return r.db.Save(article).Error
}

// FindByID 根据 ID 查找一篇文章（含标签）。
func (r *articleRepository) FindByID(id uint) (*model.Article, error) {
	var article model.Article
	err := r.db.Preload("Tags").First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// FindPublishedByID 根据 ID 查找一篇已发布的文章（含标签）。
func (r *articleRepository) FindPublishedByID(id uint) (*model.Article, error) {
	var article model.Article
	err := r.db.Preload("Tags").
		Where("is_published = ?", true).First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// applyFilter 把筛选条件拼到已发布文章的查询上。
func applyFilter(query *gorm.DB, filter ArticleFilter) *gorm.DB {
	if filter.Key != "" {
		pattern := "%" + filter.Key + "%"
		query = query.Where("title LIKE ? OR summary LIKE ? OR content LIKE ?", pattern, pattern, pattern)
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if filter.TagID != 0 {
		query = query.Where("id IN (?)",
			// 通过 m2m 关联表筛选，避免 JOIN 产生重复行
			query.Session(&gorm.Session{NewDB: true}).
				Table("article_tags").Select("article_id").
				Where("tag_id = ?", filter.TagID))
	}
	if filter.PubYearGte > 0 {
		query = query.Where("YEAR(pub_time) >= ?", filter.PubYearGte)
	}
	return query
}

// ListPublished 返回已发布文章的一页以及满足条件的总数。
func (r *articleRepository) ListPublished(filter ArticleFilter, offset, limit int) ([]model.Article, int64, error) {
	var articles []model.Article
	var total int64

	query := applyFilter(r.db.Model(&model.Article{}).Where("is_published = ?", true), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Tags").
		Order("on_top DESC, pub_time DESC").
		Offset(offset).Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// Archives 返回所有已发布文章，按发布时间倒序。
func (r *articleRepository) Archives() ([]model.Article, error) {
	var articles []model.Article
	err := r.db.Where("is_published = ?", true).
		Order("pub_time DESC").Find(&articles).Error
	return articles, err
}

// LatestPublished 返回最新发布的 limit 篇非置顶文章。
func (r *articleRepository) LatestPublished(limit int) ([]model.Article, error) {
	var articles []model.Article
	err := r.db.Where("is_published = ? AND on_top = ?", true, false).
		Order("pub_time DESC").Limit(limit).Find(&articles).Error
	return articles, err
}

// HottestPublished 返回浏览量最高的 limit 篇已发布文章。
func (r *articleRepository) HottestPublished(limit int) ([]model.Article, error) {
	var articles []model.Article
	err := r.db.Where("is_published = ?", true).
		Order("pv DESC").Limit(limit).Find(&articles).Error
	return articles, err
}

// NextPublished 返回 id 比给定值大的第一篇已发布文章。
func (r *articleRepository) NextPublished(id uint) (*model.Article, error) {
	var article model.Article
	err := r.db.Where("id > ? AND is_published = ?", id, true).
		Order("id").First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// PrevPublished 返回 id 比给定值小的最后一篇已发布文章。
func (r *articleRepository) PrevPublished(id uint) (*model.Article, error) {
	var article model.Article
	err := r.db.Where("id < ? AND is_published = ?", id, true).
		Order("id DESC").First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// IncrementViews 以一条 UPDATE 语句在数据库侧自增计数，
// 避免应用层读改写在并发下丢失更新。
func (r *articleRepository) IncrementViews(id uint, pv, uv bool) error {
	updates := map[string]interface{}{}
	if pv {
		updates["pv"] = gorm.Expr("pv + ?", 1)
	}
	if uv {
		updates["uv"] = gorm.Expr("uv + ?", 1)
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&model.Article{}).Where("id = ?", id).
		Updates(updates).Error
}

// ReplaceTags 重建文章与标签的关联关系。
func (r *articleRepository) ReplaceTags(article *model.Article, tags []model.Tag) error {
	return r.db.Model(article).Association("Tags").Replace(tags)
}

// Delete 物理删除一篇文章（仅管理后台使用）。
func (r *articleRepository) Delete(id uint) error {
	return r.db.Delete(&model.Article{}, id).Error
}
