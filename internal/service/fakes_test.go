package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"go-blog/internal/model"
	"go-blog/internal/repository"
	"go-blog/pkg/cache"
)

// fakeCache 是 cache.Cache 的内存实现，支持注入读写错误。
// 不模拟过期，测试通过直接删除键来模拟窗口到期。
type fakeCache struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
	delErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	if c.delErr != nil {
		return c.delErr
	}
	delete(c.data, key)
	delete(c.ttls, key)
	return nil
}

// fakeCategoryRepo 是 repository.CategoryRepository 的内存实现。
type fakeCategoryRepo struct {
	categories []model.Category
	nextID     uint
}

func newFakeCategoryRepo(categories ...model.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: categories}
	for _, c := range categories {
		if c.ID >= r.nextID {
			r.nextID = c.ID
		}
	}
	return r
}

func (r *fakeCategoryRepo) Create(category *model.Category) error {
	r.nextID++
	category.ID = r.nextID
	r.categories = append(r.categories, *category)
	return nil
}

func (r *fakeCategoryRepo) FindByID(id uint) (*model.Category, error) {
	for i := range r.categories {
		if r.categories[i].ID == id {
			c := r.categories[i]
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCategoryRepo) FindNavigable() ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.categories {
		if !c.IsDeleted && c.IsNav {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Sort != out[j].Sort {
			return out[i].Sort < out[j].Sort
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakeCategoryRepo) FindActive() ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.categories {
		if !c.IsDeleted {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) FindChildIDs(parentID uint) ([]uint, error) {
	var ids []uint
	for _, c := range r.categories {
		if !c.IsDeleted && c.ParentID != nil && *c.ParentID == parentID {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

func (r *fakeCategoryRepo) Update(category *model.Category) error {
	for i := range r.categories {
		if r.categories[i].ID == category.ID {
			r.categories[i] = *category
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeCategoryRepo) SoftDelete(id uint) error {
	for i := range r.categories {
		if r.categories[i].ID == id {
			r.categories[i].IsDeleted = true
			return nil
		}
	}
	return nil
}

// fakeUserRepo 是 repository.UserRepository 的内存实现。
type fakeUserRepo struct {
	users  []model.User
	nextID uint
}

func newFakeUserRepo(users ...model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: users}
	for _, u := range users {
		if u.ID >= r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *fakeUserRepo) Create(user *model.User) error {
	r.nextID++
	user.ID = r.nextID
	r.users = append(r.users, *user)
	return nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	for i := range r.users {
		if r.users[i].Username == username {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByID(userID uint) (*model.User, error) {
	for i := range r.users {
		if r.users[i].ID == userID {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindBatchByIDs(ids []uint) ([]model.User, error) {
	want := make(map[uint]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []model.User
	for _, u := range r.users {
		if want[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	for i := range r.users {
		if r.users[i].ID == user.ID {
			r.users[i] = *user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// fakeTagRepo 是 repository.TagRepository 的内存实现。
type fakeTagRepo struct {
	tags   []model.Tag
	nextID uint
}

func newFakeTagRepo(tags ...model.Tag) *fakeTagRepo {
	r := &fakeTagRepo{tags: tags}
	for _, t := range tags {
		if t.ID >= r.nextID {
			r.nextID = t.ID
		}
	}
	return r
}

func (r *fakeTagRepo) Create(tag *model.Tag) error {
	r.nextID++
	tag.ID = r.nextID
	r.tags = append(r.tags, *tag)
	return nil
}

func (r *fakeTagRepo) FindByID(id uint) (*model.Tag, error) {
	for i := range r.tags {
		if r.tags[i].ID == id {
			t := r.tags[i]
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTagRepo) FindByName(name string) (*model.Tag, error) {
	for i := range r.tags {
		if r.tags[i].Name == name && !r.tags[i].IsDeleted {
			t := r.tags[i]
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTagRepo) FindActiveWithCount() ([]model.Tag, error) {
	var out []model.Tag
	for _, t := range r.tags {
		if !t.IsDeleted {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTagRepo) Update(tag *model.Tag) error {
	for i := range r.tags {
		if r.tags[i].ID == tag.ID {
			r.tags[i] = *tag
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeTagRepo) SoftDelete(id uint) error {
	for i := range r.tags {
		if r.tags[i].ID == id {
			r.tags[i].IsDeleted = true
			return nil
		}
	}
	return nil
}

// incrementCall 记录一次 IncrementViews 调用的参数。
type incrementCall struct {
	id uint
	pv bool
	uv bool
}

// fakeArticleRepo 是 repository.ArticleRepository 的内存实现。
// ListPublished 只记录收到的参数并返回预置的结果，筛选逻辑属于 SQL 层，不在这里重演。
type fakeArticleRepo struct {
	articles []model.Article

	listResult   []model.Article
	listTotal    int64
	listFilter   repository.ArticleFilter
	listOffset   int
	listLimit    int
	latest       []model.Article
	hottest      []model.Article
	increments   []incrementCall
	incrementErr error
}

func newFakeArticleRepo(articles ...model.Article) *fakeArticleRepo {
	return &fakeArticleRepo{articles: articles}
}

func (r *fakeArticleRepo) Create(article *model.Article) error {
	article.ID = uint(len(r.articles) + 1)
	r.articles = append(r.articles, *article)
	return nil
}

func (r *fakeArticleRepo) Update(article *model.Article) error {
	for i := range r.articles {
		if r.articles[i].ID == article.ID {
			r.articles[i] = *article
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeArticleRepo) FindByID(id uint) (*model.Article, error) {
	for i := range r.articles {
		if r.articles[i].ID == id {
			a := r.articles[i]
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeArticleRepo) FindPublishedByID(id uint) (*model.Article, error) {
	for i := range r.articles {
		if r.articles[i].ID == id && r.articles[i].IsPublished {
			a := r.articles[i]
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeArticleRepo) ListPublished(filter repository.ArticleFilter, offset, limit int) ([]model.Article, int64, error) {
	r.listFilter = filter
	r.listOffset = offset
	r.listLimit = limit
	return r.listResult, r.listTotal, nil
}

func (r *fakeArticleRepo) Archives() ([]model.Article, error) {
	var out []model.Article
	for _, a := range r.articles {
		if a.IsPublished {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeArticleRepo) LatestPublished(limit int) ([]model.Article, error) {
	if len(r.latest) > limit {
		return r.latest[:limit], nil
	}
	return r.latest, nil
}

func (r *fakeArticleRepo) HottestPublished(limit int) ([]model.Article, error) {
	if len(r.hottest) > limit {
		return r.hottest[:limit], nil
	}
	return r.hottest, nil
}

func (r *fakeArticleRepo) NextPublished(id uint) (*model.Article, error) {
	var best *model.Article
	for i := range r.articles {
		a := r.articles[i]
		if !a.IsPublished || a.ID <= id {
			continue
		}
		if best == nil || a.ID < best.ID {
			best = &r.articles[i]
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	a := *best
	return &a, nil
}

func (r *fakeArticleRepo) PrevPublished(id uint) (*model.Article, error) {
	var best *model.Article
	for i := range r.articles {
		a := r.articles[i]
		if !a.IsPublished || a.ID >= id {
			continue
		}
		if best == nil || a.ID > best.ID {
			best = &r.articles[i]
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	a := *best
	return &a, nil
}

func (r *fakeArticleRepo) IncrementViews(id uint, pv, uv bool) error {
	if r.incrementErr != nil {
		return r.incrementErr
	}
	r.increments = append(r.increments, incrementCall{id: id, pv: pv, uv: uv})
	for i := range r.articles {
		if r.articles[i].ID == id {
			if pv {
				r.articles[i].PV++
			}
			if uv {
				r.articles[i].UV++
			}
		}
	}
	return nil
}

func (r *fakeArticleRepo) ReplaceTags(article *model.Article, tags []model.Tag) error {
	for i := range r.articles {
		if r.articles[i].ID == article.ID {
			r.articles[i].Tags = tags
			return nil
		}
	}
	return nil
}

func (r *fakeArticleRepo) Delete(id uint) error {
	for i := range r.articles {
		if r.articles[i].ID == id {
			r.articles = append(r.articles[:i], r.articles[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeCommentRepo 是 repository.CommentRepository 的内存实现。
type fakeCommentRepo struct {
	comments []model.Comment
	nextID   uint
}

func newFakeCommentRepo(comments ...model.Comment) *fakeCommentRepo {
	r := &fakeCommentRepo{comments: comments}
	for _, c := range comments {
		if c.ID >= r.nextID {
			r.nextID = c.ID
		}
	}
	return r
}

func (r *fakeCommentRepo) Create(comment *model.Comment) error {
	r.nextID++
	comment.ID = r.nextID
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) FindByID(id uint) (*model.Comment, error) {
	for i := range r.comments {
		if r.comments[i].ID == id {
			c := r.comments[i]
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCommentRepo) FindActiveByArticle(articleID uint) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range r.comments {
		if c.ArticleID == articleID && !c.IsDeleted {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakeCommentRepo) LatestActive(limit int) ([]model.Comment, error) {
	var out []model.Comment
	for i := len(r.comments) - 1; i >= 0 && len(out) < limit; i-- {
		if !r.comments[i].IsDeleted {
			out = append(out, r.comments[i])
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) SoftDelete(id uint) error {
	for i := range r.comments {
		if r.comments[i].ID == id {
			r.comments[i].IsDeleted = true
			return nil
		}
	}
	return nil
}

// fakeSiteConfigRepo 是 repository.SiteConfigRepository 的内存实现。
type fakeSiteConfigRepo struct {
	links    []model.Link
	sidebars []model.SideBar
	settings []model.BlogSettings
	// findErr 注入 FindEnabledSettings 的错误，用于验证缓存命中时不回源。
	findErr error
}

func newFakeSiteConfigRepo() *fakeSiteConfigRepo {
	return &fakeSiteConfigRepo{}
}

func (r *fakeSiteConfigRepo) CreateLink(link *model.Link) error {
	link.ID = uint(len(r.links) + 1)
	r.links = append(r.links, *link)
	return nil
}

func (r *fakeSiteConfigRepo) UpdateLink(link *model.Link) error {
	for i := range r.links {
		if r.links[i].ID == link.ID {
			r.links[i] = *link
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeSiteConfigRepo) DeleteLink(id uint) error {
	for i := range r.links {
		if r.links[i].ID == id {
			r.links = append(r.links[:i], r.links[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeSiteConfigRepo) FindEnabledLinks() ([]model.Link, error) {
	var out []model.Link
	for _, l := range r.links {
		if l.IsEnable {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeSiteConfigRepo) CreateSideBar(sidebar *model.SideBar) error {
	sidebar.ID = uint(len(r.sidebars) + 1)
	r.sidebars = append(r.sidebars, *sidebar)
	return nil
}

func (r *fakeSiteConfigRepo) UpdateSideBar(sidebar *model.SideBar) error {
	for i := range r.sidebars {
		if r.sidebars[i].ID == sidebar.ID {
			r.sidebars[i] = *sidebar
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeSiteConfigRepo) DeleteSideBar(id uint) error {
	for i := range r.sidebars {
		if r.sidebars[i].ID == id {
			r.sidebars = append(r.sidebars[:i], r.sidebars[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeSiteConfigRepo) FindEnabledSideBars() ([]model.SideBar, error) {
	var out []model.SideBar
	for _, sb := range r.sidebars {
		if sb.IsEnable {
			out = append(out, sb)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *fakeSiteConfigRepo) CreateSettings(settings *model.BlogSettings) error {
	settings.ID = uint(len(r.settings) + 1)
	r.settings = append(r.settings, *settings)
	return nil
}

func (r *fakeSiteConfigRepo) UpdateSettings(settings *model.BlogSettings) error {
	for i := range r.settings {
		if r.settings[i].ID == settings.ID {
			r.settings[i] = *settings
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeSiteConfigRepo) FindSettingsByID(id uint) (*model.BlogSettings, error) {
	for i := range r.settings {
		if r.settings[i].ID == id {
			s := r.settings[i]
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSiteConfigRepo) FindAllSettings() ([]model.BlogSettings, error) {
	return r.settings, nil
}

func (r *fakeSiteConfigRepo) FindEnabledSettings() ([]model.BlogSettings, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []model.BlogSettings
	for _, s := range r.settings {
		if s.IsEnable {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSiteConfigRepo) CountEnabledSettingsExcept(id uint) (int64, error) {
	var count int64
	for _, s := range r.settings {
		if s.IsEnable && s.ID != id {
			count++
		}
	}
	return count, nil
}

func uintPtr(v uint) *uint { return &v }
