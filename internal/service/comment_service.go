package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-blog/internal/model"
	"go-blog/internal/repository"
)

var (
	// ErrArticleNotFound 表示目标文章不存在或尚未发布。
	ErrArticleNotFound = errors.New("文章不存在")
	// ErrCommentClosed 表示站点或文章关闭了评论功能。
	ErrCommentClosed = errors.New("评论功能已关闭")
	// ErrParentCommentInvalid 表示上级评论不存在、已删除或不属于同一篇文章。
	ErrParentCommentInvalid = errors.New("上级评论无效")
	// ErrCommentNotFound 表示目标评论不存在。
	ErrCommentNotFound = errors.New("评论不存在")
	// ErrNotCommentOwner 表示操作者既不是评论作者也不是管理员。
	ErrNotCommentOwner = errors.New("没有权限删除该评论")
)

// CommentService 接口定义了评论相关的业务操作。
type CommentService interface {
	// CommentTree 返回一篇文章下未删除评论组成的树，root 为 0 时从顶层评论开始。
	CommentTree(articleID, root uint) ([]*model.CommentNode, error)
	AddComment(ctx context.Context, articleID uint, content string, parentID *uint, author *model.User) (*model.Comment, error)
	DeleteComment(id uint, actor *model.User) error
	// LatestComments 返回全站最近的 limit 条评论。
	LatestComments(limit int) ([]model.Comment, error)
}

// commentService 是 CommentService 接口的实现。
type commentService struct {
	commentRepo   repository.CommentRepository
	articleRepo   repository.ArticleRepository
	userRepo      repository.UserRepository
	configService ConfigService
}

// NewCommentService 创建一个新的 CommentService 实例。
func NewCommentService(commentRepo repository.CommentRepository, articleRepo repository.ArticleRepository, userRepo repository.UserRepository, configService ConfigService) CommentService {
	return &commentService{
		commentRepo:   commentRepo,
		articleRepo:   articleRepo,
		userRepo:      userRepo,
		configService: configService,
	}
}

// CommentTree 把一篇文章的平面评论关系组装成树。
// 一次查询取出全部未删除评论（按创建时间排序），再按父子索引递归组装，
// 作者信息按去重后的 id 批量补充。
// 没有评论时返回空切片而不是错误；叶子节点的 Children 为空切片。
func (s *commentService) CommentTree(articleID, root uint) ([]*model.CommentNode, error) {
	comments, err := s.commentRepo.FindActiveByArticle(articleID)
	if err != nil {
		return nil, err
	}

	authors, err := s.loadAuthors(comments)
	if err != nil {
		return nil, err
	}

	// 以上级评论 id 为键索引直接回复，顶层评论挂在键 0 下
	children := make(map[uint][]model.Comment)
	for _, c := range comments {
		parent := uint(0)
		if c.ParentID != nil {
			parent = *c.ParentID
		}
		children[parent] = append(children[parent], c)
	}

	var build func(parent uint) []*model.CommentNode
	build = func(parent uint) []*model.CommentNode {
		nodes := make([]*model.CommentNode, 0, len(children[parent]))
		for _, c := range children[parent] {
			nodes = append(nodes, &model.CommentNode{
				Current:  c,
				Author:   authors[c.AuthorID],
				Children: build(c.ID),
			})
		}
		return nodes
	}
	return build(root), nil
}

// loadAuthors 批量查出评论作者，返回以用户 id 为键的映射。
func (s *commentService) loadAuthors(comments []model.Comment) (map[uint]*model.User, error) {
	ids := make([]uint, 0, len(comments))
	seen := make(map[uint]bool, len(comments))
	for _, c := range comments {
		if !seen[c.AuthorID] {
			seen[c.AuthorID] = true
			ids = append(ids, c.AuthorID)
		}
	}
	if len(ids) == 0 {
		return map[uint]*model.User{}, nil
	}

	users, err := s.userRepo.FindBatchByIDs(ids)
	if err != nil {
		return nil, err
	}
	authors := make(map[uint]*model.User, len(users))
	for i := range users {
		authors[users[i].ID] = &users[i]
	}
	return authors, nil
}

// AddComment 为一篇文章新增评论。
// 校验：文章必须已发布且允许评论，站点评论开关必须打开，
// 上级评论（如果有）必须属于同一篇文章且未被删除。
func (s *commentService) AddComment(ctx context.Context, articleID uint, content string, parentID *uint, author *model.User) (*model.Comment, error) {
	setting, err := s.configService.GetBlogSettings(ctx)
	if err != nil {
		return nil, err
	}
	if !setting.OpenSiteComment {
		return nil, ErrCommentClosed
	}

	article, err := s.articleRepo.FindPublishedByID(articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	if !article.CommentAllowed {
		return nil, ErrCommentClosed
	}

	if parentID != nil {
		parent, err := s.commentRepo.FindByID(*parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentCommentInvalid
			}
			return nil, err
		}
		if parent.IsDeleted || parent.ArticleID != articleID {
			return nil, ErrParentCommentInvalid
		}
	}

	comment := &model.Comment{
		ArticleID: articleID,
		Content:   content,
		AuthorID:  author.ID,
		ParentID:  parentID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment 软删除一条评论，仅允许评论作者本人或管理员操作。
func (s *commentService) DeleteComment(id uint, actor *model.User) error {
	comment, err := s.commentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.AuthorID != actor.ID && !actor.IsAdmin() {
		return ErrNotCommentOwner
	}
	return s.commentRepo.SoftDelete(id)
}

// LatestComments 返回全站最近的 limit 条评论。
func (s *commentService) LatestComments(limit int) ([]model.Comment, error) {
	return s.commentRepo.LatestActive(limit)
}
