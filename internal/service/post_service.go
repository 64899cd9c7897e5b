package service

import (
	"RedBlack/internal/api/dto"
	"RedBlack/internal/model"
	"RedBlack/internal/pkg/util"
	"RedBlack/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	minTitleLength   = 3
	minContentLength = 15
)

// ViewRecorder 浏览量缓冲
type ViewRecorder interface {
	RecordView(ctx context.Context, postID string) error
}

// PostSearcher 全文检索，返回按相关度排序的帖子 ID
type PostSearcher interface {
	SearchPostIDs(ctx context.Context, keyword string, from, size int) ([]string, int64, error)
}

type PostService interface {
	ListPosts(ctx context.Context, page, limit int, callerID string) (*dto.PostPageDTO, error)
	CreatePost(ctx context.Context, userID string, req *dto.PostCreateDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, postID, callerID string) (*dto.PostDTO, error)
	SearchPosts(ctx context.Context, keyword string, page, limit int, callerID string) (*dto.PostPageDTO, error)
}

type postServiceImpl struct {
	repos    *repository.Repos
	views    ViewRecorder
	searcher PostSearcher
	timeout  time.Duration
}

func NewPostService(repos *repository.Repos, views ViewRecorder, searcher PostSearcher, timeout time.Duration) PostService {
	return &postServiceImpl{
		repos:    repos,
		views:    views,
		searcher: searcher,
		timeout:  timeout,
	}
}

// ListPosts 评论数在读取时按评论表实时统计
func (s *postServiceImpl) ListPosts(ctx context.Context, page, limit int, callerID string) (*dto.PostPageDTO, error) {
	page, limit = normalizePage(page, limit)

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var (
		posts []*model.Post
		total int64
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = s.repos.Posts.ListPosts(gCtx, limit, (page-1)*limit)
		return errors.Wrap(err, "list posts")
	})
	g.Go(func() error {
		var err error
		total, err = s.repos.Posts.CountPosts(gCtx)
		return errors.Wrap(err, "count posts")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items, err := s.decorate(ctx, posts, callerID)
	if err != nil {
		return nil, err
	}
	return &dto.PostPageDTO{
		Items:      items,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// CreatePost 发布曝光帖，图片按提交顺序保存
func (s *postServiceImpl) CreatePost(ctx context.Context, userID string, req *dto.PostCreateDTO) (*dto.PostDTO, error) {
	if userID == "" {
		return nil, ErrNotLoggedIn
	}
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if util.RuneLen(title) < minTitleLength {
		return nil, ErrTitleTooShort
	}
	if util.RuneLen(content) < minContentLength {
		return nil, ErrContentTooShort
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.repos.Users.GetUserByID(ctx, userID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "get user")
	}

	post := &model.Post{
		UserID:  userID,
		Title:   title,
		Content: content,
		Tags:    util.NormalizeTags(req.Tags),
	}
	images := make([]*model.PostImage, 0, len(req.Images))
	for _, url := range req.Images {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		images = append(images, &model.PostImage{URL: url, SortOrder: len(images)})
	}
	if err := s.repos.Posts.CreatePost(ctx, post, images); err != nil {
		return nil, errors.Wrap(err, "create post")
	}

	saved, err := s.repos.Posts.GetPost(ctx, post.ID)
	if err != nil {
		return nil, errors.Wrap(err, "reload post")
	}
	return toPostDTO(saved), nil
}

// GetPost 帖子详情，同时记录一次浏览
func (s *postServiceImpl) GetPost(ctx context.Context, postID, callerID string) (*dto.PostDTO, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	post, err := s.repos.Posts.GetPost(ctx, postID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, errors.Wrap(err, "get post")
	}

	if s.views != nil {
		if err = s.views.RecordView(ctx, postID); err != nil {
			log.WarnContext(ctx, "record post view failed", "post_id", postID, "err", err)
		}
	}

	items, err := s.decorate(ctx, []*model.Post{post}, callerID)
	if err != nil {
		return nil, err
	}
	return items[0], nil
}

// SearchPosts 检索结果按相关度返回，数据以数据库为准
func (s *postServiceImpl) SearchPosts(ctx context.Context, keyword string, page, limit int, callerID string) (*dto.PostPageDTO, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrParamInvalid
	}
	if s.searcher == nil {
		return nil, ErrSearchUnavailable
	}
	page, limit = normalizePage(page, limit)

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	ids, total, err := s.searcher.SearchPostIDs(ctx, keyword, (page-1)*limit, limit)
	if err != nil {
		log.ErrorContext(ctx, "search posts failed", "keyword", keyword, "err", err)
		return nil, ErrSearchUnavailable
	}
	posts, err := s.repos.Posts.GetPostByIds(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "get posts by ids")
	}

	byID := make(map[string]*model.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}

	items, err := s.decorate(ctx, ordered, callerID)
	if err != nil {
		return nil, err
	}
	return &dto.PostPageDTO{
		Items:      items,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// decorate 批量补齐评论数与调用者的反应
func (s *postServiceImpl) decorate(ctx context.Context, posts []*model.Post, callerID string) ([]*dto.PostDTO, error) {
	items := make([]*dto.PostDTO, 0, len(posts))
	if len(posts) == 0 {
		return items, nil
	}
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	commentCounts, err := s.repos.Comments.CountByPostIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "count comments")
	}
	reactions, err := s.repos.Reactions.GetUserReactions(ctx, callerID, model.TargetPost, ids)
	if err != nil {
		return nil, errors.Wrap(err, "get user reactions")
	}

	for _, p := range posts {
		item := toPostDTO(p)
		item.CommentsCount = commentCounts[p.ID]
		if t, ok := reactions[p.ID]; ok {
			item.UserReaction = reactionPtr(t)
		}
		items = append(items, item)
	}
	return items, nil
}
