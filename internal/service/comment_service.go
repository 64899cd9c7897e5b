package service

import (
	"RedBlack/internal/api/dto"
	"RedBlack/internal/model"
	"RedBlack/internal/repository"
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type CommentService interface {
	CreateComment(ctx context.Context, userID, postID, content string) (*dto.CommentResultDTO, error)
	ListComments(ctx context.Context, postID string, page, limit int) (*dto.CommentPageDTO, error)
}

type commentServiceImpl struct {
	txManager repository.TxManager
	repos     *repository.Repos
	timeout   time.Duration
}

func NewCommentService(txManager repository.TxManager, repos *repository.Repos, timeout time.Duration) CommentService {
	return &commentServiceImpl{
		txManager: txManager,
		repos:     repos,
		timeout:   timeout,
	}
}

// CreateComment 发布评论并在帖子行锁内累加评论数
func (s *commentServiceImpl) CreateComment(ctx context.Context, userID, postID, content string) (*dto.CommentResultDTO, error) {
	if userID == "" {
		return nil, ErrNotLoggedIn
	}
	content, err := validateCommentContent(content)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	result := &dto.CommentResultDTO{}
	err = s.txManager.Execute(ctx, func(r *repository.Repos) error {
		if _, err := r.Posts.LockPost(ctx, postID); err != nil {
			if repository.IsNotFound(err) {
				return ErrPostNotFound
			}
			return errors.Wrap(err, "lock post")
		}

		comment := model.NewPostComment(userID, model.PostRef{ID: postID}, content)
		if err := r.Comments.CreateComment(ctx, comment); err != nil {
			return errors.Wrap(err, "create comment")
		}
		if err := r.Posts.IncrCounter(ctx, postID, "comments_count", 1); err != nil {
			return errors.Wrap(err, "incr comments count")
		}

		post, err := r.Posts.LockPost(ctx, postID)
		if err != nil {
			return errors.Wrap(err, "reload post")
		}
		saved, err := r.Comments.GetCommentWithUser(ctx, comment.ID)
		if err != nil {
			return errors.Wrap(err, "reload comment")
		}
		result.Comment = toCommentDTO(saved)
		result.CommentsCount = post.CommentsCount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListComments 分页获取帖子评论，最新的在前
func (s *commentServiceImpl) ListComments(ctx context.Context, postID string, page, limit int) (*dto.CommentPageDTO, error) {
	page, limit = normalizePage(page, limit)

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	exists, err := s.repos.Posts.ExistPost(ctx, postID)
	if err != nil {
		return nil, errors.Wrap(err, "check post")
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	var (
		comments []*model.Comment
		total    int64
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		comments, err = s.repos.Comments.ListByPost(gCtx, postID, limit, (page-1)*limit)
		return errors.Wrap(err, "list comments")
	})
	g.Go(func() error {
		var err error
		total, err = s.repos.Comments.CountByPost(gCtx, postID)
		return errors.Wrap(err, "count comments")
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	items := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		items = append(items, toCommentDTO(c))
	}
	return &dto.CommentPageDTO{
		Items:      items,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// validateCommentContent 去除首尾空白后校验长度，按字符计
func validateCommentContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrCommentEmpty
	}
	if utf8.RuneCountInString(trimmed) > model.MaxCommentLength {
		return "", ErrCommentTooLong
	}
	return trimmed, nil
}
