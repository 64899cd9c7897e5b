package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repos 绑定到同一个 *gorm.DB（可以是事务句柄）的仓储集合
type Repos struct {
	Users     UserRepo
	Merchants MerchantRepo
	Posts     PostRepo
	Reactions ReactionRepo
	Ratings   RatingRepo
	Comments  CommentRepo
}

func NewRepos(db *gorm.DB) *Repos {
	return &Repos{
		Users:     NewUserRepo(db),
		Merchants: NewMerchantRepo(db),
		Posts:     NewPostRepo(db),
		Reactions: NewReactionRepo(db),
		Ratings:   NewRatingRepo(db),
		Comments:  NewCommentRepo(db),
	}
}

// TxManager 在单个事务内执行一组仓储操作，fn 返回 error 时整体回滚
type TxManager interface {
	Execute(ctx context.Context, fn func(r *Repos) error) error
}

type txManagerImpl struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &txManagerImpl{db: db}
}

func (m *txManagerImpl) Execute(ctx context.Context, fn func(r *Repos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepos(tx))
	})
}
