package job

import (
	"RedBlack/internal/model"
	"RedBlack/internal/pkg/logger"
	"RedBlack/internal/repository"
	"context"
	log "log/slog"
	"math"

	"github.com/google/uuid"
)

const ratingEpsilon = 1e-6

// Drift 计数列与明细表聚合结果不一致的一项
type Drift struct {
	Table    string
	ID       string
	Column   string
	Stored   float64
	Expected float64
}

// CounterAuditJob 核对反应、评分、评论计数，只记录不修正
type CounterAuditJob struct {
	repos *repository.Repos
}

func NewCounterAuditJob(repos *repository.Repos) *CounterAuditJob {
	return &CounterAuditJob{repos: repos}
}

func (s *CounterAuditJob) Run() {
	traceID := "job-audit-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)

	drifts, err := s.Audit(ctx)
	if err != nil {
		log.ErrorContext(ctx, "counter audit error", "err", err)
		return
	}
	for _, d := range drifts {
		log.WarnContext(ctx, "counter drift detected",
			"table", d.Table, "id", d.ID, "column", d.Column,
			"stored", d.Stored, "expected", d.Expected)
	}
	log.InfoContext(ctx, "counter audit finished", "drift_count", len(drifts))
}

// Audit 返回所有不一致项
func (s *CounterAuditJob) Audit(ctx context.Context) ([]Drift, error) {
	var drifts []Drift

	merchantDrifts, err := s.auditMerchants(ctx)
	if err != nil {
		return nil, err
	}
	drifts = append(drifts, merchantDrifts...)

	postDrifts, err := s.auditPosts(ctx)
	if err != nil {
		return nil, err
	}
	return append(drifts, postDrifts...), nil
}

func (s *CounterAuditJob) auditMerchants(ctx context.Context) ([]Drift, error) {
	merchants, err := s.repos.Merchants.ListMerchants(ctx)
	if err != nil {
		return nil, err
	}
	reactions, err := s.reactionCounts(ctx, model.TargetMerchant)
	if err != nil {
		return nil, err
	}
	aggs, err := s.repos.Ratings.AggregateAll(ctx)
	if err != nil {
		return nil, err
	}
	ratings := make(map[string]repository.RatingAggregate, len(aggs))
	for _, a := range aggs {
		ratings[a.MerchantID] = a
	}

	var drifts []Drift
	for _, m := range merchants {
		c := reactions[m.ID]
		drifts = appendIntDrift(drifts, "merchants", m.ID, "likes_count", m.LikesCount, c.likes)
		drifts = appendIntDrift(drifts, "merchants", m.ID, "dislikes_count", m.DislikesCount, c.dislikes)

		agg := ratings[m.ID]
		drifts = appendIntDrift(drifts, "merchants", m.ID, "total_ratings", m.TotalRatings, agg.Total)
		if math.Abs(m.AverageRating-agg.Average) > ratingEpsilon {
			drifts = append(drifts, Drift{"merchants", m.ID, "average_rating", m.AverageRating, agg.Average})
		}
	}
	return drifts, nil
}

func (s *CounterAuditJob) auditPosts(ctx context.Context) ([]Drift, error) {
	posts, err := s.repos.Posts.ListPostCounters(ctx)
	if err != nil {
		return nil, err
	}
	reactions, err := s.reactionCounts(ctx, model.TargetPost)
	if err != nil {
		return nil, err
	}
	comments, err := s.repos.Comments.CountByPostIDs(ctx, nil)
	if err != nil {
		return nil, err
	}

	var drifts []Drift
	for _, p := range posts {
		c := reactions[p.ID]
		drifts = appendIntDrift(drifts, "posts", p.ID, "likes_count", p.LikesCount, c.likes)
		drifts = appendIntDrift(drifts, "posts", p.ID, "dislikes_count", p.DislikesCount, c.dislikes)
		drifts = appendIntDrift(drifts, "posts", p.ID, "comments_count", p.CommentsCount, comments[p.ID])
	}
	return drifts, nil
}

type likeDislike struct {
	likes    int64
	dislikes int64
}

func (s *CounterAuditJob) reactionCounts(ctx context.Context, kind model.TargetKind) (map[string]likeDislike, error) {
	rows, err := s.repos.Reactions.CountGroupByTarget(ctx, kind)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]likeDislike)
	for _, row := range rows {
		c := counts[row.TargetID]
		if row.Type == model.ReactionDislike {
			c.dislikes += row.Count
		} else {
			c.likes += row.Count
		}
		counts[row.TargetID] = c
	}
	return counts, nil
}

func appendIntDrift(drifts []Drift, table, id, column string, stored, expected int64) []Drift {
	if stored == expected {
		return drifts
	}
	return append(drifts, Drift{table, id, column, float64(stored), float64(expected)})
}
