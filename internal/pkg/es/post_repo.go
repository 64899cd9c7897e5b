package es

import (
	"RedBlack/internal/pkg/util"
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
)

const MaxSearchDepth = 400

type PostRepo interface {
	IndexPost(ctx context.Context, post *PostES, version int64) error
	DeletePost(ctx context.Context, id string) error
	SearchPostIDs(ctx context.Context, keyword string, from, size int) ([]string, int64, error)
}

type PostRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewPostRepo(client *elasticsearch.TypedClient) PostRepo {
	return &PostRepoImpl{client: client}
}

// IndexPost 以外部版本号写入，旧版本的消息被忽略
func (s *PostRepoImpl) IndexPost(ctx context.Context, post *PostES, version int64) error {
	post.Title = util.ToSimplified(post.Title)
	post.Content = util.ToSimplified(post.Content)

	_, err := s.client.Index(PostIndex).
		Id(post.ID).
		Document(post).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == ConflictCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id string) error {
	_, err := s.client.Delete(PostIndex, id).Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				return nil
			}
		}
		return err
	}

	return nil
}

// SearchPostIDs 标题、正文、标签全文检索，只取文档 ID
func (s *PostRepoImpl) SearchPostIDs(ctx context.Context, keyword string, from, size int) ([]string, int64, error) {
	if from >= MaxSearchDepth {
		return []string{}, 0, nil
	}

	resp, err := s.client.Search().
		Index(PostIndex).
		From(from).
		Size(size).
		TrackTotalHits(true).
		Query(&types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:  util.ToSimplified(keyword),
				Fields: []string{"title^2", "content", "tags"},
			},
		}).
		Source_(&types.SourceFilter{Includes: []string{"id"}}).
		Do(ctx)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Id_ != nil {
			ids = append(ids, *hit.Id_)
		}
	}
	var total int64
	if resp.Hits.Total != nil {
		total = resp.Hits.Total.Value
	}
	return ids, total, nil
}
