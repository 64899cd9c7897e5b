package es

import (
	"RedBlack/internal/api/config"
	"RedBlack/internal/pkg/logger"
	"context"
	log "log/slog"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/indices/create"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

var Client *elasticsearch.TypedClient

var PostIndex string

const (
	NotFoundCode = 404
	ConflictCode = 409
)

// InitClient 初始化 Elasticsearch 客户端
func InitClient(elasticCfg config.ElasticConfig) error {
	PostIndex = elasticCfg.Indices.PostIndex

	cfg := elasticsearch.Config{
		Addresses: []string{elasticCfg.Address},
		Username:  elasticCfg.Username,
		Password:  elasticCfg.Password,
		Transport: &logger.ESTransport{
			Transport: http.DefaultTransport,
		},
	}

	var err error
	Client, err = elasticsearch.NewTypedClient(cfg)
	if err != nil {
		log.Error("Cannot Connect to Elasticsearch", "err", err)
		return err
	}

	info, err := Client.Info().Do(context.Background())
	if err != nil {
		log.Error("Cannot Connect to Elasticsearch", "err", err)
		return err
	}

	log.Info("Connected to Elasticsearch", "version", info.Version.Int)
	return EnsurePostIndex(context.Background())
}

// EnsurePostIndex 索引不存在时按固定 Mapping 创建
func EnsurePostIndex(ctx context.Context) error {
	exists, err := Client.Indices.Exists(PostIndex).Do(ctx)
	if err != nil || exists {
		return err
	}

	_, err = Client.Indices.Create(PostIndex).Request(&create.Request{
		Mappings: &types.TypeMapping{
			Properties: map[string]types.Property{
				"id":             types.NewKeywordProperty(),
				"user_id":        types.NewKeywordProperty(),
				"title":          types.NewTextProperty(),
				"content":        types.NewTextProperty(),
				"tags":           types.NewKeywordProperty(),
				"likes_count":    types.NewLongNumberProperty(),
				"dislikes_count": types.NewLongNumberProperty(),
				"created_at":     types.NewDateProperty(),
			},
		},
	}).Do(ctx)
	if err != nil {
		return err
	}
	log.Info("Elasticsearch index created", "index", PostIndex)
	return nil
}
