package minio

import (
	"RedBlack/internal/api/config"
	"context"
	"fmt"
	log "log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	// Client 全局 MinIO 客户端实例
	Client *minio.Client
	// MainBucket 图片存储桶
	MainBucket string

	publicEndpoint string
)

// Init 初始化 MinIO 客户端
func Init(cfg config.MinIOConfig) error {
	// 服务端走内网地址，返回给前端的链接用外部地址
	endpoint, useSSL := cfg.ExternalEndpoint, true
	if cfg.InternalEndpoint != "" {
		endpoint, useSSL = cfg.InternalEndpoint, cfg.InternalUseSSL
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize minio client: %w", err)
	}

	Client = client
	MainBucket = cfg.MainBucket
	publicEndpoint = cfg.ExternalEndpoint
	return EnsureBucket(context.Background())
}

// EnsureBucket 主桶不存在时创建并开放只读
func EnsureBucket(ctx context.Context) error {
	exists, err := Client.BucketExists(ctx, MainBucket)
	if err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if exists {
		return nil
	}
	if err = Client.MakeBucket(ctx, MainBucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("创建存储桶失败: %w", err)
	}
	policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, MainBucket)
	if err = Client.SetBucketPolicy(ctx, MainBucket, policy); err != nil {
		return fmt.Errorf("设置存储桶策略失败: %w", err)
	}
	log.Info("已创建图片存储桶", "bucket", MainBucket)
	return nil
}
