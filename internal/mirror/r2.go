// Package mirror uploads the latest article snapshot to an S3-compatible
// bucket (Cloudflare R2). Uploads are best-effort: failures are logged and
// never affect the sync flow.
package mirror

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/tkaraca/newsdesk/internal/config"
	"github.com/tkaraca/newsdesk/internal/logger"
	"github.com/tkaraca/newsdesk/internal/models"
)

const snapshotKey = "articles.json"

// R2 mirrors snapshots into a bucket.
type R2 struct {
	client *s3.Client
	bucket string
}

// NewR2 builds the mirror from the R2_* configuration. Returns nil (and no
// error) when no endpoint is configured, so callers can skip wiring it.
func NewR2(ctx context.Context, cfg *config.Config) (*R2, error) {
	if cfg.R2Endpoint == "" {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.R2AccessKey, cfg.R2SecretKey, ""),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.R2Endpoint)
	})

	return &R2{client: client, bucket: cfg.R2Bucket}, nil
}

// Upload writes the article set to the bucket under a fixed key, replacing
// the previous snapshot.
func (r *R2) Upload(ctx context.Context, articles []models.Article) {
	data, err := json.Marshal(articles)
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to marshal snapshot for mirror")
		return
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(snapshotKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		logger.Get().Error().Err(err).Str("bucket", r.bucket).Msg("snapshot mirror upload failed")
		return
	}

	logger.Get().Debug().Int("articles", len(articles)).Msg("snapshot mirrored")
}
