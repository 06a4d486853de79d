package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"newsdesk/common"
	"newsdesk/config"
	"newsdesk/types"
)

// Archive writes a JSON record of each stored article to S3.
type Archive struct {
	s3     *common.S3
	bucket string
	prefix string
}

// NewArchive returns nil when no bucket is configured; the scheduler then
// skips archiving entirely.
func NewArchive(ctx context.Context, cfg config.Config) (*Archive, error) {
	if cfg.S3Bucket == "" {
		return nil, nil
	}

	client, err := common.NewS3(ctx, common.S3Config{
		Region:       cfg.S3Region,
		Profile:      cfg.S3Profile,
		UsePathStyle: cfg.S3PathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &Archive{s3: client, bucket: cfg.S3Bucket, prefix: cfg.S3Prefix}, nil
}

func (a *Archive) Name() string { return "s3-archive" }

// Store uploads the article record under <prefix>articles/<id>.json.
func (a *Archive) Store(ctx context.Context, article *types.Article) error {
	if article == nil {
		return nil
	}

	b, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return err
	}

	id := article.ID
	if id == "" {
		id = article.SourceID
	}
	key := a.prefix + "articles/" + id + ".json"
	return a.s3.Put(ctx, a.bucket, key, bytes.NewReader(b), "application/json")
}
