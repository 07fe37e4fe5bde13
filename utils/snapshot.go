// utils/snapshot.go
package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gosimple/slug"

	appconfig "player-registry/config"
	"player-registry/models"
)

// ObjectPutter is the part of the S3 client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// SnapshotUploader writes player snapshots to an S3-compatible bucket (R2).
type SnapshotUploader struct {
	client ObjectPutter
	bucket string
	now    func() time.Time
}

// NewSnapshotUploader builds an S3 client for the configured R2 account.
func NewSnapshotUploader(ctx context.Context, oc appconfig.ObjectStoreConfig) (*SnapshotUploader, error) {
	if err := oc.Validate(); err != nil {
		return nil, err
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			oc.AccessKeyID, oc.AccessKeySecret, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(oc.EndpointURL())
		o.UsePathStyle = true
	})
	return NewSnapshotUploaderWithClient(client, oc.Bucket), nil
}

func NewSnapshotUploaderWithClient(client ObjectPutter, bucket string) *SnapshotUploader {
	return &SnapshotUploader{client: client, bucket: bucket, now: time.Now}
}

// SnapshotKey names the object for a snapshot taken at t,
// e.g. "snapshots/nightly-backup-20260101T030000Z.json".
func SnapshotKey(label string, t time.Time) string {
	name := slug.Make(label)
	if name == "" {
		name = "players"
	}
	return fmt.Sprintf("snapshots/%s-%s.json", name, t.UTC().Format("20060102T150405Z"))
}

// Upload stores players as a JSON array and returns the object key.
func (u *SnapshotUploader) Upload(ctx context.Context, label string, players []models.Player) (string, error) {
	if players == nil {
		players = []models.Player{}
	}
	body, err := json.Marshal(players)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := SnapshotKey(label, u.now())
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}
	return key, nil
}
