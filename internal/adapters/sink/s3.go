package sink

import (
	"context"
	"fmt"
	"io"
	"log"

	"finedesk/internal/ports"

	"github.com/minio/minio-go/v7"
)

type S3Client interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type S3Sink struct{ Client S3Client }

func NewS3Sink(cli S3Client) *S3Sink { return &S3Sink{Client: cli} }

func (s *S3Sink) Save(ctx context.Context, bucket, key string, r io.Reader, meta ports.Meta) (string, error) {
	ct := meta.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	size := meta.Size
	if size <= 0 {
		size = -1
	}

	log.Printf("[SINK][S3][START] bucket=%q key=%q size=%d", bucket, key, size)
	info, err := s.Client.PutObject(ctx, bucket, key, r, size, minio.PutObjectOptions{ContentType: ct})
	if err != nil {
		log.Printf("[SINK][S3][ERR] put: %v", err)
		return "", fmt.Errorf("s3 put: %w", err)
	}
	log.Printf("[SINK][S3][OK] bucket=%q key=%q size=%d etag=%q", bucket, key, info.Size, info.ETag)
	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}
