package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"finedesk/internal/ports"
)

// CompoundSink routes archived downloads by the configured destination:
// "s3://bucket/prefix", "file:///dir" or a bare directory. An empty
// destination disables archiving.
type CompoundSink struct {
	File *FileSink
	S3   *S3Sink

	Dest string
}

func NewCompoundSink(dest string, fileSink *FileSink, s3Sink *S3Sink) *CompoundSink {
	return &CompoundSink{File: fileSink, S3: s3Sink, Dest: strings.TrimSpace(dest)}
}

func (c *CompoundSink) Save(ctx context.Context, name string, r io.Reader, meta ports.Meta) (string, error) {
	switch {
	case c.Dest == "":
		return "", nil

	case strings.HasPrefix(c.Dest, "s3://"):
		if c.S3 == nil {
			return "", errors.New("s3 sink not configured")
		}
		bkt, prefix, err := parseS3Dest(c.Dest)
		if err != nil {
			return "", err
		}
		key := path.Join(prefix, fmt.Sprintf("%d-%s", time.Now().UnixNano(), path.Base(name)))
		meta.Bucket, meta.Key = bkt, key
		return c.S3.Save(ctx, bkt, key, r, meta)

	default:
		if c.File == nil {
			return "", errors.New("file sink not configured")
		}
		return c.File.Save(ctx, strings.TrimPrefix(c.Dest, "file://"), name, r, meta)
	}
}

func parseS3Dest(raw string) (bucket, prefix string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "s3" {
		return "", "", errors.New("scheme must be s3")
	}
	bucket = u.Host
	if bucket == "" {
		return "", "", errors.New("empty bucket")
	}
	prefix = strings.Trim(path.Clean("/"+u.Path), "/")
	return bucket, prefix, nil
}
