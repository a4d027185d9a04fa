package sink

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"finedesk/internal/ports"

	"github.com/minio/minio-go/v7"
)

type fakeS3 struct {
	bucket, key, ct string
	body            string
}

func (f *fakeS3) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	b, _ := io.ReadAll(reader)
	f.bucket, f.key, f.ct, f.body = bucketName, objectName, opts.ContentType, string(b)
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: int64(len(b))}, nil
}

func TestCompoundSink_s3(t *testing.T) {
	fs3 := &fakeS3{}
	c := NewCompoundSink("s3://exports/pdf/", NewFileSink(), NewS3Sink(fs3))

	loc, err := c.Save(context.Background(), "fines_7.pdf", strings.NewReader("%PDF"), ports.Meta{ContentType: "application/pdf", Size: 4})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if fs3.bucket != "exports" {
		t.Fatalf("expected bucket exports, got %q", fs3.bucket)
	}
	if !strings.HasPrefix(fs3.key, "pdf/") || !strings.HasSuffix(fs3.key, "-fines_7.pdf") {
		t.Fatalf("unexpected key %q", fs3.key)
	}
	if fs3.ct != "application/pdf" || fs3.body != "%PDF" {
		t.Fatalf("unexpected upload ct=%q body=%q", fs3.ct, fs3.body)
	}
	if loc != "s3://exports/"+fs3.key {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestCompoundSink_file(t *testing.T) {
	dir := t.TempDir()
	c := NewCompoundSink("file://"+dir, NewFileSink(), nil)

	loc, err := c.Save(context.Background(), "../escape.pdf", strings.NewReader("%PDF"), ports.Meta{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if loc != filepath.Join(dir, "escape.pdf") {
		t.Fatalf("unexpected location %q", loc)
	}
	b, err := os.ReadFile(loc)
	if err != nil || string(b) != "%PDF" {
		t.Fatalf("file not written: %v %q", err, b)
	}
}

func TestCompoundSink_disabled(t *testing.T) {
	c := NewCompoundSink("", nil, nil)
	loc, err := c.Save(context.Background(), "x.pdf", strings.NewReader("x"), ports.Meta{})
	if err != nil || loc != "" {
		t.Fatalf("expected no-op, got %q %v", loc, err)
	}
}

func TestCompoundSink_s3NotConfigured(t *testing.T) {
	c := NewCompoundSink("s3://exports", NewFileSink(), nil)
	if _, err := c.Save(context.Background(), "x.pdf", strings.NewReader("x"), ports.Meta{}); err == nil {
		t.Fatalf("expected error without s3 sink")
	}
}

func TestParseS3Dest(t *testing.T) {
	b, p, err := parseS3Dest("s3://exports")
	if err != nil || b != "exports" || p != "" {
		t.Fatalf("unexpected %q %q %v", b, p, err)
	}
	if _, _, err := parseS3Dest("s3:///pdf"); err == nil {
		t.Fatalf("expected empty bucket error")
	}
}
