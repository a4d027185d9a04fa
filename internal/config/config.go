package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"finedesk/internal/config/connections/mongo"
	"finedesk/internal/config/connections/postgres"
	"finedesk/internal/config/connections/s3"

	"github.com/joho/godotenv"
)

// Settings is everything read from the environment.
type Settings struct {
	Port       string
	APIBaseURL string
	APITimeout time.Duration
	NoticeTTL  time.Duration
	// PDFArchive is where downloaded reports are copied: s3://bucket/prefix,
	// file:///dir or a bare directory. Empty disables archiving.
	PDFArchive string

	S3       s3.ConnectionInfo
	Mongo    mongo.ConnectionInfo
	Postgres postgres.ConnectionInfo
}

type Config struct {
	Settings
	S3       *s3.S3
	Mongo    *mongo.Mongo
	Postgres *postgres.Postgres
}

// Load reads .env (if any) and the environment.
func Load() Settings {
	_ = godotenv.Load()

	bucket := getenv("AWS_BUCKET", "finedesk")

	return Settings{
		Port:       getenv("SERVER_PORT", "8070"),
		APIBaseURL: strings.TrimRight(getenv("API_BASE_URL", "http://localhost:8000/api"), "/"),
		APITimeout: time.Duration(getint("API_TIMEOUT_SECONDS", 15)) * time.Second,
		NoticeTTL:  time.Duration(getint("NOTICE_TTL_MS", 3000)) * time.Millisecond,
		PDFArchive: os.ExpandEnv(getenv("PDF_ARCHIVE", "s3://"+bucket+"/charged-fines")),

		S3: s3.ConnectionInfo{
			Endpoint:  getenv("AWS_ENDPOINT", "http://localhost:9000"),
			AccessKey: getenv("AWS_ACCESS_KEY_ID", "minioadmin"),
			SecretKey: getenv("AWS_SECRET_ACCESS_KEY", "minioadmin"),
			Region:    getenv("AWS_DEFAULT_REGION", "us-east-1"),
			Bucket:    bucket,
			UseSSL:    getenv("AWS_USE_SSL", "false") == "true",
		},
		Mongo: mongo.ConnectionInfo{
			URI:        os.Getenv("MONGO_URI"),
			Scheme:     getenv("MONGO_SCHEME", "mongodb"),
			User:       getenv("MONGO_USER", "root"),
			Password:   getenv("MONGO_PASSWORD", "secret"),
			Host:       getenv("MONGO_HOST", "127.0.0.1"),
			Port:       getenv("MONGO_PORT", "27017"),
			DB:         getenv("MONGO_DB", "finedesk"),
			AuthSource: getenv("MONGO_AUTH_SOURCE", "admin"),
		},
		Postgres: postgres.ConnectionInfo{
			Host:     getenv("PG_HOST", "127.0.0.1"),
			Port:     getenv("PG_PORT", "5432"),
			User:     getenv("PG_USER", "root"),
			Password: getenv("PG_PASSWORD", "hello-world"),
			DB:       getenv("PG_DB", "finedesk"),
			SSLMode:  getenv("PG_SSLMODE", "disable"),
			MaxConns: int32(getint("PG_MAX_CONNS", 0)),
		},
	}
}

// Init loads settings and opens every connection. It exits on failure.
func Init(ctx context.Context) *Config {
	st := Load()

	s3c, err := s3.NewConnection(st.S3)
	if err != nil {
		log.Fatal("S3 connect error:", err)
	}

	mg, err := mongo.NewConnection(ctx, st.Mongo)
	if err != nil {
		log.Fatal("Mongo connect error:", err)
	}

	pg, err := postgres.NewConnection(ctx, st.Postgres)
	if err != nil {
		log.Fatal("Postgres connect error:", err)
	}

	log.Printf("[CONFIG] api=%s timeout=%s archive=%q", st.APIBaseURL, st.APITimeout, st.PDFArchive)
	return &Config{
		Settings: st,
		S3:       s3c,
		Mongo:    mg,
		Postgres: pg,
	}
}

func (c *Config) CheckConnections(ctx context.Context) error {
	var errs []error

	if c.Postgres == nil || c.Postgres.Pool == nil {
		errs = append(errs, errors.New("postgres not initialized"))
	} else if err := c.Postgres.Pool.Ping(ctx); err != nil {
		errs = append(errs, fmt.Errorf("postgres ping failed: %w", err))
	}

	if c.Mongo == nil || c.Mongo.Client == nil {
		errs = append(errs, errors.New("mongo not initialized"))
	} else if err := c.Mongo.Client.Ping(ctx, nil); err != nil {
		errs = append(errs, fmt.Errorf("mongo ping failed: %w", err))
	}

	if bucket, ok := c.ArchiveBucket(); ok {
		if c.S3 == nil || c.S3.Client == nil {
			errs = append(errs, errors.New("s3 not initialized"))
		} else if exists, err := c.S3.Client.BucketExists(ctx, bucket); err != nil {
			errs = append(errs, fmt.Errorf("s3 bucket check failed: %w", err))
		} else if !exists {
			errs = append(errs, fmt.Errorf("s3 bucket %q not found", bucket))
		}
	}

	return errors.Join(errs...)
}

// ArchiveBucket reports the bucket of an s3:// PDF archive.
func (s Settings) ArchiveBucket() (string, bool) {
	rest, ok := strings.CutPrefix(s.PDFArchive, "s3://")
	if !ok {
		return "", false
	}
	bucket, _, _ := strings.Cut(rest, "/")
	return bucket, bucket != ""
}

func (c *Config) Close(ctx context.Context) {
	if c.Postgres != nil {
		c.Postgres.Close()
	}
	if c.Mongo != nil {
		if err := c.Mongo.Close(ctx); err != nil {
			log.Printf("[CONFIG] mongo disconnect: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := getenv(k, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		log.Printf("[CONFIG] invalid %s=%q, using %d", k, v, def)
		return def
	}
	return n
}
