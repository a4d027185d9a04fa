package postgres

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ConnectionInfo struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
	SSLMode  string
	MaxConns int32
}

type Postgres struct {
	Pool *pgxpool.Pool
}

func (info ConnectionInfo) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(info.User, info.Password),
		Host:   info.Host + ":" + info.Port,
		Path:   "/" + info.DB,
	}
	if info.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {info.SSLMode}}.Encode()
	}
	return u.String()
}

func NewConnection(ctx context.Context, info ConnectionInfo) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(info.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres config: %w", err)
	}
	if info.MaxConns > 0 {
		cfg.MaxConns = info.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Postgres{Pool: pool}, nil
}

func (p *Postgres) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}
