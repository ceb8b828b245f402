package mongoutil

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultMaxPoolSize = 100
	defaultMaxRetry    = 3
)

// Config represents the MongoDB configuration.
type Config struct {
	Uri         string
	Database    string
	MaxPoolSize int
	MaxRetry    int
}

func (c *Config) norm() error {
	if c.Uri == "" {
		return errors.New("mongo uri is required")
	}
	if c.Database == "" {
		return errors.New("mongo database is required")
	}
	if c.MaxPoolSize <= 0 {
		c.MaxPoolSize = defaultMaxPoolSize
	}
	if c.MaxRetry <= 0 {
		c.MaxRetry = defaultMaxRetry
	}
	return nil
}

// NewDatabase connects with bounded retries and pings before returning.
func NewDatabase(ctx context.Context, cfg *Config) (*mongo.Database, error) {
	if err := cfg.norm(); err != nil {
		return nil, err
	}
	opts := options.Client().
		ApplyURI(cfg.Uri).
		SetMaxPoolSize(uint64(cfg.MaxPoolSize))

	var (
		cli *mongo.Client
		err error
	)
	for i := 0; i < cfg.MaxRetry; i++ {
		cli, err = connect(ctx, opts)
		if err == nil {
			return cli.Database(cfg.Database), nil
		}
		if !shouldRetry(ctx, err) {
			break
		}
		time.Sleep(time.Second / 2)
	}
	return nil, errors.Wrap(err, "connect mongo")
}

func connect(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	cli, err := mongo.Connect(cctx, opts)
	if err != nil {
		return nil, err
	}
	if err := cli.Ping(cctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, err
	}
	return cli, nil
}

// shouldRetry determines whether an error should trigger a retry.
func shouldRetry(ctx context.Context, err error) bool {
	select {
	case <-ctx.Done():
		return false
	default:
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) {
			// 13 Unauthorized, 18 AuthenticationFailed
			return cmdErr.Code != 13 && cmdErr.Code != 18
		}
		return true
	}
}
