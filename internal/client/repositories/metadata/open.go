package metadata

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/psychicstar/internal/client/migrations"
	"github.com/dmitrijs2005/psychicstar/internal/dbx"
	"github.com/dmitrijs2005/psychicstar/internal/filex"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
	BackendS3       = "s3"
	BackendRedis    = "redis"
)

// DefaultRedisHash is the hash that holds every key of the redis backend.
const DefaultRedisHash = "psychicstar"

// Options selects and configures a backend.
//
//   - DSN: sqlite file path, postgres connection string or redis URL.
//   - S3*: bucket settings of the s3 backend.
type Options struct {
	Backend string
	DSN     string

	S3Bucket       string
	S3Prefix       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// CloseFunc releases the resources held by an opened backend.
type CloseFunc func() error

var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
)

// goose keeps its base FS and dialect in package state.
var migrateMu sync.Mutex

// RunMigrations applies the embedded migrations of dialect to db.
func RunMigrations(ctx context.Context, db *sql.DB, dialect dbx.Dialect) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	dir := migrations.SQLiteDir
	if dialect == dbx.DialectPostgres {
		dir = migrations.PostgresDir
	}

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, dir)
}

func openSQL(ctx context.Context, driver, dsn string, dialect dbx.Dialect) (Repository, CloseFunc, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	if err := RunMigrations(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return NewSQLRepository(db, dialect), db.Close, nil
}

func openS3(ctx context.Context, o Options) (Repository, CloseFunc, error) {
	if o.S3Bucket == "" {
		return nil, nil, fmt.Errorf("s3 backend: bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(o.S3Region)}
	if o.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.S3AccessKey, o.S3SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("s3 config error: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(so *s3.Options) {
		if o.S3BaseEndpoint != "" {
			so.BaseEndpoint = aws.String(o.S3BaseEndpoint)
			so.UsePathStyle = true
		}
	})

	return NewS3Repository(client, o.S3Bucket, o.S3Prefix), func() error { return nil }, nil
}

func openRedis(ctx context.Context, dsn string) (Repository, CloseFunc, error) {
	ro, err := redis.ParseURL(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("redis dsn error: %w", err)
	}

	client := redis.NewClient(ro)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping error: %w", err)
	}

	return NewRedisRepository(client, DefaultRedisHash), client.Close, nil
}

// Open returns the storage handle selected by o.Backend. SQL backends are
// migrated before they are returned.
func Open(ctx context.Context, o Options) (Repository, CloseFunc, error) {
	switch o.Backend {
	case BackendSQLite, "":
		if _, err := filex.EnsureParentDir(o.DSN); err != nil {
			return nil, nil, fmt.Errorf("sqlite data dir error: %w", err)
		}
		return openSQL(ctx, "sqlite", o.DSN, dbx.DialectSQLite)
	case BackendPostgres:
		return openSQL(ctx, "pgx", o.DSN, dbx.DialectPostgres)
	case BackendMemory:
		return NewMemoryRepository(), func() error { return nil }, nil
	case BackendS3:
		return openS3(ctx, o)
	case BackendRedis:
		return openRedis(ctx, o.DSN)
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", o.Backend)
	}
}
