package connection

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type DBOptions struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	MaxRetries int
	RetryDelay time.Duration
	LogLevel   logger.LogLevel
}

// DSN builds the driver specific connection string.
func (o DBOptions) DSN() (string, error) {
	switch o.Driver {
	case "", DriverPostgres:
		return fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			o.Host, o.User, o.Password, o.Name, o.Port, o.SSLMode,
		), nil
	case DriverMySQL:
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true",
			o.User, o.Password, o.Host, o.Port, o.Name,
		), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", o.Driver)
	}
}

func dialector(o DBOptions) (gorm.Dialector, error) {
	dsn, err := o.DSN()
	if err != nil {
		return nil, err
	}
	if o.Driver == DriverMySQL {
		return mysql.Open(dsn), nil
	}
	return postgres.Open(dsn), nil
}

// NewGormLogger routes gorm's SQL log through zap.
func NewGormLogger(l *zap.Logger, level logger.LogLevel) logger.Interface {
	if l == nil {
		l = zap.L()
	}
	return logger.New(
		zap.NewStdLog(l.Named("gorm")),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

func ConnectGORMWithRetry(opts DBOptions, l *zap.Logger) (*gorm.DB, error) {
	if l == nil {
		l = zap.L()
	}
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 5 * time.Second
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Warn
	}

	dial, err := dialector(opts)
	if err != nil {
		return nil, err
	}

	var lastErr error

	for i := 1; i <= opts.MaxRetries; i++ {
		db, err := gorm.Open(dial, &gorm.Config{
			Logger:                 NewGormLogger(l, opts.LogLevel),
			SkipDefaultTransaction: true,
		})
		if err != nil {
			lastErr = err
			l.Warn("gorm open failed", zap.Int("attempt", i), zap.Int("max", opts.MaxRetries), zap.Error(err))
			time.Sleep(opts.RetryDelay)
			continue
		}

		sqlDB, err := db.DB()
		if err != nil {
			lastErr = err
			l.Warn("get sql.DB failed", zap.Int("attempt", i), zap.Int("max", opts.MaxRetries), zap.Error(err))
			time.Sleep(opts.RetryDelay)
			continue
		}

		if err := sqlDB.Ping(); err != nil {
			lastErr = err
			l.Warn("db ping failed", zap.Int("attempt", i), zap.Int("max", opts.MaxRetries), zap.Error(err))
			time.Sleep(opts.RetryDelay)
			continue
		}

		// Pool config
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)

		l.Info("gorm connected to database", zap.String("driver", opts.Driver), zap.String("host", opts.Host))
		return db, nil
	}

	return nil, fmt.Errorf("database connection failed after %d retries: %w", opts.MaxRetries, lastErr)
}

func ConnectRedisWithRetry(addr string, maxRetries int, l *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := PingRedisWithRetry(context.Background(), rdb, maxRetries, 5*time.Second, l); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// PingRedisWithRetry pings until the server answers or the attempts run out.
func PingRedisWithRetry(ctx context.Context, rdb *redis.Client, maxRetries int, delay time.Duration, l *zap.Logger) error {
	if l == nil {
		l = zap.L()
	}
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		err := rdb.Ping(ctx).Err()
		if err == nil {
			l.Info("connected to redis", zap.Int("attempt", i))
			return nil
		}
		lastErr = err

		l.Warn("redis ping failed", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
		if i < maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("failed to connect redis after %d retries: %w", maxRetries, lastErr)
}
