package app

import (
	"database/sql"
	"net/http"

	"github.com/SukhanRumanov/prac3/internal/auth/gate"
	"github.com/SukhanRumanov/prac3/internal/auth/token"
	"github.com/SukhanRumanov/prac3/internal/config"
	"github.com/SukhanRumanov/prac3/internal/middleware"
	"github.com/SukhanRumanov/prac3/internal/shared/connection"
	"github.com/SukhanRumanov/prac3/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Infra holds the long lived connections shared by every module.
type Infra struct {
	GormDB *gorm.DB
	SQLDB  *sql.DB
	// Redis is nil when REDIS_ADDR is not set.
	Redis *redis.Client
}

func Connect(cfg config.Config, l *zap.Logger) (*Infra, error) {
	if l == nil {
		l = zap.L()
	}

	level := logger.Warn
	if !cfg.IsProduction() {
		level = logger.Info
	}

	gormDB, err := connection.ConnectGORMWithRetry(connection.DBOptions{
		Driver:     cfg.DB.Driver,
		Host:       cfg.DB.Host,
		Port:       cfg.DB.Port,
		User:       cfg.DB.User,
		Password:   cfg.DB.Password,
		Name:       cfg.DB.Name,
		SSLMode:    cfg.DB.SSLMode,
		MaxRetries: cfg.DB.MaxRetries,
		LogLevel:   level,
	}, l)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	infra := &Infra{GormDB: gormDB, SQLDB: sqlDB}

	if cfg.Redis.Addr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.MaxRetries, l)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		infra.Redis = rdb
	} else {
		l.Info("REDIS_ADDR not set, login throttle keeps counters in memory")
	}

	return infra, nil
}

func (i *Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.SQLDB != nil {
		_ = i.SQLDB.Close()
	}
}

// BuildApp installs the global middleware and every module on router.
func BuildApp(router *gin.Engine, cfg config.Config, infra *Infra, l *zap.Logger) error {
	if l == nil {
		l = zap.L()
	}

	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	accounts := user.NewAccountFinder(user.NewRepository(infra.GormDB))

	// Order matters: the request logger needs both the request id and the user id.
	router.Use(
		middleware.RequestID(),
		middleware.Authenticate(gate.New(tokens, accounts, gate.WithLogger(l))),
		middleware.ContextLogger(l),
	)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Employee management API", "docs": "/api/v1"})
	})
	router.GET("/health", func(c *gin.Context) {
		if err := infra.SQLDB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	return registerModules(router, cfg, infra, tokens, l)
}
