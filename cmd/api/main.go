package main

import (
	"time"

	"github.com/SukhanRumanov/prac3/internal/app"
	"github.com/SukhanRumanov/prac3/internal/bootstrap"
	"github.com/SukhanRumanov/prac3/internal/config"
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	infra, err := app.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("connect failed", zap.Error(err))
	}
	defer infra.Close()

	if cfg.DB.AutoMigrate {
		if err := app.Migrate(infra.GormDB); err != nil {
			logger.Fatal("auto migrate failed", zap.Error(err))
		}
		logger.Info("schema migrated")
	}

	// build dependency + routes
	if err := app.BuildApp(r, cfg, infra, logger); err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		bootstrap.NewZapAuditLogger(logger),
	)
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
