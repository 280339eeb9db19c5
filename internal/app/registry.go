package app

import (
	"github.com/SukhanRumanov/prac3/internal/auth"
	"github.com/SukhanRumanov/prac3/internal/auth/token"
	"github.com/SukhanRumanov/prac3/internal/config"
	"github.com/SukhanRumanov/prac3/internal/department"
	"github.com/SukhanRumanov/prac3/internal/employee"
	"github.com/SukhanRumanov/prac3/internal/middleware"
	"github.com/SukhanRumanov/prac3/internal/position"
	"github.com/SukhanRumanov/prac3/internal/rbac"
	"github.com/SukhanRumanov/prac3/internal/rbac/infra"
	"github.com/SukhanRumanov/prac3/internal/skill"
	"github.com/SukhanRumanov/prac3/internal/status"
	"github.com/SukhanRumanov/prac3/internal/user"
	"github.com/SukhanRumanov/prac3/internal/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	in *Infra,
	tokens *token.Manager,
	l *zap.Logger,
) error {
	gormDB, db := in.GormDB, in.SQLDB

	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	positionRepo := position.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	statusRepo := status.NewRepository(gormDB)
	skillRepo := skill.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, l)

	// --- Services ---
	userService := user.NewService(db, userRepo, l)
	authService := auth.NewService(userRepo, userService, tokens, l)
	departmentService := department.NewService(db, departmentRepo, l)
	positionService := position.NewService(db, positionRepo, l)
	employeeService := employee.NewService(db, employeeRepo, l)
	statusService := status.NewService(db, statusRepo, l)
	skillService := skill.NewService(db, skillRepo, l)

	// --- Ingress guards ---
	loginLimiter, err := middleware.NewLoginLimiter(cfg.Limit.LoginRate, in.Redis)
	if err != nil {
		return err
	}
	cookies := auth.CookieConfig{Secure: cfg.IsProduction()}

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cookies, l)
	userHandler := user.NewHandler(userService, l)
	departmentHandler := department.NewHandler(departmentService, l)
	positionHandler := position.NewHandler(positionService, l)
	employeeHandler := employee.NewHandler(employeeService, l)
	statusHandler := status.NewHandler(statusService, l)
	skillHandler := skill.NewHandler(skillService, l)
	rbacHandler := rbac.NewHandler(rbacService, l)
	webHandler := web.NewHandler(web.Services{
		Auth:        authService,
		Departments: departmentService,
		Positions:   positionService,
		Employees:   employeeService,
		Statuses:    statusService,
		Skills:      skillService,
	}, cookies, l)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.Recover(middleware.JSONRecovery),
		middleware.LimitMutations(middleware.RateLimitByUser(rate.Limit(cfg.Limit.MutationRPS), cfg.Limit.MutationBurst)),
	)
	{
		auth.RegisterRoutes(api, authHandler, loginLimiter)
		user.RegisterRoutes(api, userHandler, rbacService)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		position.RegisterRoutes(api, positionHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		status.RegisterRoutes(api, statusHandler, rbacService)
		skill.RegisterRoutes(api, skillHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	tmpl, err := web.Templates()
	if err != nil {
		return err
	}
	router.SetHTMLTemplate(tmpl)
	web.RegisterRoutes(router, webHandler, rbacService, loginLimiter)

	return nil
}
