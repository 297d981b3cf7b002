package provider

import (
	"github.com/blogicum-next/internal/authz"
	"github.com/blogicum-next/internal/cache"
	"github.com/blogicum-next/internal/config"
	"github.com/blogicum-next/internal/logger"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/repository"
	"github.com/blogicum-next/internal/service"
)

// Container is the dependency injection container.
type Container struct {
	Config *config.Config

	// Repositories
	AdminRepo    repository.AdminRepository
	UserRepo     repository.UserRepository
	PostRepo     repository.PostRepository
	CommentRepo  repository.CommentRepository
	CategoryRepo repository.CategoryRepository
	LocationRepo repository.LocationRepository

	// Services
	AuthzService    *authz.Service
	AuthService     *service.AuthService
	UserAuthService *service.UserAuthService
	CaptchaService  *service.CaptchaService
	PostService     *service.PostService
	CommentService  *service.CommentService
	CategoryService *service.CategoryService
	LocationService *service.LocationService
}

// NewContainer builds the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.CommentRepo = repository.NewCommentRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.LocationRepo = repository.NewLocationRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.PostService = service.NewPostService(c.PostRepo, c.CategoryRepo, c.LocationRepo, c.UserRepo, c.Config.Blog.PageSize)
	c.CommentService = service.NewCommentService(c.CommentRepo, c.PostRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.LocationService = service.NewLocationService(c.LocationRepo)
}
