package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"imagegram/api/internal/config"
	"imagegram/api/internal/middleware"
	"imagegram/api/internal/repository"
	"imagegram/api/internal/service"
	"imagegram/api/internal/storage"
)

type HandlerSet struct {
	log           zerolog.Logger
	cfg           *config.AppConfig
	db            *pgxpool.Pool
	cache         *redis.Client
	store         *storage.ObjectStore
	users         *repository.UserRepository
	images        *repository.ImageRepository
	authService   *service.AuthService
	imageService  *service.ImageService
	socialService *service.SocialService
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	imageRepo := repository.NewImageRepository(db)

	return HandlerSet{
		log:           log,
		cfg:           cfg,
		db:            db,
		cache:         cache,
		store:         store,
		users:         userRepo,
		images:        imageRepo,
		authService:   service.NewAuthService(userRepo, store, cfg, log),
		imageService:  service.NewImageService(imageRepo, userRepo, store, cfg, log),
		socialService: service.NewSocialService(imageRepo, log),
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	authGate := middleware.Auth(h.cfg, h.users)
	optionalGate := middleware.OptionalAuth(h.cfg, h.users)

	auth := router.Group("/auth")
	{
		auth.POST("/register", h.RegisterUser)
		auth.POST("/login", h.Login)
		auth.POST("/avatar", authGate, h.UpdateAvatar)
	}

	images := router.Group("/images")
	{
		images.POST("/upload", authGate, h.UploadImage)
		images.GET("", authGate, h.ListMyImages)
		images.GET("/:id", optionalGate, h.GetImage)
		images.DELETE("/:id", authGate, h.DeleteImage)

		images.POST("/:id/like", authGate, h.ToggleLike)
		images.POST("/:id/comments", authGate, h.AddComment)
		images.DELETE("/:id/comments/:commentId", authGate, h.DeleteComment)

		images.GET("/:id/resize", authGate, h.ResizeImage)
		images.GET("/:id/rotate", authGate, h.RotateImage)
		images.GET("/:id/flip", authGate, h.FlipImage)
		images.GET("/:id/change", authGate, h.ChangeImageFormat)
	}
}
