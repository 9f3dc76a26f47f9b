package router

import (
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/quickai/config"
	_ "github.com/d60-Lab/quickai/docs"
	"github.com/d60-Lab/quickai/internal/api/handler"
	"github.com/d60-Lab/quickai/internal/api/middleware"
)

// New builds the gin engine with the full middleware chain and all routes.
func New(cfg *config.Config, h *handler.Handler) (*gin.Engine, error) {
	gin.SetMode(cfg.Server.Mode)
	registerValidations()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.Service))
	}
	if cfg.Server.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))
	}

	r.GET("/", func(c *gin.Context) {
		c.String(200, "server is running...")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth, err := middleware.Auth(cfg.Auth)
	if err != nil {
		return nil, err
	}

	api := r.Group("/api", auth)

	aiGroup := api.Group("/ai")
	aiGroup.POST("/generate-article", h.GenerateArticle)
	aiGroup.POST("/generate-blog-title", h.GenerateBlogTitle)
	aiGroup.POST("/generate-image", h.GenerateImage)
	aiGroup.POST("/remove-image-background", h.RemoveImageBackground)
	aiGroup.POST("/remove-image-object", h.RemoveImageObject)
	aiGroup.POST("/resume-review", h.ResumeReview)

	userGroup := api.Group("/user")
	userGroup.GET("/get-user-creations", h.GetUserCreations)
	userGroup.GET("/get-published-creations", h.GetPublishedCreations)
	userGroup.POST("/toggle-like-creations", h.ToggleLikeCreation)

	return r, nil
}

func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("singleword", func(fl validator.FieldLevel) bool {
			return len(strings.Fields(fl.Field().String())) == 1
		})
	}
}
