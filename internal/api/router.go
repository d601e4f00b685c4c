package api

import (
	"github.com/gin-gonic/gin"
	"github.com/memegallery/api/internal/api/handler"
	"github.com/memegallery/api/internal/api/middleware"
	"github.com/memegallery/api/internal/config"
	"github.com/memegallery/api/internal/logger"
	"github.com/memegallery/api/internal/service"
	"github.com/memegallery/api/internal/storage"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin router with all routes. The meme contract
// is versionless and lives at the root, matching what the gallery frontend
// already calls.
func SetupRouter(
	memeService *service.MemeService,
	objectStorage storage.ObjectStorage,
	db *gorm.DB,
	cfg *config.Config,
	log *logger.Logger,
) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	healthHandler := handler.NewHealthHandler(db)
	memeHandler := handler.NewMemeHandler(memeService)
	uploadHandler := handler.NewUploadHandler(objectStorage)

	r.GET("/health", healthHandler.Health)

	r.GET("/memes", memeHandler.ListMemes)
	r.POST("/memes", memeHandler.CreateMeme)
	r.POST("/memes/upload", uploadHandler.UploadImage)
	r.GET("/memes/:id", memeHandler.GetMeme)

	r.GET("/stats", memeHandler.GetStats)

	return r
}
