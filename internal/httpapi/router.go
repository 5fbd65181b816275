package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/interviewninja/backend/internal/common"
	"github.com/interviewninja/backend/internal/config"
	"github.com/interviewninja/backend/internal/httpapi/handlers"
	"github.com/interviewninja/backend/internal/httpapi/middleware"
	"github.com/interviewninja/backend/internal/store/rabbitmq"
	"github.com/interviewninja/backend/internal/store/redisstore"
)

func NewRouter(db *gorm.DB, cfg config.Config, rds *redisstore.Store, rabbit *rabbitmq.Publisher) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := handlers.NewHandler(db, cfg, rds, rabbit)

	r.GET("/ping", h.Ping)
	r.GET("/health", h.Ping)

	api := r.Group("/api")

	voice := api.Group("/voice")
	voice.POST("/start", h.StartSession)
	voice.POST("/respond", h.Respond)
	voice.POST("/tts", h.TTS)
	voice.GET("/session/:session_id", h.GetSession)
	voice.DELETE("/session/:session_id", h.EndSession)

	session := api.Group("/session")
	session.POST("/save", h.SaveSession)
	session.GET("/list", h.ListSessions)
	session.POST("/analyze", h.AnalyzeSession)
	session.POST("/analyze/async", h.AnalyzeSessionAsync)
	session.GET("/jobs/:job_id", h.GetAnalysisJob)
	session.GET("/:session_id", h.GetSavedSession)
	session.DELETE("/:session_id", h.DeleteSavedSession)

	scraper := api.Group("/scraper")
	scraper.POST("/extract", h.ExtractProblems)
	scraper.POST("/preview", h.PreviewURL)

	code := api.Group("/code")
	code.POST("/execute", h.ExecuteCode)
	code.GET("/runtimes", h.ListRuntimes)

	return r
}
