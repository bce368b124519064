package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dchirkov/eventum/config"
	"github.com/dchirkov/eventum/controllers"
	"github.com/dchirkov/eventum/middleware"
	"github.com/dchirkov/eventum/services"
	"github.com/dchirkov/eventum/utils"
)

// NewRouter wires the main-service HTTP surface: public endpoints behind the
// rate limiter, private per-user endpoints and the admin endpoints.
func NewRouter(db *gorm.DB, stats services.StatsProvider) *gin.Engine {
	cfg := config.Get()
	gin.SetMode(cfg.GinMode)

	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	eventService := services.NewEventService(db, stats)
	requestService := services.NewRequestService(db)
	compilationService := services.NewCompilationService(db, eventService)
	commentService := services.NewCommentService(db)

	userCtrl := controllers.NewUserController(userService)
	categoryCtrl := controllers.NewCategoryController(categoryService)
	eventCtrl := controllers.NewEventController(eventService)
	requestCtrl := controllers.NewRequestController(requestService)
	compilationCtrl := controllers.NewCompilationController(compilationService)
	commentCtrl := controllers.NewCommentController(commentService)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(utils.GinLogger())
	r.Use(utils.GinRecovery())
	r.Use(cors.New(corsConfig(cfg)))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.RateLimit())
	{
		public.GET("/events", eventCtrl.ListPublic)
		public.GET("/events/:eventId", eventCtrl.GetPublic)
		public.GET("/events/:eventId/comments", commentCtrl.ListForEvent)
		public.GET("/categories", categoryCtrl.List)
		public.GET("/categories/:catId", categoryCtrl.Get)
		public.GET("/compilations", compilationCtrl.List)
		public.GET("/compilations/:compId", compilationCtrl.Get)
		public.GET("/comments/:commentId", commentCtrl.Get)
	}

	private := r.Group("/users/:userId")
	{
		private.GET("/events", eventCtrl.ListOwn)
		private.POST("/events", eventCtrl.Create)
		private.GET("/events/:eventId", eventCtrl.GetOwn)
		private.PATCH("/events/:eventId", eventCtrl.UpdateOwn)
		private.GET("/events/:eventId/requests", requestCtrl.ListForEvent)
		private.PATCH("/events/:eventId/requests", requestCtrl.UpdateStatus)

		private.GET("/requests", requestCtrl.ListOwn)
		private.POST("/requests", requestCtrl.Create)
		private.PATCH("/requests/:requestId/cancel", requestCtrl.Cancel)

		private.GET("/comments", commentCtrl.ListOwn)
		private.POST("/comments", commentCtrl.Create)
		private.PATCH("/comments/:commentId", commentCtrl.Update)
		private.DELETE("/comments/:commentId", commentCtrl.Delete)
	}

	admin := r.Group("/admin")
	{
		admin.GET("/users", userCtrl.List)
		admin.POST("/users", userCtrl.Create)
		admin.DELETE("/users/:userId", userCtrl.Delete)

		admin.POST("/categories", categoryCtrl.Create)
		admin.PATCH("/categories/:catId", categoryCtrl.Update)
		admin.DELETE("/categories/:catId", categoryCtrl.Delete)

		admin.GET("/events", eventCtrl.SearchAdmin)
		admin.PATCH("/events/:eventId", eventCtrl.UpdateAdmin)

		admin.POST("/compilations", compilationCtrl.Create)
		admin.PATCH("/compilations/:compId", compilationCtrl.Update)
		admin.DELETE("/compilations/:compId", compilationCtrl.Delete)

		admin.GET("/comments", commentCtrl.SearchAdmin)
		admin.PATCH("/comments/:commentId", commentCtrl.Moderate)
	}

	return r
}

func corsConfig(cfg config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", utils.RequestIDHeader},
		ExposeHeaders:    []string{utils.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	allowAll := len(cfg.AllowedOrigins) == 0
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return c
}
