package http

import (
	"html/template"
	"time"

	"github.com/gin-gonic/gin"

	appsvc "gamehaven/internal/app"
	"gamehaven/internal/bootstrap"
	"gamehaven/internal/cache"
	"gamehaven/internal/pkg/sanitize"
	"gamehaven/internal/pkg/upload"
	rabbitmqClient "gamehaven/internal/platform/rabbitmq"
	"gamehaven/internal/repository"
	"gamehaven/internal/transport/http/handler"
	"gamehaven/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) (*gin.Engine, error) {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.SetFuncMap(template.FuncMap{
		"userHTML": sanitize.UserHTML,
		"formatDate": func(t any) string {
			const layout = "Jan 2, 2006 15:04"
			switch v := t.(type) {
			case time.Time:
				return v.Format(layout)
			case *time.Time:
				if v == nil {
					return ""
				}
				return v.Format(layout)
			default:
				return ""
			}
		},
		"deref": func(p *uint) uint {
			if p == nil {
				return 0
			}
			return *p
		},
		"pageSeq": func(n int) []int {
			pages := make([]int, n)
			for i := range pages {
				pages[i] = i + 1
			}
			return pages
		},
	})
	router.LoadHTMLGlob("web/templates/*.html")
	router.Static("/uploads", app.Config.Upload.Dir)
	router.Static("/static", "web/static")

	saver, err := upload.NewSaver(app.Config.Upload.Dir, app.Config.Upload.MaxSizeBytes)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(app.DB)
	postRepo := repository.NewPostRepository(app.DB)
	gameRepo := repository.NewGameRepository(app.DB)
	photoRepo := repository.NewPhotoRepository(app.DB)
	discussionRepo := repository.NewDiscussionRepository(app.DB)
	activityRepo := repository.NewActivityRepository(app.DB)

	publisher := rabbitmqClient.NewActivityPublisher(app.MQConn, app.Config.RabbitMQ.ActivityQueue)
	catalogCache := cache.NewCatalogCache(app.Redis, time.Duration(app.Config.Redis.CatalogTTLSeconds)*time.Second)

	authService := appsvc.NewAuthService(
		userRepo,
		publisher,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireHour)*time.Hour,
	)
	postService := appsvc.NewPostService(postRepo, publisher)
	gameService := appsvc.NewGameService(gameRepo, catalogCache, publisher)
	photoService := appsvc.NewPhotoService(photoRepo, saver, publisher)
	discussionService := appsvc.NewDiscussionService(discussionRepo, publisher)
	activityService := appsvc.NewActivityService(activityRepo)

	authHandler := handler.NewAuthHandler(authService, app.Config.Auth)
	postHandler := handler.NewPostHandler(postService)
	gameHandler := handler.NewGameHandler(gameService)
	photoHandler := handler.NewPhotoHandler(photoService)
	discussionHandler := handler.NewDiscussionHandler(discussionService)
	pageHandler := handler.NewPageHandler(postService, discussionService, activityService)
	healthHandler := handler.NewHealthHandler(app)

	router.Use(middleware.DecodeSession(app.Config.Auth.JWTSecret, app.Config.Auth.CookieName))

	router.GET("/", pageHandler.Home)
	router.GET("/healthz", healthHandler.Check)

	router.GET("/register", authHandler.RegisterForm)
	router.POST("/register", authHandler.Register)
	router.GET("/login", authHandler.LoginForm)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)
	router.GET("/user/:id", authHandler.ViewUser)

	router.GET("/post/:id", postHandler.View)
	router.GET("/game/:id", gameHandler.View)
	router.GET("/games", gameHandler.Catalog)
	router.GET("/photos", photoHandler.Gallery)
	router.GET("/discussions/:id", discussionHandler.Detail)

	authed := router.Group("")
	authed.Use(middleware.RequireSession())
	authed.GET("/dashboard", pageHandler.Dashboard)

	authed.GET("/create-post", postHandler.CreateForm)
	authed.POST("/create-post", postHandler.Create)
	authed.GET("/edit-post/:id", postHandler.EditForm)
	authed.POST("/edit-post/:id", postHandler.Edit)
	authed.POST("/delete-post/:id", postHandler.Delete)

	authed.GET("/create-game", gameHandler.CreateForm)
	authed.POST("/create-game", gameHandler.Create)
	authed.GET("/game/:id/edit", gameHandler.EditForm)
	authed.POST("/game/:id/edit", gameHandler.Edit)
	authed.POST("/game/:id/delete", gameHandler.Delete)

	authed.GET("/upload-photo", photoHandler.UploadForm)
	authed.POST("/upload-photo", photoHandler.Upload)

	authed.GET("/discussions", discussionHandler.List)
	authed.POST("/discussions", discussionHandler.Create)
	authed.POST("/discussions/:id/reply", discussionHandler.Reply)

	return router, nil
}
