package web

import (
	"io"
	"net/http"

	"github.com/eventum/eventum/config"
	"github.com/eventum/eventum/database"
	"github.com/eventum/eventum/web/controller"
	"github.com/eventum/eventum/web/middleware"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// App is a configured eventum application: its config, its database and
// the gin engine serving it.
type App struct {
	Config *config.AppConfig
	Engine *gin.Engine
	Store  sessions.Store
	DB     *gorm.DB
}

// NewApp is the application factory. It builds the config from opts,
// opens the database named by it and wires the routes.
func NewApp(opts ...config.Option) (*App, error) {
	return NewAppFromConfig(config.NewAppConfig(opts...))
}

func NewAppFromConfig(cfg *config.AppConfig) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := database.InitDB(cfg.DBPath()); err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		Store:  newSessionStore(cfg),
		DB:     database.GetDB(),
	}
	app.Engine = app.initRouter()
	return app, nil
}

func newSessionStore(cfg *config.AppConfig) sessions.Store {
	store := cookie.NewStore([]byte(cfg.SecretKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   !cfg.Testing && !config.IsDebug(),
	})
	return store
}

func (a *App) initRouter() *gin.Engine {
	switch {
	case a.Config.Testing:
		gin.SetMode(gin.TestMode)
	case config.IsDebug():
		gin.SetMode(gin.DebugMode)
	default:
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(sessions.Sessions(a.Config.SessionName, a.Store))
	engine.Use(middleware.CSRFProtect(a.Config))
	engine.Use(middleware.CurrentUser())
	engine.Use(middleware.AuditMiddleware())

	g := engine.Group("/")
	controller.NewIndexController(g)
	controller.NewUserAdminController(g)
	controller.NewEventController(g)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})
	return engine
}

// Close closes the application's database.
func (a *App) Close() error {
	return database.CloseDB()
}
