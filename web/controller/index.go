package controller

import (
	"net/http"

	"github.com/eventum/eventum/config"
	"github.com/eventum/eventum/database"
	"github.com/eventum/eventum/web/middleware"
	"github.com/eventum/eventum/web/session"

	"github.com/gin-gonic/gin"
)

// IndexController serves the application info, health and session routes.
type IndexController struct {
	BaseController
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/healthz", a.healthz)
	g.GET("/csrf", a.csrf)
	g.POST("/logout", a.logout)
}

func (a *IndexController) index(c *gin.Context) {
	jsonObj(c, gin.H{
		"name":    config.GetName(),
		"version": config.GetVersion(),
	}, nil)
}

func (a *IndexController) healthz(c *gin.Context) {
	db := database.GetDB()
	if db == nil {
		pureJsonMsg(c, http.StatusServiceUnavailable, false, "database is closed")
		return
	}
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		pureJsonMsg(c, http.StatusServiceUnavailable, false, err.Error())
		return
	}
	jsonObj(c, gin.H{"database": database.Name()}, nil)
}

func (a *IndexController) csrf(c *gin.Context) {
	jsonObj(c, gin.H{"token": middleware.CSRFToken(c)}, nil)
}

func (a *IndexController) logout(c *gin.Context) {
	jsonMsg(c, "logged out", session.ClearSession(c))
}
