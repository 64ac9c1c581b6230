package controller

import (
	"github.com/eventum/eventum/database/model"
	"github.com/eventum/eventum/web/middleware"
	"github.com/eventum/eventum/web/service"

	"github.com/gin-gonic/gin"
)

// EventController serves the public event listing and the event editing routes.
type EventController struct {
	BaseController

	eventService service.EventService
}

func NewEventController(g *gin.RouterGroup) *EventController {
	a := &EventController{}
	a.initRouter(g)
	return a
}

func (a *EventController) initRouter(g *gin.RouterGroup) {
	g.GET("/events", a.list)
	g.GET("/events/:id", a.get)

	edit := g.Group("/admin/events")
	edit.Use(middleware.PrivilegeRequired(model.PrivilegeEdit))
	{
		edit.POST("", a.create)
		edit.PATCH("/:id", a.update)
		edit.DELETE("/:id", a.delete)
	}

	publish := g.Group("/admin/events")
	publish.Use(middleware.PrivilegeRequired(model.PrivilegePublish))
	{
		publish.POST("/:id/publish", a.publish)
		publish.POST("/:id/unpublish", a.unpublish)
	}
}

func (a *EventController) list(c *gin.Context) {
	events, err := a.eventService.ListEvents(a.canEdit(c))
	jsonObj(c, events, err)
}

func (a *EventController) get(c *gin.Context) {
	id, err := paramId(c)
	if err != nil {
		jsonMsg(c, "get event", err)
		return
	}
	event, err := a.eventService.GetById(id)
	if err == nil && !event.Published && !a.canEdit(c) {
		err = service.ErrEventNotFound
	}
	if err != nil {
		jsonMsg(c, "get event", err)
		return
	}
	jsonObj(c, event, nil)
}

func (a *EventController) create(c *gin.Context) {
	var in service.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonMsg(c, "create event", badRequest(err))
		return
	}
	event, err := a.eventService.CreateEvent(a.currentUser(c).Id, in)
	jsonObj(c, event, err)
}

func (a *EventController) update(c *gin.Context) {
	id, err := paramId(c)
	if err != nil {
		jsonMsg(c, "update event", err)
		return
	}
	var in service.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonMsg(c, "update event", badRequest(err))
		return
	}
	event, err := a.eventService.UpdateEvent(id, in)
	jsonObj(c, event, err)
}

func (a *EventController) delete(c *gin.Context) {
	id, err := paramId(c)
	if err == nil {
		err = a.eventService.DeleteEvent(id)
	}
	jsonMsg(c, "delete event", err)
}

func (a *EventController) publish(c *gin.Context) {
	a.setPublished(c, true)
}

func (a *EventController) unpublish(c *gin.Context) {
	a.setPublished(c, false)
}

func (a *EventController) setPublished(c *gin.Context, published bool) {
	id, err := paramId(c)
	if err != nil {
		jsonMsg(c, "publish event", err)
		return
	}
	event, err := a.eventService.SetPublished(id, published)
	jsonObj(c, event, err)
}
