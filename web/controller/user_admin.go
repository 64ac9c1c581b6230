package controller

import (
	"github.com/eventum/eventum/database/model"
	"github.com/eventum/eventum/web/entity"
	"github.com/eventum/eventum/web/middleware"
	"github.com/eventum/eventum/web/service"

	"github.com/gin-gonic/gin"
)

// UserAdminController exposes the current user and, to admins, user management.
type UserAdminController struct {
	BaseController

	userService service.UserService
}

func NewUserAdminController(g *gin.RouterGroup) *UserAdminController {
	a := &UserAdminController{}
	a.initRouter(g)
	return a
}

func (a *UserAdminController) initRouter(g *gin.RouterGroup) {
	g.GET("/whoami", middleware.LoginRequired(), a.whoami)

	admin := g.Group("/admin/users")
	admin.Use(middleware.PrivilegeRequired(model.PrivilegeAdmin))
	{
		admin.GET("", a.list)
		admin.POST("", a.create)
		admin.PATCH("/:id/type", a.updateType)
		admin.DELETE("/:id", a.delete)
	}
}

func (a *UserAdminController) whoami(c *gin.Context) {
	jsonObj(c, toUserInfo(a.currentUser(c)), nil)
}

func (a *UserAdminController) list(c *gin.Context) {
	users, err := a.userService.ListUsers()
	if err != nil {
		jsonMsg(c, "list users", err)
		return
	}
	out := make([]entity.UserInfo, 0, len(users))
	for i := range users {
		out = append(out, toUserInfo(&users[i]))
	}
	jsonObj(c, out, nil)
}

type createUserReq struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required"`
	UserType      string `json:"userType"`
	IdentityToken string `json:"identityToken" binding:"required"`
}

func (a *UserAdminController) create(c *gin.Context) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonMsg(c, "create user", badRequest(err))
		return
	}
	user, err := a.userService.CreateUser(req.Name, req.Email, model.UserType(req.UserType), req.IdentityToken)
	if err != nil {
		jsonMsg(c, "create user", err)
		return
	}
	jsonObj(c, toUserInfo(user), nil)
}

type userTypeReq struct {
	UserType string `json:"userType" binding:"required"`
}

func (a *UserAdminController) updateType(c *gin.Context) {
	id, err := paramId(c)
	if err != nil {
		jsonMsg(c, "update user type", err)
		return
	}
	var req userTypeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonMsg(c, "update user type", badRequest(err))
		return
	}
	user, err := a.userService.UpdateUserType(id, model.UserType(req.UserType))
	if err != nil {
		jsonMsg(c, "update user type", err)
		return
	}
	jsonObj(c, toUserInfo(user), nil)
}

func (a *UserAdminController) delete(c *gin.Context) {
	id, err := paramId(c)
	if err == nil {
		err = a.userService.DeleteUser(id)
	}
	jsonMsg(c, "delete user", err)
}
