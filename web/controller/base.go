// Package controller provides the HTTP handlers of the eventum API.
package controller

import (
	"github.com/eventum/eventum/database/model"
	"github.com/eventum/eventum/web/entity"
	"github.com/eventum/eventum/web/middleware"

	"github.com/gin-gonic/gin"
)

// BaseController provides helpers shared by all controllers.
type BaseController struct{}

func (a *BaseController) currentUser(c *gin.Context) *model.User {
	return middleware.GetCurrentUser(c)
}

func (a *BaseController) canEdit(c *gin.Context) bool {
	user := a.currentUser(c)
	return user != nil && user.Can(model.PrivilegeEdit)
}

func toUserInfo(u *model.User) entity.UserInfo {
	privileges := make(map[string]bool)
	for p, v := range u.Privileges() {
		privileges[string(p)] = v
	}
	return entity.UserInfo{
		Id:         u.Id,
		Name:       u.Name,
		Email:      u.Email,
		UserType:   string(u.UserType),
		Privileges: privileges,
	}
}
