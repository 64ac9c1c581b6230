package middleware

import (
	"net/http"

	"github.com/eventum/eventum/database/model"
	"github.com/eventum/eventum/web/entity"

	"github.com/gin-gonic/gin"
)

// LoginRequired rejects requests without a current user with 401.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetCurrentUser(c) == nil {
			abortMsg(c, http.StatusUnauthorized, "login required")
			return
		}
		c.Next()
	}
}

// PrivilegeRequired answers 401 to anonymous requests and 403 when the
// current user's type lacks any of the privileges.
func PrivilegeRequired(privileges ...model.Privilege) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetCurrentUser(c)
		if user == nil {
			abortMsg(c, http.StatusUnauthorized, "login required")
			return
		}
		for _, p := range privileges {
			if !user.Can(p) {
				abortMsg(c, http.StatusForbidden, "missing privilege: "+string(p))
				return
			}
		}
		c.Next()
	}
}

func abortMsg(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, entity.Msg{Success: false, Msg: msg})
}
