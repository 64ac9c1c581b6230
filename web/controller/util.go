package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/eventum/eventum/logger"
	"github.com/eventum/eventum/web/entity"
	"github.com/eventum/eventum/web/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// jsonMsg sends a JSON response with a message and error status.
func jsonMsg(c *gin.Context, msg string, err error) {
	jsonMsgObj(c, msg, nil, err)
}

// jsonObj sends a JSON response with an object and error status.
func jsonObj(c *gin.Context, obj any, err error) {
	jsonMsgObj(c, "", obj, err)
}

// jsonMsgObj answers 200 on success. Errors are mapped to a status by errorStatus.
func jsonMsgObj(c *gin.Context, msg string, obj any, err error) {
	m := entity.Msg{
		Obj: obj,
	}
	if err == nil {
		m.Success = true
		m.Msg = msg
		c.JSON(http.StatusOK, m)
		return
	}
	m.Success = false
	if msg != "" {
		m.Msg = msg + " (" + err.Error() + ")"
	} else {
		m.Msg = err.Error()
	}
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Warning(msg+" failed: ", err)
	}
	c.JSON(status, m)
}

func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

type badRequestError struct{ error }

func badRequest(err error) error { return badRequestError{err} }

func errorStatus(err error) int {
	var br badRequestError
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrUnknownUserType), errors.As(err, &br):
		return http.StatusBadRequest
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// paramId parses the :id path parameter.
func paramId(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, badRequest(errors.New("invalid id"))
	}
	return id, nil
}
