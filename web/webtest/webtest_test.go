package webtest_test

import (
	"net/http"
	"testing"

	"github.com/eventum/eventum/database"
	"github.com/eventum/eventum/database/model"
	"github.com/eventum/eventum/web/entity"
	"github.com/eventum/eventum/web/service"
	"github.com/eventum/eventum/web/webtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	webtest.Main(m)
}

func TestCreateTestApp(t *testing.T) {
	h := webtest.Setup(t)

	assert.True(t, h.App.Config.Testing)
	assert.False(t, h.App.Config.CSRFEnabled)
	assert.False(t, h.App.Config.WTFCSRFEnabled)
	assert.False(t, h.App.Config.CSRFProtection())
	assert.Equal(t, "testing", database.Name())
}

func TestSetupCreatesOneUserPerRole(t *testing.T) {
	webtest.Setup(t)

	expected := map[string]model.UserType{
		"user":      model.UserTypeUser,
		"editor":    model.UserTypeEditor,
		"publisher": model.UserTypePublisher,
		"admin":     model.UserTypeAdmin,
	}
	for _, role := range webtest.Roles() {
		t.Run(role, func(t *testing.T) {
			token, ok := webtest.IdentityToken(role)
			require.True(t, ok)
			assert.Equal(t, role+"123", token)

			var users []model.User
			require.NoError(t, database.GetDB().Where("identity_token = ?", token).Find(&users).Error)
			require.Len(t, users, 1)
			assert.Equal(t, expected[role], users[0].UserType)
		})
	}
}

func TestSetupTwiceKeepsFourUsers(t *testing.T) {
	webtest.Setup(t)
	webtest.Setup(t)

	userService := service.UserService{}
	count, err := userService.CountUsers()
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)
}

func TestSetupRestoresModifiedUsers(t *testing.T) {
	h := webtest.Setup(t)
	userService := service.UserService{}
	_, err := userService.UpdateUserType(h.Users["user"].Id, model.UserTypeAdmin)
	require.NoError(t, err)
	_, err = userService.CreateUser("Extra", "extra@te.st", "", "extra123")
	require.NoError(t, err)

	h = webtest.Setup(t)
	assert.Equal(t, model.UserTypeUser, h.User("user").UserType)
	count, err := userService.CountUsers()
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)
}

func TestRequestWithUnknownRoleIsAnonymous(t *testing.T) {
	h := webtest.Setup(t)

	cookies, err := h.SessionCookies("superuser")
	require.NoError(t, err)
	assert.Empty(t, cookies)

	w := h.RequestWithRole("/whoami", webtest.WithRole("superuser"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.RequestWithRole("/whoami", webtest.Anonymous())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestWithRoleScopesTheSession(t *testing.T) {
	h := webtest.Setup(t)

	w := h.RequestWithRole("/whoami", webtest.WithRole("editor"))
	require.Equal(t, http.StatusOK, w.Code)
	var info entity.UserInfo
	msg := h.DecodeMsg(w, &info)
	assert.True(t, msg.Success)
	assert.Equal(t, "editor@te.st", info.Email)
	assert.Equal(t, "editor", info.UserType)
	assert.True(t, info.Privileges["edit"])
	assert.False(t, info.Privileges["publish"])

	w = h.RequestWithRole("/whoami", webtest.Anonymous())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestWithRoleDefaultsToAdminGet(t *testing.T) {
	h := webtest.Setup(t)

	w := h.RequestWithRole("/whoami")
	require.Equal(t, http.StatusOK, w.Code)
	var info entity.UserInfo
	h.DecodeMsg(w, &info)
	assert.Equal(t, "admin", info.UserType)

	w = h.RequestWithRole("/admin/users")
	require.Equal(t, http.StatusOK, w.Code)
	var users []entity.UserInfo
	h.DecodeMsg(w, &users)
	assert.Len(t, users, 4)
}

func TestRequestWithRolePassesThroughOptions(t *testing.T) {
	h := webtest.Setup(t)

	w := h.RequestWithRole("/admin/events",
		webtest.WithMethod(http.MethodPost),
		webtest.WithRole("editor"),
		webtest.WithJSON(map[string]any{"title": "Hack Night"}),
	)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var event model.Event
	h.DecodeMsg(w, &event)
	assert.Equal(t, "hack-night", event.Slug)
	assert.Equal(t, h.Users["editor"].Id, event.CreatorId)

	w = h.RequestWithRole("/events", webtest.WithRole("editor"), webtest.WithQuery("page", "1"))
	require.Equal(t, http.StatusOK, w.Code)
	var events []model.Event
	h.DecodeMsg(w, &events)
	assert.Len(t, events, 1)

	require.NoError(t, (&service.EventService{}).DeleteEvent(event.Id))
}

func TestIdentityTokenUnknownRole(t *testing.T) {
	_, ok := webtest.IdentityToken("root")
	assert.False(t, ok)
	assert.Equal(t, []string{"user", "editor", "publisher", "admin"}, webtest.Roles())
}
