package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/eventum/eventum/config"
	"github.com/eventum/eventum/database"
	"github.com/eventum/eventum/database/model"
	"github.com/eventum/eventum/web/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, cfg *config.AppConfig) *gin.Engine {
	t.Helper()
	require.NoError(t, database.InitDB(filepath.Join(t.TempDir(), "middleware.db")))
	t.Cleanup(func() { _ = database.CloseDB() })

	for _, u := range []model.User{
		{Name: "Test User", Email: "user@te.st", IdentityToken: "user123"},
		{Name: "Test Editor", Email: "editor@te.st", UserType: model.UserTypeEditor, IdentityToken: "editor123"},
		{Name: "Test Admin", Email: "admin@te.st", UserType: model.UserTypeAdmin, IdentityToken: "admin123"},
	} {
		u := u
		require.NoError(t, database.GetDB().Create(&u).Error)
	}

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(sessions.Sessions("eventum", cookie.NewStore([]byte("middleware-secret"))))
	engine.Use(CSRFProtect(cfg), CurrentUser(), AuditMiddleware())

	engine.GET("/login/:token", func(c *gin.Context) {
		_ = session.SetIdentityToken(c, c.Param("token"))
		c.Status(http.StatusNoContent)
	})
	engine.GET("/csrf", func(c *gin.Context) {
		c.String(http.StatusOK, CSRFToken(c))
	})
	engine.GET("/me", LoginRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, GetCurrentUser(c).Email)
	})
	engine.POST("/edit", PrivilegeRequired(model.PrivilegeEdit), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	engine.POST("/admin", PrivilegeRequired(model.PrivilegeEdit, model.PrivilegeAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func serve(engine *gin.Engine, req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func loginAs(t *testing.T, engine *gin.Engine, token string) []*http.Cookie {
	t.Helper()
	w := serve(engine, httptest.NewRequest(http.MethodGet, "/login/"+token, nil), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	return w.Result().Cookies()
}

func TestPrivilegeRequired(t *testing.T) {
	engine := newTestEngine(t, config.NewAppConfig(config.WithCSRF(false)))

	tests := []struct {
		name   string
		token  string
		path   string
		status int
	}{
		{"anonymous edit", "", "/edit", http.StatusUnauthorized},
		{"user edit", "user123", "/edit", http.StatusForbidden},
		{"editor edit", "editor123", "/edit", http.StatusOK},
		{"editor admin", "editor123", "/admin", http.StatusForbidden},
		{"admin admin", "admin123", "/admin", http.StatusOK},
		{"stale token", "gone123", "/edit", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cookies []*http.Cookie
			if tt.token != "" {
				cookies = loginAs(t, engine, tt.token)
			}
			w := serve(engine, httptest.NewRequest(http.MethodPost, tt.path, nil), cookies)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestLoginRequired(t *testing.T) {
	engine := newTestEngine(t, config.NewAppConfig(config.WithCSRF(false)))

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/me", nil), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)

	cookies := loginAs(t, engine, "user123")
	w = serve(engine, httptest.NewRequest(http.MethodGet, "/me", nil), cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user@te.st", w.Body.String())
}

func TestCSRFProtect(t *testing.T) {
	engine := newTestEngine(t, config.NewAppConfig())

	cookies := loginAs(t, engine, "editor123")

	w := serve(engine, httptest.NewRequest(http.MethodPost, "/edit", nil), cookies)
	assert.Equal(t, http.StatusForbidden, w.Code, "missing token")

	w = serve(engine, httptest.NewRequest(http.MethodGet, "/csrf", nil), cookies)
	require.Equal(t, http.StatusOK, w.Code)
	token := w.Body.String()
	cookies = w.Result().Cookies()

	req := httptest.NewRequest(http.MethodPost, "/edit", nil)
	req.Header.Set(CSRFHeader, "wrong")
	w = serve(engine, req, cookies)
	assert.Equal(t, http.StatusForbidden, w.Code, "wrong token")

	req = httptest.NewRequest(http.MethodPost, "/edit", nil)
	req.Header.Set(CSRFHeader, token)
	w = serve(engine, req, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCSRFProtectDisabled(t *testing.T) {
	engine := newTestEngine(t, config.NewAppConfig(config.WithWTFCSRF(false)))

	cookies := loginAs(t, engine, "editor123")
	w := serve(engine, httptest.NewRequest(http.MethodPost, "/edit", nil), cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(engine, httptest.NewRequest(http.MethodGet, "/csrf", nil), cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())
}

func TestCSRFTokenIsStable(t *testing.T) {
	engine := newTestEngine(t, config.NewAppConfig())

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/csrf", nil), nil)
	require.Equal(t, http.StatusOK, w.Code)
	first := w.Body.String()
	assert.NotEmpty(t, first)
	cookies := w.Result().Cookies()

	w = serve(engine, httptest.NewRequest(http.MethodGet, "/csrf", nil), cookies)
	assert.Equal(t, first, w.Body.String())

	other := serve(engine, httptest.NewRequest(http.MethodGet, "/csrf", nil), nil)
	assert.NotEqual(t, first, other.Body.String())
}

func TestActionFor(t *testing.T) {
	assert.Equal(t, "CREATE", actionFor(http.MethodPost))
	assert.Equal(t, "UPDATE", actionFor(http.MethodPatch))
	assert.Equal(t, "DELETE", actionFor(http.MethodDelete))
	assert.True(t, shouldSkipAudit("/csrf"))
	assert.False(t, shouldSkipAudit("/admin/events"))
}
