// Package webtest is the fixture harness for eventum's HTTP tests.
//
// A test package opts in with
//
//	func TestMain(m *testing.M) { webtest.Main(m) }
//
// and starts every test with webtest.Setup(t), which resets the user table
// to one user per role. Harness.RequestWithRole then issues a request as
// one of those users by placing the role's identity token in the session.
package webtest

import (
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/eventum/eventum/config"
	"github.com/eventum/eventum/database/model"
	"github.com/eventum/eventum/web"
	"github.com/eventum/eventum/web/service"

	"github.com/stretchr/testify/require"
)

const (
	// DBName is the name of the database every harness app runs against.
	DBName = "testing"
	// DefaultRole is used by RequestWithRole when no role is given.
	DefaultRole = "admin"
)

var identityTokens = map[string]string{
	"user":      "user123",
	"editor":    "editor123",
	"publisher": "publisher123",
	"admin":     "admin123",
}

var roles = []string{"user", "editor", "publisher", "admin"}

// IdentityToken returns the fixed identity token of role.
func IdentityToken(role string) (string, bool) {
	token, ok := identityTokens[role]
	return token, ok
}

// Roles lists the fixture roles from least to most privileged.
func Roles() []string {
	return append([]string(nil), roles...)
}

type fixtureUser struct {
	role     string
	name     string
	email    string
	userType model.UserType
}

// The base user has no type on purpose so that the default is exercised.
var fixtureUsers = []fixtureUser{
	{role: "user", name: "Test User", email: "user@te.st"},
	{role: "editor", name: "Test Editor", email: "editor@te.st", userType: model.UserTypeEditor},
	{role: "publisher", name: "Test Publisher", email: "publisher@te.st", userType: model.UserTypePublisher},
	{role: "admin", name: "Test Admin", email: "admin@te.st", userType: model.UserTypeAdmin},
}

var (
	sharedOnce sync.Once
	sharedApp  *web.App
	sharedErr  error
	sharedDir  string
)

// Options returns the factory options of a test app whose database lives in dbFolder.
func Options(dbFolder string) []config.Option {
	return []config.Option{
		config.WithDBName(DBName),
		config.WithTesting(true),
		config.WithCSRF(false),
		config.WithWTFCSRF(false),
		config.WithDBFolder(dbFolder),
		config.WithSecretKey("eventum-testing-secret"),
	}
}

// SharedApp returns the package wide test app, creating it on first use in a
// temporary folder. Main removes the folder when the tests finish.
func SharedApp() (*web.App, error) {
	sharedOnce.Do(func() {
		sharedDir, sharedErr = os.MkdirTemp("", "eventum-test-")
		if sharedErr != nil {
			return
		}
		sharedApp, sharedErr = web.NewApp(Options(sharedDir)...)
	})
	return sharedApp, sharedErr
}

// Main creates the shared app, runs the tests, tears the database down and
// exits with the test status.
func Main(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	if _, err := SharedApp(); err != nil {
		fmt.Fprintln(os.Stderr, "webtest: create test app:", err)
		teardown()
		return 1
	}
	defer teardown()
	return m.Run()
}

func teardown() {
	if sharedApp != nil {
		if err := sharedApp.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "webtest: close test app:", err)
		}
	}
	if sharedDir != "" {
		_ = os.RemoveAll(sharedDir)
	}
}

// ResetUsers deletes every user and saves the four fixture users, returned by role.
func ResetUsers() (map[string]*model.User, error) {
	userService := service.UserService{}
	if _, err := userService.DeleteAllUsers(); err != nil {
		return nil, err
	}
	users := make(map[string]*model.User, len(fixtureUsers))
	for _, f := range fixtureUsers {
		user, err := userService.CreateUser(f.name, f.email, f.userType, identityTokens[f.role])
		if err != nil {
			return nil, fmt.Errorf("create %s fixture: %w", f.role, err)
		}
		users[f.role] = user
	}
	return users, nil
}

// Harness binds the shared app to one test.
type Harness struct {
	App   *web.App
	Users map[string]*model.User

	t testing.TB
}

// Setup resets the fixture users and returns a harness for t. Any failure fails t.
func Setup(t testing.TB) *Harness {
	t.Helper()
	app, err := SharedApp()
	require.NoError(t, err, "create test app")
	users, err := ResetUsers()
	require.NoError(t, err, "reset fixture users")
	return &Harness{App: app, Users: users, t: t}
}

// User reloads the fixture user of role from the database.
func (h *Harness) User(role string) *model.User {
	h.t.Helper()
	token, ok := IdentityToken(role)
	require.True(h.t, ok, "unknown role %q", role)
	userService := service.UserService{}
	user, err := userService.GetByIdentityToken(token)
	require.NoError(h.t, err)
	require.NotNil(h.t, user, "fixture user %q missing", role)
	return user
}
