package middleware

import (
	"Food-Quality-Registry/domain"
	"Food-Quality-Registry/pkg/jwt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(jwtService jwt.JWTService) *fiber.App {
	app := fiber.New()
	app.Use(NewMiddleware().Authenticate(jwtService))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		id, ok := CurrentUserID(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(id.String())
	})
	return app
}

func whoami(t *testing.T, app *fiber.App, req *http.Request) string {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestAuthenticate_BearerHeader(t *testing.T) {
	svc := jwt.NewJWTService("secret", "FOOD-QUALITY")
	userID := uuid.New()
	token, err := svc.GenerateTokenUser(userID.String(), domain.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	assert.Equal(t, userID.String(), whoami(t, newTestApp(svc), req))
}

func TestAuthenticate_Cookie(t *testing.T) {
	svc := jwt.NewJWTService("secret", "FOOD-QUALITY")
	userID := uuid.New()
	token, err := svc.GenerateTokenUser(userID.String(), domain.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: domain.KeyAuthToken, Value: token})

	assert.Equal(t, userID.String(), whoami(t, newTestApp(svc), req))
}

func TestAuthenticate_PassesThroughWithoutToken(t *testing.T) {
	app := newTestApp(jwt.NewJWTService("secret", "FOOD-QUALITY"))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	assert.Equal(t, "anonymous", whoami(t, app, req))

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	assert.Equal(t, "anonymous", whoami(t, app, req))
}

func TestAuthenticate_NonUUIDSubjectIsAnonymous(t *testing.T) {
	svc := jwt.NewJWTService("secret", "FOOD-QUALITY")
	token, err := svc.GenerateTokenUser("admin", domain.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	assert.Equal(t, "anonymous", whoami(t, newTestApp(svc), req))
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer abc"))
	assert.Empty(t, bearerToken("Basic abc"))
	assert.Empty(t, bearerToken("Bearer "))
	assert.Empty(t, bearerToken(""))
}
