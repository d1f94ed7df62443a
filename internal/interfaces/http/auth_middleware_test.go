package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prolist-cm/protect-api/internal/application/auth"
	"github.com/prolist-cm/protect-api/internal/domain/entity"
	"github.com/prolist-cm/protect-api/internal/infrastructure/memory"
	apphttp "github.com/prolist-cm/protect-api/internal/interfaces/http"
	pkgjwt "github.com/prolist-cm/protect-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testPhone     = "+237670000001"
	testIssuer    = "prolist-protect-test"
	testExpMin    = 60
)

// buildAuthApp construye una app Fiber mínima con AuthMiddleware + UserLoader
// respaldados por el backend en memoria, y un handler que refleja el usuario.
func buildAuthApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	require.NoError(t, userRepo.Create(context.Background(), &entity.User{
		ID:    testUserID,
		Phone: testPhone,
		Name:  "Aicha",
		Roles: []entity.Role{entity.RoleBuyer, entity.RoleSeller},
	}))
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})

	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.UserLoader(authUC),
		func(c *fiber.Ctx) error {
			u := apphttp.GetCurrentUser(c)
			return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "name": u.Name})
		},
	)
	app.Get("/open",
		apphttp.OptionalAuth(testJWTSecret),
		apphttp.UserLoader(authUC),
		func(c *fiber.Ctx) error {
			anon := apphttp.GetCurrentUser(c) == nil
			return c.JSON(fiber.Map{"anonymous": anon})
		},
	)
	return app
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, testPhone, []string{"buyer", "seller"}, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware + UserLoader
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValidoCargaUsuario(t *testing.T) {
	app := buildAuthApp(t)
	resp := doRequest(t, app, "/protected", tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "Aicha", body["name"], "UserLoader debe cargar la entidad completa")
}

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildAuthApp(t)
	resp := doRequest(t, app, "/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildAuthApp(t)
	resp := doRequest(t, app, "/protected", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_UsuarioInexistente_Retorna401(t *testing.T) {
	app := buildAuthApp(t)
	resp := doRequest(t, app, "/protected", tokenFor(t, "no-existe"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token válido de usuario borrado no debe pasar")
}

func TestOptionalAuth_SinTokenSigueAnonimo(t *testing.T) {
	app := buildAuthApp(t)

	resp := doRequest(t, app, "/open", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["anonymous"])

	resp2 := doRequest(t, app, "/open", tokenFor(t, testUserID))
	defer resp2.Body.Close()
	var body2 map[string]interface{}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&body2))
	assert.Equal(t, false, body2["anonymous"], "con token el usuario queda cargado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse con roles
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConRoles(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testPhone, []string{"buyer", "agent"}, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testPhone, claims.Phone)
	assert.Equal(t, []string{"buyer", "agent"}, claims.Roles)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testPhone, []string{"buyer"}, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testPhone, []string{"buyer"}, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
