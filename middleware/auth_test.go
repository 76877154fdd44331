package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", Protect, func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("userId").(string))
	})
	return app
}

func TestProtectAcceptsValidToken(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	app := protectedApp()

	token, err := GenerateJWT("user_42", models.RoleStudent)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "user_42", string(body))
}

func TestProtectRejectsBadTokens(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	app := protectedApp()

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc",
		"garbage token":  "Bearer not.a.jwt",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestProtectRejectsWrongKey(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "signing-key"}
	token, err := GenerateJWT("user_42", models.RoleStudent)
	require.NoError(t, err)

	config.AppConfig = &config.Config{JWTKey: "different-key"}
	app := protectedApp()

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectAdminConfiguredList(t *testing.T) {
	config.AppConfig = &config.Config{
		JWTKey:       "test-secret",
		AdminUserIDs: []string{"user_admin"},
	}

	app := fiber.New()
	app.Get("/admin", Protect, ProtectAdmin, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// Listed ids skip the database role lookup entirely
	token, err := GenerateJWT("user_admin", models.RoleStudent)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
