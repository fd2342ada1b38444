package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/solestore/internal/config"
	"github.com/example/solestore/internal/database"
	"github.com/example/solestore/internal/models"
	"github.com/example/solestore/internal/routes"
	"github.com/example/solestore/internal/utils"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	// A named in-memory database keeps all pooled connections on the same
	// store while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(testDB))

	cfg := &config.Config{
		JWTSecret:    "test-secret",
		TokenExpires: time.Hour,
	}

	app := fiber.New()
	routes.Register(app, testDB, cfg)

	return app, testDB, cfg
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func adminToken(t *testing.T, db *gorm.DB, cfg *config.Config) string {
	t.Helper()

	hash, err := utils.HashPassword("password")
	require.NoError(t, err)

	admin := models.User{Email: "admin@test.local", PasswordHash: hash, IsAdmin: true}
	require.NoError(t, db.Create(&admin).Error)

	token, err := utils.GenerateToken(cfg.JWTSecret, admin.ID, cfg.TokenExpires)
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
