package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/solestore/internal/models"
	"github.com/example/solestore/internal/utils"
)

func TestLogin(t *testing.T) {
	app, db, _ := setupTestApp(t)

	hash, err := utils.HashPassword("secret")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Email:        "admin@solestore.local",
		PasswordHash: hash,
		IsAdmin:      true,
	}).Error)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "admin@solestore.local",
		"password": "secret",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])
}

func TestLoginWrongPassword(t *testing.T) {
	app, db, _ := setupTestApp(t)

	hash, err := utils.HashPassword("secret")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Email:        "admin@solestore.local",
		PasswordHash: hash,
	}).Error)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "admin@solestore.local",
		"password": "wrong",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginUnknownUser(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "nobody@solestore.local",
		"password": "secret",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
