package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harentsoaR/scholarship-api/internal/models"
	"github.com/harentsoaR/scholarship-api/internal/store/storetest"
	"github.com/harentsoaR/scholarship-api/internal/utils"
)

func setupRouter(t *testing.T) (*gin.Engine, *utils.TokenIssuer, *storetest.Memory[models.User]) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := utils.NewTokenIssuer("middleware-secret")
	users := storetest.NewMemory[models.User]()
	for email, role := range map[string]models.Role{
		"admin@x.io":   models.RoleAdmin,
		"mod@x.io":     models.RoleModerator,
		"student@x.io": models.RoleStudent,
	} {
		_, err := users.Insert(context.Background(), &models.User{Email: email, Role: role, CreatedAt: time.Now()})
		require.NoError(t, err)
	}

	log := zap.NewNop()
	r := gin.New()
	authed := r.Group("", AuthMiddleware(tokens))
	authed.GET("/me", func(c *gin.Context) { c.String(http.StatusOK, Email(c)) })
	authed.GET("/admin", VerifyAdmin(users, log), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	authed.GET("/mod", VerifyModerator(users, log), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r, tokens, users
}

func do(r *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(t *testing.T, tokens *utils.TokenIssuer, email string) string {
	t.Helper()
	token, err := tokens.GenerateJWT(email)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthMiddleware(t *testing.T) {
	r, tokens, _ := setupRouter(t)

	w := do(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"unauthorized access"}`, w.Body.String())

	token, err := tokens.GenerateJWT("student@x.io")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", token).Code, "missing Bearer prefix")
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "Bearer ").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "Bearer not.a.token").Code)

	other, err := utils.NewTokenIssuer("someone-else").GenerateJWT("student@x.io")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "Bearer "+other).Code)

	w = do(r, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "student@x.io", w.Body.String())
}

func TestRoleGates(t *testing.T) {
	r, tokens, _ := setupRouter(t)

	cases := []struct {
		path  string
		email string
		want  int
	}{
		{"/admin", "admin@x.io", http.StatusNoContent},
		{"/admin", "mod@x.io", http.StatusForbidden},
		{"/admin", "student@x.io", http.StatusForbidden},
		{"/admin", "ghost@x.io", http.StatusForbidden},
		{"/mod", "admin@x.io", http.StatusNoContent},
		{"/mod", "mod@x.io", http.StatusNoContent},
		{"/mod", "student@x.io", http.StatusForbidden},
		{"/mod", "ghost@x.io", http.StatusForbidden},
	}
	for _, tc := range cases {
		w := do(r, tc.path, bearer(t, tokens, tc.email))
		assert.Equal(t, tc.want, w.Code, "%s as %s", tc.path, tc.email)
	}

	assert.Equal(t, http.StatusUnauthorized, do(r, "/admin", "").Code)
}

func TestRoleGateStoreFailure(t *testing.T) {
	r, tokens, users := setupRouter(t)
	users.FindErr = errors.New("server selection timeout")

	w := do(r, "/admin", bearer(t, tokens, "admin@x.io"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
