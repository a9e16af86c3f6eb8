package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/scholarship-api/internal/utils"
)

func TestIssueToken(t *testing.T) {
	env := newEnv(t, RouterOptions{})

	w := env.request(t, http.MethodPost, "/jwt", map[string]string{"email": "ada@x.io"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode[map[string]string](t, w)
	claims, err := env.tokens.ValidateJWT(body["token"])
	require.NoError(t, err)
	assert.Equal(t, "ada@x.io", claims.Email)
	assert.WithinDuration(t, claims.IssuedAt.Add(utils.TokenTTL), claims.ExpiresAt.Time, time.Second)
}

func TestIssueTokenRequiresEmail(t *testing.T) {
	env := newEnv(t, RouterOptions{})

	w := env.request(t, http.MethodPost, "/jwt", map[string]string{}, "")
	assertMessage(t, w, http.StatusBadRequest)
}

func TestProtectedRouteRejectsBadTokens(t *testing.T) {
	env := newEnv(t, RouterOptions{})

	issued := decode[map[string]string](t, env.request(t, http.MethodPost, "/jwt", map[string]string{"email": "ada@x.io"}, ""))["token"]
	tampered := issued[:len(issued)-2] + "xx"

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, utils.Claims{
		Email: "ada@x.io",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":  "",
		"scheme":   "Token " + issued,
		"tampered": "Bearer " + tampered,
		"expired":  "Bearer " + expired,
	} {
		t.Run(name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/payments?email=ada@x.io", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := serve(env, req)
			assertMessage(t, w, http.StatusUnauthorized)
		})
	}

	req, _ := http.NewRequest(http.MethodGet, "/payments?email=ada@x.io", nil)
	req.Header.Set("Authorization", "Bearer "+issued)
	assert.Equal(t, http.StatusOK, serve(env, req).Code)
}
