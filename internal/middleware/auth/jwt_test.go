package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims(sub string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   sub,
		"email": "test@example.com",
		"role":  "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
}

func runMiddleware(t *testing.T, path, authHeader string) (*httptest.ResponseRecorder, *AuthUser) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *AuthUser
	handler := JWTMiddleware(JWTConfig{
		Secret:    testSecret,
		Logger:    zap.NewNop(),
		SkipPaths: []string{"/health", "/webhook"},
	})(func(c echo.Context) error {
		seen, _ = GetUserFromContext(c)
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	return rec, seen
}

func TestJWTMiddleware_SuccessfulAuthentication(t *testing.T) {
	token := signToken(t, validClaims("user-123"), jwt.SigningMethodHS256, []byte(testSecret))

	rec, user := runMiddleware(t, "/api/v1/payments/attempts", "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, user)
	assert.Equal(t, "user-123", user.UserID)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, "authenticated", user.Role)
}

func TestJWTMiddleware_Rejections(t *testing.T) {
	expired := validClaims("user-123")
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	noExp := validClaims("user-123")
	delete(noExp, "exp")

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantCode: "MISSING_AUTH_HEADER"},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantCode: "INVALID_AUTH_FORMAT"},
		{name: "garbage token", header: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized, wantCode: "INVALID_TOKEN"},
		{name: "wrong secret", header: "Bearer " + signToken(t, validClaims("user-123"), jwt.SigningMethodHS256, []byte("other")), wantStatus: http.StatusUnauthorized, wantCode: "INVALID_TOKEN"},
		{name: "expired", header: "Bearer " + signToken(t, expired, jwt.SigningMethodHS256, []byte(testSecret)), wantStatus: http.StatusUnauthorized, wantCode: "INVALID_TOKEN"},
		{name: "no expiry", header: "Bearer " + signToken(t, noExp, jwt.SigningMethodHS256, []byte(testSecret)), wantStatus: http.StatusUnauthorized, wantCode: "INVALID_TOKEN"},
		{name: "unsigned", header: "Bearer " + signToken(t, validClaims("user-123"), jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType), wantStatus: http.StatusUnauthorized, wantCode: "INVALID_TOKEN"},
		{name: "no subject", header: "Bearer " + signToken(t, validClaims(""), jwt.SigningMethodHS256, []byte(testSecret)), wantStatus: http.StatusUnauthorized, wantCode: "INVALID_CLAIMS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, user := runMiddleware(t, "/api/v1/payments/retry", tt.header)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
			assert.Nil(t, user)
		})
	}
}

func TestJWTMiddleware_SkipPaths(t *testing.T) {
	rec, user := runMiddleware(t, "/webhook", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, user)
}

func TestRequireAuth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_, err := RequireAuth(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)

	c.SetRequest(req.WithContext(WithUser(req.Context(), &AuthUser{UserID: "user-1"})))
	user, err := RequireAuth(c)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.UserID)
}
