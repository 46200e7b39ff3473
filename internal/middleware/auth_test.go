package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTAuth(t *testing.T) {
	valid := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.RegisteredClaims{
		Subject:   "ops",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	expired := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.RegisteredClaims{
		Subject:   "ops",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	wrongKey := sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.RegisteredClaims{Subject: "ops"})

	tests := []struct {
		name       string
		secret     string
		header     string
		wantCalled bool
	}{
		{name: "should accept a valid bearer token", secret: secret, header: "Bearer " + valid, wantCalled: true},
		{name: "should accept a bare token", secret: secret, header: valid, wantCalled: true},
		{name: "should reject a missing header", secret: secret},
		{name: "should reject an expired token", secret: secret, header: "Bearer " + expired},
		{name: "should reject a token signed with another key", secret: secret, header: "Bearer " + wrongKey},
		{name: "should reject everything without a secret", secret: "", header: "Bearer " + valid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				called  bool
				subject interface{}
			)
			handler := JWTAuth(tt.secret, nil)(func(ctx *fasthttp.RequestCtx) {
				called = true
				subject = ctx.UserValue("subject")
			})

			ctx := &fasthttp.RequestCtx{}
			if tt.header != "" {
				ctx.Request.Header.Set("Authorization", tt.header)
			}
			handler(ctx)

			assert.Equal(t, tt.wantCalled, called)
			if tt.wantCalled {
				assert.Equal(t, "ops", subject)
			} else {
				assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
			}
		})
	}
}
