package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identityHandler 回显中间件注入的用户信息
func identityHandler(c *gin.Context) {
	claims := GetClaims(c)
	subject := ""
	if claims != nil {
		subject = claims.Subject
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":  GetUserIDUint(c),
		"username": GetUsername(c),
		"subject":  subject,
	})
}

func doAuthRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestService("test-secret", time.Hour)

	router := gin.New()
	router.GET("/protected", svc.AuthMiddleware(), identityHandler)

	token, err := svc.GenerateToken("42", map[string]interface{}{"username": "alice"})
	require.NoError(t, err)

	// 合法token：用户信息注入Context
	w := doAuthRequest(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.Contains(t, w.Body.String(), `"subject":"42"`)

	// 缺少请求头、格式错误、token无效：请求被拦截
	for _, header := range []string{"", "Basic abc", "Bearer not-a-token"} {
		w := doAuthRequest(router, "/protected", header)
		assert.Contains(t, w.Body.String(), `"code":401`)
		assert.NotContains(t, w.Body.String(), "user_id")
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestService("test-secret", time.Hour)

	router := gin.New()
	router.GET("/thought", svc.OptionalAuthMiddleware(), identityHandler)

	token, err := svc.GenerateToken("7", map[string]interface{}{"username": "bob"})
	require.NoError(t, err)

	// 带合法token：注入用户信息
	w := doAuthRequest(router, "/thought", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
	assert.Contains(t, w.Body.String(), `"username":"bob"`)

	// 匿名请求：放行，用户ID为0
	w = doAuthRequest(router, "/thought", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)

	// 无效token：不注入也不拦截
	w = doAuthRequest(router, "/thought", "Bearer garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)
}
