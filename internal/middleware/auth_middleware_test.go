package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stayvelle/hotel-backend/internal/metrics"
	"github.com/stayvelle/hotel-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-access-secret-key-123456789"

func setupTestJWTService() *jwt.Service {
	return jwt.NewService(testSecret, "stayvelle-test", time.Hour)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func actorHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"actor": ActorFrom(c)})
}

func doRequest(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_Success(t *testing.T) {
	jwtService := setupTestJWTService()
	logger, _ := logtest.NewNullLogger()
	router := setupTestRouter()

	token, err := jwtService.GenerateAccessToken(uuid.New(), "frontdesk", []string{"staff"})
	require.NoError(t, err)

	router.GET("/protected", AuthMiddleware(jwtService, true, logger), func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		require.True(t, ok)
		assert.False(t, principal.Anonymous)
		assert.True(t, principal.HasRole("staff"))
		actorHandler(c)
	})

	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"actor":"frontdesk"`)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	jwtService := setupTestJWTService()

	t.Run("Required", func(t *testing.T) {
		logger, hook := logtest.NewNullLogger()
		router := setupTestRouter()
		router.GET("/protected", AuthMiddleware(jwtService, true, logger), actorHandler)

		w := doRequest(router, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Authorization header is required")
		assert.Contains(t, w.Body.String(), `"code":"UNAUTHORIZED"`)
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	})

	t.Run("Optional Falls Back To Anonymous", func(t *testing.T) {
		logger, _ := logtest.NewNullLogger()
		router := setupTestRouter()
		router.GET("/protected", AuthMiddleware(jwtService, false, logger), actorHandler)

		w := doRequest(router, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"actor":"anonymous"`)
	})
}

func TestAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	jwtService := setupTestJWTService()
	logger, _ := logtest.NewNullLogger()
	router := setupTestRouter()
	router.GET("/protected", AuthMiddleware(jwtService, false, logger), actorHandler)

	tests := []struct {
		name   string
		header string
	}{
		{"Missing Bearer", "some-token"},
		{"Wrong prefix", "Basic some-token"},
		{"Empty Bearer", "Bearer "},
		{"No token", "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.header)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid authorization header format")
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	jwtService := setupTestJWTService()
	logger, _ := logtest.NewNullLogger()

	t.Run("Expired", func(t *testing.T) {
		shortLived := jwt.NewService(testSecret, "stayvelle-test", time.Millisecond)
		token, err := shortLived.GenerateAccessToken(uuid.New(), "frontdesk", nil)
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)

		router := setupTestRouter()
		router.GET("/protected", AuthMiddleware(jwtService, true, logger), actorHandler)

		w := doRequest(router, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Access token has expired")
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		other := jwt.NewService("wrong-secret-key", "stayvelle-test", time.Hour)
		token, err := other.GenerateAccessToken(uuid.New(), "frontdesk", nil)
		require.NoError(t, err)

		router := setupTestRouter()
		router.GET("/protected", AuthMiddleware(jwtService, false, logger), actorHandler)

		w := doRequest(router, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid access token")
	})

	t.Run("Malformed", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/protected", AuthMiddleware(jwtService, true, logger), actorHandler)

		w := doRequest(router, "Bearer randomstringnotavalidtoken")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	jwtService := setupTestJWTService()
	logger, _ := logtest.NewNullLogger()

	newRouter := func(required bool) *gin.Engine {
		router := setupTestRouter()
		router.GET("/protected", AuthMiddleware(jwtService, required, logger), RequireRole("admin"), actorHandler)
		return router
	}

	t.Run("Has Role", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(uuid.New(), "manager", []string{"staff", "admin"})
		require.NoError(t, err)

		w := doRequest(newRouter(true), "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Missing Role", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(uuid.New(), "frontdesk", []string{"staff"})
		require.NoError(t, err)

		w := doRequest(newRouter(true), "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})

	t.Run("Anonymous Passes When Auth Disabled", func(t *testing.T) {
		w := doRequest(newRouter(false), "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("No Principal", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/protected", RequireRole("admin"), actorHandler)

		w := doRequest(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestActorFrom(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, AnonymousActor, ActorFrom(c))

	c.Set(PrincipalContextKey, Principal{Username: "housekeeper"})
	assert.Equal(t, "housekeeper", ActorFrom(c))

	c.Set(PrincipalContextKey, "wrong type")
	assert.Equal(t, AnonymousActor, ActorFrom(c))
}

func TestRequestLogger(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	router := setupTestRouter()
	router.Use(RequestLogger(logger))
	router.GET("/api/Room/:id", func(c *gin.Context) {
		c.Set(PrincipalContextKey, Principal{Username: "frontdesk"})
		c.Status(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/Room/abc", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, 404, entry.Data["status"])
	assert.Equal(t, "frontdesk", entry.Data["actor"])
	assert.Equal(t, "mobile", entry.Data["device_type"])
}

func TestMetrics(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	router := setupTestRouter()
	router.Use(Metrics(m))
	router.GET("/api/Room/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/api/Room/1", "/api/Room/2", "/nowhere"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, promtest.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/Room/:id", "200")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}
