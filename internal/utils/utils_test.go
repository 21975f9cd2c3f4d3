package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserAgent(t *testing.T) {
	t.Run("Unknown", func(t *testing.T) {
		info := ParseUserAgent("")
		assert.Equal(t, "unknown", info.DeviceType)
		assert.Equal(t, "Unknown", info.Browser)
	})

	t.Run("Desktop Chrome", func(t *testing.T) {
		info := ParseUserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		assert.Equal(t, "desktop", info.DeviceType)
		assert.Equal(t, "Chrome", info.Browser)
		assert.False(t, info.IsBot)
	})

	t.Run("Android Phone", func(t *testing.T) {
		info := ParseUserAgent("Mozilla/5.0 (Linux; Android 13; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36")
		assert.Equal(t, "mobile", info.DeviceType)
		assert.Contains(t, info.OS, "Android")
	})
}

func TestGetRealIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newContext := func(headers map[string]string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Request.RemoteAddr = "10.0.0.5:1234"
		for k, v := range headers {
			c.Request.Header.Set(k, v)
		}
		return c
	}

	assert.Equal(t, "203.0.113.7", GetRealIP(newContext(map[string]string{"X-Real-IP": "203.0.113.7"})))
	assert.Equal(t, "198.51.100.2", GetRealIP(newContext(map[string]string{"X-Forwarded-For": "10.1.1.1, 198.51.100.2"})))
	assert.Equal(t, "10.1.1.1", GetRealIP(newContext(map[string]string{"X-Forwarded-For": "10.1.1.1, 192.168.0.2"})))
	assert.Equal(t, "10.0.0.5", GetRealIP(newContext(nil)))
}

func TestGenerateSecret(t *testing.T) {
	secret, err := GenerateJWTSecret()
	require.NoError(t, err)
	assert.Len(t, secret, 43)
	assert.NotContains(t, secret, "=")

	other, err := GenerateJWTSecret()
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)

	_, err = GenerateSecret(8)
	assert.Error(t, err)
}
