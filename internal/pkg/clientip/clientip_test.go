package clientip

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, headers map[string]string) string {
	t.Helper()

	var got string
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = FromCtx(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	return got
}

func TestForwardedForWinsOverRealIP(t *testing.T) {
	got := resolve(t, map[string]string{
		"X-Forwarded-For": "203.0.113.7, 10.0.0.2",
		"X-Real-IP":       "198.51.100.1",
	})
	assert.Equal(t, "203.0.113.7", got)
}

func TestForwardedForFirstEntryTrimmed(t *testing.T) {
	got := resolve(t, map[string]string{
		"X-Forwarded-For": "  203.0.113.9 ,10.0.0.2",
	})
	assert.Equal(t, "203.0.113.9", got)
}

func TestRealIPUsedWhenNoForwardedFor(t *testing.T) {
	got := resolve(t, map[string]string{
		"X-Real-IP": "198.51.100.1",
	})
	assert.Equal(t, "198.51.100.1", got)
}

func TestFallsBackToPeerAddress(t *testing.T) {
	got := resolve(t, nil)
	// httptest requests carry a synthetic remote address
	assert.NotEmpty(t, got)
	assert.NotEqual(t, Unknown, got)
}
