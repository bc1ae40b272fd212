package middleware

import (
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"spacefinders/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusFor(t *testing.T, err error) int {
	t.Helper()

	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error {
		return err
	})

	resp, testErr := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, testErr)
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode
}

func TestErrorHandlerMapsTaxonomy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("%w: user not found", domain.ErrNotFound), fiber.StatusNotFound},
		{"invalid credentials", fmt.Errorf("%w: bad password", domain.ErrInvalidCredentials), fiber.StatusUnauthorized},
		{"unauthorized", fmt.Errorf("%w: not the owner", domain.ErrUnauthorized), fiber.StatusForbidden},
		{"duplicate", fmt.Errorf("%w: username exists", domain.ErrDuplicateResource), fiber.StatusConflict},
		{"invalid operation", fmt.Errorf("%w: already deleted", domain.ErrInvalidOperation), fiber.StatusBadRequest},
		{"validation", fmt.Errorf("%w: email is required", domain.ErrValidation), fiber.StatusBadRequest},
		{"token expired", domain.ErrTokenExpired, fiber.StatusUnauthorized},
		{"fiber error passes through", fiber.ErrTeapot, fiber.StatusTeapot},
		{"unclassified is 500", fmt.Errorf("disk on fire"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(t, tt.err))
		})
	}
}

func TestUnclassifiedErrorHidesDetail(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error {
		return fmt.Errorf("dsn user=root password=hunter2")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "hunter2")
}
