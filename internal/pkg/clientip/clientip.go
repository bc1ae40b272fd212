// Package clientip resolves a best-effort client address for audit attribution.
package clientip

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Unknown is the sentinel recorded when no address is resolvable.
const Unknown = "unknown"

// FromCtx returns the client IP for the request. Header preference order:
// first X-Forwarded-For entry, then X-Real-IP, then the transport peer address.
func FromCtx(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}

	if realIP := strings.TrimSpace(c.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	if ip := c.IP(); ip != "" {
		return ip
	}

	return Unknown
}
