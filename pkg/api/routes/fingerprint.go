package routes

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const maxFingerprintLength = 150

// DeviceFingerprint identifies the submitting device well enough for rate
// limiting. No account system exists, so the source address and user agent
// are the best we have.
func DeviceFingerprint(c *fiber.Ctx) string {
	ipAddress := c.IP()

	if cloudflareConnectingIP := c.Get("CF-Connecting-IP", ""); cloudflareConnectingIP != "" {
		ipAddress = cloudflareConnectingIP
	}

	fingerprint := fmt.Sprintf("%s-%s", ipAddress, c.Get(fiber.HeaderUserAgent))

	// User agents can run arbitrarily long, the stored key must not
	if len(fingerprint) > maxFingerprintLength {
		fingerprint = fingerprint[:maxFingerprintLength]
	}

	return fingerprint
}
