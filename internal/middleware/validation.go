package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// MaxChannelRefLen bounds incoming channel references. Handles top out at
// 30 characters and canonical IDs at 24; the headroom covers full URLs.
const MaxChannelRefLen = 128

// ctrlRe matches ASCII control characters, which never appear in a
// legitimate channel reference.
var ctrlRe = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateChannelRef checks that a channel reference is plausible before
// it reaches the lookup pipeline. References are deliberately loose: a
// canonical ID, an @handle, a custom URL name, or a full channel URL all
// pass. Only emptiness, oversize and control characters are rejected.
func ValidateChannelRef(ref string) (string, string) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "channel reference is required"
	}
	if len(ref) > MaxChannelRefLen {
		return "", "channel reference must be at most 128 characters"
	}
	if ctrlRe.MatchString(ref) {
		return "", "channel reference contains invalid characters"
	}
	return ref, ""
}
