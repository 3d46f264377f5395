package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// MemberStatusKey is the locals key holding the caller's membership flag.
const MemberStatusKey = "paid_member"

// memberStatusHeader is set by the authenticating edge in front of this
// service. This service trusts it; it performs no authentication itself.
const memberStatusHeader = "X-Member-Status"

// Membership reads the member status header into the request locals so
// handlers can gate content without re-parsing headers.
func Membership() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(MemberStatusKey, c.Get(memberStatusHeader) == "paid")

		return c.Next()
	}
}

// IsPaidMember reports the membership flag for the current request.
func IsPaidMember(c *fiber.Ctx) bool {
	paid, _ := c.Locals(MemberStatusKey).(bool)

	return paid
}
