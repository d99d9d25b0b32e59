package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Locals keys the host application's authentication layer must set before
// these handlers run: the authenticated user id (uint64, 0 when anonymous)
// and the site id (uint) of the request's tenant.
const (
	LocalsUserID = "permafrost_user_id"
	LocalsSiteID = "permafrost_site_id"
)

func callerFromLocals(c *fiber.Ctx) (uint64, uint) {
	userID, _ := c.Locals(LocalsUserID).(uint64)
	siteID, _ := c.Locals(LocalsSiteID).(uint)

	return userID, siteID
}

// RequirePermissions creates Fiber middleware that requires every listed
// permission on the request's site. The host app's authentication middleware
// must have stored the caller and site in Locals first.
func RequirePermissions(authService *Service, permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, siteID := callerFromLocals(c)
		if userID == 0 {
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		hasPermissions, err := authService.HasAllPermissions(userID, siteID, permissions)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", userID).Uint("site_id", siteID).
				Strs("permissions", permissions).Msg("Failed to check permissions")

			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		}

		if !hasPermissions {
			log.Warn().Uint64("user_id", userID).Uint("site_id", siteID).
				Strs("permissions", permissions).Msg("User lacks required permissions")

			return c.Status(fiber.StatusForbidden).SendString("Forbidden: You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// RequireAnyPermission creates Fiber middleware that requires at least one of
// the given permissions on the request's site.
func RequireAnyPermission(authService *Service, permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, siteID := callerFromLocals(c)
		if userID == 0 {
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		hasPermission, err := authService.HasAnyPermission(userID, siteID, permissions)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", userID).Uint("site_id", siteID).
				Strs("permissions", permissions).Msg("Failed to check permissions")

			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		}

		if !hasPermission {
			log.Warn().Uint64("user_id", userID).Uint("site_id", siteID).
				Strs("permissions", permissions).Msg("User lacks required permissions")

			return c.Status(fiber.StatusForbidden).SendString("Forbidden: You don't have permission to access this resource")
		}

		return c.Next()
	}
}
