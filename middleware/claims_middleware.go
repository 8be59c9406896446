package middleware

import (
	"github.com/gofiber/fiber/v2"

	authutils "fleet-tools-backend/lib/utils/auth-utils"
	"fleet-tools-backend/models"
	apimodels "fleet-tools-backend/models/api"
)

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		return sub.(string)
	}
	return ""
}

func GetDirectorate(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if directorate, exist := claims["directorate"]; exist {
		return directorate.(string)
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.UserRole(stringRole)
		}
	}
	return ""
}

// ConfigAdminRequired guards route configuration management.
func ConfigAdminRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetUserRole(ctx).IsConfigAdmin() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation is not available"))
		}
		return ctx.Next()
	}
}
