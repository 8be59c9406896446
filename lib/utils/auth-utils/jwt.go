package authutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"fleet-tools-backend/config"
	"fleet-tools-backend/models"
)

func GetToken(userID, name, directorateID string, role models.UserRole) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"name":        name,
		"sub":         userID,
		"directorate": directorateID,
		"role":        string(role),
		"exp":         time.Now().Add(time.Hour * time.Duration(config.Conf.Auth.TokenTTLHours)).Unix(),
		"iat":         time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Conf.Auth.JWTSecret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	return token.Claims.(jwt.MapClaims)
}
