package ws

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	connectionhub "fleet-tools-backend/lib/ws/hub/connection-hub"
	"fleet-tools-backend/middleware"
)

func InitWs(app *fiber.App) {
	app.Use("", func(ctx *fiber.Ctx) error {
		userID := middleware.GetUserID(ctx)
		ctx.Locals("userID", userID)
		return ctx.Next()
	})
	app.Get("/status", websocket.New(statusHandler))
}

// @Summary Record status pushes
// @Tags Websocket
// @Description Record status pushes
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.StatusEvent
// @Failure 400
// @Failure 403
// @Failure 500
// @router /ws/status [get]
func statusHandler(c *websocket.Conn) {
	userID := c.Locals("userID").(string)
	connectionhub.Instance.AddClient(userID, c)
	defer func() {
		connectionhub.Instance.DeleteClient(userID)
	}()
	// the push channel is one way, the read loop only tracks disconnect
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
