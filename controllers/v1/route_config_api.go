package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"fleet-tools-backend/controllers"
	routeconfighandler "fleet-tools-backend/lib/route-config"
	"fleet-tools-backend/middleware"
	apimodels "fleet-tools-backend/models/api"
	routecfgapimodels "fleet-tools-backend/models/api/routecfg"
)

type routeConfigApiController struct {
	controllers.BaseAPIController
}

func InitRouteConfigApiRouters(app *fiber.App) {
	controller := routeConfigApiController{}
	app.Route("config/route_configs", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.ConfigAdminRequired())

		router.Post("list", controller.list)
		router.Post("", controller.save)
		router.Get(":id", controller.get)
	})
}

// @Summary Save a route configuration
// @Tags Route configuration
// @Description Save a route configuration. Payload without id creates, with id updates, with delete flag deactivates
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		routecfgapimodels.RouteConfigData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/config/route_configs [post]
func (c *routeConfigApiController) save(ctx *fiber.Ctx) error {
	var payload routecfgapimodels.RouteConfigData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "route configuration is not valid")
	}
	userID := middleware.GetUserID(ctx)
	id, err := routeconfighandler.Instance.Save(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "route configuration save failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Route configuration list
// @Tags Route configuration
// @Description Route configuration list
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		apimodels.Pagination	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]routecfgapimodels.RouteConfigView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/config/route_configs/list [post]
func (c *routeConfigApiController) list(ctx *fiber.Ctx) error {
	var payload apimodels.Pagination
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	page, limit := payload.GetPage()
	list, rowCount, err := routeconfighandler.Instance.List(page, limit)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "route configuration list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Route configuration by ID
// @Tags Route configuration
// @Description Route configuration by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=routecfgapimodels.RouteConfigView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/config/route_configs/{id} [get]
func (c *routeConfigApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	item, err := routeconfighandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "route configuration read failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}
