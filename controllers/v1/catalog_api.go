package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"fleet-tools-backend/controllers"
	hierarchyprovider "fleet-tools-backend/lib/hierarchy"
	"fleet-tools-backend/middleware"
	apimodels "fleet-tools-backend/models/api"
)

type catalogApiController struct {
	controllers.BaseAPIController
}

func InitCatalogApiRouters(app *fiber.App) {
	controller := catalogApiController{}
	app.Route("catalog", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())

		router.Get("modules", controller.listModules)
		router.Get("modules/:id/sub_modules", controller.listSubModules)
		router.Get("vessels", controller.listVessels)
		router.Get("directorates", controller.listDirectorates)
		router.Get("directorates/:id/users", controller.listUsers)
	})
}

// @Summary Module list
// @Tags Hierarchy catalog
// @Description Module list
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]catalogapimodels.ModuleView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/catalog/modules [get]
func (c *catalogApiController) listModules(ctx *fiber.Ctx) error {
	list, err := hierarchyprovider.Instance.ListModules()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "module list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Sub-module list for a module
// @Tags Hierarchy catalog
// @Description Sub-module list for a module
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"module ID"
// @Success 200 {object} apimodels.Response{data=[]catalogapimodels.SubModuleView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/catalog/modules/{id}/sub_modules [get]
func (c *catalogApiController) listSubModules(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := hierarchyprovider.Instance.ListSubModules(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "sub-module list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Vessel list
// @Tags Hierarchy catalog
// @Description Vessel list
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]catalogapimodels.VesselView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/catalog/vessels [get]
func (c *catalogApiController) listVessels(ctx *fiber.Ctx) error {
	list, err := hierarchyprovider.Instance.ListVessels()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "vessel list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Directorate list
// @Tags Hierarchy catalog
// @Description Directorate list
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]catalogapimodels.DirectorateView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/catalog/directorates [get]
func (c *catalogApiController) listDirectorates(ctx *fiber.Ctx) error {
	list, err := hierarchyprovider.Instance.ListDirectorates()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "directorate list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary User list for a directorate
// @Tags Hierarchy catalog
// @Description User list for a directorate
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"directorate ID"
// @Success 200 {object} apimodels.Response{data=[]catalogapimodels.UserView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/catalog/directorates/{id}/users [get]
func (c *catalogApiController) listUsers(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := hierarchyprovider.Instance.ListUsers(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "user list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
