package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"fleet-tools-backend/controllers"
	versionhandler "fleet-tools-backend/lib/version"
	"fleet-tools-backend/middleware"
	apimodels "fleet-tools-backend/models/api"
	versionapimodels "fleet-tools-backend/models/api/version"
)

type versionApiController struct {
	controllers.BaseAPIController
}

func InitVersionApiRouters(app *fiber.App) {
	controller := versionApiController{}
	app.Route("etma/version", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())

		router.Post("list", controller.list)
		router.Post("", controller.save)
		router.Get(":id", controller.get)
		router.Put(":id/archive", controller.archive)
	})
}

// @Summary Save a version snapshot
// @Tags Version snapshots
// @Description Save a version snapshot. Every call inserts a new row, existing snapshots are never changed
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		versionapimodels.VersionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/etma/version [post]
func (c *versionApiController) save(ctx *fiber.Ctx) error {
	var payload versionapimodels.VersionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "version snapshot is not valid")
	}
	id, err := versionhandler.Instance.Save(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "version snapshot save failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Version snapshot list
// @Tags Version snapshots
// @Description Version snapshot list for a sub-module, newest first
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		versionapimodels.VersionFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]versionapimodels.VersionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/etma/version/list [post]
func (c *versionApiController) list(ctx *fiber.Ctx) error {
	var payload versionapimodels.VersionFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "version filter is not valid")
	}
	list, rowCount, err := versionhandler.Instance.List(payload.SubModuleID, payload.Pagination)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "version snapshot list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Version snapshot by ID
// @Tags Version snapshots
// @Description Version snapshot by ID, with the archived payload restored when the row holds only the archive key
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=versionapimodels.VersionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/etma/version/{id} [get]
func (c *versionApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	item, err := versionhandler.Instance.GetByID(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "version snapshot read failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Archive a snapshot payload to object storage
// @Tags Version snapshots
// @Description Archive a snapshot payload to object storage
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/etma/version/{id}/archive [put]
func (c *versionApiController) archive(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	key, err := versionhandler.Instance.Archive(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "snapshot archive failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(key))
}
