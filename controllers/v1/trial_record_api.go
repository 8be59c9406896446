package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"fleet-tools-backend/controllers"
	"fleet-tools-backend/lib/permissions"
	trialrecordhandler "fleet-tools-backend/lib/trial-record"
	"fleet-tools-backend/middleware"
	apimodels "fleet-tools-backend/models/api"
	trialapimodels "fleet-tools-backend/models/api/trial"
)

type trialRecordApiController struct {
	controllers.BaseAPIController
}

func InitTrialRecordApiRouters(app *fiber.App) {
	controller := trialRecordApiController{}
	app.Route("trials/:sub_module_id/records", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())

		router.Post("list", controller.list)
		router.Post("", controller.save)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.delete)
			idRoute.Get("capabilities", controller.capabilities)
			idRoute.Put("approve", controller.approve)
			idRoute.Put("reject", controller.reject)
		})
	})
}

func (c *trialRecordApiController) getActor(ctx *fiber.Ctx) permissions.Actor {
	return permissions.Actor{
		UserID:        middleware.GetUserID(ctx),
		DirectorateID: middleware.GetDirectorate(ctx),
	}
}

func (c *trialRecordApiController) getSubModuleID(ctx *fiber.Ctx) (string, error) {
	subModuleID := ctx.Params("sub_module_id")
	if subModuleID == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "sub module is not specified")
	}
	return subModuleID, nil
}

// @Summary Save a trial record
// @Tags Trial records
// @Description Save a trial record. Payload without id creates a draft, with id updates; draft_status "save" submits for review
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   sub_module_id		path    string  true	"sub-module ID"
// @Param	body				body		trialapimodels.TrialRecordData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trials/{sub_module_id}/records [post]
func (c *trialRecordApiController) save(ctx *fiber.Ctx) error {
	subModuleID, err := c.getSubModuleID(ctx)
	if err != nil {
		return err
	}
	var payload trialapimodels.TrialRecordData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "trial record is not valid")
	}
	id, err := trialrecordhandler.Instance.Save(subModuleID, c.getActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "trial record save failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Trial record list
// @Tags Trial records
// @Description Trial record list, filtered by draft status; count_only returns per-status totals
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   sub_module_id		path    string  true	"sub-module ID"
// @Param	body				body		trialapimodels.RecordFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]trialapimodels.TrialRecordView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trials/{sub_module_id}/records/list [post]
func (c *trialRecordApiController) list(ctx *fiber.Ctx) error {
	subModuleID, err := c.getSubModuleID(ctx)
	if err != nil {
		return err
	}
	var payload trialapimodels.RecordFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "record filter is not valid")
	}
	if payload.CountOnly {
		counts, err := trialrecordhandler.Instance.Counts(subModuleID)
		if err != nil {
			return c.SendError(ctx, c.GetLogger(ctx), err, "trial record count failed")
		}
		return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(counts))
	}
	list, rowCount, err := trialrecordhandler.Instance.List(subModuleID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "trial record list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Trial record by ID
// @Tags Trial records
// @Description Trial record by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   sub_module_id		path    string  true	"sub-module ID"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=trialapimodels.TrialRecordView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trials/{sub_module_id}/records/{id} [get]
func (c *trialRecordApiController) get(ctx *fiber.Ctx) error {
	subModuleID, err := c.getSubModuleID(ctx)
	if err != nil {
		return err
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	item, err := trialrecordhandler.Instance.GetByID(subModuleID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "trial record read failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Delete a trial record
// @Tags Trial records
// @Description Delete a trial record that has not been approved
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   sub_module_id		path    string  true	"sub-module ID"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trials/{sub_module_id}/records/{id} [delete]
func (c *trialRecordApiController) delete(ctx *fiber.Ctx) error {
	subModuleID, err := c.getSubModuleID(ctx)
	if err != nil {
		return err
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = trialrecordhandler.Instance.Delete(subModuleID, id, c.getActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "trial record delete failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Capabilities of the current user on a record
// @Tags Trial records
// @Description Capabilities of the current user on a record
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   sub_module_id		path    string  true	"sub-module ID"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=trialapimodels.CapabilitiesView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trials/{sub_module_id}/records/{id}/capabilities [get]
func (c *trialRecordApiController) capabilities(ctx *fiber.Ctx) error {
	subModuleID, err := c.getSubModuleID(ctx)
	if err != nil {
		return err
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	item, err := trialrecordhandler.Instance.Capabilities(subModuleID, id, c.getActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "capabilities read failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Approve a submitted record
// @Tags Trial records
// @Description Approve a submitted record
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   sub_module_id		path    string  true	"sub-module ID"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trials/{sub_module_id}/records/{id}/approve [put]
func (c *trialRecordApiController) approve(ctx *fiber.Ctx) error {
	subModuleID, err := c.getSubModuleID(ctx)
	if err != nil {
		return err
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = trialrecordhandler.Instance.Approve(subModuleID, id, c.getActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "record approval failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Reject a submitted record
// @Tags Trial records
// @Description Reject a submitted record back to draft with a reviewer remark
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   sub_module_id		path    string  true	"sub-module ID"
// @Param   id          		path    string  true	"rec ID"
// @Param	body				body		trialapimodels.RejectData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trials/{sub_module_id}/records/{id}/reject [put]
func (c *trialRecordApiController) reject(ctx *fiber.Ctx) error {
	subModuleID, err := c.getSubModuleID(ctx)
	if err != nil {
		return err
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload trialapimodels.RejectData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = trialrecordhandler.Instance.Reject(subModuleID, id, c.getActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "record rejection failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
