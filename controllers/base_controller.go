package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"fleet-tools-backend/middleware"
	apimodels "fleet-tools-backend/models/api"
	"fleet-tools-backend/models/apperrors"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("request parse failed")
		return errors.New("could not read data from the request")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", errors.New("record id is not specified")
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", errors.New("record id is not valid")
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("path", ctx.Path()).
		WithField("user_id", middleware.GetUserID(ctx))
}

// SendError converts a handler error into an HTTP response. The error
// kind picks the status; hMsg is the fallback message for errors that
// carry no readable text of their own.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, hMsg string) error {
	kind := apperrors.KindOf(err)
	status := fiber.StatusInternalServerError
	switch kind {
	case apperrors.KindInvalidRequest, apperrors.KindValidation:
		status = fiber.StatusBadRequest
	case apperrors.KindNotFound:
		status = fiber.StatusNotFound
	case apperrors.KindInvalidTransition, apperrors.KindConcurrentModification:
		status = fiber.StatusConflict
	}
	message := hMsg
	if appErr := apperrors.AsError(err); appErr != nil {
		message = appErr.Message
	}
	if status == fiber.StatusInternalServerError {
		logger.WithError(err).Error(hMsg)
		message = hMsg
	}
	return ctx.Status(status).JSON(apimodels.NewError(message))
}
