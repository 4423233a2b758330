package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"vitalog/domain"
	"vitalog/internal/api/presenters"
	"vitalog/pkg/tracking"
)

type (
	TrackingHandler interface {
		AddGlucoseReading(c *fiber.Ctx) error
		GetGlucoseReadings(c *fiber.Ctx) error
		AddWorkout(c *fiber.Ctx) error
		GetWorkouts(c *fiber.Ctx) error
	}

	trackingHandler struct {
		trackingService tracking.TrackingService
		validator       *validator.Validate
	}
)

func NewTrackingHandler(trackingService tracking.TrackingService, validator *validator.Validate) TrackingHandler {
	return &trackingHandler{
		trackingService: trackingService,
		validator:       validator,
	}
}

func (h *trackingHandler) AddGlucoseReading(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddGlucoseRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedBodyRequest, domain.ErrBadRequest)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedAddGlucose, err)
	}

	res, err := h.trackingService.AddGlucoseReading(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedAddGlucose, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddGlucose)
}

func (h *trackingHandler) GetGlucoseReadings(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.trackingService.GetGlucoseReadings(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedGetGlucose, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetGlucose)
}

func (h *trackingHandler) AddWorkout(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddWorkoutRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedBodyRequest, domain.ErrBadRequest)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedAddWorkout, err)
	}

	res, err := h.trackingService.AddWorkout(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedAddWorkout, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddWorkout)
}

func (h *trackingHandler) GetWorkouts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.trackingService.GetWorkouts(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedGetWorkouts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetWorkouts)
}
