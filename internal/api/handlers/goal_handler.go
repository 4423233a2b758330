package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"vitalog/domain"
	"vitalog/internal/api/presenters"
	"vitalog/pkg/goal"
)

type (
	GoalHandler interface {
		CreateGoal(c *fiber.Ctx) error
		GetGoals(c *fiber.Ctx) error
		RecordProgress(c *fiber.Ctx) error
	}

	goalHandler struct {
		goalService goal.GoalService
		validator   *validator.Validate
	}
)

func NewGoalHandler(goalService goal.GoalService, validator *validator.Validate) GoalHandler {
	return &goalHandler{
		goalService: goalService,
		validator:   validator,
	}
}

func (h *goalHandler) CreateGoal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateGoalRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedBodyRequest, domain.ErrBadRequest)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedCreateGoal, err)
	}

	res, err := h.goalService.CreateGoal(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedCreateGoal, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateGoal)
}

func (h *goalHandler) GetGoals(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.goalService.GetGoals(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedGetGoals, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetGoals)
}

func (h *goalHandler) RecordProgress(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	goalID := c.Params("id")
	req := new(domain.RecordProgressRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedBodyRequest, domain.ErrBadRequest)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedRecordProgress, err)
	}

	res, err := h.goalService.RecordProgress(c.Context(), goalID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedRecordProgress, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRecordProgress)
}
