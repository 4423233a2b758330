package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"vitalog/domain"
	"vitalog/internal/api/presenters"
	"vitalog/internal/utils/storage"
	"vitalog/pkg/importer"
	"vitalog/pkg/recipe"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		GetAdminRecipes(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		ImportRecipes(c *fiber.Ctx) error
		UploadRecipeImage(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		importService importer.ImportService
		s3            storage.AwsS3
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, importService importer.ImportService, s3 storage.AwsS3, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		importService: importService,
		s3:            s3,
		validator:     validator,
	}
}

// GetRecipes serves the public catalog: public+published recipes, plus the
// caller's own when a bearer token was presented.
func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	viewerID, _ := c.Locals("user_id").(string)
	isAdmin, _ := c.Locals("is_admin").(bool)

	res, err := h.recipeService.GetRecipes(c.Context(), viewerID, isAdmin)
	if err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	viewerID, _ := c.Locals("user_id").(string)
	isAdmin, _ := c.Locals("is_admin").(bool)
	recipeID := c.Params("id")

	res, err := h.recipeService.GetRecipeDetail(c.Context(), recipeID, viewerID, isAdmin)
	if err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedBodyRequest, domain.ErrBadRequest)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) GetAdminRecipes(c *fiber.Ctx) error {
	search := c.Query("search", "")

	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit < 1 {
		limit = 50
	}

	res, err := h.recipeService.GetAdminRecipes(c.Context(), search, limit)
	if err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	recipeID := c.Params("id")

	if err := h.recipeService.DeleteRecipe(c.Context(), recipeID); err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedDeleteRecipe, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *recipeHandler) ImportRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.ImportRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedBodyRequest, domain.ErrBadRequest)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedImport, err)
	}

	res, err := h.importService.ImportFromExternalSource(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedImport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessImport)
}

func (h *recipeHandler) UploadRecipeImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedUploadImage, domain.ErrBadRequest)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedUploadImage, err)
	}
	defer file.Close()

	imageURL, err := h.s3.UploadFile(
		c.Context(),
		"recipe-images",
		fileHeader.Filename,
		file,
		fileHeader.Header.Get(fiber.HeaderContentType),
	)
	if err != nil {
		return presenters.ErrorResponse(c, domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, domain.UploadImageResponse{ImageURL: imageURL}, fiber.StatusCreated, domain.MessageSuccessUploadImage)
}
