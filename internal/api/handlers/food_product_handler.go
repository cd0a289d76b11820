package handlers

import (
	"Food-Quality-Registry/domain"
	"Food-Quality-Registry/internal/api/presenters"
	"Food-Quality-Registry/internal/middleware"
	"Food-Quality-Registry/internal/utils"
	"Food-Quality-Registry/internal/utils/storage"
	"Food-Quality-Registry/pkg/food"
	"errors"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const imageFormField = "imageFile"

type (
	FoodProductHandler interface {
		CreateFoodProduct(c *fiber.Ctx) error
		GetFoodProducts(c *fiber.Ctx) error
		GetFoodProduct(c *fiber.Ctx) error
		GetBatchCodes(c *fiber.Ctx) error
		GetInspectionStats(c *fiber.Ctx) error
		UpdateFoodProduct(c *fiber.Ctx) error
		UpdateFoodProductImage(c *fiber.Ctx) error
		DeleteFoodProduct(c *fiber.Ctx) error
	}

	foodProductHandler struct {
		foodService food.FoodService
		validator   *validator.Validate
	}
)

func NewFoodProductHandler(foodService food.FoodService, validator *validator.Validate) FoodProductHandler {
	return &foodProductHandler{
		foodService: foodService,
		validator:   validator,
	}
}

func (h *foodProductHandler) CreateFoodProduct(c *fiber.Ctx) error {
	req, msg, err := h.parseForm(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, msg, err)
	}
	if !req.HasImage() {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageImageRequired, nil)
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageUserNotAuthenticated, nil)
	}

	product, err := h.foodService.CreateProduct(c.Context(), userID, *req)
	if err != nil {
		code, msg := errorStatus(err, domain.MessageFailedCreateFoodProduct)
		return presenters.ErrorResponse(c, code, msg, err)
	}

	return presenters.SuccessResponse(c, domain.CreateFoodProductResponse{
		ID: product.ID.String(),
	}, fiber.StatusOK, domain.MessageSuccessCreateFoodProduct)
}

func (h *foodProductHandler) GetFoodProducts(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageUserNotAuthenticated, nil)
	}

	products, err := h.foodService.GetProducts(c.Context(), userID, c.Query("search"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetFoodProducts, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"food_products": food.ToFoodProductResponses(products),
	}, fiber.StatusOK, domain.MessageSuccessGetFoodProducts)
}

func (h *foodProductHandler) GetFoodProduct(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageUserNotAuthenticated, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFoodProductNotFound, nil)
	}

	product, err := h.foodService.GetProductByID(c.Context(), userID, id)
	if err != nil {
		code, msg := errorStatus(err, domain.MessageFailedGetFoodProducts)
		return presenters.ErrorResponse(c, code, msg, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"food_product": food.ToFoodProductResponse(product),
	}, fiber.StatusOK, domain.MessageSuccessGetFoodProduct)
}

func (h *foodProductHandler) GetBatchCodes(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageUserNotAuthenticated, nil)
	}

	batches, err := h.foodService.GetBatchCodes(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetFoodProducts, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"batches": batches,
	}, fiber.StatusOK, domain.MessageSuccessGetBatches)
}

func (h *foodProductHandler) GetInspectionStats(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageUserNotAuthenticated, nil)
	}

	stats, err := h.foodService.GetInspectionStats(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetStats)
}

func (h *foodProductHandler) UpdateFoodProduct(c *fiber.Ctx) error {
	req, msg, err := h.parseForm(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, msg, err)
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageUserNotAuthenticated, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFoodProductNotFound, nil)
	}

	product, err := h.foodService.UpdateProduct(c.Context(), userID, id, *req)
	if err != nil {
		code, msg := errorStatus(err, domain.MessageFailedUpdateFoodProduct)
		return presenters.ErrorResponse(c, code, msg, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"food_product": food.ToFoodProductResponse(product),
	}, fiber.StatusOK, domain.MessageSuccessUpdateFoodProduct)
}

func (h *foodProductHandler) UpdateFoodProductImage(c *fiber.Ctx) error {
	req := domain.ProductImageForm{
		ID:        c.Params("id"),
		ImageFile: formFile(c),
	}

	if req.IsEmpty() {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageImageEmpty, nil)
	}
	if !req.IsValidImage() {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageImageInvalidType, nil)
	}
	if !req.IsSizeValid(domain.MaxImageSize) {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageImageTooLarge, nil)
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageUserNotAuthenticated, nil)
	}

	updated, err := h.foodService.UpdateProductImage(c.Context(), userID, req)
	if err != nil {
		code, msg := errorStatus(err, domain.MessageFailedUpdateImage)
		return presenters.ErrorResponse(c, code, msg, err)
	}
	if !updated {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateImage, nil)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateImage)
}

func (h *foodProductHandler) DeleteFoodProduct(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageUserNotAuthenticated, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFoodProductNotFound, nil)
	}

	deleted, err := h.foodService.DeleteProduct(c.Context(), userID, id)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDeleteFoodProduct, err)
	}
	if !deleted {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFoodProductNotFound, nil)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteFoodProduct)
}

// parseForm binds and validates the text fields and attaches the optional image.
// On failure it returns the client message for the first offending field.
func (h *foodProductHandler) parseForm(c *fiber.Ctx) (*domain.FoodProductForm, string, error) {
	req := new(domain.FoodProductForm)
	if err := c.BodyParser(req); err != nil {
		return nil, domain.MessageFailedBodyRequest, err
	}

	if err := h.validator.Struct(req); err != nil {
		msg, ok := domain.FoodProductFieldMessages[utils.FirstInvalidField(err)]
		if !ok {
			msg = domain.MessageFailedBodyRequest
		}
		return nil, msg, err
	}

	req.ImageFile = formFile(c)
	return req, "", nil
}

func formFile(c *fiber.Ctx) *multipart.FileHeader {
	file, err := c.FormFile(imageFormField)
	if err != nil {
		return nil
	}
	return file
}

// errorStatus maps a service error to a response code and message.
func errorStatus(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, domain.ErrFoodProductNotFound):
		return fiber.StatusNotFound, domain.MessageFoodProductNotFound
	case errors.Is(err, domain.ErrBatchCodeExists):
		return fiber.StatusConflict, domain.MessageBatchCodeUsed
	case errors.Is(err, domain.ErrInvalidDate):
		return fiber.StatusBadRequest, domain.MessageInvalidDate
	case errors.Is(err, storage.ErrStoreFile):
		return fiber.StatusInternalServerError, domain.MessageFailedStoreImage
	default:
		return fiber.StatusInternalServerError, fallback
	}
}
