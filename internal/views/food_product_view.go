package views

import (
	"Food-Quality-Registry/domain"
	"Food-Quality-Registry/entities"
	"Food-Quality-Registry/internal/middleware"
	"Food-Quality-Registry/internal/utils"
	"Food-Quality-Registry/internal/utils/storage"
	"Food-Quality-Registry/pkg/food"
	"errors"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	basePath       = "/food-products"
	imageFormField = "imageFile"
	statusAll      = "ALL"

	MessageInvalidImageFile = "invalid file (must be an image, max 5MB)"
	MessageFailedSave       = "failed to save data"
)

// Categories counted on the dashboard.
var dashboardCategories = []string{"Makanan Ringan", "Minuman", "Bahan Baku"}

type (
	FoodProductView interface {
		Home(c *fiber.Ctx) error
		List(c *fiber.Ctx) error
		Detail(c *fiber.Ctx) error
		AddPage(c *fiber.Ctx) error
		Add(c *fiber.Ctx) error
		EditPage(c *fiber.Ctx) error
		Edit(c *fiber.Ctx) error
		EditImagePage(c *fiber.Ctx) error
		EditImage(c *fiber.Ctx) error
		DeletePage(c *fiber.Ctx) error
		Delete(c *fiber.Ctx) error
		Image(c *fiber.Ctx) error
	}

	foodProductView struct {
		foodService food.FoodService
		storage     storage.FileStorage
		validator   *validator.Validate
		renderer    *renderer
		loginURL    string
		log         *zap.Logger
	}

	categoryCount struct {
		Name  string
		Count int
	}
)

func NewFoodProductView(
	foodService food.FoodService,
	fileStorage storage.FileStorage,
	validator *validator.Validate,
	loginURL string,
	log *zap.Logger,
) (FoodProductView, error) {
	r, err := newRenderer()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &foodProductView{
		foodService: foodService,
		storage:     fileStorage,
		validator:   validator,
		renderer:    r,
		loginURL:    loginURL,
		log:         log.Named("food-view"),
	}, nil
}

func (v *foodProductView) Home(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return v.toLogin(c)
	}

	all, err := v.foodService.GetProducts(c.Context(), userID, "")
	if err != nil {
		return err
	}

	search := c.Query("search")
	display := all
	if strings.TrimSpace(search) != "" {
		if display, err = v.foodService.GetProducts(c.Context(), userID, search); err != nil {
			return err
		}
	}

	statusCounts := map[string]int{
		domain.StatusPassed:   0,
		domain.StatusRejected: 0,
		domain.StatusPending:  0,
	}
	categories := make([]categoryCount, len(dashboardCategories))
	for i, name := range dashboardCategories {
		categories[i].Name = name
	}
	for _, p := range all {
		for status := range statusCounts {
			if strings.EqualFold(p.InspectionStatus, status) {
				statusCounts[status]++
			}
		}
		for i := range categories {
			if strings.EqualFold(p.Category, categories[i].Name) {
				categories[i].Count++
			}
		}
	}

	return v.renderer.render(c, pageHome, withFlash(c, fiber.Map{
		"Search":     search,
		"Products":   food.ToFoodProductResponses(display),
		"Passed":     statusCounts[domain.StatusPassed],
		"Rejected":   statusCounts[domain.StatusRejected],
		"Pending":    statusCounts[domain.StatusPending],
		"Categories": categories,
	}))
}

// List filters by name or batch code and by status; "ALL" disables the status filter.
func (v *foodProductView) List(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return v.toLogin(c)
	}

	all, err := v.foodService.GetProducts(c.Context(), userID, "")
	if err != nil {
		return err
	}

	search := c.Query("search")
	status := c.Query("status")
	keyword := strings.ToLower(strings.TrimSpace(search))

	display := make([]*entities.FoodProduct, 0, len(all))
	for _, p := range all {
		if keyword != "" &&
			!strings.Contains(strings.ToLower(p.ProductName), keyword) &&
			!strings.Contains(strings.ToLower(p.BatchCode), keyword) {
			continue
		}
		if strings.TrimSpace(status) != "" && status != statusAll && !strings.EqualFold(p.InspectionStatus, status) {
			continue
		}
		display = append(display, p)
	}

	return v.renderer.render(c, pageList, withFlash(c, fiber.Map{
		"Search":   search,
		"Status":   status,
		"Statuses": []string{statusAll, domain.StatusPassed, domain.StatusRejected, domain.StatusPending},
		"Products": food.ToFoodProductResponses(display),
	}))
}

func (v *foodProductView) Detail(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return v.toLogin(c)
	}

	product, ok, err := v.ownedProduct(c, userID, c.Params("id"))
	if err != nil {
		return err
	}
	if !ok {
		return c.Redirect(basePath)
	}

	return v.renderer.render(c, pageDetail, withFlash(c, fiber.Map{
		"Product": food.ToFoodProductResponse(product),
	}))
}

func (v *foodProductView) AddPage(c *fiber.Ctx) error {
	if _, ok := middleware.CurrentUserID(c); !ok {
		return v.toLogin(c)
	}
	return v.renderer.render(c, pageAdd, withFlash(c, fiber.Map{
		"Statuses": []string{domain.StatusPending, domain.StatusPassed, domain.StatusRejected},
	}))
}

func (v *foodProductView) Add(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return v.toLogin(c)
	}
	addPath := basePath + "/add"

	form, msg := v.parseForm(c)
	if form == nil {
		return v.redirectWithError(c, addPath, msg)
	}
	if !form.HasImage() {
		return v.redirectWithError(c, addPath, domain.MessageImageRequired)
	}

	if _, err := v.foodService.CreateProduct(c.Context(), userID, *form); err != nil {
		return v.redirectWithError(c, addPath, v.failureMessage(err))
	}

	setFlash(c, flashSuccess, domain.MessageSuccessCreateFoodProduct)
	return c.Redirect(basePath)
}

func (v *foodProductView) EditPage(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return v.toLogin(c)
	}

	product, ok, err := v.ownedProduct(c, userID, c.Params("id"))
	if err != nil {
		return err
	}
	if !ok {
		return c.Redirect(basePath)
	}

	return v.renderer.render(c, pageEdit, withFlash(c, fiber.Map{
		"Product":  food.ToFoodProductResponse(product),
		"Statuses": []string{domain.StatusPending, domain.StatusPassed, domain.StatusRejected},
	}))
}

func (v *foodProductView) Edit(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return v.toLogin(c)
	}

	rawID := c.FormValue("id")
	editPath := basePath + "/edit/" + rawID

	form, msg := v.parseForm(c)
	if form == nil {
		return v.redirectWithError(c, editPath, msg)
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return v.redirectWithError(c, basePath, domain.MessageFoodProductNotFound)
	}

	if _, err := v.foodService.UpdateProduct(c.Context(), userID, id, *form); err != nil {
		return v.redirectWithError(c, editPath, v.failureMessage(err))
	}

	setFlash(c, flashSuccess, domain.MessageSuccessUpdateFoodProduct)
	return c.Redirect(basePath + "/" + id.String())
}

func (v *foodProductView) EditImagePage(c *fiber.Ctx) error {
	if _, ok := middleware.CurrentUserID(c); !ok {
		return v.toLogin(c)
	}
	return v.renderer.render(c, pageEditImage, withFlash(c, fiber.Map{
		"ID": c.Params("id"),
	}))
}

func (v *foodProductView) EditImage(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return v.toLogin(c)
	}

	form := domain.ProductImageForm{ID: c.FormValue("id")}
	if file, err := c.FormFile(imageFormField); err == nil {
		form.ImageFile = file
	}
	editImagePath := basePath + "/edit-image/" + form.ID

	if form.IsEmpty() || !form.IsValidImage() || !form.IsSizeValid(domain.MaxImageSize) {
		return v.redirectWithError(c, editImagePath, MessageInvalidImageFile)
	}

	updated, err := v.foodService.UpdateProductImage(c.Context(), userID, form)
	if err != nil {
		return v.redirectWithError(c, editImagePath, v.failureMessage(err))
	}
	if !updated {
		return v.redirectWithError(c, editImagePath, domain.MessageFailedUpdateImage)
	}

	setFlash(c, flashSuccess, domain.MessageSuccessUpdateImage)
	return c.Redirect(basePath + "/" + form.ID)
}

func (v *foodProductView) DeletePage(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return v.toLogin(c)
	}

	product, ok, err := v.ownedProduct(c, userID, c.Params("id"))
	if err != nil {
		return err
	}
	if !ok {
		return c.Redirect(basePath)
	}

	return v.renderer.render(c, pageDelete, withFlash(c, fiber.Map{
		"Product": food.ToFoodProductResponse(product),
	}))
}

func (v *foodProductView) Delete(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return v.toLogin(c)
	}

	rawID := c.FormValue("id")
	id, err := uuid.Parse(rawID)
	if err != nil {
		return v.redirectWithError(c, basePath, domain.MessageFoodProductNotFound)
	}

	deleted, err := v.foodService.DeleteProduct(c.Context(), userID, id)
	if err != nil {
		return v.redirectWithError(c, basePath+"/"+rawID, v.failureMessage(err))
	}
	if !deleted {
		return v.redirectWithError(c, basePath+"/"+rawID, domain.MessageFailedDeleteFoodProduct)
	}

	setFlash(c, flashSuccess, domain.MessageSuccessDeleteFoodProduct)
	return c.Redirect(basePath)
}

// Image streams a stored sample photo by its stored name.
func (v *foodProductView) Image(c *fiber.Ctx) error {
	filename := c.Params("filename")

	rc, err := v.storage.Open(c.Context(), filename)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return fiber.ErrNotFound
		}
		v.log.Error("open image failed", zap.String("filename", filename), zap.Error(err))
		return err
	}

	c.Type(strings.TrimPrefix(filepath.Ext(filename), "."))
	return c.SendStream(rc)
}

func (v *foodProductView) ownedProduct(c *fiber.Ctx, userID uuid.UUID, rawID string) (*entities.FoodProduct, bool, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, false, nil
	}

	product, err := v.foodService.GetProductByID(c.Context(), userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrFoodProductNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return product, true, nil
}

// parseForm returns nil and a message when the submitted form is unusable.
func (v *foodProductView) parseForm(c *fiber.Ctx) (*domain.FoodProductForm, string) {
	form := new(domain.FoodProductForm)
	if err := c.BodyParser(form); err != nil {
		return nil, domain.MessageFailedBodyRequest
	}

	if err := v.validator.Struct(form); err != nil {
		msg, ok := domain.FoodProductFieldMessages[utils.FirstInvalidField(err)]
		if !ok {
			msg = domain.MessageFailedBodyRequest
		}
		return nil, msg
	}

	if file, err := c.FormFile(imageFormField); err == nil {
		form.ImageFile = file
	}
	return form, ""
}

func (v *foodProductView) failureMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrBatchCodeExists):
		return domain.MessageBatchCodeUsed
	case errors.Is(err, domain.ErrFoodProductNotFound):
		return domain.MessageFoodProductNotFound
	case errors.Is(err, domain.ErrInvalidDate):
		return domain.MessageInvalidDate
	case errors.Is(err, storage.ErrStoreFile):
		return domain.MessageFailedStoreImage
	default:
		v.log.Error("view operation failed", zap.Error(err))
		return MessageFailedSave
	}
}

func (v *foodProductView) redirectWithError(c *fiber.Ctx, location string, message string) error {
	setFlash(c, flashError, message)
	return c.Redirect(location)
}

func (v *foodProductView) toLogin(c *fiber.Ctx) error {
	return c.Redirect(v.loginURL)
}
