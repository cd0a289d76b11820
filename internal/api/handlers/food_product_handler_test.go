package handlers

import (
	"Food-Quality-Registry/domain"
	"Food-Quality-Registry/entities"
	"Food-Quality-Registry/internal/middleware"
	"Food-Quality-Registry/internal/utils"
	"Food-Quality-Registry/internal/utils/storage"
	"Food-Quality-Registry/pkg/jwt"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFoodService struct {
	calls int

	product  *entities.FoodProduct
	products []*entities.FoodProduct
	stats    map[string]int64
	batches  []string
	ok       bool
	err      error

	lastUserID uuid.UUID
	lastForm   domain.FoodProductForm
	lastImage  domain.ProductImageForm
	lastSearch string
}

func (f *fakeFoodService) CreateProduct(_ context.Context, userID uuid.UUID, form domain.FoodProductForm) (*entities.FoodProduct, error) {
	f.calls++
	f.lastUserID, f.lastForm = userID, form
	return f.product, f.err
}

func (f *fakeFoodService) GetProducts(_ context.Context, userID uuid.UUID, keyword string) ([]*entities.FoodProduct, error) {
	f.calls++
	f.lastUserID, f.lastSearch = userID, keyword
	return f.products, f.err
}

func (f *fakeFoodService) GetProductByID(_ context.Context, userID uuid.UUID, _ uuid.UUID) (*entities.FoodProduct, error) {
	f.calls++
	f.lastUserID = userID
	return f.product, f.err
}

func (f *fakeFoodService) GetBatchCodes(context.Context, uuid.UUID) ([]string, error) {
	f.calls++
	return f.batches, f.err
}

func (f *fakeFoodService) UpdateProduct(_ context.Context, userID uuid.UUID, _ uuid.UUID, form domain.FoodProductForm) (*entities.FoodProduct, error) {
	f.calls++
	f.lastUserID, f.lastForm = userID, form
	return f.product, f.err
}

func (f *fakeFoodService) UpdateProductImage(_ context.Context, userID uuid.UUID, form domain.ProductImageForm) (bool, error) {
	f.calls++
	f.lastUserID, f.lastImage = userID, form
	return f.ok, f.err
}

func (f *fakeFoodService) DeleteProduct(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	f.calls++
	return f.ok, f.err
}

func (f *fakeFoodService) GetInspectionStats(context.Context, uuid.UUID) (map[string]int64, error) {
	f.calls++
	return f.stats, f.err
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testEnv struct {
	app     *fiber.App
	service *fakeFoodService
	token   string
	userID  uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	utils.InitValidator()

	jwtService := jwt.NewJWTService("secret", "FOOD-QUALITY")
	userID := uuid.New()
	token, err := jwtService.GenerateTokenUser(userID.String(), domain.RoleUser)
	require.NoError(t, err)

	svc := &fakeFoodService{}
	h := NewFoodProductHandler(svc, utils.Validate)

	app := fiber.New(fiber.Config{BodyLimit: 16 * 1024 * 1024})
	api := app.Group("/api/food-products", middleware.NewMiddleware().Authenticate(jwtService))
	api.Post("", h.CreateFoodProduct)
	api.Get("", h.GetFoodProducts)
	api.Get("/batches", h.GetBatchCodes)
	api.Get("/stats", h.GetInspectionStats)
	api.Get("/:id", h.GetFoodProduct)
	api.Put("/:id", h.UpdateFoodProduct)
	api.Put("/:id/image", h.UpdateFoodProductImage)
	api.Delete("/:id", h.DeleteFoodProduct)

	return &testEnv{app: app, service: svc, token: token, userID: userID}
}

type filePart struct {
	name        string
	contentType string
	content     []byte
}

func multipartBody(t *testing.T, fields map[string]string, file *filePart) (io.Reader, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, imageFormField, file.name))
		h.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func (e *testEnv) do(t *testing.T, method, target string, body io.Reader, contentType string, authed bool) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func validFields() map[string]string {
	return map[string]string{
		"productName":      "Keripik Tempe",
		"batchCode":        "BATCH-001",
		"inspectionStatus": domain.StatusPending,
		"category":         "Makanan Ringan",
		"productionDate":   "2024-01-10",
	}
}

func sampleJPEG() *filePart {
	return &filePart{name: "sample.jpg", contentType: "image/jpeg", content: []byte("jpeg-bytes")}
}

func storedProduct(userID uuid.UUID) *entities.FoodProduct {
	p := entities.NewFoodProduct(userID)
	p.ProductName = "Keripik Tempe"
	p.BatchCode = "BATCH-001"
	p.InspectionStatus = domain.StatusPending
	return p
}

func TestCreateFoodProduct_Success(t *testing.T) {
	env := newTestEnv(t)
	env.service.product = storedProduct(env.userID)

	body, ct := multipartBody(t, validFields(), sampleJPEG())
	code, res := env.do(t, http.MethodPost, "/api/food-products", body, ct, true)

	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "success", res.Status)
	assert.JSONEq(t, fmt.Sprintf(`{"id":"%s"}`, env.service.product.ID), string(res.Data))

	assert.Equal(t, env.userID, env.service.lastUserID)
	assert.Equal(t, "Keripik Tempe", env.service.lastForm.ProductName)
	assert.Equal(t, "2024-01-10", env.service.lastForm.ProductionDate)
	require.NotNil(t, env.service.lastForm.ImageFile)
	assert.Equal(t, "sample.jpg", env.service.lastForm.ImageFile.Filename)
}

func TestCreateFoodProduct_MissingNameBeforeAuth(t *testing.T) {
	env := newTestEnv(t)
	fields := validFields()
	delete(fields, "productName")

	body, ct := multipartBody(t, fields, sampleJPEG())
	code, res := env.do(t, http.MethodPost, "/api/food-products", body, ct, false)

	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "fail", res.Status)
	assert.Equal(t, domain.MessageInvalidProductName, res.Message)
	assert.Zero(t, env.service.calls)
}

func TestCreateFoodProduct_FieldOrder(t *testing.T) {
	env := newTestEnv(t)

	body, ct := multipartBody(t, map[string]string{"category": "Minuman"}, sampleJPEG())
	code, res := env.do(t, http.MethodPost, "/api/food-products", body, ct, true)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, domain.MessageInvalidProductName, res.Message)

	body, ct = multipartBody(t, map[string]string{"productName": "x", "batchCode": "y"}, sampleJPEG())
	code, res = env.do(t, http.MethodPost, "/api/food-products", body, ct, true)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, domain.MessageInvalidInspectionStatus, res.Message)
	assert.Zero(t, env.service.calls)
}

func TestCreateFoodProduct_InvalidDateFormat(t *testing.T) {
	env := newTestEnv(t)
	fields := validFields()
	fields["expiryDate"] = "10/07/2024"

	body, ct := multipartBody(t, fields, sampleJPEG())
	code, res := env.do(t, http.MethodPost, "/api/food-products", body, ct, true)

	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, domain.MessageInvalidDate, res.Message)
	assert.Zero(t, env.service.calls)
}

func TestCreateFoodProduct_ImageRequired(t *testing.T) {
	env := newTestEnv(t)

	body, ct := multipartBody(t, validFields(), nil)
	code, res := env.do(t, http.MethodPost, "/api/food-products", body, ct, false)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, domain.MessageImageRequired, res.Message)

	body, ct = multipartBody(t, validFields(), &filePart{name: "empty.jpg", contentType: "image/jpeg"})
	code, res = env.do(t, http.MethodPost, "/api/food-products", body, ct, false)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, domain.MessageImageRequired, res.Message)
	assert.Zero(t, env.service.calls)
}

func TestCreateFoodProduct_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)

	body, ct := multipartBody(t, validFields(), sampleJPEG())
	code, res := env.do(t, http.MethodPost, "/api/food-products", body, ct, false)

	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, domain.MessageUserNotAuthenticated, res.Message)
	assert.Zero(t, env.service.calls)
}

func TestCreateFoodProduct_ServiceErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"conflict", domain.ErrBatchCodeExists, fiber.StatusConflict, domain.MessageBatchCodeUsed},
		{"storage", fmt.Errorf("%w sample.jpg: disk full", storage.ErrStoreFile), fiber.StatusInternalServerError, domain.MessageFailedStoreImage},
		{"date", domain.ErrInvalidDate, fiber.StatusBadRequest, domain.MessageInvalidDate},
		{"other", fmt.Errorf("boom"), fiber.StatusInternalServerError, domain.MessageFailedCreateFoodProduct},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.service.err = tc.err

			body, ct := multipartBody(t, validFields(), sampleJPEG())
			code, res := env.do(t, http.MethodPost, "/api/food-products", body, ct, true)

			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.message, res.Message)
		})
	}
}

func TestGetFoodProducts(t *testing.T) {
	env := newTestEnv(t)
	env.service.products = []*entities.FoodProduct{storedProduct(env.userID)}

	code, res := env.do(t, http.MethodGet, "/api/food-products?search=keripik", nil, "", true)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "keripik", env.service.lastSearch)

	var data struct {
		FoodProducts []domain.FoodProductResponse `json:"food_products"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &data))
	require.Len(t, data.FoodProducts, 1)
	assert.Equal(t, "BATCH-001", data.FoodProducts[0].BatchCode)

	code, _ = env.do(t, http.MethodGet, "/api/food-products", nil, "", false)
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestGetFoodProducts_EmptyListIsArray(t *testing.T) {
	env := newTestEnv(t)

	code, res := env.do(t, http.MethodGet, "/api/food-products", nil, "", true)
	require.Equal(t, fiber.StatusOK, code)
	assert.JSONEq(t, `{"food_products":[]}`, string(res.Data))
}

func TestGetFoodProduct(t *testing.T) {
	env := newTestEnv(t)
	env.service.product = storedProduct(env.userID)

	code, res := env.do(t, http.MethodGet, "/api/food-products/"+env.service.product.ID.String(), nil, "", true)
	require.Equal(t, fiber.StatusOK, code)
	var data struct {
		FoodProduct domain.FoodProductResponse `json:"food_product"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &data))
	assert.Equal(t, env.service.product.ID.String(), data.FoodProduct.ID)

	env.service.err = domain.ErrFoodProductNotFound
	code, _ = env.do(t, http.MethodGet, "/api/food-products/"+uuid.NewString(), nil, "", true)
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = env.do(t, http.MethodGet, "/api/food-products/"+uuid.NewString(), nil, "", false)
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestGetFoodProduct_MalformedIDIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	code, res := env.do(t, http.MethodGet, "/api/food-products/not-a-uuid", nil, "", true)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, domain.MessageFoodProductNotFound, res.Message)
	assert.Zero(t, env.service.calls)
}

func TestGetBatchCodesAndStats(t *testing.T) {
	env := newTestEnv(t)
	env.service.batches = []string{"A-1", "B-2"}
	env.service.stats = map[string]int64{"PASSED": 1, "REJECTED": 2, "PENDING": 3, "TOTAL": 6}

	code, res := env.do(t, http.MethodGet, "/api/food-products/batches", nil, "", true)
	require.Equal(t, fiber.StatusOK, code)
	assert.JSONEq(t, `{"batches":["A-1","B-2"]}`, string(res.Data))

	code, res = env.do(t, http.MethodGet, "/api/food-products/stats", nil, "", true)
	require.Equal(t, fiber.StatusOK, code)
	assert.JSONEq(t, `{"PASSED":1,"REJECTED":2,"PENDING":3,"TOTAL":6}`, string(res.Data))
}

func TestUpdateFoodProduct(t *testing.T) {
	env := newTestEnv(t)
	env.service.product = storedProduct(env.userID)
	target := "/api/food-products/" + env.service.product.ID.String()

	body, ct := multipartBody(t, validFields(), nil)
	code, res := env.do(t, http.MethodPut, target, body, ct, true)
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, string(res.Data), `"food_product"`)
	assert.Nil(t, env.service.lastForm.ImageFile)

	fields := validFields()
	fields["productName"] = ""
	body, ct = multipartBody(t, fields, nil)
	code, res = env.do(t, http.MethodPut, target, body, ct, false)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, domain.MessageInvalidProductName, res.Message)

	body, ct = multipartBody(t, validFields(), nil)
	code, _ = env.do(t, http.MethodPut, target, body, ct, false)
	assert.Equal(t, fiber.StatusForbidden, code)

	env.service.err = domain.ErrFoodProductNotFound
	body, ct = multipartBody(t, validFields(), nil)
	code, _ = env.do(t, http.MethodPut, target, body, ct, true)
	assert.Equal(t, fiber.StatusNotFound, code)

	env.service.err = domain.ErrBatchCodeExists
	body, ct = multipartBody(t, validFields(), nil)
	code, res = env.do(t, http.MethodPut, target, body, ct, true)
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, domain.MessageBatchCodeUsed, res.Message)
}

func TestUpdateFoodProductImage_Validation(t *testing.T) {
	cases := []struct {
		name    string
		file    *filePart
		message string
	}{
		{"missing", nil, domain.MessageImageEmpty},
		{"empty", &filePart{name: "a.jpg", contentType: "image/jpeg"}, domain.MessageImageEmpty},
		{"type", &filePart{name: "a.pdf", contentType: "application/pdf", content: []byte("%PDF")}, domain.MessageImageInvalidType},
		{"size", &filePart{name: "big.jpg", contentType: "image/jpeg", content: make([]byte, 6*1024*1024)}, domain.MessageImageTooLarge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			body, ct := multipartBody(t, nil, tc.file)
			code, res := env.do(t, http.MethodPut, "/api/food-products/"+uuid.NewString()+"/image", body, ct, false)

			assert.Equal(t, fiber.StatusBadRequest, code)
			assert.Equal(t, tc.message, res.Message)
			assert.Zero(t, env.service.calls)
		})
	}
}

func TestUpdateFoodProductImage(t *testing.T) {
	env := newTestEnv(t)
	id := uuid.NewString()
	target := "/api/food-products/" + id + "/image"
	png := &filePart{name: "new.png", contentType: "image/png", content: []byte("png")}

	body, ct := multipartBody(t, nil, png)
	code, _ := env.do(t, http.MethodPut, target, body, ct, false)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Zero(t, env.service.calls)

	body, ct = multipartBody(t, nil, png)
	code, _ = env.do(t, http.MethodPut, target, body, ct, true)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, id, env.service.lastImage.ID)

	env.service.ok = true
	body, ct = multipartBody(t, nil, png)
	code, res := env.do(t, http.MethodPut, target, body, ct, true)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, domain.MessageSuccessUpdateImage, res.Message)
}

func TestDeleteFoodProduct(t *testing.T) {
	env := newTestEnv(t)
	target := "/api/food-products/" + uuid.NewString()

	code, _ := env.do(t, http.MethodDelete, target, nil, "", false)
	assert.Equal(t, fiber.StatusForbidden, code)

	env.service.ok = true
	code, _ = env.do(t, http.MethodDelete, target, nil, "", true)
	assert.Equal(t, fiber.StatusOK, code)

	env.service.ok = false
	code, _ = env.do(t, http.MethodDelete, target, nil, "", true)
	assert.Equal(t, fiber.StatusNotFound, code)
}
