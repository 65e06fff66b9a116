package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ticket-registry/internal/handler"
	"ticket-registry/internal/model"
	"ticket-registry/test/internal/mocks/services"

	apperrors "ticket-registry/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupRegistryTestRouter(query *services.QueryServiceMock, price *services.PriceServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	registryHandler := handler.NewRegistryHandler(query, price)
	registryHandler.RegisterRoutes(router)

	return router
}

func TestGetCount(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		query := services.NewQueryServiceMock()
		price := services.NewPriceServiceMock()
		router := setupRegistryTestRouter(query, price)

		query.On("TotalIssued", mock.Anything).Return(uint64(42), nil)

		req := createHTTPRequest("GET", "/api/v1/registry/count", "anyone")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]uint64
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, uint64(42), resp["total_issued"])
	})
}

func TestGetAdmin(t *testing.T) {
	query := services.NewQueryServiceMock()
	price := services.NewPriceServiceMock()
	router := setupRegistryTestRouter(query, price)

	query.On("AdminID").Return("admin")

	req := createHTTPRequest("GET", "/api/v1/registry/admin", "anyone")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "admin", resp["admin_id"])
}

func TestCheckAdmin(t *testing.T) {
	query := services.NewQueryServiceMock()
	price := services.NewPriceServiceMock()
	router := setupRegistryTestRouter(query, price)

	query.On("IsAdmin", "admin").Return(true)
	query.On("IsAdmin", "bob").Return(false)

	req := createHTTPRequest("GET", "/api/v1/registry/admin/admin", "anyone")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["is_admin"])

	req = createHTTPRequest("GET", "/api/v1/registry/admin/bob", "anyone")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["is_admin"])
}

func TestValidatePrice(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		query := services.NewQueryServiceMock()
		price := services.NewPriceServiceMock()
		router := setupRegistryTestRouter(query, price)

		price.On("ValidatePrice", 100.0).Return(nil)

		req := createJSONHTTPRequest("POST", "/api/v1/price/validate", "anyone", model.ValidatePriceRequest{Amount: 100})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - ErrPriceTooLow", func(t *testing.T) {
		query := services.NewQueryServiceMock()
		price := services.NewPriceServiceMock()
		router := setupRegistryTestRouter(query, price)

		price.On("ValidatePrice", 5.0).Return(apperrors.ErrPriceTooLow)

		req := createJSONHTTPRequest("POST", "/api/v1/price/validate", "anyone", model.ValidatePriceRequest{Amount: 5})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
