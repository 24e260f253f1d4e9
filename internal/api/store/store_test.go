package store

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"store-rating-backend/internal/errors"
	"store-rating-backend/internal/middleware"
	"store-rating-backend/internal/model"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockStoreService 是 StoreServiceInterface 的模拟实现
type MockStoreService struct {
	mock.Mock
}

func (m *MockStoreService) CreateStore(store *model.Store) error {
	args := m.Called(store)
	return args.Error(0)
}

func (m *MockStoreService) GetStores() ([]*model.Store, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Store), args.Error(1)
}

func (m *MockStoreService) GetStoreByID(id int) (*model.Store, *model.StoreStats, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Store), args.Get(1).(*model.StoreStats), args.Error(2)
}

func (m *MockStoreService) UpdateStore(store *model.Store) error {
	args := m.Called(store)
	return args.Error(0)
}

func (m *MockStoreService) DeleteStore(id, userID int) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

// setupStoreRouter 模拟认证中间件，把固定的用户身份写入上下文
func setupStoreRouter(mockService *MockStoreService, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewStoreHandler(mockService)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID)
	})
	r.POST("/api/stores", handler.CreateStore)
	r.GET("/api/stores", handler.ListStores)
	r.GET("/api/stores/:id", handler.GetStore)
	r.PUT("/api/stores/:id", handler.UpdateStore)
	r.DELETE("/api/stores/:id", handler.DeleteStore)
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateStoreHandler_Success(t *testing.T) {
	mockService := new(MockStoreService)
	r := setupStoreRouter(mockService, 7)

	mockService.On("CreateStore", mock.AnythingOfType("*model.Store")).
		Return(nil).
		Run(func(args mock.Arguments) {
			store := args.Get(0).(*model.Store)
			// 店主固定取自上下文中的认证用户
			assert.Equal(t, 7, store.UserID)
			store.ID = 3
		})

	w := doJSON(r, http.MethodPost, "/api/stores", gin.H{
		"name":    "Corner Books",
		"address": "1 Main St",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			StoreID int `json:"store_id"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Data.StoreID)
	mockService.AssertExpectations(t)
}

func TestCreateStoreHandler_MissingAddress(t *testing.T) {
	mockService := new(MockStoreService)
	r := setupStoreRouter(mockService, 7)

	w := doJSON(r, http.MethodPost, "/api/stores", gin.H{"name": "Corner Books"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateStore", mock.Anything)
}

func TestGetStoreHandler_WithStats(t *testing.T) {
	mockService := new(MockStoreService)
	r := setupStoreRouter(mockService, 7)

	avg := 4.5
	mockService.On("GetStoreByID", 3).Return(
		&model.Store{ID: 3, Name: "Corner Books"},
		&model.StoreStats{AverageRating: &avg, ReviewCount: 2},
		nil)

	w := doJSON(r, http.MethodGet, "/api/stores/3", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			AverageRating *float64 `json:"average_rating"`
			ReviewCount   int      `json:"review_count"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Data.AverageRating)
	assert.Equal(t, 4.5, *resp.Data.AverageRating)
	assert.Equal(t, 2, resp.Data.ReviewCount)
}

func TestGetStoreHandler_NotFound(t *testing.T) {
	mockService := new(MockStoreService)
	r := setupStoreRouter(mockService, 7)

	mockService.On("GetStoreByID", 99).Return(nil, nil,
		errors.New(errors.ErrStoreNotFound, "Store not found"))

	w := doJSON(r, http.MethodGet, "/api/stores/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// 非店主的更新和删除统一返回 404，不区分商店不存在和无权限
func TestUpdateStoreHandler_NotOwner(t *testing.T) {
	mockService := new(MockStoreService)
	r := setupStoreRouter(mockService, 2)

	mockService.On("UpdateStore", mock.AnythingOfType("*model.Store")).
		Return(errors.New(errors.ErrNotFoundOrNoPermission,
			"Store not found or you do not have permission to update this store"))

	w := doJSON(r, http.MethodPut, "/api/stores/3", gin.H{
		"name":    "Corner Books",
		"address": "1 Main St",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp errors.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Store not found or you do not have permission to update this store", resp.Message)
}

func TestDeleteStoreHandler_NotOwner(t *testing.T) {
	mockService := new(MockStoreService)
	r := setupStoreRouter(mockService, 2)

	mockService.On("DeleteStore", 3, 2).
		Return(errors.New(errors.ErrNotFoundOrNoPermission,
			"Store not found or you do not have permission to delete this store"))

	w := doJSON(r, http.MethodDelete, "/api/stores/3", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteStoreHandler_Success(t *testing.T) {
	mockService := new(MockStoreService)
	r := setupStoreRouter(mockService, 7)

	mockService.On("DeleteStore", 3, 7).Return(nil)

	w := doJSON(r, http.MethodDelete, "/api/stores/3", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestListStoresHandler(t *testing.T) {
	mockService := new(MockStoreService)
	r := setupStoreRouter(mockService, 7)

	mockService.On("GetStores").Return([]*model.Store{
		{ID: 1, Name: "Corner Books", OwnerName: "Johnathan Albert Smitherson"},
	}, nil)

	w := doJSON(r, http.MethodGet, "/api/stores", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Corner Books")
}
