package rating

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

// MockRatingService 是 RatingServiceInterface 的模拟实现
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) CreateRating(rating *model.Rating) error {
	args := m.Called(rating)
	return args.Error(0)
}

func (m *MockRatingService) GetStoreRatings(storeID int) ([]*model.Rating, error) {
	args := m.Called(storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Rating), args.Error(1)
}

func (m *MockRatingService) GetAllRatings() ([]*model.Rating, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Rating), args.Error(1)
}

func (m *MockRatingService) GetUserRatings(userID int) ([]*model.Rating, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Rating), args.Error(1)
}

func (m *MockRatingService) UpdateRating(rating *model.Rating) error {
	args := m.Called(rating)
	return args.Error(0)
}

func (m *MockRatingService) DeleteRating(id, userID int) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

// setupRatingRouter 模拟认证中间件，把固定的用户身份写入上下文
func setupRatingRouter(mockService *MockRatingService, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewRatingHandler(mockService)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID)
	})
	r.POST("/api/ratings", handler.CreateRating)
	r.GET("/api/stores/:id/ratings", handler.ListStoreRatings)
	r.GET("/api/ratings", handler.ListAllRatings)
	r.GET("/api/ratings/user", handler.ListMyRatings)
	r.PUT("/api/ratings/:id", handler.UpdateRating)
	r.DELETE("/api/ratings/:id", handler.DeleteRating)
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

func TestCreateRatingHandler_Success(t *testing.T) {
	mockService := new(MockRatingService)
	r := setupRatingRouter(mockService, 7)

	mockService.On("CreateRating", mock.AnythingOfType("*model.Rating")).
		Return(nil).
		Run(func(args mock.Arguments) {
			rating := args.Get(0).(*model.Rating)
			// 评分人固定取自上下文中的认证用户
			assert.Equal(t, 7, rating.UserID)
			rating.ID = 12
		})

	w := doJSON(r, http.MethodPost, "/api/ratings", gin.H{
		"store_id": 3,
		"rating":   4,
		"comment":  "Good selection",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			RatingID int `json:"rating_id"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.Data.RatingID)
	mockService.AssertExpectations(t)
}

// binding 标签在请求入口就拒绝 1-5 范围外的评分
func TestCreateRatingHandler_OutOfRange(t *testing.T) {
	tests := []gin.H{
		{"store_id": 3, "rating": 0},
		{"store_id": 3, "rating": 6},
		{"store_id": 3, "rating": -1},
	}

	for _, body := range tests {
		mockService := new(MockRatingService)
		r := setupRatingRouter(mockService, 7)

		w := doJSON(r, http.MethodPost, "/api/ratings", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "CreateRating", mock.Anything)
	}
}

func TestCreateRatingHandler_MissingStore(t *testing.T) {
	mockService := new(MockRatingService)
	r := setupRatingRouter(mockService, 7)

	w := doJSON(r, http.MethodPost, "/api/ratings", gin.H{"rating": 4})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateRating", mock.Anything)
}

func TestListStoreRatingsHandler(t *testing.T) {
	mockService := new(MockRatingService)
	r := setupRatingRouter(mockService, 7)

	mockService.On("GetStoreRatings", 3).Return([]*model.Rating{
		{ID: 1, StoreID: 3, Rating: 5, UserName: "Johnathan Albert Smitherson"},
	}, nil)

	w := doJSON(r, http.MethodGet, "/api/stores/3/ratings", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rating":5`)
}

// 非原评分人的更新和删除统一返回 404
func TestUpdateRatingHandler_NotOwner(t *testing.T) {
	mockService := new(MockRatingService)
	r := setupRatingRouter(mockService, 2)

	mockService.On("UpdateRating", mock.AnythingOfType("*model.Rating")).
		Return(errors.New(errors.ErrNotFoundOrNoPermission,
			"Rating not found or you do not have permission to update this rating"))

	w := doJSON(r, http.MethodPut, "/api/ratings/12", gin.H{"rating": 3})

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp errors.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Rating not found or you do not have permission to update this rating", resp.Message)
}

func TestDeleteRatingHandler_NotOwner(t *testing.T) {
	mockService := new(MockRatingService)
	r := setupRatingRouter(mockService, 2)

	mockService.On("DeleteRating", 12, 2).
		Return(errors.New(errors.ErrNotFoundOrNoPermission,
			"Rating not found or you do not have permission to delete this rating"))

	w := doJSON(r, http.MethodDelete, "/api/ratings/12", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRatingHandler_Success(t *testing.T) {
	mockService := new(MockRatingService)
	r := setupRatingRouter(mockService, 7)

	mockService.On("DeleteRating", 12, 7).Return(nil)

	w := doJSON(r, http.MethodDelete, "/api/ratings/12", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestListMyRatingsHandler(t *testing.T) {
	mockService := new(MockRatingService)
	r := setupRatingRouter(mockService, 7)

	mockService.On("GetUserRatings", 7).Return([]*model.Rating{
		{ID: 1, StoreID: 3, UserID: 7, Rating: 4, StoreName: "Corner Books"},
	}, nil)

	w := doJSON(r, http.MethodGet, "/api/ratings/user", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Corner Books")
}
