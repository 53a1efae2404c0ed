package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kakeibo/internal/domain"
	"kakeibo/internal/handler"
	"kakeibo/internal/service"
	"kakeibo/mocks"
)

func TestFlagHandler_Get_Success(t *testing.T) {
	mockSvc := new(mocks.MockFlagService)
	h := handler.NewFlagHandler(mockSvc)

	mockSvc.On("Get", mock.Anything, "user-1").Return(&domain.UserFlags{
		UserID:              "user-1",
		ProvideTrainingData: true,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/flags", nil)
	c.Request.Header.Set("X-User-ID", "user-1")

	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestFlagHandler_Get_MissingUser(t *testing.T) {
	mockSvc := new(mocks.MockFlagService)
	h := handler.NewFlagHandler(mockSvc)

	mockSvc.On("Get", mock.Anything, "").Return(nil, domain.ErrInvalidInput)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/flags", nil)

	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFlagHandler_Update_Success(t *testing.T) {
	mockSvc := new(mocks.MockFlagService)
	h := handler.NewFlagHandler(mockSvc)

	mockSvc.On("Update", mock.Anything, mock.MatchedBy(func(input *service.UpdateFlagsInput) bool {
		return input.UserID == "user-1" &&
			input.ProvideTrainingData != nil && *input.ProvideTrainingData
	})).Return(&domain.UserFlags{UserID: "user-1", ProvideTrainingData: true}, nil)

	body, _ := json.Marshal(map[string]bool{"provide_training_data": true})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPut, "/api/v1/flags", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set("X-User-ID", "user-1")

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}
