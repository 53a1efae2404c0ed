package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"kakeibo/internal/domain"
	"kakeibo/internal/handler"
	"kakeibo/internal/service"
	"kakeibo/mocks"
)

func TestTrainingHandler_Export_DefaultsToJSON(t *testing.T) {
	mockSvc := new(mocks.MockTrainingService)
	h := handler.NewTrainingHandler(mockSvc)

	mockSvc.On("Export", mock.Anything, mock.Anything, service.ExportJSON, 0).
		Return([]domain.TrainingSample{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/training/export", nil)

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	mockSvc.AssertExpectations(t)
}

func TestTrainingHandler_Export_InvalidFormat(t *testing.T) {
	mockSvc := new(mocks.MockTrainingService)
	h := handler.NewTrainingHandler(mockSvc)

	mockSvc.On("Export", mock.Anything, mock.Anything, service.ExportFormat("parquet"), 0).
		Return(nil, domain.ErrInvalidInput)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/training/export?format=parquet", nil)

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrainingHandler_MarkSynced_Success(t *testing.T) {
	mockSvc := new(mocks.MockTrainingService)
	h := handler.NewTrainingHandler(mockSvc)

	ids := []uuid.UUID{uuid.New()}
	mockSvc.On("MarkExported", mock.Anything, ids).Return(nil)

	body, _ := json.Marshal(map[string]interface{}{"ids": ids})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/training/mark-synced", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.MarkSynced(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestTrainingHandler_MarkSynced_MissingIDs(t *testing.T) {
	mockSvc := new(mocks.MockTrainingService)
	h := handler.NewTrainingHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/training/mark-synced", bytes.NewReader([]byte(`{}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	h.MarkSynced(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "MarkExported", mock.Anything, mock.Anything)
}
