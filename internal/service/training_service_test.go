package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kakeibo/internal/domain"
	"kakeibo/internal/service"
	"kakeibo/mocks"
)

func TestExportJSON(t *testing.T) {
	trainingRepo := new(mocks.MockTrainingRepo)
	svc := service.NewTrainingService(trainingRepo)

	samples := []domain.TrainingSample{
		{ID: uuid.New(), UserID: "u1", CorrectedText: "text", SyncStatus: domain.SyncStatusPending},
	}
	trainingRepo.On("ListPending", mock.Anything, 1000).Return(samples, nil)

	var buf bytes.Buffer
	got, err := svc.Export(context.Background(), &buf, service.ExportJSON, 0)
	require.NoError(t, err)
	assert.Equal(t, samples, got)

	var decoded []domain.TrainingSample
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "u1", decoded[0].UserID)
}

func TestExportUnknownFormat(t *testing.T) {
	trainingRepo := new(mocks.MockTrainingRepo)
	svc := service.NewTrainingService(trainingRepo)

	trainingRepo.On("ListPending", mock.Anything, mock.Anything).Return([]domain.TrainingSample{}, nil)

	var buf bytes.Buffer
	_, err := svc.Export(context.Background(), &buf, "parquet", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMarkExported(t *testing.T) {
	trainingRepo := new(mocks.MockTrainingRepo)
	svc := service.NewTrainingService(trainingRepo)

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	trainingRepo.On("MarkSynced", mock.Anything, ids).Return(nil)

	require.NoError(t, svc.MarkExported(context.Background(), ids))
	trainingRepo.AssertCalled(t, "MarkSynced", mock.Anything, ids)
}
