package csvexport_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"kakeibo/internal/csvexport"
	"kakeibo/internal/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func sampleEditLog() []domain.EditLogEntry {
	return []domain.EditLogEntry{
		{
			ID:           uuid.MustParse("11111111-1111-1111-1111-111111111111"),
			EntryID:      uuid.MustParse("22222222-2222-2222-2222-222222222222"),
			FieldName:    "store_name",
			OldValue:     strPtr("ロ一ソン"),
			NewValue:     strPtr("ローソン"),
			EditType:     domain.EditTypeReplace,
			ModelVersion: "multi_ocr_v1.0.0",
			UserHash:     strPtr("abcdef0123456789"),
			CreatedAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func sampleTraining() []domain.TrainingSample {
	entryID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	return []domain.TrainingSample{
		{
			ID:            uuid.MustParse("33333333-3333-3333-3333-333333333333"),
			UserID:        "user-1",
			EntryID:       &entryID,
			ImageKey:      strPtr("receipts/2026/08/img.jpg"),
			CorrectedText: "ローソン\n合計 645円",
			StoreName:     strPtr("ローソン"),
			TotalAmount:   intPtr(645),
			SyncStatus:    domain.SyncStatusPending,
			CreatedAt:     time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestWriteEditLogCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, csvexport.WriteEditLogCSV(&buf, sampleEditLog()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "id", records[0][0])
	assert.Equal(t, "store_name", records[1][2])
	assert.Equal(t, "ロ一ソン", records[1][3])
	assert.Equal(t, "ローソン", records[1][4])
	assert.Equal(t, "replace", records[1][5])
	assert.Equal(t, "abcdef0123456789", records[1][7])
}

func TestWriteTrainingCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, csvexport.WriteTrainingCSV(&buf, sampleTraining()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "user-1", records[1][1])
	assert.Equal(t, "645", records[1][7])
	assert.Equal(t, "pending", records[1][9])
	// multiline corrected text survives CSV quoting
	assert.Contains(t, records[1][4], "\n")
}

func TestWriteTrainingJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, csvexport.WriteTrainingJSON(&buf, sampleTraining()))

	var decoded []domain.TrainingSample
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "user-1", decoded[0].UserID)
	assert.Equal(t, 645, *decoded[0].TotalAmount)
}

func TestWriteTrainingJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, csvexport.WriteTrainingJSON(&buf, nil))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestWriteTrainingXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, csvexport.WriteTrainingXLSX(&buf, sampleTraining()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("TrainingData")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, "user-1", rows[1][1])
	assert.Equal(t, "645", rows[1][7])
}
