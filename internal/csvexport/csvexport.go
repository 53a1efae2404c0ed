// Package csvexport renders edit logs and training samples into CSV, JSON
// and XLSX for offline analysis and model fine-tuning.
package csvexport

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"kakeibo/internal/domain"
)

var editLogHeader = []string{
	"id", "entry_id", "field_name", "old_value", "new_value",
	"edit_type", "model_version", "user_hash", "created_at",
}

var trainingHeader = []string{
	"id", "user_id", "entry_id", "image_key", "corrected_text",
	"store_name", "purchase_date", "total_amount", "image_hash",
	"sync_status", "created_at",
}

// WriteEditLogCSV streams the edit log as CSV with a header row.
func WriteEditLogCSV(w io.Writer, entries []domain.EditLogEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(editLogHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, e := range entries {
		record := []string{
			e.ID.String(),
			e.EntryID.String(),
			e.FieldName,
			deref(e.OldValue),
			deref(e.NewValue),
			string(e.EditType),
			e.ModelVersion,
			deref(e.UserHash),
			e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTrainingCSV streams training samples as CSV with a header row.
func WriteTrainingCSV(w io.Writer, samples []domain.TrainingSample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trainingHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, s := range samples {
		if err := cw.Write(trainingRecord(s)); err != nil {
			return fmt.Errorf("writing csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTrainingJSON streams training samples as a JSON array.
func WriteTrainingJSON(w io.Writer, samples []domain.TrainingSample) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if samples == nil {
		samples = []domain.TrainingSample{}
	}
	if err := enc.Encode(samples); err != nil {
		return fmt.Errorf("writing json: %w", err)
	}
	return nil
}

// WriteTrainingXLSX renders training samples as a single-sheet workbook.
func WriteTrainingXLSX(w io.Writer, samples []domain.TrainingSample) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "TrainingData"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	for col, name := range trainingHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("addressing header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("writing header cell: %w", err)
		}
	}

	for row, s := range samples {
		for col, value := range trainingRecord(s) {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("addressing cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("writing cell: %w", err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func trainingRecord(s domain.TrainingSample) []string {
	entryID := ""
	if s.EntryID != nil {
		entryID = s.EntryID.String()
	}
	amount := ""
	if s.TotalAmount != nil {
		amount = strconv.Itoa(*s.TotalAmount)
	}
	return []string{
		s.ID.String(),
		s.UserID,
		entryID,
		deref(s.ImageKey),
		s.CorrectedText,
		deref(s.StoreName),
		deref(s.PurchaseDate),
		amount,
		deref(s.ImageHash),
		string(s.SyncStatus),
		s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
