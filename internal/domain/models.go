package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Entry represents a processed receipt: the stored image, the OCR output,
// any human corrections, and the fields extracted from the text.
type Entry struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	ImageKey      string          `db:"image_key" json:"image_key"`
	OCRText       string          `db:"ocr_text" json:"ocr_text"`
	CorrectedText *string         `db:"corrected_text" json:"corrected_text"`
	StoreName     *string         `db:"store_name" json:"store_name"`
	PurchaseDate  *string         `db:"purchase_date" json:"purchase_date"`
	TotalAmount   *int            `db:"total_amount" json:"total_amount"`
	ModelVersion  string          `db:"model_version" json:"model_version"`
	OCRCandidates json.RawMessage `db:"ocr_candidates" json:"ocr_candidates,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// ExtractedFields holds the structured fields parsed from receipt text.
// Nil means the field could not be extracted.
type ExtractedFields struct {
	StoreName    *string `json:"store_name"`
	PurchaseDate *string `json:"purchase_date"`
	TotalAmount  *int    `json:"total_amount"`
}

// EditLogEntry is one field-level human correction, persisted append-only.
// UserHash carries the anonymized actor identifier, never the raw one.
type EditLogEntry struct {
	ID           uuid.UUID `db:"id" json:"id"`
	EntryID      uuid.UUID `db:"entry_id" json:"entry_id"`
	FieldName    string    `db:"field_name" json:"field_name"`
	OldValue     *string   `db:"old_value" json:"old_value"`
	NewValue     *string   `db:"new_value" json:"new_value"`
	EditType     EditType  `db:"edit_type" json:"edit_type"`
	ModelVersion string    `db:"model_version" json:"model_version"`
	UserHash     *string   `db:"user_hash" json:"user_hash"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// EditStat aggregates edit counts per field and edit type.
type EditStat struct {
	FieldName string   `db:"field_name" json:"field_name"`
	EditType  EditType `db:"edit_type" json:"edit_type"`
	Count     int      `db:"cnt" json:"count"`
}

// ReplacementCandidate is a frequent (old, new) correction pair mined from
// the edit log.
type ReplacementCandidate struct {
	OldValue string `db:"old_value" json:"old_value"`
	NewValue string `db:"new_value" json:"new_value"`
	Count    int    `db:"cnt" json:"count"`
}

// AutoDictEntry is one literal find/replace rule of the auto-correction
// dictionary. The dictionary is replaced wholesale on regeneration.
type AutoDictEntry struct {
	From string `db:"from_text" json:"from"`
	To   string `db:"to_text" json:"to"`
	Freq int    `db:"freq" json:"freq"`
}

// UserFlags holds per-user opt-in switches for the training-data pipeline.
type UserFlags struct {
	UserID               string    `db:"user_id" json:"user_id"`
	ProvideTrainingData  bool      `db:"provide_training_data" json:"provide_training_data"`
	LocalTrainingEnabled bool      `db:"local_training_enabled" json:"local_training_enabled"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// TrainingSample is one opted-in corrected receipt queued for export.
type TrainingSample struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	UserID        string     `db:"user_id" json:"user_id"`
	EntryID       *uuid.UUID `db:"entry_id" json:"entry_id"`
	ImageKey      *string    `db:"image_key" json:"image_key"`
	CorrectedText string     `db:"corrected_text" json:"corrected_text"`
	StoreName     *string    `db:"store_name" json:"store_name"`
	PurchaseDate  *string    `db:"purchase_date" json:"purchase_date"`
	TotalAmount   *int       `db:"total_amount" json:"total_amount"`
	ImageHash     *string    `db:"image_hash" json:"image_hash"`
	SyncStatus    SyncStatus `db:"sync_status" json:"sync_status"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// ResolverLog records one conflict-resolution call made while processing an
// entry, for latency and fallback-rate observability.
type ResolverLog struct {
	ID           uuid.UUID `db:"id" json:"id"`
	EntryID      uuid.UUID `db:"entry_id" json:"entry_id"`
	LineCount    int       `db:"line_count" json:"line_count"`
	LatencyMS    int64     `db:"latency_ms" json:"latency_ms"`
	FallbackUsed bool      `db:"fallback_used" json:"fallback_used"`
	ModelVersion string    `db:"model_version" json:"model_version"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
