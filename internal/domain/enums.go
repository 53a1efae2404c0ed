package domain

// EditType classifies a field-level human correction.
type EditType string

const (
	EditTypeAdd     EditType = "add"
	EditTypeReplace EditType = "replace"
	EditTypeDelete  EditType = "delete"
)

// SyncStatus tracks whether a training sample has been exported.
type SyncStatus string

const (
	SyncStatusPending SyncStatus = "pending"
	SyncStatusSynced  SyncStatus = "synced"
)

// EngineName identifies an OCR backend. The value is opaque; it is used for
// labeling results and selecting adapters.
type EngineName string

const (
	EngineTesseract EngineName = "tesseract"
	EnginePaddle    EngineName = "paddle"
	EngineTrOCR     EngineName = "trocr"
)

// KnownEngines lists the engine names a request may select.
var KnownEngines = map[EngineName]bool{
	EngineTesseract: true,
	EnginePaddle:    true,
	EngineTrOCR:     true,
}

// ImageType represents the allowed upload types.
type ImageType string

const (
	ImageTypeJPG ImageType = "jpg"
	ImageTypePNG ImageType = "png"
)

// AllowedImageContentTypes maps MIME content types to ImageType.
var AllowedImageContentTypes = map[string]ImageType{
	"image/jpeg": ImageTypeJPG,
	"image/png":  ImageTypePNG,
}
