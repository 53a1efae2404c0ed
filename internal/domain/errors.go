package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrEntryNotFound       = errors.New("entry not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrTrainingNotAllowed  = errors.New("training data collection not permitted for this user")
	ErrUnknownEngine       = errors.New("unknown OCR engine")
	ErrUploadFailed        = errors.New("file upload to storage failed")
)
