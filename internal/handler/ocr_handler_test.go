package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kakeibo/internal/domain"
	"kakeibo/internal/handler"
	"kakeibo/internal/service"
	"kakeibo/mocks"
)

func multipartImage(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="receipt.jpg"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestOCRHandler_RunMulti_Success(t *testing.T) {
	mockSvc := new(mocks.MockOCRService)
	h := handler.NewOCRHandler(mockSvc)

	out := &service.OCROutput{
		Entry:   &domain.Entry{ID: uuid.New(), OCRText: "ローソン"},
		Engines: []string{"tesseract", "paddle"},
	}
	mockSvc.On("RunMulti", mock.Anything, mock.MatchedBy(func(input *service.OCRInput) bool {
		return input.ContentType == "image/jpeg" && len(input.Image) > 0
	})).Return(out, nil)

	body, contentType := multipartImage(t, "image/jpeg", []byte("jpeg-data"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ocr/multi", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.RunMulti(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestOCRHandler_RunSingle_EngineSelection(t *testing.T) {
	mockSvc := new(mocks.MockOCRService)
	h := handler.NewOCRHandler(mockSvc)

	mockSvc.On("RunSingle", mock.Anything, mock.MatchedBy(func(input *service.OCRInput) bool {
		return len(input.Engines) == 1 && input.Engines[0] == domain.EnginePaddle
	})).Return(&service.OCROutput{Entry: &domain.Entry{}}, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="r.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, _ = part.Write([]byte("img"))
	require.NoError(t, mw.WriteField("engine", "paddle"))
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ocr", &buf)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())

	h.RunSingle(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestOCRHandler_RunMulti_ResolverToggle(t *testing.T) {
	mockSvc := new(mocks.MockOCRService)
	h := handler.NewOCRHandler(mockSvc)

	mockSvc.On("RunMulti", mock.Anything, mock.MatchedBy(func(input *service.OCRInput) bool {
		return input.UseResolver
	})).Return(&service.OCROutput{Entry: &domain.Entry{}}, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="r.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, _ = part.Write([]byte("img"))
	require.NoError(t, mw.WriteField("use_llm", "1"))
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ocr/multi", &buf)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())

	h.RunMulti(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestOCRHandler_MissingImage(t *testing.T) {
	mockSvc := new(mocks.MockOCRService)
	h := handler.NewOCRHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ocr", nil)

	h.RunSingle(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "RunSingle", mock.Anything, mock.Anything)
}

func TestOCRHandler_UnsupportedType(t *testing.T) {
	mockSvc := new(mocks.MockOCRService)
	h := handler.NewOCRHandler(mockSvc)

	mockSvc.On("RunSingle", mock.Anything, mock.Anything).
		Return(nil, domain.ErrUnsupportedFileType)

	body, contentType := multipartImage(t, "application/pdf", []byte("pdf"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ocr", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.RunSingle(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", resp.Error.Code)
}
