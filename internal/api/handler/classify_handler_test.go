package handler_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/soyleaf/soyleaf-api/internal/api/handler"
	"github.com/soyleaf/soyleaf-api/internal/core/domain"
	"github.com/soyleaf/soyleaf-api/internal/core/ports"
)

type stubClassifyService struct {
	result *ports.ClassifyResult
	err    error
	calls  int
}

func (s *stubClassifyService) Classify(_ context.Context, _ ports.ClassifyInput) (*ports.ClassifyResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func multipartUpload(t *testing.T, field, filename string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	_ = w.Close()
	return &buf, w.FormDataContentType()
}

func newUploadContext(t *testing.T, body *bytes.Buffer, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/upload_img", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "farmer1")
	return c, rec
}

func TestClassifyHandler_Upload_OK(t *testing.T) {
	svc := &stubClassifyService{result: &ports.ClassifyResult{
		Prediction: "rust",
		Confidence: 0.87,
		Image:      "abc.png",
	}}
	h := handler.NewClassifyHandler(svc, 10)

	body, ct := multipartUpload(t, "image", "leaf.png", []byte("png-bytes"))
	c, rec := newUploadContext(t, body, ct)

	if err := h.Upload(c); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.calls != 1 {
		t.Fatalf("expected one service call, got %d", svc.calls)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"prediction":"rust"`)) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestClassifyHandler_Upload_MissingFile(t *testing.T) {
	svc := &stubClassifyService{result: &ports.ClassifyResult{Prediction: "healthy"}}
	h := handler.NewClassifyHandler(svc, 10)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("note", "no file")
	_ = w.Close()
	c, _ := newUploadContext(t, &buf, w.FormDataContentType())

	if err := h.Upload(c); err != domain.ErrEmptyUpload {
		t.Fatalf("expected ErrEmptyUpload, got %v", err)
	}
	if svc.calls != 0 {
		t.Fatalf("service must not run without a file")
	}
}

func TestClassifyHandler_Upload_TooLarge(t *testing.T) {
	svc := &stubClassifyService{result: &ports.ClassifyResult{Prediction: "healthy"}}
	h := handler.NewClassifyHandler(svc, 1)

	// One byte over the 1 MB limit.
	body, ct := multipartUpload(t, "image", "big.png", make([]byte, (1<<20)+1))
	c, _ := newUploadContext(t, body, ct)

	err := h.Upload(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 HTTPError, got %v", err)
	}
	if svc.calls != 0 {
		t.Fatalf("oversized upload must not reach the service")
	}
}

func TestClassifyHandler_Upload_ServiceErrorPropagates(t *testing.T) {
	svc := &stubClassifyService{err: domain.ErrEngineUnavailable}
	h := handler.NewClassifyHandler(svc, 10)

	body, ct := multipartUpload(t, "image", "leaf.png", []byte("png-bytes"))
	c, _ := newUploadContext(t, body, ct)

	if err := h.Upload(c); err != domain.ErrEngineUnavailable {
		t.Fatalf("expected ErrEngineUnavailable, got %v", err)
	}
}

func TestClassifyHandler_UploadForm(t *testing.T) {
	h := handler.NewClassifyHandler(&stubClassifyService{}, 10)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/upload_img", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.UploadForm(c); err != nil {
		t.Fatalf("upload form: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"field":"image"`)) {
		t.Fatalf("descriptor missing field name: %s", rec.Body.String())
	}
}
