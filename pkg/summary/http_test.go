package summary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type stubService struct {
	imagePath      string
	regeneratePath string
	regenerateErr  error
}

func (s *stubService) Project(context.Context) (*Projection, error) { return nil, nil }
func (s *stubService) Generate(context.Context) error               { return nil }

func (s *stubService) Regenerate(context.Context) (string, error) {
	return s.regeneratePath, s.regenerateErr
}

func (s *stubService) ImagePath() string { return s.imagePath }

func serveSummary(svc Service, method, target string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	RegisterRoutes(r, svc, zap.NewNop())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestImageEndpoint_NotGeneratedYet(t *testing.T) {
	svc := &stubService{imagePath: filepath.Join(t.TempDir(), "missing.png")}

	rec := serveSummary(svc, http.MethodGet, "/image")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Error != "Summary image not generated yet" {
		t.Fatalf("unexpected error message: %q", body.Error)
	}
}

func TestImageEndpoint_ServesCachedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.png")
	content := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 1, 2, 3}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	rec := serveSummary(&stubService{imagePath: path}, http.MethodGet, "/image")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %q", ct)
	}
	if rec.Body.Len() != len(content) {
		t.Fatalf("expected %d bytes, got %d", len(content), rec.Body.Len())
	}
}

func TestRegenerateEndpoint_Success(t *testing.T) {
	svc := &stubService{regeneratePath: "cache/summary.png"}

	rec := serveSummary(svc, http.MethodPost, "/image/refresh")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["message"] != "Summary image regenerated" {
		t.Fatalf("unexpected message: %q", body["message"])
	}
	if body["path"] != "cache/summary.png" {
		t.Fatalf("unexpected path: %q", body["path"])
	}
}

func TestRegenerateEndpoint_RenderFailureIs500(t *testing.T) {
	svc := &stubService{regenerateErr: os.ErrPermission}

	rec := serveSummary(svc, http.MethodPost, "/image/refresh")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Error != "Internal server error" {
		t.Fatalf("unexpected error message: %q", body.Error)
	}
}
