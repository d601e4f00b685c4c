package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// fakeStorage records uploads in memory.
type fakeStorage struct {
	keys        []string
	contentType string
	failUpload  bool
}

func (f *fakeStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if f.failUpload {
		return io.ErrUnexpectedEOF
	}
	f.keys = append(f.keys, key)
	f.contentType = contentType
	return nil
}

func (f *fakeStorage) GetURL(key string) string {
	return "https://cdn.test/" + key
}

func (f *fakeStorage) EnsureBucket(ctx context.Context) error { return nil }

func newUploadRouter(store *fakeStorage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var h *UploadHandler
	if store != nil {
		h = NewUploadHandler(store)
	} else {
		h = NewUploadHandler(nil)
	}
	r.POST("/memes/upload", h.UploadImage)
	return r
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test png: %v", err)
	}
	return buf.Bytes()
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestUploadImage_Success(t *testing.T) {
	store := &fakeStorage{}
	router := newUploadRouter(store)

	body, contentType := multipartBody(t, "meme.png", pngBytes(t))
	req := httptest.NewRequest(http.MethodPost, "/memes/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(store.keys) != 1 {
		t.Fatalf("expected 1 uploaded object, got %d", len(store.keys))
	}
	key := store.keys[0]
	if !strings.HasSuffix(key, ".png") {
		t.Errorf("expected key with .png extension, got %q", key)
	}
	if resp["url"] != "https://cdn.test/"+key {
		t.Errorf("url does not point at the stored object: %v", resp["url"])
	}
	if resp["width"].(float64) != 2 || resp["height"].(float64) != 3 {
		t.Errorf("decoded dimensions wrong: %v x %v", resp["width"], resp["height"])
	}
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	store := &fakeStorage{}
	router := newUploadRouter(store)

	body, contentType := multipartBody(t, "notes.txt", []byte("definitely not an image"))
	req := httptest.NewRequest(http.MethodPost, "/memes/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if len(store.keys) != 0 {
		t.Errorf("nothing should have been uploaded, got %v", store.keys)
	}
}

func TestUploadImage_MissingFile(t *testing.T) {
	router := newUploadRouter(&fakeStorage{})

	req := httptest.NewRequest(http.MethodPost, "/memes/upload", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestUploadImage_StorageFailure(t *testing.T) {
	store := &fakeStorage{failUpload: true}
	router := newUploadRouter(store)

	body, contentType := multipartBody(t, "meme.png", pngBytes(t))
	req := httptest.NewRequest(http.MethodPost, "/memes/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}
}

func TestUploadImage_NoStorageConfigured(t *testing.T) {
	router := newUploadRouter(nil)

	body, contentType := multipartBody(t, "meme.png", pngBytes(t))
	req := httptest.NewRequest(http.MethodPost, "/memes/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}
