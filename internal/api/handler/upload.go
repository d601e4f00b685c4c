package handler

import (
	"bytes"
	"image"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/memegallery/api/internal/logger"
	"github.com/memegallery/api/internal/storage"
)

// maxUploadBytes caps a single image upload. Gallery images are small;
// anything larger is rejected before buffering.
const maxUploadBytes = 10 << 20

// UploadHandler accepts image blobs and stores them in object storage,
// returning the public URL a subsequent POST /memes can reference.
type UploadHandler struct {
	store storage.ObjectStorage
}

// NewUploadHandler creates a new upload handler. store may be nil when no
// object storage is configured; the route then responds 503.
func NewUploadHandler(store storage.ObjectStorage) *UploadHandler {
	return &UploadHandler{store: store}
}

// UploadImage handles POST /memes/upload. The multipart "file" part must
// decode as png, jpeg, gif or webp; it is stored under a fresh UUID key
// that keeps the original extension.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	ctx := c.Request.Context()

	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "object storage is not configured",
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil || int64(len(data)) > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is not a supported image"})
		return
	}

	key := buildObjectKey(fileHeader.Filename, format)
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/" + format
	}

	if err := h.store.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		logger.CtxError(ctx, "Failed to upload image: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to store image"})
		return
	}

	url := h.store.GetURL(key)
	logger.FromContext(ctx).WithFields(logger.Fields{
		logger.FieldSize: len(data),
	}).Infof("Image uploaded: key=%s format=%s %dx%d", key, format, cfg.Width, cfg.Height)

	c.JSON(http.StatusCreated, gin.H{
		"url":    url,
		"key":    key,
		"width":  cfg.Width,
		"height": cfg.Height,
	})
}

// buildObjectKey names the object with a fresh UUID plus the original
// extension, falling back to the decoded format when the name has none.
func buildObjectKey(filename, format string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = "." + format
	}
	return uuid.New().String() + ext
}
